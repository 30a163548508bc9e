package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/bosun-ai/swiftide-docker-executor/internal/dockercontext"
	"github.com/bosun-ai/swiftide-docker-executor/internal/dockerengine"
	"github.com/bosun-ai/swiftide-docker-executor/internal/loaderclient"
	"github.com/bosun-ai/swiftide-docker-executor/internal/shellclient"
	"github.com/bosun-ai/swiftide-docker-executor/internal/sidecarfile"
	"github.com/bosun-ai/swiftide-docker-executor/internal/tracelog"
	"github.com/bosun-ai/swiftide-docker-executor/pkg/console"
)

// Executor is a configured, not-yet-started build+run pipeline. Create one
// with New, configure it with Option functions, then call Start exactly
// once.
type Executor struct {
	cfg     Config
	started atomic.Bool
}

// New builds a configured Executor. It does nothing with the Docker Engine
// until Start is called.
func New(opts ...Option) *Executor {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Executor{cfg: cfg}
}

// Start runs the full pipeline: pack the build context, inject the
// sidecar, build (unless WithSkipBuild), create and start the container,
// and wait for the sidecar to answer. A second call returns
// ErrAlreadyStarted without touching the RunningExecutor the first call
// produced.
func (e *Executor) Start(ctx context.Context) (*RunningExecutor, error) {
	if !e.started.CompareAndSwap(false, true) {
		return nil, ErrAlreadyStarted
	}

	cfg := e.cfg
	trace := tracelog.New()

	engineOpts := []dockerengine.ClientOption{
		dockerengine.WithSharedConnection(),
		dockerengine.WithBackend(cfg.Backend),
	}
	if cfg.Platform != nil {
		engineOpts = append(engineOpts, dockerengine.WithPlatform(cfg.Platform.OS, cfg.Platform.Arch))
	}
	for _, host := range cfg.RegistryAuthHosts {
		engineOpts = append(engineOpts, dockerengine.WithRegistryAuth(host))
	}

	client, err := dockerengine.NewClient(ctx, engineOpts...)
	if err != nil {
		return nil, &EngineConnectError{Err: err}
	}

	run := &RunningExecutor{
		cfg:    cfg,
		client: client,
		trace:  trace,
	}
	run.st.set(stateConfigured)

	if err := run.build(ctx); err != nil {
		client.Close()
		return nil, err
	}

	if err := run.createAndStart(ctx); err != nil {
		client.Close()
		return nil, err
	}

	run.st.set(stateReady)
	return run, nil
}

// build implements components A (context pack), C (sidecar injection) and
// B (image build), skipped entirely when cfg.SkipBuild is set.
func (run *RunningExecutor) build(ctx context.Context) error {
	cfg := run.cfg
	run.st.set(stateBuilding)

	if cfg.SkipBuild {
		run.imageRef = cfg.ImageName
		if cfg.ImageTag != "" {
			run.imageRef = cfg.ImageName + ":" + cfg.ImageTag
		}
		run.st.set(stateCreated)
		return nil
	}

	dockerfilePath := filepath.Join(cfg.ContextPath, cfg.DockerfilePath)
	original, err := os.ReadFile(dockerfilePath)
	if err != nil {
		return &ContextBuildError{Path: dockerfilePath, Err: err}
	}

	rewritten, err := sidecarfile.Rewrite(string(original), cfg.SidecarImage)
	if err != nil {
		return &ContextBuildError{Path: dockerfilePath, Err: err}
	}

	imageTag := cfg.ImageTag
	if imageTag == "" {
		imageTag = uuid.New().String()
	}

	exists, err := run.client.ImageExists(ctx, fmt.Sprintf("%s:%s", cfg.ImageName, imageTag))
	if err != nil {
		return &ImageBuildError{Err: err}
	}

	imgOpts := dockerengine.ImageBuildOptions{
		ImageName:  cfg.ImageName,
		ImageTag:   imageTag,
		NoCache:    false,
		PullParent: !exists,
		TraceTag:   "build",
	}

	if cfg.Backend == dockerengine.BackendBuildKit {
		buildDir, err := os.MkdirTemp("", "swiftide-dockerfile-*")
		if err != nil {
			return &ContextBuildError{Path: dockerfilePath, Err: err}
		}
		defer os.RemoveAll(buildDir)

		writtenPath, err := dockerengine.WriteDockerfile(buildDir, "Dockerfile.sidecar", rewritten)
		if err != nil {
			return &ContextBuildError{Path: dockerfilePath, Err: err}
		}

		// BuildKit's LocalDirs reads straight off disk, so the context it
		// sees has to be the same ignore-filtered file set Pack gives the
		// Classic backend, not the raw project directory.
		contextDir, err := dockercontext.Materialize(cfg.ContextPath, cfg.IgnoreFilenames...)
		if err != nil {
			return &ContextBuildError{Path: cfg.ContextPath, Err: err}
		}
		defer os.RemoveAll(contextDir)
		imgOpts.ContextDir = contextDir

		if err := run.client.BuildWithBuildKit(ctx, filepath.Dir(writtenPath), filepath.Base(writtenPath), imgOpts, run.trace); err != nil {
			return &ImageBuildError{Err: err}
		}
	} else {
		var tarBuf bytes.Buffer
		dockerfileName, err := dockercontext.Pack(&tarBuf, cfg.ContextPath, rewritten, cfg.IgnoreFilenames...)
		if err != nil {
			return &ContextBuildError{Path: cfg.ContextPath, Err: err}
		}

		log, err := run.client.BuildWithClassic(ctx, dockerfileName, &tarBuf, imgOpts, cfg.ProgressOutput)
		if err != nil {
			return &ImageBuildError{Log: log, Err: err}
		}
	}

	run.imageRef = imgOpts.Tag()
	run.st.set(stateCreated)
	return nil
}

// createAndStart implements component D: container create, start, and the
// health-poll wait for the sidecar to answer.
func (run *RunningExecutor) createAndStart(ctx context.Context) error {
	cfg := run.cfg
	run.st.set(stateStarting)

	ctr, err := run.client.Create(ctx, dockerengine.CreateOptions{
		Image:   run.imageRef,
		Name:    fmt.Sprintf("swiftide-executor-%s", uuid.New().String()),
		Workdir: cfg.Workdir,
		User:    cfg.User,
		Env:     cfg.Env,
	})
	if err != nil {
		return &StartupError{Probe: err}
	}

	if err := run.client.Start(ctx, ctr); err != nil {
		run.client.Stop(ctx, ctr)
		return &StartupError{Probe: err}
	}

	if err := run.client.ExecDetached(ctx, ctr, []string{"/usr/bin/swiftide-docker-service"}); err != nil {
		run.client.Stop(ctx, ctr)
		return &StartupError{Probe: err}
	}

	waitCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := dockerengine.WaitForSidecar(waitCtx, ctr.ShellAddr); err != nil {
		tail, _ := run.client.TailLogs(ctx, ctr.ID, 4096)
		run.client.Stop(ctx, ctr)
		base := StartupError{Probe: err, LogTail: tail}
		if waitCtx.Err() != nil {
			return &StartupTimeoutError{StartupError: base}
		}
		return &base
	}

	shell, err := shellclient.Dial(ctr.ShellAddr, cfg.Workdir, ctr.ID, cfg.DefaultTimeout, run.trace)
	if err != nil {
		tail, _ := run.client.TailLogs(ctx, ctr.ID, 4096)
		run.client.Stop(ctx, ctr)
		return &StartupError{Probe: err, LogTail: tail}
	}

	run.container = ctr
	run.shell = shell
	console.Info("executor ready: container %s", ctr.ID)
	return nil
}

// RunningExecutor is a started Executor: a live container with open gRPC
// channels to its sidecar. Close it (directly, or via a successful
// IntoFileLoader transfer) exactly once per container.
type RunningExecutor struct {
	cfg    Config
	client *dockerengine.Client
	trace  *tracelog.Logger

	imageRef  string
	container *dockerengine.Container
	shell     *shellclient.Client

	st stateBox

	// Ownership bookkeeping for the borrow/own duality (see
	// internal/loaderclient/ownership.go). borrows counts outstanding
	// BorrowedFileLoader streams; closeRequested and ownershipTaken are
	// set at most once each; teardownOnce guarantees the container is
	// stopped exactly once regardless of which path triggers it.
	borrows        atomic.Int32
	closeRequested atomic.Bool
	ownershipTaken atomic.Bool
	teardownOnce   sync.Once
}

// Exec runs cmd inside the container and returns its output. A non-zero
// ExitCode is not a Go error; TimedOutError and RPCError are.
func (run *RunningExecutor) Exec(ctx context.Context, cmd Command) (CommandOutput, error) {
	if run.st.get() == stateStopped {
		return CommandOutput{}, ErrNotStarted
	}

	out, err := run.shell.Exec(ctx, shellclient.Command{
		Shell:      cmd.Shell,
		CurrentDir: cmd.CurrentDir,
		Timeout:    cmd.Timeout,
	})
	result := CommandOutput{ExitCode: out.ExitCode, Stdout: out.Stdout, Stderr: out.Stderr}

	if err != nil {
		var timedOut *shellclient.TimedOutError
		if errors.As(err, &timedOut) {
			return result, &TimedOutError{Partial: result}
		}
		var rpcErr *shellclient.RPCError
		if errors.As(err, &rpcErr) {
			return result, &RPCError{Err: rpcErr.Err}
		}
		return result, err
	}
	return result, nil
}

// Close tears the container down, unless a file loader still borrows it or
// has taken exclusive ownership of it. Idempotent.
func (run *RunningExecutor) Close(ctx context.Context) error {
	if !run.closeRequested.CompareAndSwap(false, true) {
		return nil
	}
	if run.ownershipTaken.Load() {
		return nil
	}
	if run.borrows.Load() > 0 {
		return nil
	}
	return run.teardown(ctx)
}

// teardown stops the container exactly once. Errors are logged, never
// returned, so Close reports no teardown failure to its caller.
func (run *RunningExecutor) teardown(ctx context.Context) error {
	run.teardownOnce.Do(func() {
		run.st.set(stateStopping)
		if run.shell != nil {
			run.shell.Close()
		}
		if err := run.client.Stop(ctx, run.container); err != nil {
			console.Warn("executor: tearing down container: %v", err)
		}
		run.client.Close()
		run.st.set(stateStopped)
	})
	return nil
}

// LoaderAddr implements loaderclient.Owner.
func (run *RunningExecutor) LoaderAddr() string { return run.container.LoaderAddr }

// Tracer implements loaderclient.Owner.
func (run *RunningExecutor) Tracer() *tracelog.Logger { return run.trace }

// Borrow implements loaderclient.Owner.
func (run *RunningExecutor) Borrow() { run.borrows.Add(1) }

// Release implements loaderclient.Owner: if the executor was already
// asked to Close and this was the last outstanding borrow, teardown runs
// now instead of having run inline inside that Close call.
func (run *RunningExecutor) Release() {
	if run.borrows.Add(-1) == 0 && run.closeRequested.Load() && !run.ownershipTaken.Load() {
		run.teardown(context.Background())
	}
}

// TakeOwnership implements loaderclient.Owner: the executor's own Close
// becomes permanently inert, and the returned func is the caller's only
// remaining way to tear the container down.
func (run *RunningExecutor) TakeOwnership() func() {
	run.ownershipTaken.Store(true)
	return func() { run.teardown(context.Background()) }
}

// BorrowedFileLoader opens a file loader stream that shares run's
// lifetime: closing run before the stream is read to completion will not
// tear the container down out from under it.
func (run *RunningExecutor) BorrowedFileLoader(ctx context.Context, rootPath string, extensions ...string) (*loaderclient.Stream, error) {
	return loaderclient.BorrowedFileLoader(ctx, run, rootPath, extensions...)
}

// IntoFileLoader opens a file loader stream that takes over exclusive
// ownership of run's container: run.Close becomes a no-op, and the
// container is torn down when the returned Stream is closed instead.
func (run *RunningExecutor) IntoFileLoader(ctx context.Context, rootPath string, extensions ...string) (*loaderclient.Stream, error) {
	return loaderclient.IntoFileLoader(ctx, run, rootPath, extensions...)
}
