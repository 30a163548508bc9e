package dockerengine

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/docker/docker/api/types/container"
	networktypes "github.com/docker/docker/api/types/network"
	"github.com/docker/go-connections/nat"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/bosun-ai/swiftide-docker-executor/pkg/console"
)

// SidecarPort is the port the injected sidecar binary listens on inside
// every executor container.
const SidecarPort = 50051

// CreateOptions describes the container the facade wants brought up: an
// already-built image carrying the sidecar binary, plus the workdir/user
// the caller configured.
type CreateOptions struct {
	Image   string
	Name    string
	Workdir string
	User    string
	Env     map[string]string
	// Network, if set, attaches the container to this existing network
	// by name instead of the default bridge with a published port.
	Network string
}

// Container is a live handle on a running executor container: enough to
// address its sidecar and to tear it down exactly once.
type Container struct {
	ID      string
	Image   string
	Network string
	Workdir string
	User    string
	// ShellAddr/LoaderAddr are the gRPC dial targets for the sidecar's two
	// services; identical when (as is always currently the case) both
	// listen on the same SidecarPort.
	ShellAddr  string
	LoaderAddr string

	client   *Client
	teardown sync.Once
}

// Create creates (but does not start) a container running "sleep
// infinity", ready for the facade to start and then exec the sidecar
// into.
func (c *Client) Create(ctx context.Context, opts CreateOptions) (*Container, error) {
	envList := make([]string, 0, len(opts.Env))
	for k, v := range opts.Env {
		envList = append(envList, fmt.Sprintf("%s=%s", k, v))
	}

	containerCfg := &container.Config{
		Image:      opts.Image,
		Cmd:        []string{"sleep", "infinity"},
		Env:        envList,
		WorkingDir: opts.Workdir,
		User:       opts.User,
	}

	hostCfg := &container.HostConfig{}
	networkingCfg := &networktypes.NetworkingConfig{
		EndpointsConfig: map[string]*networktypes.EndpointSettings{},
	}

	useNetwork := opts.Network
	if useNetwork == "" {
		if n, err := c.ownNetwork(ctx); err == nil && n != "" {
			useNetwork = n
		}
	}

	if useNetwork != "" {
		networkingCfg.EndpointsConfig[useNetwork] = &networktypes.EndpointSettings{}
	} else {
		containerPort := nat.Port(fmt.Sprintf("%d/tcp", SidecarPort))
		containerCfg.ExposedPorts = nat.PortSet{containerPort: struct{}{}}
		hostCfg.PortBindings = nat.PortMap{
			containerPort: []nat.PortBinding{{HostIP: "0.0.0.0", HostPort: ""}},
		}
	}

	platform := &ocispec.Platform{OS: c.platform.OS, Architecture: c.platform.Architecture}

	resp, err := c.api.ContainerCreate(ctx, containerCfg, hostCfg, networkingCfg, platform, opts.Name)
	if err != nil {
		return nil, fmt.Errorf("creating container: %w", err)
	}

	console.Debug("created container %s from %s", resp.ID, opts.Image)

	return &Container{
		ID:      resp.ID,
		Image:   opts.Image,
		Network: useNetwork,
		Workdir: opts.Workdir,
		User:    opts.User,
		client:  c,
	}, nil
}

// Start starts the container and resolves the sidecar's dial address. It
// does not wait for the sidecar to answer; callers poll that separately
// (see WaitForSidecar in logs.go) so a slow-starting sidecar and a
// genuinely dead container surface different errors.
func (c *Client) Start(ctx context.Context, ctr *Container) error {
	if err := c.api.ContainerStart(ctx, ctr.ID, container.StartOptions{}); err != nil {
		return fmt.Errorf("starting container %s: %w", ctr.ID, err)
	}

	if ctr.Network != "" {
		ctr.ShellAddr = fmt.Sprintf("%s:%d", ctr.ID, SidecarPort)
		ctr.LoaderAddr = ctr.ShellAddr
		return nil
	}

	hostPort, err := c.hostPortFor(ctx, ctr.ID, SidecarPort)
	if err != nil {
		return fmt.Errorf("resolving published port for container %s: %w", ctr.ID, err)
	}
	addr := fmt.Sprintf("127.0.0.1:%d", hostPort)
	ctr.ShellAddr = addr
	ctr.LoaderAddr = addr
	return nil
}

// ExecDetached runs cmd inside ctr and returns as soon as the exec starts,
// without waiting for it to finish. Used to launch the sidecar binary as a
// background process right after the container itself starts, the way
// testenv.go's readiness probe uses ContainerExecCreate/ContainerExecStart
// for its own one-shot checks, except here the command is never inspected
// for an exit code because it's expected to keep running.
func (c *Client) ExecDetached(ctx context.Context, ctr *Container, cmd []string) error {
	execResp, err := c.api.ContainerExecCreate(ctx, ctr.ID, container.ExecOptions{
		Cmd:    cmd,
		Detach: true,
	})
	if err != nil {
		return fmt.Errorf("creating exec for container %s: %w", ctr.ID, err)
	}

	if err := c.api.ContainerExecStart(ctx, execResp.ID, container.ExecStartOptions{}); err != nil {
		return fmt.Errorf("starting exec for container %s: %w", ctr.ID, err)
	}

	return nil
}

// Stop kills and removes the container. Safe to call more than once; only
// the first call does anything.
func (c *Client) Stop(ctx context.Context, ctr *Container) error {
	var stopErr error
	ctr.teardown.Do(func() {
		if err := c.api.ContainerKill(ctx, ctr.ID, "KILL"); err != nil && !isContainerNotFoundError(err) {
			stopErr = fmt.Errorf("killing container %s: %w", ctr.ID, err)
			return
		}
		if err := c.api.ContainerRemove(ctx, ctr.ID, container.RemoveOptions{}); err != nil && !isContainerNotFoundError(err) {
			stopErr = fmt.Errorf("removing container %s: %w", ctr.ID, err)
		}
	})
	return stopErr
}

func (c *Client) hostPortFor(ctx context.Context, containerID string, containerPort int) (int, error) {
	info, err := c.api.ContainerInspect(ctx, containerID)
	if err != nil {
		return 0, err
	}

	if info.State == nil || !info.State.Running {
		return 0, fmt.Errorf("container %s is not running", containerID)
	}

	if info.NetworkSettings == nil {
		return 0, fmt.Errorf("container %s does not have expected network configuration", containerID)
	}

	bindings := info.NetworkSettings.Ports[nat.Port(fmt.Sprintf("%d/tcp", containerPort))]
	for _, b := range bindings {
		if b.HostIP == "0.0.0.0" || b.HostIP == "" {
			port, err := strconv.Atoi(b.HostPort)
			if err != nil {
				return 0, fmt.Errorf("parsing host port %q: %w", b.HostPort, err)
			}
			return port, nil
		}
	}

	if len(bindings) > 0 {
		return 0, fmt.Errorf("container %s does not have a port bound to 0.0.0.0", containerID)
	}
	return 0, fmt.Errorf("container %s does not have expected network configuration", containerID)
}
