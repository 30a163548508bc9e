package dockerengine

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/docker/docker/api/types/registry"
	buildkitclient "github.com/moby/buildkit/client"
	"github.com/moby/buildkit/session"
	"github.com/moby/buildkit/session/auth"
	"github.com/moby/buildkit/util/progress/progressui"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bosun-ai/swiftide-docker-executor/internal/tracelog"
)

func solveOptFromImageOptions(dockerfileDir, dockerfileName string, opts ImageBuildOptions) buildkitclient.SolveOpt {
	frontendAttrs := map[string]string{
		"filename": dockerfileName,
		"platform": "linux/amd64",
	}
	if opts.NoCache {
		frontendAttrs["no-cache"] = ""
	}
	for k, v := range opts.Labels {
		frontendAttrs["label:"+k] = v
	}
	for k, v := range opts.BuildArgs {
		if v == nil {
			continue
		}
		frontendAttrs["build-arg:"+k] = *v
	}

	return buildkitclient.SolveOpt{
		Frontend:      "dockerfile.v0",
		FrontendAttrs: frontendAttrs,
		LocalDirs: map[string]string{
			"dockerfile": dockerfileDir,
			"context":    opts.ContextDir,
		},
		// The engine's built-in worker only supports a handful of
		// exporters; "moby" is the one that lands the result in the
		// engine's own image store instead of pushing it elsewhere.
		Exports: []buildkitclient.ExportEntry{
			{Type: "moby", Attrs: map[string]string{"name": opts.Tag()}},
		},
	}
}

// BuildWithBuildKit dials the engine's embedded BuildKit daemon over its
// hijacked gRPC endpoint and solves opts, routing solve-status events to
// log (via Debug) instead of a terminal display.
func (c *Client) BuildWithBuildKit(ctx context.Context, dockerfileDir, dockerfileName string, opts ImageBuildOptions, log *tracelog.Logger) error {
	bc, err := buildkitclient.New(ctx, "",
		buildkitclient.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return c.api.DialHijack(ctx, "/grpc", "h2c", nil)
		}),
	)
	if err != nil {
		return fmt.Errorf("dialing buildkit: %w", err)
	}
	defer bc.Close()

	solveOpt := solveOptFromImageOptions(dockerfileDir, dockerfileName, opts)
	solveOpt.Session = append(solveOpt.Session, c.buildkitAuthProvider())

	statusCh := make(chan *buildkitclient.SolveStatus)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		_, err := bc.Solve(egCtx, nil, solveOpt, statusCh)
		return err
	})
	eg.Go(func() error {
		for st := range statusCh {
			for _, v := range st.Vertexes {
				if v.Error != "" && log != nil {
					log.Debug(opts.TraceTag, "buildkit vertex error: %s: %s", v.Name, v.Error)
				}
			}
			for _, l := range st.Logs {
				if log != nil {
					log.Debug(opts.TraceTag, "%s", string(l.Data))
				}
			}
		}
		return nil
	})

	return eg.Wait()
}

func (c *Client) buildkitAuthProvider() session.Attachable {
	return &buildkitAuthProvider{auths: c.registryAuths}
}

type buildkitAuthProvider struct {
	auths map[string]registry.AuthConfig
}

func (ap *buildkitAuthProvider) Register(server *grpc.Server) {
	auth.RegisterAuthServer(server, ap)
}

func (ap *buildkitAuthProvider) Credentials(ctx context.Context, req *auth.CredentialsRequest) (*auth.CredentialsResponse, error) {
	res := &auth.CredentialsResponse{}
	if a, ok := ap.auths[req.Host]; ok {
		res.Username = a.Username
		res.Secret = a.Password
	}
	return res, nil
}

func (ap *buildkitAuthProvider) FetchToken(ctx context.Context, req *auth.FetchTokenRequest) (*auth.FetchTokenResponse, error) {
	return nil, status.Errorf(codes.Unavailable, "client side tokens disabled")
}

func (ap *buildkitAuthProvider) GetTokenAuthority(ctx context.Context, req *auth.GetTokenAuthorityRequest) (*auth.GetTokenAuthorityResponse, error) {
	return nil, status.Errorf(codes.Unavailable, "client side tokens disabled")
}

func (ap *buildkitAuthProvider) VerifyTokenAuthority(ctx context.Context, req *auth.VerifyTokenAuthorityRequest) (*auth.VerifyTokenAuthorityResponse, error) {
	return nil, status.Errorf(codes.Unavailable, "client side tokens disabled")
}

// NewTerminalDisplay renders a BuildKit status channel to a terminal,
// for callers (e.g. a CLI built on this module) that want the familiar
// docker-build-style progress UI instead of routing through tracelog.
func NewTerminalDisplay(statusCh chan *buildkitclient.SolveStatus) func() error {
	return func() error {
		display, err := progressui.NewDisplay(os.Stderr, progressui.DisplayMode(os.Getenv("BUILDKIT_PROGRESS")))
		if err != nil {
			return err
		}
		// UpdateFrom must not use the incoming context: canceling it would
		// kill the statusCh reader while Solve is still writing to it.
		_, err = display.UpdateFrom(context.Background(), statusCh)
		return err
	}
}
