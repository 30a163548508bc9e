// Package dockerengine talks to the local Docker Engine: building images,
// running and tearing down containers, and tailing their logs. It's the
// only package in this module that imports the Docker SDK directly.
package dockerengine

import (
	"context"
	"fmt"
	"sync"

	"github.com/docker/docker/api/types/registry"
	dc "github.com/docker/docker/client"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// Backend selects which image build path the engine uses.
type Backend int

const (
	// BackendClassic builds via the engine's legacy /build endpoint,
	// streaming jsonmessage progress.
	BackendClassic Backend = iota
	// BackendBuildKit dials the engine's embedded BuildKit daemon over a
	// hijacked gRPC connection.
	BackendBuildKit
)

// Client wraps a Docker Engine API connection with the handful of
// higher-level operations the executor needs: building images, running
// containers, and tearing them down. A Client is safe for concurrent use.
type Client struct {
	api           *dc.Client
	backend       Backend
	platform      ocispec.Platform
	registryAuths map[string]registry.AuthConfig
	// ownsAPI is false when api is the process-wide shared connection
	// (see Shared/WithSharedConnection): Close must leave it open for
	// other Clients still using it.
	ownsAPI bool
}

// ClientOption configures a Client at construction time.
type ClientOption func(*clientConfig)

type clientConfig struct {
	host          string
	backend       Backend
	platform      ocispec.Platform
	registryHosts []string
	shared        bool
}

// WithHost overrides engine host discovery (DOCKER_HOST / docker context /
// default) with an explicit address.
func WithHost(host string) ClientOption {
	return func(c *clientConfig) { c.host = host }
}

// WithSharedConnection reuses the process-wide engine connection (see
// Shared) instead of dialing a fresh one, while still applying this
// call's own WithBackend/WithPlatform/WithRegistryAuth options. Ignored
// if combined with WithHost, since the shared connection resolves its
// host once, the first time it's needed.
func WithSharedConnection() ClientOption {
	return func(c *clientConfig) { c.shared = true }
}

// WithBackend selects the image build backend.
func WithBackend(b Backend) ClientOption {
	return func(c *clientConfig) { c.backend = b }
}

// WithPlatform pins the platform used for container creation. Defaults to
// linux/amd64. Image builds do not use it.
func WithPlatform(os, arch string) ClientOption {
	return func(c *clientConfig) { c.platform = ocispec.Platform{OS: os, Architecture: arch} }
}

// WithRegistryAuth loads credentials for host from the local docker config
// (credential helper or config.json) so image pulls and BuildKit solves can
// authenticate against a private registry.
func WithRegistryAuth(host string) ClientOption {
	return func(c *clientConfig) { c.registryHosts = append(c.registryHosts, host) }
}

// NewClient resolves the engine host, negotiates the API version, and
// verifies connectivity before returning. Registry credentials requested
// via WithRegistryAuth are loaded once and cached for the Client's
// lifetime, mirroring the lazy-auth-load idiom used for the engine
// connection itself.
func NewClient(ctx context.Context, opts ...ClientOption) (*Client, error) {
	cfg := &clientConfig{
		platform: ocispec.Platform{OS: "linux", Architecture: "amd64"},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var api *dc.Client
	ownsAPI := true

	if cfg.shared && cfg.host == "" {
		shared, err := sharedAPI()
		if err != nil {
			return nil, &EngineConnectError{Err: err}
		}
		api = shared
		ownsAPI = false
	} else {
		if cfg.host == "" {
			host, err := determineDockerHost()
			if err != nil {
				return nil, &EngineConnectError{Err: fmt.Errorf("determining docker host: %w", err)}
			}
			cfg.host = host
		}

		dialed, err := dc.NewClientWithOpts(
			dc.WithTLSClientConfigFromEnv(),
			dc.WithVersionFromEnv(),
			dc.WithAPIVersionNegotiation(),
			dc.WithHost(cfg.host),
		)
		if err != nil {
			return nil, &EngineConnectError{Err: fmt.Errorf("creating docker client: %w", err)}
		}
		if _, err := dialed.Ping(ctx); err != nil {
			return nil, &EngineConnectError{Err: fmt.Errorf("pinging docker engine at %s: %w", cfg.host, err)}
		}
		api = dialed
	}

	auths := make(map[string]registry.AuthConfig)
	if len(cfg.registryHosts) > 0 {
		loaded, err := loadRegistryAuths(ctx, cfg.registryHosts...)
		if err != nil {
			return nil, &EngineConnectError{Err: fmt.Errorf("loading registry auth: %w", err)}
		}
		auths = loaded
	}

	return &Client{
		api:           api,
		backend:       cfg.backend,
		platform:      cfg.platform,
		registryAuths: auths,
		ownsAPI:       ownsAPI,
	}, nil
}

// Close releases the underlying engine connection, unless it's the
// process-wide shared one (WithSharedConnection), which outlives any one
// Client and is left for other Clients still using it.
func (c *Client) Close() error {
	if !c.ownsAPI {
		return nil
	}
	return c.api.Close()
}

// EngineConnectError wraps a failure to reach or negotiate with the Docker
// Engine, as opposed to a failure of a specific operation against it.
type EngineConnectError struct {
	Err error
}

func (e *EngineConnectError) Error() string { return fmt.Sprintf("docker engine unreachable: %v", e.Err) }
func (e *EngineConnectError) Unwrap() error { return e.Err }

// sharedAPI is the process-wide engine connection spec.md §5 calls for: a
// single lazily-initialized, mutually-exclusive-to-construct handle that
// every Client built with WithSharedConnection (including every
// executor.Start call, by default) reuses instead of dialing its own.
var sharedAPI = sync.OnceValues(func() (*dc.Client, error) {
	host, err := determineDockerHost()
	if err != nil {
		return nil, fmt.Errorf("determining docker host: %w", err)
	}

	api, err := dc.NewClientWithOpts(
		dc.WithTLSClientConfigFromEnv(),
		dc.WithVersionFromEnv(),
		dc.WithAPIVersionNegotiation(),
		dc.WithHost(host),
	)
	if err != nil {
		return nil, fmt.Errorf("creating docker client: %w", err)
	}

	if _, err := api.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("pinging docker engine at %s: %w", host, err)
	}

	return api, nil
})

// Shared returns a Client wrapping the process-wide engine connection,
// with default backend/platform and no registry auth. Most callers go
// through NewClient(ctx, WithSharedConnection(), ...) instead, so their
// own backend/platform/registry options are visible at the call site;
// Shared exists for code paths (like a quick connectivity probe) that
// just need "the" local engine with no further configuration.
func Shared(ctx context.Context) (*Client, error) {
	return NewClient(ctx, WithSharedConnection())
}
