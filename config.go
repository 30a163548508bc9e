package executor

import (
	"io"
	"time"

	"github.com/bosun-ai/swiftide-docker-executor/internal/dockercontext"
	"github.com/bosun-ai/swiftide-docker-executor/internal/dockerengine"
)

// defaultSidecarImage is the published image carrying the gRPC sidecar
// binary this module injects into every built Dockerfile.
const defaultSidecarImage = "bosunai/swiftide-docker-service:latest"

// Config holds everything an Executor needs to build and run a container.
// Built exclusively through New and its Option functions; the zero value
// is not meant to be used directly.
type Config struct {
	ContextPath    string
	DockerfilePath string
	ImageName      string
	ImageTag       string
	SkipBuild      bool
	Workdir        string
	User           string
	DefaultTimeout time.Duration
	Env            map[string]string

	SidecarImage string

	// Domain-stack additions (optional, all off by default).
	Backend           dockerengine.Backend
	RegistryAuthHosts []string
	Platform          *platform
	ProgressOutput    io.Writer
	IgnoreFilenames   []string
}

type platform struct {
	OS, Arch string
}

func defaultConfig() Config {
	return Config{
		DockerfilePath:  "Dockerfile",
		Workdir:         "/app",
		DefaultTimeout:  5 * time.Minute,
		SidecarImage:    defaultSidecarImage,
		IgnoreFilenames: dockercontext.DefaultIgnoreFilenames,
	}
}

// Option configures a Config at Executor construction time.
type Option func(*Config)

// WithContextPath sets the project directory packed into the build context.
func WithContextPath(path string) Option {
	return func(c *Config) { c.ContextPath = path }
}

// WithImageName sets the name the built (or pre-existing, with
// WithSkipBuild) image is tagged under.
func WithImageName(name string) Option {
	return func(c *Config) { c.ImageName = name }
}

// WithDockerfile overrides the default "Dockerfile" path, relative to
// ContextPath, that's read and rewritten before building.
func WithDockerfile(path string) Option {
	return func(c *Config) { c.DockerfilePath = path }
}

// WithWorkdir overrides the default "/app" working directory commands run
// in and relative paths resolve against.
func WithWorkdir(dir string) Option {
	return func(c *Config) { c.Workdir = dir }
}

// WithUser sets the container user, passed straight through to the engine.
func WithUser(user string) Option {
	return func(c *Config) { c.User = user }
}

// WithDefaultTimeout sets the timeout applied to a Command that doesn't set
// its own. The default is five minutes.
func WithDefaultTimeout(d time.Duration) Option {
	return func(c *Config) { c.DefaultTimeout = d }
}

// WithoutDefaultTimeout disables the default timeout; a Command runs until
// it completes or its own Timeout fires, with no fallback.
func WithoutDefaultTimeout() Option {
	return func(c *Config) { c.DefaultTimeout = 0 }
}

// WithSkipBuild skips the build step entirely: ImageName (optionally
// :ImageTag) is expected to already exist in the local engine.
func WithSkipBuild() Option {
	return func(c *Config) { c.SkipBuild = true }
}

// WithEnv sets environment variables in the container.
func WithEnv(env map[string]string) Option {
	return func(c *Config) { c.Env = env }
}

// WithBackend selects the image build backend explicitly: BackendClassic
// (the default) or BackendBuildKit.
func WithBackend(b dockerengine.Backend) Option {
	return func(c *Config) { c.Backend = b }
}

// WithRegistryAuth loads credentials for host from the local docker
// config, so a build or pull against a private registry can authenticate.
// May be called more than once to add several hosts.
func WithRegistryAuth(host string) Option {
	return func(c *Config) { c.RegistryAuthHosts = append(c.RegistryAuthHosts, host) }
}

// WithPlatform pins the OS/architecture used for container create,
// overriding the default (linux/amd64). Image builds do not use it: the
// BuildKit backend always builds for linux/amd64 and the classic backend
// leaves the platform to the engine.
func WithPlatform(os, arch string) Option {
	return func(c *Config) { c.Platform = &platform{OS: os, Arch: arch} }
}

// WithProgressOutput routes classic-backend build progress to w as
// human-readable JSON-message output, the way `docker build` renders it to
// a terminal. Unset means classic build output lines are only echoed by
// pkg/console at debug level.
func WithProgressOutput(w io.Writer) Option {
	return func(c *Config) { c.ProgressOutput = w }
}

// WithIgnoreFilenames overrides which per-directory filenames are parsed as
// ignore files when packing the build context, in precedence order (the
// first one present in a directory governs it). Defaults to
// ".dockerignore", ".gitignore", ".ignore".
func WithIgnoreFilenames(names ...string) Option {
	return func(c *Config) { c.IgnoreFilenames = names }
}
