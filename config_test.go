package executor

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bosun-ai/swiftide-docker-executor/internal/dockerengine"
)

func TestDefaultConfigHasUsableDefaults(t *testing.T) {
	cfg := defaultConfig()

	require.Equal(t, "Dockerfile", cfg.DockerfilePath)
	require.Equal(t, "/app", cfg.Workdir)
	require.Equal(t, 5*time.Minute, cfg.DefaultTimeout)
	require.Equal(t, defaultSidecarImage, cfg.SidecarImage)
	require.NotEmpty(t, cfg.IgnoreFilenames)
}

func TestOptionsOverrideDefaults(t *testing.T) {
	var progress bytes.Buffer

	e := New(
		WithContextPath("/src"),
		WithImageName("myimage"),
		WithDockerfile("Dockerfile.prod"),
		WithWorkdir("/work"),
		WithUser("1000:1000"),
		WithDefaultTimeout(30*time.Second),
		WithSkipBuild(),
		WithEnv(map[string]string{"FOO": "bar"}),
		WithBackend(dockerengine.BackendBuildKit),
		WithRegistryAuth("registry.example.com"),
		WithPlatform("linux", "arm64"),
		WithProgressOutput(&progress),
		WithIgnoreFilenames(".customignore"),
	)

	cfg := e.cfg
	require.Equal(t, "/src", cfg.ContextPath)
	require.Equal(t, "myimage", cfg.ImageName)
	require.Equal(t, "Dockerfile.prod", cfg.DockerfilePath)
	require.Equal(t, "/work", cfg.Workdir)
	require.Equal(t, "1000:1000", cfg.User)
	require.Equal(t, 30*time.Second, cfg.DefaultTimeout)
	require.True(t, cfg.SkipBuild)
	require.Equal(t, "bar", cfg.Env["FOO"])
	require.Equal(t, dockerengine.BackendBuildKit, cfg.Backend)
	require.Equal(t, []string{"registry.example.com"}, cfg.RegistryAuthHosts)
	require.Equal(t, &platform{OS: "linux", Arch: "arm64"}, cfg.Platform)
	require.Same(t, &progress, cfg.ProgressOutput)
	require.Equal(t, []string{".customignore"}, cfg.IgnoreFilenames)
}

func TestWithoutDefaultTimeoutZeroesTheDefault(t *testing.T) {
	e := New(WithDefaultTimeout(time.Minute), WithoutDefaultTimeout())
	require.Zero(t, e.cfg.DefaultTimeout)
}

func TestWithRegistryAuthAccumulatesAcrossCalls(t *testing.T) {
	e := New(
		WithRegistryAuth("a.example.com"),
		WithRegistryAuth("b.example.com"),
	)
	require.Equal(t, []string{"a.example.com", "b.example.com"}, e.cfg.RegistryAuthHosts)
}
