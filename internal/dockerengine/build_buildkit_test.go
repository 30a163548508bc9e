package dockerengine

import (
	"context"
	"testing"

	"github.com/docker/docker/api/types/registry"
	"github.com/moby/buildkit/session/auth"
	"github.com/stretchr/testify/require"
)

func TestSolveOptFromImageOptionsSetsFrontendAttrsAndExport(t *testing.T) {
	opts := ImageBuildOptions{
		ImageName:  "myimage",
		ImageTag:   "v1",
		ContextDir: "/ctx",
		NoCache:    true,
		Labels:     map[string]string{"org.example.rev": "abc123"},
		BuildArgs:  map[string]*string{"VERSION": strPtr("1.2.3"), "SKIPPED": nil},
	}

	solveOpt := solveOptFromImageOptions("/tmp/dir", "Dockerfile.generated", opts)

	require.Equal(t, "dockerfile.v0", solveOpt.Frontend)
	require.Equal(t, "Dockerfile.generated", solveOpt.FrontendAttrs["filename"])
	require.Equal(t, "", solveOpt.FrontendAttrs["no-cache"])
	require.Equal(t, "abc123", solveOpt.FrontendAttrs["label:org.example.rev"])
	require.Equal(t, "1.2.3", solveOpt.FrontendAttrs["build-arg:VERSION"])
	require.NotContains(t, solveOpt.FrontendAttrs, "build-arg:SKIPPED")

	require.Equal(t, "/tmp/dir", solveOpt.LocalDirs["dockerfile"])
	require.Equal(t, "/ctx", solveOpt.LocalDirs["context"])

	require.Len(t, solveOpt.Exports, 1)
	require.Equal(t, "moby", solveOpt.Exports[0].Type)
	require.Equal(t, opts.Tag(), solveOpt.Exports[0].Attrs["name"])
}

func TestBuildkitAuthProviderCredentialsLooksUpByHost(t *testing.T) {
	ap := &buildkitAuthProvider{
		auths: map[string]registry.AuthConfig{
			"registry.example.com": {Username: "alice", Password: "s3cret"},
		},
	}

	res, err := ap.Credentials(context.Background(), &auth.CredentialsRequest{Host: "registry.example.com"})
	require.NoError(t, err)
	require.Equal(t, "alice", res.Username)
	require.Equal(t, "s3cret", res.Secret)

	res, err = ap.Credentials(context.Background(), &auth.CredentialsRequest{Host: "unknown.example.com"})
	require.NoError(t, err)
	require.Empty(t, res.Username)
	require.Empty(t, res.Secret)
}

func TestBuildkitAuthProviderTokenMethodsAreDisabled(t *testing.T) {
	ap := &buildkitAuthProvider{}

	_, err := ap.FetchToken(context.Background(), &auth.FetchTokenRequest{})
	require.Error(t, err)

	_, err = ap.GetTokenAuthority(context.Background(), &auth.GetTokenAuthorityRequest{})
	require.Error(t, err)

	_, err = ap.VerifyTokenAuthority(context.Background(), &auth.VerifyTokenAuthorityRequest{})
	require.Error(t, err)
}

func strPtr(s string) *string { return &s }
