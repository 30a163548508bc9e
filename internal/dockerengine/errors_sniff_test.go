package dockerengine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsTagNotFoundError(t *testing.T) {
	require.True(t, isTagNotFoundError(errors.New("tag does not exist")))
	require.True(t, isTagNotFoundError(errors.New("An image does not exist locally with the tag: foo:latest")))
	require.False(t, isTagNotFoundError(errors.New("some other failure")))
}

func TestIsImageNotFoundError(t *testing.T) {
	require.True(t, isImageNotFoundError(errors.New("No such image: foo:latest")))
	require.True(t, isImageNotFoundError(errors.New("image does not exist")))
	require.False(t, isImageNotFoundError(errors.New("container does not exist")))
}

func TestIsContainerNotFoundError(t *testing.T) {
	require.True(t, isContainerNotFoundError(errors.New("No such container: abc123")))
	require.False(t, isContainerNotFoundError(errors.New("image does not exist")))
}

func TestIsAuthorizationFailedError(t *testing.T) {
	require.True(t, isAuthorizationFailedError(errors.New("no basic auth credentials")))
	require.True(t, isAuthorizationFailedError(errors.New("Head: 401 Unauthorized")))
	require.True(t, isAuthorizationFailedError(errors.New("unauthorized: authentication required")))
	require.False(t, isAuthorizationFailedError(errors.New("context deadline exceeded")))
}
