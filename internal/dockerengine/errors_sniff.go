package dockerengine

import "strings"

// Error message text varies across engine backends (dockerd, containerd,
// podman, orbstack) and even across dockerd versions. These helpers
// normalize the check so callers can classify a failure without knowing
// which backend produced it.

func isTagNotFoundError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "tag does not exist") ||
		strings.Contains(msg, "An image does not exist locally with the tag")
}

func isImageNotFoundError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "image does not exist") ||
		strings.Contains(msg, "No such image")
}

func isContainerNotFoundError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "container does not exist") ||
		strings.Contains(msg, "No such container")
}

func isAuthorizationFailedError(err error) bool {
	msg := err.Error()

	if strings.Contains(msg, "no basic auth credentials") {
		return true
	}

	if strings.Contains(msg, "authorization failed") ||
		strings.Contains(msg, "401 Unauthorized") ||
		strings.Contains(msg, "unauthorized: authentication required") {
		return true
	}

	return false
}
