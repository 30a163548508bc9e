package dockerengine

import (
	"context"
	"os"
	"path/filepath"
)

// WriteDockerfile writes contents to name under dir, returning the full
// path. The BuildKit backend reads its Dockerfile from disk this way; the
// classic backend receives it inside the tar stream from dockercontext.Pack
// instead.
func WriteDockerfile(dir, name, contents string) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// ImageBuildOptions describes a single image build, independent of which
// backend (classic or BuildKit) ends up running it.
type ImageBuildOptions struct {
	ImageName string
	ImageTag  string
	// ContextDir is the build context directory BuildWithBuildKit hands to
	// BuildKit as its "context" LocalDir (see dockercontext.Materialize).
	// BuildWithClassic does not use it: it takes the packed context as a
	// tar stream.
	ContextDir string
	// DockerfileContents is not read by either backend; the Dockerfile
	// reaches the build through Pack's tar stream (classic) or the
	// dockerfileDir passed to BuildWithBuildKit.
	DockerfileContents string
	BuildArgs map[string]*string
	Labels    map[string]string
	NoCache   bool
	// PullParent mirrors "docker build --pull": attempt to pull a newer
	// version of the base image before building, even if one is already
	// cached locally.
	PullParent bool
	// TraceTag identifies this build in tracelog output before a
	// container exists to tag it by ID.
	TraceTag string
}

// Tag returns "ImageName:ImageTag", or just ImageName if ImageTag is unset.
func (o ImageBuildOptions) Tag() string {
	if o.ImageTag == "" {
		return o.ImageName
	}
	return o.ImageName + ":" + o.ImageTag
}

// ImageExists reports whether ref is already present in the engine's local
// image store, so callers can skip a pull.
func (c *Client) ImageExists(ctx context.Context, ref string) (bool, error) {
	_, _, err := c.api.ImageInspectWithRaw(ctx, ref)
	if err != nil {
		if isImageNotFoundError(err) || isTagNotFoundError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
