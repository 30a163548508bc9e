package dockerengine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/pkg/jsonmessage"

	"github.com/bosun-ai/swiftide-docker-executor/pkg/console"
)

// BuildWithClassic POSTs contextTar (already gzip'd) to the engine's
// legacy /build endpoint and decodes the streamed JSON response, the way
// `docker build` itself does before BuildKit. It returns the full log
// (for ImageBuildError's Log field) regardless of outcome.
//
// When progress is non-nil, the same byte stream is also rendered through
// jsonmessage.DisplayJSONMessagesStream (the docker CLI's own build-output
// renderer) so a caller can show familiar step-by-step build output
// without reimplementing it.
//
// An errorDetail anywhere in the stream wins over a later aux success id:
// the engine can emit a successful image ID and still fail a later step
// (e.g. during tag assignment), so the scan never short-circuits on the
// first aux line.
func (c *Client) BuildWithClassic(ctx context.Context, dockerfileName string, contextTar io.Reader, opts ImageBuildOptions, progress io.Writer) (log []string, err error) {
	resp, err := c.api.ImageBuild(ctx, contextTar, build.ImageBuildOptions{
		Tags:       []string{opts.Tag()},
		Dockerfile: dockerfileName,
		NoCache:    opts.NoCache,
		PullParent: opts.PullParent,
		Remove:     true,
		BuildArgs:  opts.BuildArgs,
		Labels:     opts.Labels,
	})
	if err != nil {
		return nil, fmt.Errorf("starting classic build: %w", err)
	}
	defer resp.Body.Close()

	body := io.Reader(resp.Body)

	var renderDone chan error
	var renderPipe *io.PipeWriter
	if progress != nil {
		var renderIn *io.PipeReader
		renderIn, renderPipe = io.Pipe()
		body = io.TeeReader(resp.Body, renderPipe)
		renderDone = make(chan error, 1)
		go func() {
			renderDone <- jsonmessage.DisplayJSONMessagesStream(renderIn, progress, 0, false, nil)
		}()
	}

	var buildErr error
	decoder := json.NewDecoder(body)
	for {
		var msg struct {
			Stream      string `json:"stream"`
			ErrorDetail *struct {
				Message string `json:"message"`
			} `json:"errorDetail"`
			Error string `json:"error"`
		}
		if err := decoder.Decode(&msg); err != nil {
			if err == io.EOF {
				break
			}
			if renderPipe != nil {
				renderPipe.CloseWithError(err)
				<-renderDone
			}
			return log, fmt.Errorf("decoding build output: %w", err)
		}

		if msg.Stream != "" {
			log = append(log, msg.Stream)
			console.DebugOutput(msg.Stream)
		}
		if msg.ErrorDetail != nil {
			buildErr = fmt.Errorf("%s", msg.ErrorDetail.Message)
		} else if msg.Error != "" {
			buildErr = fmt.Errorf("%s", msg.Error)
		}
	}

	if renderPipe != nil {
		renderPipe.Close()
		<-renderDone
	}

	if buildErr != nil {
		return log, buildErr
	}
	return log, nil
}
