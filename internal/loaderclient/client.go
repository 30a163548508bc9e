// Package loaderclient wraps internal/sidecarproto.FileLoaderServiceClient
// with a simple pull-based iterator over the container's files, and the
// borrow/own duality a caller needs when a loader's lifetime diverges from
// the executor that created it.
package loaderclient

import (
	"context"
	"errors"
	"fmt"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/bosun-ai/swiftide-docker-executor/internal/sidecarproto"
	"github.com/bosun-ai/swiftide-docker-executor/internal/tracelog"
)

// FileNode is one chunk of a streamed file. For a given Path, chunks
// arrive contiguously and in order; concatenating every chunk for a path
// reproduces the full file; OriginalSize is constant across a path's
// chunks. Reassembly into whole files is the caller's responsibility.
type FileNode struct {
	Path         string
	Chunk        []byte
	OriginalSize int32
}

// RPCError wraps a gRPC failure from the file loader stream.
type RPCError struct {
	Err error
}

func (e *RPCError) Error() string { return fmt.Sprintf("file loader rpc error: %v", e.Err) }
func (e *RPCError) Unwrap() error { return e.Err }

// Stream yields FileNode records from one LoadFiles call. It is
// non-restartable: once Next reports done, or returns an error, the
// stream is finished and Close should be called.
type Stream struct {
	conn   *grpc.ClientConn
	recv   sidecarproto.FileLoaderService_LoadFilesClient
	trace  *tracelog.Logger
	done   bool
	// release runs exactly once, from Close, and implements whichever
	// side of the ownership duality this Stream was constructed with
	// (see ownership.go). Nil means the Stream owns nothing.
	release func()
}

// dial opens a connection to addr and starts a LoadFiles call.
func dial(ctx context.Context, addr string, rootPath string, extensions []string, trace *tracelog.Logger) (*Stream, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dialing file loader service at %s: %w", addr, err)
	}

	svc := sidecarproto.NewFileLoaderServiceClient(conn)
	recv, err := svc.LoadFiles(ctx, &sidecarproto.LoadFilesRequest{
		RootPath:       rootPath,
		FileExtensions: extensions,
	})
	if err != nil {
		conn.Close()
		return nil, &RPCError{Err: err}
	}

	return &Stream{conn: conn, recv: recv, trace: trace}, nil
}

// Next returns the next FileNode. The second return is false once the
// stream is exhausted, at which point err is nil and node is the zero
// value.
func (s *Stream) Next() (FileNode, bool, error) {
	if s.done {
		return FileNode{}, false, nil
	}

	resp, err := s.recv.Recv()
	if err != nil {
		s.done = true
		if errors.Is(err, io.EOF) {
			return FileNode{}, false, nil
		}
		return FileNode{}, false, &RPCError{Err: err}
	}

	node := FileNode{
		Path:         resp.GetPath(),
		Chunk:        resp.GetChunk(),
		OriginalSize: resp.GetOriginalSize(),
	}
	s.trace.Debug("loader", "%s: %d bytes (of %d)", node.Path, len(node.Chunk), node.OriginalSize)
	return node, true, nil
}

// Close releases the underlying connection and runs whichever teardown
// obligation this Stream was constructed with. Safe to call more than
// once; idempotent after the first call.
func (s *Stream) Close() error {
	if s.release != nil {
		s.release()
		s.release = nil
	}
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}
