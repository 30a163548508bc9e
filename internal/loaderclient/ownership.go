package loaderclient

import (
	"context"

	"github.com/bosun-ai/swiftide-docker-executor/internal/tracelog"
)

// Owner is the narrow lifecycle contract a running executor satisfies.
// It is defined here, rather than taking a concrete executor type,
// because the executor package is the one importing loaderclient — a
// loaderclient->executor import would be circular. A RunningExecutor
// implements this interface directly.
type Owner interface {
	// LoaderAddr is the dial target for the sidecar's file loader service.
	LoaderAddr() string
	// Tracer returns the executor's trace logger, or nil.
	Tracer() *tracelog.Logger
	// Borrow registers one more in-flight loader, deferring the
	// executor's own teardown until a matching Release.
	Borrow()
	// Release undoes a Borrow. If the executor has already been closed
	// and this was the last outstanding borrow, it runs the deferred
	// teardown.
	Release()
	// TakeOwnership transfers exclusive teardown responsibility to the
	// caller: the executor's own Close becomes a no-op, and the
	// returned func performs the container teardown exactly once.
	TakeOwnership() func()
}

// BorrowedFileLoader opens a file loader stream that shares owner's
// lifetime: owner's own teardown is deferred while this Stream is open,
// but closing the Stream never tears owner down itself.
func BorrowedFileLoader(ctx context.Context, owner Owner, rootPath string, extensions ...string) (*Stream, error) {
	owner.Borrow()

	stream, err := dial(ctx, owner.LoaderAddr(), rootPath, extensions, owner.Tracer())
	if err != nil {
		owner.Release()
		return nil, err
	}

	stream.release = owner.Release
	return stream, nil
}

// IntoFileLoader opens a file loader stream that takes over exclusive
// ownership of owner's container: owner's own Close becomes inert, and
// the container is torn down when the returned Stream is closed instead.
func IntoFileLoader(ctx context.Context, owner Owner, rootPath string, extensions ...string) (*Stream, error) {
	teardown := owner.TakeOwnership()

	stream, err := dial(ctx, owner.LoaderAddr(), rootPath, extensions, owner.Tracer())
	if err != nil {
		teardown()
		return nil, err
	}

	stream.release = teardown
	return stream, nil
}
