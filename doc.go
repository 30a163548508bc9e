// Package executor builds and runs an isolated Docker container from a
// project directory and a Dockerfile, injects a gRPC sidecar into it, and
// exposes the running container as a tool an agent or indexing pipeline can
// drive: run shell commands, stream file contents back out.
//
// A typical caller configures an Executor, starts it, runs commands against
// the result, and closes it:
//
//	exec := executor.New(
//		executor.WithContextPath("."),
//		executor.WithImageName("myproject"),
//	)
//	running, err := exec.Start(ctx)
//	if err != nil {
//		return err
//	}
//	defer running.Close(ctx)
//
//	out, err := running.Exec(ctx, executor.Command{Shell: "go test ./..."})
package executor
