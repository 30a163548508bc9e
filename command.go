package executor

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// Command is a single shell invocation against a RunningExecutor.
type Command struct {
	Shell string
	// CurrentDir is resolved against the executor's Workdir: empty means
	// Workdir itself, a relative path is joined onto it, an absolute path
	// is used as-is.
	CurrentDir string
	// Timeout, if zero, falls back to the executor's DefaultTimeout; if
	// that's also zero (WithoutDefaultTimeout), the command runs with no
	// deadline beyond the caller's context.
	Timeout time.Duration
}

// CommandOutput is the result of a completed command. A non-zero ExitCode
// is a successful call from Exec's point of view, never a Go error.
type CommandOutput struct {
	ExitCode int32
	Stdout   string
	Stderr   string
}

// ReadFile builds a Command that prints path's contents to stdout.
func ReadFile(path string) Command {
	return Command{Shell: fmt.Sprintf("cat %s", shellQuote(path))}
}

// WriteFile builds a Command that writes data to path, base64-encoding it
// over the wire so arbitrary binary content survives the shell round trip.
func WriteFile(path string, data []byte) Command {
	encoded := base64.StdEncoding.EncodeToString(data)
	return Command{
		Shell: fmt.Sprintf("echo %s | base64 -d > %s", shellQuote(encoded), shellQuote(path)),
	}
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
