// Package console prints executor progress and diagnostics to the user's
// terminal: build output, container lifecycle events, and RPC failures.
// It is deliberately separate from internal/tracelog, which records
// per-command debug traces rather than user-facing status.
package console

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/logrusorgru/aurora"
	"github.com/mitchellh/go-wordwrap"
)

// Console writes leveled, optionally colored and word-wrapped lines to
// stderr, plus raw output lines to stdout. A single Console is safe for
// concurrent use; the executor logs from the build goroutine, the
// container log tailer, and the caller's own goroutine at once.
type Console struct {
	Color     bool
	IsMachine bool
	Level     Level
	mu        sync.Mutex
}

func (c *Console) Debug(msg string, v ...interface{}) {
	c.log(DebugLevel, msg, v...)
}

func (c *Console) Info(msg string, v ...interface{}) {
	c.log(InfoLevel, msg, v...)
}

func (c *Console) Warn(msg string, v ...interface{}) {
	c.log(WarnLevel, msg, v...)
}

func (c *Console) Error(msg string, v ...interface{}) {
	c.log(ErrorLevel, msg, v...)
}

// Fatal logs at FatalLevel and terminates the process. The executor
// package itself never calls this; it's here for callers building a CLI
// on top of the executor.
func (c *Console) Fatal(msg string, v ...interface{}) {
	c.log(FatalLevel, msg, v...)
	os.Exit(1)
}

// Output writes a line to stdout, unadorned. Used for the exec output
// contract, never for status messages.
func (c *Console) Output(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(os.Stdout, line)
}

// OutputErr writes a line to stderr, unadorned.
func (c *Console) OutputErr(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(os.Stderr, line)
}

// DebugOutput writes a line to stderr only when the console is at
// DebugLevel, faint-colored but without the leveled prompt. Used for
// build log passthrough that shouldn't compete visually with status
// lines.
func (c *Console) DebugOutput(line string) {
	if c.Level > DebugLevel {
		return
	}
	if c.Color {
		line = aurora.Faint(line).String()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(os.Stderr, line)
}

func (c *Console) log(level Level, msg string, v ...interface{}) {
	if level < c.Level {
		return
	}

	prompt := "==> "
	continuationPrompt := "    "

	formattedMsg := fmt.Sprintf(msg, v...)

	if width, err := GetWidth(); err == nil && width > 30 {
		formattedMsg = wordwrap.WrapString(formattedMsg, uint(width)-uint(len(prompt)))
	}

	if c.Color {
		color := aurora.Faint
		switch level {
		case WarnLevel:
			color = aurora.Yellow
		case ErrorLevel, FatalLevel:
			color = aurora.Red
		}
		prompt = color(prompt).String()
		continuationPrompt = color(continuationPrompt).String()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, line := range strings.Split(formattedMsg, "\n") {
		if c.Color && level == DebugLevel {
			line = aurora.Faint(line).String()
		}
		if i == 0 {
			line = prompt + line
		} else {
			line = continuationPrompt + line
		}
		fmt.Fprintln(os.Stderr, line)
	}
}
