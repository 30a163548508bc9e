package console

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Instance is the package-wide console. The executor logs through it by
// default so embedding applications get sane output without wiring
// anything, but nothing stops a caller from constructing its own Console
// and ignoring this one entirely.
var Instance = &Console{
	Color: IsTTY(os.Stderr),
	Level: InfoLevel,
}

func SetLevel(level Level) {
	Instance.Level = level
}

func SetColor(color bool) {
	Instance.Color = color
}

func Debug(msg string, v ...interface{}) {
	Instance.Debug(msg, v...)
}

func Info(msg string, v ...interface{}) {
	Instance.Info(msg, v...)
}

func Warn(msg string, v ...interface{}) {
	Instance.Warn(msg, v...)
}

func Error(msg string, v ...interface{}) {
	Instance.Error(msg, v...)
}

func Fatal(msg string, v ...interface{}) {
	Instance.Fatal(msg, v...)
}

func Output(line string) {
	Instance.Output(line)
}

func OutputErr(line string) {
	Instance.OutputErr(line)
}

func DebugOutput(line string) {
	Instance.DebugOutput(line)
}

// IsTTY reports whether f is attached to an interactive terminal.
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd())
}
