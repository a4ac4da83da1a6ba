package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Makepad-fr/todo/internal/config"
	"github.com/Makepad-fr/todo/internal/exitcode"
	"github.com/Makepad-fr/todo/internal/store/jsonstore"
	"github.com/Makepad-fr/todo/internal/todo"
)

// ParseError reports command-line input that does not form a command.
type ParseError struct {
	Cmd string // subcommand, empty for the root
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse failure: ")
	if e.Cmd != "" {
		b.WriteString(e.Cmd + ": ")
	}
	b.WriteString(e.Msg)
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErrorf(cmd, format string, args ...any) error {
	return &ParseError{Cmd: cmd, Msg: fmt.Sprintf(format, args...)}
}

// ExitCode maps an error from Execute's command tree to a process status.
// When several causes are joined, storage failures outrank the command's
// own failure since they happen last.
func ExitCode(err error) int {
	var pe *ParseError
	switch {
	case err == nil:
		return exitcode.Success
	case errors.Is(err, jsonstore.ErrIO):
		return exitcode.IO
	case errors.Is(err, jsonstore.ErrDecode):
		return exitcode.Corrupt
	case errors.Is(err, jsonstore.ErrOwnerRequired), errors.Is(err, config.ErrConfig):
		return exitcode.Config
	case errors.Is(err, todo.ErrIndexOutOfRange):
		return exitcode.IndexOutOfRange
	case errors.As(err, &pe):
		return exitcode.Usage
	default:
		return exitcode.Failure
	}
}
