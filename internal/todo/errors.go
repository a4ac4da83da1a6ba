package todo

import (
	"errors"
	"fmt"

	"github.com/Makepad-fr/todo/internal/command"
)

// ErrIndexOutOfRange is matched by every *IndexError.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError reports a display position outside 1..Len.
type IndexError struct {
	Position command.Position
	Len      int
}

func (e *IndexError) Error() string {
	noun := "tasks"
	if e.Len == 1 {
		noun = "task"
	}
	return fmt.Sprintf("%s: position %d (list has %d %s)", ErrIndexOutOfRange, e.Position, e.Len, noun)
}

func (e *IndexError) Is(target error) bool { return target == ErrIndexOutOfRange }
