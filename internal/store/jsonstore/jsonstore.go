package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Makepad-fr/todo/internal/model"
	"github.com/Makepad-fr/todo/internal/todo"
)

// JSON-backed storage. Single file, human-readable, portable.
// No locking: one process owns the file for the length of one command.

// DefaultFile is used when no path is configured.
const DefaultFile = "tasks.json"

var (
	// ErrIO marks a file that could not be read or written.
	ErrIO = errors.New("task file i/o failure")
	// ErrDecode marks a task file with corrupt or incompatible content.
	ErrDecode = errors.New("task file is corrupt")
	// ErrOwnerRequired is returned when a new list is needed but no owner is known.
	ErrOwnerRequired = errors.New("owner is not set (set TODO_OWNER or USER)")
)

// snapshot is the on-disk shape: {"tasks": [...], "name": "..."}.
type snapshot[T model.Item] struct {
	Tasks []T    `json:"tasks"`
	Name  string `json:"name"`
}

// wire mirrors snapshot with pointers so missing or null keys are detectable.
type wire[T model.Item] struct {
	Tasks *[]T    `json:"tasks"`
	Name  *string `json:"name"`
}

// Status says where a loaded list came from.
type Status int

const (
	Loaded Status = iota
	Created
)

func (s Status) String() string {
	if s == Created {
		return "created"
	}
	return "loaded"
}

// Load reads the list stored at path. A missing file yields a new, empty
// list owned by owner. Unreadable or corrupt files are errors; they are
// never replaced by an empty list.
func Load[T model.Item](path, owner string, opts ...todo.Option) (*todo.List[T], Status, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if strings.TrimSpace(owner) == "" {
				return nil, Created, ErrOwnerRequired
			}
			return todo.New[T](owner, opts...), Created, nil
		}
		return nil, Loaded, fmt.Errorf("%w: read %s: %w", ErrIO, path, err)
	}
	l, err := Decode[T](b, opts...)
	if err != nil {
		return nil, Loaded, fmt.Errorf("%s: %w", path, err)
	}
	return l, Loaded, nil
}

// Decode parses a snapshot. Both keys must be present and non-null.
func Decode[T model.Item](b []byte, opts ...todo.Option) (*todo.List[T], error) {
	var w wire[T]
	if err := json.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if w.Tasks == nil {
		return nil, fmt.Errorf("%w: missing \"tasks\"", ErrDecode)
	}
	if w.Name == nil {
		return nil, fmt.Errorf("%w: missing \"name\"", ErrDecode)
	}
	return todo.Restore(*w.Name, *w.Tasks, opts...), nil
}

// Encode renders l as indented JSON with a trailing newline.
func Encode[T model.Item](l *todo.List[T]) ([]byte, error) {
	tasks := l.Tasks()
	if tasks == nil {
		tasks = []T{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(snapshot[T]{Tasks: tasks, Name: l.Owner()}); err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the whole list to path, replacing whatever was there.
func Save[T model.Item](path string, l *todo.List[T]) error {
	b, err := Encode(l)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: mkdir %s: %w", ErrIO, dir, err)
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}
	return nil
}
