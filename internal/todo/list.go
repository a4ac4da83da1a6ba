// Package todo holds the in-memory task list and the state transitions that
// interpret commands against it.
package todo

import (
	"fmt"
	"io"
	"slices"

	"github.com/Makepad-fr/todo/internal/command"
	"github.com/Makepad-fr/todo/internal/model"
)

// List is an owner-named, ordered task list. Insertion order is display
// order: display position i always refers to tasks[i-1].
type List[T model.Item] struct {
	owner  string
	tasks  []T
	render Renderer
}

// Option configures a List.
type Option func(*options)

type options struct {
	render Renderer
}

// WithRenderer sets the renderer used by Print. The default is PlainRenderer.
func WithRenderer(r Renderer) Option {
	return func(o *options) { o.render = r }
}

// New returns an empty list owned by owner.
func New[T model.Item](owner string, opts ...Option) *List[T] {
	return Restore[T](owner, nil, opts...)
}

// Restore rebuilds a list from a persisted owner and task sequence.
// The list keeps its own copy of tasks.
func Restore[T model.Item](owner string, tasks []T, opts ...Option) *List[T] {
	o := options{render: PlainRenderer}
	for _, opt := range opts {
		opt(&o)
	}
	if o.render == nil {
		o.render = PlainRenderer
	}
	return &List[T]{
		owner:  owner,
		tasks:  slices.Clone(tasks),
		render: o.render,
	}
}

func (l *List[T]) Owner() string { return l.owner }

func (l *List[T]) Len() int { return len(l.tasks) }

// Tasks returns a copy of the tasks in display order.
func (l *List[T]) Tasks() []T { return slices.Clone(l.tasks) }

// At returns the task shown at pos.
func (l *List[T]) At(pos command.Position) (T, error) {
	i, err := l.index(pos)
	if err != nil {
		var zero T
		return zero, err
	}
	return l.tasks[i], nil
}

// Apply interprets cmd. Print output goes to out. A failed command leaves
// the list unchanged.
func (l *List[T]) Apply(cmd command.Command[T], out io.Writer) error {
	switch cmd.Kind() {
	case command.KindAdd:
		l.add(cmd.Item())
		return nil
	case command.KindRemove:
		return l.remove(cmd.Position())
	case command.KindModify:
		return l.modify(cmd.Position(), cmd.Item())
	case command.KindPrint:
		return l.print(out)
	default:
		return fmt.Errorf("unknown command kind: %s", cmd.Kind())
	}
}

func (l *List[T]) add(item T) {
	l.tasks = append(l.tasks, item)
}

func (l *List[T]) remove(pos command.Position) error {
	i, err := l.index(pos)
	if err != nil {
		return err
	}
	l.tasks = slices.Delete(l.tasks, i, i+1)
	return nil
}

func (l *List[T]) modify(pos command.Position, item T) error {
	i, err := l.index(pos)
	if err != nil {
		return err
	}
	l.tasks[i] = item
	return nil
}

func (l *List[T]) print(out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	texts := make([]string, len(l.tasks))
	for i, t := range l.tasks {
		texts[i] = t.String()
	}
	return l.render(out, l.owner, texts)
}

// index is the only place a display position becomes a storage index.
func (l *List[T]) index(pos command.Position) (int, error) {
	if pos < 1 || int(pos) > len(l.tasks) {
		return 0, &IndexError{Position: pos, Len: len(l.tasks)}
	}
	return int(pos) - 1, nil
}
