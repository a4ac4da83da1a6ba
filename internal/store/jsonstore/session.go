package jsonstore

import (
	"errors"

	"github.com/Makepad-fr/todo/internal/model"
	"github.com/Makepad-fr/todo/internal/todo"
)

// Session describes one load/save cycle.
type Session struct {
	Path    string
	Owner   string
	Options []todo.Option

	// OnLoad and OnSave are optional hooks, used for logging.
	OnLoad func(path string, st Status, tasks int)
	OnSave func(path string, tasks int, err error)
}

// Use loads the list, hands it to fn and saves it afterwards. The save runs
// on every return from fn, including error returns; its error is joined
// with fn's. Nothing is saved when loading fails.
func Use[T model.Item](s Session, fn func(*todo.List[T]) error) (err error) {
	l, st, err := Load[T](s.Path, s.Owner, s.Options...)
	if err != nil {
		return err
	}
	if s.OnLoad != nil {
		s.OnLoad(s.Path, st, l.Len())
	}

	defer func() {
		serr := Save(s.Path, l)
		if s.OnSave != nil {
			s.OnSave(s.Path, l.Len(), serr)
		}
		if serr != nil {
			err = errors.Join(err, serr)
		}
	}()

	return fn(l)
}
