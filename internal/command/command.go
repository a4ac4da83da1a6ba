// Package command defines the closed set of operations a user can ask of a
// task list. Values are immutable; the front end builds them and the task
// list interprets them.
package command

import (
	"fmt"

	"github.com/Makepad-fr/todo/internal/model"
)

// Kind tags a Command variant.
type Kind int

const (
	KindAdd Kind = iota + 1
	KindRemove
	KindModify
	KindPrint
)

// Kinds lists every variant. Handlers switching on Kind are tested against it.
var Kinds = []Kind{KindAdd, KindRemove, KindModify, KindPrint}

func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindRemove:
		return "remove"
	case KindModify:
		return "modify"
	case KindPrint:
		return "print"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Position is a 1-based display position. It is translated to a storage
// index only by the task list, and only after a range check.
type Position int

// Command is one requested operation. The zero value is not a valid command.
type Command[T model.Item] struct {
	kind Kind
	pos  Position
	item T
}

// Add appends item to the list.
func Add[T model.Item](item T) Command[T] {
	return Command[T]{kind: KindAdd, item: item}
}

// Remove deletes the task shown at pos.
func Remove[T model.Item](pos Position) Command[T] {
	return Command[T]{kind: KindRemove, pos: pos}
}

// Modify replaces the task shown at pos with item.
func Modify[T model.Item](pos Position, item T) Command[T] {
	return Command[T]{kind: KindModify, pos: pos, item: item}
}

// Print renders the list without changing it.
func Print[T model.Item]() Command[T] {
	return Command[T]{kind: KindPrint}
}

func (c Command[T]) Kind() Kind { return c.kind }

// Position is meaningful for KindRemove and KindModify only.
func (c Command[T]) Position() Position { return c.pos }

// Item is meaningful for KindAdd and KindModify only.
func (c Command[T]) Item() T { return c.item }

func (c Command[T]) String() string {
	switch c.kind {
	case KindAdd:
		return fmt.Sprintf("add(%q)", c.item.String())
	case KindRemove:
		return fmt.Sprintf("remove(%d)", c.pos)
	case KindModify:
		return fmt.Sprintf("modify(%d, %q)", c.pos, c.item.String())
	case KindPrint:
		return "print"
	}
	return c.kind.String()
}
