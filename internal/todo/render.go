package todo

import (
	"fmt"
	"io"
)

// Renderer writes a view of an owner's tasks, given in display order.
// It must not assume anything about where the tasks came from.
type Renderer func(w io.Writer, owner string, tasks []string) error

// PlainRenderer writes an uncoloured, fixed-width listing.
func PlainRenderer(w io.Writer, owner string, tasks []string) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintf(w, "No tasks to print for %s\n", owner)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s's To-Do List:\n\n", owner); err != nil {
		return err
	}
	for i, t := range tasks {
		if _, err := fmt.Fprintf(w, "%4d  %s\n", i+1, t); err != nil {
			return err
		}
	}
	return nil
}
