package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Item is what a task list can hold: anything that renders as text and
// serializes to JSON. Decoding goes through encoding/json, so *T should
// implement json.Unmarshaler whenever T implements json.Marshaler by hand.
type Item interface {
	fmt.Stringer
	json.Marshaler
}

// Text is the plain-text task payload used by the CLI.
type Text string

// NewText trims surrounding whitespace from s.
func NewText(s string) Text { return Text(strings.TrimSpace(s)) }

func (t Text) String() string { return string(t) }

// Empty reports whether t has no visible content.
func (t Text) Empty() bool { return strings.TrimSpace(string(t)) == "" }

func (t Text) MarshalJSON() ([]byte, error) { return json.Marshal(string(t)) }

func (t *Text) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return errors.New("task text: null")
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("task text: %w", err)
	}
	*t = Text(s)
	return nil
}
