package sharepage

import (
	"errors"
	"fmt"
)

var ErrMissingSlot = errors.New("missing slot")

// Slot is a region of the page that starts hidden or visible and can be toggled.
type Slot interface {
	// SetText replaces the slot content with text. The text is never interpreted as markup.
	SetText(text string)
	Show()
	Hide()
}

// Prompt is the status slot: placeholder, error message, or hidden on success.
type Prompt interface {
	Slot
	MarkError()
}

// Container receives file cards in the order they are appended.
type Container interface {
	Append(card Card)
	Show()
}

type Title interface {
	Title() string
	SetTitle(title string)
}

// Slots are the page handles the renderer writes to.
type Slots struct {
	Prompt      Prompt
	Files       Container
	Description Slot
	Snippet     Slot
	Title       Title
}

func (s Slots) validate() error {
	switch {
	case s.Prompt == nil:
		return fmt.Errorf("%w: prompt", ErrMissingSlot)
	case s.Files == nil:
		return fmt.Errorf("%w: files", ErrMissingSlot)
	case s.Description == nil:
		return fmt.Errorf("%w: description", ErrMissingSlot)
	case s.Snippet == nil:
		return fmt.Errorf("%w: snippet", ErrMissingSlot)
	case s.Title == nil:
		return fmt.Errorf("%w: title", ErrMissingSlot)
	}

	return nil
}
