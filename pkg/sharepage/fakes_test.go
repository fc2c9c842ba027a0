package sharepage

import (
	"log/slog"
)

var discard = slog.New(slog.DiscardHandler)

type fakeSlot struct {
	text    string
	visible bool
	writes  int
}

func (s *fakeSlot) SetText(text string) {
	s.text = text
	s.writes++
}

func (s *fakeSlot) Show() { s.visible = true }
func (s *fakeSlot) Hide() { s.visible = false }

type fakePrompt struct {
	fakeSlot
	isError bool
}

func (p *fakePrompt) MarkError() { p.isError = true }

type fakeContainer struct {
	cards   []Card
	visible bool
}

func (c *fakeContainer) Append(card Card) { c.cards = append(c.cards, card) }
func (c *fakeContainer) Show()            { c.visible = true }

type fakeTitle struct {
	title string
}

func (t *fakeTitle) Title() string         { return t.title }
func (t *fakeTitle) SetTitle(title string) { t.title = title }

type fakePage struct {
	prompt      *fakePrompt
	files       *fakeContainer
	description *fakeSlot
	snippet     *fakeSlot
	title       *fakeTitle
}

const initialTitle = "raindrop"

func newFakePage() *fakePage {
	return &fakePage{
		prompt:      &fakePrompt{fakeSlot: fakeSlot{text: "looking around...", visible: true}},
		files:       &fakeContainer{},
		description: &fakeSlot{},
		snippet:     &fakeSlot{},
		title:       &fakeTitle{title: initialTitle},
	}
}

func (p *fakePage) slots() Slots {
	return Slots{
		Prompt:      p.prompt,
		Files:       p.files,
		Description: p.description,
		Snippet:     p.snippet,
		Title:       p.title,
	}
}
