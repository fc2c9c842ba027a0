// Package termview implements share page slots with tview widgets.
package termview

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"raindrop/pkg/constants"
	"raindrop/pkg/sharepage"
)

// View lays out the share page in a terminal. Hidden slots are left out of the layout.
type View struct {
	root  *tview.Flex
	base  string
	title string

	prompt      *textSlot
	files       *listSlot
	description *textSlot
	snippet     *textSlot
}

// New creates a view for a share served at baseURL. Card links are shown as absolute URLs.
func New(baseURL string) *View {
	v := &View{
		root: tview.NewFlex().SetDirection(tview.FlexRow),
		base: strings.TrimRight(baseURL, "/"),
	}
	v.root.SetBorder(true)
	v.SetTitle(constants.PageTitle)

	v.prompt = v.newTextSlot(constants.LoadingPrompt, true)
	v.prompt.text.SetTextAlign(tview.AlignCenter)
	v.description = v.newTextSlot("", false)
	v.snippet = v.newTextSlot("", false)
	v.snippet.text.SetBorder(true).SetTitle("snippet")

	list := tview.NewList()
	list.SetBorder(true).SetTitle("files")
	v.files = &listSlot{view: v, list: list}

	v.relayout()
	return v
}

func (v *View) Root() tview.Primitive {
	return v.root
}

// Files exposes the card list, e.g. to attach a selection handler.
func (v *View) Files() *tview.List {
	return v.files.list
}

func (v *View) Slots() sharepage.Slots {
	return sharepage.Slots{
		Prompt:      v.prompt,
		Files:       v.files,
		Description: v.description,
		Snippet:     v.snippet,
		Title:       v,
	}
}

func (v *View) Title() string {
	return v.title
}

// SetTitle shows title verbatim; style tags in it are not interpreted.
func (v *View) SetTitle(title string) {
	v.title = title
	v.root.SetTitle(tview.Escape(title))
}

func (v *View) newTextSlot(text string, visible bool) *textSlot {
	tv := tview.NewTextView().
		SetDynamicColors(false).
		SetRegions(false).
		SetWrap(true).
		SetText(text)

	return &textSlot{view: v, text: tv, visible: visible}
}

func (v *View) relayout() {
	v.root.Clear()

	if v.prompt.visible {
		v.root.AddItem(v.prompt.text, 1, 0, false)
	}
	if v.files.visible {
		v.root.AddItem(v.files.list, 0, 2, true)
	}
	if v.description.visible {
		v.root.AddItem(v.description.text, 0, 1, false)
	}
	if v.snippet.visible {
		v.root.AddItem(v.snippet.text, 0, 2, false)
	}
}

type textSlot struct {
	view    *View
	text    *tview.TextView
	visible bool
	isError bool
}

func (s *textSlot) SetText(text string) {
	s.text.SetText(text)
}

func (s *textSlot) Show() {
	s.visible = true
	s.view.relayout()
}

func (s *textSlot) Hide() {
	s.visible = false
	s.view.relayout()
}

func (s *textSlot) MarkError() {
	s.isError = true
	s.text.SetTextColor(tcell.ColorRed)
}

type listSlot struct {
	view    *View
	list    *tview.List
	visible bool
}

func (s *listSlot) Append(card sharepage.Card) {
	s.list.AddItem(tview.Escape(card.Name), tview.Escape(card.Size+"  "+s.view.base+card.Href), 0, nil)
}

func (s *listSlot) Show() {
	s.visible = true
	s.view.relayout()
}
