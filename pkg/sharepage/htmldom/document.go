// Package htmldom implements share page slots on top of a parsed HTML document.
package htmldom

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"raindrop/pkg/sharepage"
)

// Element ids and classes the share page markup must provide.
const (
	PromptID       = "prompt"
	FilesID        = "shareable-file-card"
	CardTemplateID = "file-item-template"
	DescriptionID  = "description-message"
	SnippetID      = "snippet-content"

	HiddenClass   = "is-hidden"
	ErrorClass    = "error"
	FileItemClass = "file-item"
	FileNameClass = "file-name"
	FileSizeClass = "file-size"
)

type Document struct {
	root *html.Node
}

func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	return &Document{root: root}, nil
}

func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Slots resolves the share page slots by element id.
func (d *Document) Slots() (sharepage.Slots, error) {
	var missing []string
	lookup := func(id string) *html.Node {
		n := d.ElementByID(id)
		if n == nil {
			missing = append(missing, "#"+id)
		}
		return n
	}

	prompt := lookup(PromptID)
	files := lookup(FilesID)
	tmpl := lookup(CardTemplateID)
	description := lookup(DescriptionID)
	snippet := lookup(SnippetID)

	title := findFirst(d.root, func(n *html.Node) bool { return n.DataAtom == atom.Title })
	if title == nil {
		missing = append(missing, "<title>")
	}

	if len(missing) > 0 {
		return sharepage.Slots{}, fmt.Errorf("%w: %s", sharepage.ErrMissingSlot, strings.Join(missing, ", "))
	}

	return sharepage.Slots{
		Prompt:      &element{node: prompt},
		Files:       &container{element: element{node: files}, template: tmpl},
		Description: &element{node: description},
		Snippet:     &element{node: snippet},
		Title:       &titleElement{node: title},
	}, nil
}

func (d *Document) ElementByID(id string) *html.Node {
	return findFirst(d.root, func(n *html.Node) bool {
		v, ok := attr(n, "id")
		return ok && v == id
	})
}

func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func (d *Document) String() string {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

type element struct {
	node *html.Node
}

func (e *element) SetText(text string) {
	setText(e.node, text)
}

func (e *element) Show() {
	removeClass(e.node, HiddenClass)
}

func (e *element) Hide() {
	addClass(e.node, HiddenClass)
}

func (e *element) MarkError() {
	addClass(e.node, ErrorClass)
}

type container struct {
	element
	template *html.Node
}

// Append clones the card template, fills it and appends it to the container.
func (c *container) Append(card sharepage.Card) {
	for child := c.template.FirstChild; child != nil; child = child.NextSibling {
		clone := cloneNode(child)
		fillCard(clone, card)
		c.node.AppendChild(clone)
	}
}

func fillCard(n *html.Node, card sharepage.Card) {
	if n.Type != html.ElementNode {
		return
	}

	if anchor := findFirst(n, withClass(FileItemClass)); anchor != nil {
		setAttr(anchor, "href", card.Href)
	}
	if name := findFirst(n, withClass(FileNameClass)); name != nil {
		setText(name, card.Name)
	}
	if size := findFirst(n, withClass(FileSizeClass)); size != nil {
		setText(size, card.Size)
	}
}

type titleElement struct {
	node *html.Node
}

// Title returns the title text with whitespace collapsed, like document.title.
func (t *titleElement) Title() string {
	return strings.Join(strings.Fields(TextContent(t.node)), " ")
}

func (t *titleElement) SetTitle(title string) {
	setText(t.node, title)
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findFirst(child, match); found != nil {
			return found
		}
	}
	return nil
}

func withClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return HasClass(n, class)
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func HasClass(n *html.Node, class string) bool {
	v, _ := attr(n, "class")
	return slices.Contains(strings.Fields(v), class)
}

func addClass(n *html.Node, class string) {
	if HasClass(n, class) {
		return
	}
	v, _ := attr(n, "class")
	setAttr(n, "class", strings.TrimSpace(v+" "+class))
}

func removeClass(n *html.Node, class string) {
	v, ok := attr(n, "class")
	if !ok {
		return
	}
	classes := slices.DeleteFunc(strings.Fields(v), func(c string) bool { return c == class })
	setAttr(n, "class", strings.Join(classes, " "))
}

func setText(n *html.Node, text string) {
	for child := n.FirstChild; child != nil; {
		next := child.NextSibling
		n.RemoveChild(child)
		child = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// TextContent concatenates the text nodes under n.
func TextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(TextContent(child))
	}
	return b.String()
}

func cloneNode(n *html.Node) *html.Node {
	clone := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      slices.Clone(n.Attr),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		clone.AppendChild(cloneNode(child))
	}
	return clone
}
