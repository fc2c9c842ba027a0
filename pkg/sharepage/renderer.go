package sharepage

import (
	"strconv"
	"strings"

	"raindrop/pkg/constants"
	v1 "raindrop/pkg/models/api/v1"
)

// Renderer applies a PageInfo to the page slots.
type Renderer struct {
	slots Slots
}

func NewRenderer(slots Slots) (*Renderer, error) {
	if err := slots.validate(); err != nil {
		return nil, err
	}

	return &Renderer{slots: slots}, nil
}

// Apply renders every part of info that is present and hides the prompt.
// An empty share only sets the placeholder and leaves everything else untouched.
func (r *Renderer) Apply(info v1.PageInfo) {
	if info.IsEmpty {
		r.slots.Prompt.SetText(constants.EmptyPlaceholder)
		return
	}

	if len(info.Files) > 0 {
		for _, f := range info.Files {
			RenderCard(f, r.slots.Files)
		}
		r.slots.Files.Show()
		r.slots.Title.SetTitle(filesTitle(info.Files, r.slots.Title.Title()))
	}

	if present(info.Description) {
		Reveal(info.Description, r.slots.Description)
	}

	if present(info.Snippet) {
		Reveal(info.Snippet, r.slots.Snippet)
	}

	r.slots.Prompt.Hide()
}

// ShowError puts reason in the prompt and marks it as an error. The prompt stays visible.
func (r *Renderer) ShowError(reason string) {
	r.slots.Prompt.SetText(constants.ErrorPrefix + reason)
	r.slots.Prompt.MarkError()
}

func filesTitle(files []v1.FileDescriptor, current string) string {
	if len(files) == 1 {
		return files[0].FileName + " - " + current
	}

	return strconv.Itoa(len(files)) + " Files Available - " + current
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}
