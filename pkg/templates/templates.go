package htmlTemplates

import (
	"html/template"
	"io/fs"
	"strings"

	"raindrop/pkg/constants"
)

const (
	pageTemplate  = "index.html"
	errorTemplate = "error.html"
)

type htmlTemplates struct {
	templates *template.Template
	footer    string
}

type Templates interface {
	ErrorTemplate(err error) (string, error)
	// Page renders the share page shell: prompt in its loading state, every other slot hidden.
	Page() (string, error)
}

func (t *htmlTemplates) ErrorTemplate(err error) (string, error) {
	return t.renderTemplate(errorTemplate, TemplateError{Error: err.Error()})
}

func (t *htmlTemplates) Page() (string, error) {
	return t.renderTemplate(pageTemplate, PageData{
		Title:  constants.PageTitle,
		Prompt: constants.LoadingPrompt,
		Footer: t.footer,
	})
}

func (t *htmlTemplates) renderTemplate(templateName string, data any) (string, error) {
	var buf strings.Builder
	err := t.templates.ExecuteTemplate(&buf, templateName, data)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// New parses templates/*.html from fsys.
func New(fsys fs.FS, footer string) (Templates, error) {
	templates, err := template.ParseFS(fsys, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &htmlTemplates{
		templates: templates,
		footer:    footer,
	}, nil
}
