package htmlTemplates

// PageData fills index.html, the share page shell before any slot is rendered.
type PageData struct {
	Title  string
	Prompt string
	Footer string
}

type TemplateError struct {
	Error string
}
