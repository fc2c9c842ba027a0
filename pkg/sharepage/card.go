package sharepage

import (
	"net/url"
	"strings"

	"raindrop/pkg/constants"
	v1 "raindrop/pkg/models/api/v1"
)

// Card is the rendered unit for one shared file.
type Card struct {
	Name string
	Size string
	Href string
}

func NewCard(f v1.FileDescriptor) Card {
	return Card{
		Name: f.FileName,
		Size: f.FileSize,
		Href: DownloadHref(f.FileName),
	}
}

// DownloadHref builds the download link for fileName: query-escaped, spaces as %20.
func DownloadHref(fileName string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(fileName), "+", "%20")
	return constants.DownloadPath + "?" + constants.DownloadFileParam + "=" + escaped
}

// RenderCard appends the card for f to container. Fields are rendered as-is.
func RenderCard(f v1.FileDescriptor, container Container) {
	container.Append(NewCard(f))
}
