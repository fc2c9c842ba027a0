package htmlTemplates

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raindrop/assets"
	"raindrop/pkg/constants"
)

func TestPage(t *testing.T) {
	tmpl, err := New(assets.FS, "served by raindrop")
	require.NoError(t, err)

	page, err := tmpl.Page()
	require.NoError(t, err)

	assert.Contains(t, page, "<title>"+constants.PageTitle+"</title>")
	assert.Contains(t, page, constants.LoadingPrompt)
	assert.Contains(t, page, "served by raindrop")
	assert.Contains(t, page, `id="shareable-file-card"`)
	assert.Contains(t, page, `id="file-item-template"`)
}

func TestErrorTemplate_Escapes(t *testing.T) {
	tmpl, err := New(assets.FS, "")
	require.NoError(t, err)

	page, err := tmpl.ErrorTemplate(errors.New("<b>boom</b>"))
	require.NoError(t, err)

	assert.Contains(t, page, "&lt;b&gt;boom&lt;/b&gt;")
	assert.NotContains(t, page, "<b>boom</b>")
}

func TestNew_NoTemplates(t *testing.T) {
	_, err := New(fstest.MapFS{}, "")
	assert.Error(t, err)
}
