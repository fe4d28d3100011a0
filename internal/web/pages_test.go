package web

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRendererRender(t *testing.T) {
	templates := fstest.MapFS{
		"index.html": {Data: []byte(`<h1>{{ "modot" }}</h1>`)},
	}
	p := NewPageRenderer(templates)

	page, err := p.Render("index")
	require.NoError(t, err)
	assert.Equal(t, "<h1>modot</h1>", string(page))
}

func TestPageRendererCache(t *testing.T) {
	templates := fstest.MapFS{
		"index.html": {Data: []byte("one")},
	}
	p := NewPageRenderer(templates)

	page, err := p.Render("index")
	require.NoError(t, err)
	require.Equal(t, "one", string(page))

	templates["index.html"] = &fstest.MapFile{Data: []byte("two")}
	page, err = p.Render("index")
	require.NoError(t, err)
	assert.Equal(t, "one", string(page))

	p.Invalidate()
	page, err = p.Render("index")
	require.NoError(t, err)
	assert.Equal(t, "two", string(page))
}

func TestPageRendererNotFound(t *testing.T) {
	p := NewPageRenderer(fstest.MapFS{})

	tests := map[string]string{
		"missing":      "index",
		"escaping dir": "../index",
		"empty":        "",
	}
	for name, tmpl := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := p.Render(tmpl)
			var notFound *TemplateNotFoundError
			require.True(t, errors.As(err, &notFound), "want *TemplateNotFoundError, got %v", err)
			assert.Equal(t, tmpl, notFound.Name)
		})
	}

	_, err := p.Render("index")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestPageRendererFailuresAreNotCached(t *testing.T) {
	templates := fstest.MapFS{}
	p := NewPageRenderer(templates)

	_, err := p.Render("index")
	require.Error(t, err)

	templates["index.html"] = &fstest.MapFile{Data: []byte("ok")}
	page, err := p.Render("index")
	require.NoError(t, err)
	assert.Equal(t, "ok", string(page))
}

func TestEmbeddedAssets(t *testing.T) {
	static, err := staticSource("")
	require.NoError(t, err)
	files, err := ListStaticFiles(static)
	require.NoError(t, err)
	assert.Contains(t, files, "js/main.js")

	templates, err := templateSource("")
	require.NoError(t, err)
	_, err = fs.Stat(templates, IndexTemplate+templateExt)
	require.NoError(t, err)
}
