package landing

import (
	"bytes"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)
	for _, name := range []string{"landing.tmpl", "apply.tmpl", "thanks.tmpl", "error.tmpl", "sticky_cta"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestVariantsHaveDistinctPaths(t *testing.T) {
	seen := map[string]bool{}
	for _, v := range Variants {
		assert.False(t, seen[v.Path], "duplicate path %s", v.Path)
		seen[v.Path] = true
		assert.NotEmpty(t, v.Sticky.ID)
	}
}

func TestStickyBind(t *testing.T) {
	view := Variants[1].Sticky.Bind("utm_source=fb&foo=1")
	assert.Equal(t, "/apply?utm_source=fb", view.Link)
	assert.Equal(t, 768, view.MaxViewport)
}

func TestStickyPartialRendersConfig(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "sticky_cta", ApplySticky.Bind("gclid=g")))
	out := buf.String()
	assert.Contains(t, out, `data-threshold="400"`)
	assert.Contains(t, out, `data-max-viewport="768"`)
	assert.Contains(t, out, `href="/apply?step=2&amp;gclid=g"`)
	assert.Contains(t, out, "hidden")
}

func TestStaticServesStylesheet(t *testing.T) {
	f, err := Static().Open("site.css")
	require.NoError(t, err)
	defer f.Close()
	info, err := f.Stat()
	require.NoError(t, err)
	assert.Positive(t, info.Size())
	_, err = Static().Open("missing.css")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
