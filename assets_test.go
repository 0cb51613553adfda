package portal

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_Bundled(t *testing.T) {
	for _, name := range []string{"layout.tmpl", "error.tmpl"} {
		_, err := fs.Stat(Templates(false), name)
		require.NoError(t, err, name)
	}
	pages, err := fs.Glob(Templates(false), "pages/*.tmpl")
	require.NoError(t, err)
	assert.NotEmpty(t, pages)
}

func TestStatic_Bundled(t *testing.T) {
	b, err := fs.ReadFile(Static(false), "js/app.js")
	require.NoError(t, err)
	assert.Contains(t, string(b), "showToast")
}

func TestTemplates_FromDisk(t *testing.T) {
	_, err := fs.Stat(Templates(true), "layout.tmpl")
	require.NoError(t, err)
}
