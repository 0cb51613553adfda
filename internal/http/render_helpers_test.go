package httpx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	portal "github.com/target/onboarding-portal"
)

// bundledRenderer parses the embedded templates.
func bundledRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: portal.Templates(false)})
	require.NoError(t, err)
	return tr
}

func assertContainsAll(t *testing.T, body string, want ...string) {
	t.Helper()
	for _, s := range want {
		assert.Contains(t, body, s)
	}
}
