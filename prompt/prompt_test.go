package prompt_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/sitescrape"
	"github.com/fwojciec/sitescrape/prompt"
	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	t.Parallel()

	t.Run("uses fallback phrase without website content", func(t *testing.T) {
		t.Parallel()

		p := prompt.Build("Acme", "A widget maker", "")

		assert.Contains(t, p, prompt.NoWebsiteContent)
		assert.Contains(t, p, "Acme")
		assert.Contains(t, p, "A widget maker")
	})

	t.Run("includes website content when present", func(t *testing.T) {
		t.Parallel()

		p := prompt.Build("Acme", "A widget maker", "We sell widgets worldwide.")

		assert.Contains(t, p, "Website Content: We sell widgets worldwide.")
		assert.NotContains(t, p, prompt.NoWebsiteContent)
	})

	t.Run("asks for the classification fields", func(t *testing.T) {
		t.Parallel()

		p := prompt.Build("Acme", "A widget maker", "")

		for _, field := range []string{"domain_name", "domain_description", "keywords", "confidence_score"} {
			assert.Contains(t, p, field)
		}
		assert.Contains(t, p, "return null or an empty JSON")
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		a := prompt.Build("Acme", "A widget maker", "content")
		b := prompt.Build("Acme", "A widget maker", "content")

		assert.Equal(t, a, b)
	})

	t.Run("substitutes inputs verbatim", func(t *testing.T) {
		t.Parallel()

		p := prompt.Build("100% Pure %s", "desc with {braces}", "")

		assert.Contains(t, p, "Client Name: 100% Pure %s")
		assert.Contains(t, p, "desc with {braces}")
		assert.False(t, strings.Contains(p, "%!"), "no formatting verbs should leak")
	})
}

func TestBuildForClient(t *testing.T) {
	t.Parallel()

	c := sitescrape.Client{Name: "Acme", Description: "A widget maker", WebsiteContent: "Widgets."}

	assert.Equal(t, prompt.Build("Acme", "A widget maker", "Widgets."), prompt.BuildForClient(c))
}
