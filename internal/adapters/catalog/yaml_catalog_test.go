package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedCatalogLoads(t *testing.T) {
	c, err := NewEmbeddedCatalog()
	require.NoError(t, err)
	assert.Greater(t, c.Len(), 0)

	listings, err := c.All(context.Background())
	require.NoError(t, err)
	for _, l := range listings {
		assert.NotEmpty(t, l.Title, "listing %s has no title", l.ID)
		assert.NotNil(t, l.Images)
	}
}

func TestFindBySlug(t *testing.T) {
	c, err := NewEmbeddedCatalog()
	require.NoError(t, err)

	l, err := c.FindBySlug(context.Background(), "Wattle-Grove-Villa ")
	require.NoError(t, err)
	assert.Equal(t, "prop-001", l.ID)

	_, err = c.FindBySlug(context.Background(), "no-such-home")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestNewYAMLCatalogRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "duplicate slug",
			yaml: `
listings:
  - { id: "a", slug: "same", title: "A" }
  - { id: "b", slug: "same", title: "B" }
`,
		},
		{
			name: "duplicate id",
			yaml: `
listings:
  - { id: "a", slug: "one", title: "A" }
  - { id: "a", slug: "two", title: "B" }
`,
		},
		{
			name: "invalid slug",
			yaml: `
listings:
  - { id: "a", slug: "Not A Slug", title: "A" }
`,
		},
		{
			name: "more available than total bedrooms",
			yaml: `
listings:
  - { id: "a", slug: "a", title: "A", bedrooms: 1, availableBedrooms: 2 }
`,
		},
		{
			name: "unknown field",
			yaml: `
listings:
  - { id: "a", slug: "a", title: "A", price: 100 }
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewYAMLCatalog(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestNewYAMLCatalogKeepsOrder(t *testing.T) {
	c, err := NewYAMLCatalog(strings.NewReader(`
listings:
  - { id: "3", slug: "c", title: "C" }
  - { id: "1", slug: "a", title: "A" }
  - { id: "2", slug: "b", title: "B" }
`))
	require.NoError(t, err)

	listings, _ := c.All(context.Background())
	ids := make([]string, len(listings))
	for i, l := range listings {
		ids[i] = l.ID
	}
	assert.Equal(t, []string{"3", "1", "2"}, ids)
}

func TestCatalogResultsAreCopies(t *testing.T) {
	c, err := NewEmbeddedCatalog()
	require.NoError(t, err)
	ctx := context.Background()

	before, err := c.All(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, before[0].Categories)
	wantTitle, wantCategory := before[0].Title, before[0].Categories[0]

	before[0].Title = "changed"
	before[0].Categories[0] = "changed"
	copy(before, before[1:])

	l, err := c.FindBySlug(ctx, "wattle-grove-villa")
	require.NoError(t, err)
	l.Categories[0] = "changed"

	after, err := c.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, c.Len(), len(after))
	assert.Equal(t, wantTitle, after[0].Title)
	assert.Equal(t, wantCategory, after[0].Categories[0])

	again, err := c.FindBySlug(ctx, "wattle-grove-villa")
	require.NoError(t, err)
	assert.NotEqual(t, "changed", again.Categories[0])
}
