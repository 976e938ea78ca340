package carrier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "polisflow/pkg/domain-errors"
)

func testCarriers() []Carrier {
	return []Carrier{
		{ID: "migdal", Name: "Migdal", SubmissionMethods: []string{"api", "portal"}},
		{ID: "harel", Name: "Harel", SubmissionMethods: []string{"email"}},
		{ID: "clal", Name: "Clal", SubmissionMethods: []string{"portal"}},
	}
}

func TestMemoryCatalogLookup(t *testing.T) {
	ctx := context.Background()
	cat := NewMemoryCatalog(testCarriers())

	c, err := cat.Lookup(ctx, "migdal")
	require.NoError(t, err)
	assert.Equal(t, "Migdal", c.Name)

	_, err = cat.Lookup(ctx, "acme")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUnknownCarrier))
}

func TestMemoryCatalogListSorted(t *testing.T) {
	ctx := context.Background()
	cat := NewMemoryCatalog(testCarriers())

	list, err := cat.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"clal", "harel", "migdal"}, []string{list[0].ID, list[1].ID, list[2].ID})
}
