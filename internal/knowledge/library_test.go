package knowledge

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ict-journal/internal/store"
)

func TestLibraryEntriesAreComplete(t *testing.T) {
	lib := Library()
	require.Len(t, lib, 7)

	titles := make(map[string]bool)
	for _, c := range lib {
		assert.NotEmpty(t, c.Title)
		assert.NotEmpty(t, c.Category)
		assert.NotEmpty(t, c.Summary)
		assert.NotEmpty(t, c.Definition)
		assert.NotEmpty(t, c.KeyPoints)
		assert.False(t, titles[c.Title], "duplicate title %q", c.Title)
		titles[c.Title] = true
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	added, err := Seed(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 7, added)

	added, err = Seed(ctx, s)
	require.NoError(t, err)
	assert.Zero(t, added)

	concepts, err := s.GetConcepts(ctx)
	require.NoError(t, err)
	assert.Len(t, concepts, 7)
}

func TestSeedSkipsOnlyExistingTitles(t *testing.T) {
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	first := Library()[0]
	_, err = s.AddConcept(ctx, &first)
	require.NoError(t, err)

	added, err := Seed(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 6, added)
}
