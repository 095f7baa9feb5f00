package audit

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nftjctl/nftjctl/internal/clock"
	"github.com/nftjctl/nftjctl/internal/ruleset"
)

func testStore(t *testing.T, clk clock.Clock) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "audit.db"), 30, clk)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndQuery(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC))
	store := testStore(t, clk)

	doc := ruleset.BuildDeleteCommand([]ruleset.RuleSelector{
		{Family: "inet", Table: "mytable", Chain: "mychain", Handle: 3},
	})
	require.NoError(t, store.Record("prune", doc, nil))

	clk.Advance(time.Minute)
	require.NoError(t, store.Record("load", nil, errors.New("exit status 1")))

	entries, err := store.Query(clk.Now().Add(-time.Hour), clk.Now().Add(time.Hour), "", "", 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "load", entries[0].Op)
	assert.Equal(t, "exit status 1", entries[0].Err)
	assert.Equal(t, "prune", entries[1].Op)
	assert.Contains(t, entries[1].Document, `"delete"`)
	assert.Equal(t, store.Session(), entries[0].Session)
}

func TestQueryFilters(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC))
	store := testStore(t, clk)

	require.NoError(t, store.Record("prune", nil, nil))
	require.NoError(t, store.Record("load", nil, nil))

	entries, err := store.Query(clk.Now().Add(-time.Hour), clk.Now().Add(time.Hour), "prune", "", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "prune", entries[0].Op)

	entries, err = store.Query(clk.Now().Add(-time.Hour), clk.Now().Add(time.Hour), "", "no-such-session", 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPruneRetention(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC))
	store := testStore(t, clk)

	require.NoError(t, store.Record("load", nil, nil))

	// Move past the 30 day retention and add a fresh entry.
	clk.Advance(31 * 24 * time.Hour)
	require.NoError(t, store.Record("load", nil, nil))

	removed, err := store.Prune()
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
