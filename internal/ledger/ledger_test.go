package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willshacklett/godscore/schema"
)

func newSQLiteLedger(t *testing.T) *SQLLedger {
	t.Helper()
	led, err := NewLedger(schema.SQLiteBackend, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = led.Close() })
	return led.(*SQLLedger)
}

func testRecord(lineage, identity string, score float64) *schema.HistoryRecord {
	return &schema.HistoryRecord{
		Lineage:   lineage,
		Identity:  identity,
		Timestamp: time.Now().UTC(),
		Score:     score,
		GV:        1 - score,
		Features: schema.FeatureSet{
			schema.FeatureDiffRisk:     0.05,
			schema.FeatureMissingTests: 1.0,
		},
		Verdict: schema.PassVerdict,
		Mode:    schema.EnforceMode,
	}
}

// TestLedgerNoneBackend keeps no history but never errors.
func TestLedgerNoneBackend(t *testing.T) {
	led, err := NewLedger(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, led)
	defer func() { _ = led.Close() }()

	ctx := context.Background()

	id, err := led.Append(ctx, testRecord("main", "a", 0.9))
	assert.NoError(t, err)
	assert.Equal(t, int64(0), id)

	window, err := led.RecentWindow(ctx, "main", 10)
	assert.NoError(t, err)
	assert.Empty(t, window)

	status, err := led.Status(ctx)
	assert.NoError(t, err)
	assert.False(t, status.Connected)
}

// TestLedgerAppendAndRead round-trips records through SQLite.
func TestLedgerAppendAndRead(t *testing.T) {
	led := newSQLiteLedger(t)
	ctx := context.Background()

	id1, err := led.Append(ctx, testRecord("main", "sha1", 0.90))
	require.NoError(t, err)
	id2, err := led.Append(ctx, testRecord("main", "sha2", 0.88))
	require.NoError(t, err)
	assert.Greater(t, id2, id1, "ids must follow append order")

	window, err := led.RecentWindow(ctx, "main", 10)
	require.NoError(t, err)
	require.Len(t, window, 2)

	// Oldest first, with the snapshot intact.
	assert.Equal(t, "sha1", window[0].Identity)
	assert.Equal(t, "sha2", window[1].Identity)
	assert.InDelta(t, 0.90, window[0].Score, 1e-9)
	assert.InDelta(t, 1.0, window[0].Features[schema.FeatureMissingTests], 1e-9)
	assert.Equal(t, schema.PassVerdict, window[0].Verdict)
	assert.Equal(t, schema.EnforceMode, window[0].Mode)
	assert.False(t, window[0].Timestamp.IsZero())
}

// TestLedgerWindowBounds verifies limit and lineage isolation.
func TestLedgerWindowBounds(t *testing.T) {
	led := newSQLiteLedger(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := led.Append(ctx, testRecord("main", "m", 0.80+float64(i)*0.01))
		require.NoError(t, err)
	}
	_, err := led.Append(ctx, testRecord("feature", "f", 0.50))
	require.NoError(t, err)

	window, err := led.RecentWindow(ctx, "main", 3)
	require.NoError(t, err)
	require.Len(t, window, 3)

	// The 3 most recent, still oldest first.
	assert.InDelta(t, 0.82, window[0].Score, 1e-9)
	assert.InDelta(t, 0.84, window[2].Score, 1e-9)

	other, err := led.RecentWindow(ctx, "feature", 10)
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.InDelta(t, 0.50, other[0].Score, 1e-9)
}

// TestLedgerAllRecords reads every lineage oldest first.
func TestLedgerAllRecords(t *testing.T) {
	led := newSQLiteLedger(t)
	ctx := context.Background()

	_, err := led.Append(ctx, testRecord("main", "a", 0.9))
	require.NoError(t, err)
	_, err = led.Append(ctx, testRecord("feature", "b", 0.7))
	require.NoError(t, err)

	records, err := led.AllRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].Identity)
	assert.Equal(t, "b", records[1].Identity)
}

// TestLedgerStatus reports counts and append timestamps.
func TestLedgerStatus(t *testing.T) {
	led := newSQLiteLedger(t)
	ctx := context.Background()

	status, err := led.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalRecords)

	_, err = led.Append(ctx, testRecord("main", "a", 0.9))
	require.NoError(t, err)
	_, err = led.Append(ctx, testRecord("feature", "b", 0.8))
	require.NoError(t, err)

	status, err = led.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalRecords)
	assert.Equal(t, 2, status.TotalLineages)
	assert.False(t, status.LastAppend.IsZero())
	assert.False(t, status.OldestAppend.IsZero())
}

// TestLedgerAppendNilRecord rejects missing input before touching SQL.
func TestLedgerAppendNilRecord(t *testing.T) {
	led := newSQLiteLedger(t)
	_, err := led.Append(context.Background(), nil)
	assert.ErrorIs(t, err, schema.ErrInvalidInput)
}

// TestLedgerConcurrentAppends exercises the single-connection SQLite path.
func TestLedgerConcurrentAppends(t *testing.T) {
	led := newSQLiteLedger(t)
	ctx := context.Background()

	done := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func(n int) {
			_, err := led.Append(ctx, testRecord("main", "sha", 0.80))
			done <- err
		}(i)
	}
	for i := 0; i < 10; i++ {
		assert.NoError(t, <-done)
	}

	records, err := led.AllRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 10)
}

// TestLedgerUnsupportedBackend rejects unknown backends.
func TestLedgerUnsupportedBackend(t *testing.T) {
	_, err := NewLedger(schema.LedgerBackend("oracle"), "")
	assert.Error(t, err)
}
