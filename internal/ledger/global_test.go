package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willshacklett/godscore/schema"
)

// TestInitLedgerUnreachableBackend verifies that a backend that cannot
// be opened still installs a usable handle: operations fail with the
// storage sentinel instead of the process having no ledger at all, so
// gate runs resolve to fail-safe or degraded-advisory verdicts.
func TestInitLedgerUnreachableBackend(t *testing.T) {
	// Parent directory does not exist, so the sqlite open fails.
	badPath := filepath.Join(t.TempDir(), "missing", "history.db")

	err := InitLedger(schema.SQLiteBackend, badPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrStorageUnavailable)

	led := GetLedger()
	require.NotNil(t, led, "a degraded ledger handle must be installed")

	ctx := context.Background()

	_, err = led.RecentWindow(ctx, "main", 5)
	assert.ErrorIs(t, err, schema.ErrStorageUnavailable)

	_, err = led.Append(ctx, &schema.HistoryRecord{Lineage: "main", Identity: "sha"})
	assert.ErrorIs(t, err, schema.ErrStorageUnavailable)

	_, err = led.AllRecords(ctx)
	assert.ErrorIs(t, err, schema.ErrStorageUnavailable)

	status, err := led.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Equal(t, "sqlite", status.Backend)

	assert.NoError(t, led.Close())
}
