package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/willshacklett/godscore/internal/contract"
	"github.com/willshacklett/godscore/schema"
)

// Manager holds the process-wide ledger handle. The ledger is the only
// shared mutable resource in the engine; everything else is transient
// per evaluation.
var (
	manager   contract.Ledger
	managerMu sync.RWMutex
	initOnce  sync.Once
	closeOnce sync.Once
)

// unavailableLedger stands in when the configured backend cannot be
// reached. Reads and appends surface the init failure as a storage
// error, so evaluations resolve to fail-safe or degraded-advisory
// verdicts instead of the process aborting before a verdict exists.
type unavailableLedger struct {
	backend schema.LedgerBackend
	err     error
}

func (l *unavailableLedger) Append(_ context.Context, _ *schema.HistoryRecord) (int64, error) {
	return 0, l.err
}

func (l *unavailableLedger) RecentWindow(_ context.Context, _ string, _ int) ([]schema.HistoryRecord, error) {
	return nil, l.err
}

func (l *unavailableLedger) AllRecords(_ context.Context) ([]schema.HistoryRecord, error) {
	return nil, l.err
}

func (l *unavailableLedger) Status(_ context.Context) (*schema.LedgerStatus, error) {
	return &schema.LedgerStatus{Backend: string(l.backend)}, nil
}

func (l *unavailableLedger) Close() error { return nil }

// InitLedger initializes the global ledger exactly once, even with
// concurrent callers. A backend that cannot be reached installs a
// degraded ledger whose operations fail with ErrStorageUnavailable;
// the error is returned so callers can warn, but the process keeps a
// usable (failing) handle either way.
func InitLedger(backend schema.LedgerBackend, connStr string) error {
	var initErr error
	initOnce.Do(func() {
		led, err := NewLedger(backend, connStr)
		if err != nil {
			if !errors.Is(err, schema.ErrStorageUnavailable) {
				err = fmt.Errorf("%w: %v", schema.ErrStorageUnavailable, err)
			}
			initErr = fmt.Errorf("failed to initialize history ledger: %w", err)
			led = &unavailableLedger{backend: backend, err: err}
		}
		managerMu.Lock()
		manager = led
		managerMu.Unlock()
	})
	return initErr
}

// GetLedger returns the global ledger, or nil if InitLedger has not
// run.
func GetLedger() contract.Ledger {
	managerMu.RLock()
	defer managerMu.RUnlock()
	return manager
}

// CloseLedger should be called on application shutdown.
func CloseLedger() { // called in main defer
	closeOnce.Do(func() {
		managerMu.Lock()
		defer managerMu.Unlock()
		if manager != nil {
			_ = manager.Close()
		}
	})
}
