// Package contract provides interfaces and shared utilities for the
// godscore CLI's internal architecture.
package contract

import (
	"context"

	"github.com/willshacklett/godscore/schema"
)

// Ledger defines the append-only history store. Records are never
// reordered or edited after append; the backing medium is swappable
// (SQLite, MySQL, PostgreSQL) without touching scoring logic.
type Ledger interface {
	// Append durably persists a record and returns its id once committed.
	Append(ctx context.Context, rec *schema.HistoryRecord) (int64, error)

	// RecentWindow returns up to n most recent records for a lineage,
	// oldest first, for deterministic aggregation.
	RecentWindow(ctx context.Context, lineage string, n int) ([]schema.HistoryRecord, error)

	// AllRecords returns every record, oldest first, for export and
	// replay. Evaluation paths only ever read bounded windows.
	AllRecords(ctx context.Context) ([]schema.HistoryRecord, error)

	// Status reports backend health and record counts.
	Status(ctx context.Context) (*schema.LedgerStatus, error)

	Close() error
}

// GitClient defines the change-metadata queries the engine needs.
// This allows the git layer to be mocked for testing.
type GitClient interface {
	// DiffNumstat returns added lines, removed lines and touched paths
	// between two refs.
	DiffNumstat(ctx context.Context, repoPath, baseRef, targetRef string) (added, removed int, files []string, err error)

	// HeadMessage returns the full commit message at the target ref.
	HeadMessage(ctx context.Context, repoPath, ref string) (string, error)

	// HeadSHA resolves a ref to its commit hash.
	HeadSHA(ctx context.Context, repoPath, ref string) (string, error)

	// CurrentBranch returns the checked-out branch name.
	CurrentBranch(ctx context.Context, repoPath string) (string, error)

	// ResolveBase picks a base ref when none was supplied.
	ResolveBase(ctx context.Context, repoPath string) (string, error)
}
