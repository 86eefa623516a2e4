package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/census/internal/ports/secondary"
)

// SnapshotRepository implements secondary.SnapshotRepository with SQLite.
// The ledger is append-only; rows are never updated or deleted.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SQLite snapshot repository.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Record appends a completed run to the ledger.
func (r *SnapshotRepository) Record(ctx context.Context, snapshot *secondary.SnapshotRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO ingested_snapshots (id, organizations_hash, population_hash) VALUES (?, ?, ?)",
		snapshot.ID, snapshot.OrganizationsHash, snapshot.PopulationHash,
	)
	if err != nil {
		return fmt.Errorf("failed to record snapshot: %w", err)
	}

	return nil
}

// Exists reports whether a file pair has already been ingested.
func (r *SnapshotRepository) Exists(ctx context.Context, organizationsHash, populationHash string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM ingested_snapshots WHERE organizations_hash = ? AND population_hash = ?",
		organizationsHash, populationHash,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check snapshot: %w", err)
	}

	return count > 0, nil
}

// List retrieves all recorded runs, most recent first.
func (r *SnapshotRepository) List(ctx context.Context) ([]*secondary.SnapshotRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, organizations_hash, population_hash, ingested_at FROM ingested_snapshots ORDER BY ingested_at DESC, id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*secondary.SnapshotRecord
	for rows.Next() {
		var ingestedAt time.Time

		record := &secondary.SnapshotRecord{}
		if err := rows.Scan(&record.ID, &record.OrganizationsHash, &record.PopulationHash, &ingestedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}

		record.IngestedAt = ingestedAt.Format(time.RFC3339)
		snapshots = append(snapshots, record)
	}

	return snapshots, rows.Err()
}

// Ensure SnapshotRepository implements the interface.
var _ secondary.SnapshotRepository = (*SnapshotRepository)(nil)
