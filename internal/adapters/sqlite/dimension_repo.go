package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/census/internal/ports/secondary"
)

// DimensionRepository implements secondary.DimensionRepository for one
// reference-data table. The table and key column are fixed by the
// constructors, never caller input.
type DimensionRepository struct {
	db        *sql.DB
	table     string
	keyColumn string
}

// NewEyeColorRepository creates a repository over the eye_colors table.
func NewEyeColorRepository(db *sql.DB) *DimensionRepository {
	return &DimensionRepository{db: db, table: "eye_colors", keyColumn: "color"}
}

// NewGenderRepository creates a repository over the genders table.
func NewGenderRepository(db *sql.DB) *DimensionRepository {
	return &DimensionRepository{db: db, table: "genders", keyColumn: "gender"}
}

// NewTagRepository creates a repository over the tags table.
func NewTagRepository(db *sql.DB) *DimensionRepository {
	return &DimensionRepository{db: db, table: "tags", keyColumn: "name"}
}

// Create persists a new dimension value.
func (r *DimensionRepository) Create(ctx context.Context, record *secondary.DimensionRecord) error {
	_, err := r.db.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (id, %s) VALUES (?, ?)", r.table, r.keyColumn),
		record.ID, record.Key,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s value %q already exists: %w", r.table, record.Key, secondary.ErrConflict)
		}
		return fmt.Errorf("failed to create %s value: %w", r.table, err)
	}

	return nil
}

// GetByKey retrieves a dimension value by its natural key.
func (r *DimensionRepository) GetByKey(ctx context.Context, key string) (*secondary.DimensionRecord, error) {
	record := &secondary.DimensionRecord{}
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT id, %s FROM %s WHERE %s = ?", r.keyColumn, r.table, r.keyColumn),
		key,
	).Scan(&record.ID, &record.Key)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s value %q: %w", r.table, key, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s value: %w", r.table, err)
	}

	return record, nil
}

// Count returns the number of values.
func (r *DimensionRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM %s", r.table),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s values: %w", r.table, err)
	}

	return count, nil
}

// Ensure DimensionRepository implements the interface.
var _ secondary.DimensionRepository = (*DimensionRepository)(nil)
