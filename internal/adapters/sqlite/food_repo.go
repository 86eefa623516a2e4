package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/census/internal/dataset"
	"github.com/example/census/internal/ports/secondary"
)

// FoodRepository implements secondary.FoodRepository with SQLite.
// The classification column is derived from the food name on insert.
type FoodRepository struct {
	db *sql.DB
}

// NewFoodRepository creates a new SQLite food repository.
func NewFoodRepository(db *sql.DB) *FoodRepository {
	return &FoodRepository{db: db}
}

// Create persists a new food with its derived classification.
func (r *FoodRepository) Create(ctx context.Context, record *secondary.DimensionRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO foods (id, name, classification) VALUES (?, ?, ?)",
		record.ID, record.Key, dataset.ClassifyFood(record.Key),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("food %q already exists: %w", record.Key, secondary.ErrConflict)
		}
		return fmt.Errorf("failed to create food: %w", err)
	}

	return nil
}

// GetByKey retrieves a food by its name.
func (r *FoodRepository) GetByKey(ctx context.Context, key string) (*secondary.DimensionRecord, error) {
	record := &secondary.DimensionRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name FROM foods WHERE name = ?",
		key,
	).Scan(&record.ID, &record.Key)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("food %q: %w", key, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get food: %w", err)
	}

	return record, nil
}

// Count returns the number of foods.
func (r *FoodRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM foods").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count foods: %w", err)
	}

	return count, nil
}

// ListByIndividual retrieves the favourite foods of an individual.
func (r *FoodRepository) ListByIndividual(ctx context.Context, individualID int64) ([]*secondary.FoodRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT f.id, f.name, f.classification
		 FROM foods f
		 JOIN individual_foods jf ON jf.food_id = f.id
		 WHERE jf.individual_id = ?
		 ORDER BY f.name ASC`,
		individualID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list foods for individual: %w", err)
	}
	defer rows.Close()

	var records []*secondary.FoodRecord
	for rows.Next() {
		record := &secondary.FoodRecord{}
		if err := rows.Scan(&record.ID, &record.Name, &record.Classification); err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// Ensure FoodRepository implements the interface.
var _ secondary.FoodRepository = (*FoodRepository)(nil)
