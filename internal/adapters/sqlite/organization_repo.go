package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/census/internal/ports/secondary"
)

// OrganizationRepository implements secondary.OrganizationRepository with SQLite.
type OrganizationRepository struct {
	db *sql.DB
}

// NewOrganizationRepository creates a new SQLite organization repository.
func NewOrganizationRepository(db *sql.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Create persists a new organization.
func (r *OrganizationRepository) Create(ctx context.Context, org *secondary.OrganizationRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO organizations (id, name) VALUES (?, ?)",
		org.ID, org.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("organization %q already exists: %w", org.Name, secondary.ErrConflict)
		}
		return fmt.Errorf("failed to create organization: %w", err)
	}

	return nil
}

// GetByName retrieves an organization by its exact name.
func (r *OrganizationRepository) GetByName(ctx context.Context, name string) (*secondary.OrganizationRecord, error) {
	var (
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.OrganizationRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM organizations WHERE name = ?",
		name,
	).Scan(&record.ID, &record.Name, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("organization %q: %w", name, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// Count returns the number of organizations.
func (r *OrganizationRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM organizations").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count organizations: %w", err)
	}

	return count, nil
}

// Ensure OrganizationRepository implements the interface.
var _ secondary.OrganizationRepository = (*OrganizationRepository)(nil)
