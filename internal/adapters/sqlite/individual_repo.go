package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/census/internal/ports/secondary"
)

// individualColumns is the scan order used by scanIndividual.
const individualColumns = `id, guid, source_ref, name, organization_id, eye_color_id, gender_id,
	has_died, balance_cents, picture, age, email, phone, address, about, registered, greeting,
	active, created_at, updated_at`

// IndividualRepository implements secondary.IndividualRepository with SQLite.
type IndividualRepository struct {
	db *sql.DB
}

// NewIndividualRepository creates a new SQLite individual repository.
func NewIndividualRepository(db *sql.DB) *IndividualRepository {
	return &IndividualRepository{db: db}
}

// Create persists a new individual version as the active row for its guid.
// The partial unique index on active guids rejects a second active version.
func (r *IndividualRepository) Create(ctx context.Context, individual *secondary.IndividualRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO individuals (id, guid, source_ref, name, organization_id, eye_color_id, gender_id,
			has_died, balance_cents, picture, age, email, phone, address, about, registered, greeting, active)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`,
		individual.ID, individual.GUID, individual.SourceRef, individual.Name,
		individual.OrganizationID, individual.EyeColorID, individual.GenderID,
		individual.HasDied, individual.BalanceCents, individual.Picture, individual.Age,
		individual.Email, individual.Phone, individual.Address, individual.About,
		individual.Registered, individual.Greeting,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("active version for guid %s already exists: %w", individual.GUID, secondary.ErrConflict)
		}
		return fmt.Errorf("failed to create individual: %w", err)
	}

	return nil
}

// GetActiveByGUID retrieves the active version for a guid.
func (r *IndividualRepository) GetActiveByGUID(ctx context.Context, guid string) (*secondary.IndividualRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+individualColumns+" FROM individuals WHERE guid = ? AND active = 1",
		guid,
	)

	record, err := scanIndividual(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("individual %s: %w", guid, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get individual: %w", err)
	}

	return record, nil
}

// Deactivate retires an individual version, keeping the row as history.
func (r *IndividualRepository) Deactivate(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE individuals SET active = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate individual: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("individual %d: %w", id, secondary.ErrNotFound)
	}

	return nil
}

// ReplaceTags replaces the full tag set of an individual.
func (r *IndividualRepository) ReplaceTags(ctx context.Context, individualID int64, tagIDs []int64) error {
	return r.replaceSet(ctx, "individual_tags", "tag_id", individualID, tagIDs)
}

// ReplaceFoods replaces the full favourite-food set of an individual.
func (r *IndividualRepository) ReplaceFoods(ctx context.Context, individualID int64, foodIDs []int64) error {
	return r.replaceSet(ctx, "individual_foods", "food_id", individualID, foodIDs)
}

// ReplaceFriends replaces the full friend set of an individual.
func (r *IndividualRepository) ReplaceFriends(ctx context.Context, individualID int64, friendIDs []int64) error {
	return r.replaceSet(ctx, "individual_friends", "friend_id", individualID, friendIDs)
}

// replaceSet swaps the relation rows of one individual inside a transaction.
// The table and column names come from the Replace* methods, never caller input.
func (r *IndividualRepository) replaceSet(ctx context.Context, table, column string, individualID int64, ids []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE individual_id = ?", table),
		individualID,
	); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf("INSERT INTO %s (individual_id, %s) VALUES (?, ?)", table, column),
			individualID, id,
		); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s replacement: %w", table, err)
	}

	return nil
}

// GetTagIDs retrieves the tag ids attached to an individual.
func (r *IndividualRepository) GetTagIDs(ctx context.Context, individualID int64) ([]int64, error) {
	return r.collectIDs(ctx,
		"SELECT tag_id FROM individual_tags WHERE individual_id = ? ORDER BY tag_id ASC",
		individualID,
	)
}

// GetFoodIDs retrieves the food ids attached to an individual.
func (r *IndividualRepository) GetFoodIDs(ctx context.Context, individualID int64) ([]int64, error) {
	return r.collectIDs(ctx,
		"SELECT food_id FROM individual_foods WHERE individual_id = ? ORDER BY food_id ASC",
		individualID,
	)
}

// GetFriendGUIDs retrieves the guids of an individual's friends.
// Guids are read off the referenced rows, so they stay correct even when a
// friend has been re-versioned since the edge was written.
func (r *IndividualRepository) GetFriendGUIDs(ctx context.Context, individualID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT i.guid
		 FROM individual_friends f
		 JOIN individuals i ON i.id = f.friend_id
		 WHERE f.individual_id = ?
		 ORDER BY i.guid ASC`,
		individualID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get friend guids: %w", err)
	}
	defer rows.Close()

	var guids []string
	for rows.Next() {
		var guid string
		if err := rows.Scan(&guid); err != nil {
			return nil, fmt.Errorf("failed to scan friend guid: %w", err)
		}
		guids = append(guids, guid)
	}

	return guids, rows.Err()
}

// ResolveActiveIDs maps guids to the ids of their active versions.
// Guids without an active version are silently omitted.
func (r *IndividualRepository) ResolveActiveIDs(ctx context.Context, guids []string) ([]int64, error) {
	if len(guids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(guids)), ", ")
	args := make([]any, len(guids))
	for i, guid := range guids {
		args[i] = guid
	}

	return r.collectIDs(ctx,
		"SELECT id FROM individuals WHERE active = 1 AND guid IN ("+placeholders+") ORDER BY id ASC",
		args...,
	)
}

// ListActiveByOrganization retrieves the active individuals employed by an
// organization, ordered by name.
func (r *IndividualRepository) ListActiveByOrganization(ctx context.Context, organizationID int64) ([]*secondary.IndividualRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+individualColumns+" FROM individuals WHERE organization_id = ? AND active = 1 ORDER BY name ASC",
		organizationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list individuals: %w", err)
	}
	defer rows.Close()

	var records []*secondary.IndividualRecord
	for rows.Next() {
		record, err := scanIndividual(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan individual: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// ListFriends retrieves an individual's friends with the attributes needed
// for filtering, as stored on the referenced friend rows.
func (r *IndividualRepository) ListFriends(ctx context.Context, individualID int64) ([]*secondary.FriendRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT i.id, i.guid, i.name, i.has_died, ec.color
		 FROM individual_friends f
		 JOIN individuals i ON i.id = f.friend_id
		 JOIN eye_colors ec ON ec.id = i.eye_color_id
		 WHERE f.individual_id = ?
		 ORDER BY i.name ASC`,
		individualID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	var records []*secondary.FriendRecord
	for rows.Next() {
		record := &secondary.FriendRecord{}
		if err := rows.Scan(&record.ID, &record.GUID, &record.Name, &record.HasDied, &record.EyeColor); err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// CountActive returns the number of active individuals.
func (r *IndividualRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM individuals WHERE active = 1",
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count individuals: %w", err)
	}

	return count, nil
}

// collectIDs runs a single-column id query and collects the results.
func (r *IndividualRepository) collectIDs(ctx context.Context, query string, args ...any) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanIndividual scans one row in individualColumns order.
func scanIndividual(s rowScanner) (*secondary.IndividualRecord, error) {
	var (
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.IndividualRecord{}
	err := s.Scan(
		&record.ID, &record.GUID, &record.SourceRef, &record.Name,
		&record.OrganizationID, &record.EyeColorID, &record.GenderID,
		&record.HasDied, &record.BalanceCents, &record.Picture, &record.Age,
		&record.Email, &record.Phone, &record.Address, &record.About,
		&record.Registered, &record.Greeting, &record.Active,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// Ensure IndividualRepository implements the interface.
var _ secondary.IndividualRepository = (*IndividualRepository)(nil)
