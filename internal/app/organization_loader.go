package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/census/internal/dataset"
	"github.com/example/census/internal/id"
	"github.com/example/census/internal/logging"
	"github.com/example/census/internal/ports/secondary"
)

type organizationStats struct {
	created int
	reused  int
}

// loadOrganizations reads the organization file and resolves every row to a
// stored organization id, creating rows that do not exist yet. The returned
// map is keyed by 0-based file position; population records reference
// organizations by 1-based row order, and index bases vary between exports.
func (s *IngestServiceImpl) loadOrganizations(ctx context.Context, path string) (map[int64]int64, *organizationStats, error) {
	rows, err := dataset.ReadOrganizationFile(path)
	if err != nil {
		return nil, nil, err
	}
	if err := validateOrganizations(rows); err != nil {
		return nil, nil, err
	}

	orgByOrdinal := make(map[int64]int64, len(rows))
	stats := &organizationStats{}
	for i, row := range rows {
		record, created, err := s.getOrCreateOrganization(ctx, row.Name)
		if err != nil {
			return nil, nil, err
		}
		if created {
			stats.created++
		} else {
			stats.reused++
		}
		orgByOrdinal[int64(i)] = record.ID
	}

	logging.FromContext(ctx).Debug().
		Int("total", len(rows)).
		Int("created", stats.created).
		Int("reused", stats.reused).
		Msg("organizations loaded")

	return orgByOrdinal, stats, nil
}

// validateOrganizations rejects the whole file before any row is written.
func validateOrganizations(rows []dataset.OrganizationRow) error {
	seenIndex := make(map[int64]bool, len(rows))
	seenName := make(map[string]bool, len(rows))
	for _, row := range rows {
		if row.Name == "" {
			return fmt.Errorf("organization index %d has a blank name", row.Index)
		}
		if seenIndex[row.Index] {
			return fmt.Errorf("duplicate organization index %d", row.Index)
		}
		if seenName[row.Name] {
			return fmt.Errorf("duplicate organization name %q", row.Name)
		}
		seenIndex[row.Index] = true
		seenName[row.Name] = true
	}
	return nil
}

// getOrCreateOrganization looks up an organization by name and creates it if
// missing. A conflict on create means another writer won the race, so the row
// is fetched again.
func (s *IngestServiceImpl) getOrCreateOrganization(ctx context.Context, name string) (*secondary.OrganizationRecord, bool, error) {
	record, err := s.organizations.GetByName(ctx, name)
	if err == nil {
		return record, false, nil
	}
	if !errors.Is(err, secondary.ErrNotFound) {
		return nil, false, err
	}

	record = &secondary.OrganizationRecord{
		ID:   id.New(),
		Name: name,
	}
	err = s.organizations.Create(ctx, record)
	if err == nil {
		return record, true, nil
	}
	if errors.Is(err, secondary.ErrConflict) {
		record, err = s.organizations.GetByName(ctx, name)
		if err != nil {
			return nil, false, err
		}
		return record, false, nil
	}
	return nil, false, err
}
