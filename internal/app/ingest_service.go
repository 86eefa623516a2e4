package app

import (
	"context"
	"sync"

	"github.com/example/census/internal/id"
	"github.com/example/census/internal/logging"
	"github.com/example/census/internal/ports/primary"
	"github.com/example/census/internal/ports/secondary"
)

// IngestServiceImpl implements the IngestService interface.
type IngestServiceImpl struct {
	organizations secondary.OrganizationRepository
	eyeColors     secondary.DimensionRepository
	genders       secondary.DimensionRepository
	tags          secondary.DimensionRepository
	foods         secondary.FoodRepository
	individuals   secondary.IndividualRepository
	snapshots     secondary.SnapshotRepository

	// mu serializes whole runs: the skip check, both loaders, and the
	// snapshot record must not interleave across concurrent callers.
	mu sync.Mutex
}

// NewIngestService creates a new IngestService with injected dependencies.
func NewIngestService(
	organizations secondary.OrganizationRepository,
	eyeColors secondary.DimensionRepository,
	genders secondary.DimensionRepository,
	tags secondary.DimensionRepository,
	foods secondary.FoodRepository,
	individuals secondary.IndividualRepository,
	snapshots secondary.SnapshotRepository,
) *IngestServiceImpl {
	return &IngestServiceImpl{
		organizations: organizations,
		eyeColors:     eyeColors,
		genders:       genders,
		tags:          tags,
		foods:         foods,
		individuals:   individuals,
		snapshots:     snapshots,
	}
}

// IngestSnapshot ingests an organization/population file pair.
// A pair whose fingerprints are already in the ledger is skipped without
// touching the store.
func (s *IngestServiceImpl) IngestSnapshot(ctx context.Context, req primary.IngestRequest) (*primary.IngestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logging.FromContext(ctx)

	orgHash, err := FileFingerprint(req.OrganizationsFile)
	if err != nil {
		return nil, err
	}
	popHash, err := FileFingerprint(req.PopulationFile)
	if err != nil {
		return nil, err
	}

	result := &primary.IngestResult{
		OrganizationsHash: orgHash,
		PopulationHash:    popHash,
	}

	ingested, err := s.snapshots.Exists(ctx, orgHash, popHash)
	if err != nil {
		return nil, err
	}
	if ingested {
		log.Info().
			Str("organizations", orgHash).
			Str("population", popHash).
			Msg("file pair already ingested, skipping")
		result.Skipped = true
		return result, nil
	}

	orgByOrdinal, orgStats, err := s.loadOrganizations(ctx, req.OrganizationsFile)
	if err != nil {
		return nil, err
	}

	recStats, err := s.reconcilePopulation(ctx, req.PopulationFile, orgByOrdinal)
	if err != nil {
		return nil, err
	}

	// Recorded only after both loaders succeed; a failed run stays
	// invisible to the skip check and is retried on the next invocation.
	if err := s.snapshots.Record(ctx, &secondary.SnapshotRecord{
		ID:                id.New(),
		OrganizationsHash: orgHash,
		PopulationHash:    popHash,
	}); err != nil {
		return nil, err
	}

	result.OrganizationsCreated = orgStats.created
	result.OrganizationsReused = orgStats.reused
	result.IndividualsCreated = recStats.created
	result.IndividualsUpdated = recStats.updated
	result.IndividualsUnchanged = recStats.unchanged

	log.Info().
		Int("organizations_created", result.OrganizationsCreated).
		Int("individuals_created", result.IndividualsCreated).
		Int("individuals_updated", result.IndividualsUpdated).
		Int("individuals_unchanged", result.IndividualsUnchanged).
		Msg("ingestion complete")

	return result, nil
}

// Ensure IngestServiceImpl implements the interface.
var _ primary.IngestService = (*IngestServiceImpl)(nil)
