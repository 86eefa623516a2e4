// Package primary defines the primary ports (driving adapters) for the application.
// These are the service interfaces through which the outside world drives census.
package primary

import "context"

// IngestService defines the primary port for ingestion runs.
type IngestService interface {
	// IngestSnapshot ingests an organization/population file pair into the
	// store. Re-running with an already-ingested pair is a no-op.
	IngestSnapshot(ctx context.Context, req IngestRequest) (*IngestResult, error)
}

// IngestRequest contains the file pair for one ingestion run.
type IngestRequest struct {
	OrganizationsFile string
	PopulationFile    string
}

// IngestResult summarizes what one ingestion run did.
type IngestResult struct {
	Skipped              bool
	OrganizationsHash    string
	PopulationHash       string
	OrganizationsCreated int
	OrganizationsReused  int
	IndividualsCreated   int
	IndividualsUpdated   int
	IndividualsUnchanged int
}
