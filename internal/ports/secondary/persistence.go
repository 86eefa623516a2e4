// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
)

// Sentinel errors returned by repositories. Adapters map driver-specific
// failures onto these so callers can branch without importing driver code.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an insert loses a uniqueness race.
	ErrConflict = errors.New("conflict")
)

// OrganizationRepository defines the secondary port for organization persistence.
type OrganizationRepository interface {
	// Create persists a new organization.
	Create(ctx context.Context, org *OrganizationRecord) error

	// GetByName retrieves an organization by its exact name.
	GetByName(ctx context.Context, name string) (*OrganizationRecord, error)

	// Count returns the number of organizations.
	Count(ctx context.Context) (int, error)
}

// OrganizationRecord represents an organization as stored in persistence.
type OrganizationRecord struct {
	ID        int64
	Name      string
	CreatedAt string
	UpdatedAt string
}

// DimensionRepository defines the secondary port for one reference-data
// family (eye colors, genders, tags). Records are keyed by their natural
// value; the store's uniqueness constraint is the authority on duplicates.
type DimensionRepository interface {
	// Create persists a new dimension value.
	Create(ctx context.Context, record *DimensionRecord) error

	// GetByKey retrieves a dimension value by its natural key.
	GetByKey(ctx context.Context, key string) (*DimensionRecord, error)

	// Count returns the number of values.
	Count(ctx context.Context) (int, error)
}

// DimensionRecord represents a reference-data value as stored in persistence.
type DimensionRecord struct {
	ID  int64
	Key string
}

// FoodRepository defines the secondary port for food persistence.
// Foods behave like any other dimension on the write side; the stored
// classification is derived from the food name at creation time.
type FoodRepository interface {
	DimensionRepository

	// ListByIndividual retrieves the favourite foods of an individual.
	ListByIndividual(ctx context.Context, individualID int64) ([]*FoodRecord, error)
}

// FoodRecord represents a food with its derived classification.
type FoodRecord struct {
	ID             int64
	Name           string
	Classification string
}

// IndividualRepository defines the secondary port for individual persistence.
type IndividualRepository interface {
	// Create persists a new individual version as the active row for its guid.
	Create(ctx context.Context, individual *IndividualRecord) error

	// GetActiveByGUID retrieves the active version for a guid.
	GetActiveByGUID(ctx context.Context, guid string) (*IndividualRecord, error)

	// Deactivate retires an individual version, keeping the row as history.
	Deactivate(ctx context.Context, id int64) error

	// ReplaceTags replaces the full tag set of an individual.
	ReplaceTags(ctx context.Context, individualID int64, tagIDs []int64) error

	// ReplaceFoods replaces the full favourite-food set of an individual.
	ReplaceFoods(ctx context.Context, individualID int64, foodIDs []int64) error

	// ReplaceFriends replaces the full friend set of an individual.
	ReplaceFriends(ctx context.Context, individualID int64, friendIDs []int64) error

	// GetTagIDs retrieves the tag ids attached to an individual.
	GetTagIDs(ctx context.Context, individualID int64) ([]int64, error)

	// GetFoodIDs retrieves the food ids attached to an individual.
	GetFoodIDs(ctx context.Context, individualID int64) ([]int64, error)

	// GetFriendGUIDs retrieves the guids of an individual's friends.
	GetFriendGUIDs(ctx context.Context, individualID int64) ([]string, error)

	// ResolveActiveIDs maps guids to the ids of their active versions.
	// Guids without an active version are silently omitted.
	ResolveActiveIDs(ctx context.Context, guids []string) ([]int64, error)

	// ListActiveByOrganization retrieves the active individuals employed by
	// an organization, ordered by name.
	ListActiveByOrganization(ctx context.Context, organizationID int64) ([]*IndividualRecord, error)

	// ListFriends retrieves an individual's friends with the attributes
	// needed for filtering, as stored on the referenced friend rows.
	ListFriends(ctx context.Context, individualID int64) ([]*FriendRecord, error)

	// CountActive returns the number of active individuals.
	CountActive(ctx context.Context) (int, error)
}

// IndividualRecord represents one version of an individual as stored in
// persistence. The guid is stable across versions; the id is not.
type IndividualRecord struct {
	ID             int64
	GUID           string
	SourceRef      string
	Name           string
	OrganizationID int64
	EyeColorID     int64
	GenderID       int64
	HasDied        bool
	BalanceCents   int64
	Picture        string
	Age            int64
	Email          string
	Phone          string
	Address        string
	About          string
	Registered     string // RFC3339, UTC
	Greeting       string
	Active         bool
	CreatedAt      string
	UpdatedAt      string
}

// FriendRecord carries the friend attributes used by read-side filters.
type FriendRecord struct {
	ID       int64
	GUID     string
	Name     string
	HasDied  bool
	EyeColor string
}

// SnapshotRepository defines the secondary port for the append-only ledger
// of completed ingestion runs.
type SnapshotRepository interface {
	// Record appends a completed run to the ledger.
	Record(ctx context.Context, snapshot *SnapshotRecord) error

	// Exists reports whether a file pair has already been ingested.
	Exists(ctx context.Context, organizationsHash, populationHash string) (bool, error)

	// List retrieves all recorded runs, most recent first.
	List(ctx context.Context) ([]*SnapshotRecord, error)
}

// SnapshotRecord represents a completed ingestion run.
type SnapshotRecord struct {
	ID                int64
	OrganizationsHash string
	PopulationHash    string
	IngestedAt        string
}
