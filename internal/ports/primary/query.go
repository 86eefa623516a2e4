package primary

import "context"

// QueryService defines the primary port for reading the ingested census.
type QueryService interface {
	// OrganizationRoster retrieves the active individuals employed by the
	// organization with the given exact name.
	OrganizationRoster(ctx context.Context, name string) (*Roster, error)

	// CommonFriends retrieves the given individuals plus the friends they
	// all share, restricted to living friends with brown eyes. At least
	// two guids are required.
	CommonFriends(ctx context.Context, guids []string) (*CommonFriendsReport, error)

	// FavouriteFoods retrieves an individual's favourite foods grouped by
	// classification.
	FavouriteFoods(ctx context.Context, guid string) (*FavouriteFoodsReport, error)

	// Status reports the ingestion ledger and store row counts.
	Status(ctx context.Context) (*StatusReport, error)
}

// Roster lists the members of one organization.
type Roster struct {
	Organization string
	Members      []string
}

// IndividualSummary carries the contact details shown in reports.
type IndividualSummary struct {
	Name    string
	Age     int64
	Address string
	Phone   string
}

// CommonFriendsReport pairs the requested individuals with their shared friends.
type CommonFriendsReport struct {
	Individuals   []IndividualSummary
	CommonFriends []string
}

// FavouriteFoodsReport groups an individual's foods by classification.
// Keys are the plural classification labels (fruits, vegetables); groups
// with no entries are absent.
type FavouriteFoodsReport struct {
	Name  string
	Age   int64
	Foods map[string][]string
}

// SnapshotInfo describes one completed ingestion run.
type SnapshotInfo struct {
	OrganizationsHash string
	PopulationHash    string
	IngestedAt        string
}

// StatusReport summarizes the store contents and ingestion history.
type StatusReport struct {
	Snapshots         []SnapshotInfo
	Organizations     int
	ActiveIndividuals int
	EyeColors         int
	Genders           int
	Tags              int
	Foods             int
}
