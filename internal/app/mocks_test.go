package app

import (
	"context"
	"fmt"
	"os"
	"sort"
	"testing"

	"github.com/example/census/internal/id"
	"github.com/example/census/internal/ports/secondary"
)

func TestMain(m *testing.M) {
	if err := id.Init(1); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// ============================================================================
// Mock Implementations
// ============================================================================

// mockOrganizationRepository implements secondary.OrganizationRepository for testing.
type mockOrganizationRepository struct {
	orgs map[string]*secondary.OrganizationRecord // name -> record

	// raceRecord, when set, makes Create for that name fail with ErrConflict
	// after planting the record, simulating a concurrent writer winning.
	raceRecord *secondary.OrganizationRecord

	createErr error
	getErr    error
}

func newMockOrganizationRepository() *mockOrganizationRepository {
	return &mockOrganizationRepository{
		orgs: make(map[string]*secondary.OrganizationRecord),
	}
}

func (m *mockOrganizationRepository) Create(ctx context.Context, org *secondary.OrganizationRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.raceRecord != nil && m.raceRecord.Name == org.Name {
		m.orgs[m.raceRecord.Name] = m.raceRecord
		return fmt.Errorf("organization %q already exists: %w", org.Name, secondary.ErrConflict)
	}
	if _, ok := m.orgs[org.Name]; ok {
		return fmt.Errorf("organization %q already exists: %w", org.Name, secondary.ErrConflict)
	}
	m.orgs[org.Name] = org
	return nil
}

func (m *mockOrganizationRepository) GetByName(ctx context.Context, name string) (*secondary.OrganizationRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if org, ok := m.orgs[name]; ok {
		return org, nil
	}
	return nil, fmt.Errorf("organization %q: %w", name, secondary.ErrNotFound)
}

func (m *mockOrganizationRepository) Count(ctx context.Context) (int, error) {
	return len(m.orgs), nil
}

// mockDimensionRepository implements secondary.DimensionRepository for testing.
type mockDimensionRepository struct {
	records map[string]*secondary.DimensionRecord // key -> record

	// raceRecord, when set, makes Create for that key fail with ErrConflict
	// after planting the record, simulating a concurrent writer winning.
	raceRecord *secondary.DimensionRecord

	createErr error
	getErr    error
}

func newMockDimensionRepository() *mockDimensionRepository {
	return &mockDimensionRepository{
		records: make(map[string]*secondary.DimensionRecord),
	}
}

func (m *mockDimensionRepository) Create(ctx context.Context, record *secondary.DimensionRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.raceRecord != nil && m.raceRecord.Key == record.Key {
		m.records[m.raceRecord.Key] = m.raceRecord
		return fmt.Errorf("value %q already exists: %w", record.Key, secondary.ErrConflict)
	}
	if _, ok := m.records[record.Key]; ok {
		return fmt.Errorf("value %q already exists: %w", record.Key, secondary.ErrConflict)
	}
	m.records[record.Key] = record
	return nil
}

func (m *mockDimensionRepository) GetByKey(ctx context.Context, key string) (*secondary.DimensionRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if record, ok := m.records[key]; ok {
		return record, nil
	}
	return nil, fmt.Errorf("value %q: %w", key, secondary.ErrNotFound)
}

func (m *mockDimensionRepository) Count(ctx context.Context) (int, error) {
	return len(m.records), nil
}

// mockFoodRepository implements secondary.FoodRepository for testing.
type mockFoodRepository struct {
	*mockDimensionRepository
	individualFoods map[int64][]*secondary.FoodRecord // individual id -> foods
}

func newMockFoodRepository() *mockFoodRepository {
	return &mockFoodRepository{
		mockDimensionRepository: newMockDimensionRepository(),
		individualFoods:         make(map[int64][]*secondary.FoodRecord),
	}
}

func (m *mockFoodRepository) ListByIndividual(ctx context.Context, individualID int64) ([]*secondary.FoodRecord, error) {
	return m.individualFoods[individualID], nil
}

// mockIndividualRepository implements secondary.IndividualRepository for testing.
type mockIndividualRepository struct {
	individuals  map[int64]*secondary.IndividualRecord // id -> record
	tagIDs       map[int64][]int64
	foodIDs      map[int64][]int64
	friendIDs    map[int64][]int64
	eyeColorKeys map[int64]string // eye color id -> color, for ListFriends

	createErr error
	getErr    error
}

func newMockIndividualRepository() *mockIndividualRepository {
	return &mockIndividualRepository{
		individuals:  make(map[int64]*secondary.IndividualRecord),
		tagIDs:       make(map[int64][]int64),
		foodIDs:      make(map[int64][]int64),
		friendIDs:    make(map[int64][]int64),
		eyeColorKeys: make(map[int64]string),
	}
}

func (m *mockIndividualRepository) Create(ctx context.Context, individual *secondary.IndividualRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.individuals {
		if existing.GUID == individual.GUID && existing.Active && individual.Active {
			return fmt.Errorf("active version for guid %s already exists: %w", individual.GUID, secondary.ErrConflict)
		}
	}
	m.individuals[individual.ID] = individual
	return nil
}

func (m *mockIndividualRepository) GetActiveByGUID(ctx context.Context, guid string) (*secondary.IndividualRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, individual := range m.individuals {
		if individual.GUID == guid && individual.Active {
			return individual, nil
		}
	}
	return nil, fmt.Errorf("individual %s: %w", guid, secondary.ErrNotFound)
}

func (m *mockIndividualRepository) Deactivate(ctx context.Context, individualID int64) error {
	individual, ok := m.individuals[individualID]
	if !ok {
		return fmt.Errorf("individual %d: %w", individualID, secondary.ErrNotFound)
	}
	individual.Active = false
	return nil
}

func (m *mockIndividualRepository) ReplaceTags(ctx context.Context, individualID int64, tagIDs []int64) error {
	m.tagIDs[individualID] = append([]int64(nil), tagIDs...)
	return nil
}

func (m *mockIndividualRepository) ReplaceFoods(ctx context.Context, individualID int64, foodIDs []int64) error {
	m.foodIDs[individualID] = append([]int64(nil), foodIDs...)
	return nil
}

func (m *mockIndividualRepository) ReplaceFriends(ctx context.Context, individualID int64, friendIDs []int64) error {
	m.friendIDs[individualID] = append([]int64(nil), friendIDs...)
	return nil
}

func (m *mockIndividualRepository) GetTagIDs(ctx context.Context, individualID int64) ([]int64, error) {
	return m.tagIDs[individualID], nil
}

func (m *mockIndividualRepository) GetFoodIDs(ctx context.Context, individualID int64) ([]int64, error) {
	return m.foodIDs[individualID], nil
}

func (m *mockIndividualRepository) GetFriendGUIDs(ctx context.Context, individualID int64) ([]string, error) {
	var guids []string
	for _, friendID := range m.friendIDs[individualID] {
		if friend, ok := m.individuals[friendID]; ok {
			guids = append(guids, friend.GUID)
		}
	}
	return guids, nil
}

func (m *mockIndividualRepository) ResolveActiveIDs(ctx context.Context, guids []string) ([]int64, error) {
	var ids []int64
	for _, guid := range guids {
		for _, individual := range m.individuals {
			if individual.GUID == guid && individual.Active {
				ids = append(ids, individual.ID)
				break
			}
		}
	}
	return ids, nil
}

func (m *mockIndividualRepository) ListActiveByOrganization(ctx context.Context, organizationID int64) ([]*secondary.IndividualRecord, error) {
	var result []*secondary.IndividualRecord
	for _, individual := range m.individuals {
		if individual.Active && individual.OrganizationID == organizationID {
			result = append(result, individual)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockIndividualRepository) ListFriends(ctx context.Context, individualID int64) ([]*secondary.FriendRecord, error) {
	var result []*secondary.FriendRecord
	for _, friendID := range m.friendIDs[individualID] {
		friend, ok := m.individuals[friendID]
		if !ok {
			continue
		}
		result = append(result, &secondary.FriendRecord{
			ID:       friend.ID,
			GUID:     friend.GUID,
			Name:     friend.Name,
			HasDied:  friend.HasDied,
			EyeColor: m.eyeColorKeys[friend.EyeColorID],
		})
	}
	return result, nil
}

func (m *mockIndividualRepository) CountActive(ctx context.Context) (int, error) {
	count := 0
	for _, individual := range m.individuals {
		if individual.Active {
			count++
		}
	}
	return count, nil
}

// activeByGUID is a test convenience to look up the stored active version.
func (m *mockIndividualRepository) activeByGUID(guid string) *secondary.IndividualRecord {
	for _, individual := range m.individuals {
		if individual.GUID == guid && individual.Active {
			return individual
		}
	}
	return nil
}

// mockSnapshotRepository implements secondary.SnapshotRepository for testing.
type mockSnapshotRepository struct {
	snapshots []*secondary.SnapshotRecord

	recordErr error
	existsErr error
}

func newMockSnapshotRepository() *mockSnapshotRepository {
	return &mockSnapshotRepository{}
}

func (m *mockSnapshotRepository) Record(ctx context.Context, snapshot *secondary.SnapshotRecord) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.snapshots = append(m.snapshots, snapshot)
	return nil
}

func (m *mockSnapshotRepository) Exists(ctx context.Context, organizationsHash, populationHash string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	for _, snapshot := range m.snapshots {
		if snapshot.OrganizationsHash == organizationsHash && snapshot.PopulationHash == populationHash {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSnapshotRepository) List(ctx context.Context) ([]*secondary.SnapshotRecord, error) {
	result := make([]*secondary.SnapshotRecord, 0, len(m.snapshots))
	for i := len(m.snapshots) - 1; i >= 0; i-- {
		result = append(result, m.snapshots[i])
	}
	return result, nil
}

// ============================================================================
// Test Helpers
// ============================================================================

type testRepos struct {
	organizations *mockOrganizationRepository
	eyeColors     *mockDimensionRepository
	genders       *mockDimensionRepository
	tags          *mockDimensionRepository
	foods         *mockFoodRepository
	individuals   *mockIndividualRepository
	snapshots     *mockSnapshotRepository
}

func newTestRepos() *testRepos {
	return &testRepos{
		organizations: newMockOrganizationRepository(),
		eyeColors:     newMockDimensionRepository(),
		genders:       newMockDimensionRepository(),
		tags:          newMockDimensionRepository(),
		foods:         newMockFoodRepository(),
		individuals:   newMockIndividualRepository(),
		snapshots:     newMockSnapshotRepository(),
	}
}

func newTestIngestService() (*IngestServiceImpl, *testRepos) {
	repos := newTestRepos()
	service := NewIngestService(
		repos.organizations,
		repos.eyeColors,
		repos.genders,
		repos.tags,
		repos.foods,
		repos.individuals,
		repos.snapshots,
	)
	return service, repos
}

func newTestQueryService() (*QueryServiceImpl, *testRepos) {
	repos := newTestRepos()
	service := NewQueryService(
		repos.organizations,
		repos.eyeColors,
		repos.genders,
		repos.tags,
		repos.foods,
		repos.individuals,
		repos.snapshots,
	)
	return service, repos
}
