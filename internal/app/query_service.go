package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/example/census/internal/dataset"
	"github.com/example/census/internal/ports/primary"
	"github.com/example/census/internal/ports/secondary"
)

// brownEyeColor is the eye color a friend must have to count as common.
const brownEyeColor = "brown"

// QueryServiceImpl implements the QueryService interface.
type QueryServiceImpl struct {
	organizations secondary.OrganizationRepository
	eyeColors     secondary.DimensionRepository
	genders       secondary.DimensionRepository
	tags          secondary.DimensionRepository
	foods         secondary.FoodRepository
	individuals   secondary.IndividualRepository
	snapshots     secondary.SnapshotRepository
}

// NewQueryService creates a new QueryService with injected dependencies.
func NewQueryService(
	organizations secondary.OrganizationRepository,
	eyeColors secondary.DimensionRepository,
	genders secondary.DimensionRepository,
	tags secondary.DimensionRepository,
	foods secondary.FoodRepository,
	individuals secondary.IndividualRepository,
	snapshots secondary.SnapshotRepository,
) *QueryServiceImpl {
	return &QueryServiceImpl{
		organizations: organizations,
		eyeColors:     eyeColors,
		genders:       genders,
		tags:          tags,
		foods:         foods,
		individuals:   individuals,
		snapshots:     snapshots,
	}
}

// OrganizationRoster returns the names of the active individuals employed by
// the named organization.
func (s *QueryServiceImpl) OrganizationRoster(ctx context.Context, name string) (*primary.Roster, error) {
	org, err := s.organizations.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	members, err := s.individuals.ListActiveByOrganization(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	roster := &primary.Roster{
		Organization: org.Name,
		Members:      make([]string, 0, len(members)),
	}
	for _, member := range members {
		roster.Members = append(roster.Members, member.Name)
	}
	return roster, nil
}

// CommonFriends returns the given individuals together with the friends they
// all share. Only living, brown-eyed friends count.
func (s *QueryServiceImpl) CommonFriends(ctx context.Context, guids []string) (*primary.CommonFriendsReport, error) {
	if len(guids) < 2 {
		return nil, fmt.Errorf("at least two guids are required")
	}

	report := &primary.CommonFriendsReport{
		Individuals: make([]primary.IndividualSummary, 0, len(guids)),
	}

	// common maps friend guid to how many of the individuals share it.
	// Guids key the intersection so that two friends sharing a name stay
	// distinct.
	common := make(map[string]int)
	friendNames := make(map[string]string)
	for _, raw := range guids {
		guid, err := dataset.CanonicalGUID(raw)
		if err != nil {
			return nil, err
		}
		individual, err := s.individuals.GetActiveByGUID(ctx, guid)
		if err != nil {
			return nil, err
		}
		report.Individuals = append(report.Individuals, primary.IndividualSummary{
			Name:    individual.Name,
			Age:     individual.Age,
			Address: individual.Address,
			Phone:   individual.Phone,
		})

		friends, err := s.individuals.ListFriends(ctx, individual.ID)
		if err != nil {
			return nil, err
		}
		for _, friend := range friends {
			if friend.HasDied || friend.EyeColor != brownEyeColor {
				continue
			}
			common[friend.GUID]++
			friendNames[friend.GUID] = friend.Name
		}
	}

	report.CommonFriends = make([]string, 0)
	for guid, count := range common {
		if count == len(guids) {
			report.CommonFriends = append(report.CommonFriends, friendNames[guid])
		}
	}
	sort.Strings(report.CommonFriends)

	return report, nil
}

// FavouriteFoods returns an individual's favourite foods grouped by
// classification.
func (s *QueryServiceImpl) FavouriteFoods(ctx context.Context, rawGUID string) (*primary.FavouriteFoodsReport, error) {
	guid, err := dataset.CanonicalGUID(rawGUID)
	if err != nil {
		return nil, err
	}
	individual, err := s.individuals.GetActiveByGUID(ctx, guid)
	if err != nil {
		return nil, err
	}
	foods, err := s.foods.ListByIndividual(ctx, individual.ID)
	if err != nil {
		return nil, err
	}

	report := &primary.FavouriteFoodsReport{
		Name:  individual.Name,
		Age:   individual.Age,
		Foods: make(map[string][]string),
	}
	for _, food := range foods {
		label := food.Classification + "s"
		report.Foods[label] = append(report.Foods[label], food.Name)
	}
	return report, nil
}

// Status summarizes the store: snapshot history plus row counts.
func (s *QueryServiceImpl) Status(ctx context.Context) (*primary.StatusReport, error) {
	snapshots, err := s.snapshots.List(ctx)
	if err != nil {
		return nil, err
	}

	report := &primary.StatusReport{
		Snapshots: make([]primary.SnapshotInfo, 0, len(snapshots)),
	}
	for _, snapshot := range snapshots {
		report.Snapshots = append(report.Snapshots, primary.SnapshotInfo{
			OrganizationsHash: snapshot.OrganizationsHash,
			PopulationHash:    snapshot.PopulationHash,
			IngestedAt:        snapshot.IngestedAt,
		})
	}

	if report.Organizations, err = s.organizations.Count(ctx); err != nil {
		return nil, err
	}
	if report.ActiveIndividuals, err = s.individuals.CountActive(ctx); err != nil {
		return nil, err
	}
	if report.EyeColors, err = s.eyeColors.Count(ctx); err != nil {
		return nil, err
	}
	if report.Genders, err = s.genders.Count(ctx); err != nil {
		return nil, err
	}
	if report.Tags, err = s.tags.Count(ctx); err != nil {
		return nil, err
	}
	if report.Foods, err = s.foods.Count(ctx); err != nil {
		return nil, err
	}

	return report, nil
}

// Ensure QueryServiceImpl implements the interface.
var _ primary.QueryService = (*QueryServiceImpl)(nil)
