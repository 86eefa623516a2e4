package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/example/census/internal/dataset"
	"github.com/example/census/internal/id"
	"github.com/example/census/internal/logging"
	"github.com/example/census/internal/ports/secondary"
)

type reconcileStats struct {
	created   int
	updated   int
	unchanged int
}

const (
	outcomeCreated = iota
	outcomeUpdated
	outcomeUnchanged
)

// individualVersion is one fully resolved population row, ready to store.
type individualVersion struct {
	record      *secondary.IndividualRecord
	tagIDs      []int64
	foodIDs     []int64
	friendGUIDs []string
}

// friendLink is a deferred friend replacement. Links are applied after every
// row is stored, so forward references resolve against the finished run.
type friendLink struct {
	individualID int64
	friendGUIDs  []string
}

// dimensionLookups holds the per-run dimension values keyed by their raw
// string from the file.
type dimensionLookups struct {
	genders   map[string]*secondary.DimensionRecord
	eyeColors map[string]*secondary.DimensionRecord
	tags      map[string]*secondary.DimensionRecord
	foods     map[string]*secondary.DimensionRecord
}

// reconcilePopulation reads the population file and reconciles every row
// against the store in file order.
func (s *IngestServiceImpl) reconcilePopulation(ctx context.Context, path string, orgByOrdinal map[int64]int64) (*reconcileStats, error) {
	rows, err := dataset.ReadPopulationFile(path)
	if err != nil {
		return nil, err
	}

	guidByIndex, lookups, err := s.harvest(ctx, rows)
	if err != nil {
		return nil, err
	}

	stats := &reconcileStats{}
	var links []friendLink
	for _, row := range rows {
		version, err := buildVersion(row, orgByOrdinal, guidByIndex, lookups)
		if err != nil {
			return nil, err
		}
		individualID, outcome, err := s.storeVersion(ctx, version)
		if err != nil {
			return nil, err
		}
		switch outcome {
		case outcomeCreated:
			stats.created++
		case outcomeUpdated:
			stats.updated++
		default:
			stats.unchanged++
		}
		if outcome != outcomeUnchanged {
			links = append(links, friendLink{individualID: individualID, friendGUIDs: version.friendGUIDs})
		}
	}

	if err := s.linkFriends(ctx, links); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug().
		Int("total", len(rows)).
		Int("created", stats.created).
		Int("updated", stats.updated).
		Int("unchanged", stats.unchanged).
		Msg("population reconciled")

	return stats, nil
}

// harvest makes a first pass over the rows: it canonicalizes every guid and
// resolves the dimension values the file mentions, creating missing ones. The
// four dimension families are independent, so they load in parallel.
func (s *IngestServiceImpl) harvest(ctx context.Context, rows []dataset.PopulationRow) (map[int64]string, *dimensionLookups, error) {
	guidByIndex := make(map[int64]string, len(rows))

	var genders, eyeColors, tags, foods []string
	seenGender := make(map[string]bool)
	seenEyeColor := make(map[string]bool)
	seenTag := make(map[string]bool)
	seenFood := make(map[string]bool)
	collect := func(values *[]string, seen map[string]bool, value string) {
		if !seen[value] {
			seen[value] = true
			*values = append(*values, value)
		}
	}

	for _, row := range rows {
		guid, err := dataset.CanonicalGUID(row.GUID)
		if err != nil {
			return nil, nil, fmt.Errorf("population index %d: %w", row.Index, err)
		}
		guidByIndex[row.Index] = guid

		collect(&genders, seenGender, row.Gender)
		collect(&eyeColors, seenEyeColor, row.EyeColor)
		for _, tag := range row.Tags {
			collect(&tags, seenTag, tag)
		}
		for _, food := range row.FavouriteFood {
			collect(&foods, seenFood, food)
		}
	}

	lookups := &dimensionLookups{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lookups.genders, err = buildLookup(gctx, s.genders, genders, nil)
		return err
	})
	g.Go(func() error {
		var err error
		lookups.eyeColors, err = buildLookup(gctx, s.eyeColors, eyeColors, nil)
		return err
	})
	g.Go(func() error {
		var err error
		lookups.tags, err = buildLookup(gctx, s.tags, tags, nil)
		return err
	})
	g.Go(func() error {
		var err error
		lookups.foods, err = buildLookup(gctx, s.foods, foods, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return guidByIndex, lookups, nil
}

// buildVersion resolves one population row into storable form. Every
// reference the row makes has to resolve; a dangling one fails the run.
func buildVersion(row dataset.PopulationRow, orgByOrdinal map[int64]int64, guidByIndex map[int64]string, lookups *dimensionLookups) (*individualVersion, error) {
	// company_id counts organization rows 1-based in file order.
	orgID, ok := orgByOrdinal[row.CompanyID-1]
	if !ok {
		return nil, fmt.Errorf("population index %d references unknown organization %d", row.Index, row.CompanyID)
	}
	gender, ok := lookups.genders[row.Gender]
	if !ok {
		return nil, fmt.Errorf("population index %d has unresolved gender %q", row.Index, row.Gender)
	}
	eyeColor, ok := lookups.eyeColors[row.EyeColor]
	if !ok {
		return nil, fmt.Errorf("population index %d has unresolved eye color %q", row.Index, row.EyeColor)
	}

	registered, err := dataset.ParseRegistered(row.Registered)
	if err != nil {
		return nil, fmt.Errorf("population index %d: %w", row.Index, err)
	}
	balance, err := dataset.ParseBalance(row.Balance)
	if err != nil {
		return nil, fmt.Errorf("population index %d: %w", row.Index, err)
	}

	tagIDs := make([]int64, 0, len(row.Tags))
	seenTag := make(map[int64]bool, len(row.Tags))
	for _, tag := range row.Tags {
		record, ok := lookups.tags[tag]
		if !ok {
			return nil, fmt.Errorf("population index %d has unresolved tag %q", row.Index, tag)
		}
		if !seenTag[record.ID] {
			seenTag[record.ID] = true
			tagIDs = append(tagIDs, record.ID)
		}
	}

	foodIDs := make([]int64, 0, len(row.FavouriteFood))
	seenFood := make(map[int64]bool, len(row.FavouriteFood))
	for _, food := range row.FavouriteFood {
		record, ok := lookups.foods[food]
		if !ok {
			return nil, fmt.Errorf("population index %d has unresolved food %q", row.Index, food)
		}
		if !seenFood[record.ID] {
			seenFood[record.ID] = true
			foodIDs = append(foodIDs, record.ID)
		}
	}

	friendGUIDs := make([]string, 0, len(row.Friends))
	seenFriend := make(map[string]bool, len(row.Friends))
	for _, ref := range row.Friends {
		guid, ok := guidByIndex[ref.Index]
		if !ok {
			return nil, fmt.Errorf("population index %d references unknown friend index %d", row.Index, ref.Index)
		}
		if !seenFriend[guid] {
			seenFriend[guid] = true
			friendGUIDs = append(friendGUIDs, guid)
		}
	}

	return &individualVersion{
		record: &secondary.IndividualRecord{
			GUID:           guidByIndex[row.Index],
			SourceRef:      row.SourceRef,
			Name:           row.Name,
			OrganizationID: orgID,
			EyeColorID:     eyeColor.ID,
			GenderID:       gender.ID,
			HasDied:        row.HasDied,
			BalanceCents:   balance,
			Picture:        row.Picture,
			Age:            row.Age,
			Email:          row.Email,
			Phone:          row.Phone,
			Address:        row.Address,
			About:          row.About,
			Registered:     registered.Format(time.RFC3339),
			Greeting:       row.Greeting,
			Active:         true,
		},
		tagIDs:      tagIDs,
		foodIDs:     foodIDs,
		friendGUIDs: friendGUIDs,
	}, nil
}

// storeVersion reconciles one resolved version against the store. An
// identical active version is left alone; a differing one is deactivated and
// the new version inserted.
func (s *IngestServiceImpl) storeVersion(ctx context.Context, version *individualVersion) (int64, int, error) {
	existing, err := s.individuals.GetActiveByGUID(ctx, version.record.GUID)
	if err != nil {
		if !errors.Is(err, secondary.ErrNotFound) {
			return 0, 0, err
		}
		individualID, err := s.insertVersion(ctx, version)
		if err != nil {
			return 0, 0, err
		}
		return individualID, outcomeCreated, nil
	}

	same, err := s.matchesStored(ctx, existing, version)
	if err != nil {
		return 0, 0, err
	}
	if same {
		return existing.ID, outcomeUnchanged, nil
	}

	if err := s.individuals.Deactivate(ctx, existing.ID); err != nil {
		return 0, 0, err
	}
	individualID, err := s.insertVersion(ctx, version)
	if err != nil {
		return 0, 0, err
	}
	return individualID, outcomeUpdated, nil
}

// insertVersion writes a new individual row plus its tag and food sets.
// Friend links are deferred to the end of the run.
func (s *IngestServiceImpl) insertVersion(ctx context.Context, version *individualVersion) (int64, error) {
	version.record.ID = id.New()
	if err := s.individuals.Create(ctx, version.record); err != nil {
		return 0, err
	}
	if err := s.individuals.ReplaceTags(ctx, version.record.ID, version.tagIDs); err != nil {
		return 0, err
	}
	if err := s.individuals.ReplaceFoods(ctx, version.record.ID, version.foodIDs); err != nil {
		return 0, err
	}
	return version.record.ID, nil
}

// matchesStored reports whether the stored active version already carries
// everything the incoming version says, relations included.
func (s *IngestServiceImpl) matchesStored(ctx context.Context, existing *secondary.IndividualRecord, version *individualVersion) (bool, error) {
	if !sameScalars(existing, version.record) {
		return false, nil
	}
	tagIDs, err := s.individuals.GetTagIDs(ctx, existing.ID)
	if err != nil {
		return false, err
	}
	if !sameIDSet(tagIDs, version.tagIDs) {
		return false, nil
	}
	foodIDs, err := s.individuals.GetFoodIDs(ctx, existing.ID)
	if err != nil {
		return false, err
	}
	if !sameIDSet(foodIDs, version.foodIDs) {
		return false, nil
	}
	friendGUIDs, err := s.individuals.GetFriendGUIDs(ctx, existing.ID)
	if err != nil {
		return false, err
	}
	if !sameStringSet(friendGUIDs, version.friendGUIDs) {
		return false, nil
	}
	return true, nil
}

// linkFriends applies the deferred friend replacements. Guids that resolve to
// no active individual are dropped rather than failing the run.
func (s *IngestServiceImpl) linkFriends(ctx context.Context, links []friendLink) error {
	for _, link := range links {
		friendIDs, err := s.individuals.ResolveActiveIDs(ctx, link.friendGUIDs)
		if err != nil {
			return err
		}
		if err := s.individuals.ReplaceFriends(ctx, link.individualID, friendIDs); err != nil {
			return err
		}
	}
	return nil
}
