package app

import (
	"context"
	"errors"

	"github.com/example/census/internal/id"
	"github.com/example/census/internal/ports/secondary"
)

// dimensionStore is the slice of secondary.DimensionRepository the lookup
// builder needs. secondary.FoodRepository satisfies it too.
type dimensionStore interface {
	Create(ctx context.Context, record *secondary.DimensionRecord) error
	GetByKey(ctx context.Context, key string) (*secondary.DimensionRecord, error)
}

// buildLookup returns a value -> record map over store for the given values,
// creating rows only for values the store does not know yet. A pre-seeded
// entry short-circuits the store entirely.
func buildLookup(ctx context.Context, store dimensionStore, values []string, seed map[string]*secondary.DimensionRecord) (map[string]*secondary.DimensionRecord, error) {
	lookup := make(map[string]*secondary.DimensionRecord, len(values)+len(seed))
	for value, record := range seed {
		lookup[value] = record
	}

	for _, value := range values {
		if _, ok := lookup[value]; ok {
			continue
		}
		record, err := getOrCreateDimension(ctx, store, value)
		if err != nil {
			return nil, err
		}
		lookup[value] = record
	}

	return lookup, nil
}

// getOrCreateDimension fetches a dimension value, creating it when absent.
// Losing a uniqueness race to another writer is recovered by re-fetching:
// the store's constraint decides who created the row.
func getOrCreateDimension(ctx context.Context, store dimensionStore, value string) (*secondary.DimensionRecord, error) {
	record, err := store.GetByKey(ctx, value)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, secondary.ErrNotFound) {
		return nil, err
	}

	record = &secondary.DimensionRecord{ID: id.New(), Key: value}
	err = store.Create(ctx, record)
	if err == nil {
		return record, nil
	}
	if errors.Is(err, secondary.ErrConflict) {
		return store.GetByKey(ctx, value)
	}

	return nil, err
}
