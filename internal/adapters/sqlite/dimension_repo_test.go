package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/census/internal/adapters/sqlite"
	"github.com/example/census/internal/ports/secondary"
)

func TestDimensionRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewEyeColorRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &secondary.DimensionRecord{ID: 1, Key: "brown"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	retrieved, err := repo.GetByKey(ctx, "brown")
	if err != nil {
		t.Fatalf("GetByKey failed: %v", err)
	}
	if retrieved.ID != 1 {
		t.Errorf("expected id 1, got %d", retrieved.ID)
	}
	if retrieved.Key != "brown" {
		t.Errorf("expected key brown, got %s", retrieved.Key)
	}
}

func TestDimensionRepository_Create_DuplicateKey(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewGenderRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &secondary.DimensionRecord{ID: 1, Key: "female"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err := repo.Create(ctx, &secondary.DimensionRecord{ID: 2, Key: "female"})

	if err == nil {
		t.Fatal("expected error for duplicate key, got nil")
	}
	if !errors.Is(err, secondary.ErrConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestDimensionRepository_GetByKey_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTagRepository(db)
	ctx := context.Background()

	_, err := repo.GetByKey(ctx, "nonexistent")

	if err == nil {
		t.Fatal("expected error for unknown key, got nil")
	}
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

// The three families are distinct tables; the same value may exist in each.
func TestDimensionRepository_FamiliesAreIndependent(t *testing.T) {
	db := setupTestDB(t)
	eyeColors := sqlite.NewEyeColorRepository(db)
	genders := sqlite.NewGenderRepository(db)
	tags := sqlite.NewTagRepository(db)
	ctx := context.Background()

	for _, repo := range []*sqlite.DimensionRepository{eyeColors, genders, tags} {
		if err := repo.Create(ctx, &secondary.DimensionRecord{ID: 1, Key: "brown"}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	for _, repo := range []*sqlite.DimensionRepository{eyeColors, genders, tags} {
		count, err := repo.Count(ctx)
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1, got %d", count)
		}
	}
}

func TestDimensionRepository_Count(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTagRepository(db)
	ctx := context.Background()

	seedTag(t, db, 1, "id")
	seedTag(t, db, 2, "quis")
	seedTag(t, db, 3, "ullamco")

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3, got %d", count)
	}
}
