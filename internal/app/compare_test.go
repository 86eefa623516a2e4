package app

import (
	"testing"

	"github.com/example/census/internal/ports/secondary"
)

func sampleRecord() *secondary.IndividualRecord {
	return &secondary.IndividualRecord{
		ID:             1,
		GUID:           "5e71dc5d-61c0-4f3b-8b92-d77310c7fa43",
		SourceRef:      "595eeb9b96d80a5bc7afb106",
		Name:           "Carmella Lambert",
		OrganizationID: 10,
		EyeColorID:     20,
		GenderID:       30,
		HasDied:        false,
		BalanceCents:   241859,
		Picture:        "http://placehold.it/32x32",
		Age:            61,
		Email:          "carmellalambert@earthmark.com",
		Phone:          "+1 (910) 567-3630",
		Address:        "628 Sumner Place, Sperryville, American Samoa, 9819",
		About:          "Non duis dolore ad enim.",
		Registered:     "2016-07-13T10:19:58Z",
		Greeting:       "Hello, Carmella Lambert!",
		Active:         true,
		CreatedAt:      "2026-01-02T03:04:05Z",
		UpdatedAt:      "2026-01-02T03:04:05Z",
	}
}

// ============================================================================
// sameScalars Tests
// ============================================================================

func TestSameScalars_Identical(t *testing.T) {
	a := sampleRecord()
	b := sampleRecord()

	if !sameScalars(a, b) {
		t.Error("expected identical records to match")
	}
}

func TestSameScalars_IgnoresStorageBookkeeping(t *testing.T) {
	a := sampleRecord()
	b := sampleRecord()
	b.ID = 2
	b.Active = false
	b.CreatedAt = "2026-02-02T00:00:00Z"
	b.UpdatedAt = "2026-02-02T00:00:00Z"

	if !sameScalars(a, b) {
		t.Error("expected storage bookkeeping to be excluded from comparison")
	}
}

func TestSameScalars_DetectsChanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *secondary.IndividualRecord)
	}{
		{"name", func(r *secondary.IndividualRecord) { r.Name = "Someone Else" }},
		{"organization", func(r *secondary.IndividualRecord) { r.OrganizationID = 11 }},
		{"has_died", func(r *secondary.IndividualRecord) { r.HasDied = true }},
		{"balance", func(r *secondary.IndividualRecord) { r.BalanceCents = 241860 }},
		{"registered", func(r *secondary.IndividualRecord) { r.Registered = "2016-07-13T10:19:59Z" }},
		{"source_ref", func(r *secondary.IndividualRecord) { r.SourceRef = "000000000000000000000000" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := sampleRecord()
			b := sampleRecord()
			tt.mutate(b)

			if sameScalars(a, b) {
				t.Errorf("expected %s change to be detected", tt.name)
			}
		})
	}
}

// ============================================================================
// Set Comparison Tests
// ============================================================================

func TestSameIDSet(t *testing.T) {
	tests := []struct {
		name string
		a    []int64
		b    []int64
		want bool
	}{
		{"both empty", nil, nil, true},
		{"same order", []int64{1, 2, 3}, []int64{1, 2, 3}, true},
		{"different order", []int64{1, 2, 3}, []int64{3, 1, 2}, true},
		{"different length", []int64{1, 2}, []int64{1, 2, 3}, false},
		{"different members", []int64{1, 2, 3}, []int64{1, 2, 4}, false},
		{"empty vs non-empty", nil, []int64{1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sameIDSet(tt.a, tt.b); got != tt.want {
				t.Errorf("sameIDSet(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSameStringSet(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want bool
	}{
		{"both empty", nil, nil, true},
		{"different order", []string{"a", "b"}, []string{"b", "a"}, true},
		{"different members", []string{"a", "b"}, []string{"a", "c"}, false},
		{"different length", []string{"a"}, []string{"a", "b"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sameStringSet(tt.a, tt.b); got != tt.want {
				t.Errorf("sameStringSet(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
