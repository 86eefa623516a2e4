package app

import "github.com/example/census/internal/ports/secondary"

// sameScalars reports whether two individual versions carry the same scalar
// payload. Storage bookkeeping (id, created_at, updated_at, active) is
// excluded on purpose: equality is about what the file said, not when the
// row was written.
func sameScalars(a, b *secondary.IndividualRecord) bool {
	return a.GUID == b.GUID &&
		a.SourceRef == b.SourceRef &&
		a.Name == b.Name &&
		a.OrganizationID == b.OrganizationID &&
		a.EyeColorID == b.EyeColorID &&
		a.GenderID == b.GenderID &&
		a.HasDied == b.HasDied &&
		a.BalanceCents == b.BalanceCents &&
		a.Picture == b.Picture &&
		a.Age == b.Age &&
		a.Email == b.Email &&
		a.Phone == b.Phone &&
		a.Address == b.Address &&
		a.About == b.About &&
		a.Registered == b.Registered &&
		a.Greeting == b.Greeting
}

// sameIDSet compares two id slices as sets. Both sides are expected to be
// deduplicated already.
func sameIDSet(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[int64]bool, len(a))
	for _, v := range a {
		seen[v] = true
	}
	for _, v := range b {
		if !seen[v] {
			return false
		}
	}
	return true
}

// sameStringSet compares two string slices as sets. Both sides are expected
// to be deduplicated already.
func sameStringSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, v := range a {
		seen[v] = true
	}
	for _, v := range b {
		if !seen[v] {
			return false
		}
	}
	return true
}
