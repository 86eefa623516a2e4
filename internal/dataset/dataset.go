// Package dataset defines the on-disk JSON formats of the organization and
// population registry files and the parsers for their field encodings.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
)

// OrganizationRow is one entry of the organization registry file.
type OrganizationRow struct {
	Index int64  `json:"index"`
	Name  string `json:"company"`
}

// FriendRef points at another population entry by its source index.
type FriendRef struct {
	Index int64 `json:"index"`
}

// PopulationRow is one entry of the population registry file.
type PopulationRow struct {
	Index         int64       `json:"index"`
	SourceRef     string      `json:"_id"`
	GUID          string      `json:"guid"`
	HasDied       bool        `json:"has_died"`
	Balance       string      `json:"balance"`
	Picture       string      `json:"picture"`
	Age           int64       `json:"age"`
	EyeColor      string      `json:"eyeColor"`
	Name          string      `json:"name"`
	Gender        string      `json:"gender"`
	CompanyID     int64       `json:"company_id"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	Address       string      `json:"address"`
	About         string      `json:"about"`
	Registered    string      `json:"registered"`
	Tags          []string    `json:"tags"`
	Friends       []FriendRef `json:"friends"`
	Greeting      string      `json:"greeting"`
	FavouriteFood []string    `json:"favouriteFood"`
}

// ReadOrganizationFile parses an organization registry file.
func ReadOrganizationFile(path string) ([]OrganizationRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read organization file: %w", err)
	}

	var rows []OrganizationRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse organization file %s: %w", path, err)
	}

	return rows, nil
}

// ReadPopulationFile parses a population registry file.
func ReadPopulationFile(path string) ([]PopulationRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read population file: %w", err)
	}

	var rows []PopulationRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse population file %s: %w", path, err)
	}

	return rows, nil
}
