package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// registeredLayouts are tried in order after normalization; seconds are
// optional in the source data.
var registeredLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
}

// ParseRegistered parses a registration timestamp. Upstream exports are
// inconsistent about the shape: a stray space may precede the zone offset
// ("2016-07-28T04:23:20 -02:00"), the date/time separator may be a space
// instead of a T, and the offset colon may be missing ("2020-01-01 00:00
// +0000"). The value is reassembled into RFC3339 shape and normalized to UTC.
func ParseRegistered(s string) (time.Time, error) {
	compact := strings.ReplaceAll(s, " ", "")
	if len(compact) > 10 && compact[10] != 'T' {
		compact = compact[:10] + "T" + compact[10:]
	}
	if i := len(compact) - 5; i > 0 && (compact[i] == '+' || compact[i] == '-') {
		compact = compact[:len(compact)-2] + ":" + compact[len(compact)-2:]
	}

	for _, layout := range registeredLayouts {
		if t, err := time.Parse(layout, compact); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid registered timestamp %q", s)
}

// ParseBalance converts a currency string like "$2,418.59" into cents.
// The cent part carries at most two digits.
func ParseBalance(s string) (int64, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(raw, "$")
	raw = strings.ReplaceAll(raw, ",", "")
	if raw == "" {
		return 0, fmt.Errorf("invalid balance %q", s)
	}

	dollarPart := raw
	centPart := "0"
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		dollarPart, centPart = raw[:i], raw[i+1:]
		if len(centPart) == 0 || len(centPart) > 2 {
			return 0, fmt.Errorf("invalid balance %q", s)
		}
		if len(centPart) == 1 {
			centPart += "0"
		}
	}

	dollars, err := strconv.ParseInt(dollarPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid balance %q", s)
	}
	cents, err := strconv.ParseInt(centPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid balance %q", s)
	}

	if strings.HasPrefix(dollarPart, "-") {
		return dollars*100 - cents, nil
	}
	return dollars*100 + cents, nil
}

// CanonicalGUID parses a guid and returns its canonical lower-case form.
func CanonicalGUID(s string) (string, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid guid %q: %w", s, err)
	}
	return u.String(), nil
}
