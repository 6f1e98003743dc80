// Package idx generates lexicographically sortable identifiers.
package idx

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// New returns a fresh ULID string. IDs made later sort after earlier ones,
// also within the same millisecond.
func New() string {
	return ulid.Make().String()
}

// Time extracts the creation time encoded in id.
func Time(id string) (time.Time, error) {
	u, err := ulid.ParseStrict(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()), nil
}
