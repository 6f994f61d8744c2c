package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/epeers/preflists/internal/util"
)

// ListDate is a calendar date accepted in either "30.06.19" or "2019-06-30"
// form. It stays a string until a time zone is known.
type ListDate string

// UnmarshalJSON implements the json.Unmarshaler interface and rejects dates
// that parse in neither form.
func (d *ListDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if _, err := util.ParseListDate(s, time.UTC); err != nil {
		return err
	}
	*d = ListDate(s)
	return nil
}

// Epoch returns the epoch second of midnight on this date in loc.
func (d ListDate) Epoch(loc *time.Location) (int64, error) {
	return util.ParseListDate(string(d), loc)
}
