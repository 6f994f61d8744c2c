package util

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// SecondsPerDay is the length of a calendar day used by trailing windows.
const SecondsPerDay = 24 * 60 * 60

// MaxWindowDays bounds trailing windows so their length in seconds, and
// now minus that length, stay well inside int64.
const MaxWindowDays = 36500

// ListDateLayout is the day.month.2-digit-year form list changes are entered
// in, e.g. "30.06.19". Two-digit years 69-99 map to 19xx, 00-68 to 20xx.
const ListDateLayout = "02.01.06"

const isoDateLayout = "2006-01-02"

// ErrInvalidDate is returned for dates that parse in neither accepted form.
var ErrInvalidDate = errors.New("invalid date")

// DaysToSeconds converts a window length in days to seconds.
func DaysToSeconds(days int) int64 {
	return int64(days) * SecondsPerDay
}

// ParseListDate converts a calendar date to the epoch second of local
// midnight in loc. Both "30.06.19" and "2019-06-30" are accepted.
func ParseListDate(s string, loc *time.Location) (int64, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range []string{ListDateLayout, isoDateLayout} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.Unix(), nil
		}
	}
	return 0, fmt.Errorf("%w %q: expected dd.mm.yy", ErrInvalidDate, s)
}

// FormatListDate renders an epoch timestamp as dd.mm.yy in loc.
func FormatListDate(epoch int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(epoch, 0).In(loc).Format(ListDateLayout)
}
