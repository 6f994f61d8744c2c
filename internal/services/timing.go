package services

import (
	"time"

	log "github.com/sirupsen/logrus"
)

func TrackTime(funcName string, start time.Time) {
	elapsed := time.Since(start)
	log.Debugf("%s took %d ms", funcName, elapsed.Milliseconds())
}

// Clock returns the current time. Services take one so "now" can be pinned
// in tests.
type Clock func() time.Time

func (c Clock) orDefault() Clock {
	if c == nil {
		return time.Now
	}
	return c
}
