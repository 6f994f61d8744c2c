// Package scoring turns a ticker-ordered stream of list change events into
// one time-decayed score per security.
package scoring

import (
	"errors"
	"fmt"

	"github.com/epeers/preflists/internal/models"
)

var (
	ErrOutOfWindow   = errors.New("event timestamp outside decay window")
	ErrInvalidWindow = errors.New("decay window must be positive")
)

// DecayCalculator applies linear decay over a fixed window ending at Now
type DecayCalculator struct {
	now    int64
	window int64
}

// NewDecayCalculator fixes now and the window length for every Factor call
func NewDecayCalculator(w models.DecayWindow) (*DecayCalculator, error) {
	if w.WindowSeconds <= 0 {
		return nil, fmt.Errorf("%w: got %d seconds", ErrInvalidWindow, w.WindowSeconds)
	}
	return &DecayCalculator{now: w.Now, window: w.WindowSeconds}, nil
}

// Factor returns 1 - (now - t) / window. An event at now weighs 1; weight
// falls linearly and an event exactly one window old is rejected, so every
// factor is in (0, 1].
func (c *DecayCalculator) Factor(t int64) (float64, error) {
	diff := c.now - t
	if diff < 0 || diff >= c.window {
		return 0, fmt.Errorf("%w: timestamp %d, now %d, window %d", ErrOutOfWindow, t, c.now, c.window)
	}
	return 1 - float64(diff)/float64(c.window), nil
}

// Window returns the parameters the calculator was built with
func (c *DecayCalculator) Window() models.DecayWindow {
	return models.DecayWindow{Now: c.now, WindowSeconds: c.window}
}
