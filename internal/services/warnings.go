package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/epeers/preflists/internal/models"
	log "github.com/sirupsen/logrus"
)

type warningContextKey struct{}

// WarningCollector accumulates non-fatal import and sync issues so the
// handler can return them next to the result.
type WarningCollector struct {
	mu       sync.Mutex
	warnings []models.Warning
}

// NewWarningContext returns a context carrying a fresh WarningCollector.
func NewWarningContext(ctx context.Context) (context.Context, *WarningCollector) {
	wc := &WarningCollector{}
	return context.WithValue(ctx, warningContextKey{}, wc), wc
}

// Warnf formats and records a warning in ctx's collector, logging it at
// debug level either way. Without a collector nothing is recorded.
func Warnf(ctx context.Context, code models.WarningCode, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Debugf("%s: %s", code, msg)

	wc, ok := ctx.Value(warningContextKey{}).(*WarningCollector)
	if !ok || wc == nil {
		return
	}
	wc.mu.Lock()
	defer wc.mu.Unlock()
	wc.warnings = append(wc.warnings, models.Warning{Code: code, Message: msg})
}

// Warnings returns a copy of the collected warnings.
func (wc *WarningCollector) Warnings() []models.Warning {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if len(wc.warnings) == 0 {
		return nil
	}
	out := make([]models.Warning, len(wc.warnings))
	copy(out, wc.warnings)
	return out
}
