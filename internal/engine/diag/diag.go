// Package diag reports contract violations through the logger, once per call
// site.
package diag

import (
	"sync"

	"go.trai.ch/strata/internal/core/ports"
)

// Reporter logs warnings and programming errors for the engine packages.
type Reporter struct {
	logger ports.Logger
	seen   sync.Map
}

// New returns a Reporter writing to logger. A nil logger discards everything.
func New(logger ports.Logger) *Reporter {
	return &Reporter{logger: logger}
}

// Warn logs msg as a warning.
func (r *Reporter) Warn(msg string) {
	if r == nil || r.logger == nil {
		return
	}
	r.logger.Warn(msg)
}

// Once logs err the first time key is reported and reports whether it did.
func (r *Reporter) Once(key string, err error) bool {
	if r == nil {
		return false
	}
	if _, loaded := r.seen.LoadOrStore(key, struct{}{}); loaded {
		return false
	}
	if r.logger != nil {
		r.logger.Error(err)
	}
	return true
}
