//go:build no_lua

package script

import (
	"context"
	"errors"
	"log/slog"

	"zigbee-ha-profile/internal/devicedb"
	"zigbee-ha-profile/internal/zcl"
)

var errDisabled = errors.New("script: lua support disabled")

// Loader is a no-op stub when Lua support is disabled.
type Loader struct {
	logger *slog.Logger
}

// NewLoader returns a loader that ignores Lua files.
func NewLoader(logger *slog.Logger) *Loader { return &Loader{logger: logger} }

// Eval always fails.
func (l *Loader) Eval(_ context.Context, _, _ string) (*devicedb.File, error) {
	return nil, errDisabled
}

// LoadDir loads nothing.
func (l *Loader) LoadDir(_ context.Context, dir string, _ *devicedb.Library, _ *zcl.Registry) (int, error) {
	l.logger.Debug("lua disabled, skipping template scripts", "dir", dir)
	return 0, nil
}
