//go:build !linux

package touch

import "log/slog"

// Open always fails outside Linux.
func Open(cfg Config, logger *slog.Logger) (*Panel, error) {
	return nil, ErrUnsupported
}
