//go:build !linux

package cmd

import (
	"errors"
	"log/slog"
)

var errInstallUnsupported = errors.New("install is only supported on Linux")

func install(string, []string, *slog.Logger) error { return errInstallUnsupported }

func uninstall(*slog.Logger) error { return errInstallUnsupported }
