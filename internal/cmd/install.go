package cmd

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Install sets up netpad to run automatically as a service.
type Install struct {
	Args []string `arg:"" optional:"" help:"Extra arguments for the serve command (e.g. --touch.device=/dev/input/event0)"`
}

// Uninstall removes the netpad service.
type Uninstall struct{}

func (c *Install) Run(logger *slog.Logger) error {
	exe, err := currentExecutable()
	if err != nil {
		return err
	}

	if strings.Contains(exe, "go-build") {
		return errors.New("cannot install from 'go run'")
	}

	return install(exe, c.Args, logger)
}

func (c *Uninstall) Run(logger *slog.Logger) error {
	exe, err := currentExecutable()
	if err != nil {
		return err
	}

	if strings.Contains(exe, "go-build") {
		return errors.New("cannot uninstall from 'go run'")
	}

	return uninstall(logger)
}

func currentExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}

	return filepath.Abs(exe)
}
