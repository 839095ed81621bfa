//go:build linux

package cmd

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const serviceName = "netpad.service"

const unitTemplate = `[Unit]
Description=netpad touch and network gamepad
After=network-online.target sys-kernel-config.mount
Wants=network-online.target

[Service]
Type=simple
ExecStartPre=-%[1]s descriptor --configfs --bind
ExecStart=%[1]s serve%[2]s
Restart=on-failure
RestartSec=2

[Install]
WantedBy=%[3]s
`

var systemctl = func(args ...string) ([]byte, error) {
	return exec.Command("systemctl", args...).CombinedOutput()
}

// unitPath returns the unit location and the systemctl scope flags. Root
// installs a system service, everyone else a user service.
func unitPath() (string, []string, error) {
	if os.Geteuid() == 0 {
		return filepath.Join("/etc/systemd/system", serviceName), nil, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", nil, err
	}
	return filepath.Join(dir, "systemd", "user", serviceName), []string{"--user"}, nil
}

// serviceUnit renders the systemd unit for exe.
func serviceUnit(exe string, args []string, user bool) string {
	var extra strings.Builder
	for _, a := range args {
		extra.WriteString(" ")
		extra.WriteString(quoteArg(a))
	}
	target := "multi-user.target"
	if user {
		target = "default.target"
	}
	return fmt.Sprintf(unitTemplate, quoteArg(exe), extra.String(), target)
}

func quoteArg(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\"'\\") {
		return s
	}
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

func install(exe string, args []string, logger *slog.Logger) error {
	path, scope, err := unitPath()
	if err != nil {
		return err
	}
	unit := []byte(serviceUnit(exe, args, len(scope) > 0))
	if prev, err := os.ReadFile(path); err == nil && bytes.Equal(prev, unit) {
		logger.Info("service unit unchanged", "unit", path)
	} else {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, unit, 0o644); err != nil {
			return err
		}
	}

	for _, step := range [][]string{{"daemon-reload"}, {"enable", "--now", serviceName}, {"restart", serviceName}} {
		if out, err := systemctl(append(scope, step...)...); err != nil {
			return fmt.Errorf("systemctl %s failed: %w: %s", strings.Join(step, " "), err, strings.TrimSpace(string(out)))
		}
	}

	logger.Info("netpad install completed", "exe", exe, "unit", path)
	return nil
}

func uninstall(logger *slog.Logger) error {
	path, scope, err := unitPath()
	if err != nil {
		return err
	}
	if out, err := systemctl(append(scope, "disable", "--now", serviceName)...); err != nil {
		logger.Warn("systemctl disable failed", "error", err, "output", strings.TrimSpace(string(out)))
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	if out, err := systemctl(append(scope, "daemon-reload")...); err != nil {
		return fmt.Errorf("systemctl daemon-reload failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	logger.Info("netpad service removed", "unit", path)
	return nil
}
