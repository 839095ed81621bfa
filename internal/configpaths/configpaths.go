// Package configpaths locates configuration and key files.
package configpaths

import (
	"os"
	"path/filepath"
	"strings"
)

// AppName names the per-user configuration directory.
const AppName = "netpad"

// ConfigBaseName is the file name, without extension, of the default
// configuration file.
const ConfigBaseName = "config"

// DefaultConfigDir returns the per-user configuration directory.
func DefaultConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

// ConfigCandidatePaths returns the configuration files to load, grouped by
// format. An explicit user path is routed by its extension (unknown
// extensions are tried as JSON); otherwise the default directory and the
// working directory are searched.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	if userPath != "" {
		switch strings.ToLower(filepath.Ext(userPath)) {
		case ".yaml", ".yml":
			return nil, []string{userPath}, nil
		case ".toml":
			return nil, nil, []string{userPath}
		default:
			return []string{userPath}, nil, nil
		}
	}

	var dirs []string
	if dir, err := DefaultConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	dirs = append(dirs, ".")
	for _, dir := range dirs {
		base := filepath.Join(dir, ConfigBaseName)
		jsonPaths = append(jsonPaths, base+".json")
		yamlPaths = append(yamlPaths, base+".yaml", base+".yml")
		tomlPaths = append(tomlPaths, base+".toml")
	}
	return jsonPaths, yamlPaths, tomlPaths
}
