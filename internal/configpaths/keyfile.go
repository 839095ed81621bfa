package configpaths

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// KeyFileName is the default API key file name inside KeyFileDir.
const KeyFileName = "api.key"

// keyBytes is the entropy of generated keys.
const keyBytes = 24

// DefaultKeyFile returns KeyFileName inside KeyFileDir.
func DefaultKeyFile() (string, error) {
	dir, err := KeyFileDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, KeyFileName), nil
}

// LoadOrCreateKey reads the API key stored at path. When the file does not
// exist a new random key is written with owner-only permissions and
// created is true.
func LoadOrCreateKey(path string) (key string, created bool, err error) {
	b, err := os.ReadFile(path)
	if err == nil {
		key = strings.TrimSpace(string(b))
		if key == "" {
			return "", false, fmt.Errorf("key file %s is empty", path)
		}
		return key, false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", false, err
	}

	raw := make([]byte, keyBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", false, err
	}
	key = hex.EncodeToString(raw)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", false, err
	}
	if err := os.WriteFile(path, []byte(key+"\n"), 0o600); err != nil {
		return "", false, err
	}
	return key, true, nil
}
