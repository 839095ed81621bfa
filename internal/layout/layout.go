// Package layout loads and stores touch layouts as YAML, TOML or JSON.
package layout

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/Alia5/netpad/internal/input"
)

// Supported formats.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

// Stick region keys.
const (
	dirUp    = "up"
	dirDown  = "down"
	dirLeft  = "left"
	dirRight = "right"
)

// File is the on-disk shape of a layout. Button keys are control names or
// labels ("a", "zl", "plus", "+", "HOME").
type File struct {
	Buttons map[string]input.Rect `json:"buttons" yaml:"buttons" toml:"buttons"`
	Stick   map[string]input.Rect `json:"stick" yaml:"stick" toml:"stick"`
}

// FromLayout converts l using lower-case control names as keys.
func FromLayout(l input.Layout) File {
	f := File{Buttons: map[string]input.Rect{}, Stick: map[string]input.Rect{}}
	for _, c := range input.Controls() {
		if r := l.Buttons[c]; r != nil {
			f.Buttons[c.String()] = *r
		}
	}
	for key, r := range map[string]*input.Rect{dirUp: l.Up, dirDown: l.Down, dirLeft: l.Left, dirRight: l.Right} {
		if r != nil {
			f.Stick[key] = *r
		}
	}
	return f
}

// Layout validates f and converts it.
func (f File) Layout() (input.Layout, error) {
	var l input.Layout
	var errs []error
	check := func(what string, r input.Rect) *input.Rect {
		if r.W < 0 || r.H < 0 {
			errs = append(errs, fmt.Errorf("%s: negative size %dx%d", what, r.W, r.H))
		}
		return &r
	}
	for key, r := range f.Buttons {
		c, err := input.ParseControl(key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if l.Buttons[c] != nil {
			errs = append(errs, fmt.Errorf("control %s defined twice", c.Label()))
			continue
		}
		l.Buttons[c] = check(key, r)
	}
	for key, r := range f.Stick {
		switch strings.ToLower(key) {
		case dirUp:
			l.Up = check(key, r)
		case dirDown:
			l.Down = check(key, r)
		case dirLeft:
			l.Left = check(key, r)
		case dirRight:
			l.Right = check(key, r)
		default:
			errs = append(errs, fmt.Errorf("unknown stick region %q", key))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return input.Layout{}, fmt.Errorf("layout: %w", err)
	}
	return l, nil
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("layout: unsupported file extension %q", filepath.Ext(path))
}

// Decode reads a layout file in the given format. Unknown keys are errors.
func Decode(r io.Reader, format string) (File, error) {
	var f File
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return File{}, fmt.Errorf("layout: yaml: %w", err)
		}
	case FormatTOML:
		data, err := io.ReadAll(r)
		if err != nil {
			return File{}, err
		}
		tree, err := toml.LoadBytes(data)
		if err != nil {
			return File{}, fmt.Errorf("layout: toml: %w", err)
		}
		for _, k := range tree.Keys() {
			if k != "buttons" && k != "stick" {
				return File{}, fmt.Errorf("layout: toml: unknown key %q", k)
			}
		}
		if err := tree.Unmarshal(&f); err != nil {
			return File{}, fmt.Errorf("layout: toml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return File{}, fmt.Errorf("layout: json: %w", err)
		}
	default:
		return File{}, fmt.Errorf("layout: unknown format %q", format)
	}
	return f, nil
}

// Encode writes f in the given format.
func Encode(w io.Writer, format string, f File) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Order(toml.OrderAlphabetical).Encode(f)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(f)
	}
	return fmt.Errorf("layout: unknown format %q", format)
}

// Load reads a layout file, choosing the format by extension.
func Load(path string) (input.Layout, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return input.Layout{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return input.Layout{}, fmt.Errorf("layout: %w", err)
	}
	f, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return input.Layout{}, err
	}
	return f.Layout()
}
