package layout

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/netpad/internal/input"
)

func TestRoundTripDefaultLayout(t *testing.T) {
	for _, format := range []string{FormatYAML, FormatTOML, FormatJSON} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, format, FromLayout(input.DefaultLayout())))

			f, err := Decode(&buf, format)
			require.NoError(t, err)
			l, err := f.Layout()
			require.NoError(t, err)
			assert.Equal(t, input.DefaultLayout(), l)
		})
	}
}

func TestDecodeYAMLAcceptsLabels(t *testing.T) {
	src := `
buttons:
  A: {x: 1, y: 2, w: 3, h: 4}
  "+": {x: 10, y: 10, w: 5, h: 5}
  zl: {x: 0, y: 0, w: 20, h: 20}
stick:
  up: {x: 50, y: 0, w: 10, h: 10}
`
	f, err := Decode(strings.NewReader(src), FormatYAML)
	require.NoError(t, err)
	l, err := f.Layout()
	require.NoError(t, err)

	assert.Equal(t, &input.Rect{X: 1, Y: 2, W: 3, H: 4}, l.Buttons[input.A])
	assert.Equal(t, &input.Rect{X: 10, Y: 10, W: 5, H: 5}, l.Buttons[input.Plus])
	assert.NotNil(t, l.Buttons[input.ZL])
	assert.Nil(t, l.Buttons[input.B])
	assert.NotNil(t, l.Up)
	assert.Nil(t, l.Down)
}

func TestDecodeTOML(t *testing.T) {
	src := `
[buttons.home]
x = 280
y = 30
w = 35
h = 25

[stick.left]
x = 10
y = 140
w = 40
h = 50
`
	f, err := Decode(strings.NewReader(src), FormatTOML)
	require.NoError(t, err)
	l, err := f.Layout()
	require.NoError(t, err)
	assert.Equal(t, &input.Rect{X: 280, Y: 30, W: 35, H: 25}, l.Buttons[input.Home])
	assert.Equal(t, &input.Rect{X: 10, Y: 140, W: 40, H: 50}, l.Left)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		src    string
	}{
		{name: "yaml unknown top level key", format: FormatYAML, src: "knobs: {}\n"},
		{name: "yaml syntax", format: FormatYAML, src: "buttons: [\n"},
		{name: "toml unknown top level key", format: FormatTOML, src: "[knobs]\nx = 1\n"},
		{name: "toml syntax", format: FormatTOML, src: "[buttons\n"},
		{name: "json unknown key", format: FormatJSON, src: `{"knobs":{}}`},
		{name: "unknown format", format: "ini", src: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestLayoutValidation(t *testing.T) {
	_, err := File{Buttons: map[string]input.Rect{"start": {}}}.Layout()
	assert.ErrorContains(t, err, `unknown control "start"`)

	_, err = File{Buttons: map[string]input.Rect{"plus": {}, "+": {}}}.Layout()
	assert.ErrorContains(t, err, "defined twice")

	_, err = File{Stick: map[string]input.Rect{"diagonal": {}}}.Layout()
	assert.ErrorContains(t, err, "unknown stick region")

	_, err = File{Buttons: map[string]input.Rect{"a": {W: -1}}}.Layout()
	assert.ErrorContains(t, err, "negative size")
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]string{
		"layout.yaml": FormatYAML,
		"layout.YML":  FormatYAML,
		"pad.toml":    FormatTOML,
		"pad.json":    FormatJSON,
	} {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := FormatFromPath("layout.ini")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.toml")
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatTOML, FromLayout(input.DefaultLayout())))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, input.DefaultLayout(), l)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
