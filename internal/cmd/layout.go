package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/netpad/internal/input"
	"github.com/Alia5/netpad/internal/layout"
)

// Layout prints the built-in touch layout, or validates and converts a
// layout file.
type Layout struct {
	Format string `help:"Output format" enum:"yaml,toml,json" default:"yaml"`
	Input  string `help:"Layout file to validate and convert" type:"existingfile" short:"i"`
	Output string `help:"Write to this file instead of stdout" type:"path" short:"o"`
}

// Run is called by Kong when the layout command is executed.
func (c *Layout) Run(logger *slog.Logger) error {
	l := input.DefaultLayout()
	if c.Input != "" {
		var err error
		if l, err = layout.Load(c.Input); err != nil {
			return err
		}
		logger.Debug("layout valid", "file", c.Input)
	}

	out := io.Writer(os.Stdout)
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return layout.Encode(out, c.Format, layout.FromLayout(l))
}
