package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Alia5/netpad/internal/cmd"
	"github.com/Alia5/netpad/internal/config"
	"github.com/Alia5/netpad/internal/configpaths"
	"github.com/Alia5/netpad/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
	"golang.org/x/term"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("netpad"),
		kong.Description(description()),
		kong.UsageOnError(),
		kong.Help(printHelp),
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to setup logger:", err)
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()
	slog.SetDefault(logger)

	rawLogger := setupRawLogger(&cli, logger, &closeFiles)

	ctx.Bind(logger)
	ctx.BindTo(rawLogger, (*log.RawLogger)(nil))
	ctx.Bind(cmd.BuildInfo{Version: Version})

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i, a := range args {
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("NETPAD_CONFIG")
}

func setupRawLogger(cli *config.CLI, logger *slog.Logger, closeFiles *[]io.Closer) log.RawLogger {
	if cli.Log.RawFile != "" {
		f, err := os.OpenFile(cli.Log.RawFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open raw log file", "file", cli.Log.RawFile, "error", err)
			return log.NewRaw(nil)
		}
		*closeFiles = append(*closeFiles, f)
		return log.NewRaw(f)
	}
	if strings.EqualFold(cli.Log.Level, "trace") {
		return log.NewRaw(os.Stdout)
	}
	return log.NewRaw(nil)
}

// printHelp prints kong's help beside the pad art when stdout is a terminal
// wide enough for it.
func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	art := artFor(terminalWidth())
	if art == "" || os.Getenv("NO_COLOR") != "" {
		return kong.DefaultHelpPrinter(options, ctx)
	}
	var buf bytes.Buffer
	out := ctx.Stdout
	ctx.Stdout = &buf
	err := kong.DefaultHelpPrinter(options, ctx)
	ctx.Stdout = out
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, besideArt(art, strings.TrimRight(buf.String(), "\n")))
	return err
}

func terminalWidth() int {
	if os.Getenv("TERM") == "dumb" {
		return 0
	}
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}

// artFor picks the pad drawing for a terminal width; narrow terminals get
// plain help.
func artFor(width int) string {
	switch {
	case width >= 110:
		return strings.Trim(padBig, "\n")
	case width >= 90:
		return strings.Trim(padSmall, "\n")
	}
	return ""
}

// besideArt renders art as a coloured left column, top aligned with text.
func besideArt(art, text string) string {
	artLines := strings.Split(art, "\n")
	textLines := strings.Split(text, "\n")
	col := 0
	for _, l := range artLines {
		col = max(col, len(l))
	}

	var b strings.Builder
	for i, n := 0, max(len(artLines), len(textLines)); i < n; i++ {
		var a, t string
		if i < len(artLines) {
			a = artLines[i]
		}
		if i < len(textLines) {
			t = textLines[i]
		}
		fmt.Fprintf(&b, "%s%-*s%s  %s\n", artColor, col, a, artReset, t)
	}
	return b.String()
}
