package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/hupe1980/numbridge"
	"github.com/hupe1980/numbridge/calc/interp"
	"github.com/hupe1980/numbridge/engine"
	"github.com/hupe1980/numbridge/logging"
	"github.com/hupe1980/numbridge/render"
)

func isTerminalOut() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// resolveTarget maps the --target flag to a render target. "auto" selects
// ANSI on a terminal and fallback otherwise.
func resolveTarget(name string, tty bool, fallback render.Target) (render.Target, error) {
	if strings.EqualFold(strings.TrimSpace(name), "auto") || name == "" {
		if tty {
			return render.TargetANSI, nil
		}
		return fallback, nil
	}
	return render.ParseTarget(name)
}

// buildLogger returns the logger selected by --log-level and --log-format.
func buildLogger(level, format string, w io.Writer, noColor bool) (logging.Logger, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(format) {
	case "console":
		return logging.NewConsoleLogger(w, lvl, noColor), nil
	case "json", "text", "":
		if format == "" {
			format = "text"
		}
		return logging.NewLogger(&logging.LoggerConfig{
			Level:     lvl,
			Format:    strings.ToLower(format),
			Output:    w,
			Component: "cli",
		}), nil
	}
	return nil, fmt.Errorf("unknown log format %q", format)
}

// importer layers --modules in front of the embedded modules.
func (a *app) importer() interp.Importer {
	dir := a.v.GetString("modules")
	if dir == "" {
		return interp.BuiltinImporter()
	}
	return interp.ChainImporter{
		interp.FSImporter{FS: os.DirFS(dir)},
		interp.BuiltinImporter(),
	}
}

func (a *app) logger() (logging.Logger, error) {
	return buildLogger(a.v.GetString("log-level"), a.v.GetString("log-format"), a.stderr, a.v.GetBool("no-color"))
}

// target resolves --target for terminal output. With --no-color, "auto"
// never selects ANSI.
func (a *app) target(fallback render.Target) (render.Target, error) {
	colorTTY := a.isTTY() && !a.v.GetBool("no-color")
	return resolveTarget(a.v.GetString("target"), colorTTY, fallback)
}

// newBridge builds a Bridge from the shared flags.
func (a *app) newBridge(target render.Target, cfg engine.Config) (*numbridge.Bridge, error) {
	logger, err := a.logger()
	if err != nil {
		return nil, err
	}
	bootstrap := a.v.GetStringSlice("bootstrap")
	return numbridge.New(func(o *numbridge.Options) {
		o.EngineConfig = cfg
		o.Target = target
		o.Importer = a.importer()
		if len(bootstrap) > 0 {
			o.Bootstrap = bootstrap
		}
		o.Logger = logger
	}), nil
}
