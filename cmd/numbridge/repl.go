package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/hupe1980/numbridge"
	"github.com/hupe1980/numbridge/engine"
	"github.com/hupe1980/numbridge/render"
)

const (
	historyFile = "~/.numbridge_history"
	prompt      = ">>> "
	replBanner  = "numbridge %s: type :help for commands, :quit to exit"
	replHelp    = `:help    show this help
:reset   discard all definitions and start a fresh session
:quit    exit`
)

// lineReader is the part of *liner.State used by the REPL loop.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, err := a.target(render.TargetPlain)
			if err != nil {
				return err
			}
			bridge, err := a.newBridge(target, engine.DefaultConfig)
			if err != nil {
				return err
			}

			ln := liner.NewLiner()
			defer ln.Close()
			ln.SetCtrlCAborts(true)

			histPath, err := homedir.Expand(historyFile)
			if err == nil {
				if f, err := os.Open(histPath); err == nil {
					_, _ = ln.ReadHistory(f)
					_ = f.Close()
				}
				defer func() {
					if f, err := os.Create(histPath); err == nil {
						_, _ = ln.WriteHistory(f)
						_ = f.Close()
					}
				}()
			}

			fmt.Fprintf(a.stdout, replBanner+"\n", version)
			return runREPL(cmd.Context(), ln, a.stdout, bridge, target)
		},
	}
}

// runREPL reads lines until EOF, Ctrl-C or :quit and evaluates them in one
// session. Evaluation errors are printed and the loop continues.
func runREPL(ctx context.Context, in lineReader, out io.Writer, bridge *numbridge.Bridge, target render.Target) error {
	handle, err := bridge.CreateSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = bridge.CloseSession(context.Background(), handle) }()

	for {
		line, err := in.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}

		src := strings.TrimSpace(line)
		if src == "" {
			continue
		}
		in.AppendHistory(src)

		if strings.HasPrefix(src, ":") {
			switch strings.ToLower(src) {
			case ":quit", ":q", ":exit":
				return nil
			case ":help":
				fmt.Fprintln(out, replHelp)
			case ":reset":
				if err := bridge.CloseSession(ctx, handle); err != nil {
					return err
				}
				if handle, err = bridge.CreateSession(ctx); err != nil {
					return err
				}
				fmt.Fprintln(out, "session reset")
			default:
				fmt.Fprintln(out, "unknown command. Type :help for commands.")
			}
			continue
		}

		res, err := bridge.Evaluate(ctx, handle, src, target)
		if err != nil {
			fmt.Fprintln(out, red("error: "+err.Error()))
			continue
		}
		for _, p := range res.Printed {
			fmt.Fprintln(out, p)
		}
		if res.Output != "" {
			fmt.Fprintln(out, res.Output)
		}
	}
}
