package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hokaccha/go-prettyjson"
	"github.com/spf13/cobra"

	"github.com/hupe1980/numbridge/core"
	"github.com/hupe1980/numbridge/engine"
	"github.com/hupe1980/numbridge/render"
)

// evalOutput is the --json document written by `numbridge eval`.
type evalOutput struct {
	Output     string   `json:"output"`
	Printed    []string `json:"printed,omitempty"`
	DurationMS float64  `json:"duration_ms"`
	Error      string   `json:"error,omitempty"`
}

func newEvalCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		stdin  bool
	)
	cmd := &cobra.Command{
		Use:   "eval [program]",
		Short: "Evaluate a program in a fresh session and print the reply",
		Example: `  numbridge eval "3 km + 500 m"
  numbridge eval --target irc "let d = 10 km; d / 2 h"
  echo "2 m^2 -> cm^2" | numbridge eval --stdin --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := programSource(a.stdin, args, stdin)
			if err != nil {
				return err
			}
			target, err := a.target(render.TargetPlain)
			if err != nil {
				return err
			}
			// JSON consumers get plain text unless a target was requested.
			if asJSON && strings.EqualFold(a.v.GetString("target"), "auto") {
				target = render.TargetPlain
			}

			bridge, err := a.newBridge(target, engine.DefaultConfig)
			if err != nil {
				return err
			}
			res, evalErr := bridge.EvalOnce(cmd.Context(), src, target)
			if asJSON {
				return writeEvalJSON(a.stdout, res, evalErr, a.v.GetBool("no-color"))
			}
			if evalErr != nil {
				return evalErr
			}
			for _, p := range res.Printed {
				fmt.Fprintln(a.stdout, p)
			}
			if res.Output != "" {
				fmt.Fprintln(a.stdout, res.Output)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "write the reply as JSON")
	cmd.Flags().BoolVar(&stdin, "stdin", false, "read the program from stdin")
	return cmd
}

// programSource joins the positional arguments into one program, or reads
// it from r when fromStdin is set.
func programSource(r io.Reader, args []string, fromStdin bool) (string, error) {
	if fromStdin {
		if len(args) > 0 {
			return "", errors.New("multiple input sources specified")
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if len(args) == 0 {
		return "", errors.New("no program given")
	}
	return strings.Join(args, " "), nil
}

// writeEvalJSON writes the result document. An evaluation error is reported
// inside the document and also returned so the exit status reflects it.
func writeEvalJSON(w io.Writer, res *core.EvalResult, evalErr error, noColor bool) error {
	doc := evalOutput{}
	if evalErr != nil {
		doc.Error = evalErr.Error()
	} else {
		doc.Output = res.Output
		doc.Printed = res.Printed
		doc.DurationMS = float64(res.Duration.Microseconds()) / 1000
	}

	var (
		data []byte
		err  error
	)
	if noColor {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = prettyjson.Marshal(doc)
	}
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return err
	}
	if evalErr != nil {
		return errSilent{evalErr}
	}
	return nil
}

// errSilent marks an error already reported on stdout.
type errSilent struct{ err error }

func (e errSilent) Error() string { return e.err.Error() }
func (e errSilent) Unwrap() error { return e.err }

func isSilent(err error) bool {
	var s errSilent
	return errors.As(err, &s)
}
