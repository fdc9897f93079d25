// Command numbridge evaluates unit-aware calculator programs from the
// command line, interactively, or as a chat relay.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "unknown"
)

var red = color.New(color.FgRed).SprintFunc()

// app carries the configuration and streams shared by all commands.
type app struct {
	v      *viper.Viper
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	// isTTY reports whether stdout is an interactive terminal.
	isTTY func() bool
}

func newApp() *app {
	return &app{
		v:      viper.New(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		isTTY:  isTerminalOut,
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "numbridge",
		Short:         "Unit-aware calculator sessions for terminals and chat",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig()
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default $HOME/.numbridge.yaml)")
	pf.String("target", "auto", "output target: auto, plain, irc or ansi")
	pf.String("log-level", "warn", "log level: debug, info, warn or error")
	pf.String("log-format", "text", "log format: text, json or console")
	pf.StringSlice("bootstrap", nil, "directives run on every new session (default \"use prelude\")")
	pf.String("modules", "", "directory with additional .nbt modules")
	pf.Bool("no-color", false, "disable colored output")
	_ = a.v.BindPFlags(pf)

	a.v.SetEnvPrefix("NUMBRIDGE")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(newEvalCmd(a), newReplCmd(a), newRelayCmd(a))
	return root
}

// loadConfig reads the optional config file. A missing default file is not
// an error; a missing explicit one is.
func (a *app) loadConfig() error {
	if a.v.GetBool("no-color") {
		color.NoColor = true
	}

	if cfgFile := a.v.GetString("config"); cfgFile != "" {
		path, err := homedir.Expand(cfgFile)
		if err != nil {
			return err
		}
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		return nil
	}

	home, err := homedir.Dir()
	if err != nil {
		return nil
	}
	a.v.AddConfigPath(home)
	a.v.SetConfigName(".numbridge")
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func main() {
	a := newApp()
	if err := newRootCmd(a).Execute(); err != nil {
		if !isSilent(err) {
			fmt.Fprintln(a.stderr, red(err.Error()))
		}
		os.Exit(1)
	}
}
