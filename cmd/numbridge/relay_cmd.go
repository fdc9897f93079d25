package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/numbridge/engine"
	"github.com/hupe1980/numbridge/render"
	"github.com/hupe1980/numbridge/runner"
)

func newRelayCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Serve chat conversations over stdin/stdout",
		Long: `Relay reads lines of the form "conversation<TAB>text" from stdin and writes
"conversation<TAB>reply" lines to stdout, one per reply line. Every
conversation gets its own session. Failures are replied as "error: message".

Conversations idle for --idle-timeout are dropped and their sessions closed,
so --max-sessions bounds concurrently active conversations rather than all
conversations ever seen.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Chat relays speak IRC unless told otherwise.
			target, err := resolveTarget(a.v.GetString("target"), false, render.TargetIRC)
			if err != nil {
				return err
			}
			cfg := engine.Config{
				MaxSessions:    a.v.GetInt("max-sessions"),
				MaxInputLength: a.v.GetInt("max-input"),
			}
			bridge, err := a.newBridge(target, cfg)
			if err != nil {
				return err
			}
			logger, err := a.logger()
			if err != nil {
				return err
			}

			r := runner.New(func(o *runner.Options) {
				o.Engine = bridge.Engine()
				o.Target = target
				o.ResetCommand = a.v.GetString("reset-command")
				o.IdleTimeout = a.v.GetDuration("idle-timeout")
				o.Logger = logger
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.Info("Relay started", "target", target)
			err = r.Run(ctx, a.stdin, a.stdout)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	f := cmd.Flags()
	f.Int("max-sessions", 1000, "maximum number of live conversations (0 = unlimited)")
	f.Int("max-input", 4096, "maximum length of one message in bytes (0 = unlimited)")
	f.Duration("idle-timeout", 30*time.Minute, "drop conversations idle this long (0 = never)")
	f.String("reset-command", runner.DefaultResetCommand, "message that resets a conversation (empty disables)")
	_ = a.v.BindPFlags(f)
	return cmd
}
