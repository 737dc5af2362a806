package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"trivia-quiz/internal/config"
	"trivia-quiz/internal/domain"
)

// NewPlayCmd builds the CLI subcommand that plays in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var (
		difficulty string
		rounds     int
		seconds    int
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a timed trivia game in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			settings := cfg.Game.SessionConfig()
			if cmd.Flags().Changed("difficulty") {
				settings.Difficulty = domain.ParseDifficulty(difficulty)
			}
			if cmd.Flags().Changed("rounds") {
				settings.RoundCount = rounds
			}
			if cmd.Flags().Changed("seconds") {
				settings.SecondsPerRound = seconds
			}
			if err := settings.Validate(); err != nil {
				return err
			}
			return runPlay(cmd.Context(), cfg, settings)
		},
	}
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "starting difficulty (Easy, Normal, Hard)")
	cmd.Flags().IntVar(&rounds, "rounds", 0, "starting number of rounds")
	cmd.Flags().IntVar(&seconds, "seconds", 0, "starting seconds per round")
	return cmd
}

func runPlay(ctx context.Context, cfg config.Config, settings domain.SessionConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := newBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	return NewTerminal(b.service, settings, os.Stdin, os.Stdout).Run(ctx)
}
