package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/legalconnect/consult-client/internal/client/rest"
	"github.com/legalconnect/consult-client/internal/config"
	"github.com/legalconnect/consult-client/internal/repository/sqlite"
	"github.com/legalconnect/consult-client/internal/session"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "lawclient",
		Short:        "LegalConnect consultation client",
		Long:         "lawclient talks to a LegalConnect deployment from the terminal: accounts, cases, lawyer search, appointments, audio records, and live case discussions.",
		SilenceUsage: true,
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newWhoamiCmd())
	cmd.AddCommand(newRegisterCmd())
	cmd.AddCommand(newCasesCmd())
	cmd.AddCommand(newMessagesCmd())
	cmd.AddCommand(newLawyersCmd())
	cmd.AddCommand(newBookingsCmd())
	cmd.AddCommand(newAudioCmd())
	cmd.AddCommand(newChatCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lawclient %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

// openEnv loads configuration and opens the local cache. Every subcommand
// goes through here, so config handling stays in one place.
func openEnv(configPath string) (*config.Config, *sqlite.Repository, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	repo, err := sqlite.New(cfg)
	if err != nil {
		return nil, nil, err
	}

	return cfg, repo, nil
}

// authedClient builds a REST client from the saved login.
func authedClient(ctx context.Context, cfg *config.Config, repo *sqlite.Repository) (*rest.Client, *session.Session, error) {
	sess, err := repo.LoadSession(ctx)
	if err != nil {
		return nil, nil, err
	}
	if sess == nil {
		return nil, nil, fmt.Errorf("%w; run `lawclient login` first", session.ErrNoSession)
	}
	if sess.Expired() {
		return nil, nil, fmt.Errorf("session expired; run `lawclient login` again")
	}

	return rest.New(cfg, sess), sess, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
