package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/legalconnect/consult-client/internal/chat"
	"github.com/legalconnect/consult-client/internal/model"
	"github.com/legalconnect/consult-client/internal/pkg/validator"
	"github.com/legalconnect/consult-client/internal/push"
	"github.com/legalconnect/consult-client/internal/view"
)

// Cached transcripts of cases that vanished from the case list are kept this
// long before pruning.
const transcriptRetention = 30 * 24 * time.Hour

func newChatCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "chat <case-id>",
		Short: "Open the live discussion of one case",
		Long:  "Opens a case conversation: prints the transcript, streams new messages as they arrive, and sends what you type. Messages are delivered over the push channel with a REST fallback.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runChat(cmd, configPath, caseID)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	return cmd
}

func runChat(cmd *cobra.Command, configPath string, caseID int64) error {
	cfg, repo, err := openEnv(configPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	logger := newLogger(cfg)

	client, sess, err := authedClient(cmd.Context(), cfg, repo)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := client.CaseByID(ctx, caseID)
	if err != nil {
		return err
	}
	if !isParty(c, sess.UserID, sess.Role) {
		return fmt.Errorf("case #%d does not involve this account", caseID)
	}

	var counterpart *chat.Identity
	if id := c.CounterpartID(sess.Role); id != nil {
		counterpart = &chat.Identity{ID: *id, Role: sess.CounterpartRole()}
	}

	manager, err := push.New(cfg, logger)
	if err != nil {
		return err
	}
	defer manager.Disconnect()

	disc := view.NewDiscussion(cmd.OutOrStdout(), sess.UserID, sess.Role)
	disc.RenderHeader(c)

	thread := chat.New(caseID, chat.Identity{ID: sess.UserID, Role: sess.Role}, counterpart,
		client, manager, validator.New(), repo, logger, chat.Callbacks{
			OnAppend:     disc.RenderMessage,
			OnCaseUpdate: disc.RenderCaseUpdate,
			OnState:      disc.RenderState,
		})

	// Subscribe before the history fetch so nothing published in between is
	// missed; the merge rule drops the overlap. A failed first connect is not
	// fatal, the manager keeps retrying in the background.
	if err := manager.Connect(ctx, caseID, sess.Token); err != nil {
		logger.Warn("live updates unavailable, retrying", "error", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return thread.LoadHistory(gctx)
	})
	g.Go(func() error {
		if err := repo.PruneTranscripts(gctx, transcriptRetention); err != nil {
			logger.Warn("failed to prune cached transcripts", "error", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	runErr := make(chan error, 1)
	go func() {
		runErr <- thread.Run(ctx, manager.Frames(), manager.States())
	}()

	composerErr := make(chan error, 1)
	go func() {
		composerErr <- disc.Composer(ctx, cmd.InOrStdin(), thread.Send)
	}()

	// The session ends when input ends or the context is cancelled. The
	// composer goroutine can stay blocked on a terminal read during shutdown;
	// the process exit releases it.
	select {
	case err := <-composerErr:
		stop()
		<-runErr
		return err
	case err := <-runErr:
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
}

func isParty(c *model.Case, userID int64, role string) bool {
	if role == model.RoleLawyer {
		return c.LawyerID != nil && *c.LawyerID == userID
	}
	return c.UserID == userID
}
