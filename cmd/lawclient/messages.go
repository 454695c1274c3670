package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMessagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Message commands outside the live chat",
	}

	cmd.AddCommand(newMessagesHistoryCmd())
	cmd.AddCommand(newMessagesUnreadCmd())
	cmd.AddCommand(newMessagesMarkReadCmd())
	return cmd
}

func newMessagesHistoryCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "history <case-id>",
		Short: "Print the transcript of one case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := parseID(args[0])
			if err != nil {
				return err
			}

			cfg, repo, err := openEnv(configPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			client, sess, err := authedClient(cmd.Context(), cfg, repo)
			if err != nil {
				return err
			}
			defer client.Close()

			messages, err := client.MessagesByCase(cmd.Context(), caseID)
			if err != nil {
				return err
			}
			if err := repo.ReplaceTranscript(cmd.Context(), caseID, messages); err != nil {
				return fmt.Errorf("failed to cache transcript: %w", err)
			}

			for _, msg := range messages {
				label := msg.SenderType
				if msg.SenderID == sess.UserID && msg.SenderType == sess.Role {
					label = "you"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", msg.CreatedAt.Format("2006-01-02 15:04"), label, msg.MessageText)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	return cmd
}

func newMessagesUnreadCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "unread",
		Short: "Count messages addressed to you that are still unread",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, repo, err := openEnv(configPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			client, sess, err := authedClient(cmd.Context(), cfg, repo)
			if err != nil {
				return err
			}
			defer client.Close()

			count, err := client.UnreadMessageCount(cmd.Context(), sess.UserID, sess.Role)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d unread\n", count)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	return cmd
}

func newMessagesMarkReadCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "mark-read <message-id>",
		Short: "Mark one message as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			messageID, err := parseID(args[0])
			if err != nil {
				return err
			}

			cfg, repo, err := openEnv(configPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			client, _, err := authedClient(cmd.Context(), cfg, repo)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.MarkMessageRead(cmd.Context(), messageID); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Marked as read")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	return cmd
}
