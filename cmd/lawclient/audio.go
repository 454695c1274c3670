package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newAudioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audio",
		Short: "Audio record commands",
		Long:  "Uploads voice notes for transcription and lists the transcribed records. The backend masks sensitive details in the stored text.",
	}

	cmd.AddCommand(newAudioUploadCmd())
	cmd.AddCommand(newAudioListCmd())
	cmd.AddCommand(newAudioShowCmd())
	return cmd
}

func newAudioUploadCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a voice note",
		Args:  cobra.ExactArgs(1),
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

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close() //nolint:errcheck // .

			record, err := client.UploadAudio(cmd.Context(), filepath.Base(args[0]), f, sess.UserID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded as record #%d\n", record.ID)
			if record.MaskedEnglishText != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Transcript: %s\n", record.MaskedEnglishText)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	return cmd
}

func newAudioListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transcribed audio records",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			records, err := client.AudioRecords(cmd.Context())
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No audio records")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tLANGUAGE\tTRANSCRIPT")
			for _, r := range records {
				fmt.Fprintf(w, "%d\t%s\t%s\n", r.ID, r.Language, r.MaskedEnglishText)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	return cmd
}

func newAudioShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <record-id>",
		Short: "Show one audio record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recordID, err := parseID(args[0])
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

			record, err := client.AudioByID(cmd.Context(), recordID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Record #%d (language: %s)\n", record.ID, record.Language)
			fmt.Fprintf(out, "Transcript: %s\n", record.MaskedEnglishText)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	return cmd
}
