package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/legalconnect/consult-client/internal/model"
)

func newLawyersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lawyers",
		Short: "Lawyer directory commands",
	}

	cmd.AddCommand(newLawyersSearchCmd())
	cmd.AddCommand(newLawyersShowCmd())
	cmd.AddCommand(newLawyersUpdateProfileCmd())
	return cmd
}

func newLawyersSearchCmd() *cobra.Command {
	var (
		configPath string
		criteria   model.LawyerSearchCriteria
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the lawyer directory",
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

			result, err := client.SearchLawyers(cmd.Context(), criteria)
			if err != nil {
				return err
			}

			if len(result.Lawyers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No lawyers matched")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSPECIALIZATION\tEXPERIENCE\tRATING\tCASES")
			for _, l := range result.Lawyers {
				spec := l.Specialization
				if spec == "" {
					spec = l.Specializations
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%dy\t%.1f\t%d\n",
					l.ID, l.FullName, spec, l.YearsOfExperience, l.Rating, l.CompletedCasesCount)
			}
			w.Flush()

			fmt.Fprintf(cmd.OutOrStdout(), "\nPage %d of %d (%d total)\n",
				result.CurrentPage+1, result.TotalPages, result.TotalElements)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	cmd.Flags().StringVar(&criteria.Name, "name", "", "filter by name")
	cmd.Flags().StringVar(&criteria.Specialization, "specialization", "", "filter by area of practice")
	cmd.Flags().Float64Var(&criteria.MinRating, "min-rating", 0, "minimum rating")
	cmd.Flags().IntVar(&criteria.MinExperience, "min-experience", 0, "minimum years of experience")
	cmd.Flags().IntVar(&criteria.MinCompletedCases, "min-cases", 0, "minimum completed cases")
	cmd.Flags().StringVar(&criteria.Availability, "availability", "", "filter by availability")
	cmd.Flags().IntVar(&criteria.Page, "page", 0, "result page")
	cmd.Flags().IntVar(&criteria.PageSize, "size", 0, "page size")
	return cmd
}

func newLawyersShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <lawyer-id>",
		Short: "Show a lawyer profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lawyerID, err := parseID(args[0])
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

			profile, err := client.LawyerProfile(cmd.Context(), lawyerID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (id %d)\n", profile.FullName, profile.ID)
			if profile.Specialization != "" {
				fmt.Fprintf(out, "Specialization: %s\n", profile.Specialization)
			}
			if profile.YearsOfExperience > 0 {
				fmt.Fprintf(out, "Experience:     %d years\n", profile.YearsOfExperience)
			}
			if profile.LanguagesKnown != "" {
				fmt.Fprintf(out, "Languages:      %s\n", profile.LanguagesKnown)
			}
			if profile.Rating > 0 {
				fmt.Fprintf(out, "Rating:         %.1f (%d cases)\n", profile.Rating, profile.CompletedCasesCount)
			}
			if profile.AvailabilityInfo != "" {
				fmt.Fprintf(out, "Availability:   %s\n", profile.AvailabilityInfo)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	return cmd
}

func newLawyersUpdateProfileCmd() *cobra.Command {
	var (
		configPath string
		profile    model.LawyerProfile
	)

	cmd := &cobra.Command{
		Use:   "update-profile",
		Short: "Update your lawyer profile",
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

			if sess.Role != model.RoleLawyer {
				return fmt.Errorf("only lawyer accounts have a profile")
			}

			updated, err := client.UpdateLawyerProfile(cmd.Context(), sess.UserID, profile)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Profile updated for %s\n", updated.FullName)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	cmd.Flags().StringVar(&profile.FullName, "full-name", "", "display name")
	cmd.Flags().StringVar(&profile.Specialization, "specialization", "", "area of practice")
	cmd.Flags().IntVar(&profile.YearsOfExperience, "experience", 0, "years of experience")
	cmd.Flags().StringVar(&profile.LanguagesKnown, "languages", "", "languages, comma separated")
	cmd.Flags().StringVar(&profile.AvailabilityInfo, "availability", "", "availability note")
	cmd.Flags().StringVar(&profile.ProfilePhotoURL, "photo-url", "", "profile photo URL")
	return cmd
}
