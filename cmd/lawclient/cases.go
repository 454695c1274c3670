package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/legalconnect/consult-client/internal/model"
	"github.com/legalconnect/consult-client/internal/pkg/validator"
)

func newCasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cases",
		Short: "Case management commands",
	}

	cmd.AddCommand(newCasesListCmd())
	cmd.AddCommand(newCasesShowCmd())
	cmd.AddCommand(newCasesCreateCmd())
	cmd.AddCommand(newCasesUnassignedCmd())
	cmd.AddCommand(newCasesRecommendedCmd())
	cmd.AddCommand(newCasesAcceptCmd())
	cmd.AddCommand(newCasesSolveCmd())
	cmd.AddCommand(newCasesStatusCmd())
	return cmd
}

func newCasesListCmd() *cobra.Command {
	var (
		configPath string
		cached     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your cases",
		Long:  "Lists cases owned by the logged-in user, or assigned to the logged-in lawyer. Results are mirrored into the local cache; --cached lists from the cache without touching the network.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, repo, err := openEnv(configPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			if cached {
				cases, err := repo.ListCases(cmd.Context())
				if err != nil {
					return err
				}
				printCaseTable(cmd, cases)
				return nil
			}

			client, sess, err := authedClient(cmd.Context(), cfg, repo)
			if err != nil {
				return err
			}
			defer client.Close()

			var cases model.CaseList
			if sess.Role == model.RoleLawyer {
				cases, err = client.CasesByLawyer(cmd.Context(), sess.UserID)
			} else {
				cases, err = client.CasesByUser(cmd.Context(), sess.UserID)
			}
			if err != nil {
				return err
			}

			if err := repo.UpsertCases(cmd.Context(), cases); err != nil {
				return fmt.Errorf("failed to update case cache: %w", err)
			}

			printCaseTable(cmd, cases)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	cmd.Flags().BoolVar(&cached, "cached", false, "list from the local cache without a network call")
	return cmd
}

func newCasesShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <case-id>",
		Short: "Show one case",
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

			client, _, err := authedClient(cmd.Context(), cfg, repo)
			if err != nil {
				return err
			}
			defer client.Close()

			c, err := client.CaseByID(cmd.Context(), caseID)
			if err != nil {
				return err
			}

			printCaseDetail(cmd, c)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	return cmd
}

func newCasesCreateCmd() *cobra.Command {
	var (
		configPath  string
		title       string
		caseType    string
		description string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new case",
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

			if sess.Role != model.RoleUser {
				return fmt.Errorf("only client accounts can open cases")
			}

			c, err := client.CreateCase(cmd.Context(), model.CreateCaseRequest{
				UserID:      sess.UserID,
				CaseTitle:   title,
				CaseType:    caseType,
				Description: description,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created case #%d: %s\n", c.ID, c.CaseTitle)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	cmd.Flags().StringVar(&title, "title", "", "case title (required)")
	cmd.Flags().StringVar(&caseType, "type", "", "case type, e.g. civil, criminal, commercial")
	cmd.Flags().StringVar(&description, "description", "", "what happened and what you need")
	cmd.MarkFlagRequired("title")
	return cmd
}

func newCasesUnassignedCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "unassigned",
		Short: "List cases waiting for a lawyer",
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

			cases, err := client.UnassignedCases(cmd.Context())
			if err != nil {
				return err
			}

			printCaseTable(cmd, cases)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	return cmd
}

func newCasesRecommendedCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "recommended",
		Short: "List open cases matching your specialization",
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
				return fmt.Errorf("recommendations are only available to lawyer accounts")
			}

			cases, err := client.RecommendedCases(cmd.Context(), sess.UserID)
			if err != nil {
				return err
			}

			printCaseTable(cmd, cases)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	return cmd
}

func newCasesAcceptCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "accept <case-id>",
		Short: "Take an unassigned case",
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

			if sess.Role != model.RoleLawyer {
				return fmt.Errorf("only lawyer accounts can accept cases")
			}

			c, err := client.AssignLawyer(cmd.Context(), caseID, sess.UserID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Accepted case #%d: %s [%s]\n", c.ID, c.CaseTitle, c.CaseStatus)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	return cmd
}

func newCasesSolveCmd() *cobra.Command {
	var (
		configPath string
		solution   string
	)

	cmd := &cobra.Command{
		Use:   "solve <case-id>",
		Short: "Post the case solution",
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

			client, _, err := authedClient(cmd.Context(), cfg, repo)
			if err != nil {
				return err
			}
			defer client.Close()

			c, err := client.UpdateCaseSolution(cmd.Context(), caseID, solution)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Case #%d is now %s\n", c.ID, c.CaseStatus)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	cmd.Flags().StringVar(&solution, "solution", "", "solution text (required)")
	cmd.MarkFlagRequired("solution")
	return cmd
}

func newCasesStatusCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "status <case-id> <status>",
		Short: "Change a case status",
		Long:  "Moves a case to one of: open, in-progress, solved, closed.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := validator.New().ValidateCaseStatus(args[1]); err != nil {
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

			c, err := client.UpdateCaseStatus(cmd.Context(), caseID, args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Case #%d is now %s\n", c.ID, c.CaseStatus)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	return cmd
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func printCaseTable(cmd *cobra.Command, cases model.CaseList) {
	if len(cases) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No cases")
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tTYPE\tSTATUS\tLAWYER")
	for _, c := range cases {
		lawyer := "-"
		if c.LawyerID != nil {
			lawyer = strconv.FormatInt(*c.LawyerID, 10)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.CaseTitle, c.CaseType, c.CaseStatus, lawyer)
	}
	w.Flush()
}

func printCaseDetail(cmd *cobra.Command, c *model.Case) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Case #%d: %s\n", c.ID, c.CaseTitle)
	fmt.Fprintf(out, "Status:   %s\n", c.CaseStatus)
	if c.CaseType != "" {
		fmt.Fprintf(out, "Type:     %s\n", c.CaseType)
	}
	if c.CaseCategory != "" {
		fmt.Fprintf(out, "Category: %s\n", c.CaseCategory)
	}
	if c.LawyerID != nil {
		fmt.Fprintf(out, "Lawyer:   %d\n", *c.LawyerID)
	}
	if c.Description != "" {
		fmt.Fprintf(out, "\n%s\n", c.Description)
	}
	if c.Solution != nil && *c.Solution != "" {
		fmt.Fprintf(out, "\nSolution: %s\n", *c.Solution)
	}
}
