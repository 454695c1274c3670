package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/legalconnect/consult-client/internal/client/rest"
	"github.com/legalconnect/consult-client/internal/model"
	"github.com/legalconnect/consult-client/internal/pkg/validator"
)

func newLoginCmd() *cobra.Command {
	var (
		configPath string
		role       string
		username   string
		password   string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and save the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, configPath, role, username, password)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	cmd.Flags().StringVar(&role, "role", model.RoleUser, "account role (user or lawyer)")
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	cmd.MarkFlagRequired("username")
	return cmd
}

func runLogin(cmd *cobra.Command, configPath, role, username, password string) error {
	if err := validator.New().ValidateRole(role); err != nil {
		return err
	}

	cfg, repo, err := openEnv(configPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	if password == "" {
		password, err = promptPassword(cmd)
		if err != nil {
			return err
		}
	}

	client := rest.New(cfg, nil)
	defer client.Close()

	sess, err := client.Login(cmd.Context(), role, username, password)
	if err != nil {
		return err
	}

	if err := repo.SaveSession(cmd.Context(), sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", sess.Username, sess.Role)
	return nil
}

func promptPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}

	// Piped input, e.g. `echo secret | lawclient login -u ivan`.
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newLogoutCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Discard the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, repo, err := openEnv(configPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			if err := repo.ClearSession(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	return cmd
}

func newWhoamiCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, repo, err := openEnv(configPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			sess, err := repo.LoadSession(cmd.Context())
			if err != nil {
				return err
			}
			if sess == nil {
				return fmt.Errorf("not logged in")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Username: %s\n", sess.Username)
			fmt.Fprintf(out, "Role:     %s\n", sess.Role)
			fmt.Fprintf(out, "User ID:  %d\n", sess.UserID)
			if !sess.ExpiresAt.IsZero() {
				status := "valid"
				if sess.Expired() {
					status = "expired"
				}
				fmt.Fprintf(out, "Expires:  %s (%s)\n", sess.ExpiresAt.Format("2006-01-02 15:04:05"), status)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a platform account",
	}

	cmd.AddCommand(newRegisterUserCmd())
	cmd.AddCommand(newRegisterLawyerCmd())
	return cmd
}

func newRegisterUserCmd() *cobra.Command {
	var (
		configPath string
		req        model.RegistrationRequest
	)

	cmd := &cobra.Command{
		Use:   "user",
		Short: "Register a client account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, repo, err := openEnv(configPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			client := rest.New(cfg, nil)
			defer client.Close()

			resp, err := client.RegisterUser(cmd.Context(), req)
			if err != nil {
				return err
			}

			printRegistration(cmd, resp)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "username (required)")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "password (required)")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&req.FullName, "full-name", "", "full name")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")
	cmd.MarkFlagRequired("email")
	return cmd
}

func newRegisterLawyerCmd() *cobra.Command {
	var (
		configPath string
		req        model.LawyerRegistrationRequest
	)

	cmd := &cobra.Command{
		Use:   "lawyer",
		Short: "Register a lawyer account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, repo, err := openEnv(configPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			client := rest.New(cfg, nil)
			defer client.Close()

			resp, err := client.RegisterLawyer(cmd.Context(), req)
			if err != nil {
				return err
			}

			printRegistration(cmd, resp)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "username (required)")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "password (required)")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&req.FullName, "full-name", "", "full name")
	cmd.Flags().StringVar(&req.Specialization, "specialization", "", "area of practice (required)")
	cmd.Flags().StringVar(&req.BarNumber, "bar-number", "", "bar registration number (required)")
	cmd.Flags().IntVar(&req.YearsOfExperience, "experience", 0, "years of experience")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("specialization")
	cmd.MarkFlagRequired("bar-number")
	return cmd
}

func printRegistration(cmd *cobra.Command, resp *model.RegistrationResponse) {
	if resp.Message != "" {
		fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Registered (id %d)\n", resp.ID)
}
