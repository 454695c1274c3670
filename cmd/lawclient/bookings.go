package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/legalconnect/consult-client/internal/model"
)

func newBookingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Consultation appointment commands",
	}

	cmd.AddCommand(newBookingsListCmd())
	cmd.AddCommand(newBookingsCancelCmd())
	cmd.AddCommand(newBookingsConfirmCmd())
	return cmd
}

func newBookingsListCmd() *cobra.Command {
	var (
		configPath string
		upcoming   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your appointments",
		Long:  "Lists appointments booked by the logged-in user, or scheduled with the logged-in lawyer. --upcoming keeps only future slots that are not cancelled.",
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

			var appointments model.AppointmentList
			if sess.Role == model.RoleLawyer {
				appointments, err = client.BookingsByLawyer(cmd.Context(), sess.UserID, upcoming)
			} else {
				appointments, err = client.BookingsByUser(cmd.Context(), sess.UserID, upcoming)
			}
			if err != nil {
				return err
			}

			printAppointmentTable(cmd, sess.Role, appointments)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	cmd.Flags().BoolVar(&upcoming, "upcoming", false, "only future appointments")
	return cmd
}

func newBookingsCancelCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "cancel <appointment-id>",
		Short: "Cancel one of your appointments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appointmentID, err := parseID(args[0])
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

			if sess.Role != model.RoleUser {
				return fmt.Errorf("only client accounts can cancel appointments")
			}

			appointment, err := client.CancelBooking(cmd.Context(), appointmentID, sess.UserID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Appointment #%d is now %s\n", appointment.ID, appointment.Status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	return cmd
}

func newBookingsConfirmCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "confirm <appointment-id>",
		Short: "Confirm a pending appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appointmentID, err := parseID(args[0])
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
				return fmt.Errorf("only lawyer accounts can confirm appointments")
			}

			appointment, err := client.ConfirmBooking(cmd.Context(), appointmentID, sess.UserID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Appointment #%d is now %s\n", appointment.ID, appointment.Status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	return cmd
}

func printAppointmentTable(cmd *cobra.Command, role string, appointments model.AppointmentList) {
	if len(appointments) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No appointments")
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWITH\tDATE\tDURATION\tTYPE\tSTATUS")
	for _, a := range appointments {
		with := a.LawyerFullName
		if role == model.RoleLawyer {
			with = a.UserFullName
		}
		if with == "" {
			with = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%dm\t%s\t%s\n",
			a.ID, with, a.AppointmentDate.Format("2006-01-02 15:04"), a.DurationMinutes, a.MeetingType, a.Status)
	}
	w.Flush()
}
