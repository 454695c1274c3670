package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/legalconnect/consult-client/internal/model"
)

// BookingsByUser lists a user's appointments; upcoming narrows the list to
// future slots that are not cancelled.
func (c *Client) BookingsByUser(ctx context.Context, userID int64, upcoming bool) (model.AppointmentList, error) {
	path := fmt.Sprintf("/api/bookings/user/%d", userID)
	if upcoming {
		path += "/upcoming"
	}

	var appointments model.AppointmentList
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &appointments); err != nil {
		return nil, fmt.Errorf("failed to fetch user bookings: %w", err)
	}
	return appointments, nil
}

func (c *Client) BookingsByLawyer(ctx context.Context, lawyerID int64, upcoming bool) (model.AppointmentList, error) {
	path := fmt.Sprintf("/api/bookings/lawyer/%d", lawyerID)
	if upcoming {
		path += "/upcoming"
	}

	var appointments model.AppointmentList
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &appointments); err != nil {
		return nil, fmt.Errorf("failed to fetch lawyer bookings: %w", err)
	}
	return appointments, nil
}

// CancelBooking cancels an appointment on behalf of the client who booked it.
// The backend checks ownership against the X-User-Id header.
func (c *Client) CancelBooking(ctx context.Context, appointmentID, userID int64) (*model.Appointment, error) {
	header := map[string]string{"X-User-Id": strconv.FormatInt(userID, 10)}

	var resp model.BookingResponse
	err := c.doJSONHeader(ctx, http.MethodPut, fmt.Sprintf("/api/bookings/%d/cancel", appointmentID), header, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel booking %d: %w", appointmentID, err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("failed to cancel booking %d: %s", appointmentID, resp.Message)
	}

	return resp.Appointment, nil
}

// ConfirmBooking accepts a pending appointment as the assigned lawyer.
func (c *Client) ConfirmBooking(ctx context.Context, appointmentID, lawyerID int64) (*model.Appointment, error) {
	header := map[string]string{"X-Lawyer-Id": strconv.FormatInt(lawyerID, 10)}

	var resp model.BookingResponse
	err := c.doJSONHeader(ctx, http.MethodPut, fmt.Sprintf("/api/bookings/%d/confirm", appointmentID), header, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm booking %d: %w", appointmentID, err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("failed to confirm booking %d: %s", appointmentID, resp.Message)
	}

	return resp.Appointment, nil
}
