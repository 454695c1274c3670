package model

const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

type AppointmentList []Appointment

// Appointment is one booked consultation slot between a user and a lawyer.
type Appointment struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	LawyerID        int64     `json:"lawyerId"`
	UserFullName    string    `json:"userFullName"`
	LawyerFullName  string    `json:"lawyerFullName"`
	AppointmentDate Timestamp `json:"appointmentDate"`
	DurationMinutes int       `json:"durationMinutes"`
	MeetingType     string    `json:"meetingType"`
	Description     string    `json:"description"`
	Status          string    `json:"status"`
}

// BookingResponse is the envelope of the confirm and cancel endpoints. A 2xx
// response can still carry success=false, e.g. when the slot was already
// cancelled.
type BookingResponse struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message"`
	Appointment *Appointment `json:"appointment"`
}
