package model

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

type RegistrationRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

type LawyerRegistrationRequest struct {
	RegistrationRequest

	Specialization    string `json:"specialization"`
	BarNumber         string `json:"barNumber"`
	YearsOfExperience int    `json:"yearsOfExperience,omitempty"`
}

type RegistrationResponse struct {
	ID      int64  `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

// APIError is the backend's error body shape.
type APIError struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
