package model

type LawyerProfile struct {
	ID                  int64   `json:"id"`
	FullName            string  `json:"fullName"`
	Email               string  `json:"email,omitempty"`
	Specialization      string  `json:"specialization,omitempty"`
	Specializations     string  `json:"specializations,omitempty"`
	YearsOfExperience   int     `json:"yearsOfExperience,omitempty"`
	LanguagesKnown      string  `json:"languagesKnown,omitempty"`
	Rating              float64 `json:"rating,omitempty"`
	CompletedCasesCount int     `json:"completedCasesCount,omitempty"`
	ProfilePhotoURL     string  `json:"profilePhotoUrl,omitempty"`
	AvailabilityInfo    string  `json:"availabilityInfo,omitempty"`
	BarNumber           string  `json:"barNumber,omitempty"`
}

// LawyerSearchCriteria maps to the query parameters of the lawyer search
// endpoint. Zero values are not sent.
type LawyerSearchCriteria struct {
	Name              string
	Specialization    string
	MinRating         float64
	MinExperience     int
	MinCompletedCases int
	Availability      string
	Page              int
	PageSize          int
}

type LawyerSearchResult struct {
	Lawyers       []LawyerProfile `json:"lawyers"`
	CurrentPage   int             `json:"currentPage"`
	TotalPages    int             `json:"totalPages"`
	TotalElements int64           `json:"totalElements"`
	PageSize      int             `json:"pageSize"`
}
