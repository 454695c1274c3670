package model

const (
	CaseStatusOpen       = "open"
	CaseStatusInProgress = "in-progress"
	CaseStatusSolved     = "solved"
	CaseStatusClosed     = "closed"
)

type CaseList []Case

type Case struct {
	ID           int64      `db:"id" json:"id"`
	UserID       int64      `db:"user_id" json:"userId"`
	LawyerID     *int64     `db:"lawyer_id" json:"lawyerId,omitempty"`
	CaseTitle    string     `db:"case_title" json:"caseTitle"`
	CaseType     string     `db:"case_type" json:"caseType,omitempty"`
	CaseCategory string     `db:"case_category" json:"caseCategory,omitempty"`
	CaseStatus   string     `db:"case_status" json:"caseStatus"`
	Description  string     `db:"description" json:"description,omitempty"`
	Solution     *string    `db:"solution" json:"solution,omitempty"`
	CreatedAt    Timestamp  `db:"created_at" json:"createdAt"`
	UpdatedAt    *Timestamp `db:"updated_at" json:"updatedAt,omitempty"`
}

// CounterpartID resolves the other party of a case for the given role.
// Returns nil when no lawyer has been assigned yet.
func (c *Case) CounterpartID(role string) *int64 {
	if role == RoleLawyer {
		id := c.UserID
		return &id
	}
	return c.LawyerID
}

type CreateCaseRequest struct {
	UserID      int64  `json:"userId"`
	CaseTitle   string `json:"caseTitle"`
	CaseType    string `json:"caseType,omitempty"`
	Description string `json:"description"`
}

type AssignLawyerRequest struct {
	LawyerID int64 `json:"lawyerId"`
}

type UpdateSolutionRequest struct {
	Solution string `json:"solution"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}
