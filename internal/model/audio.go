package model

// ClientAudio describes an uploaded case-intake recording after the
// transcription collaborator has processed it.
type ClientAudio struct {
	ID                  int64     `json:"id"`
	UserID              int64     `json:"userId,omitempty"`
	Language            string    `json:"language,omitempty"`
	OriginalEnglishText string    `json:"originalEnglishText,omitempty"`
	MaskedEnglishText   string    `json:"maskedEnglishText,omitempty"`
	CreatedAt           Timestamp `json:"createdAt"`
}
