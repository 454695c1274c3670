package model

const (
	RoleUser   = "user"
	RoleLawyer = "lawyer"
)

// CounterpartRole returns the opposite party's role within a case.
func CounterpartRole(role string) string {
	if role == RoleUser {
		return RoleLawyer
	}
	return RoleUser
}

type MessageList []Message

type Message struct {
	ID           int64     `db:"id" json:"id"`
	CaseID       int64     `db:"case_id" json:"caseId"`
	SenderID     int64     `db:"sender_id" json:"senderId"`
	SenderType   string    `db:"sender_type" json:"senderType"`
	ReceiverID   int64     `db:"receiver_id" json:"receiverId"`
	ReceiverType string    `db:"receiver_type" json:"receiverType"`
	MessageText  string    `db:"message_text" json:"messageText"`
	IsRead       bool      `db:"is_read" json:"isRead"`
	CreatedAt    Timestamp `db:"created_at" json:"createdAt"`
}

// SendMessageRequest is the body of POST /api/messages/send and of frames
// published to the chat.send application destination. Sender fields may be
// omitted; the backend then derives them from the credential.
type SendMessageRequest struct {
	CaseID       int64  `json:"caseId"`
	SenderID     int64  `json:"senderId,omitempty"`
	SenderType   string `json:"senderType,omitempty"`
	ReceiverID   int64  `json:"receiverId"`
	ReceiverType string `json:"receiverType"`
	MessageText  string `json:"messageText"`
}

type UnreadCount struct {
	Count int64 `json:"count"`
}
