//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package chat

import (
	"context"

	"github.com/legalconnect/consult-client/internal/model"
)

type MessageAPI interface {
	MessagesByCase(ctx context.Context, caseID int64) (model.MessageList, error)
	SendMessage(ctx context.Context, req model.SendMessageRequest) (*model.Message, error)
}

type Publisher interface {
	Publish(destination string, payload interface{}) error
}

// TranscriptCache mirrors the transcript into local storage so listings work
// between runs. Optional; a nil cache disables write-through.
type TranscriptCache interface {
	ReplaceTranscript(ctx context.Context, caseID int64, messages model.MessageList) error
	AppendMessage(ctx context.Context, message model.Message) error
}

type Validator interface {
	ValidateSend(body string, hasCounterpart bool) error
}
