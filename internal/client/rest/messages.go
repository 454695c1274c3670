package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/legalconnect/consult-client/internal/model"
)

// MessagesByCase fetches the full ordered history of a case transcript.
func (c *Client) MessagesByCase(ctx context.Context, caseID int64) (model.MessageList, error) {
	var messages model.MessageList
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/messages/case/%d", caseID), nil, &messages)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch case messages: %w", err)
	}
	return messages, nil
}

// SendMessage is the REST fallback for the push publish path.
func (c *Client) SendMessage(ctx context.Context, req model.SendMessageRequest) (*model.Message, error) {
	var msg model.Message
	err := c.doJSON(ctx, http.MethodPost, "/api/messages/send", req, &msg)
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	return &msg, nil
}

func (c *Client) MarkMessageRead(ctx context.Context, messageID int64) error {
	err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/messages/%d/read", messageID), nil, nil)
	if err != nil {
		return fmt.Errorf("failed to mark message %d read: %w", messageID, err)
	}
	return nil
}

func (c *Client) UnreadMessageCount(ctx context.Context, receiverID int64, receiverType string) (int64, error) {
	var count model.UnreadCount
	path := fmt.Sprintf("/api/messages/unread-count/%d/%s", receiverID, receiverType)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &count); err != nil {
		return 0, fmt.Errorf("failed to fetch unread count: %w", err)
	}
	return count.Count, nil
}
