package model

import (
	"encoding/json"
	"fmt"
)

// FrameKind is the explicit discriminant of decoded push frames. The broker
// interleaves chat messages and case-state updates on the same case topic and
// distinguishes them only by payload shape, so the shape probe happens exactly
// once, here, at the transport boundary.
type FrameKind int

const (
	FrameInvalid FrameKind = iota
	FrameMessage
	FrameCaseUpdate
)

func (k FrameKind) String() string {
	switch k {
	case FrameMessage:
		return "message"
	case FrameCaseUpdate:
		return "case-update"
	default:
		return "invalid"
	}
}

// CaseUpdate is the case-shaped payload pushed on a case topic when the title,
// status, solution, or assignment changes. It is a side channel for the case
// owner and never part of the transcript.
type CaseUpdate struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"userId,omitempty"`
	LawyerID   *int64  `json:"lawyerId,omitempty"`
	CaseTitle  *string `json:"caseTitle,omitempty"`
	CaseStatus *string `json:"caseStatus,omitempty"`
	Solution   *string `json:"solution,omitempty"`
}

// Frame is the tagged union delivered by the push channel manager.
type Frame struct {
	Kind       FrameKind
	Message    *Message
	CaseUpdate *CaseUpdate
}

// DecodeFrame classifies a raw topic payload. A payload carrying a message
// body decodes as a chat message; one carrying case title or solution fields
// decodes as a case update; anything else is an error for the caller to log
// and drop.
func DecodeFrame(raw []byte) (Frame, error) {
	var probe struct {
		MessageText *string `json:"messageText"`
		CaseTitle   *string `json:"caseTitle"`
		Solution    *string `json:"solution"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Frame{}, fmt.Errorf("failed to decode frame: %w", err)
	}

	switch {
	case probe.MessageText != nil:
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			return Frame{}, fmt.Errorf("failed to decode message frame: %w", err)
		}
		return Frame{Kind: FrameMessage, Message: &msg}, nil

	case probe.CaseTitle != nil || probe.Solution != nil:
		var cu CaseUpdate
		if err := json.Unmarshal(raw, &cu); err != nil {
			return Frame{}, fmt.Errorf("failed to decode case-update frame: %w", err)
		}
		return Frame{Kind: FrameCaseUpdate, CaseUpdate: &cu}, nil

	default:
		return Frame{}, fmt.Errorf("frame matches neither message nor case-update shape")
	}
}
