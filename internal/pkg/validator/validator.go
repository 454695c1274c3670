package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/legalconnect/consult-client/internal/model"
)

const maxMessageLength = 2000

var (
	// These are rejected locally, before any network call, and surfaced to
	// the user as warnings.
	ErrEmptyMessage   = errors.New("message text cannot be empty")
	ErrMessageTooLong = errors.New("message exceeds the maximum length")
	ErrNoCounterpart  = errors.New("no counterpart is assigned to this case yet")
)

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateSend gates every outbound message. A user cannot send until a
// lawyer is assigned to the case; the reverse holds for lawyers by
// construction (a case always has an owner).
func (v *Validator) ValidateSend(body string, hasCounterpart bool) error {
	if strings.TrimSpace(body) == "" {
		return ErrEmptyMessage
	}

	if len([]rune(body)) > maxMessageLength {
		return fmt.Errorf("%w of %d characters", ErrMessageTooLong, maxMessageLength)
	}

	if !hasCounterpart {
		return ErrNoCounterpart
	}

	return nil
}

func (v *Validator) ValidateRole(role string) error {
	if role != model.RoleUser && role != model.RoleLawyer {
		return fmt.Errorf("role %q is not supported", role)
	}
	return nil
}

func (v *Validator) ValidateCaseStatus(status string) error {
	switch status {
	case model.CaseStatusOpen, model.CaseStatusInProgress, model.CaseStatusSolved, model.CaseStatusClosed:
		return nil
	default:
		return fmt.Errorf("case status %q is not supported", status)
	}
}
