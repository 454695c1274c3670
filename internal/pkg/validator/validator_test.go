package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/legalconnect/consult-client/internal/model"
)

func TestValidator_ValidateSend(t *testing.T) {
	t.Parallel()

	v := New()

	t.Run("accepts a normal message", func(t *testing.T) {
		assert.NoError(t, v.ValidateSend("I need help with my lease", true))
	})

	t.Run("rejects empty and whitespace-only bodies", func(t *testing.T) {
		for _, body := range []string{"", "   ", "\n\t ", "\r\n"} {
			assert.ErrorIs(t, v.ValidateSend(body, true), ErrEmptyMessage)
		}
	})

	t.Run("rejects a missing counterpart", func(t *testing.T) {
		assert.ErrorIs(t, v.ValidateSend("hello", false), ErrNoCounterpart)
	})

	t.Run("empty body wins over missing counterpart", func(t *testing.T) {
		assert.ErrorIs(t, v.ValidateSend("  ", false), ErrEmptyMessage)
	})

	t.Run("rejects an oversized body", func(t *testing.T) {
		err := v.ValidateSend(strings.Repeat("a", maxMessageLength+1), true)
		assert.ErrorIs(t, err, ErrMessageTooLong)
		assert.ErrorContains(t, err, "maximum length")
	})

	t.Run("length is counted in runes", func(t *testing.T) {
		assert.NoError(t, v.ValidateSend(strings.Repeat("ф", maxMessageLength), true))
	})
}

func TestValidator_ValidateRole(t *testing.T) {
	t.Parallel()

	v := New()

	assert.NoError(t, v.ValidateRole(model.RoleUser))
	assert.NoError(t, v.ValidateRole(model.RoleLawyer))
	assert.Error(t, v.ValidateRole("admin"))
	assert.Error(t, v.ValidateRole(""))
}

func TestValidator_ValidateCaseStatus(t *testing.T) {
	t.Parallel()

	v := New()

	for _, status := range []string{
		model.CaseStatusOpen,
		model.CaseStatusInProgress,
		model.CaseStatusSolved,
		model.CaseStatusClosed,
	} {
		assert.NoError(t, v.ValidateCaseStatus(status))
	}

	assert.Error(t, v.ValidateCaseStatus("pending"))
	assert.Error(t, v.ValidateCaseStatus(""))
}
