// Package chat is the message reconciliation core: it folds the one-shot REST
// history and the unbounded push frame stream into a single ordered,
// deduplicated transcript for one case.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/legalconnect/consult-client/internal/model"
	"github.com/legalconnect/consult-client/internal/push"
)

// Identity is one party of a case conversation.
type Identity struct {
	ID   int64
	Role string
}

// Callbacks are the thread's hooks into the view layer. All are optional and
// are invoked outside the transcript lock.
type Callbacks struct {
	// OnAppend fires once per message entering the transcript, in transcript
	// order, history entries included.
	OnAppend func(model.Message)
	// OnCaseUpdate receives case-shaped frames; they never touch the
	// transcript.
	OnCaseUpdate func(model.CaseUpdate)
	// OnState mirrors connection-state transitions for the indicator.
	OnState func(push.State)
}

type Thread struct {
	caseID    int64
	self      Identity
	api       MessageAPI
	publisher Publisher
	validator Validator
	cache     TranscriptCache
	logger    *slog.Logger
	callbacks Callbacks

	mu          sync.Mutex
	counterpart *Identity
	transcript  model.MessageList
	seen        map[int64]struct{}
}

func New(
	caseID int64,
	self Identity,
	counterpart *Identity,
	api MessageAPI,
	publisher Publisher,
	vldtr Validator,
	cache TranscriptCache,
	logger *slog.Logger,
	callbacks Callbacks,
) *Thread {
	return &Thread{
		caseID:      caseID,
		self:        self,
		counterpart: counterpart,
		api:         api,
		publisher:   publisher,
		validator:   vldtr,
		cache:       cache,
		logger:      logger.With("component", "chat", "case_id", caseID),
		callbacks:   callbacks,
		seen:        make(map[int64]struct{}),
	}
}

// Transcript returns a snapshot in arrival order.
func (t *Thread) Transcript() model.MessageList {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(model.MessageList, len(t.transcript))
	copy(out, t.transcript)
	return out
}

func (t *Thread) Counterpart() *Identity {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.counterpart == nil {
		return nil
	}
	c := *t.counterpart
	return &c
}

func (t *Thread) SetCounterpart(id Identity) {
	t.mu.Lock()
	t.counterpart = &id
	t.mu.Unlock()
}

// LoadHistory replaces the transcript wholesale with the server's ordered
// history. Entries not previously seen are reported through OnAppend, which
// makes the call idempotent from the view's perspective and safe to use for
// gap recovery after reconnects and fallback sends.
func (t *Thread) LoadHistory(ctx context.Context) error {
	messages, err := t.api.MessagesByCase(ctx, t.caseID)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	t.mu.Lock()
	prevSeen := t.seen
	seen := make(map[int64]struct{}, len(messages))
	transcript := make(model.MessageList, 0, len(messages))
	var appended []model.Message
	for _, msg := range messages {
		if _, dup := seen[msg.ID]; dup {
			continue
		}
		seen[msg.ID] = struct{}{}
		transcript = append(transcript, msg)
		if _, ok := prevSeen[msg.ID]; !ok {
			appended = append(appended, msg)
		}
	}
	t.transcript = transcript
	t.seen = seen
	t.mu.Unlock()

	if t.cache != nil {
		if err := t.cache.ReplaceTranscript(ctx, t.caseID, transcript); err != nil {
			t.logger.Warn("failed to cache transcript", "error", err)
		}
	}
	if t.callbacks.OnAppend != nil {
		for _, msg := range appended {
			t.callbacks.OnAppend(msg)
		}
	}

	return nil
}

// Run is the single consumption loop over the push channel's frame and state
// feeds. It returns when the context is cancelled or the frame channel
// closes.
func (t *Thread) Run(ctx context.Context, frames <-chan model.Frame, states <-chan push.State) error {
	reconnecting := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case frame, ok := <-frames:
			if !ok {
				return nil
			}
			t.handleFrame(ctx, frame)

		case state, ok := <-states:
			if !ok {
				states = nil
				continue
			}
			if t.callbacks.OnState != nil {
				t.callbacks.OnState(state)
			}

			// Frames pushed during an outage are gone; a reload on the
			// reconnected edge closes the gap, and the merge rule keeps it
			// idempotent.
			switch state {
			case push.StateReconnecting:
				reconnecting = true
			case push.StateConnected:
				if reconnecting {
					if err := t.LoadHistory(ctx); err != nil {
						t.logger.Error("failed to resync after reconnect", "error", err)
					}
				}
				reconnecting = false
			}
		}
	}
}

// Send validates locally, then tries the push publish path; any publish
// failure falls back to exactly one REST send followed by a history reload.
// There is no optimistic local insert on either path: the server-confirmed
// entry arrives via topic echo or reload, and the merge rule drops the
// overlap.
func (t *Thread) Send(ctx context.Context, body string) error {
	counterpart := t.Counterpart()

	if err := t.validator.ValidateSend(body, counterpart != nil); err != nil {
		return err
	}

	req := model.SendMessageRequest{
		CaseID:       t.caseID,
		SenderID:     t.self.ID,
		SenderType:   t.self.Role,
		ReceiverID:   counterpart.ID,
		ReceiverType: counterpart.Role,
		MessageText:  strings.TrimSpace(body),
	}

	pubErr := t.publisher.Publish(push.SendDestination, req)
	if pubErr == nil {
		return nil
	}
	t.logger.Warn("publish failed, falling back to REST send", "error", pubErr)

	if _, err := t.api.SendMessage(ctx, req); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	if err := t.LoadHistory(ctx); err != nil {
		t.logger.Error("failed to reload history after fallback send", "error", err)
	}

	return nil
}

func (t *Thread) handleFrame(ctx context.Context, frame model.Frame) {
	switch frame.Kind {
	case model.FrameMessage:
		t.merge(ctx, *frame.Message)
	case model.FrameCaseUpdate:
		t.applyCaseUpdate(*frame.CaseUpdate)
	default:
		t.logger.Warn("ignoring frame of unknown kind")
	}
}

// merge appends a pushed message unless its identifier is already present.
// Identifier dedupe is the only defence against the race between the history
// fetch and push delivery; no ordering guarantee exists across the two
// sources.
func (t *Thread) merge(ctx context.Context, msg model.Message) {
	t.mu.Lock()
	if _, dup := t.seen[msg.ID]; dup {
		t.mu.Unlock()
		t.logger.Debug("dropping duplicate message", "message_id", msg.ID)
		return
	}
	t.seen[msg.ID] = struct{}{}
	t.transcript = append(t.transcript, msg)
	t.mu.Unlock()

	if t.cache != nil {
		if err := t.cache.AppendMessage(ctx, msg); err != nil {
			t.logger.Warn("failed to cache message", "message_id", msg.ID, "error", err)
		}
	}
	if t.callbacks.OnAppend != nil {
		t.callbacks.OnAppend(msg)
	}
}

func (t *Thread) applyCaseUpdate(update model.CaseUpdate) {
	// A user's counterpart can appear mid-conversation when a lawyer picks
	// the case up.
	if t.self.Role == model.RoleUser && update.LawyerID != nil {
		t.SetCounterpart(Identity{ID: *update.LawyerID, Role: model.RoleLawyer})
	}

	if t.callbacks.OnCaseUpdate != nil {
		t.callbacks.OnCaseUpdate(update)
	}
}
