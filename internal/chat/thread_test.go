package chat

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalconnect/consult-client/internal/model"
	"github.com/legalconnect/consult-client/internal/pkg/validator"
	"github.com/legalconnect/consult-client/internal/push"
)

const testCaseID = int64(7)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func messageFrame(id int64, text string) model.Frame {
	return model.Frame{
		Kind: model.FrameMessage,
		Message: &model.Message{
			ID:          id,
			CaseID:      testCaseID,
			SenderID:    2,
			SenderType:  model.RoleLawyer,
			MessageText: text,
		},
	}
}

func history(ids ...int64) model.MessageList {
	out := make(model.MessageList, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Message{ID: id, CaseID: testCaseID, MessageText: fmt.Sprintf("message %d", id)})
	}
	return out
}

func TestThread_LoadHistory(t *testing.T) {
	t.Parallel()

	t.Run("replaces transcript and reports each new entry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockAPI := NewMockMessageAPI(ctrl)
		mockCache := NewMockTranscriptCache(ctrl)

		mockAPI.EXPECT().MessagesByCase(gomock.Any(), testCaseID).Return(history(1, 2, 3), nil)
		mockCache.EXPECT().ReplaceTranscript(gomock.Any(), testCaseID, gomock.Any()).Return(nil)

		var appended []int64
		thread := New(testCaseID, Identity{ID: 1, Role: model.RoleUser}, nil,
			mockAPI, nil, nil, mockCache, testLogger(), Callbacks{
				OnAppend: func(msg model.Message) { appended = append(appended, msg.ID) },
			})

		err := thread.LoadHistory(context.Background())
		require.NoError(t, err)

		transcript := thread.Transcript()
		require.Len(t, transcript, 3)
		assert.Equal(t, []int64{1, 2, 3}, appended)
	})

	t.Run("reload reports only unseen entries", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockAPI := NewMockMessageAPI(ctrl)
		gomock.InOrder(
			mockAPI.EXPECT().MessagesByCase(gomock.Any(), testCaseID).Return(history(1, 2), nil),
			mockAPI.EXPECT().MessagesByCase(gomock.Any(), testCaseID).Return(history(1, 2, 3, 4), nil),
		)

		var appended []int64
		thread := New(testCaseID, Identity{ID: 1, Role: model.RoleUser}, nil,
			mockAPI, nil, nil, nil, testLogger(), Callbacks{
				OnAppend: func(msg model.Message) { appended = append(appended, msg.ID) },
			})

		require.NoError(t, thread.LoadHistory(context.Background()))
		require.NoError(t, thread.LoadHistory(context.Background()))

		assert.Len(t, thread.Transcript(), 4)
		assert.Equal(t, []int64{1, 2, 3, 4}, appended)
	})

	t.Run("fetch failure leaves transcript untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockAPI := NewMockMessageAPI(ctrl)
		mockAPI.EXPECT().MessagesByCase(gomock.Any(), testCaseID).Return(nil, fmt.Errorf("boom"))

		thread := New(testCaseID, Identity{ID: 1, Role: model.RoleUser}, nil,
			mockAPI, nil, nil, nil, testLogger(), Callbacks{})

		err := thread.LoadHistory(context.Background())
		assert.Error(t, err)
		assert.Empty(t, thread.Transcript())
	})
}

func TestThread_Run_Merge(t *testing.T) {
	t.Parallel()

	t.Run("appends distinct pushed messages after history in arrival order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockAPI := NewMockMessageAPI(ctrl)
		mockAPI.EXPECT().MessagesByCase(gomock.Any(), testCaseID).Return(history(1, 2), nil)

		thread := New(testCaseID, Identity{ID: 1, Role: model.RoleUser}, nil,
			mockAPI, nil, nil, nil, testLogger(), Callbacks{})
		require.NoError(t, thread.LoadHistory(context.Background()))

		frames := make(chan model.Frame, 3)
		frames <- messageFrame(3, "first pushed")
		frames <- messageFrame(4, "second pushed")
		frames <- messageFrame(5, "third pushed")
		close(frames)

		require.NoError(t, thread.Run(context.Background(), frames, nil))

		transcript := thread.Transcript()
		require.Len(t, transcript, 5)
		for i, id := range []int64{1, 2, 3, 4, 5} {
			assert.Equal(t, id, transcript[i].ID)
		}
	})

	t.Run("duplicate identifier is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockAPI := NewMockMessageAPI(ctrl)
		mockAPI.EXPECT().MessagesByCase(gomock.Any(), testCaseID).Return(history(1, 2), nil)

		var appended []int64
		thread := New(testCaseID, Identity{ID: 1, Role: model.RoleUser}, nil,
			mockAPI, nil, nil, nil, testLogger(), Callbacks{
				OnAppend: func(msg model.Message) { appended = append(appended, msg.ID) },
			})
		require.NoError(t, thread.LoadHistory(context.Background()))

		frames := make(chan model.Frame, 3)
		frames <- messageFrame(2, "already in history")
		frames <- messageFrame(3, "fresh")
		frames <- messageFrame(3, "redelivered")
		close(frames)

		require.NoError(t, thread.Run(context.Background(), frames, nil))

		assert.Len(t, thread.Transcript(), 3)
		assert.Equal(t, []int64{1, 2, 3}, appended)
	})

	t.Run("case update never enters the transcript", func(t *testing.T) {
		lawyerID := int64(42)
		newStatus := "in-progress"

		var updates []model.CaseUpdate
		thread := New(testCaseID, Identity{ID: 1, Role: model.RoleUser}, nil,
			nil, nil, nil, nil, testLogger(), Callbacks{
				OnCaseUpdate: func(cu model.CaseUpdate) { updates = append(updates, cu) },
			})

		frames := make(chan model.Frame, 1)
		frames <- model.Frame{
			Kind: model.FrameCaseUpdate,
			CaseUpdate: &model.CaseUpdate{
				ID:         testCaseID,
				LawyerID:   &lawyerID,
				CaseStatus: &newStatus,
			},
		}
		close(frames)

		require.NoError(t, thread.Run(context.Background(), frames, nil))

		assert.Empty(t, thread.Transcript())
		require.Len(t, updates, 1)
		assert.Equal(t, testCaseID, updates[0].ID)

		// Assignment resolves the user's counterpart mid-conversation.
		counterpart := thread.Counterpart()
		require.NotNil(t, counterpart)
		assert.Equal(t, lawyerID, counterpart.ID)
		assert.Equal(t, model.RoleLawyer, counterpart.Role)
	})

	t.Run("returns on context cancellation", func(t *testing.T) {
		thread := New(testCaseID, Identity{ID: 1, Role: model.RoleUser}, nil,
			nil, nil, nil, nil, testLogger(), Callbacks{})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := thread.Run(ctx, make(chan model.Frame), nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestThread_Run_Reconnect(t *testing.T) {
	t.Parallel()

	t.Run("reloads history on the reconnected edge only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockAPI := NewMockMessageAPI(ctrl)
		mockAPI.EXPECT().MessagesByCase(gomock.Any(), testCaseID).Return(history(1, 2, 3), nil).Times(1)

		var seen []push.State
		thread := New(testCaseID, Identity{ID: 1, Role: model.RoleUser}, nil,
			mockAPI, nil, nil, nil, testLogger(), Callbacks{
				OnState: func(s push.State) { seen = append(seen, s) },
			})

		frames := make(chan model.Frame)
		states := make(chan push.State)
		done := make(chan error, 1)
		go func() {
			done <- thread.Run(context.Background(), frames, states)
		}()

		// First connect carries no outage to recover from.
		states <- push.StateConnecting
		states <- push.StateConnected
		// A drop followed by recovery triggers exactly one reload.
		states <- push.StateReconnecting
		states <- push.StateConnected
		close(frames)

		require.NoError(t, <-done)
		assert.Equal(t, []push.State{
			push.StateConnecting,
			push.StateConnected,
			push.StateReconnecting,
			push.StateConnected,
		}, seen)
		assert.Len(t, thread.Transcript(), 3)
	})
}

func TestThread_Send(t *testing.T) {
	t.Parallel()

	self := Identity{ID: 1, Role: model.RoleUser}
	counterpart := Identity{ID: 42, Role: model.RoleLawyer}

	wantReq := model.SendMessageRequest{
		CaseID:       testCaseID,
		SenderID:     self.ID,
		SenderType:   self.Role,
		ReceiverID:   counterpart.ID,
		ReceiverType: counterpart.Role,
		MessageText:  "hello",
	}

	t.Run("publishes over the push channel", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockPublisher := NewMockPublisher(ctrl)
		mockPublisher.EXPECT().Publish(push.SendDestination, wantReq).Return(nil)

		thread := New(testCaseID, self, &counterpart,
			nil, mockPublisher, validator.New(), nil, testLogger(), Callbacks{})

		err := thread.Send(context.Background(), "hello")
		assert.NoError(t, err)
		// No optimistic insert; the entry arrives via topic echo.
		assert.Empty(t, thread.Transcript())
	})

	t.Run("falls back to exactly one REST send and reloads", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockAPI := NewMockMessageAPI(ctrl)
		mockPublisher := NewMockPublisher(ctrl)

		mockPublisher.EXPECT().Publish(push.SendDestination, wantReq).Return(push.ErrNotConnected)
		mockAPI.EXPECT().SendMessage(gomock.Any(), wantReq).Return(&model.Message{ID: 9}, nil).Times(1)
		mockAPI.EXPECT().MessagesByCase(gomock.Any(), testCaseID).Return(history(9), nil).Times(1)

		thread := New(testCaseID, self, &counterpart,
			mockAPI, mockPublisher, validator.New(), nil, testLogger(), Callbacks{})

		err := thread.Send(context.Background(), "hello")
		require.NoError(t, err)

		transcript := thread.Transcript()
		require.Len(t, transcript, 1)
		assert.Equal(t, int64(9), transcript[0].ID)
	})

	t.Run("surfaces REST failure after publish failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockAPI := NewMockMessageAPI(ctrl)
		mockPublisher := NewMockPublisher(ctrl)

		mockPublisher.EXPECT().Publish(push.SendDestination, wantReq).Return(push.ErrNotConnected)
		mockAPI.EXPECT().SendMessage(gomock.Any(), wantReq).Return(nil, fmt.Errorf("backend unavailable"))

		thread := New(testCaseID, self, &counterpart,
			mockAPI, mockPublisher, validator.New(), nil, testLogger(), Callbacks{})

		err := thread.Send(context.Background(), "hello")
		assert.Error(t, err)
	})

	t.Run("blank body is rejected before any network call", func(t *testing.T) {
		thread := New(testCaseID, self, &counterpart,
			nil, nil, validator.New(), nil, testLogger(), Callbacks{})

		err := thread.Send(context.Background(), "   \n\t ")
		assert.ErrorIs(t, err, validator.ErrEmptyMessage)
	})

	t.Run("unresolved counterpart is rejected before any network call", func(t *testing.T) {
		thread := New(testCaseID, self, nil,
			nil, nil, validator.New(), nil, testLogger(), Callbacks{})

		err := thread.Send(context.Background(), "hello")
		assert.ErrorIs(t, err, validator.ErrNoCounterpart)
	})

	t.Run("body is trimmed before sending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockPublisher := NewMockPublisher(ctrl)
		mockPublisher.EXPECT().Publish(push.SendDestination, wantReq).Return(nil)

		thread := New(testCaseID, self, &counterpart,
			nil, mockPublisher, validator.New(), nil, testLogger(), Callbacks{})

		assert.NoError(t, thread.Send(context.Background(), "  hello  "))
	})
}
