// Package view renders a case discussion on the terminal. It is deliberately
// thin: no transcript state of its own, just formatting over what the chat
// thread reports.
package view

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/legalconnect/consult-client/internal/model"
	"github.com/legalconnect/consult-client/internal/pkg/validator"
	"github.com/legalconnect/consult-client/internal/push"
)

const timeLayout = "15:04"

// QuitCommand ends the composer loop.
const QuitCommand = "/quit"

type Discussion struct {
	selfID   int64
	selfRole string

	mu  sync.Mutex
	out io.Writer
}

func NewDiscussion(out io.Writer, selfID int64, selfRole string) *Discussion {
	return &Discussion{
		out:      out,
		selfID:   selfID,
		selfRole: selfRole,
	}
}

func (d *Discussion) RenderHeader(c *model.Case) {
	d.printf("case #%d: %s [%s]\n", c.ID, c.CaseTitle, c.CaseStatus)
	if c.Description != "" {
		d.printf("  %s\n", c.Description)
	}
	if c.LawyerID == nil && d.selfRole == model.RoleUser {
		d.printf("  no lawyer assigned yet; sending is disabled until one picks the case up\n")
	}
	d.printf("type a message and press enter; %s leaves\n\n", QuitCommand)
}

// RenderMessage prints one transcript line. Wired as the thread's OnAppend
// callback, so history and live messages come through the same path.
func (d *Discussion) RenderMessage(msg model.Message) {
	label := msg.SenderType
	if msg.SenderID == d.selfID && msg.SenderType == d.selfRole {
		label = "you"
	}

	read := ""
	if msg.IsRead {
		read = " ✓"
	}

	stamp := ""
	if !msg.CreatedAt.IsZero() {
		stamp = msg.CreatedAt.Format(timeLayout) + " "
	}

	d.printf("%s%s: %s%s\n", stamp, label, msg.MessageText, read)
}

// RenderState shows connection transitions as unobtrusive banners.
func (d *Discussion) RenderState(s push.State) {
	switch s {
	case push.StateConnected:
		d.printf("-- live updates connected --\n")
	case push.StateReconnecting:
		d.printf("-- connection lost, retrying --\n")
	case push.StateDisconnected:
		d.printf("-- live updates off --\n")
	}
}

func (d *Discussion) RenderCaseUpdate(update model.CaseUpdate) {
	switch {
	case update.Solution != nil:
		d.printf("-- case solution posted: %s --\n", *update.Solution)
	case update.CaseStatus != nil:
		d.printf("-- case status is now %s --\n", *update.CaseStatus)
	case update.LawyerID != nil:
		d.printf("-- a lawyer joined the case --\n")
	case update.CaseTitle != nil:
		d.printf("-- case renamed to %q --\n", *update.CaseTitle)
	}
}

// RenderSendError turns validation failures into warnings instead of
// aborting the loop; anything else is reported as a delivery failure.
func (d *Discussion) RenderSendError(err error) {
	switch {
	case errors.Is(err, validator.ErrEmptyMessage):
		d.printf("! nothing to send\n")
	case errors.Is(err, validator.ErrMessageTooLong):
		d.printf("! message is too long to send\n")
	case errors.Is(err, validator.ErrNoCounterpart):
		d.printf("! no lawyer is assigned to this case yet\n")
	default:
		d.printf("! failed to send: %v\n", err)
	}
}

// Composer reads lines until EOF or the quit command, handing each to send.
// Send failures are rendered and the loop continues.
func (d *Discussion) Composer(ctx context.Context, in io.Reader, send func(context.Context, string) error) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == QuitCommand {
			return nil
		}

		if err := send(ctx, line); err != nil {
			d.RenderSendError(err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

func (d *Discussion) printf(format string, args ...interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.out, format, args...)
}
