package form

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// ConfirmStyle selects how the delete confirmation is presented. The
// contract is identical either way: removal requires an explicit confirm.
type ConfirmStyle string

// Supported confirmation presentations.
const (
	// ConfirmInline swaps the delete control for confirm/cancel in place.
	ConfirmInline ConfirmStyle = "inline"
	// ConfirmModal raises a blocking overlay before removal.
	ConfirmModal ConfirmStyle = "modal"
)

// StyleFromEnv reads ROSTERCORE_CONFIRM_STYLE (inline|modal, default inline).
func StyleFromEnv() (ConfirmStyle, error) {
	raw := os.Getenv("ROSTERCORE_CONFIRM_STYLE")
	if raw == "" {
		return ConfirmInline, nil
	}
	switch style := ConfirmStyle(raw); style {
	case ConfirmInline, ConfirmModal:
		return style, nil
	default:
		return "", fmt.Errorf("unknown confirm style %s", raw)
	}
}

// ErrNoPendingDelete is returned when Confirm is called without a prior
// Request.
var ErrNoPendingDelete = errors.New("no delete pending confirmation")

// Deleter removes a record by ID, reporting whether it existed.
type Deleter func(ctx context.Context, id string) (bool, error)

// DeleteConfirmation implements the two-step delete: request, then explicit
// confirm or cancel. Nothing irreversible happens on the first step.
type DeleteConfirmation struct {
	style     ConfirmStyle
	delete    Deleter
	pendingID string
	pending   bool
}

// NewDeleteConfirmation builds a confirmation gate over the given deleter.
func NewDeleteConfirmation(style ConfirmStyle, del Deleter) *DeleteConfirmation {
	return &DeleteConfirmation{style: style, delete: del}
}

// Style returns the configured presentation.
func (c *DeleteConfirmation) Style() ConfirmStyle {
	return c.style
}

// Request marks a record for deletion pending confirmation. A second request
// replaces the first.
func (c *DeleteConfirmation) Request(id string) {
	c.pendingID = id
	c.pending = true
}

// Pending returns the record awaiting confirmation, if any.
func (c *DeleteConfirmation) Pending() (string, bool) {
	return c.pendingID, c.pending
}

// Cancel drops the pending request without deleting anything.
func (c *DeleteConfirmation) Cancel() {
	c.pendingID = ""
	c.pending = false
}

// Confirm executes the pending delete. Deleting a record that has since
// vanished reports false without error, mirroring the store's idempotent
// delete.
func (c *DeleteConfirmation) Confirm(ctx context.Context) (bool, error) {
	if !c.pending {
		return false, ErrNoPendingDelete
	}
	id := c.pendingID
	c.Cancel()
	return c.delete(ctx, id)
}
