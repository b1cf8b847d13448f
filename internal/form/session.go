// Package form implements the editor session state machine that mediates
// between raw field input, the validator, and the collection store. A session
// is short-lived UI state: it owns the working copy of the form fields and
// decides whether a submission creates or updates.
package form

import (
	"context"
	"errors"

	"rostercore/internal/schema"
	"rostercore/pkg/domain"
)

// State enumerates the session states.
type State string

// Session states. Editing always carries a target ID.
const (
	StateClosed   State = "closed"
	StateCreating State = "creating"
	StateEditing  State = "editing"
)

// ErrClosed is returned when a submission arrives with no form open.
var ErrClosed = errors.New("form session is closed")

// Backend adapts one record variant of the service layer to the session.
// Fields returns a fresh copy of the record's current values for editing;
// mutating the returned map never touches the stored record.
type Backend interface {
	Entity() domain.EntityType
	Fields(id string) (schema.RawInput, bool)
	Create(ctx context.Context, in schema.RawInput) (domain.FieldErrors, error)
	Update(ctx context.Context, id string, in schema.RawInput) (domain.FieldErrors, error)
}

// Session tracks whether the form is closed, open for creation, or open for
// editing a specific record. Submit dispatch is entirely determined by the
// current state.
type Session struct {
	backend  Backend
	state    State
	targetID string
	fields   schema.RawInput
	errs     domain.FieldErrors
}

// NewSession constructs a closed session over the given backend.
func NewSession(backend Backend) *Session {
	return &Session{backend: backend, state: StateClosed}
}

// State returns the current session state.
func (s *Session) State() State {
	return s.state
}

// TargetID returns the record being edited, or "" outside of editing.
func (s *Session) TargetID() string {
	return s.targetID
}

// Errors returns the field errors from the last rejected submission.
func (s *Session) Errors() domain.FieldErrors {
	return s.errs
}

// OpenCreate opens the form with empty fields for a new record. Any
// in-progress edit is discarded.
func (s *Session) OpenCreate() {
	s.state = StateCreating
	s.targetID = ""
	s.fields = schema.RawInput{}
	s.errs = nil
}

// OpenEdit opens the form on the record's current values. The fields are a
// copy: editing them mutates nothing until submit. Valid from every state,
// including switching targets mid-edit.
func (s *Session) OpenEdit(id string) error {
	fields, ok := s.backend.Fields(id)
	if !ok {
		return domain.ErrNotFound{Entity: s.backend.Entity(), ID: id}
	}
	s.state = StateEditing
	s.targetID = id
	s.fields = fields
	s.errs = nil
	return nil
}

// Cancel closes the form, discarding unsubmitted field edits.
func (s *Session) Cancel() {
	s.close()
}

// SetField records a field value in the working copy. Ignored while closed.
func (s *Session) SetField(name, value string) {
	if s.state == StateClosed {
		return
	}
	s.fields[name] = value
}

// Field returns the working copy's value for a field.
func (s *Session) Field(name string) string {
	return s.fields[name]
}

// Submit dispatches on the current state: Creating always takes the create
// path, Editing always the update path with the session's target ID. On
// validation failure the session stays where it is and the field errors are
// returned and retained; on success the form closes.
func (s *Session) Submit(ctx context.Context) (domain.FieldErrors, error) {
	switch s.state {
	case StateCreating:
		errs, err := s.backend.Create(ctx, s.cloneFields())
		return s.settle(errs, err)
	case StateEditing:
		errs, err := s.backend.Update(ctx, s.targetID, s.cloneFields())
		if err != nil {
			// The target existed when editing began; its disappearance is a
			// state-machine bug the service has already logged. Nothing left
			// to edit, so the form closes.
			s.close()
			return nil, err
		}
		return s.settle(errs, nil)
	default:
		return nil, ErrClosed
	}
}

func (s *Session) settle(errs domain.FieldErrors, err error) (domain.FieldErrors, error) {
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		s.errs = errs
		return errs, nil
	}
	s.close()
	return nil, nil
}

func (s *Session) close() {
	s.state = StateClosed
	s.targetID = ""
	s.fields = nil
	s.errs = nil
}

func (s *Session) cloneFields() schema.RawInput {
	out := make(schema.RawInput, len(s.fields))
	for k, v := range s.fields {
		out[k] = v
	}
	return out
}
