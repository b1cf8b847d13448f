package form

import (
	"context"

	"rostercore/internal/core"
	"rostercore/internal/schema"
	"rostercore/pkg/domain"
)

// MemberBackend adapts the member profile operations of the service to the
// session interface.
type MemberBackend struct {
	svc *core.Service
}

var _ Backend = (*MemberBackend)(nil)

// NewMemberBackend wraps a service for member profile editing.
func NewMemberBackend(svc *core.Service) *MemberBackend {
	return &MemberBackend{svc: svc}
}

// Entity identifies the record variant this backend edits.
func (b *MemberBackend) Entity() domain.EntityType { return domain.EntityMember }

// Fields returns a copy of the member's current values keyed by field name.
func (b *MemberBackend) Fields(id string) (schema.RawInput, bool) {
	m, ok := b.svc.GetMember(id)
	if !ok {
		return nil, false
	}
	return schema.RawInput{
		schema.FieldPrefix:           m.Prefix,
		schema.FieldFirstName:        m.FirstName,
		schema.FieldLastName:         m.LastName,
		schema.FieldPhoto:            m.PhotoURL,
		schema.FieldWorkHistory:      m.WorkHistory,
		schema.FieldPastAchievements: m.PastAchievements,
		schema.FieldMinisterPosition: m.MinisterPosition,
		schema.FieldMinistry:         m.Ministry,
		schema.FieldPoliticalParty:   m.PoliticalParty,
	}, true
}

// Create submits a new member profile.
func (b *MemberBackend) Create(ctx context.Context, in schema.RawInput) (domain.FieldErrors, error) {
	_, ferrs, err := b.svc.CreateMember(ctx, in)
	return ferrs, err
}

// Update submits replacement values for an existing member profile.
func (b *MemberBackend) Update(ctx context.Context, id string, in schema.RawInput) (domain.FieldErrors, error) {
	_, ferrs, err := b.svc.UpdateMember(ctx, id, in)
	return ferrs, err
}

// EntryBackend adapts the roster entry operations of the service to the
// session interface.
type EntryBackend struct {
	svc *core.Service
}

var _ Backend = (*EntryBackend)(nil)

// NewEntryBackend wraps a service for roster entry editing.
func NewEntryBackend(svc *core.Service) *EntryBackend {
	return &EntryBackend{svc: svc}
}

// Entity identifies the record variant this backend edits.
func (b *EntryBackend) Entity() domain.EntityType { return domain.EntityRosterEntry }

// Fields returns a copy of the entry's current values. The image field opens
// empty: leaving it empty on submit keeps the stored portrait.
func (b *EntryBackend) Fields(id string) (schema.RawInput, bool) {
	e, ok := b.svc.GetRosterEntry(id)
	if !ok {
		return nil, false
	}
	return schema.RawInput{
		schema.FieldTitle:      e.Title,
		schema.FieldMemberCode: e.MemberCode,
		schema.FieldGroup:      e.Group,
		schema.FieldImage:      "",
	}, true
}

// Create submits a new roster entry.
func (b *EntryBackend) Create(ctx context.Context, in schema.RawInput) (domain.FieldErrors, error) {
	_, ferrs, err := b.svc.CreateRosterEntry(ctx, in)
	return ferrs, err
}

// Update submits replacement values for an existing roster entry.
func (b *EntryBackend) Update(ctx context.Context, id string, in schema.RawInput) (domain.FieldErrors, error) {
	_, ferrs, err := b.svc.UpdateRosterEntry(ctx, id, in)
	return ferrs, err
}
