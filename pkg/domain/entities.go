// Package domain defines the core record types, the field error taxonomy, and
// rule evaluation primitives used by rostercore.
package domain

import "time"

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and persistence buckets.
const (
	// EntityMember identifies a full member profile record.
	EntityMember EntityType = "member"
	// EntityRosterEntry identifies a compact roster entry record.
	EntityRosterEntry EntityType = "roster_entry"
)

// Action enumerates the mutation kinds captured in Change records.
type Action string

// Change actions enumerate supported CRUD operations captured for rule evaluation.
const (
	// ActionCreate indicates a record was created.
	ActionCreate Action = "create"
	// ActionUpdate indicates a record was updated.
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Base carries the envelope shared by all stored records. ID is assigned by
// the store on create and is immutable afterwards.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Member is the full profile variant of a roster record: a representative's
// biography with a photo referenced by URL. MinisterPosition and Ministry are
// optional free-form fields; everything else is required by the schema.
type Member struct {
	Base
	Prefix           string `json:"prefix"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	PhotoURL         string `json:"photo_url"`
	WorkHistory      string `json:"work_history"`
	PastAchievements string `json:"past_achievements"`
	MinisterPosition string `json:"minister_position,omitempty"`
	Ministry         string `json:"ministry,omitempty"`
	PoliticalParty   string `json:"political_party"`
}

// DisplayName renders the member's full name for lists and logs.
func (m Member) DisplayName() string {
	return m.Prefix + " " + m.FirstName + " " + m.LastName
}

// RosterEntry is the compact variant of a roster record. Title (full name)
// and MemberCode are each unique across the collection; MemberCode is a
// secondary key distinct from ID. ImageKey references an uploaded portrait in
// the blob store and is never interpreted by the core.
type RosterEntry struct {
	Base
	Title      string `json:"title"`
	MemberCode string `json:"member_code"`
	Group      string `json:"group,omitempty"`
	ImageKey   string `json:"image_key"`
}

// Change captures one mutation applied within a transaction for rule
// evaluation. Before and After hold cloned Member or RosterEntry values; a
// create has no Before and a delete has no After.
type Change struct {
	Entity EntityType
	Action Action
	Before any
	After  any
}
