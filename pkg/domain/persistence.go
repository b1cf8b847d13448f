package domain

import "context"

// Transaction exposes the domain operations that a persistence implementation
// must support within an atomic scope. Delete operations are idempotent: they
// report whether the record existed instead of failing on an absent ID.
type Transaction interface {
	Snapshot() TransactionView
	CreateMember(Member) (Member, error)
	UpdateMember(id string, mutator func(*Member) error) (Member, error)
	DeleteMember(id string) (bool, error)
	CreateRosterEntry(RosterEntry) (RosterEntry, error)
	UpdateRosterEntry(id string, mutator func(*RosterEntry) error) (RosterEntry, error)
	DeleteRosterEntry(id string) (bool, error)
}

// TransactionView provides read-only access to snapshot data for rules and
// validation. Listings preserve insertion order.
type TransactionView interface {
	ListMembers() []Member
	ListRosterEntries() []RosterEntry
	FindMember(id string) (Member, bool)
	FindRosterEntry(id string) (RosterEntry, bool)
}

// PersistentStore is a minimal abstraction over record storage backends. It
// mirrors the subset of store capabilities used directly by higher layers.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	GetMember(id string) (Member, bool)
	ListMembers() []Member
	GetRosterEntry(id string) (RosterEntry, bool)
	ListRosterEntries() []RosterEntry
}
