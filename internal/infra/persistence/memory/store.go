// Package memory provides the in-memory implementation of the roster
// persistence store. The collection lives only for the process lifetime;
// durable backends are deliberately out of scope.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"rostercore/pkg/domain"
)

// Compile-time contract assertion ensuring memory.Store adheres to the domain persistence interface.
var _ domain.PersistentStore = (*Store)(nil)

type (
	// Member aliases domain.Member for in-memory persistence operations.
	Member = domain.Member
	// RosterEntry aliases domain.RosterEntry.
	RosterEntry = domain.RosterEntry
	// Change aliases domain.Change captured in transactions.
	Change = domain.Change
	// Result aliases domain.Result summarizing rule evaluation.
	Result = domain.Result
	// RulesEngine aliases domain.RulesEngine used to evaluate rules.
	RulesEngine = domain.RulesEngine
	// Transaction aliases domain.Transaction representing a mutable unit of work.
	Transaction = domain.Transaction
	// TransactionView aliases domain.TransactionView providing read-only state.
	TransactionView = domain.TransactionView
)

// memoryState holds the records plus the insertion order of their IDs. The
// order slices are the source of truth for listing: reads must be stable
// across calls that do not mutate.
type memoryState struct {
	members     map[string]Member
	entries     map[string]RosterEntry
	memberOrder []string
	entryOrder  []string
}

func newMemoryState() memoryState {
	return memoryState{
		members: make(map[string]Member),
		entries: make(map[string]RosterEntry),
	}
}

func (s memoryState) clone() memoryState {
	out := memoryState{
		members:     make(map[string]Member, len(s.members)),
		entries:     make(map[string]RosterEntry, len(s.entries)),
		memberOrder: append([]string(nil), s.memberOrder...),
		entryOrder:  append([]string(nil), s.entryOrder...),
	}
	for k, v := range s.members {
		out.members[k] = cloneMember(v)
	}
	for k, v := range s.entries {
		out.entries[k] = cloneEntry(v)
	}
	return out
}

// Records hold only value fields today; the clone helpers keep the boundary
// discipline explicit so reference fields added later cannot leak aliasing.
func cloneMember(m Member) Member { return m }

func cloneEntry(e RosterEntry) RosterEntry { return e }

func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

// Store provides an in-memory transactional store for roster records.
type Store struct {
	mu     sync.RWMutex
	state  memoryState
	engine *RulesEngine
	nowFn  func() time.Time
}

// NewStore constructs an in-memory store backed by the provided rules engine.
func NewStore(engine *RulesEngine) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	return &Store{
		state:  newMemoryState(),
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

// RulesEngine exposes the currently configured engine.
func (s *Store) RulesEngine() *RulesEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// NowFunc returns the time provider used by the store.
func (s *Store) NowFunc() func() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nowFn
}

// transaction represents a mutation set applied to a cloned copy of the store
// state. Nothing is visible outside until commit.
type transaction struct {
	store   *Store
	state   memoryState
	changes []Change
	now     time.Time
}

var _ Transaction = (*transaction)(nil)

// transactionView exposes a read-only snapshot of the transactional state.
type transactionView struct {
	state *memoryState
}

func newTransactionView(state *memoryState) TransactionView {
	return transactionView{state: state}
}

// ListMembers returns all member profiles in insertion order.
func (v transactionView) ListMembers() []Member {
	out := make([]Member, 0, len(v.state.memberOrder))
	for _, id := range v.state.memberOrder {
		out = append(out, cloneMember(v.state.members[id]))
	}
	return out
}

// ListRosterEntries returns all roster entries in insertion order.
func (v transactionView) ListRosterEntries() []RosterEntry {
	out := make([]RosterEntry, 0, len(v.state.entryOrder))
	for _, id := range v.state.entryOrder {
		out = append(out, cloneEntry(v.state.entries[id]))
	}
	return out
}

// FindMember retrieves a member by ID from the snapshot.
func (v transactionView) FindMember(id string) (Member, bool) {
	m, ok := v.state.members[id]
	if !ok {
		return Member{}, false
	}
	return cloneMember(m), true
}

// FindRosterEntry retrieves a roster entry by ID from the snapshot.
func (v transactionView) FindRosterEntry(id string) (RosterEntry, bool) {
	e, ok := v.state.entries[id]
	if !ok {
		return RosterEntry{}, false
	}
	return cloneEntry(e), true
}

// RunInTransaction executes fn within a transactional copy of the store state.
// Registered rules evaluate against the post-mutation snapshot; a blocking
// violation discards the whole transaction.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx Transaction) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{
		store: s,
		state: s.state.clone(),
		now:   s.nowFn(),
	}

	if err := fn(tx); err != nil {
		return Result{}, err
	}

	var result Result
	if s.engine != nil {
		view := newTransactionView(&tx.state)
		res, err := s.engine.Evaluate(ctx, view, tx.changes)
		if err != nil {
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, domain.RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	return result, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state.clone()
	view := newTransactionView(&snapshot)
	return fn(view)
}

func (tx *transaction) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

// Snapshot returns a read-only view over the transactional state.
func (tx *transaction) Snapshot() TransactionView {
	return newTransactionView(&tx.state)
}

// newID draws identifiers until one is free. UUIDs never collide in
// practice; the recheck keeps the uniqueness invariant independent of that
// assumption.
func (tx *transaction) newID(taken func(string) bool) string {
	for {
		id := uuid.NewString()
		if !taken(id) {
			return id
		}
	}
}

// CreateMember stores a new member profile within the transaction.
func (tx *transaction) CreateMember(m Member) (Member, error) {
	if m.ID == "" {
		m.ID = tx.newID(func(id string) bool {
			_, ok := tx.state.members[id]
			return ok
		})
	}
	if _, exists := tx.state.members[m.ID]; exists {
		return Member{}, fmt.Errorf("member %q already exists", m.ID)
	}
	m.CreatedAt = tx.now
	m.UpdatedAt = tx.now
	tx.state.members[m.ID] = cloneMember(m)
	tx.state.memberOrder = append(tx.state.memberOrder, m.ID)
	tx.recordChange(Change{Entity: domain.EntityMember, Action: domain.ActionCreate, After: cloneMember(m)})
	return cloneMember(m), nil
}

// UpdateMember replaces a member's fields using the provided mutator. The ID
// is immutable; a mutator cannot change it.
func (tx *transaction) UpdateMember(id string, mutator func(*Member) error) (Member, error) {
	current, ok := tx.state.members[id]
	if !ok {
		return Member{}, domain.ErrNotFound{Entity: domain.EntityMember, ID: id}
	}
	before := cloneMember(current)
	if err := mutator(&current); err != nil {
		return Member{}, err
	}
	current.ID = id
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	tx.state.members[id] = cloneMember(current)
	tx.recordChange(Change{Entity: domain.EntityMember, Action: domain.ActionUpdate, Before: before, After: cloneMember(current)})
	return cloneMember(current), nil
}

// DeleteMember removes a member, reporting whether it existed. Deleting an
// absent ID is a no-op, never an error.
func (tx *transaction) DeleteMember(id string) (bool, error) {
	current, ok := tx.state.members[id]
	if !ok {
		return false, nil
	}
	delete(tx.state.members, id)
	tx.state.memberOrder = removeID(tx.state.memberOrder, id)
	tx.recordChange(Change{Entity: domain.EntityMember, Action: domain.ActionDelete, Before: cloneMember(current)})
	return true, nil
}

// CreateRosterEntry stores a new roster entry within the transaction.
func (tx *transaction) CreateRosterEntry(e RosterEntry) (RosterEntry, error) {
	if e.ID == "" {
		e.ID = tx.newID(func(id string) bool {
			_, ok := tx.state.entries[id]
			return ok
		})
	}
	if _, exists := tx.state.entries[e.ID]; exists {
		return RosterEntry{}, fmt.Errorf("roster entry %q already exists", e.ID)
	}
	e.CreatedAt = tx.now
	e.UpdatedAt = tx.now
	tx.state.entries[e.ID] = cloneEntry(e)
	tx.state.entryOrder = append(tx.state.entryOrder, e.ID)
	tx.recordChange(Change{Entity: domain.EntityRosterEntry, Action: domain.ActionCreate, After: cloneEntry(e)})
	return cloneEntry(e), nil
}

// UpdateRosterEntry replaces a roster entry's fields using the provided mutator.
func (tx *transaction) UpdateRosterEntry(id string, mutator func(*RosterEntry) error) (RosterEntry, error) {
	current, ok := tx.state.entries[id]
	if !ok {
		return RosterEntry{}, domain.ErrNotFound{Entity: domain.EntityRosterEntry, ID: id}
	}
	before := cloneEntry(current)
	if err := mutator(&current); err != nil {
		return RosterEntry{}, err
	}
	current.ID = id
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	tx.state.entries[id] = cloneEntry(current)
	tx.recordChange(Change{Entity: domain.EntityRosterEntry, Action: domain.ActionUpdate, Before: before, After: cloneEntry(current)})
	return cloneEntry(current), nil
}

// DeleteRosterEntry removes a roster entry, reporting whether it existed.
func (tx *transaction) DeleteRosterEntry(id string) (bool, error) {
	current, ok := tx.state.entries[id]
	if !ok {
		return false, nil
	}
	delete(tx.state.entries, id)
	tx.state.entryOrder = removeID(tx.state.entryOrder, id)
	tx.recordChange(Change{Entity: domain.EntityRosterEntry, Action: domain.ActionDelete, Before: cloneEntry(current)})
	return true, nil
}

// GetMember returns a member by ID from the committed state.
func (s *Store) GetMember(id string) (Member, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.state.members[id]
	if !ok {
		return Member{}, false
	}
	return cloneMember(m), true
}

// ListMembers returns all committed member profiles in insertion order.
func (s *Store) ListMembers() []Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Member, 0, len(s.state.memberOrder))
	for _, id := range s.state.memberOrder {
		out = append(out, cloneMember(s.state.members[id]))
	}
	return out
}

// GetRosterEntry returns a roster entry by ID from the committed state.
func (s *Store) GetRosterEntry(id string) (RosterEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.state.entries[id]
	if !ok {
		return RosterEntry{}, false
	}
	return cloneEntry(e), true
}

// ListRosterEntries returns all committed roster entries in insertion order.
func (s *Store) ListRosterEntries() []RosterEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]RosterEntry, 0, len(s.state.entryOrder))
	for _, id := range s.state.entryOrder {
		out = append(out, cloneEntry(s.state.entries[id]))
	}
	return out
}
