// Package core wires the validator, the persistence store, the blob store,
// and observability into the transactional service consumed by form sessions
// and command front-ends.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"rostercore/internal/blob"
	blobmemory "rostercore/internal/infra/blob/memory"
	"rostercore/internal/infra/persistence/memory"
	"rostercore/internal/logger"
	"rostercore/internal/schema"
	"rostercore/internal/validation"
	"rostercore/pkg/domain"
)

// errFieldValidation aborts a transaction when the submission failed field
// validation. It never escapes the service: callers receive FieldErrors.
var errFieldValidation = errors.New("field validation failed")

// portraitPrefix namespaces uploaded images inside the blob store.
const portraitPrefix = "portraits/"

// Service exposes the transactional roster operations. Every mutation runs
// inside a single store transaction, so the single-writer guarantee of the
// store carries over: at most one mutation is in flight at any instant.
type Service struct {
	store   *memory.Store
	blobs   blob.Store
	log     *logger.Logger
	metrics MetricsRecorder
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for invariant violations.
func WithLogger(log *logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics sets the metrics recorder observing service operations.
func WithMetrics(rec MetricsRecorder) Option {
	return func(s *Service) {
		s.metrics = rec
	}
}

// WithBlobStore replaces the blob store holding uploaded portraits.
func WithBlobStore(store blob.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.blobs = store
		}
	}
}

// NewService constructs a service backed by the supplied store.
func NewService(store *memory.Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		blobs: blobmemory.New(),
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewInMemoryService creates a service and in-memory store with the default
// rules engine, uniqueness backstop included.
func NewInMemoryService(opts ...Option) *Service {
	engine := domain.NewRulesEngine()
	engine.Register(UniqueFieldsRule())
	return NewService(memory.NewStore(engine), opts...)
}

// Store returns the underlying storage implementation.
func (s *Service) Store() *memory.Store {
	return s.store
}

// Blobs returns the blob store holding uploaded portraits.
func (s *Service) Blobs() blob.Store {
	return s.blobs
}

func (s *Service) observe(ctx context.Context, operation string, start time.Time, success bool) {
	if s.metrics != nil {
		s.metrics.Observe(ctx, operation, success, time.Since(start))
	}
}

// ListMembers returns all member profiles in insertion order.
func (s *Service) ListMembers() []Member {
	return s.store.ListMembers()
}

// GetMember returns one member profile by ID.
func (s *Service) GetMember(id string) (Member, bool) {
	return s.store.GetMember(id)
}

// ListRosterEntries returns all roster entries in insertion order.
func (s *Service) ListRosterEntries() []RosterEntry {
	return s.store.ListRosterEntries()
}

// GetRosterEntry returns one roster entry by ID.
func (s *Service) GetRosterEntry(id string) (RosterEntry, bool) {
	return s.store.GetRosterEntry(id)
}

// CreateMember validates raw input and inserts a new member profile. Field
// errors are returned as data, never as an error; the collection is untouched
// when any are present.
func (s *Service) CreateMember(ctx context.Context, in schema.RawInput) (Member, FieldErrors, error) {
	start := time.Now()
	var created Member
	var ferrs FieldErrors
	_, err := s.store.RunInTransaction(ctx, func(tx memory.Transaction) error {
		m, errs := validation.MemberForCreate(in, tx.Snapshot())
		if len(errs) > 0 {
			ferrs = errs
			return errFieldValidation
		}
		var txErr error
		created, txErr = tx.CreateMember(m)
		return txErr
	})
	if errors.Is(err, errFieldValidation) {
		s.observe(ctx, "create_member", start, false)
		return Member{}, ferrs, nil
	}
	s.observe(ctx, "create_member", start, err == nil)
	return created, nil, err
}

// UpdateMember validates raw input and replaces the targeted member's fields
// wholesale. The ID is immutable. A vanished target is an invariant violation
// reported through the error return and the log.
func (s *Service) UpdateMember(ctx context.Context, id string, in schema.RawInput) (Member, FieldErrors, error) {
	start := time.Now()
	var updated Member
	var ferrs FieldErrors
	_, err := s.store.RunInTransaction(ctx, func(tx memory.Transaction) error {
		m, errs := validation.MemberForUpdate(in, id, tx.Snapshot())
		if len(errs) > 0 {
			ferrs = errs
			return errFieldValidation
		}
		var txErr error
		updated, txErr = tx.UpdateMember(id, func(cur *Member) error {
			*cur = m
			return nil
		})
		return txErr
	})
	if errors.Is(err, errFieldValidation) {
		s.observe(ctx, "update_member", start, false)
		return Member{}, ferrs, nil
	}
	s.logIfNotFound(err)
	s.observe(ctx, "update_member", start, err == nil)
	return updated, nil, err
}

// DeleteMember removes a member profile. Deleting an absent ID reports false
// without error.
func (s *Service) DeleteMember(ctx context.Context, id string) (bool, error) {
	start := time.Now()
	var existed bool
	_, err := s.store.RunInTransaction(ctx, func(tx memory.Transaction) error {
		var txErr error
		existed, txErr = tx.DeleteMember(id)
		return txErr
	})
	s.observe(ctx, "delete_member", start, err == nil)
	return existed, err
}

// AttachPortrait uploads image content to the blob store and returns the key
// a subsequent create or update submission should carry in its image field.
func (s *Service) AttachPortrait(ctx context.Context, r io.Reader, contentType string) (string, error) {
	key := portraitPrefix + uuid.NewString()
	if _, err := s.blobs.Put(ctx, key, r, blob.PutOptions{ContentType: contentType}); err != nil {
		return "", fmt.Errorf("store portrait: %w", err)
	}
	return key, nil
}

// CreateRosterEntry validates raw input, including portrait presence and
// uniqueness of member code and title, and inserts a new roster entry.
func (s *Service) CreateRosterEntry(ctx context.Context, in schema.RawInput) (RosterEntry, FieldErrors, error) {
	start := time.Now()
	var created RosterEntry
	var ferrs FieldErrors
	_, err := s.store.RunInTransaction(ctx, func(tx memory.Transaction) error {
		entry, errs := validation.EntryForCreate(in, tx.Snapshot())
		if len(errs) > 0 {
			ferrs = errs
			return errFieldValidation
		}
		var txErr error
		created, txErr = tx.CreateRosterEntry(entry)
		return txErr
	})
	if errors.Is(err, errFieldValidation) {
		s.observe(ctx, "create_roster_entry", start, false)
		return RosterEntry{}, ferrs, nil
	}
	s.observe(ctx, "create_roster_entry", start, err == nil)
	return created, nil, err
}

// UpdateRosterEntry validates raw input and replaces the targeted entry. An
// empty image field keeps the stored portrait; a new key replaces it and the
// orphaned blob is removed after the transaction commits.
func (s *Service) UpdateRosterEntry(ctx context.Context, id string, in schema.RawInput) (RosterEntry, FieldErrors, error) {
	start := time.Now()
	var updated RosterEntry
	var ferrs FieldErrors
	var orphanedImage string
	_, err := s.store.RunInTransaction(ctx, func(tx memory.Transaction) error {
		entry, errs := validation.EntryForUpdate(in, id, tx.Snapshot())
		if len(errs) > 0 {
			ferrs = errs
			return errFieldValidation
		}
		var txErr error
		updated, txErr = tx.UpdateRosterEntry(id, func(cur *RosterEntry) error {
			if entry.ImageKey == "" {
				entry.ImageKey = cur.ImageKey
			} else if entry.ImageKey != cur.ImageKey {
				orphanedImage = cur.ImageKey
			}
			*cur = entry
			return nil
		})
		return txErr
	})
	if errors.Is(err, errFieldValidation) {
		s.observe(ctx, "update_roster_entry", start, false)
		return RosterEntry{}, ferrs, nil
	}
	if err == nil && orphanedImage != "" {
		s.dropPortrait(ctx, orphanedImage)
	}
	s.logIfNotFound(err)
	s.observe(ctx, "update_roster_entry", start, err == nil)
	return updated, nil, err
}

// DeleteRosterEntry removes a roster entry and its stored portrait. Deleting
// an absent ID reports false without error.
func (s *Service) DeleteRosterEntry(ctx context.Context, id string) (bool, error) {
	start := time.Now()
	var existed bool
	var imageKey string
	_, err := s.store.RunInTransaction(ctx, func(tx memory.Transaction) error {
		if entry, ok := tx.Snapshot().FindRosterEntry(id); ok {
			imageKey = entry.ImageKey
		}
		var txErr error
		existed, txErr = tx.DeleteRosterEntry(id)
		return txErr
	})
	if err == nil && existed && imageKey != "" {
		s.dropPortrait(ctx, imageKey)
	}
	s.observe(ctx, "delete_roster_entry", start, err == nil)
	return existed, err
}

func (s *Service) dropPortrait(ctx context.Context, key string) {
	if _, err := s.blobs.Delete(ctx, key); err != nil {
		s.log.Warnf("drop portrait %s: %v", key, err)
	}
}

func (s *Service) logIfNotFound(err error) {
	var notFound ErrNotFound
	if errors.As(err, &notFound) {
		s.log.Errorf("update targeted a missing record: %v", notFound)
	}
}
