// Package session implements the single source of truth for the client's
// authenticated state. The store owns the persisted credential/identity pair;
// every other component reads through it and never touches storage directly.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	domainauth "github.com/forkful/forkful-cli/internal/domain/auth"
	apperrors "github.com/forkful/forkful-cli/internal/errors"
	"github.com/forkful/forkful-cli/internal/ports"
)

// Storage keys for the two persisted fields.
const (
	KeyCredential = "credential"
	KeyIdentity   = "identity"
)

// Listener is invoked with the new session state after a logical change.
// A nil session means logged out. Listeners fire at most once per change;
// no ordering is guaranteed between listeners.
type Listener func(sess *domainauth.Session)

// Options groups dependencies for the Store.
type Options struct {
	Storage ports.Storage
	Logger  *slog.Logger
}

// Store reads, writes, and validates the persisted session. Writes are
// totally ordered within a process; the both-present-or-both-absent
// invariant is enforced on every read.
type Store struct {
	storage ports.Storage
	logger  *slog.Logger

	// mu orders storage writes and guards the last observed snapshot.
	mu       sync.Mutex
	snapshot string

	lmu       sync.Mutex
	nextID    int
	listeners map[int]Listener
}

// New constructs a Store over the given storage backend.
func New(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		storage:   opts.Storage,
		logger:    logger,
		listeners: make(map[int]Listener),
	}
}

// Get returns the current session and whether one exists. It never returns
// an error: storage failures and invalid persisted state both read as logged
// out. Partially populated or malformed state is cleared as a side effect.
func (s *Store) Get(ctx context.Context) (domainauth.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(ctx)
}

func (s *Store) getLocked(ctx context.Context) (domainauth.Session, bool) {
	cred, identityJSON, err := s.read(ctx)
	if err != nil {
		s.logger.Warn("session read failed, treating as logged out", "error", err)
		return domainauth.Session{}, false
	}

	if cred == "" && identityJSON == "" {
		s.snapshot = ""
		return domainauth.Session{}, false
	}

	sess, ok := decode(cred, identityJSON)
	if !ok {
		// Self-heal: a half-written or tampered session must not linger.
		s.logger.Warn("invalid persisted session, clearing")
		if err := s.clearLocked(ctx); err != nil {
			s.logger.Warn("clearing invalid session failed", "error", err)
		}
		return domainauth.Session{}, false
	}

	s.snapshot = join(cred, identityJSON)
	return sess, true
}

// Set atomically persists the credential and identity, overwriting any prior
// session. It fails with a validation error when the pair would violate the
// session invariant (empty field or unrecognized role).
func (s *Store) Set(ctx context.Context, sess domainauth.Session) error {
	if sess.Credential == "" || sess.Identity.ID == "" {
		return apperrors.Validation("session requires both credential and identity")
	}
	if !sess.Identity.Role.Valid() {
		return apperrors.Validationf("unrecognized role %q", sess.Identity.Role)
	}

	identityJSON, err := json.Marshal(sess.Identity)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode identity")
	}

	s.mu.Lock()
	if err := s.storage.Set(ctx, KeyCredential, sess.Credential); err != nil {
		s.mu.Unlock()
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "persist credential")
	}
	if err := s.storage.Set(ctx, KeyIdentity, string(identityJSON)); err != nil {
		// Roll the half-written pair back so reads never see it.
		if delErr := s.storage.Delete(ctx, KeyCredential); delErr != nil {
			s.logger.Warn("rollback of partial session write failed", "error", delErr)
		}
		s.mu.Unlock()
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "persist identity")
	}
	next := join(sess.Credential, string(identityJSON))
	changed := next != s.snapshot
	s.snapshot = next
	s.mu.Unlock()

	if changed {
		s.notify(&sess)
	}
	return nil
}

// Clear removes both persisted fields. It is idempotent: clearing an already
// logged-out store succeeds and fires no change notification.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	_, had := s.getLocked(ctx)
	err := s.clearLocked(ctx)
	s.mu.Unlock()

	if err == nil && had {
		s.notify(nil)
	}
	return err
}

func (s *Store) clearLocked(ctx context.Context) error {
	if err := s.storage.Delete(ctx, KeyCredential); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "clear credential")
	}
	if err := s.storage.Delete(ctx, KeyIdentity); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "clear identity")
	}
	s.snapshot = ""
	return nil
}

// OnChange registers a listener and returns a function that removes it.
func (s *Store) OnChange(l Listener) func() {
	s.lmu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.lmu.Unlock()

	return func() {
		s.lmu.Lock()
		delete(s.listeners, id)
		s.lmu.Unlock()
	}
}

// Sync consumes the watcher's change feed until ctx is done, propagating
// externally made session changes to this process's listeners. It re-reads
// and re-validates on every external change and never writes back, so two
// processes cannot feed each other write loops.
func (s *Store) Sync(ctx context.Context, w ports.Watcher) error {
	ch, err := w.Watch(ctx)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "start session watcher")
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, open := <-ch:
			if !open {
				return nil
			}
			s.applyExternalChange(ctx)
		}
	}
}

func (s *Store) applyExternalChange(ctx context.Context) {
	s.mu.Lock()
	cred, identityJSON, err := s.read(ctx)
	if err != nil {
		s.mu.Unlock()
		s.logger.Warn("session re-read after external change failed", "error", err)
		return
	}

	next := ""
	if cred != "" || identityJSON != "" {
		next = join(cred, identityJSON)
	}
	if next == s.snapshot {
		// Our own write, or a change already observed.
		s.mu.Unlock()
		return
	}
	s.snapshot = next

	sess, ok := decode(cred, identityJSON)
	s.mu.Unlock()

	if ok {
		s.notify(&sess)
	} else {
		// Invalid or absent state propagates as logged out; the next Get
		// self-heals storage if needed.
		s.notify(nil)
	}
}

func (s *Store) read(ctx context.Context) (cred, identityJSON string, err error) {
	cred, err = s.storage.Get(ctx, KeyCredential)
	if err != nil {
		return "", "", err
	}
	identityJSON, err = s.storage.Get(ctx, KeyIdentity)
	if err != nil {
		return "", "", err
	}
	return cred, identityJSON, nil
}

func (s *Store) notify(sess *domainauth.Session) {
	s.lmu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.lmu.Unlock()

	for _, l := range listeners {
		l(sess)
	}
}

// decode parses the persisted pair into a session, enforcing the
// both-present-or-both-absent invariant and the role enumeration.
func decode(cred, identityJSON string) (domainauth.Session, bool) {
	if cred == "" || identityJSON == "" {
		return domainauth.Session{}, false
	}
	var identity domainauth.Identity
	if err := json.Unmarshal([]byte(identityJSON), &identity); err != nil {
		return domainauth.Session{}, false
	}
	sess := domainauth.Session{Credential: cred, Identity: identity}
	if !sess.Valid() {
		return domainauth.Session{}, false
	}
	return sess, true
}

func join(cred, identityJSON string) string {
	return cred + "\x1f" + identityJSON
}
