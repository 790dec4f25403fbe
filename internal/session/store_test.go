package session

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/forkful/forkful-cli/internal/domain/auth"
	apperrors "github.com/forkful/forkful-cli/internal/errors"
	mockstorage "github.com/forkful/forkful-cli/internal/mocks/storage"
	"github.com/forkful/forkful-cli/internal/ports"
)

func testSession() domainauth.Session {
	return domainauth.Session{
		Credential: "tok-abc",
		Identity: domainauth.Identity{
			ID:    "u-1",
			Name:  "Ada Lovelace",
			Email: "ada@example.com",
			Role:  domainauth.RoleUser,
		},
	}
}

func newTestStore(t *testing.T) (*Store, *mockstorage.MemoryStorage) {
	t.Helper()
	storage := mockstorage.NewMemoryStorage()
	return New(Options{Storage: storage}), storage
}

func TestSetThenGet(t *testing.T) {
	store, storage := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, testSession()))

	got, ok := store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, testSession(), got)

	// Both keys persisted.
	cred, ok := storage.Value(KeyCredential)
	require.True(t, ok)
	assert.Equal(t, "tok-abc", cred)
	_, ok = storage.Value(KeyIdentity)
	assert.True(t, ok)
}

func TestSetOverwritesPriorSession(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, testSession()))

	next := testSession()
	next.Credential = "tok-def"
	next.Identity.ID = "u-2"
	require.NoError(t, store.Set(ctx, next))

	got, ok := store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, next, got)
}

func TestSetRejectsInvalidSession(t *testing.T) {
	store, storage := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		sess domainauth.Session
	}{
		{"unrecognized role", domainauth.Session{
			Credential: "tok",
			Identity:   domainauth.Identity{ID: "u-1", Role: "superuser"},
		}},
		{"empty credential", domainauth.Session{
			Identity: domainauth.Identity{ID: "u-1", Role: domainauth.RoleUser},
		}},
		{"empty identity", domainauth.Session{Credential: "tok"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Set(ctx, tt.sess)
			assert.True(t, apperrors.IsValidation(err))
		})
	}

	// Nothing was persisted by the rejected writes.
	assert.Equal(t, 0, storage.Len())
}

func TestGetWithEmptyStorage(t *testing.T) {
	store, _ := newTestStore(t)

	_, ok := store.Get(context.Background())
	assert.False(t, ok)
}

func TestGetSelfHealsPartialState(t *testing.T) {
	tests := []struct {
		name string
		seed func(s *mockstorage.MemoryStorage)
	}{
		{"credential only", func(s *mockstorage.MemoryStorage) {
			s.Put(KeyCredential, "tok-abc")
		}},
		{"identity only", func(s *mockstorage.MemoryStorage) {
			s.Put(KeyIdentity, `{"id":"u-1","role":"user"}`)
		}},
		{"malformed identity", func(s *mockstorage.MemoryStorage) {
			s.Put(KeyCredential, "tok-abc")
			s.Put(KeyIdentity, "{not json")
		}},
		{"unrecognized role", func(s *mockstorage.MemoryStorage) {
			s.Put(KeyCredential, "tok-abc")
			s.Put(KeyIdentity, `{"id":"u-1","role":"root"}`)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, storage := newTestStore(t)
			tt.seed(storage)

			_, ok := store.Get(context.Background())
			assert.False(t, ok)

			// The invalid partial state was cleared.
			assert.Equal(t, 0, storage.Len())
		})
	}
}

func TestGetStorageFailureReadsAsLoggedOut(t *testing.T) {
	store, storage := newTestStore(t)
	storage.Put(KeyCredential, "tok-abc")
	storage.GetErr = assert.AnError

	_, ok := store.Get(context.Background())
	assert.False(t, ok)

	// A read failure must not destroy state that may still be valid.
	storage.GetErr = nil
	v, present := storage.Value(KeyCredential)
	assert.True(t, present)
	assert.Equal(t, "tok-abc", v)
}

func TestClearIdempotent(t *testing.T) {
	store, storage := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, testSession()))
	require.NoError(t, store.Clear(ctx))

	_, ok := store.Get(ctx)
	assert.False(t, ok)
	assert.Equal(t, 0, storage.Len())

	// Second clear observes the same state as the first.
	require.NoError(t, store.Clear(ctx))
	_, ok = store.Get(ctx)
	assert.False(t, ok)
}

func TestSetRollsBackPartialWrite(t *testing.T) {
	storage := mockstorage.NewMemoryStorage()
	ctx := context.Background()

	// First write (credential) succeeds, second (identity) fails.
	failing := &failSecondSet{inner: storage}
	store := New(Options{Storage: failing})

	err := store.Set(ctx, testSession())
	require.Error(t, err)

	// The credential written before the failure was rolled back.
	assert.Equal(t, 0, storage.Len())
}

// failSecondSet passes the first Set through and fails the second.
type failSecondSet struct {
	inner *mockstorage.MemoryStorage
	sets  int
}

func (f *failSecondSet) Get(ctx context.Context, key string) (string, error) {
	return f.inner.Get(ctx, key)
}

func (f *failSecondSet) Set(ctx context.Context, key, value string) error {
	f.sets++
	if f.sets == 2 {
		return assert.AnError
	}
	return f.inner.Set(ctx, key, value)
}

func (f *failSecondSet) Delete(ctx context.Context, key string) error {
	return f.inner.Delete(ctx, key)
}

func TestOnChangeNotifications(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	var mu sync.Mutex
	var events []*domainauth.Session
	unsubscribe := store.OnChange(func(sess *domainauth.Session) {
		mu.Lock()
		events = append(events, sess)
		mu.Unlock()
	})

	require.NoError(t, store.Set(ctx, testSession()))
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx)) // no logical change

	mu.Lock()
	require.Len(t, events, 2)
	require.NotNil(t, events[0])
	assert.Equal(t, "u-1", events[0].Identity.ID)
	assert.Nil(t, events[1])
	mu.Unlock()

	unsubscribe()
	require.NoError(t, store.Set(ctx, testSession()))

	mu.Lock()
	assert.Len(t, events, 2)
	mu.Unlock()
}

func TestSetSameSessionFiresOnce(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	fired := 0
	store.OnChange(func(*domainauth.Session) { fired++ })

	require.NoError(t, store.Set(ctx, testSession()))
	require.NoError(t, store.Set(ctx, testSession()))

	assert.Equal(t, 1, fired)
}

func TestSyncPropagatesExternalChange(t *testing.T) {
	store, storage := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan *domainauth.Session, 4)
	store.OnChange(func(sess *domainauth.Session) { events <- sess })

	watcher := mockstorage.NewFeedWatcher()
	done := make(chan struct{})
	go func() {
		_ = store.Sync(ctx, watcher)
		close(done)
	}()

	// Another process logs in: storage changes underneath us.
	identityJSON, err := json.Marshal(testSession().Identity)
	require.NoError(t, err)
	storage.Put(KeyCredential, "tok-abc")
	storage.Put(KeyIdentity, string(identityJSON))
	watcher.Emit(ports.Change{})

	select {
	case sess := <-events:
		require.NotNil(t, sess)
		assert.Equal(t, "u-1", sess.Identity.ID)
	case <-time.After(time.Second):
		t.Fatal("expected change notification")
	}

	got, ok := store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok-abc", got.Credential)

	cancel()
	<-done
}

func TestSyncExternalLogout(t *testing.T) {
	store, storage := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, store.Set(ctx, testSession()))

	events := make(chan *domainauth.Session, 4)
	store.OnChange(func(sess *domainauth.Session) { events <- sess })

	watcher := mockstorage.NewFeedWatcher()
	go func() { _ = store.Sync(ctx, watcher) }()

	// Another process logged out without this process calling Clear.
	require.NoError(t, storage.Delete(ctx, KeyCredential))
	require.NoError(t, storage.Delete(ctx, KeyIdentity))
	watcher.Emit(ports.Change{})

	select {
	case sess := <-events:
		assert.Nil(t, sess)
	case <-time.After(time.Second):
		t.Fatal("expected logged-out notification")
	}

	_, ok := store.Get(ctx)
	assert.False(t, ok)
}

func TestSyncIgnoresOwnWrites(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 4)
	store.OnChange(func(*domainauth.Session) { fired <- struct{}{} })

	watcher := mockstorage.NewFeedWatcher()
	go func() { _ = store.Sync(ctx, watcher) }()

	require.NoError(t, store.Set(ctx, testSession()))
	<-fired // local notification from Set

	// The watcher observes our own write; content matches the snapshot,
	// so no second notification fires.
	watcher.Emit(ports.Change{})

	select {
	case <-fired:
		t.Fatal("own write must not be re-notified")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSyncDoesNotWriteBack(t *testing.T) {
	store, storage := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan *domainauth.Session, 4)
	store.OnChange(func(sess *domainauth.Session) { events <- sess })

	watcher := mockstorage.NewFeedWatcher()
	go func() { _ = store.Sync(ctx, watcher) }()

	// External change leaves a partial state behind.
	storage.Put(KeyCredential, "tok-only")
	deletesBefore := storage.DeleteCalls
	watcher.Emit(ports.Change{})

	select {
	case sess := <-events:
		assert.Nil(t, sess)
	case <-time.After(time.Second):
		t.Fatal("expected logged-out notification")
	}

	// Sync only propagates; it never originates writes.
	assert.Equal(t, deletesBefore, storage.DeleteCalls)
}
