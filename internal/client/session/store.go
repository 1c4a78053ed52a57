// Package session owns the console's persisted credentials: one access token
// and one refresh token per profile, stored as a small JSON document under a
// single metadata key. Every component that needs the tokens goes through
// Store; nothing else reads or writes that key.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/hrconsole/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/hrconsole/internal/common"
	"github.com/dmitrijs2005/hrconsole/internal/logging"
)

const subscriberBuffer = 8

// Session is the credential pair. The JSON names are the on-disk format.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Source int

const (
	// SourceLocal marks changes made through this Store.
	SourceLocal Source = iota
	// SourceExternal marks changes made by another process sharing the storage.
	SourceExternal
)

func (s Source) String() string {
	if s == SourceExternal {
		return "external"
	}
	return "local"
}

// Event describes the session after a change. Present is false after a clear.
type Event struct {
	Session Session
	Present bool
	Source  Source
}

type snapshot struct {
	session Session
	present bool
}

type Store struct {
	repo     metadata.Repository
	notifier metadata.Notifier
	key      string
	log      logging.Logger

	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
	last   snapshot
}

// NewStore binds a Store to repo. notifier may be nil, in which case Watch
// returns immediately and only local changes are published.
func NewStore(repo metadata.Repository, notifier metadata.Notifier, log logging.Logger) *Store {
	if log == nil {
		log = logging.Discard()
	}
	return &Store{
		repo:     repo,
		notifier: notifier,
		key:      common.SessionStorageKey,
		log:      log,
		subs:     make(map[int]chan Event),
	}
}

// Read returns the stored session. It never fails: storage errors, a missing
// key, malformed JSON and a document without an access token all mean
// "no session".
func (s *Store) Read(ctx context.Context) (Session, bool) {
	sess, ok := s.load(ctx)
	if !ok || sess.AccessToken == "" {
		return Session{}, false
	}
	return sess, true
}

// RefreshToken returns the stored refresh token even when the document has
// no access token, so a half-written session can still be renewed or revoked.
func (s *Store) RefreshToken(ctx context.Context) (string, bool) {
	sess, ok := s.load(ctx)
	if !ok || sess.RefreshToken == "" {
		return "", false
	}
	return sess.RefreshToken, true
}

func (s *Store) load(ctx context.Context) (Session, bool) {
	raw, err := s.repo.Get(ctx, s.key)
	if err != nil {
		s.log.Warn(ctx, "session read failed", "error", err)
		return Session{}, false
	}
	if raw == nil {
		return Session{}, false
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		s.log.Warn(ctx, "stored session is malformed", "error", err)
		return Session{}, false
	}
	return sess, true
}

// Write replaces both tokens. Any other fields present in the stored
// document are kept as they are.
func (s *Store) Write(ctx context.Context, accessToken, refreshToken string) error {
	raw, err := s.repo.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}

	doc := map[string]any{}
	if raw != nil {
		if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
			s.log.Warn(ctx, "replacing malformed stored session")
			doc = map[string]any{}
		}
	}
	doc["accessToken"] = accessToken
	doc["refreshToken"] = refreshToken

	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.repo.Set(ctx, s.key, b); err != nil {
		return fmt.Errorf("write session: %w", err)
	}

	sess := Session{AccessToken: accessToken, RefreshToken: refreshToken}
	s.publish(snapshot{session: sess, present: accessToken != ""}, SourceLocal)
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.publish(snapshot{}, SourceLocal)
	return nil
}

// Subscribe registers for change events. Delivery never blocks the store:
// when a subscriber falls behind, its oldest pending event is dropped.
// The returned func unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// Watch follows changes made by other processes until ctx is done and
// publishes them as SourceExternal events. A change that leaves the session
// as this Store last saw it is not published.
func (s *Store) Watch(ctx context.Context) error {
	if s.notifier == nil {
		return nil
	}

	sess, ok := s.Read(ctx)
	s.mu.Lock()
	s.last = snapshot{session: sess, present: ok}
	s.mu.Unlock()

	changes, err := s.notifier.Changes(ctx)
	if err != nil {
		return fmt.Errorf("watch session: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case key, open := <-changes:
			if !open {
				return nil
			}
			if key != "" && key != s.key {
				continue
			}
			sess, ok := s.Read(ctx)
			s.publishIfChanged(snapshot{session: sess, present: ok})
		}
	}
}

func (s *Store) publishIfChanged(cur snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur == s.last {
		return
	}
	s.deliverLocked(cur, SourceExternal)
}

func (s *Store) publish(cur snapshot, src Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliverLocked(cur, src)
}

func (s *Store) deliverLocked(cur snapshot, src Source) {
	s.last = cur
	ev := Event{Session: cur.session, Present: cur.present, Source: src}
	for _, ch := range s.subs {
		select {
		case ch <- ev:
			continue
		default:
		}
		// full: drop the oldest and retry once
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- ev:
		default:
		}
	}
}
