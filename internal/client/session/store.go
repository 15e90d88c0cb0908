// Package session manages the client-local guest marker: an ephemeral flag a
// visitor opts into to browse without an account. The marker lives only in
// the client's session-scoped storage and is cleared as soon as the server
// resolves the visitor as authenticated.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// Marker is the client-local guest session record.
type Marker struct {
	SessionID string
	EnteredAt time.Time
}

// Storage persists the marker for the lifetime of the browsing session. The
// in-memory default stands in for the browser's session storage.
type Storage interface {
	Load() (Marker, bool)
	Save(Marker)
	Clear()
}

// Notifier surfaces user-facing notices. Implementations typically render
// toasts; the nop default swallows them.
type Notifier interface {
	Notify(title, message string)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, string) {}

type memoryStorage struct {
	mu     sync.Mutex
	marker *Marker
}

func (m *memoryStorage) Load() (Marker, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.marker == nil {
		return Marker{}, false
	}
	return *m.marker, true
}

func (m *memoryStorage) Save(marker Marker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.marker = &marker
}

func (m *memoryStorage) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.marker = nil
}

// NewMemoryStorage returns an ephemeral in-memory Storage.
func NewMemoryStorage() Storage {
	return &memoryStorage{}
}

// Store tracks whether the client is currently in guest mode and notifies
// listeners on changes.
type Store struct {
	mu        sync.Mutex
	storage   Storage
	notifier  Notifier
	listeners []func(isGuest bool)
	isGuest   bool
}

// NewStore builds a Store over the given storage. A nil storage falls back
// to in-memory; a nil notifier is silenced. Initial guest state is loaded
// from storage.
func NewStore(storage Storage, notifier Notifier) *Store {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	s := &Store{storage: storage, notifier: notifier}
	_, s.isGuest = storage.Load()
	return s
}

// IsGuest reports whether the client is in guest mode.
func (s *Store) IsGuest() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isGuest
}

// Marker returns the current guest marker, if any.
func (s *Store) Marker() (Marker, bool) {
	return s.storage.Load()
}

// Enter switches the client into guest mode. When silent is true no notice
// is emitted; the sync path uses this to avoid flicker on mount.
func (s *Store) Enter(silent bool) {
	s.mu.Lock()
	changed := !s.isGuest
	s.isGuest = true
	s.storage.Save(Marker{SessionID: newSessionID(), EnteredAt: time.Now()})
	listeners := append([]func(bool){}, s.listeners...)
	s.mu.Unlock()

	if !silent {
		s.notifier.Notify("Exploring as guest", "Sign up to save your preferences")
	}
	if changed {
		for _, fn := range listeners {
			fn(true)
		}
	}
}

// Exit leaves guest mode and discards the marker.
func (s *Store) Exit() {
	s.mu.Lock()
	changed := s.isGuest
	s.isGuest = false
	s.storage.Clear()
	listeners := append([]func(bool){}, s.listeners...)
	s.mu.Unlock()

	if changed {
		for _, fn := range listeners {
			fn(false)
		}
	}
}

// OnChange registers fn to run whenever guest state flips.
func (s *Store) OnChange(fn func(isGuest bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func newSessionID() string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("guest_%d_%s", time.Now().UnixMilli(), hex.EncodeToString(buf))
}
