package session

import (
	"strings"
	"testing"

	"github.com/signalist/signalist-api/internal/core/domain"
)

type recordingNotifier struct {
	notices []string
}

func (r *recordingNotifier) Notify(title, message string) {
	r.notices = append(r.notices, title)
}

func TestStore_EnterAndExit(t *testing.T) {
	notifier := &recordingNotifier{}
	store := NewStore(nil, notifier)

	if store.IsGuest() {
		t.Fatal("fresh store should not be in guest mode")
	}

	var flips []bool
	store.OnChange(func(isGuest bool) { flips = append(flips, isGuest) })

	store.Enter(false)
	if !store.IsGuest() {
		t.Fatal("Enter did not set guest mode")
	}
	marker, ok := store.Marker()
	if !ok {
		t.Fatal("marker not persisted")
	}
	if !strings.HasPrefix(marker.SessionID, "guest_") {
		t.Errorf("session id = %q", marker.SessionID)
	}
	if len(notifier.notices) != 1 || notifier.notices[0] != "Exploring as guest" {
		t.Errorf("notices = %v", notifier.notices)
	}

	store.Exit()
	if store.IsGuest() {
		t.Fatal("Exit did not clear guest mode")
	}
	if _, ok := store.Marker(); ok {
		t.Fatal("marker not cleared")
	}
	if len(flips) != 2 || flips[0] != true || flips[1] != false {
		t.Errorf("listener flips = %v", flips)
	}
}

func TestStore_SilentEnterSkipsNotice(t *testing.T) {
	notifier := &recordingNotifier{}
	store := NewStore(nil, notifier)

	store.Enter(true)
	if !store.IsGuest() {
		t.Fatal("silent Enter did not set guest mode")
	}
	if len(notifier.notices) != 0 {
		t.Errorf("silent enter emitted notices: %v", notifier.notices)
	}
}

func TestStore_RepeatEnterDoesNotRefire(t *testing.T) {
	store := NewStore(nil, nil)
	var flips int
	store.OnChange(func(bool) { flips++ })

	store.Enter(true)
	store.Enter(true)
	if flips != 1 {
		t.Fatalf("listener fired %d times, want 1", flips)
	}

	store.Exit()
	store.Exit()
	if flips != 2 {
		t.Fatalf("listener fired %d times, want 2", flips)
	}
}

func TestStore_LoadsExistingMarker(t *testing.T) {
	storage := NewMemoryStorage()
	storage.Save(Marker{SessionID: "guest_1_ab"})

	store := NewStore(storage, nil)
	if !store.IsGuest() {
		t.Fatal("existing marker should restore guest mode")
	}
}

func TestSync(t *testing.T) {
	t.Run("guest identity enters silently", func(t *testing.T) {
		notifier := &recordingNotifier{}
		store := NewStore(nil, notifier)

		store.Sync(domain.Guest())
		if !store.IsGuest() {
			t.Fatal("sync did not enter guest mode")
		}
		if len(notifier.notices) != 0 {
			t.Errorf("sync enter must be silent: %v", notifier.notices)
		}
	})

	t.Run("authenticated identity clears stale marker", func(t *testing.T) {
		storage := NewMemoryStorage()
		storage.Save(Marker{SessionID: "guest_1_ab"})
		store := NewStore(storage, nil)

		store.Sync(domain.Authenticated(domain.SessionClaims{UserID: "u1", Role: domain.RoleUser}))
		if store.IsGuest() {
			t.Fatal("sync did not exit guest mode")
		}
		if _, ok := storage.Load(); ok {
			t.Fatal("stale marker not cleared")
		}
	})

	t.Run("consistent states untouched", func(t *testing.T) {
		store := NewStore(nil, nil)
		var flips int
		store.OnChange(func(bool) { flips++ })

		store.Sync(domain.Anonymous())
		store.Sync(domain.Authenticated(domain.SessionClaims{UserID: "u1"}))
		if flips != 0 {
			t.Fatalf("sync flipped state %d times", flips)
		}
	})
}
