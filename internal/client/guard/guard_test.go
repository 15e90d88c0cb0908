package guard

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/signalist/signalist-api/internal/client/session"
)

type recordingNotifier struct {
	titles   []string
	messages []string
}

func (r *recordingNotifier) Notify(title, message string) {
	r.titles = append(r.titles, title)
	r.messages = append(r.messages, message)
}

func newGuardFixture(guest bool) (*AuthGuard, *recordingNotifier) {
	store := session.NewStore(nil, nil)
	if guest {
		store.Enter(true)
	}
	notifier := &recordingNotifier{}
	return New(store, notifier, zerolog.Nop()), notifier
}

func TestRequireAuth_GuestBlocked(t *testing.T) {
	g, notifier := newGuardFixture(true)

	var invoked bool
	g.RequireAuth(context.Background(), "add to watchlist", func(context.Context) error {
		invoked = true
		return nil
	}, Options{GuardType: GuardAdd})

	if invoked {
		t.Fatal("callback must never run for a guest")
	}
	prompt := g.Prompt()
	if !prompt.Active || prompt.Action != "add to watchlist" {
		t.Fatalf("prompt = %+v", prompt)
	}
	if len(notifier.titles) != 1 || notifier.titles[0] != "Sign in to add to watchlist" {
		t.Fatalf("notices = %v", notifier.titles)
	}
	if g.Err() != nil {
		t.Fatalf("guest block is not an error: %v", g.Err())
	}
}

func TestRequireAuth_AuthenticatedRunsOnce(t *testing.T) {
	g, notifier := newGuardFixture(false)

	var calls int
	g.RequireAuth(context.Background(), "remove from watchlist", func(context.Context) error {
		calls++
		return nil
	}, Options{GuardType: GuardRemove})

	if calls != 1 {
		t.Fatalf("callback ran %d times", calls)
	}
	if g.Prompt().Active {
		t.Fatal("prompt raised for an authenticated caller")
	}
	if len(notifier.titles) != 0 {
		t.Fatalf("unexpected notices: %v", notifier.titles)
	}
}

func TestRequireAuth_CallbackErrorCaptured(t *testing.T) {
	g, _ := newGuardFixture(false)

	wantErr := errors.New("api unavailable")
	g.RequireAuth(context.Background(), "add to watchlist", func(context.Context) error {
		return wantErr
	})

	if !errors.Is(g.Err(), wantErr) {
		t.Fatalf("captured error = %v", g.Err())
	}

	g.ClearError()
	if g.Err() != nil {
		t.Fatal("ClearError did not reset state")
	}
}

func TestRequireAuth_SuccessClearsPreviousError(t *testing.T) {
	g, _ := newGuardFixture(false)

	g.RequireAuth(context.Background(), "add to watchlist", func(context.Context) error {
		return errors.New("transient")
	})
	if g.Err() == nil {
		t.Fatal("expected captured error")
	}

	g.RequireAuth(context.Background(), "add to watchlist", func(context.Context) error {
		return nil
	})
	if g.Err() != nil {
		t.Fatalf("stale error survived a successful run: %v", g.Err())
	}
}

func TestClosePrompt(t *testing.T) {
	g, _ := newGuardFixture(true)

	g.RequireAuth(context.Background(), "edit profile", nil, Options{GuardType: GuardProfile})
	if !g.Prompt().Active {
		t.Fatal("prompt not raised")
	}

	g.ClosePrompt()
	if g.Prompt().Active {
		t.Fatal("prompt still active after close")
	}
}

func TestIsAuthenticated(t *testing.T) {
	g, _ := newGuardFixture(true)
	if g.IsAuthenticated() {
		t.Fatal("guest reported as authenticated")
	}

	g2, _ := newGuardFixture(false)
	if !g2.IsAuthenticated() {
		t.Fatal("non-guest reported as unauthenticated")
	}
}
