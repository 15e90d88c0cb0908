// Package guard provides the single client-side gate for mutating UI
// actions. Every watchlist or profile mutation goes through RequireAuth, so
// individual call sites never duplicate guest checks.
package guard

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/signalist/signalist-api/internal/client/session"
)

// GuardType categorizes the blocked action for logging.
type GuardType string

const (
	GuardAdd      GuardType = "add"
	GuardRemove   GuardType = "remove"
	GuardModify   GuardType = "modify"
	GuardProfile  GuardType = "profile"
	GuardSettings GuardType = "settings"
)

// Callback is the guarded action body. It only runs for authenticated
// callers and may perform asynchronous work against the API.
type Callback func(ctx context.Context) error

// Options tunes a single RequireAuth invocation.
type Options struct {
	GuardType GuardType
}

// Prompt is the auth-prompt dialog state surfaced when a guest is blocked.
type Prompt struct {
	Active bool
	Action string
}

// AuthGuard gates user-triggered mutations on the client. Guest callers are
// blocked with a prompt; authenticated callers run the callback, and a
// callback failure is captured into guard state rather than re-thrown.
//
// The guard does not serialize concurrent invocations of itself; a control
// must disable its own trigger while a mutation is in flight.
type AuthGuard struct {
	mu       sync.Mutex
	store    *session.Store
	notifier session.Notifier
	logger   zerolog.Logger
	prompt   Prompt
	err      error
}

func New(store *session.Store, notifier session.Notifier, logger zerolog.Logger) *AuthGuard {
	return &AuthGuard{store: store, notifier: notifier, logger: logger}
}

// IsAuthenticated reports whether the client may perform mutations. On the
// client the inverse of guest mode is treated as authenticated; the server
// re-checks the real session on every API call.
func (g *AuthGuard) IsAuthenticated() bool {
	return !g.store.IsGuest()
}

// RequireAuth executes cb only for authenticated callers.
//
// Under guest identity cb is never invoked: the prompt state activates with
// the action text and an informational notice is emitted. Under
// authenticated identity cb runs exactly once and is awaited; an error from
// cb is stored in guard error state and not returned to the caller; a
// guest block is expected control flow, not an error.
func (g *AuthGuard) RequireAuth(ctx context.Context, action string, cb Callback, opts ...Options) {
	guardType := GuardModify
	if len(opts) > 0 && opts[0].GuardType != "" {
		guardType = opts[0].GuardType
	}

	if g.store.IsGuest() {
		g.logger.Debug().
			Str("guard_type", string(guardType)).
			Str("action", action).
			Msg("guest action blocked")

		g.mu.Lock()
		g.prompt = Prompt{Active: true, Action: action}
		g.err = nil
		g.mu.Unlock()

		if g.notifier != nil {
			g.notifier.Notify("Sign in to "+action, "Create an account to unlock all features")
		}
		return
	}

	g.mu.Lock()
	g.err = nil
	g.mu.Unlock()

	if err := cb(ctx); err != nil {
		g.logger.Warn().Err(err).Str("action", action).Msg("guarded action failed")
		g.mu.Lock()
		g.err = err
		g.mu.Unlock()
	}
}

// Prompt returns the current auth-prompt dialog state.
func (g *AuthGuard) Prompt() Prompt {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.prompt
}

// ClosePrompt dismisses the auth-prompt dialog.
func (g *AuthGuard) ClosePrompt() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompt = Prompt{}
}

// Err returns the last captured callback error, if any.
func (g *AuthGuard) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

// ClearError resets the captured error state.
func (g *AuthGuard) ClearError() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.err = nil
}
