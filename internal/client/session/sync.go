package session

import "github.com/signalist/signalist-api/internal/core/domain"

// Sync reconciles the client-local guest flag against the server-resolved
// identity. It runs on mount and whenever the server identity changes:
//
//   - server says Guest but the local flag is off: enter guest mode silently,
//     so the initial render does not flash a notice.
//   - server says Authenticated but the local flag is still on: exit guest
//     mode, clearing the stale marker.
//
// Any other combination is already consistent and left untouched.
func (s *Store) Sync(identity domain.Identity) {
	switch {
	case identity.Kind == domain.IdentityGuest && !s.IsGuest():
		s.Enter(true)
	case identity.Kind == domain.IdentityAuthenticated && s.IsGuest():
		s.Exit()
	}
}
