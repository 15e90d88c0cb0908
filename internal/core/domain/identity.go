package domain

import "errors"

// IdentityKind classifies the caller of a request.
type IdentityKind string

const (
	IdentityAnonymous     IdentityKind = "anonymous"
	IdentityGuest         IdentityKind = "guest"
	IdentityAuthenticated IdentityKind = "authenticated"
)

var ErrSessionInvalid = errors.New("session credential invalid or expired")
var ErrAuthenticationRequired = errors.New("authentication required")
var ErrForbidden = errors.New("access forbidden")

// SessionClaims is the verified payload of a server session credential. By the
// time a SessionClaims value exists, the credential has already been accepted
// by the auth collaborator's verification step.
type SessionClaims struct {
	UserID string
	Email  string
	Role   string
}

// SessionStatus is the outcome of verifying the server session credential.
type SessionStatus int

const (
	SessionAbsent SessionStatus = iota
	SessionInvalid
	SessionValid
)

// Identity is the tri-state classification of a request: Anonymous, Guest, or
// Authenticated. It is recomputed on every request and never persisted.
type Identity struct {
	Kind   IdentityKind
	UserID string
	Email  string
	Role   string
}

func Anonymous() Identity {
	return Identity{Kind: IdentityAnonymous}
}

func Guest() Identity {
	return Identity{Kind: IdentityGuest}
}

func Authenticated(claims SessionClaims) Identity {
	return Identity{
		Kind:   IdentityAuthenticated,
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}
}

// IsAuthenticated reports whether the identity carries a verified account.
func (i Identity) IsAuthenticated() bool {
	return i.Kind == IdentityAuthenticated
}

// IsAdmin reports whether the identity is an authenticated administrator.
func (i Identity) IsAdmin() bool {
	return i.Kind == IdentityAuthenticated && i.Role == RoleAdmin
}

// ResolveIdentity derives the request identity from its credentials.
//
// A valid server session always wins, regardless of any guest marker left
// behind on the client. Without a session, a guest marker yields Guest.
// An invalid or expired session resolves to Anonymous even when a guest
// marker is present: a broken credential must never be promoted to Guest.
//
// Pure function; the single source of truth for identity on every request.
func ResolveIdentity(status SessionStatus, claims *SessionClaims, guestMarker bool) Identity {
	switch status {
	case SessionValid:
		if claims == nil {
			return Anonymous()
		}
		return Authenticated(*claims)
	case SessionInvalid:
		return Anonymous()
	default:
		if guestMarker {
			return Guest()
		}
		return Anonymous()
	}
}
