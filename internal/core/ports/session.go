package ports

import (
	"context"

	"github.com/signalist/signalist-api/internal/core/domain"
)

// SessionVerifier checks a server session credential issued by the external
// auth collaborator. Verify returns the embedded claims for a valid
// credential and domain.ErrSessionInvalid for an expired or malformed one.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*domain.SessionClaims, error)
}
