package port

import (
	"context"

	"adserve/internal/core/domain"
)

// Authenticator resolves a bearer token to the calling actor. It returns
// an authentication error for any token it does not accept.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Actor, error)
}
