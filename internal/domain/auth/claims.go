package auth

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
)

// Token claims issued by the timesheet API
const (
	ClaimUsername = "username"
	ClaimIsAdmin  = "is_admin"
	ClaimType     = "type"

	TokenTypeAccess = "access"
	TokenTypeStream = "stream"
)

// ActorFromContext returns the username of the verified token in ctx. It is the
// actor recorded in the audit log.
func ActorFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", ErrInvalidToken
	}
	username, ok := claims[ClaimUsername].(string)
	if !ok || username == "" {
		return "", ErrActorMissing
	}
	return username, nil
}
