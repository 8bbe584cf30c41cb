package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired accepts only verified access tokens that name a user.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		tokenType, ok := claims[auth.ClaimType].(string)
		if tokenType != auth.TokenTypeAccess || !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if _, err := auth.ActorFromContext(r.Context()); err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
