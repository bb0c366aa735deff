package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/user"
	"github.com/cmlabs-hris/attendance-engine/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/jwt"
)

type actorKey struct{}

// AuthRequired rejects requests without a verified access token and
// stores the caller as a user.Actor for handlers downstream.
// jwtauth.Verifier must run first.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, user.ErrInvalidToken)
				return
			}

			tokenType, ok := claims[jwt.ClaimType].(string)
			if tokenType != jwt.TokenTypeAccess || !ok {
				response.HandleError(w, user.ErrInvalidToken)
				return
			}

			employeeID, _ := claims[jwt.ClaimEmployeeID].(string)
			if employeeID == "" {
				response.HandleError(w, user.ErrEmployeeClaimMissing)
				return
			}

			roleStr, _ := claims[jwt.ClaimRole].(string)
			role := user.Role(roleStr)
			if !role.IsValid() {
				response.HandleError(w, user.ErrInvalidToken)
				return
			}

			ctx := WithActor(r.Context(), user.Actor{EmployeeID: employeeID, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

func WithActor(ctx context.Context, actor user.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the caller stored by AuthRequired
func ActorFromContext(ctx context.Context) (user.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(user.Actor)
	return actor, ok
}
