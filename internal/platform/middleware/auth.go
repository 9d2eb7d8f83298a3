package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"assent/internal/identity"
	"assent/internal/transport/httpjson"
)

type actorKey struct{}

// GetActor retrieves the authenticated actor from the context.
// Returns a zero Actor when the request was not authenticated.
func GetActor(ctx context.Context) identity.Actor {
	if a, ok := ctx.Value(actorKey{}).(identity.Actor); ok {
		return a
	}
	return identity.Actor{}
}

// WithActor returns a context carrying the given actor. Exposed for tests and
// for internal callers that bypass the HTTP layer.
func WithActor(ctx context.Context, a identity.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// actorClaims are the JWT claims issued by the authentication layer.
// The consent core only consumes the resulting Actor value.
type actorClaims struct {
	UserName string `json:"user_name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticate verifies the bearer token and injects the actor into the
// request context. Requests without a valid token are rejected with 401.
func Authenticate(signingKey []byte, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				httpjson.Write(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
				return
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims := &actorClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return signingKey, nil
			})
			if err != nil || !token.Valid {
				logger.WarnContext(r.Context(), "bearer token rejected",
					"request_id", GetRequestID(r.Context()),
					"error", err,
				)
				httpjson.Write(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
				return
			}

			userID, err := strconv.ParseInt(claims.Subject, 10, 64)
			if err != nil || claims.UserName == "" {
				httpjson.Write(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
				return
			}

			actor := identity.Actor{
				UserID:   userID,
				UserName: claims.UserName,
				Role:     identity.Role(claims.Role),
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// RequireRoles rejects requests whose actor does not hold one of the given
// roles. Role gating stays at the boundary; services never re-check roles.
func RequireRoles(roles ...identity.Role) func(http.Handler) http.Handler {
	allowed := make(map[identity.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := GetActor(r.Context())
			if actor.Zero() {
				httpjson.Write(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
				return
			}
			if _, ok := allowed[actor.Role]; !ok {
				httpjson.Write(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
