// Package token issues the bearer tokens the HTTP boundary authenticates.
package token

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"assent/internal/identity"
	dErrors "assent/pkg/domain-errors"
)

// Claims are the JWT claims carried by issued access tokens. The subject is
// the numeric user id; user name and role ride along so the middleware can
// rebuild the actor without a store lookup.
type Claims struct {
	UserName string `json:"user_name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer creates signed HS256 access tokens.
type Issuer struct {
	signingKey []byte
	issuer     string
	tokenTTL   time.Duration
}

// NewIssuer constructs a token issuer.
func NewIssuer(signingKey []byte, issuer string, tokenTTL time.Duration) *Issuer {
	return &Issuer{signingKey: signingKey, issuer: issuer, tokenTTL: tokenTTL}
}

// TTL returns the lifetime of issued tokens.
func (s *Issuer) TTL() time.Duration {
	return s.tokenTTL
}

// Issue signs an access token for the given actor.
func (s *Issuer) Issue(actor identity.Actor) (string, error) {
	now := time.Now()
	claims := Claims{
		UserName: actor.UserName,
		Role:     string(actor.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(actor.UserID, 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not sign access token")
	}
	return signed, nil
}
