package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/custodia-labs/docfill/internal/core/domain"
	"github.com/custodia-labs/docfill/internal/core/ports/driven"
)

// Ensure LinkSigner implements driven.LinkSigner
var _ driven.LinkSigner = (*LinkSigner)(nil)

// DefaultLinkTTL is how long a signed download link stays valid.
const DefaultLinkTTL = 15 * time.Minute

const linkIssuer = "docfill"

// LinkSigner signs download links as HS256 JWTs whose subject is the
// output id.
type LinkSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewLinkSigner creates a signer with the given secret and link lifetime.
// A non-positive ttl uses DefaultLinkTTL.
func NewLinkSigner(secret string, ttl time.Duration) *LinkSigner {
	if ttl <= 0 {
		ttl = DefaultLinkTTL
	}
	return &LinkSigner{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Sign creates a signed token for the output id
func (s *LinkSigner) Sign(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("sign link: %w", domain.ErrInvalidInput)
	}
	now := s.now()
	claims := jwt.RegisteredClaims{
		Issuer:    linkIssuer,
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign link: %w", err)
	}
	return signed, nil
}

// Verify checks the token signature, expiry and subject
func (s *LinkSigner) Verify(tokenString, id string) error {
	if tokenString == "" {
		return domain.ErrUnauthorized
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(linkIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.ErrTokenExpired
		}
		return fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	if !token.Valid || claims.Subject != id {
		return domain.ErrUnauthorized
	}
	return nil
}
