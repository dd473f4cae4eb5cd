package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/onionboard/backend/internal/auth/domain"
	apperrors "github.com/onionboard/backend/internal/errors"
)

// signingMethod is the only accepted algorithm; tokens announcing any other are malformed.
var signingMethod = jwt.SigningMethodHS256

// CodecOption configures a TokenCodec.
type CodecOption func(*jwtTokenCodec)

// WithClock replaces time.Now as the codec's source of the current instant.
func WithClock(now func() time.Time) CodecOption {
	return func(c *jwtTokenCodec) {
		c.now = now
	}
}

// jwtTokenCodec implements TokenCodec with HS256 JWTs carrying sub, iat and exp.
type jwtTokenCodec struct {
	key      []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewTokenCodec creates a TokenCodec signing with key. The key must be the
// output of DeriveSigningKey and is never rotated during the codec's life.
func NewTokenCodec(key []byte, lifetime time.Duration, opts ...CodecOption) TokenCodec {
	c := &jwtTokenCodec{
		key:      append([]byte(nil), key...),
		lifetime: lifetime,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Issue signs a token for subject. JWT NumericDate has one-second precision,
// so the reported instants are truncated to match what the token carries.
func (c *jwtTokenCodec) Issue(subject string) (*authDomain.IssuedToken, error) {
	if subject == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "token subject is empty")
	}

	issuedAt := c.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(c.lifetime)

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(c.key)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to sign token")
	}

	return &authDomain.IssuedToken{
		Token:     signed,
		Subject:   subject,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks signature then expiry. jwt/v5 validates claims only after the
// signature, so a tampered token never surfaces as expired.
func (c *jwtTokenCodec) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		token,
		claims,
		c.keyFunc,
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", authDomain.ErrTokenExpired
		}
		return "", authDomain.ErrMalformedToken
	}

	if claims.Subject == "" {
		return "", authDomain.ErrMalformedToken
	}

	return claims.Subject, nil
}

// ExpiryOf returns the exp claim of a correctly signed token.
func (c *jwtTokenCodec) ExpiryOf(token string) (time.Time, error) {
	claims, err := c.parseSigned(token)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, authDomain.ErrMalformedToken
	}
	return claims.ExpiresAt.UTC(), nil
}

// SubjectOf returns the sub claim of a correctly signed token.
func (c *jwtTokenCodec) SubjectOf(token string) (string, error) {
	claims, err := c.parseSigned(token)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", authDomain.ErrMalformedToken
	}
	return claims.Subject, nil
}

// parseSigned verifies the signature and skips time-based claim validation.
func (c *jwtTokenCodec) parseSigned(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		token,
		claims,
		c.keyFunc,
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, authDomain.ErrMalformedToken
	}
	return claims, nil
}

func (c *jwtTokenCodec) keyFunc(*jwt.Token) (any, error) {
	return c.key, nil
}
