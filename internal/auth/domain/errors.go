package domain

import (
	"github.com/onionboard/backend/internal/errors"
)

// Authentication errors.
var (
	// ErrMalformedToken indicates a token that cannot be parsed, uses another
	// algorithm, carries a bad signature or lacks a subject or expiry.
	ErrMalformedToken = errors.Wrap(errors.ErrUnauthorized, "malformed token")

	// ErrTokenExpired indicates a correctly signed token whose expiry has passed.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token expired")

	// ErrTokenRevoked indicates a token covered by a revocation horizon of its subject.
	ErrTokenRevoked = errors.Wrap(errors.ErrUnauthorized, "token revoked")

	// ErrMissingToken indicates the request carried no token at all.
	ErrMissingToken = errors.Wrap(errors.ErrUnauthorized, "missing token")

	// ErrInvalidCredentials indicates a failed username/password check.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrStoreUnavailable indicates the revocation store could not be reached in time.
	ErrStoreUnavailable = errors.Wrap(errors.ErrUnavailable, "revocation store unavailable")

	// ErrSubjectMismatch indicates an attempt to revoke a token of another user.
	ErrSubjectMismatch = errors.Wrap(errors.ErrForbidden, "token subject does not match identity")

	// ErrWeakSigningSecret indicates a signing secret shorter than MinSigningSecretLength.
	ErrWeakSigningSecret = errors.Wrap(errors.ErrInvalidInput, "signing secret too short")

	// ErrUnknownActionKind indicates a write guard lookup for an unconfigured action.
	ErrUnknownActionKind = errors.Wrap(errors.ErrInvalidInput, "unknown action kind")
)

// ErrRevocationNotFound indicates the subject has no revocation entry in force.
var ErrRevocationNotFound = errors.Wrap(errors.ErrNotFound, "revocation not found")
