package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/jellydator/validation"
	"golang.org/x/crypto/hkdf"
	"gocloud.dev/secrets"

	authDomain "github.com/onionboard/backend/internal/auth/domain"
	apperrors "github.com/onionboard/backend/internal/errors"
	customValidation "github.com/onionboard/backend/internal/validation"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// signingKeyInfo binds the derived key to its single use.
const signingKeyInfo = "onionboard bearer token hs256"

// signingKeySize is the HMAC-SHA256 key size in bytes.
const signingKeySize = 32

// DeriveSigningKey expands secret into the token signing key with HKDF-SHA256.
func DeriveSigningKey(secret []byte) ([]byte, error) {
	if len(secret) < authDomain.MinSigningSecretLength {
		return nil, authDomain.ErrWeakSigningSecret
	}

	key := make([]byte, signingKeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(signingKeyInfo)), key); err != nil {
		return nil, apperrors.Wrap(err, "failed to derive signing key")
	}
	return key, nil
}

// kmsSecretDecrypter implements SecretDecrypter using gocloud.dev/secrets.
type kmsSecretDecrypter struct{}

// NewSecretDecrypter creates a SecretDecrypter backed by gocloud.dev keepers.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func NewSecretDecrypter() SecretDecrypter {
	return &kmsSecretDecrypter{}
}

// Decrypt opens the keeper, decrypts once and closes the keeper.
func (k *kmsSecretDecrypter) Decrypt(ctx context.Context, keyURI string, ciphertext []byte) ([]byte, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		_ = keeper.Close()
	}()

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt signing secret: %w", err)
	}
	return plaintext, nil
}

// LoadSigningKey resolves the configured secret into the token signing key.
// With an empty keyURI the secret is used as is. Otherwise it must be the
// base64 KMS ciphertext of the real secret.
func LoadSigningKey(ctx context.Context, decrypter SecretDecrypter, secret, keyURI string) ([]byte, error) {
	if keyURI == "" {
		return DeriveSigningKey([]byte(secret))
	}

	if err := validation.Validate(secret, validation.Required, customValidation.Base64); err != nil {
		return nil, customValidation.WrapValidationError(fmt.Errorf("signing secret: %w", err))
	}

	ciphertext, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "signing secret is not base64")
	}

	plaintext, err := decrypter.Decrypt(ctx, keyURI, ciphertext)
	if err != nil {
		return nil, err
	}
	return DeriveSigningKey(plaintext)
}
