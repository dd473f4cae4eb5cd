package usecase

import (
	"context"
	"errors"
	"log/slog"

	authDomain "github.com/onionboard/backend/internal/auth/domain"
	authService "github.com/onionboard/backend/internal/auth/service"
	userDomain "github.com/onionboard/backend/internal/user/domain"
)

// authUseCase implements AuthUseCase on top of the token codec and the revocation store.
type authUseCase struct {
	userRepo        UserRepository
	passwordService authService.PasswordService
	codec           authService.TokenCodec
	revocations     RevocationUseCase
	failOpen        bool
	logger          *slog.Logger
}

// Login authenticates a user by password and issues a bearer token.
//
// Security Notes:
//   - Returns ErrInvalidCredentials for both unknown users and wrong passwords
//     to prevent user enumeration
func (a *authUseCase) Login(ctx context.Context, username string, password string) (*authDomain.IssuedToken, error) {
	user, err := a.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !a.passwordService.ComparePassword(password, user.PasswordHash) {
		return nil, authDomain.ErrInvalidCredentials
	}

	return a.codec.Issue(user.Username)
}

// IssueToken issues a token for username after checking the user exists.
func (a *authUseCase) IssueToken(ctx context.Context, username string) (*authDomain.IssuedToken, error) {
	user, err := a.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return a.codec.Issue(user.Username)
}

// Authenticate resolves the identity of token.
//
// The signature and expiry are checked first, without touching any store. Only a
// correctly signed, unexpired token reaches the revocation lookup. When the store is
// unavailable the token is rejected unless the use case was built fail-open.
func (a *authUseCase) Authenticate(ctx context.Context, token string) (authDomain.Identity, error) {
	subject, err := a.codec.Verify(token)
	if err != nil {
		return nil, err
	}

	revoked, err := a.revocations.IsRevoked(ctx, token)
	if err != nil {
		if a.failOpen && errors.Is(err, authDomain.ErrStoreUnavailable) {
			if a.logger != nil {
				a.logger.Warn("revocation store unavailable, accepting token",
					slog.String("username", subject),
					slog.Any("error", err),
				)
			}
			return authDomain.Principal{Username: subject}, nil
		}
		return nil, err
	}
	if revoked {
		return nil, authDomain.ErrTokenRevoked
	}

	return authDomain.Principal{Username: subject}, nil
}

// Validate runs the same checks as Authenticate.
func (a *authUseCase) Validate(ctx context.Context, token string) error {
	_, err := a.Authenticate(ctx, token)
	return err
}

// LogoutAll revokes token on behalf of identity. The token must belong to identity.
func (a *authUseCase) LogoutAll(
	ctx context.Context,
	identity authDomain.Identity,
	token string,
) (*authDomain.RevocationEntry, error) {
	subject, err := a.codec.SubjectOf(token)
	if err != nil {
		return nil, err
	}
	if identity == nil || subject != identity.IdentityName() {
		return nil, authDomain.ErrSubjectMismatch
	}

	entry, err := a.revocations.Revoke(ctx, token, subject)
	if err != nil {
		return nil, err
	}

	if a.logger != nil {
		a.logger.Info("tokens revoked",
			slog.String("username", subject),
			slog.Time("horizon", entry.TokenExpiresAt),
		)
	}
	return entry, nil
}

// NewAuthUseCase creates an AuthUseCase. With failOpen set, tokens are accepted
// while the revocation store is unavailable.
func NewAuthUseCase(
	userRepo UserRepository,
	passwordService authService.PasswordService,
	codec authService.TokenCodec,
	revocations RevocationUseCase,
	failOpen bool,
	logger *slog.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		codec:           codec,
		revocations:     revocations,
		failOpen:        failOpen,
		logger:          logger,
	}
}
