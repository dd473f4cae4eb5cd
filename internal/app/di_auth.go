package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	authDomain "github.com/onionboard/backend/internal/auth/domain"
	authHTTP "github.com/onionboard/backend/internal/auth/http"
	authRepository "github.com/onionboard/backend/internal/auth/repository"
	authMySQL "github.com/onionboard/backend/internal/auth/repository/mysql"
	authService "github.com/onionboard/backend/internal/auth/service"
	authUseCase "github.com/onionboard/backend/internal/auth/usecase"
)

// SigningKey returns the token signing key. It is resolved once, decrypting
// the configured secret through KMS when a key URI is set.
func (c *Container) SigningKey() ([]byte, error) {
	var err error
	c.signingKeyInit.Do(func() {
		c.signingKey, err = authService.LoadSigningKey(
			c.background,
			authService.NewSecretDecrypter(),
			c.config.AuthSigningSecret,
			c.config.AuthSigningKeyKMSURI,
		)
		if err != nil {
			c.initErrors["signingKey"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["signingKey"]; exists {
		return nil, storedErr
	}
	return c.signingKey, nil
}

// TokenCodec returns the codec issuing and verifying bearer tokens.
func (c *Container) TokenCodec() (authService.TokenCodec, error) {
	var err error
	c.tokenCodecInit.Do(func() {
		var key []byte
		key, err = c.SigningKey()
		if err != nil {
			err = fmt.Errorf("failed to get signing key for token codec: %w", err)
			c.initErrors["tokenCodec"] = err
			return
		}
		c.tokenCodec = authService.NewTokenCodec(key, c.config.AuthTokenExpiration)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenCodec"]; exists {
		return nil, storedErr
	}
	return c.tokenCodec, nil
}

// PasswordService returns the password hashing service.
func (c *Container) PasswordService() authService.PasswordService {
	c.passwordServiceInit.Do(func() {
		c.passwordService = authService.NewPasswordService()
	})
	return c.passwordService
}

// RevocationRepository returns the revocation repository based on database driver.
func (c *Container) RevocationRepository() (authUseCase.RevocationRepository, error) {
	var err error
	c.revocationRepoInit.Do(func() {
		c.revocationRepo, err = c.initRevocationRepository()
		if err != nil {
			c.initErrors["revocationRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["revocationRepo"]; exists {
		return nil, storedErr
	}
	return c.revocationRepo, nil
}

// RevocationUseCase returns the revocation use case.
func (c *Container) RevocationUseCase() (authUseCase.RevocationUseCase, error) {
	var err error
	c.revocationUseCaseInit.Do(func() {
		c.revocationUseCase, err = c.initRevocationUseCase()
		if err != nil {
			c.initErrors["revocationUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["revocationUseCase"]; exists {
		return nil, storedErr
	}
	return c.revocationUseCase, nil
}

// AuthUseCase returns the auth use case.
func (c *Container) AuthUseCase() (authUseCase.AuthUseCase, error) {
	var err error
	c.authUseCaseInit.Do(func() {
		c.authUseCase, err = c.initAuthUseCase()
		if err != nil {
			c.initErrors["authUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authUseCase"]; exists {
		return nil, storedErr
	}
	return c.authUseCase, nil
}

// WriteGuardUseCase returns the minimum-interval write guard.
func (c *Container) WriteGuardUseCase() (authUseCase.WriteGuardUseCase, error) {
	var err error
	c.writeGuardInit.Do(func() {
		c.writeGuardUseCase, err = c.initWriteGuardUseCase()
		if err != nil {
			c.initErrors["writeGuard"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["writeGuard"]; exists {
		return nil, storedErr
	}
	return c.writeGuardUseCase, nil
}

// AuthHandler returns the HTTP handler for login, logout and token validation.
func (c *Container) AuthHandler() (*authHTTP.AuthHandler, error) {
	var err error
	c.authHandlerInit.Do(func() {
		var useCase authUseCase.AuthUseCase
		useCase, err = c.AuthUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get auth use case for auth handler: %w", err)
			c.initErrors["authHandler"] = err
			return
		}
		cookie := authHTTP.CookieConfig{
			Name:   c.config.AuthCookieName,
			Secure: c.config.AuthCookieSecure,
		}
		c.authHandler = authHTTP.NewAuthHandler(useCase, cookie, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authHandler"]; exists {
		return nil, storedErr
	}
	return c.authHandler, nil
}

// AuthenticationMiddleware returns the middleware resolving the request identity.
func (c *Container) AuthenticationMiddleware() (gin.HandlerFunc, error) {
	useCase, err := c.AuthUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth use case for authentication middleware: %w", err)
	}
	return authHTTP.AuthenticationMiddleware(useCase, c.config.AuthCookieName, c.Logger()), nil
}

// LoginRateLimitMiddleware returns the per-IP login throttle, or nil when disabled.
// Its cleanup goroutine stops on Shutdown.
func (c *Container) LoginRateLimitMiddleware() gin.HandlerFunc {
	if !c.config.RateLimitLoginEnabled {
		return nil
	}
	return authHTTP.LoginRateLimitMiddleware(
		c.background,
		c.config.RateLimitLoginRequestsPerSec,
		c.config.RateLimitLoginBurst,
		c.Logger(),
	)
}

// initRevocationRepository creates the revocation repository based on the database driver.
func (c *Container) initRevocationRepository() (authUseCase.RevocationRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for revocation repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authRepository.NewPostgreSQLRevocationRepository(db), nil
	case "mysql":
		return authMySQL.NewMySQLRevocationRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initRevocationUseCase creates the revocation use case with all its dependencies.
func (c *Container) initRevocationUseCase() (authUseCase.RevocationUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for revocation use case: %w", err)
	}

	repo, err := c.RevocationRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get revocation repository for revocation use case: %w", err)
	}

	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for revocation use case: %w", err)
	}

	codec, err := c.TokenCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get token codec for revocation use case: %w", err)
	}

	opts := authUseCase.RevocationOptions{
		TrustWindow:   c.config.RevocationTrustWindow,
		LookupTimeout: c.config.RevocationLookupTimeout,
		WriteRetries:  c.config.RevocationWriteRetries,
	}

	return authUseCase.NewRevocationUseCase(
		txManager,
		repo,
		outboxRepo,
		codec,
		authService.NewTokenHasher(),
		opts,
		c.Logger(),
	), nil
}

// initAuthUseCase creates the auth use case with all its dependencies.
func (c *Container) initAuthUseCase() (authUseCase.AuthUseCase, error) {
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for auth use case: %w", err)
	}

	codec, err := c.TokenCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get token codec for auth use case: %w", err)
	}

	revocations, err := c.RevocationUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get revocation use case for auth use case: %w", err)
	}

	baseUseCase := authUseCase.NewAuthUseCase(
		userRepo,
		c.PasswordService(),
		codec,
		revocations,
		c.config.RevocationFailOpen,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for auth use case: %w", err)
		}
		return authUseCase.NewAuthUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initWriteGuardUseCase creates the write guard from the configured intervals.
func (c *Container) initWriteGuardUseCase() (authUseCase.WriteGuardUseCase, error) {
	activity, err := c.ActivityRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get activity repository for write guard: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for write guard: %w", err)
	}

	policy := authDomain.WritePolicy{
		authDomain.ArticleWrite: c.config.ArticleWriteInterval,
		authDomain.ArticleEdit:  c.config.ArticleEditInterval,
		authDomain.CommentWrite: c.config.CommentWriteInterval,
		authDomain.CommentEdit:  c.config.CommentEditInterval,
	}

	return authUseCase.NewWriteGuardUseCase(activity, policy, businessMetrics, nil, c.Logger()), nil
}
