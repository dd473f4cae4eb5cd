// Package usecase implements user registration and lookup.
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authService "github.com/onionboard/backend/internal/auth/service"
	"github.com/onionboard/backend/internal/database"
	apperrors "github.com/onionboard/backend/internal/errors"
	outboxDomain "github.com/onionboard/backend/internal/outbox/domain"
	"github.com/onionboard/backend/internal/user/domain"
	appValidation "github.com/onionboard/backend/internal/validation"
)

// SignupInput contains the input data for user registration
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// UseCase defines the interface for user business logic operations
type UseCase interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserRepository interface defines user repository operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// OutboxEventRepository records the signup event in the user transaction.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// userUseCase handles user-related business logic
type userUseCase struct {
	txManager       database.TxManager
	userRepo        UserRepository
	outboxRepo      OutboxEventRepository
	passwordService authService.PasswordService
}

// NewUserUseCase creates a new user UseCase
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	outboxRepo OutboxEventRepository,
	passwordService authService.PasswordService,
) UseCase {
	return &userUseCase{
		txManager:       txManager,
		userRepo:        userRepo,
		outboxRepo:      outboxRepo,
		passwordService: passwordService,
	}
}

// validateSignupInput checks the username format, the email format and the
// password strength (min 8 chars, uppercase, lowercase, number, special char).
func (uc *userUseCase) validateSignupInput(input SignupInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			appValidation.Username,
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:      8,
				RequireUpper:   true,
				RequireLower:   true,
				RequireNumber:  true,
				RequireSpecial: true,
			},
		),
	)
	return appValidation.WrapValidationError(err)
}

// Signup registers a new user and records a user.signed_up event in the same transaction.
func (uc *userUseCase) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	if err := uc.validateSignupInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	event, err := outboxDomain.NewOutboxEvent(outboxDomain.EventUserSignedUp, outboxDomain.UserSignedUpPayload{
		UserID:   user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal event payload")
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return err
		}
		if err := uc.outboxRepo.Create(ctx, event); err != nil {
			return apperrors.Wrap(err, "failed to create outbox event")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetByUsername retrieves a user by username
func (uc *userUseCase) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return uc.userRepo.GetByUsername(ctx, username)
}
