package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"evently/internal/domain"
	"evently/internal/sanitize"
)

const (
	minPasswordLen      = 6
	resetCodeDigits     = 6
	resetCodeExpiryMins = 15
)

var resetCodeRegex = regexp.MustCompile(`^\d{6}$`)

var (
	errNameRequired    = domain.NewValidationError("Name is required")
	errInvalidEmail    = domain.NewValidationError("Please include a valid email")
	errPasswordTooWeak = domain.NewValidationError(fmt.Sprintf("Please enter a password with %d or more characters", minPasswordLen))
)

type authService struct {
	userRepo     domain.UserRepository
	resetRepo    domain.PasswordResetRepository
	hasher       domain.PasswordHasher
	tokenIssuer  domain.TokenIssuer
	emailService domain.EmailService
	logger       *slog.Logger
	now          func() time.Time
}

// NewAuthService creates an AuthService with the given repositories and auth ports.
// emailService may be nil, in which case no emails are sent.
func NewAuthService(
	userRepo domain.UserRepository,
	resetRepo domain.PasswordResetRepository,
	hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		userRepo:     userRepo,
		resetRepo:    resetRepo,
		hasher:       hasher,
		tokenIssuer:  tokenIssuer,
		emailService: emailService,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = sanitize.Text(name)
	email = domain.NormalizeEmail(email)
	if name == "" {
		return nil, errNameRequired
	}
	if !domain.ValidEmail(email) {
		return nil, errInvalidEmail
	}
	if len(password) < minPasswordLen {
		return nil, errPasswordTooWeak
	}

	salt, hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}
	user := domain.NewUser(name, email, s.now().UTC())
	user.PasswordHash = hash
	user.Salt = salt
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.emailService != nil {
		data := &domain.WelcomeMessageEmailData{Email: user.Email, Name: user.Name}
		if err := s.emailService.SendWelcomeMessage(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "welcome email not sent", "user_id", user.ID, "err", err)
		}
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrLoginUnknownEmail
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := s.tokenIssuer.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &domain.LoginResult{Token: token, User: user.Public()}, nil
}

func (s *authService) ChangeRole(ctx context.Context, targetUserID string) (*domain.User, error) {
	if !domain.ValidID(targetUserID) {
		return nil, domain.ErrUserNotFound
	}
	user, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user.IsOrganizer() {
		return nil, domain.ErrAlreadyOrganizer
	}
	updated, err := s.userRepo.UpdateRole(ctx, user.ID, domain.RoleOrganizer)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	s.logger.InfoContext(ctx, "user promoted", "user_id", updated.ID)
	return updated, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*domain.User, error) {
	if !domain.ValidID(userID) {
		return nil, domain.ErrUserNotFound
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)
	if !domain.ValidEmail(email) {
		return errInvalidEmail
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	code, err := generateResetCode(resetCodeDigits)
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	expiresAt := s.now().Add(resetCodeExpiryMins * time.Minute)
	if err := s.resetRepo.Create(ctx, email, hashResetCode(code), expiresAt); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}
	if s.emailService != nil {
		data := &domain.PasswordResetEmailData{
			Email:            email,
			Name:             user.Name,
			Code:             code,
			ExpiresInMinutes: resetCodeExpiryMins,
		}
		if err := s.emailService.SendPasswordResetCode(ctx, data); err != nil {
			return fmt.Errorf("failed to send reset code email: %w", err)
		}
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = domain.NormalizeEmail(email)
	if !domain.ValidEmail(email) {
		return errInvalidEmail
	}
	code = strings.TrimSpace(code)
	if !resetCodeRegex.MatchString(code) {
		return domain.ErrInvalidResetCode
	}
	if len(newPassword) < minPasswordLen {
		return errPasswordTooWeak
	}
	consumed, err := s.resetRepo.Consume(ctx, email, hashResetCode(code))
	if err != nil {
		return fmt.Errorf("failed to verify code: %w", err)
	}
	if !consumed {
		return domain.ErrInvalidResetCode
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidResetCode
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	salt, hash, err := s.hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash, salt); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	s.logger.InfoContext(ctx, "password reset", "user_id", user.ID)
	return nil
}

func (s *authService) hashPassword(password string) (salt, hash string, err error) {
	salt, err = s.hasher.GenerateSalt()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err = s.hasher.Hash(salt, password)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash password: %w", err)
	}
	return salt, hash, nil
}

func generateResetCode(digits int) (string, error) {
	const digitspace = "0123456789"
	b := make([]byte, digits)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = digitspace[int(b[i])%len(digitspace)]
	}
	return string(b), nil
}

func hashResetCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
