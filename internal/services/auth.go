package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"eventplanner/internal/domain"
)

const (
	minPasswordLen = 8
	maxUsernameLen = 150
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	userRepo     domain.UserRepository
	hasher       domain.PasswordHasher
	issuer       domain.TokenIssuer
	emailService domain.EmailService
	jwtExpiry    time.Duration
	logger       *slog.Logger
}

// NewAuthService creates an AuthService. The welcome email is sent best-effort after registration.
func NewAuthService(userRepo domain.UserRepository, hasher domain.PasswordHasher, issuer domain.TokenIssuer,
	emailService domain.EmailService, jwtExpiry time.Duration, logger *slog.Logger) domain.AuthService {
	return &authService{
		userRepo:     userRepo,
		hasher:       hasher,
		issuer:       issuer,
		emailService: emailService,
		jwtExpiry:    jwtExpiry,
		logger:       logger,
	}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (string, *domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))

	fields := map[string]string{}
	if username == "" || len(username) > maxUsernameLen {
		fields["username"] = fmt.Sprintf("must be 1 to %d characters", maxUsernameLen)
	}
	if !emailRegexp.MatchString(email) {
		fields["email"] = "invalid email format"
	}
	if len(password) < minPasswordLen {
		fields["password"] = fmt.Sprintf("must be at least %d characters", minPasswordLen)
	}
	if err := domain.NewValidationError(fields); err != nil {
		return "", nil, err
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return "", nil, err
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := domain.NewUser(username, email, now, now)
	user.PasswordHash = hash
	user.Salt = salt
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return "", nil, domain.ErrDuplicateUsername
		}
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.issuer.Issue(user.ID, user.Username, s.jwtExpiry)
	if err != nil {
		return "", nil, err
	}

	if err := s.emailService.SendWelcomeMessage(ctx, &domain.WelcomeMessageEmailData{Email: user.Email, Username: user.Username}); err != nil {
		s.logger.WarnContext(ctx, "welcome email not sent", "user_id", user.ID, "err", err)
	}
	return token, user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	return s.issuer.Issue(user.ID, user.Username, s.jwtExpiry)
}
