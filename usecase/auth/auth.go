package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskgrid/backend/domain"
	"github.com/taskgrid/backend/repository"
)

// Config carries token issuance settings and the admin invite token.
type Config struct {
	JWTSecret        string
	Issuer           string
	TokenTTL         time.Duration
	AdminInviteToken string
}

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	hasher   *PasswordHasher
	cfg      Config
	logger   *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionRepository, cfg Config, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 7 * 24 * time.Hour
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		hasher:   NewPasswordHasher(),
		cfg:      cfg,
		logger:   logger,
	}
}

// RegisterInput carries a sign-up request.
type RegisterInput struct {
	Name             string
	Email            string
	Password         string
	ProfileImageURL  string
	AdminInviteToken string
}

// ProfileUpdateInput carries a profile patch; empty fields keep the
// stored value, a blank password leaves the hash untouched.
type ProfileUpdateInput struct {
	Name     string
	Email    string
	Password string
}

// Result is a user plus a freshly issued access token.
type Result struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates an account. A matching invite token grants the admin
// role; everyone else signs up as a regular user.
func (uc *UseCase) Register(ctx context.Context, input RegisterInput) (*Result, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "name, email and password are required")
	}

	if _, err := uc.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		return nil, err
	}

	role := domain.RoleUser
	if input.AdminInviteToken != "" && input.AdminInviteToken == uc.cfg.AdminInviteToken {
		role = domain.RoleAdmin
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:              uuid.NewString(),
		Name:            input.Name,
		Email:           input.Email,
		PasswordHash:    hash,
		ProfileImageURL: input.ProfileImageURL,
		Role:            role,
	}

	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return uc.issue(ctx, user)
}

// Login verifies credentials and issues a token backed by a Redis session.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*Result, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !uc.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return uc.issue(ctx, user)
}

// Logout revokes the session carried by the presented token.
func (uc *UseCase) Logout(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

// GetProfile returns the account of the given user.
func (uc *UseCase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

// UpdateProfile merges the patch over the stored account.
func (uc *UseCase) UpdateProfile(ctx context.Context, userID string, input ProfileUpdateInput) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if strings.TrimSpace(input.Password) != "" {
		hash, err := uc.hasher.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UseCase) issue(ctx context.Context, user *domain.User) (*Result, error) {
	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.cfg.TokenTTL),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"role":       string(user.Role),
		"session_id": session.ID,
		"iss":        uc.cfg.Issuer,
		"iat":        now.Unix(),
		"exp":        session.ExpiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(uc.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &Result{User: user, Token: token}, nil
}
