package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/alamana-org/charity-server/pkg/charity"
)

const defaultTokenTTL = 24 * time.Hour

// Service issues and validates admin session tokens and manages back-office
// accounts. A bootstrap admin can be configured from the environment; its
// credentials short-circuit the database lookup on login.
type Service struct {
	repo          charity.Repository
	tokenAuth     *jwtauth.JWTAuth
	tokenTTL      time.Duration
	adminEmail    string
	adminPassword string
	logger        *slog.Logger
}

// Option configures the auth service
type Option func(*Service)

// WithTokenTTL overrides the default 24h token lifetime
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.tokenTTL = ttl
	}
}

// WithBootstrapAdmin sets the environment-configured admin credentials
func WithBootstrapAdmin(email, password string) Option {
	return func(s *Service) {
		s.adminEmail = email
		s.adminPassword = password
	}
}

// WithLogger sets the logger for the service
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates a new auth service signing tokens with the given HS256 secret
func New(repo charity.Repository, secret string, options ...Option) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	s := &Service{
		repo:      repo,
		tokenAuth: jwtauth.New("HS256", []byte(secret), nil),
		tokenTTL:  defaultTokenTTL,
	}
	for _, option := range options {
		option(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s, nil
}

// TokenAuth exposes the verifier for router middleware
func (s *Service) TokenAuth() *jwtauth.JWTAuth {
	return s.tokenAuth
}

// Login checks credentials and returns a signed session token. The bootstrap
// admin is matched before the database so the back office stays reachable on
// an empty users table.
func (s *Service) Login(ctx context.Context, email, password string) (string, *charity.User, error) {
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", charity.ErrMissingField)
	}

	if s.adminEmail != "" && email == s.adminEmail && password == s.adminPassword {
		user := &charity.User{
			ID:    uuid.NewSHA1(uuid.NameSpaceOID, []byte(s.adminEmail)),
			Email: s.adminEmail,
			Name:  "Administrator",
			Role:  charity.RoleAdmin,
		}
		token, err := s.issueToken(user)
		if err != nil {
			return "", nil, err
		}
		return token, user, nil
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, charity.ErrUserNotFound) {
			return "", nil, charity.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, charity.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Register creates a new back-office account
func (s *Service) Register(ctx context.Context, name, email, password string) (*charity.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", charity.ErrMissingField)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &charity.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         charity.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// EnsureAdmin seeds a database account for the bootstrap admin so the
// credentials keep working if the environment variables are later removed.
// It is a no-op when no bootstrap admin is configured or one already exists.
func (s *Service) EnsureAdmin(ctx context.Context) error {
	if s.adminEmail == "" || s.adminPassword == "" {
		return nil
	}

	if _, err := s.repo.GetUserByEmail(ctx, s.adminEmail); err == nil {
		return nil
	} else if !errors.Is(err, charity.ErrUserNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	user := &charity.User{
		ID:           uuid.New(),
		Email:        s.adminEmail,
		Name:         "Administrator",
		PasswordHash: string(hash),
		Role:         charity.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, charity.ErrDuplicateEmail) {
			return nil
		}
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	s.logger.Info("seeded bootstrap admin account", "email", s.adminEmail)
	return nil
}

func (s *Service) issueToken(user *charity.User) (string, error) {
	claims := map[string]interface{}{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  string(user.Role),
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, s.tokenTTL)

	_, token, err := s.tokenAuth.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}
