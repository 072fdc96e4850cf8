package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/SainteOfficial/autohaus-service/internal/inventory/domain"
	"github.com/SainteOfficial/autohaus-service/internal/platform/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionRevoked     = errors.New("session revoked")
)

// Blacklist records signed-out tokens until they would have expired anyway.
// Implemented by the Redis adapter.
type Blacklist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	Revoked(ctx context.Context, token string) (bool, error)
}

type Service struct {
	users     domain.AdminUserRepository
	blacklist Blacklist
	secret    []byte
	ttl       time.Duration
	logger    *logger.Logger
}

func NewService(users domain.AdminUserRepository, blacklist Blacklist, secret string, ttl time.Duration, log *logger.Logger) *Service {
	return &Service{
		users:     users,
		blacklist: blacklist,
		secret:    []byte(secret),
		ttl:       ttl,
		logger:    log,
	}
}

// Login verifies the credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.AdminUser, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !user.Active {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateToken(user.ID, s.secret, s.ttl)
	if err != nil {
		return "", nil, err
	}
	s.logger.Info("admin signed in", "user_id", user.ID, "email", user.Email)
	return token, user, nil
}

// Logout revokes the token for its remaining lifetime.
func (s *Service) Logout(ctx context.Context, token string) error {
	if _, err := ParseToken(token, s.secret); err != nil {
		// Already unusable, nothing to revoke.
		return nil
	}
	return s.blacklist.Revoke(ctx, token, s.ttl)
}

// Session validates a token and returns the signed-in admin, or an error
// when the token is invalid, revoked or the account is gone.
func (s *Service) Session(ctx context.Context, token string) (*domain.AdminUser, error) {
	userID, err := ParseToken(token, s.secret)
	if err != nil {
		return nil, err
	}
	revoked, err := s.blacklist.Revoked(ctx, token)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrSessionRevoked
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, ErrSessionRevoked
	}
	return user, nil
}

// EnsureAdmin creates the bootstrap back-office account when it does not
// exist yet. Called once at startup; a blank email disables bootstrapping.
func (s *Service) EnsureAdmin(ctx context.Context, email, password, name string) error {
	if email == "" || password == "" {
		return nil
	}
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &domain.AdminUser{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Active:       true,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}
	s.logger.Info("bootstrap admin account created", "email", email)
	return nil
}
