package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/Sinduaditya/fisikaap-sub000/internal/common"
	"github.com/Sinduaditya/fisikaap-sub000/internal/cryptox"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/auth"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/config"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/models"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/repositories/repomanager"
)

const minPasswordLen = 8

type RegisterInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// Session is a signed-in user and the bearer token issued for it.
type Session struct {
	User  *models.User
	Token string
}

type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	now                   func() time.Time

	// seams for tests
	hashPassword   func([]byte) (string, error)
	verifyPassword func([]byte, string) (bool, error)
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		now:                   time.Now,
		hashPassword:          cryptox.HashPassword,
		verifyPassword:        cryptox.VerifyPassword,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegistration(in RegisterInput) *ValidationError {
	v := &ValidationError{}

	switch name := strings.TrimSpace(in.Name); {
	case name == "":
		v.add("name", "The name field is required.")
	case len(name) > 255:
		v.add("name", "The name may not be greater than 255 characters.")
	}

	if email := strings.TrimSpace(in.Email); email == "" {
		v.add("email", "The email field is required.")
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		v.add("email", "The email must be a valid email address.")
	}

	if in.Password == "" {
		v.add("password", "The password field is required.")
	} else {
		if len(in.Password) < minPasswordLen {
			v.add("password", fmt.Sprintf("The password must be at least %d characters.", minPasswordLen))
		}
		if in.Password != in.PasswordConfirmation {
			v.add("password", "The password confirmation does not match.")
		}
	}

	if v.empty() {
		return nil
	}
	return v
}

// Register validates in, stores the user with an argon2id password hash and
// signs it in. Problems with the input, including a taken email, come back
// as *ValidationError.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if v := validateRegistration(in); v != nil {
		return nil, v
	}

	hash, err := s.hashPassword([]byte(in.Password))
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
	}

	user, err = s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			v := &ValidationError{}
			v.add("email", "The email has already been taken.")
			return nil, v
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.issue(user)
}

// Login checks the credentials. Unknown email and wrong password are both
// common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	ok, err := s.verifyPassword([]byte(password), user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	return s.issue(user)
}

func (s *UserService) issue(user *models.User) (*Session, error) {
	tok, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &Session{User: user, Token: tok.Raw}, nil
}

// Authenticate verifies a bearer token and that it was not logged out.
func (s *UserService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	revoked, err := s.repomanager.RevokedTokens(s.db).IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("error checking token: %w", err)
	}
	if revoked {
		return nil, common.ErrTokenRevoked
	}
	return claims, nil
}

// Logout revokes the token described by claims.
func (s *UserService) Logout(ctx context.Context, claims *auth.Claims) error {
	expires := s.now().Add(s.tokenValidityDuration)
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	if err := s.repomanager.RevokedTokens(s.db).Revoke(ctx, claims.ID, claims.UserID, expires); err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}
	return nil
}

func (s *UserService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

// PurgeRevoked forgets revocations of tokens that have expired anyway.
func (s *UserService) PurgeRevoked(ctx context.Context) (int64, error) {
	return s.repomanager.RevokedTokens(s.db).DeleteExpired(ctx, s.now())
}
