// Package credentials persists the authenticated session in the client's
// metadata key-value store.
//
// A session is five keys that are always written and removed together:
// the bearer token, the logged-in flag, the denormalized email and name,
// and the full identity record as JSON.
package credentials

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Sinduaditya/fisikaap-sub000/internal/client/models"
	"github.com/Sinduaditya/fisikaap-sub000/internal/client/repositories/metadata"
	"github.com/Sinduaditya/fisikaap-sub000/internal/logging"
)

const (
	KeyToken      = "userToken"
	KeyIsLoggedIn = "isLoggedIn"
	KeyEmail      = "userEmail"
	KeyName       = "userName"
	KeyUserData   = "userData"
)

// SessionKeys is the key set that forms one logical session.
var SessionKeys = []string{KeyToken, KeyIsLoggedIn, KeyEmail, KeyName, KeyUserData}

type Store struct {
	repo   metadata.Repository
	logger logging.Logger
}

func NewStore(repo metadata.Repository, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Store{repo: repo, logger: logger.With("component", "credentials")}
}

// Save establishes a session: all five keys in one transaction.
func (s *Store) Save(ctx context.Context, token string, user models.User) error {
	if token == "" {
		return fmt.Errorf("save session: empty token")
	}
	blob, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("save session: encode user: %w", err)
	}

	err = s.repo.SetMany(ctx, map[string][]byte{
		KeyToken:      []byte(token),
		KeyIsLoggedIn: []byte("true"),
		KeyEmail:      []byte(user.Email),
		KeyName:       []byte(user.Name),
		KeyUserData:   blob,
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Token returns the stored bearer token, or "" when logged out.
func (s *Store) Token(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, KeyToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// CachedUser returns the last persisted identity, or nil when there is
// none. A blob that no longer decodes is treated as absent.
func (s *Store) CachedUser(ctx context.Context) (*models.User, error) {
	blob, err := s.repo.Get(ctx, KeyUserData)
	if err != nil {
		return nil, err
	}
	if len(blob) == 0 {
		return nil, nil
	}

	var u models.User
	if err := json.Unmarshal(blob, &u); err != nil {
		s.logger.Warn(ctx, "cached identity is unreadable, ignoring", "error", err)
		return nil, nil
	}
	return &u, nil
}

// UpdateUser rewrites the identity keys of an existing session.
func (s *Store) UpdateUser(ctx context.Context, user models.User) error {
	blob, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("update cached user: encode: %w", err)
	}
	err = s.repo.SetMany(ctx, map[string][]byte{
		KeyEmail:    []byte(user.Email),
		KeyName:     []byte(user.Name),
		KeyUserData: blob,
	})
	if err != nil {
		return fmt.Errorf("update cached user: %w", err)
	}
	return nil
}

// Purge removes the session key set in one transaction.
func (s *Store) Purge(ctx context.Context) error {
	if err := s.repo.DeleteMany(ctx, SessionKeys...); err != nil {
		return fmt.Errorf("purge session: %w", err)
	}
	return nil
}

// PurgeToken removes the session key set only if the stored token is still
// token, comparing and deleting in one transaction. It reports whether the
// session was removed; a newer session saved since token was read survives.
func (s *Store) PurgeToken(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	purged, err := s.repo.DeleteManyIf(ctx, KeyToken, []byte(token), SessionKeys...)
	if err != nil {
		return false, fmt.Errorf("purge session: %w", err)
	}
	return purged, nil
}

// Clear wipes the whole key-value store. It is the fallback when Purge
// fails.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear local store: %w", err)
	}
	return nil
}
