package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MemoryUserStore is an in-memory UserStore and CredentialStore, intended
// for tests and single-node development setups.
type MemoryUserStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]User
	byEmail map[string]uuid.UUID
	hashes  map[uuid.UUID][]byte
}

// NewMemoryUserStore creates an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		byID:    make(map[uuid.UUID]User),
		byEmail: make(map[string]uuid.UUID),
		hashes:  make(map[uuid.UUID][]byte),
	}
}

// Add registers a user with the given password, hashing it with bcrypt.
// Emails are matched case-insensitively.
func (s *MemoryUserStore) Add(user User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	email := normalizeEmail(user.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return ErrUserExists
	}

	s.byID[user.ID] = user
	s.byEmail[email] = user.ID
	s.hashes[user.ID] = hash
	return nil
}

// UserByID returns the user with the given ID or ErrUserNotFound.
func (s *MemoryUserStore) UserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// UserByEmail returns the user with the given email or ErrUserNotFound.
func (s *MemoryUserStore) UserByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, ErrUserNotFound
	}
	user := s.byID[id]
	return &user, nil
}

// PasswordHash returns the stored bcrypt hash for the given user.
func (s *MemoryUserStore) PasswordHash(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hash, ok := s.hashes[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return hash, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var (
	_ UserStore       = (*MemoryUserStore)(nil)
	_ CredentialStore = (*MemoryUserStore)(nil)
)
