package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gatekit/gatekit/pkg/broadcast"
)

// UserStore provides user lookups for the local client.
type UserStore interface {
	UserByID(ctx context.Context, id uuid.UUID) (*User, error)
	UserByEmail(ctx context.Context, email string) (*User, error)
}

// CredentialStore provides password hashes for password sign-in.
type CredentialStore interface {
	// PasswordHash returns the bcrypt hash for the given user.
	PasswordHash(ctx context.Context, userID uuid.UUID) ([]byte, error)
}

// LocalClient is an in-process auth Client. It authenticates against a
// UserStore (password or OAuth) and broadcasts every state change, making it
// suitable both for self-hosted deployments and as the event source in tests.
type LocalClient struct {
	users  UserStore
	creds  CredentialStore
	events broadcast.Broadcaster[Event]
	log    *slog.Logger

	mu      sync.RWMutex
	current *User
}

// LocalOption configures a LocalClient.
type LocalOption func(*LocalClient)

// WithLocalLogger sets a custom logger.
func WithLocalLogger(log *slog.Logger) LocalOption {
	return func(c *LocalClient) {
		if log != nil {
			c.log = log
		}
	}
}

// WithEventBroadcaster replaces the default in-memory event broadcaster,
// e.g. with a Redis-backed one so events reach other instances.
func WithEventBroadcaster(bc broadcast.Broadcaster[Event]) LocalOption {
	return func(c *LocalClient) {
		if bc != nil {
			c.events = bc
		}
	}
}

// NewLocalClient creates a local auth client over the given stores.
func NewLocalClient(users UserStore, creds CredentialStore, opts ...LocalOption) *LocalClient {
	c := &LocalClient{
		users:  users,
		creds:  creds,
		events: broadcast.NewMemoryBroadcaster[Event](16),
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// CurrentUser returns the signed-in user or ErrNotAuthenticated.
func (c *LocalClient) CurrentUser(ctx context.Context) (*User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.current == nil {
		return nil, ErrNotAuthenticated
	}
	user := *c.current
	return &user, nil
}

// Subscribe returns a subscriber delivering subsequent auth events.
func (c *LocalClient) Subscribe(ctx context.Context) broadcast.Subscriber[Event] {
	return c.events.Subscribe(ctx)
}

// SignIn authenticates with email and password.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (c *LocalClient) SignIn(ctx context.Context, email, password string) (*User, error) {
	user, err := c.users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := c.creds.PasswordHash(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("lookup credentials: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	c.setCurrent(user)
	c.emit(ctx, Event{Type: EventSignedIn, User: user, At: time.Now().UTC()})

	c.log.InfoContext(ctx, "user signed in", slog.String("user_id", user.ID.String()))
	return user, nil
}

// SignInWithProvider authenticates through an OAuth provider adapter using
// the authorization code from the provider callback. The provider email must
// belong to an existing user and be verified.
func (c *LocalClient) SignInWithProvider(ctx context.Context, adapter ProviderAdapter, code string) (*User, error) {
	profile, err := adapter.ResolveProfile(ctx, code)
	if err != nil {
		return nil, err
	}

	if !profile.EmailVerified {
		return nil, ErrUnverifiedEmail
	}

	user, err := c.users.UserByEmail(ctx, profile.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup user for provider %s: %w", adapter.ProviderID(), err)
	}

	c.setCurrent(user)
	c.emit(ctx, Event{Type: EventSignedIn, User: user, At: time.Now().UTC()})

	c.log.InfoContext(ctx, "user signed in via provider",
		slog.String("user_id", user.ID.String()),
		slog.String("provider", adapter.ProviderID()))
	return user, nil
}

// SignOut clears the current user and notifies subscribers.
// Signing out while signed out is a no-op.
func (c *LocalClient) SignOut(ctx context.Context) error {
	c.mu.Lock()
	wasSignedIn := c.current != nil
	c.current = nil
	c.mu.Unlock()

	if !wasSignedIn {
		return nil
	}

	c.emit(ctx, Event{Type: EventSignedOut, At: time.Now().UTC()})
	c.log.InfoContext(ctx, "user signed out")
	return nil
}

// Refresh emits a token-refreshed event for the current user, prompting
// consumers to re-resolve authorization state.
func (c *LocalClient) Refresh(ctx context.Context) error {
	c.mu.RLock()
	current := c.current
	c.mu.RUnlock()

	if current == nil {
		return ErrNotAuthenticated
	}

	user := *current
	c.emit(ctx, Event{Type: EventTokenRefreshed, User: &user, At: time.Now().UTC()})
	return nil
}

// Close shuts down the event broadcaster. Subscribers see closed channels.
func (c *LocalClient) Close() error {
	return c.events.Close()
}

func (c *LocalClient) setCurrent(user *User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	u := *user
	c.current = &u
}

func (c *LocalClient) emit(ctx context.Context, event Event) {
	if err := c.events.Broadcast(ctx, broadcast.Message[Event]{Data: event}); err != nil {
		c.log.ErrorContext(ctx, "failed to broadcast auth event",
			slog.String("type", string(event.Type)),
			slog.Any("error", err))
	}
}

var _ Client = (*LocalClient)(nil)
