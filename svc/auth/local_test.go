package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatekit/gatekit/pkg/broadcast"
	"github.com/gatekit/gatekit/svc/auth"
)

func newTestClient(t *testing.T) (*auth.LocalClient, auth.User) {
	t.Helper()

	store := auth.NewMemoryUserStore()
	user := auth.User{
		ID:        uuid.New(),
		Email:     "jane@example.com",
		Name:      "Jane",
		Verified:  true,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Add(user, "s3cret"))

	client := auth.NewLocalClient(store, store)
	t.Cleanup(func() { _ = client.Close() })
	return client, user
}

func nextEvent(t *testing.T, sub broadcast.Subscriber[auth.Event]) auth.Event {
	t.Helper()
	select {
	case msg, ok := <-sub.Receive(context.Background()):
		require.True(t, ok, "event channel closed unexpectedly")
		return msg.Data
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for auth event")
		panic("unreachable")
	}
}

func TestLocalClient_SignIn(t *testing.T) {
	t.Parallel()

	client, user := newTestClient(t)
	ctx := context.Background()
	sub := client.Subscribe(ctx)

	got, err := client.SignIn(ctx, "jane@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	event := nextEvent(t, sub)
	assert.Equal(t, auth.EventSignedIn, event.Type)
	require.NotNil(t, event.User)
	assert.Equal(t, user.ID, event.User.ID)

	current, err := client.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, current.ID)
}

func TestLocalClient_SignIn_EmailCaseInsensitive(t *testing.T) {
	t.Parallel()

	client, user := newTestClient(t)

	got, err := client.SignIn(context.Background(), "JANE@Example.COM", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestLocalClient_SignIn_InvalidCredentials(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t)
	ctx := context.Background()

	_, err := client.SignIn(ctx, "jane@example.com", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	// Unknown email yields the same error as a wrong password.
	_, err = client.SignIn(ctx, "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = client.CurrentUser(ctx)
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
}

func TestLocalClient_SignOut(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t)
	ctx := context.Background()

	_, err := client.SignIn(ctx, "jane@example.com", "s3cret")
	require.NoError(t, err)

	sub := client.Subscribe(ctx)
	require.NoError(t, client.SignOut(ctx))

	event := nextEvent(t, sub)
	assert.Equal(t, auth.EventSignedOut, event.Type)
	assert.Nil(t, event.User)

	_, err = client.CurrentUser(ctx)
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
}

func TestLocalClient_SignOut_WhenSignedOut(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t)
	ctx := context.Background()
	sub := client.Subscribe(ctx)

	require.NoError(t, client.SignOut(ctx))

	// No event is emitted for a no-op sign-out.
	select {
	case msg := <-sub.Receive(ctx):
		t.Fatalf("unexpected event %q", msg.Data.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLocalClient_Refresh(t *testing.T) {
	t.Parallel()

	client, user := newTestClient(t)
	ctx := context.Background()

	assert.ErrorIs(t, client.Refresh(ctx), auth.ErrNotAuthenticated)

	_, err := client.SignIn(ctx, "jane@example.com", "s3cret")
	require.NoError(t, err)

	sub := client.Subscribe(ctx)
	require.NoError(t, client.Refresh(ctx))

	event := nextEvent(t, sub)
	assert.Equal(t, auth.EventTokenRefreshed, event.Type)
	require.NotNil(t, event.User)
	assert.Equal(t, user.ID, event.User.ID)
}

func TestLocalClient_SignInWithProvider(t *testing.T) {
	t.Parallel()

	client, user := newTestClient(t)
	ctx := context.Background()

	adapter := &fakeAdapter{profile: auth.Profile{
		ProviderUserID: "g-1",
		Email:          "jane@example.com",
		EmailVerified:  true,
	}}

	got, err := client.SignInWithProvider(ctx, adapter, "code-123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "code-123", adapter.gotCode)
}

func TestLocalClient_SignInWithProvider_UnverifiedEmail(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t)

	adapter := &fakeAdapter{profile: auth.Profile{
		Email:         "jane@example.com",
		EmailVerified: false,
	}}

	_, err := client.SignInWithProvider(context.Background(), adapter, "code")
	assert.ErrorIs(t, err, auth.ErrUnverifiedEmail)
}

func TestLocalClient_SignInWithProvider_UnknownUser(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t)

	adapter := &fakeAdapter{profile: auth.Profile{
		Email:         "stranger@example.com",
		EmailVerified: true,
	}}

	_, err := client.SignInWithProvider(context.Background(), adapter, "code")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

type fakeAdapter struct {
	profile auth.Profile
	gotCode string
}

func (a *fakeAdapter) ProviderID() string { return "fake" }

func (a *fakeAdapter) AuthURL(state string) (string, error) {
	return "https://fake.example.com/authorize?state=" + state, nil
}

func (a *fakeAdapter) ResolveProfile(ctx context.Context, code string) (auth.Profile, error) {
	a.gotCode = code
	return a.profile, nil
}
