package identity

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/gatekit/gatekit/pkg/broadcast"
	"github.com/gatekit/gatekit/svc/auth"
)

const defaultResolveTimeout = 10 * time.Second

// Manager maintains the authorization state for the signed-in user.
//
// It subscribes to an auth.Client, resolves the user's roles and paths on
// start and again on every auth event, and exposes the result as an immutable
// Snapshot. Signing out, or any failure to resolve, collapses the path set to
// empty so that access checks deny by default. Every state change is also
// published to subscribers.
type Manager struct {
	client         auth.Client
	resolver       *Resolver
	log            *slog.Logger
	updates        broadcast.Broadcaster[Snapshot]
	resolveTimeout time.Duration

	mu      sync.RWMutex
	snap    Snapshot
	started bool
	closed  bool

	refreshCh chan struct{}
	cancel    context.CancelFunc
	done      chan struct{}
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithSnapshotBroadcaster replaces the default in-memory snapshot
// broadcaster, e.g. with a Redis-backed one.
func WithSnapshotBroadcaster(bc broadcast.Broadcaster[Snapshot]) ManagerOption {
	return func(m *Manager) {
		if bc != nil {
			m.updates = bc
		}
	}
}

// WithResolveTimeout bounds each resolution round trip to the store.
func WithResolveTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d > 0 {
			m.resolveTimeout = d
		}
	}
}

// NewManager creates a Manager over the given auth client and role store.
// Call Start to perform the initial resolution and begin following auth
// events.
func NewManager(client auth.Client, store RoleStore, opts ...ManagerOption) *Manager {
	m := &Manager{
		client:         client,
		resolver:       NewResolver(store),
		log:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		updates:        broadcast.NewMemoryBroadcaster[Snapshot](16),
		resolveTimeout: defaultResolveTimeout,
		refreshCh:      make(chan struct{}, 1),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Start resolves the current user's authorization state and begins following
// auth events. It returns once the initial state is settled; subsequent
// events are processed on a background goroutine until Close.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.started {
		m.mu.Unlock()
		return ErrAlreadyStarted
	}
	m.started = true

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	m.cancel = cancel
	m.done = make(chan struct{})
	m.mu.Unlock()

	// Subscribe before the initial resolution so no event emitted in
	// between is missed. The forwarder drains the subscription into a
	// single-slot channel, so a long resolution never backs it up.
	sub := m.client.Subscribe(loopCtx)
	events := make(chan auth.Event, 1)
	go m.forward(loopCtx, sub, events)

	m.refresh(ctx)

	go m.loop(loopCtx, events)
	return nil
}

// Snapshot returns the current authorization state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap
}

// Subscribe returns a subscriber delivering every subsequent snapshot change.
func (m *Manager) Subscribe(ctx context.Context) broadcast.Subscriber[Snapshot] {
	return m.updates.Subscribe(ctx)
}

// Refresh asks the event loop to re-resolve the current user's authorization
// state, e.g. after role assignments changed out of band. It returns without
// waiting; the update becomes observable through Snapshot or Subscribe.
// Before Start and after Close it is a no-op.
func (m *Manager) Refresh(ctx context.Context) {
	m.mu.RLock()
	running := m.started && !m.closed
	m.mu.RUnlock()

	if !running {
		return
	}

	select {
	case m.refreshCh <- struct{}{}:
	default: // a refresh is already pending
	}
}

// Close stops following auth events and closes all snapshot subscribers.
// Close is idempotent.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	cancel := m.cancel
	done := m.done
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
	return m.updates.Close()
}

// loop is the only snapshot writer after Start returns. It processes auth
// events and refresh requests sequentially, so a sign-out can never be
// overwritten by an earlier event's resolution finishing late.
func (m *Manager) loop(ctx context.Context, events <-chan auth.Event) {
	defer close(m.done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.refreshCh:
			m.refresh(ctx)
		case event, ok := <-events:
			if !ok {
				return
			}
			m.handle(ctx, event)
		}
	}
}

// forward drains the auth subscription promptly and coalesces pending events
// into a single slot. Only the newest pending event matters because handling
// re-derives the full state from it; draining without blocking keeps the
// broadcaster from ever treating the manager as a slow consumer.
func (m *Manager) forward(ctx context.Context, sub broadcast.Subscriber[auth.Event], events chan auth.Event) {
	defer close(events)
	defer func() { _ = sub.Close() }()

	// Reopens without a single delivery in between mean the auth client
	// shut down, not a transient drop.
	const maxReopens = 3

	reopens := 0
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Receive(ctx):
			if !ok {
				if ctx.Err() != nil {
					return
				}
				reopens++
				if reopens > maxReopens {
					m.log.ErrorContext(ctx, "auth event stream closed")
					return
				}
				sub = m.client.Subscribe(ctx)
				// Events may have been missed in between; re-derive from
				// the current auth state.
				m.push(events, auth.Event{Type: auth.EventUserUpdated, At: time.Now().UTC()})
				continue
			}
			reopens = 0
			m.push(events, msg.Data)
		}
	}
}

// push delivers an event into the single-slot channel, displacing an
// undelivered older one.
func (m *Manager) push(events chan auth.Event, event auth.Event) {
	for {
		select {
		case events <- event:
			return
		default:
		}
		select {
		case <-events:
		default:
		}
	}
}

func (m *Manager) handle(ctx context.Context, event auth.Event) {
	switch event.Type {
	case auth.EventSignedOut:
		m.setSnapshot(ctx, Snapshot{})
		m.log.InfoContext(ctx, "authorization state cleared on sign-out")
	default:
		if event.User != nil {
			m.resolve(ctx, event.User)
			return
		}
		m.refresh(ctx)
	}
}

// refresh fetches the current user from the auth client and resolves their
// state. A signed-out answer clears the state; any other failure clears it
// too, so checks deny until the next successful resolution.
func (m *Manager) refresh(ctx context.Context) {
	user, err := m.client.CurrentUser(ctx)
	if err != nil {
		if !errors.Is(err, auth.ErrNotAuthenticated) {
			m.log.ErrorContext(ctx, "failed to fetch current user", slog.Any("error", err))
		}
		m.setSnapshot(ctx, Snapshot{})
		return
	}
	m.resolve(ctx, user)
}

// resolve derives the user's roles and paths. While resolution is in flight
// the snapshot carries Loading=true with an empty path set, so concurrent
// checks deny rather than answer from stale state.
func (m *Manager) resolve(ctx context.Context, user *auth.User) {
	m.setSnapshot(ctx, Snapshot{User: user, Loading: true})

	rctx, cancel := context.WithTimeout(ctx, m.resolveTimeout)
	defer cancel()

	res, err := m.resolver.Resolve(rctx, user.ID)
	if err != nil {
		m.log.ErrorContext(ctx, "failed to resolve authorization state",
			slog.String("user_id", user.ID.String()),
			slog.Any("error", err))
		m.setSnapshot(ctx, Snapshot{User: user})
		return
	}

	m.setSnapshot(ctx, Snapshot{User: user, Roles: res.Roles, Paths: res.Paths})
	m.log.InfoContext(ctx, "authorization state resolved",
		slog.String("user_id", user.ID.String()),
		slog.Int("roles", len(res.Roles)),
		slog.Int("paths", res.Paths.Len()))
}

func (m *Manager) setSnapshot(ctx context.Context, snap Snapshot) {
	m.mu.Lock()
	m.snap = snap
	m.mu.Unlock()

	if err := m.updates.Broadcast(ctx, broadcast.Message[Snapshot]{Data: snap}); err != nil {
		m.log.ErrorContext(ctx, "failed to broadcast snapshot", slog.Any("error", err))
	}
}
