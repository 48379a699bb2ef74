package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisBroadcaster distributes messages across process boundaries through a
// Redis pub/sub channel. Payloads are JSON-encoded, so T must marshal cleanly.
//
// Each Subscribe call opens its own Redis subscription; messages published on
// any instance reach subscribers on all instances.
type RedisBroadcaster[T any] struct {
	client     redis.UniversalClient
	channel    string
	bufferSize int
	log        *slog.Logger

	mu     sync.Mutex
	subs   map[*redisSubscriber[T]]struct{}
	closed bool
}

// RedisOption configures a RedisBroadcaster.
type RedisOption func(*redisOptions)

type redisOptions struct {
	bufferSize int
	log        *slog.Logger
}

// WithBufferSize sets the per-subscriber channel buffer. Defaults to 16.
func WithBufferSize(n int) RedisOption {
	return func(o *redisOptions) {
		if n > 0 {
			o.bufferSize = n
		}
	}
}

// WithLogger sets the logger used for decode failures on the receive path.
func WithLogger(log *slog.Logger) RedisOption {
	return func(o *redisOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// NewRedisBroadcaster creates a broadcaster publishing to the given channel.
func NewRedisBroadcaster[T any](client redis.UniversalClient, channel string, opts ...RedisOption) *RedisBroadcaster[T] {
	o := &redisOptions{
		bufferSize: 16,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	return &RedisBroadcaster[T]{
		client:     client,
		channel:    channel,
		bufferSize: o.bufferSize,
		log:        o.log,
		subs:       make(map[*redisSubscriber[T]]struct{}),
	}
}

// Subscribe opens a Redis subscription on the broadcaster's channel.
// The subscription is closed when the context is cancelled.
func (b *RedisBroadcaster[T]) Subscribe(ctx context.Context) Subscriber[T] {
	sub := &redisSubscriber[T]{
		ch: make(chan Message[T], b.bufferSize),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(sub.ch)
		sub.closed = true
		return sub
	}
	sub.pubsub = b.client.Subscribe(ctx, b.channel)
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	go b.receiveLoop(sub)

	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			b.unsubscribe(sub)
		}()
	}

	return sub
}

// Broadcast publishes a JSON-encoded message to the Redis channel.
func (b *RedisBroadcaster[T]) Broadcast(ctx context.Context, msg Message[T]) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()

	payload, err := json.Marshal(msg.Data)
	if err != nil {
		return errors.Join(ErrEncodeMessage, err)
	}

	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return errors.Join(ErrPublishFailed, err)
	}
	return nil
}

// Close shuts the broadcaster down and closes all subscriptions.
func (b *RedisBroadcaster[T]) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	subs := make([]*redisSubscriber[T], 0, len(b.subs))
	for sub := range b.subs {
		subs = append(subs, sub)
	}
	clear(b.subs)
	b.mu.Unlock()

	for _, sub := range subs {
		_ = sub.Close()
	}
	return nil
}

// receiveLoop decodes incoming Redis payloads and forwards them to the
// subscriber channel. It exits when the underlying pub/sub is closed.
func (b *RedisBroadcaster[T]) receiveLoop(sub *redisSubscriber[T]) {
	for raw := range sub.pubsub.Channel() {
		var data T
		if err := json.Unmarshal([]byte(raw.Payload), &data); err != nil {
			b.log.Error("broadcast: dropping undecodable message",
				slog.String("channel", b.channel),
				slog.Any("error", err))
			continue
		}
		sub.send(Message[T]{Data: data})
	}
	sub.closeChannel()
}

func (b *RedisBroadcaster[T]) unsubscribe(sub *redisSubscriber[T]) {
	b.mu.Lock()
	delete(b.subs, sub)
	b.mu.Unlock()
	_ = sub.Close()
}

type redisSubscriber[T any] struct {
	ch     chan Message[T]
	pubsub *redis.PubSub
	mu     sync.Mutex
	closed bool
}

func (s *redisSubscriber[T]) Receive(ctx context.Context) <-chan Message[T] {
	return s.ch
}

// Close terminates the Redis subscription. The receive channel closes once
// the forwarding loop drains.
func (s *redisSubscriber[T]) Close() error {
	s.mu.Lock()
	pubsub := s.pubsub
	s.pubsub = nil
	s.mu.Unlock()

	if pubsub != nil {
		return pubsub.Close()
	}
	return nil
}

func (s *redisSubscriber[T]) send(msg Message[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- msg:
		return true
	default:
		return false
	}
}

func (s *redisSubscriber[T]) closeChannel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
}
