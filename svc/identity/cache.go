package identity

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/gatekit/gatekit/pkg/cache"
)

const (
	defaultCacheSize = 1024
	defaultCacheTTL  = 5 * time.Minute

	rolesKeyPrefix = "gatekit:user_roles:"
	pathsKeyPrefix = "gatekit:role_paths:"
)

// CachedStore wraps a RoleStore with an in-process LRU tier and an optional
// shared Redis tier, so resolution does not hit the backing store on every
// auth event.
//
// The LRU tier has no expiry; callers must Invalidate when assignments
// change. The Redis tier expires entries after the configured TTL, bounding
// staleness across instances.
type CachedStore struct {
	inner RoleStore
	roles *cache.LRU[uuid.UUID, []string]
	paths *cache.LRU[string, []string]
	rdb   redis.UniversalClient
	ttl   time.Duration
	log   *slog.Logger
}

// CacheOption configures a CachedStore.
type CacheOption func(*CachedStore)

// WithCacheSize sets the capacity of each in-process LRU tier.
func WithCacheSize(n int) CacheOption {
	return func(s *CachedStore) {
		if n > 0 {
			s.roles = cache.NewLRU[uuid.UUID, []string](n)
			s.paths = cache.NewLRU[string, []string](n)
		}
	}
}

// WithRedisTier adds a shared Redis cache tier consulted on LRU misses.
func WithRedisTier(rdb redis.UniversalClient) CacheOption {
	return func(s *CachedStore) {
		s.rdb = rdb
	}
}

// WithCacheTTL sets the expiry of Redis tier entries.
func WithCacheTTL(d time.Duration) CacheOption {
	return func(s *CachedStore) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithCacheLogger sets a custom logger for cache tier failures.
func WithCacheLogger(log *slog.Logger) CacheOption {
	return func(s *CachedStore) {
		if log != nil {
			s.log = log
		}
	}
}

// NewCachedStore wraps the given store with caching tiers.
func NewCachedStore(inner RoleStore, opts ...CacheOption) *CachedStore {
	s := &CachedStore{
		inner: inner,
		roles: cache.NewLRU[uuid.UUID, []string](defaultCacheSize),
		paths: cache.NewLRU[string, []string](defaultCacheSize),
		ttl:   defaultCacheTTL,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *CachedStore) UserRoles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	if roles, ok := s.roles.Get(userID); ok {
		return slices.Clone(roles), nil
	}

	redisKey := rolesKeyPrefix + userID.String()
	if roles, ok := s.redisGet(ctx, redisKey); ok {
		s.roles.Set(userID, roles)
		return slices.Clone(roles), nil
	}

	roles, err := s.inner.UserRoles(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.roles.Set(userID, roles)
	s.redisSet(ctx, redisKey, roles)
	return slices.Clone(roles), nil
}

func (s *CachedStore) PathsForRoles(ctx context.Context, roles []string) ([]string, error) {
	if len(roles) == 0 {
		return nil, nil
	}

	key := pathsCacheKey(roles)
	if paths, ok := s.paths.Get(key); ok {
		return slices.Clone(paths), nil
	}

	redisKey := pathsKeyPrefix + key
	if paths, ok := s.redisGet(ctx, redisKey); ok {
		s.paths.Set(key, paths)
		return slices.Clone(paths), nil
	}

	paths, err := s.inner.PathsForRoles(ctx, roles)
	if err != nil {
		return nil, err
	}

	s.paths.Set(key, paths)
	s.redisSet(ctx, redisKey, paths)
	return slices.Clone(paths), nil
}

// Invalidate drops the cached roles for a user. Call it after changing the
// user's assignments. Path entries are left to expire since they are keyed
// by role combination, not by user.
func (s *CachedStore) Invalidate(ctx context.Context, userID uuid.UUID) {
	s.roles.Delete(userID)

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, rolesKeyPrefix+userID.String()).Err(); err != nil {
			s.log.ErrorContext(ctx, "failed to invalidate redis cache entry",
				slog.String("user_id", userID.String()),
				slog.Any("error", err))
		}
	}
}

// InvalidateRoles drops all cached role-to-paths entries. Call it after
// changing role definitions.
func (s *CachedStore) InvalidateRoles(ctx context.Context) {
	s.paths.Purge()

	if s.rdb == nil {
		return
	}

	iter := s.rdb.Scan(ctx, 0, pathsKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			s.log.ErrorContext(ctx, "failed to invalidate redis cache entry",
				slog.String("key", iter.Val()),
				slog.Any("error", err))
		}
	}
	if err := iter.Err(); err != nil {
		s.log.ErrorContext(ctx, "failed to scan redis cache entries", slog.Any("error", err))
	}
}

func (s *CachedStore) redisGet(ctx context.Context, key string) ([]string, bool) {
	if s.rdb == nil {
		return nil, false
	}

	payload, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.ErrorContext(ctx, "redis cache read failed",
				slog.String("key", key), slog.Any("error", err))
		}
		return nil, false
	}

	var values []string
	if err := json.Unmarshal(payload, &values); err != nil {
		s.log.ErrorContext(ctx, "corrupt redis cache entry",
			slog.String("key", key), slog.Any("error", err))
		return nil, false
	}
	return values, true
}

func (s *CachedStore) redisSet(ctx context.Context, key string, values []string) {
	if s.rdb == nil {
		return
	}

	payload, err := json.Marshal(values)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to encode redis cache entry",
			slog.String("key", key), slog.Any("error", err))
		return
	}

	if err := s.rdb.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		s.log.ErrorContext(ctx, "redis cache write failed",
			slog.String("key", key), slog.Any("error", err))
	}
}

// pathsCacheKey builds a stable key for a role combination regardless of
// assignment order.
func pathsCacheKey(roles []string) string {
	sorted := slices.Clone(roles)
	slices.Sort(sorted)
	return strings.Join(sorted, ",")
}

var _ RoleStore = (*CachedStore)(nil)
