package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"exercise-tracker/internal/domain/user"

	"go.uber.org/zap"
)

// UserCache is the subset of the Redis cache used for user lookups.
type UserCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// CachedUserRepository reads users through a cache. Users are never updated or deleted,
// so entries only expire by TTL.
type CachedUserRepository struct {
	next      user.Repository
	cache     UserCache
	namespace string
	ttl       time.Duration
	logger    *zap.Logger
}

type cachedUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// NewCachedUserRepository scopes every key under namespace, see CacheNamespace.
func NewCachedUserRepository(next user.Repository, cache UserCache, namespace string, ttl time.Duration, logger *zap.Logger) *CachedUserRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedUserRepository{next: next, cache: cache, namespace: namespace, ttl: ttl, logger: logger}
}

// CacheNamespace identifies one backing store, so a Redis shared by several deployments or
// drivers never serves a user from another store.
func CacheNamespace(appName, driver, databaseURL string) string {
	sum := sha256.Sum256([]byte(databaseURL))
	return appName + ":" + driver + ":" + hex.EncodeToString(sum[:4])
}

func UserCacheKey(namespace, id string) string {
	return namespace + ":users:id:" + id
}

func (r *CachedUserRepository) Create(ctx context.Context, username string) (user.User, error) {
	u, err := r.next.Create(ctx, username)
	if err != nil {
		return user.User{}, err
	}
	r.store(ctx, u)
	return u, nil
}

func (r *CachedUserRepository) List(ctx context.Context) ([]user.User, error) {
	return r.next.List(ctx)
}

func (r *CachedUserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	if r.cache != nil {
		var cu cachedUser
		hit, err := r.cache.GetJSON(ctx, UserCacheKey(r.namespace, id), &cu)
		if err == nil && hit {
			r.logger.Debug("user cache hit", zap.String("user_id", id))
			return user.User{ID: cu.ID, Username: cu.Username}, nil
		}
		r.logger.Debug("user cache miss", zap.String("user_id", id))
	}

	u, err := r.next.GetByID(ctx, id)
	if err != nil {
		return user.User{}, err
	}
	r.store(ctx, u)
	return u, nil
}

func (r *CachedUserRepository) store(ctx context.Context, u user.User) {
	if r.cache == nil {
		return
	}
	if err := r.cache.SetJSON(ctx, UserCacheKey(r.namespace, u.ID), cachedUser{ID: u.ID, Username: u.Username}, r.ttl); err != nil {
		r.logger.Warn("user cache write failed", zap.String("user_id", u.ID), zap.Error(err))
	}
}
