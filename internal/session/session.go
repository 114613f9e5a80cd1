// Package session resolves an authenticated uid to its usuario document.
// Resolution is asynchronous: Resolve returns a channel that delivers a
// single result, and Await races that channel against a timeout so route
// guards never hang on a slow identity load.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"amazonia/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	userCacheKeyPrefix = "usuario:"
	userCacheTTL       = 15 * time.Minute

	// DefaultTimeout bounds how long a guard waits for identity
	// resolution before treating the request as unauthenticated.
	DefaultTimeout = 3 * time.Second
)

var (
	ErrTimeout         = errors.New("identity resolution timed out")
	ErrUnknownIdentity = errors.New("no usuario document for this identity")
)

// UserSource is the subset of the user repository the resolver needs.
type UserSource interface {
	FindByUID(uid string) (*models.User, error)
}

type Result struct {
	User *models.User
	Err  error
}

// Resolver loads usuario documents with a redis cache in front of the
// store. A nil redis client disables caching.
type Resolver struct {
	users UserSource
	redis *redis.Client
}

func NewResolver(users UserSource, redisClient *redis.Client) *Resolver {
	return &Resolver{users: users, redis: redisClient}
}

// Resolve starts loading the usuario document and returns a channel that
// receives exactly one Result. The channel is buffered so an abandoned
// resolution does not leak its goroutine.
func (r *Resolver) Resolve(ctx context.Context, uid string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		user, err := r.lookup(ctx, uid)
		ch <- Result{User: user, Err: err}
	}()
	return ch
}

// Await resolves uid, giving up after timeout. Timeout and cancellation
// both surface as ErrTimeout: the caller treats the request as
// unauthenticated either way.
func (r *Resolver) Await(ctx context.Context, uid string, timeout time.Duration) (*models.User, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-r.Resolve(ctx, uid):
		return res.User, res.Err
	case <-timer.C:
		return nil, ErrTimeout
	case <-ctx.Done():
		return nil, ErrTimeout
	}
}

// Invalidate drops the cached usuario document. Called on logout and on
// role changes so stale roles never pass a guard.
func (r *Resolver) Invalidate(ctx context.Context, uid string) {
	if r.redis == nil {
		return
	}
	if err := r.redis.Del(ctx, userCacheKeyPrefix+uid).Err(); err != nil {
		zap.S().Warnf("Failed to invalidate session cache for %s: %v", uid, err)
	}
}

func (r *Resolver) lookup(ctx context.Context, uid string) (*models.User, error) {
	if r.redis != nil {
		cached, err := r.redis.Get(ctx, userCacheKeyPrefix+uid).Result()
		if err == nil {
			var user models.User
			if err := json.Unmarshal([]byte(cached), &user); err == nil {
				return &user, nil
			}
		} else if err != redis.Nil {
			zap.S().Warnf("Session cache read failed for %s: %v", uid, err)
		}
	}

	user, err := r.users.FindByUID(uid)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIdentity, uid)
	}

	if r.redis != nil {
		if data, err := json.Marshal(user); err == nil {
			if err := r.redis.Set(ctx, userCacheKeyPrefix+uid, data, userCacheTTL).Err(); err != nil {
				zap.S().Warnf("Session cache write failed for %s: %v", uid, err)
			}
		}
	}
	return user, nil
}
