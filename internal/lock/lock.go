package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotAcquired блокировка уже занята другим владельцем
var ErrNotAcquired = errors.New("lock not acquired")

// Locker неблокирующая взаимоисключающая блокировка.
// TryAcquire возвращает функцию освобождения или ErrNotAcquired.
type Locker interface {
	TryAcquire(ctx context.Context) (release func(), err error)
}

// Local блокировка в пределах одного процесса
type Local struct {
	mu sync.Mutex
}

func NewLocal() *Local {
	return &Local{}
}

func (l *Local) TryAcquire(_ context.Context) (func(), error) {
	if !l.mu.TryLock() {
		return nil, ErrNotAcquired
	}
	return l.mu.Unlock, nil
}

// releaseScript удаляет ключ только если он всё ещё принадлежит владельцу
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis распределённая блокировка на SET NX PX для нескольких экземпляров бота
type Redis struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedis(client *redis.Client, key string, ttl time.Duration) *Redis {
	return &Redis{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

func (r *Redis) TryAcquire(ctx context.Context) (func(), error) {
	token := uuid.NewString()

	ok, err := r.client.SetNX(ctx, r.key, token, r.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", r.key, err)
	}
	if !ok {
		return nil, ErrNotAcquired
	}

	release := func() {
		// контекст вызывающего может быть уже отменён
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, r.client, []string{r.key}, token).Err()
	}
	return release, nil
}

// Chain захватывает все блокировки по порядку, при неудаче отпускает уже взятые
type Chain []Locker

func (c Chain) TryAcquire(ctx context.Context) (func(), error) {
	releases := make([]func(), 0, len(c))
	releaseAll := func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}

	for _, l := range c {
		release, err := l.TryAcquire(ctx)
		if err != nil {
			releaseAll()
			return nil, err
		}
		releases = append(releases, release)
	}
	return releaseAll, nil
}
