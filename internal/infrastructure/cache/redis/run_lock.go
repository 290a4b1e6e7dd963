// internal/infrastructure/cache/redis/run_lock.go
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrLockHeld - другой прогон уже держит блокировку
var ErrLockHeld = errors.New("run lock is held by another invocation")

const keyPrefix = "goblin:"

// Снимаем блокировку, только если она все еще наша
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RunLock не дает двум запущенным по расписанию прогонам отправить уведомление одновременно
type RunLock struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

// NewRunLock создает блокировку с ключом goblin:lock:<name>
func NewRunLock(client redis.Cmdable, name string, ttl time.Duration) *RunLock {
	return &RunLock{
		client: client,
		key:    LockKey(name),
		ttl:    ttl,
	}
}

// LockKey возвращает полный ключ блокировки
func LockKey(name string) string {
	return keyPrefix + "lock:" + name
}

// Key возвращает ключ блокировки
func (l *RunLock) Key() string {
	return l.key
}

// Acquire ставит блокировку с токеном прогона
func (l *RunLock) Acquire(ctx context.Context, token string) error {
	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire run lock %s: %w", l.key, err)
	}
	if !ok {
		return ErrLockHeld
	}
	return nil
}

// Release снимает блокировку, если она принадлежит token
func (l *RunLock) Release(ctx context.Context, token string) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release run lock %s: %w", l.key, err)
	}
	return nil
}
