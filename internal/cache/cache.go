// Package cache хранит ключ/значение с временем жизни записей.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss ключа нет или истёк его TTL.
var ErrMiss = errors.New("cache: miss")

// Cache минимальный набор примитивов get/set/del/TTL.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Del удаляет ключ и сообщает, существовал ли он.
	Del(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}
