package slotcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrCacheMiss возвращается, когда ключа нет в кеше
	ErrCacheMiss = errors.New("slotcache: cache miss")

	// ErrCacheUnavailable возвращается при ошибках обращения к redis
	ErrCacheUnavailable = errors.New("slotcache: cache unavailable")
)

// NewClient создает и проверяет подключение к redis
func NewClient(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("slotcache: ping redis: %w", err)
	}

	return rdb, nil
}

// Cache короткоживущий кеш выдачи слотов
// Выдача слотов консультативная и терпит слегка устаревшие счетчики,
// поэтому TTL измеряется секундами, а инвалидация — best-effort
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New создает новый кеш слотов
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func slotKey(date, serviceCode string) string {
	return fmt.Sprintf("slots:%s:%s", date, serviceCode)
}

// Get читает закешированную выдачу слотов в dest
// Возвращает ErrCacheMiss, если ключа нет
func (c *Cache) Get(ctx context.Context, date, serviceCode string, dest interface{}) error {
	raw, err := c.client.Get(ctx, slotKey(date, serviceCode)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("%w: get: %v", ErrCacheUnavailable, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%w: unmarshal: %v", ErrCacheUnavailable, err)
	}

	return nil
}

// Set сохраняет выдачу слотов с коротким TTL
func (c *Cache) Set(ctx context.Context, date, serviceCode string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrCacheUnavailable, err)
	}

	if err := c.client.Set(ctx, slotKey(date, serviceCode), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set: %v", ErrCacheUnavailable, err)
	}

	return nil
}

// InvalidateService сбрасывает кеш слотов услуги на дату
func (c *Cache) InvalidateService(ctx context.Context, date, serviceCode string) error {
	if err := c.client.Del(ctx, slotKey(date, serviceCode)).Err(); err != nil {
		return fmt.Errorf("%w: del: %v", ErrCacheUnavailable, err)
	}
	return nil
}

// InvalidateDate сбрасывает кеш слотов всех услуг на дату
// Используется при закрытии слота без привязки к услуге
func (c *Cache) InvalidateDate(ctx context.Context, date string) error {
	iter := c.client.Scan(ctx, 0, slotKey(date, "*"), 100).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("%w: scan: %v", ErrCacheUnavailable, err)
	}

	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: del: %v", ErrCacheUnavailable, err)
	}
	return nil
}
