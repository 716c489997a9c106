// Package cache кэширует списки задач и заметок в Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ListCache хранит результаты выборок одного вида сущностей.
//
// Ключ списка содержит поколение. InvalidateAll увеличивает поколение, поэтому
// запись, начатая до инвалидации, попадает в ключ, который больше никто не читает.
type ListCache[T any] struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// NewListCache возвращает кэш с префиксом ключей prefix (например, "tasks").
func NewListCache[T any](rdb *redis.Client, prefix string, ttl time.Duration) *ListCache[T] {
	return &ListCache[T]{rdb: rdb, ttl: ttl, prefix: prefix}
}

func (c *ListCache[T]) genKey() string {
	return c.prefix + ":gen"
}

func (c *ListCache[T]) generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, c.genKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *ListCache[T]) listKey(gen int64, axis string, key int64) string {
	return fmt.Sprintf("%s:list:%d:%s:%d", c.prefix, gen, axis, key)
}

// Get возвращает список из кэша или nil при промахе.
func (c *ListCache[T]) Get(ctx context.Context, axis string, key int64) ([]*T, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, err
	}
	b, err := c.rdb.Get(ctx, c.listKey(gen, axis, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	list := make([]*T, 0)
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Set сохраняет список под поколением gen, прочитанным до похода в хранилище.
func (c *ListCache[T]) Set(ctx context.Context, gen int64, axis string, key int64, list []*T) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.listKey(gen, axis, key), b, c.ttl).Err()
}

// Generation возвращает текущее поколение ключей.
func (c *ListCache[T]) Generation(ctx context.Context) (int64, error) {
	return c.generation(ctx)
}

// InvalidateAll делает все закэшированные списки недоступными.
// Старые ключи удаляются по TTL.
func (c *ListCache[T]) InvalidateAll(ctx context.Context) error {
	return c.rdb.Incr(ctx, c.genKey()).Err()
}

// Connect открывает клиент Redis по URL и проверяет соединение.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}
