// Package cache содержит подключение к Redis и хранилище категорий на нём.
package cache

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/magazine-admin/internal/categories"
	"github.com/magabrotheeeer/magazine-admin/internal/config"
)

const (
	listKey   = "categories:list"
	setKey    = "categories:set"
	seededKey = "categories:seeded"

	maxTxRetries = 5
)

// Cache подключение к Redis.
type Cache struct {
	Db *redis.Client
}

// InitServer подключается к Redis и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Cache, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{Db: db}, nil
}

// Close закрывает соединение.
func (c *Cache) Close() error {
	return c.Db.Close()
}

// CategoryStore категории в Redis: LIST хранит порядок, SET отвечает за уникальность.
// Мутации выполняются в транзакции под WATCH обоих ключей.
type CategoryStore struct {
	db *redis.Client
}

// NewCategoryStore создаёт хранилище и засевает его seed, если оно ещё не засеяно.
// Флаг засева пишется в той же транзакции, что и сами категории.
func NewCategoryStore(ctx context.Context, c *Cache, seed []string) (*CategoryStore, error) {
	const op = "cache.NewCategoryStore"
	s := &CategoryStore{db: c.Db}

	txf := func(tx *redis.Tx) error {
		seeded, err := tx.Exists(ctx, seededKey).Result()
		if err != nil || seeded > 0 {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, listKey, setKey)
			if len(seed) > 0 {
				pipe.RPush(ctx, listKey, toAny(seed)...)
				pipe.SAdd(ctx, setKey, toAny(seed)...)
			}
			pipe.Set(ctx, seededKey, 1, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := c.Db.Watch(ctx, txf, seededKey, listKey, setKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: seed: %w", op, err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("%s: seed: too many concurrent updates", op)
}

func (s *CategoryStore) List(ctx context.Context) ([]string, error) {
	list, err := s.db.LRange(ctx, listKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("cache.CategoryStore.List: %w", err)
	}
	return list, nil
}

func (s *CategoryStore) Add(ctx context.Context, name string) ([]string, error) {
	return s.mutate(ctx, "cache.CategoryStore.Add", func(tx *redis.Tx) (func(redis.Pipeliner), error) {
		exists, err := tx.SIsMember(ctx, setKey, name).Result()
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, categories.ErrExists
		}
		return func(pipe redis.Pipeliner) {
			pipe.RPush(ctx, listKey, name)
			pipe.SAdd(ctx, setKey, name)
		}, nil
	})
}

func (s *CategoryStore) Rename(ctx context.Context, oldName, newName string) ([]string, error) {
	return s.mutate(ctx, "cache.CategoryStore.Rename", func(tx *redis.Tx) (func(redis.Pipeliner), error) {
		list, err := tx.LRange(ctx, listKey, 0, -1).Result()
		if err != nil {
			return nil, err
		}
		idx := slices.Index(list, oldName)
		if idx < 0 {
			return nil, categories.ErrNotFound
		}
		if oldName != newName && slices.Contains(list, newName) {
			return nil, categories.ErrExists
		}
		return func(pipe redis.Pipeliner) {
			pipe.LSet(ctx, listKey, int64(idx), newName)
			pipe.SRem(ctx, setKey, oldName)
			pipe.SAdd(ctx, setKey, newName)
		}, nil
	})
}

func (s *CategoryStore) Delete(ctx context.Context, name string) ([]string, error) {
	return s.mutate(ctx, "cache.CategoryStore.Delete", func(tx *redis.Tx) (func(redis.Pipeliner), error) {
		exists, err := tx.SIsMember(ctx, setKey, name).Result()
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, categories.ErrNotFound
		}
		return func(pipe redis.Pipeliner) {
			pipe.LRem(ctx, listKey, 1, name)
			pipe.SRem(ctx, setKey, name)
		}, nil
	})
}

func (s *CategoryStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx).Err()
}

// mutate выполняет check-then-write под WATCH и повторяет при конфликте.
// check читает состояние и возвращает команды записи.
func (s *CategoryStore) mutate(ctx context.Context, op string, check func(tx *redis.Tx) (func(redis.Pipeliner), error)) ([]string, error) {
	txf := func(tx *redis.Tx) error {
		write, err := check(tx)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			write(pipe)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.db.Watch(ctx, txf, listKey, setKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, categories.ErrExists) || errors.Is(err, categories.ErrNotFound) {
			return nil, err
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return s.List(ctx)
	}
	return nil, fmt.Errorf("%s: too many concurrent updates", op)
}

func toAny(items []string) []any {
	out := make([]any, len(items))
	for i, v := range items {
		out[i] = v
	}
	return out
}
