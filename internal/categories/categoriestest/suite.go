// Package categoriestest содержит общий набор проверок для хранилищ категорий.
package categoriestest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/magazine-admin/internal/categories"
)

// Run проверяет инварианты хранилища. newStore должен возвращать хранилище,
// засеянное categories.Defaults.
func Run(t *testing.T, newStore func(t *testing.T) categories.Store) {
	ctx := context.Background()

	t.Run("seeded with defaults", func(t *testing.T) {
		list, err := newStore(t).List(ctx)
		require.NoError(t, err)
		assert.Equal(t, categories.Defaults, list)
	})

	t.Run("add then list contains name once", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Add(ctx, "Gaming")
		require.NoError(t, err)

		list, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count(list, "Gaming"))
		assert.Equal(t, "Gaming", list[len(list)-1])
	})

	t.Run("duplicate rejected and list unchanged", func(t *testing.T) {
		s := newStore(t)
		before, err := s.List(ctx)
		require.NoError(t, err)

		_, err = s.Add(ctx, "Arts")
		assert.ErrorIs(t, err, categories.ErrExists)

		after, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("delete removes", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Add(ctx, "Gaming")
		require.NoError(t, err)
		list, err := s.Delete(ctx, "Gaming")
		require.NoError(t, err)
		assert.NotContains(t, list, "Gaming")

		_, err = s.Delete(ctx, "Gaming")
		assert.ErrorIs(t, err, categories.ErrNotFound)
	})

	t.Run("rename keeps position", func(t *testing.T) {
		s := newStore(t)
		list, err := s.Rename(ctx, "Travel", "Tourism")
		require.NoError(t, err)
		assert.Equal(t, "Tourism", list[5])
		assert.NotContains(t, list, "Travel")
		assert.Len(t, list, len(categories.Defaults))
	})

	t.Run("rename conflicts", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Rename(ctx, "Travel", "Food")
		assert.ErrorIs(t, err, categories.ErrExists)

		_, err = s.Rename(ctx, "Nope", "Other")
		assert.ErrorIs(t, err, categories.ErrNotFound)

		list, err := s.Rename(ctx, "Food", "Food")
		require.NoError(t, err)
		assert.Equal(t, categories.Defaults, list)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, newStore(t).Ping(ctx))
	})
}

func count(list []string, name string) int {
	n := 0
	for _, v := range list {
		if v == name {
			n++
		}
	}
	return n
}
