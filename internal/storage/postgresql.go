// Package storage реализует хранилище категорий на PostgreSQL.
// Схема создаётся миграциями из каталога migrations.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/magazine-admin/internal/categories"
)

const uniqueViolation = "23505"

// Storage инкапсулирует соединение с PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его.
func New(ctx context.Context, storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{DB: db}, nil
}

// CheckDatabaseReady проверяет, что миграции применены.
func CheckDatabaseReady(ctx context.Context, storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'categories'
    )`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("storage.CheckDatabaseReady: %w", err)
	}
	if !exists {
		return errors.New("storage.CheckDatabaseReady: required table categories missing")
	}
	return nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// List возвращает категории в порядке добавления.
func (s *Storage) List(ctx context.Context) ([]string, error) {
	const op = "storage.List"

	rows, err := s.DB.QueryContext(ctx, `SELECT name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	list := make([]string, 0, len(categories.Defaults))
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		list = append(list, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

func (s *Storage) Add(ctx context.Context, name string) ([]string, error) {
	const op = "storage.Add"

	_, err := s.DB.ExecContext(ctx, `INSERT INTO categories (name) VALUES ($1)`, name)
	if err != nil {
		return nil, mapErr(op, err)
	}
	return s.List(ctx)
}

// Rename сохраняет позицию категории в списке.
func (s *Storage) Rename(ctx context.Context, oldName, newName string) ([]string, error) {
	const op = "storage.Rename"

	res, err := s.DB.ExecContext(ctx, `UPDATE categories SET name = $2 WHERE name = $1`, oldName, newName)
	if err != nil {
		return nil, mapErr(op, err)
	}
	if err := affected(op, res); err != nil {
		return nil, err
	}
	return s.List(ctx)
}

func (s *Storage) Delete(ctx context.Context, name string) ([]string, error) {
	const op = "storage.Delete"

	res, err := s.DB.ExecContext(ctx, `DELETE FROM categories WHERE name = $1`, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := affected(op, res); err != nil {
		return nil, err
	}
	return s.List(ctx)
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func affected(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return categories.ErrNotFound
	}
	return nil
}

func mapErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return categories.ErrExists
	}
	return fmt.Errorf("%s: %w", op, err)
}
