// Package categories управляет плоским списком категорий журналов.
//
// Хранилище выбирается конфигом: память процесса (не переживает
// перезапуск и не разделяется между экземплярами), Redis или PostgreSQL.
// Инварианты для всех хранилищ: имена уникальны и не пусты после trim,
// порядок совпадает с порядком добавления, переименование сохраняет позицию.
package categories

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/magazine-admin/internal/lib/sl"
)

var (
	// ErrEmptyName имя пусто после trim.
	ErrEmptyName = errors.New("category name cannot be empty")
	// ErrExists категория с таким именем уже есть.
	ErrExists = errors.New("category already exists")
	// ErrNotFound категории нет.
	ErrNotFound = errors.New("category not found")
)

// Defaults начальный список категорий.
var Defaults = []string{
	"Technology",
	"Fashion",
	"Sports",
	"Health",
	"Business",
	"Travel",
	"Food",
	"Science",
	"Arts",
	"Environment",
	"Finance",
	"Education",
	"Lifestyle",
	"Automotive",
	"Home",
	"other",
}

// Store хранилище категорий. Имена на входе уже обрезаны и не пусты.
// Каждая мутация возвращает полный список после изменения.
type Store interface {
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, name string) ([]string, error)
	Rename(ctx context.Context, oldName, newName string) ([]string, error)
	Delete(ctx context.Context, name string) ([]string, error)
	Ping(ctx context.Context) error
}

// Publisher публикует события аудита.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Event событие изменения категории.
type Event struct {
	Action  string `json:"action"`
	Name    string `json:"name"`
	OldName string `json:"oldName,omitempty"`
}

// Service проверяет имена и публикует события поверх Store.
type Service struct {
	store Store
	pub   Publisher
	log   *slog.Logger
}

// NewService создаёт сервис категорий.
func NewService(store Store, pub Publisher, log *slog.Logger) *Service {
	return &Service{store: store, pub: pub, log: log}
}

// List возвращает все категории.
func (s *Service) List(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}

// Add добавляет категорию.
func (s *Service) Add(ctx context.Context, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	list, err := s.store.Add(ctx, name)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "category.created", Event{Action: "created", Name: name})
	return list, nil
}

// Rename переименовывает категорию. Переименование в то же имя не ошибка.
func (s *Service) Rename(ctx context.Context, oldName, newName string) ([]string, error) {
	oldName, newName = strings.TrimSpace(oldName), strings.TrimSpace(newName)
	if oldName == "" || newName == "" {
		return nil, ErrEmptyName
	}
	list, err := s.store.Rename(ctx, oldName, newName)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "category.renamed", Event{Action: "renamed", Name: newName, OldName: oldName})
	return list, nil
}

// Delete удаляет категорию.
func (s *Service) Delete(ctx context.Context, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	list, err := s.store.Delete(ctx, name)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "category.deleted", Event{Action: "deleted", Name: name})
	return list, nil
}

// Ping проверяет хранилище.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) publish(ctx context.Context, key string, ev Event) {
	if s.pub == nil {
		return
	}
	if err := s.pub.Publish(ctx, key, ev); err != nil {
		s.log.Warn("failed to publish category event", slog.String("routing_key", key), sl.Err(err))
	}
}
