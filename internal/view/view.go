// Package view содержит чистые функции представления для консоли:
// поиск, постраничный вывод и сводку по журналам.
package view

import (
	"math"
	"strings"

	"github.com/magabrotheeeer/magazine-admin/internal/models"
)

// Page одна страница отфильтрованного списка. Page начинается с 1,
// Start и End задают полуинтервал [Start, End) в исходном списке.
type Page[T any] struct {
	Items      []T
	Page       int
	TotalPages int
	Start      int
	End        int
	Total      int
}

// Filter оставляет элементы, у которых хотя бы одно поле содержит query
// без учёта регистра. Пустой запрос возвращает список целиком.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, f := range fields(it) {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// Paginate возвращает страницу page размера size. Номер страницы
// приводится к диапазону [1, TotalPages].
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = 10
	}
	total := len(items)
	totalPages := int(math.Ceil(float64(total) / float64(size)))
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		TotalPages: totalPages,
		Start:      start,
		End:        end,
		Total:      total,
	}
}

// UserFields поля пользователя, по которым идёт поиск.
func UserFields(u models.User) []string {
	return []string{u.Name, u.Username, u.Email, u.Role}
}

// MagazineFields поля журнала, по которым идёт поиск.
func MagazineFields(m models.Magazine) []string {
	return []string{m.Name, m.Category, m.Type, m.MagzineType, m.Description}
}

// Stats сводка по списку журналов.
type Stats struct {
	Total     int
	Magazines int
	Articles  int
	Digests   int
	Free      int
	Pro       int
	Downloads int
}

// MagazineStats считает журналы по виду контента, по тарифу и суммарные скачивания.
func MagazineStats(ms []models.Magazine) Stats {
	s := Stats{Total: len(ms)}
	for _, m := range ms {
		switch m.MagzineType {
		case models.ContentMagazine:
			s.Magazines++
		case models.ContentArticle:
			s.Articles++
		case models.ContentDigest:
			s.Digests++
		}
		switch m.Type {
		case models.MagazineTypeFree:
			s.Free++
		case models.MagazineTypePro:
			s.Pro++
		}
		s.Downloads += m.Downloads
	}
	return s
}
