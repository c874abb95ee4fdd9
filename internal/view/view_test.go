package view

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/magazine-admin/internal/models"
)

func users(n int) []models.User {
	out := make([]models.User, n)
	for i := range out {
		out[i] = models.User{UID: float64(i + 1), Name: fmt.Sprintf("user-%02d", i+1)}
	}
	return out
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		page      int
		size      int
		wantLen   int
		wantPage  int
		wantPages int
		wantStart int
	}{
		{name: "первая страница", total: 23, page: 1, size: 10, wantLen: 10, wantPage: 1, wantPages: 3, wantStart: 0},
		{name: "последняя неполная страница", total: 23, page: 3, size: 10, wantLen: 3, wantPage: 3, wantPages: 3, wantStart: 20},
		{name: "номер больше числа страниц", total: 23, page: 9, size: 10, wantLen: 3, wantPage: 3, wantPages: 3, wantStart: 20},
		{name: "номер меньше единицы", total: 23, page: 0, size: 10, wantLen: 10, wantPage: 1, wantPages: 3, wantStart: 0},
		{name: "пустой список", total: 0, page: 1, size: 10, wantLen: 0, wantPage: 1, wantPages: 0, wantStart: 0},
		{name: "ровно одна страница", total: 10, page: 1, size: 10, wantLen: 10, wantPage: 1, wantPages: 1, wantStart: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(users(tt.total), tt.page, tt.size)
			assert.Len(t, p.Items, tt.wantLen)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.wantStart, p.Start)
			assert.Equal(t, tt.total, p.Total)
		})
	}
}

func TestPaginate_LastPageItems(t *testing.T) {
	p := Paginate(users(23), 3, 10)
	require.Len(t, p.Items, 3)
	assert.Equal(t, "user-21", p.Items[0].Name)
	assert.Equal(t, "user-23", p.Items[2].Name)
	assert.Equal(t, 23, p.End)
}

func TestFilter_Users(t *testing.T) {
	list := []models.User{
		{Name: "Alice", Username: "alice", Email: "alice@example.test", Role: "admin"},
		{Name: "Bob", Username: "bobby", Email: "bob@example.test", Role: "user"},
		{Name: "Carol", Username: "", Email: "", Role: ""},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "пустой запрос", query: "  ", want: []string{"Alice", "Bob", "Carol"}},
		{name: "без учёта регистра", query: "ALI", want: []string{"Alice"}},
		{name: "по роли", query: "admin", want: []string{"Alice"}},
		{name: "по почте", query: "example.test", want: []string{"Alice", "Bob"}},
		{name: "нет совпадений", query: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(list, tt.query, UserFields)
			names := make([]string, 0, len(got))
			for _, u := range got {
				names = append(names, u.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFilter_Magazines(t *testing.T) {
	list := []models.Magazine{
		{Name: "Wanderlust", Category: "Travel", Type: "pro", MagzineType: "magzine"},
		{Name: "Weekly", Category: "News", Type: "free", MagzineType: "digest", Description: "short travel notes"},
		{Name: "Code", Category: "Technology", Type: "free", MagzineType: "article"},
	}

	got := Filter(list, "travel", MagazineFields)
	require.Len(t, got, 2)
	assert.Equal(t, "Wanderlust", got[0].Name)
	assert.Equal(t, "Weekly", got[1].Name)

	assert.Len(t, Filter(list, "DIGEST", MagazineFields), 1)
}

func TestMagazineStats(t *testing.T) {
	list := []models.Magazine{
		{MagzineType: models.ContentMagazine, Type: models.MagazineTypePro, Downloads: 10},
		{MagzineType: models.ContentMagazine, Type: models.MagazineTypeFree, Downloads: 5},
		{MagzineType: models.ContentArticle, Type: models.MagazineTypeFree},
		{MagzineType: models.ContentDigest, Downloads: 1},
		{MagzineType: ""},
	}

	s := MagazineStats(list)
	assert.Equal(t, Stats{Total: 5, Magazines: 2, Articles: 1, Digests: 1, Free: 2, Pro: 1, Downloads: 16}, s)
}

func TestUID(t *testing.T) {
	assert.Equal(t, "42", UID(models.User{UID: float64(42)}))
	assert.Equal(t, "abc", UID(models.User{UID: "abc"}))
	assert.Equal(t, "mongo-id", UID(models.User{ID: "mongo-id"}))
}

func TestRenderUsers(t *testing.T) {
	var buf bytes.Buffer
	p := Paginate(users(23), 3, 10)
	require.NoError(t, RenderUsers(&buf, p, 40))

	out := buf.String()
	assert.Contains(t, out, "UID")
	assert.Contains(t, out, "user-23")
	assert.NotContains(t, out, "user-20")
	assert.Contains(t, out, "Showing 21-23 of 23 (page 3/3, 40 users total)")
}

func TestRenderMagazines_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderMagazines(&buf, Paginate([]models.Magazine{}, 1, 10), 0))
	assert.Contains(t, buf.String(), "No magazines found")
}
