package console

import (
	"context"
	"net/http"

	"github.com/magabrotheeeer/magazine-admin/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-admin/internal/models"
	"github.com/magabrotheeeer/magazine-admin/internal/remote"
)

// FetchCategories возвращает список категорий.
func (c *Client) FetchCategories(ctx context.Context) Result[[]string] {
	return c.categories(ctx, http.MethodGet, nil, "fetch categories")
}

// AddCategory добавляет категорию и возвращает обновлённый список.
func (c *Client) AddCategory(ctx context.Context, name string) Result[[]string] {
	return c.categories(ctx, http.MethodPost, models.AddCategoryRequest{Name: name}, "add category")
}

// RenameCategory переименовывает категорию.
func (c *Client) RenameCategory(ctx context.Context, oldName, newName string) Result[[]string] {
	return c.categories(ctx, http.MethodPut, models.RenameCategoryRequest{OldName: oldName, NewName: newName}, "rename category")
}

// DeleteCategory удаляет категорию.
func (c *Client) DeleteCategory(ctx context.Context, name string) Result[[]string] {
	return c.categories(ctx, http.MethodDelete, models.DeleteCategoryRequest{CategoryName: name}, "delete category")
}

// categories эндпоинт категорий не требует Authorization, но токен
// передаётся, если он есть.
func (c *Client) categories(ctx context.Context, method string, body any, what string) Result[[]string] {
	var resp *remote.Response
	if c.store.IsAuthenticated() {
		var msg string
		if resp, msg = c.authorized(ctx, method, "/api/categories", body, what); msg != "" {
			return fail[[]string](msg)
		}
	} else {
		var err error
		if resp, err = c.proxy.Do(ctx, method, "/api/categories", "", body); err != nil {
			return fail[[]string](transportMessage(err, what))
		}
		if !resp.OK() {
			return fail[[]string](statusMessage(resp, what))
		}
	}

	list, err := unwrapList[string](resp.Body, "categories")
	if err != nil {
		c.log.Warn("unexpected categories payload", sl.Err(err))
		return fail[[]string]("Failed to " + what + ". Please try again.")
	}
	return ok(list)
}
