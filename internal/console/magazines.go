package console

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/magabrotheeeer/magazine-admin/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-admin/internal/models"
)

// FetchMagazines возвращает все журналы.
func (c *Client) FetchMagazines(ctx context.Context) Result[[]models.Magazine] {
	resp, msg := c.authorized(ctx, http.MethodGet, "/api/magazines", nil, "fetch magazines")
	if msg != "" {
		return fail[[]models.Magazine](msg)
	}
	mags, err := unwrapList[models.Magazine](resp.Body, "magazines")
	if err != nil {
		c.log.Warn("unexpected magazines payload", sl.Err(err))
		return fail[[]models.Magazine]("Failed to fetch magazines. Please try again.")
	}
	return ok(mags)
}

// CreateMagazine создаёт журнал. Ссылки image и file должны быть уже загружены.
func (c *Client) CreateMagazine(ctx context.Context, req models.MagazineRequest) Result[json.RawMessage] {
	resp, msg := c.authorized(ctx, http.MethodPost, "/api/magazines/create", req, "create magazine")
	if msg != "" {
		return fail[json.RawMessage](msg)
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &env); err == nil && len(env.Data) > 0 {
		return ok(env.Data)
	}
	return ok(json.RawMessage(resp.Body))
}
