package sl_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/magazine-admin/internal/lib/sl"
)

func TestErr_ReturnsCorrectAttr(t *testing.T) {
	err := errors.New("something went wrong")
	attr := sl.Err(err)

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.StringValue("something went wrong"), attr.Value)
}

func TestErr_NilError(t *testing.T) {
	attr := sl.Err(nil)
	assert.Equal(t, "<nil>", attr.Value.String())
}

func TestOp(t *testing.T) {
	attr := sl.Op("handlers.upload")
	assert.Equal(t, "op", attr.Key)
	assert.Equal(t, "handlers.upload", attr.Value.String())
}

func TestNew_SelectsHandler(t *testing.T) {
	assert.True(t, sl.New("local").Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, sl.New("prod").Enabled(context.Background(), slog.LevelDebug))
}
