package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	type req struct {
		Name  string `validate:"required"`
		Type  string `validate:"oneof=free pro"`
		Image string `validate:"url"`
	}

	err := validator.New().Struct(req{Type: "gold", Image: "nope"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "field Name is a required field")
	assert.Contains(t, resp.Message, "field Type must be one of: free pro")
	assert.Contains(t, resp.Message, "field Image must be a valid URL")
}

func TestOKAndError(t *testing.T) {
	assert.Equal(t, Response{Success: true, Data: []string{"a"}}, OK([]string{"a"}))
	assert.Equal(t, Response{Success: false, Message: "bad"}, Error("bad"))
}
