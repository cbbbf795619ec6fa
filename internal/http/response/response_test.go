package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(map[string]any{"id": "u1"})
	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.Equal(t, map[string]any{"id": "u1"}, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("something broke")
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something broke", resp.Error)
}

func TestValidationError(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
		URL   string `validate:"omitempty,url"`
		Kind  string `validate:"omitempty,oneof=oferta criativo"`
	}

	v := validator.New()

	t.Run("one clause per failed field", func(t *testing.T) {
		err := v.Struct(payload{URL: "not-a-url", Kind: "banner"})
		require.Error(t, err)

		resp := ValidationError(err.(validator.ValidationErrors))
		assert.Equal(t, StatusError, resp.Status)
		assert.Contains(t, resp.Error, "field Email is a required field")
		assert.Contains(t, resp.Error, "field URL must be a valid URL")
		assert.Contains(t, resp.Error, "field Kind has an unsupported value")
	})

	t.Run("email tag", func(t *testing.T) {
		err := v.Struct(payload{Email: "not-an-email"})
		require.Error(t, err)

		resp := ValidationError(err.(validator.ValidationErrors))
		assert.Contains(t, resp.Error, "field Email must be a valid email address")
	})
}
