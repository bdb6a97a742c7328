package validators

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	FirstName string `validate:"required"`
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=8"`
}

func TestFieldMessages(t *testing.T) {
	v := validator.New()

	t.Run("flattens per-field messages with snake_case keys", func(t *testing.T) {
		err := v.Struct(sampleRequest{Email: "not-an-email", Password: "short"})

		out := FieldMessages(err)
		assert.Equal(t, "The first_name field is required.", out["first_name"])
		assert.Equal(t, "The email field must be a valid email address.", out["email"])
		assert.Equal(t, "The password field must be at least 8 characters.", out["password"])
	})

	t.Run("collapses non-validator errors into a single entry", func(t *testing.T) {
		out := FieldMessages(errors.New("unexpected EOF"))

		assert.Equal(t, map[string]string{
			"request": "The request body is malformed.",
		}, out)
	})
}

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "first_name", snakeCase("FirstName"))
	assert.Equal(t, "email", snakeCase("Email"))
	assert.Equal(t, "shipping_address1", snakeCase("ShippingAddress1"))
}
