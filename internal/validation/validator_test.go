package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email string `validate:"required,email"`
	Mode  string `validate:"oneof=memory file badger"`
	Port  int    `validate:"min=1,max=65535"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := ValidateStruct(&sampleRequest{Email: "scout@agency.com", Mode: "file", Port: 8080})
		assert.NoError(t, err)
	})

	t.Run("collects every failing field", func(t *testing.T) {
		err := ValidateStruct(&sampleRequest{Email: "not-an-email", Mode: "redis", Port: 0})
		require.Error(t, err)

		var reqErr *RequestValidationError
		require.True(t, errors.As(err, &reqErr))
		require.Len(t, reqErr.Fields, 3)

		tags := []string{reqErr.Fields[0].Tag, reqErr.Fields[1].Tag, reqErr.Fields[2].Tag}
		assert.ElementsMatch(t, []string{"email", "oneof", "min"}, tags)
		assert.Contains(t, err.Error(), "must be a valid email address")
	})
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, ValidateVar("scout@agency.com", "required,email"))
	assert.Error(t, ValidateVar("scout@", "required,email"))
	assert.Error(t, ValidateVar("", "required,email"))
}

func TestGetValidatorIsSingleton(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}
