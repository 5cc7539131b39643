package newsletter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/gcbaptista/go-facet-engine/internal/errors"
	"github.com/gcbaptista/go-facet-engine/internal/kvstore"
)

func TestSubscribe(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	registry := NewRegistry(kv)

	require.NoError(t, registry.Subscribe("Scout@Agency.com", true))
	assert.True(t, registry.IsSubscribed("scout@agency.com"))
	assert.Equal(t, 1, registry.Count())

	raw, ok, err := kv.Get(SubmissionsKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["scout@agency.com"]`, string(raw))

	t.Run("duplicate ignoring case", func(t *testing.T) {
		err := registry.Subscribe("SCOUT@agency.com", true)
		assert.True(t, errors.Is(err, internalErrors.ErrAlreadySubscribed))
		assert.Equal(t, 1, registry.Count())
	})
}

func TestSubscribeValidation(t *testing.T) {
	registry := NewRegistry(kvstore.NewMemoryStore())

	tests := []struct {
		name    string
		email   string
		consent bool
		field   string
	}{
		{"missing email", "", true, "email"},
		{"malformed email", "scout@", true, "email"},
		{"no consent", "scout@agency.com", false, "consent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := registry.Subscribe(tt.email, tt.consent)
			require.Error(t, err)
			assert.True(t, errors.Is(err, internalErrors.ErrInvalidInput))

			var validationErr *internalErrors.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
	assert.Equal(t, 0, registry.Count())
}

func TestNewRegistryLoadsAndRecovers(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	require.NoError(t, kv.Set(SubmissionsKey, []byte(`["a@b.com"]`)))
	assert.True(t, NewRegistry(kv).IsSubscribed("A@B.com"))

	require.NoError(t, kv.Set(SubmissionsKey, []byte(`garbage`)))
	registry := NewRegistry(kv)
	assert.Equal(t, 0, registry.Count())
	require.NoError(t, registry.Subscribe("a@b.com", true))
}
