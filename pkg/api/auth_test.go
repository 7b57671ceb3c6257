package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseEnvelope проверяет защищенный разбор конверта ответа
func TestParseEnvelope(t *testing.T) {
	t.Run("valid envelope", func(t *testing.T) {
		env := ParseEnvelope([]byte(`{"success":true,"message":"ok","data":{"id":"u1"}}`))

		require.NotNil(t, env)
		assert.True(t, env.Success)
		assert.Equal(t, "ok", env.Message)
		assert.JSONEq(t, `{"id":"u1"}`, string(env.Data))
	})

	t.Run("envelope with field errors", func(t *testing.T) {
		env := ParseEnvelope([]byte(`{"success":false,"errors":{"email":"taken"}}`))

		require.NotNil(t, env)
		assert.False(t, env.Success)
		assert.Equal(t, "taken", env.Errors["email"])
	})

	t.Run("invalid input returns nil", func(t *testing.T) {
		assert.Nil(t, ParseEnvelope(nil))
		assert.Nil(t, ParseEnvelope([]byte{}))
		assert.Nil(t, ParseEnvelope([]byte(`<html>502</html>`)))
	})
}

// TestEnvelope_ErrorMessage проверяет приоритет источников сообщения
func TestEnvelope_ErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		env  *Envelope
		want string
	}{
		{
			name: "nil envelope falls back",
			env:  nil,
			want: "fallback",
		},
		{
			name: "error.message wins",
			env: &Envelope{
				Message: "top-level",
				Error:   &ErrorBody{Message: "nested"},
			},
			want: "nested",
		},
		{
			name: "message when no error body",
			env:  &Envelope{Message: "top-level"},
			want: "top-level",
		},
		{
			name: "empty error body falls to message",
			env: &Envelope{
				Message: "top-level",
				Error:   &ErrorBody{},
			},
			want: "top-level",
		},
		{
			name: "fallback when nothing set",
			env:  &Envelope{},
			want: "fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.env.ErrorMessage("fallback"))
		})
	}
}
