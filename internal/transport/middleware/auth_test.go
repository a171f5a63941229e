package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/flashcard-tutor/pkg/ctxutil"
)

//go:generate moq -out token_validator_mock_test.go -pkg middleware . tokenValidator

func TestAuth_ValidToken(t *testing.T) {
	clientID := uuid.New()
	validator := &tokenValidatorMock{
		ValidateTokenFunc: func(ctx context.Context, token string) (uuid.UUID, error) {
			if token == "valid-token" {
				return clientID, nil
			}
			return uuid.Nil, errors.New("invalid token")
		},
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := ctxutil.ClientIDFromCtx(r.Context())
		assert.True(t, ok, "expected clientID in context")
		assert.Equal(t, clientID, got)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	Auth(validator)(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, validator.ValidateTokenCalls(), 1)
	assert.Equal(t, "valid-token", validator.ValidateTokenCalls()[0].Token)
}

func TestAuth_Rejects(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantCalled bool
	}{
		{name: "invalid token", header: "Bearer invalid-token", wantCalled: true},
		{name: "no header", header: ""},
		{name: "non-bearer scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "empty bearer", header: "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := &tokenValidatorMock{
				ValidateTokenFunc: func(ctx context.Context, token string) (uuid.UUID, error) {
					return uuid.Nil, errors.New("invalid token")
				},
			}
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler should not be called")
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			Auth(validator)(handler).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
			assert.Equal(t, tt.wantCalled, len(validator.ValidateTokenCalls()) > 0)
		})
	}
}
