package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "roost/internal/errors"
)

func TestDomain_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", apperrors.ErrNotFound.WithDetail("member"), http.StatusNotFound, "NOT_FOUND"},
		{"validation", apperrors.ErrValidation, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"room full", apperrors.ErrRoomFull, http.StatusConflict, "ROOM_FULL"},
		{"already assigned", apperrors.ErrAlreadyAssigned, http.StatusConflict, "ALREADY_ASSIGNED"},
		{"not assigned", apperrors.ErrNotAssigned, http.StatusConflict, "NOT_ASSIGNED"},
		{"invalid transition", apperrors.ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION"},
		{"auth", apperrors.ErrAuth, http.StatusUnauthorized, "AUTH_ERROR"},
		{"wrapped sentinel", fmt.Errorf("assigning: %w", apperrors.ErrRoomFull), http.StatusConflict, "ROOM_FULL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return Domain(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body["code"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestDomain_UnknownErrorIsServerError(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return Domain(c, fmt.Errorf("disk on fire"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
