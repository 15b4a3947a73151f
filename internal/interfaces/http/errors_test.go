package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventory-core/internal/application/dto"
	"github.com/tu-usuario/inventory-core/internal/domain"
)

// TestRespondError verifica la traducción completa de errores de dominio a
// códigos HTTP: los hechos de negocio responden 4xx, el lock timeout 503
// (reintentable) y lo desconocido 500.
func TestRespondError(t *testing.T) {
	casos := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{domain.ErrInvalidTransfer, fiber.StatusBadRequest, "INVALID_TRANSFER"},
		{domain.ErrUnknownReference, fiber.StatusNotFound, "UNKNOWN_REFERENCE"},
		{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{domain.ErrInvalidState, fiber.StatusConflict, "INVALID_STATE"},
		{domain.ErrLockTimeout, fiber.StatusServiceUnavailable, "LOCK_TIMEOUT"},
		{errors.New("algo inesperado"), fiber.StatusInternalServerError, "INTERNAL"},
	}

	for _, c := range casos {
		t.Run(c.wantCode, func(t *testing.T) {
			app := fiber.New()
			app.Get("/x", func(ctx *fiber.Ctx) error {
				return respondError(ctx, c.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, c.wantStatus, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var out dto.ErrorResponse
			require.NoError(t, json.Unmarshal(body, &out))
			assert.Equal(t, c.wantCode, out.Code)
		})
	}
}

// Los errores envueltos con contexto conservan su traducción.
func TestRespondError_ErrorEnvuelto(t *testing.T) {
	app := fiber.New()
	app.Get("/x", func(ctx *fiber.Ctx) error {
		return respondError(ctx, fmt.Errorf("aplicar movimiento: %w", domain.ErrInsufficientStock))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}
