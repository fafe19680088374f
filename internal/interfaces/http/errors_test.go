package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Swasthya-api/internal/application/dto"
	"github.com/jhoicas/Swasthya-api/internal/domain"
	"github.com/jhoicas/Swasthya-api/pkg/logger"
)

func errorApp(err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(RequestLogger(logger.Nop()))
	app.Get("/x", func(c *fiber.Ctx) error { return err })
	return app
}

func TestWriteError_Mapeo(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: dakhila 3", domain.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("%w: usuario", domain.ErrUserNotFound), http.StatusNotFound, "USER_NOT_FOUND"},
		{domain.ErrConflict, http.StatusConflict, "VERSION_CONFLICT"},
		{fmt.Errorf("salida: %w", domain.ErrInsufficientStock), http.StatusUnprocessableEntity, "INSUFFICIENT_STOCK"},
		{domain.ErrModuleDisabled, http.StatusServiceUnavailable, "MODULE_DISABLED"},
		{fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "HTTP_ERROR"},
		{errors.New("conexión perdida"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		resp, err := errorApp(tc.err).Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
		require.NoError(t, err)

		var body dto.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()
		assert.Equal(t, tc.status, resp.StatusCode, tc.err.Error())
		assert.Equal(t, tc.code, body.Code)
		assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	}
}

func TestWriteError_NoExponeDetalleInterno(t *testing.T) {
	resp, err := errorApp(errors.New("pq: password authentication failed")).Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotContains(t, body.Message, "password")
}

func TestRequireModule(t *testing.T) {
	app := fiber.New()
	app.Get("/on", RequireModule("rabies", true), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Get("/off", RequireModule("rabies", false), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/on", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/off", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestPageFrom_Topes(t *testing.T) {
	app := fiber.New()
	app.Get("/p", func(c *fiber.Ctx) error { return c.JSON(pageFrom(c)) })

	for q, want := range map[string]dto.PageRequest{
		"":                    {Limit: 20, Offset: 0},
		"?limit=500&offset=3": {Limit: 100, Offset: 3},
		"?limit=-1&offset=-5": {Limit: 20, Offset: 0},
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/p"+q, nil), -1)
		require.NoError(t, err)
		var got dto.PageRequest
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		resp.Body.Close()
		assert.Equal(t, want, got, q)
	}
}
