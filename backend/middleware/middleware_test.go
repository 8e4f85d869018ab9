package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"coursecms/backend/config"
	"coursecms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionMiddleware(t *testing.T) {
	cfg := &config.Config{SessionSecret: "testsecret"}
	token, err := utils.GenerateSessionToken("admin", cfg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(SessionMiddleware(cfg))
	app.Get("/admin/api/units", func(c *fiber.Ctx) error { return c.SendString("admin") })
	app.Get("/units", func(c *fiber.Ctx) error { return c.SendString("public") })

	tests := []struct {
		name     string
		path     string
		cookie   string
		status   int
		location string
	}{
		{"public path", "/units", "", fiber.StatusOK, ""},
		{"admin without session", "/admin/api/units", "", fiber.StatusFound, "/"},
		{"admin with forged cookie", "/admin/api/units", "authenticated", fiber.StatusFound, "/"},
		{"admin with session", "/admin/api/units", token, fiber.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: tt.cookie})
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.location, resp.Header.Get("Location"))
		})
	}
}

func TestRequestContext(t *testing.T) {
	app := fiber.New()
	app.Use(RequestContext(time.Minute))
	app.Get("/", func(c *fiber.Ctx) error {
		_, hasDeadline := c.UserContext().Deadline()
		return c.JSON(fiber.Map{"id": RequestID(c), "deadline": hasDeadline})
	})

	clientID := "3f2b8c1e-9a4d-4e6f-8b7a-2c1d0e9f8a7b"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, clientID)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, clientID, resp.Header.Get(RequestIDHeader))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(RequestIDHeader), 36)

	for _, bad := range []string{"abc-123", "forged id=admin", strings.Repeat("a", 4096)} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, bad)
		resp, err := app.Test(req)
		require.NoError(t, err)

		got := resp.Header.Get(RequestIDHeader)
		assert.NotEqual(t, bad, got)
		_, err = uuid.Parse(got)
		assert.NoError(t, err, "replaced with a fresh id")
	}
}

func TestRequestContextWithoutTimeout(t *testing.T) {
	app := fiber.New()
	app.Use(RequestContext(0))
	app.Get("/", func(c *fiber.Ctx) error {
		if _, ok := c.UserContext().Deadline(); ok {
			return fiber.ErrInternalServerError
		}
		return c.UserContext().Err()
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
