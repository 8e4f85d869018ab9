package utils

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coursecms/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken(t *testing.T) {
	cfg := &config.Config{SessionSecret: "testsecret"}

	token, err := GenerateSessionToken("admin", cfg)
	require.NoError(t, err)
	assert.NoError(t, ValidateSessionToken(token, cfg))

	other := &config.Config{SessionSecret: "othersecret"}
	assert.Error(t, ValidateSessionToken(token, other), "signed with another secret")
	assert.Error(t, ValidateSessionToken("", cfg))
	assert.Error(t, ValidateSessionToken(token, &config.Config{}), "no secret configured")
}

func TestSessionTokenRejectsWrongClaims(t *testing.T) {
	cfg := &config.Config{SessionSecret: "testsecret"}

	sign := func(claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.SessionSecret))
		require.NoError(t, err)
		return s
	}

	expired := sign(jwt.MapClaims{"session": SessionFlag, "exp": time.Now().Add(-time.Minute).Unix()})
	assert.Error(t, ValidateSessionToken(expired, cfg))

	noFlag := sign(jwt.MapClaims{"role": AdminRole, "exp": time.Now().Add(time.Hour).Unix()})
	assert.Error(t, ValidateSessionToken(noFlag, cfg))
}

func TestIsAuthenticated(t *testing.T) {
	cfg := &config.Config{SessionSecret: "testsecret"}
	token, err := GenerateSessionToken("admin", cfg)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"authenticated": IsAuthenticated(c, cfg)})
	})

	tests := []struct {
		name   string
		cookie string
		want   string
	}{
		{"no cookie", "", `{"authenticated":false}`},
		{"bare flag", SessionFlag, `{"authenticated":false}`},
		{"signed session", token, `{"authenticated":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.cookie})
			}
			resp, err := app.Test(req)
			require.NoError(t, err)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(body))
		})
	}
}
