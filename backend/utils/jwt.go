package utils

import (
	"time"

	"coursecms/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const (
	SessionCookieName = "admin-session"
	// SessionFlag is the claim value every valid admin session carries.
	SessionFlag = "authenticated"
	SessionTTL  = 24 * time.Hour
	AdminRole   = "admin"
)

// GenerateSessionToken signs the admin session carried by the session cookie.
func GenerateSessionToken(username string, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"session": SessionFlag,
		"sub":     username,
		"role":    AdminRole,
		"exp":     time.Now().Add(SessionTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.SessionSecret))
}

// ValidateSessionToken checks signature, expiry and the session flag.
func ValidateSessionToken(tokenString string, cfg *config.Config) error {
	if tokenString == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Missing session")
	}
	if cfg.SessionSecret == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Sessions are disabled")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.SessionSecret), nil
	})
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid session")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid session claims")
	}
	if flag, _ := claims["session"].(string); flag != SessionFlag {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid session flag")
	}
	return nil
}

// IsAuthenticated reports whether the request carries a valid admin session cookie.
func IsAuthenticated(c *fiber.Ctx, cfg *config.Config) bool {
	return ValidateSessionToken(c.Cookies(SessionCookieName), cfg) == nil
}

// SetSessionCookie writes the session cookie; an empty token clears it.
func SetSessionCookie(c *fiber.Ctx, token string, cfg *config.Config) {
	cookie := &fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
		MaxAge:   int(SessionTTL.Seconds()),
		Expires:  time.Now().Add(SessionTTL),
	}
	if token == "" {
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	}
	c.Cookie(cookie)
}
