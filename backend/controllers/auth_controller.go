package controllers

import (
	"crypto/subtle"
	"log"

	"coursecms/backend/config"
	"coursecms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct {
	Cfg    *config.Config
	Logger *log.Logger
}

func NewAuthController(cfg *config.Config, logger *log.Logger) *AuthController {
	return &AuthController{Cfg: cfg, Logger: logger}
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// [+] Login godoc
// @Summary Admin login
// @Description Checks the shared admin credentials and sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	if !ac.Cfg.AdminConfigured() || ac.Cfg.SessionSecret == "" {
		ac.Logger.Printf("Login refused: admin credentials or session secret not configured")
		return utils.PlainError(c, fiber.StatusInternalServerError, "Server configuration error")
	}

	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.PlainError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if !ac.credentialsMatch(input) {
		return utils.PlainError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := utils.GenerateSessionToken(input.Username, ac.Cfg)
	if err != nil {
		ac.Logger.Printf("Could not sign session: %v", err)
		return utils.PlainError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	utils.SetSessionCookie(c, token, ac.Cfg)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"user": fiber.Map{
			"username": input.Username,
			"role":     utils.AdminRole,
		},
	})
}

// credentialsMatch compares against the bcrypt hash when one is configured and
// the plain password otherwise.
func (ac *AuthController) credentialsMatch(input LoginInput) bool {
	userOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(ac.Cfg.AdminUsername)) == 1

	var passOK bool
	if ac.Cfg.AdminPasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(ac.Cfg.AdminPasswordHash), []byte(input.Password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(input.Password), []byte(ac.Cfg.AdminPassword)) == 1
	}
	return userOK && passOK
}

// [+] Logout godoc
// @Summary Admin logout
// @Description Clears the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	utils.SetSessionCookie(c, "", ac.Cfg)
	return c.JSON(fiber.Map{"success": true})
}

// [+] Session godoc
// @Summary Session status
// @Description Reports whether the request carries a valid admin session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /auth/session [get]
func (ac *AuthController) Session(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"authenticated": utils.IsAuthenticated(c, ac.Cfg)})
}
