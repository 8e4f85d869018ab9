package controllers

import (
	"errors"

	"coursecms/backend/models"
	"coursecms/backend/services"
	"coursecms/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// ContentController serves the unauthenticated read API used by external apps.
type ContentController struct {
	Content *services.ContentService
}

func NewContentController(content *services.ContentService) *ContentController {
	return &ContentController{Content: content}
}

// [+] GetUnits godoc
// @Summary Unit index or unit content
// @Description Without a query lists every unit; with ?unit=n returns the full content tree of unit n
// @Tags content
// @Produce json
// @Param unit query int false "Unit number"
// @Success 200 {object} models.UnitsResponse
// @Success 200 {object} models.UnitDocument
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /units [get]
func (cc *ContentController) GetUnits(c *fiber.Ctx) error {
	raw := c.Query("unit")
	if raw == "" {
		units, err := cc.Content.UnitIndex(c.UserContext())
		if err != nil {
			return utils.PlainError(c, fiber.StatusInternalServerError, "Internal server error")
		}
		return c.JSON(models.UnitsResponse{Units: units})
	}

	number, err := models.ParseUnitNumber(raw)
	if err != nil || number < 1 {
		return utils.PlainError(c, fiber.StatusBadRequest, "Invalid unit number")
	}

	doc, err := cc.Content.UnitContent(c.UserContext(), int(number))
	switch {
	case errors.Is(err, services.ErrUnitNotFound):
		return utils.PlainError(c, fiber.StatusNotFound, "Unit not found")
	case err != nil:
		return utils.PlainError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(doc)
}
