package controllers

import (
	"fmt"
	"log"

	"coursecms/backend/services"
	"coursecms/backend/utils"
	"coursecms/backend/validators"

	"github.com/gofiber/fiber/v2"
)

type UnitsController struct {
	Catalog *services.CatalogService
	Content *services.ContentService
	Logger  *log.Logger
}

func NewUnitsController(catalog *services.CatalogService, content *services.ContentService, logger *log.Logger) *UnitsController {
	return &UnitsController{Catalog: catalog, Content: content, Logger: logger}
}

// [+] ListUnits godoc
// @Summary List units
// @Description All units ordered by unit number
// @Tags admin-units
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /admin/api/units [get]
func (uc *UnitsController) ListUnits(c *fiber.Ctx) error {
	units, err := uc.Catalog.ListUnits(c.UserContext())
	if err != nil {
		return writeError(c, uc.Logger, err, "Unit")
	}
	return utils.Success(c, fiber.StatusOK, units)
}

// [+] GetUnit godoc
// @Summary Get unit
// @Tags admin-units
// @Produce json
// @Param id path string true "Unit ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /admin/api/units/{id} [get]
func (uc *UnitsController) GetUnit(c *fiber.Ctx) error {
	unit, err := uc.Catalog.GetUnit(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, uc.Logger, err, "Unit")
	}
	return utils.Success(c, fiber.StatusOK, unit)
}

// [+] CreateUnit godoc
// @Summary Create unit
// @Tags admin-units
// @Accept json
// @Produce json
// @Param unit body validators.UnitRequest true "Unit"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /admin/api/units [post]
func (uc *UnitsController) CreateUnit(c *fiber.Ctx) error {
	var req validators.UnitRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validators.Validate(&req); err != nil {
		return utils.ValidationError(c, validators.Messages(err))
	}

	unit := req.ToModel()
	if err := uc.Catalog.CreateUnit(c.UserContext(), unit); err != nil {
		return writeError(c, uc.Logger, err, "Unit")
	}
	return utils.Created(c, unit)
}

// [+] UpdateUnit godoc
// @Summary Replace unit
// @Tags admin-units
// @Accept json
// @Produce json
// @Param id path string true "Unit ID"
// @Param unit body validators.UnitRequest true "Unit"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /admin/api/units/{id} [put]
func (uc *UnitsController) UpdateUnit(c *fiber.Ctx) error {
	var req validators.UnitRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validators.Validate(&req); err != nil {
		return utils.ValidationError(c, validators.Messages(err))
	}

	unit := req.ToModel()
	if err := uc.Catalog.UpdateUnit(c.UserContext(), c.Params("id"), unit); err != nil {
		return writeError(c, uc.Logger, err, "Unit")
	}
	return utils.Success(c, fiber.StatusOK, unit)
}

// [+] DeleteUnit godoc
// @Summary Delete unit
// @Description Topics are removed too when cascading deletes are enabled, otherwise they are reported as orphaned
// @Tags admin-units
// @Produce json
// @Param id path string true "Unit ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /admin/api/units/{id} [delete]
func (uc *UnitsController) DeleteUnit(c *fiber.Ctx) error {
	res, err := uc.Catalog.DeleteUnit(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, uc.Logger, err, "Unit")
	}
	return utils.Success(c, fiber.StatusOK, res)
}

// [+] ExportUnit godoc
// @Summary Export unit
// @Description Downloads the unit's content as an XLSX workbook
// @Tags admin-units
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Unit ID"
// @Success 200 {file} file
// @Failure 404 {object} utils.ErrorResponse
// @Router /admin/api/units/{id}/export [get]
func (uc *UnitsController) ExportUnit(c *fiber.Ctx) error {
	buf, unit, err := uc.Content.ExportUnit(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, uc.Logger, err, "Unit")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="unit-%d.xlsx"`, unit.UnitNumber))
	return c.Send(buf.Bytes())
}
