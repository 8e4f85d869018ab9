package controllers

import (
	"coursecms/backend/config"
	"coursecms/backend/services"
	"coursecms/backend/store"
	"coursecms/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type DashboardController struct {
	Dashboard *services.DashboardService
	Store     store.Store
	Cfg       *config.Config
}

func NewDashboardController(dashboard *services.DashboardService, st store.Store, cfg *config.Config) *DashboardController {
	return &DashboardController{Dashboard: dashboard, Store: st, Cfg: cfg}
}

// [+] GetStats godoc
// @Summary Dashboard counters
// @Description Counts of units, topics, videos, notes and questions; zeros when the store is slow or failing
// @Tags admin-dashboard
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /admin/api/dashboard [get]
func (dc *DashboardController) GetStats(c *fiber.Ctx) error {
	stats := dc.Dashboard.Stats(c.UserContext(), dc.Cfg.StatsTimeout)
	return utils.Success(c, fiber.StatusOK, stats)
}

// [+] Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (dc *DashboardController) Health(c *fiber.Ctx) error {
	if err := dc.Store.Ping(c.UserContext()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
