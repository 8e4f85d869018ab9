package controllers

import (
	"log"

	"coursecms/backend/services"
	"coursecms/backend/utils"
	"coursecms/backend/validators"

	"github.com/gofiber/fiber/v2"
)

type TopicsController struct {
	Catalog *services.CatalogService
	Logger  *log.Logger
}

func NewTopicsController(catalog *services.CatalogService, logger *log.Logger) *TopicsController {
	return &TopicsController{Catalog: catalog, Logger: logger}
}

// [+] ListTopics godoc
// @Summary List topics
// @Description Topics ordered by unit number then topic order, labelled with their unit
// @Tags admin-topics
// @Produce json
// @Param unit_id query string false "Only topics of this unit"
// @Success 200 {object} utils.SuccessResponse
// @Router /admin/api/topics [get]
func (tc *TopicsController) ListTopics(c *fiber.Ctx) error {
	topics, err := tc.Catalog.ListTopics(c.UserContext(), c.Query("unit_id"))
	if err != nil {
		return writeError(c, tc.Logger, err, "Topic")
	}
	return utils.Success(c, fiber.StatusOK, topics)
}

// [+] GetTopic godoc
// @Summary Get topic
// @Tags admin-topics
// @Produce json
// @Param id path string true "Topic ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /admin/api/topics/{id} [get]
func (tc *TopicsController) GetTopic(c *fiber.Ctx) error {
	topic, err := tc.Catalog.GetTopic(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, tc.Logger, err, "Topic")
	}
	return utils.Success(c, fiber.StatusOK, topic)
}

// [+] CreateTopic godoc
// @Summary Create topic
// @Tags admin-topics
// @Accept json
// @Produce json
// @Param topic body validators.TopicRequest true "Topic"
// @Success 201 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /admin/api/topics [post]
func (tc *TopicsController) CreateTopic(c *fiber.Ctx) error {
	var req validators.TopicRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validators.Validate(&req); err != nil {
		return utils.ValidationError(c, validators.Messages(err))
	}

	topic := req.ToModel()
	if err := tc.Catalog.CreateTopic(c.UserContext(), topic); err != nil {
		return writeError(c, tc.Logger, err, "Topic")
	}
	return utils.Created(c, topic)
}

// [+] UpdateTopic godoc
// @Summary Replace topic
// @Tags admin-topics
// @Accept json
// @Produce json
// @Param id path string true "Topic ID"
// @Param topic body validators.TopicRequest true "Topic"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /admin/api/topics/{id} [put]
func (tc *TopicsController) UpdateTopic(c *fiber.Ctx) error {
	var req validators.TopicRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validators.Validate(&req); err != nil {
		return utils.ValidationError(c, validators.Messages(err))
	}

	topic := req.ToModel()
	if err := tc.Catalog.UpdateTopic(c.UserContext(), c.Params("id"), topic); err != nil {
		return writeError(c, tc.Logger, err, "Topic")
	}
	return utils.Success(c, fiber.StatusOK, topic)
}

// [+] DeleteTopic godoc
// @Summary Delete topic
// @Description Videos, notes and questions are removed too when cascading deletes are enabled
// @Tags admin-topics
// @Produce json
// @Param id path string true "Topic ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /admin/api/topics/{id} [delete]
func (tc *TopicsController) DeleteTopic(c *fiber.Ctx) error {
	res, err := tc.Catalog.DeleteTopic(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, tc.Logger, err, "Topic")
	}
	return utils.Success(c, fiber.StatusOK, res)
}
