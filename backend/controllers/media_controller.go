package controllers

import (
	"log"

	"coursecms/backend/services"
	"coursecms/backend/utils"
	"coursecms/backend/validators"

	"github.com/gofiber/fiber/v2"
)

// MediaController manages the videos and notes attached to topics.
type MediaController struct {
	Catalog *services.CatalogService
	Logger  *log.Logger
}

func NewMediaController(catalog *services.CatalogService, logger *log.Logger) *MediaController {
	return &MediaController{Catalog: catalog, Logger: logger}
}

// [+] ListVideos godoc
// @Summary List videos
// @Tags admin-videos
// @Produce json
// @Param unit_id query string false "Unit filter"
// @Param topic_id query string false "Topic filter"
// @Success 200 {object} utils.SuccessResponse
// @Router /admin/api/videos [get]
func (mc *MediaController) ListVideos(c *fiber.Ctx) error {
	videos, err := mc.Catalog.ListVideos(c.UserContext(), contentFilter(c))
	if err != nil {
		return writeError(c, mc.Logger, err, "Video")
	}
	return utils.Success(c, fiber.StatusOK, videos)
}

func (mc *MediaController) GetVideo(c *fiber.Ctx) error {
	video, err := mc.Catalog.GetVideo(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, mc.Logger, err, "Video")
	}
	return utils.Success(c, fiber.StatusOK, video)
}

// [+] CreateVideo godoc
// @Summary Create video
// @Tags admin-videos
// @Accept json
// @Produce json
// @Param video body validators.VideoRequest true "Video"
// @Success 201 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /admin/api/videos [post]
func (mc *MediaController) CreateVideo(c *fiber.Ctx) error {
	var req validators.VideoRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validators.Validate(&req); err != nil {
		return utils.ValidationError(c, validators.Messages(err))
	}

	video := req.ToModel()
	if err := mc.Catalog.CreateVideo(c.UserContext(), video); err != nil {
		return writeError(c, mc.Logger, err, "Video")
	}
	return utils.Created(c, video)
}

func (mc *MediaController) UpdateVideo(c *fiber.Ctx) error {
	var req validators.VideoRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validators.Validate(&req); err != nil {
		return utils.ValidationError(c, validators.Messages(err))
	}

	video := req.ToModel()
	if err := mc.Catalog.UpdateVideo(c.UserContext(), c.Params("id"), video); err != nil {
		return writeError(c, mc.Logger, err, "Video")
	}
	return utils.Success(c, fiber.StatusOK, video)
}

func (mc *MediaController) DeleteVideo(c *fiber.Ctx) error {
	res, err := mc.Catalog.DeleteVideo(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, mc.Logger, err, "Video")
	}
	return utils.Success(c, fiber.StatusOK, res)
}

// [+] ListNotes godoc
// @Summary List notes
// @Tags admin-notes
// @Produce json
// @Param unit_id query string false "Unit filter"
// @Param topic_id query string false "Topic filter"
// @Success 200 {object} utils.SuccessResponse
// @Router /admin/api/notes [get]
func (mc *MediaController) ListNotes(c *fiber.Ctx) error {
	notes, err := mc.Catalog.ListNotes(c.UserContext(), contentFilter(c))
	if err != nil {
		return writeError(c, mc.Logger, err, "Note")
	}
	return utils.Success(c, fiber.StatusOK, notes)
}

func (mc *MediaController) GetNote(c *fiber.Ctx) error {
	note, err := mc.Catalog.GetNote(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, mc.Logger, err, "Note")
	}
	return utils.Success(c, fiber.StatusOK, note)
}

// [+] CreateNote godoc
// @Summary Create note
// @Tags admin-notes
// @Accept json
// @Produce json
// @Param note body validators.NoteRequest true "Note"
// @Success 201 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /admin/api/notes [post]
func (mc *MediaController) CreateNote(c *fiber.Ctx) error {
	var req validators.NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validators.Validate(&req); err != nil {
		return utils.ValidationError(c, validators.Messages(err))
	}

	note := req.ToModel()
	if err := mc.Catalog.CreateNote(c.UserContext(), note); err != nil {
		return writeError(c, mc.Logger, err, "Note")
	}
	return utils.Created(c, note)
}

func (mc *MediaController) UpdateNote(c *fiber.Ctx) error {
	var req validators.NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validators.Validate(&req); err != nil {
		return utils.ValidationError(c, validators.Messages(err))
	}

	note := req.ToModel()
	if err := mc.Catalog.UpdateNote(c.UserContext(), c.Params("id"), note); err != nil {
		return writeError(c, mc.Logger, err, "Note")
	}
	return utils.Success(c, fiber.StatusOK, note)
}

func (mc *MediaController) DeleteNote(c *fiber.Ctx) error {
	res, err := mc.Catalog.DeleteNote(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, mc.Logger, err, "Note")
	}
	return utils.Success(c, fiber.StatusOK, res)
}
