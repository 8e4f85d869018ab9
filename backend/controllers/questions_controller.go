package controllers

import (
	"log"

	"coursecms/backend/models"
	"coursecms/backend/services"
	"coursecms/backend/utils"
	"coursecms/backend/validators"

	"github.com/gofiber/fiber/v2"
)

type QuestionsController struct {
	Catalog *services.CatalogService
	Logger  *log.Logger
}

func NewQuestionsController(catalog *services.CatalogService, logger *log.Logger) *QuestionsController {
	return &QuestionsController{Catalog: catalog, Logger: logger}
}

// [+] ListQuestions godoc
// @Summary List questions
// @Tags admin-questions
// @Produce json
// @Param unit_id query string false "Unit filter"
// @Param topic_id query string false "Topic filter"
// @Param type query string false "mcq or essay"
// @Param difficulty query string false "easy, medium or hard"
// @Success 200 {object} utils.SuccessResponse
// @Router /admin/api/questions [get]
func (qc *QuestionsController) ListQuestions(c *fiber.Ctx) error {
	f := contentFilter(c)
	if f.Type != "" && f.Type != models.QuestionTypeMCQ && f.Type != models.QuestionTypeEssay {
		return utils.BadRequest(c, "Invalid question type")
	}
	switch f.Difficulty {
	case "", models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
	default:
		return utils.BadRequest(c, "Invalid difficulty")
	}

	questions, err := qc.Catalog.ListQuestions(c.UserContext(), f)
	if err != nil {
		return writeError(c, qc.Logger, err, "Question")
	}
	return utils.Success(c, fiber.StatusOK, questions)
}

// [+] GetQuestion godoc
// @Summary Get question
// @Tags admin-questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /admin/api/questions/{id} [get]
func (qc *QuestionsController) GetQuestion(c *fiber.Ctx) error {
	question, err := qc.Catalog.GetQuestion(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, qc.Logger, err, "Question")
	}
	return utils.Success(c, fiber.StatusOK, question)
}

// [+] CreateQuestion godoc
// @Summary Create question
// @Description Multiple choice questions need at least two options with exactly one marked correct
// @Tags admin-questions
// @Accept json
// @Produce json
// @Param question body validators.QuestionRequest true "Question"
// @Success 201 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /admin/api/questions [post]
func (qc *QuestionsController) CreateQuestion(c *fiber.Ctx) error {
	var req validators.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validators.Validate(&req); err != nil {
		return utils.ValidationError(c, validators.Messages(err))
	}

	question := req.ToModel()
	if err := qc.Catalog.CreateQuestion(c.UserContext(), question); err != nil {
		return writeError(c, qc.Logger, err, "Question")
	}
	return utils.Created(c, question)
}

// [+] UpdateQuestion godoc
// @Summary Replace question
// @Tags admin-questions
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param question body validators.QuestionRequest true "Question"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /admin/api/questions/{id} [put]
func (qc *QuestionsController) UpdateQuestion(c *fiber.Ctx) error {
	var req validators.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validators.Validate(&req); err != nil {
		return utils.ValidationError(c, validators.Messages(err))
	}

	question := req.ToModel()
	if err := qc.Catalog.UpdateQuestion(c.UserContext(), c.Params("id"), question); err != nil {
		return writeError(c, qc.Logger, err, "Question")
	}
	return utils.Success(c, fiber.StatusOK, question)
}

// [+] DeleteQuestion godoc
// @Summary Delete question
// @Tags admin-questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /admin/api/questions/{id} [delete]
func (qc *QuestionsController) DeleteQuestion(c *fiber.Ctx) error {
	res, err := qc.Catalog.DeleteQuestion(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, qc.Logger, err, "Question")
	}
	return utils.Success(c, fiber.StatusOK, res)
}
