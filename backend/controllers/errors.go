package controllers

import (
	"errors"
	"log"

	"coursecms/backend/services"
	"coursecms/backend/store"
	"coursecms/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// writeError maps service failures onto admin API responses.
func writeError(c *fiber.Ctx, logger *log.Logger, err error, entity string) error {
	var parentErr *services.ParentError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return utils.NotFound(c, entity+" not found")
	case errors.As(err, &parentErr):
		return utils.ValidationError(c, map[string]string{parentErr.Field: "does not exist"})
	}
	logger.Printf("Admin %s request %s %s failed: %v", entity, c.Method(), c.Path(), err)
	return utils.InternalServerError(c, "Could not query database")
}

func contentFilter(c *fiber.Ctx) services.ContentFilter {
	return services.ContentFilter{
		UnitID:     c.Query("unit_id"),
		TopicID:    c.Query("topic_id"),
		Type:       c.Query("type"),
		Difficulty: c.Query("difficulty"),
	}
}
