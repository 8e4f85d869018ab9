// Package store persists course content. Every backend exposes the same flat
// collections and parent references; nothing here joins across collections.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"coursecms/backend/config"
	"coursecms/backend/models"
)

var ErrNotFound = errors.New("store: document not found")

// Foreign-key and filter fields understood by ListBy, ListIn, ListWhere, DeleteBy
// and CountBy.
const (
	FieldID           = "id"
	FieldUnitID       = "unit_id"
	FieldTopicID      = "topic_id"
	FieldQuestionType = "question_type"
	FieldDifficulty   = "difficulty"
)

// Where is a conjunction of field conditions. A []string value matches any of its
// elements; any other value matches by equality.
type Where map[string]any

// Repository is one collection of records of type T.
type Repository[T any] interface {
	Create(ctx context.Context, doc *T) error
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context) ([]T, error)
	ListBy(ctx context.Context, field string, value any) ([]T, error)
	ListIn(ctx context.Context, field string, values []string) ([]T, error)
	ListWhere(ctx context.Context, where Where) ([]T, error)
	// Update overwrites every field of an existing record except its id and created_at.
	Update(ctx context.Context, doc *T) error
	Delete(ctx context.Context, id string) error
	DeleteBy(ctx context.Context, field string, value any) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountBy(ctx context.Context, field string, value any) (int64, error)
}

type Store interface {
	Units() Repository[models.Unit]
	Topics() Repository[models.Topic]
	Videos() Repository[models.Video]
	Notes() Repository[models.Note]
	Questions() Repository[models.Question]

	// UnitByNumber returns the first unit, in storage order, carrying the number.
	UnitByNumber(ctx context.Context, number int) (*models.Unit, error)

	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Open connects to the backend selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config, logger *log.Logger) (Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		return NewMongo(ctx, cfg, logger)
	case config.DriverPostgres, config.DriverSQLite:
		return NewGorm(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// matchesNothing reports whether where contains an empty set of accepted values.
func (w Where) matchesNothing() bool {
	for _, value := range w {
		if values, ok := value.([]string); ok && len(values) == 0 {
			return true
		}
	}
	return false
}

func (w Where) validate() error {
	for field := range w {
		if err := validField(field); err != nil {
			return err
		}
	}
	return nil
}

func validField(field string) error {
	switch field {
	case FieldID, FieldUnitID, FieldTopicID, FieldQuestionType, FieldDifficulty:
		return nil
	}
	return fmt.Errorf("store: unsupported filter field %q", field)
}
