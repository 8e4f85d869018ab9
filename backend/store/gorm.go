package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"coursecms/backend/config"
	"coursecms/backend/models"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// GormStore keeps the same flat collections as relational tables. Nested lists
// (options, images, attachments) live in JSON columns.
type GormStore struct {
	DB     *gorm.DB
	logger *log.Logger

	units     *gormRepo[models.Unit, *models.Unit]
	topics    *gormRepo[models.Topic, *models.Topic]
	videos    *gormRepo[models.Video, *models.Video]
	notes     *gormRepo[models.Note, *models.Note]
	questions *gormRepo[models.Question, *models.Question]
}

func NewGorm(cfg *config.Config, l *log.Logger) (*GormStore, error) {
	var dialector gorm.Dialector
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
		)
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("gorm store does not support driver %q", cfg.StoreDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", cfg.StoreDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	if cfg.StoreDriver == config.DriverSQLite {
		// A single writer avoids "database is locked" under concurrent requests.
		sqlDB.SetMaxOpenConns(1)
	}

	return NewGormFromDB(db, l), nil
}

// NewGormFromDB wraps an open gorm handle.
func NewGormFromDB(db *gorm.DB, l *log.Logger) *GormStore {
	return &GormStore{
		DB:        db,
		logger:    l,
		units:     &gormRepo[models.Unit, *models.Unit]{db: db},
		topics:    &gormRepo[models.Topic, *models.Topic]{db: db},
		videos:    &gormRepo[models.Video, *models.Video]{db: db},
		notes:     &gormRepo[models.Note, *models.Note]{db: db},
		questions: &gormRepo[models.Question, *models.Question]{db: db},
	}
}

func (s *GormStore) Units() Repository[models.Unit]         { return s.units }
func (s *GormStore) Topics() Repository[models.Topic]       { return s.topics }
func (s *GormStore) Videos() Repository[models.Video]       { return s.videos }
func (s *GormStore) Notes() Repository[models.Note]         { return s.notes }
func (s *GormStore) Questions() Repository[models.Question] { return s.questions }

func (s *GormStore) UnitByNumber(ctx context.Context, number int) (*models.Unit, error) {
	var unit models.Unit
	err := s.DB.WithContext(ctx).
		Where("unit_number = ?", number).
		Order("created_at, id").
		Take(&unit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("finding unit %d: %w", number, err)
	}
	return &unit, nil
}

func (s *GormStore) Migrate(ctx context.Context) error {
	s.logger.Println("Running Migrations...")
	err := s.DB.WithContext(ctx).AutoMigrate(
		&models.Unit{},
		&models.Topic{},
		&models.Video{},
		&models.Note{},
		&models.Question{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	s.logger.Println("Migrations completed successfully.")
	return nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close(context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type gormRepo[T any, PT interface {
	*T
	models.Model
}] struct {
	db *gorm.DB
}

// storageOrder approximates insertion order; ties fall back to the primary key.
const storageOrder = "created_at, id"

func (r *gormRepo[T, PT]) Create(ctx context.Context, doc *T) error {
	base := PT(doc).GetBase()
	if base.ID == "" {
		base.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	base.CreatedAt, base.UpdatedAt = now, now

	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		return fmt.Errorf("inserting %T: %w", doc, err)
	}
	return nil
}

func (r *gormRepo[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	var doc T
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading %T %s: %w", doc, id, err)
	}
	return &doc, nil
}

func (r *gormRepo[T, PT]) List(ctx context.Context) ([]T, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *gormRepo[T, PT]) ListBy(ctx context.Context, field string, value any) ([]T, error) {
	if err := validField(field); err != nil {
		return nil, err
	}
	return r.find(r.db.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: field}, Value: value}))
}

func (r *gormRepo[T, PT]) ListIn(ctx context.Context, field string, values []string) ([]T, error) {
	return r.ListWhere(ctx, Where{field: values})
}

func (r *gormRepo[T, PT]) ListWhere(ctx context.Context, where Where) ([]T, error) {
	if err := where.validate(); err != nil {
		return nil, err
	}
	if where.matchesNothing() {
		return []T{}, nil
	}

	tx := r.db.WithContext(ctx)
	for field, value := range where {
		col := clause.Column{Name: field}
		if values, ok := value.([]string); ok {
			in := make([]interface{}, len(values))
			for i, v := range values {
				in[i] = v
			}
			tx = tx.Where(clause.IN{Column: col, Values: in})
			continue
		}
		tx = tx.Where(clause.Eq{Column: col, Value: value})
	}
	return r.find(tx)
}

func (r *gormRepo[T, PT]) find(tx *gorm.DB) ([]T, error) {
	docs := make([]T, 0)
	if err := tx.Order(storageOrder).Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("querying %T: %w", docs, err)
	}
	return docs, nil
}

func (r *gormRepo[T, PT]) Update(ctx context.Context, doc *T) error {
	base := PT(doc).GetBase()
	base.UpdatedAt = time.Now().UTC()

	res := r.db.WithContext(ctx).Model(doc).Select("*").Omit("id", "created_at").Updates(doc)
	if res.Error != nil {
		return fmt.Errorf("updating %T %s: %w", doc, base.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRepo[T, PT]) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return fmt.Errorf("deleting %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRepo[T, PT]) DeleteBy(ctx context.Context, field string, value any) (int64, error) {
	if err := validField(field); err != nil {
		return 0, err
	}
	res := r.db.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: field}, Value: value}).Delete(new(T))
	if res.Error != nil {
		return 0, fmt.Errorf("deleting by %s: %w", field, res.Error)
	}
	return res.RowsAffected, nil
}

func (r *gormRepo[T, PT]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(new(T)).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("counting %T: %w", new(T), err)
	}
	return n, nil
}

func (r *gormRepo[T, PT]) CountBy(ctx context.Context, field string, value any) (int64, error) {
	if err := validField(field); err != nil {
		return 0, err
	}
	var n int64
	err := r.db.WithContext(ctx).Model(new(T)).
		Where(clause.Eq{Column: clause.Column{Name: field}, Value: value}).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("counting %T by %s: %w", new(T), field, err)
	}
	return n, nil
}
