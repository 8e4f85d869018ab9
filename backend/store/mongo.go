package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"coursecms/backend/config"
	"coursecms/backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps each entity in its own collection of flat documents.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	logger *log.Logger

	units     *mongoRepo[models.Unit, *models.Unit]
	topics    *mongoRepo[models.Topic, *models.Topic]
	videos    *mongoRepo[models.Video, *models.Video]
	notes     *mongoRepo[models.Note, *models.Note]
	questions *mongoRepo[models.Question, *models.Question]
}

func NewMongo(ctx context.Context, cfg *config.Config, logger *log.Logger) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return NewMongoFromClient(client, cfg.MongoDatabase, logger), nil
}

// NewMongoFromClient wraps an already connected client.
func NewMongoFromClient(client *mongo.Client, database string, logger *log.Logger) *MongoStore {
	db := client.Database(database)
	return &MongoStore{
		client:    client,
		db:        db,
		logger:    logger,
		units:     newMongoRepo[models.Unit, *models.Unit](db.Collection(models.UnitsCollection)),
		topics:    newMongoRepo[models.Topic, *models.Topic](db.Collection(models.TopicsCollection)),
		videos:    newMongoRepo[models.Video, *models.Video](db.Collection(models.VideosCollection)),
		notes:     newMongoRepo[models.Note, *models.Note](db.Collection(models.NotesCollection)),
		questions: newMongoRepo[models.Question, *models.Question](db.Collection(models.QuestionsCollection)),
	}
}

func (s *MongoStore) Units() Repository[models.Unit]         { return s.units }
func (s *MongoStore) Topics() Repository[models.Topic]       { return s.topics }
func (s *MongoStore) Videos() Repository[models.Video]       { return s.videos }
func (s *MongoStore) Notes() Repository[models.Note]         { return s.notes }
func (s *MongoStore) Questions() Repository[models.Question] { return s.questions }

func (s *MongoStore) UnitByNumber(ctx context.Context, number int) (*models.Unit, error) {
	var unit models.Unit
	err := s.units.coll.FindOne(ctx, unitNumberFilter(number)).Decode(&unit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("finding unit %d: %w", number, err)
	}
	return &unit, nil
}

// unitNumberFilter matches the integer form and the legacy string form of a number.
func unitNumberFilter(number int) bson.M {
	return bson.M{"unit_number": bson.M{"$in": bson.A{number, strconv.Itoa(number)}}}
}

// Migrate creates the foreign-key indexes and rewrites string unit numbers as integers.
func (s *MongoStore) Migrate(ctx context.Context) error {
	indexes := map[string]string{
		models.UnitsCollection:     "unit_number",
		models.TopicsCollection:    FieldUnitID,
		models.VideosCollection:    FieldTopicID,
		models.NotesCollection:     FieldTopicID,
		models.QuestionsCollection: FieldTopicID,
	}
	for collection, field := range indexes {
		_, err := s.db.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: field, Value: 1}},
		})
		if err != nil {
			return fmt.Errorf("creating index %s.%s: %w", collection, field, err)
		}
	}

	normalized, skipped, err := s.normalizeUnitNumbers(ctx)
	if err != nil {
		return err
	}
	if normalized > 0 || skipped > 0 {
		s.logger.Printf("unit_number normalization: %d converted, %d left as non-numeric strings", normalized, skipped)
	}
	return nil
}

func (s *MongoStore) normalizeUnitNumbers(ctx context.Context) (normalized, skipped int, err error) {
	coll := s.units.coll
	cursor, err := coll.Find(ctx, bson.M{"unit_number": bson.M{"$type": "string"}})
	if err != nil {
		return 0, 0, fmt.Errorf("scanning string unit numbers: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc struct {
			ID         interface{} `bson:"_id"`
			UnitNumber string      `bson:"unit_number"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return normalized, skipped, fmt.Errorf("decoding unit: %w", err)
		}
		number, err := models.ParseUnitNumber(doc.UnitNumber)
		if err != nil {
			s.logger.Printf("unit %v keeps non-numeric unit_number %q", doc.ID, doc.UnitNumber)
			skipped++
			continue
		}
		_, err = coll.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": bson.M{"unit_number": int(number)}})
		if err != nil {
			return normalized, skipped, fmt.Errorf("normalizing unit %v: %w", doc.ID, err)
		}
		normalized++
	}
	return normalized, skipped, cursor.Err()
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

type mongoRepo[T any, PT interface {
	*T
	models.Model
}] struct {
	coll *mongo.Collection
}

func newMongoRepo[T any, PT interface {
	*T
	models.Model
}](coll *mongo.Collection) *mongoRepo[T, PT] {
	return &mongoRepo[T, PT]{coll: coll}
}

func fieldFilter(field string, value any) bson.M {
	if id, ok := value.(string); ok && field == FieldID {
		return idFilter(id)
	}
	return bson.M{field: value}
}

func inFilter(field string, values []string) bson.M {
	if field != FieldID {
		return bson.M{field: bson.M{"$in": values}}
	}
	ids := make(bson.A, 0, 2*len(values))
	for _, v := range values {
		ids = append(ids, v)
		if oid, err := primitive.ObjectIDFromHex(v); err == nil {
			ids = append(ids, oid)
		}
	}
	return bson.M{"_id": bson.M{"$in": ids}}
}

// idFilter matches string ids and, for hex ids, ObjectIDs written by other tools.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{id, oid}}}
	}
	return bson.M{"_id": id}
}

func (r *mongoRepo[T, PT]) Create(ctx context.Context, doc *T) error {
	base := PT(doc).GetBase()
	if base.ID == "" {
		base.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	base.CreatedAt, base.UpdatedAt = now, now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("inserting into %s: %w", r.coll.Name(), err)
	}
	return nil
}

func (r *mongoRepo[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	var doc T
	if err := r.coll.FindOne(ctx, idFilter(id)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading %s/%s: %w", r.coll.Name(), id, err)
	}
	return &doc, nil
}

func (r *mongoRepo[T, PT]) List(ctx context.Context) ([]T, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoRepo[T, PT]) ListBy(ctx context.Context, field string, value any) ([]T, error) {
	if err := validField(field); err != nil {
		return nil, err
	}
	return r.find(ctx, fieldFilter(field, value))
}

func (r *mongoRepo[T, PT]) ListIn(ctx context.Context, field string, values []string) ([]T, error) {
	return r.ListWhere(ctx, Where{field: values})
}

func (r *mongoRepo[T, PT]) ListWhere(ctx context.Context, where Where) ([]T, error) {
	if err := where.validate(); err != nil {
		return nil, err
	}
	if where.matchesNothing() {
		return []T{}, nil
	}

	filter := bson.M{}
	for field, value := range where {
		cond := fieldFilter(field, value)
		if values, ok := value.([]string); ok {
			cond = inFilter(field, values)
		}
		for k, v := range cond {
			filter[k] = v
		}
	}
	return r.find(ctx, filter)
}

func (r *mongoRepo[T, PT]) find(ctx context.Context, filter bson.M) ([]T, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", r.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	docs := make([]T, 0)
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", r.coll.Name(), err)
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", r.coll.Name(), err)
	}
	return docs, nil
}

func (r *mongoRepo[T, PT]) Update(ctx context.Context, doc *T) error {
	base := PT(doc).GetBase()
	base.UpdatedAt = time.Now().UTC()

	fields, err := toBsonM(doc)
	if err != nil {
		return err
	}
	delete(fields, "_id")
	delete(fields, "created_at")

	res, err := r.coll.UpdateOne(ctx, idFilter(base.ID), bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("updating %s/%s: %w", r.coll.Name(), base.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoRepo[T, PT]) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, idFilter(id))
	if err != nil {
		return fmt.Errorf("deleting %s/%s: %w", r.coll.Name(), id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoRepo[T, PT]) DeleteBy(ctx context.Context, field string, value any) (int64, error) {
	if err := validField(field); err != nil {
		return 0, err
	}
	res, err := r.coll.DeleteMany(ctx, fieldFilter(field, value))
	if err != nil {
		return 0, fmt.Errorf("deleting from %s: %w", r.coll.Name(), err)
	}
	return res.DeletedCount, nil
}

func (r *mongoRepo[T, PT]) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", r.coll.Name(), err)
	}
	return n, nil
}

func (r *mongoRepo[T, PT]) CountBy(ctx context.Context, field string, value any) (int64, error) {
	if err := validField(field); err != nil {
		return 0, err
	}
	n, err := r.coll.CountDocuments(ctx, fieldFilter(field, value))
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", r.coll.Name(), err)
	}
	return n, nil
}

// toBsonM converts a document to bson.M for partial updates.
func toBsonM(document interface{}) (bson.M, error) {
	data, err := bson.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("marshalling document: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshalling document: %w", err)
	}
	return m, nil
}
