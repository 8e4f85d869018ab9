package store

import (
	"context"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"coursecms/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestUnitNumberFilterMatchesBothRepresentations(t *testing.T) {
	filter := unitNumberFilter(7)
	assert.Equal(t, bson.M{"unit_number": bson.M{"$in": bson.A{7, "7"}}}, filter)
}

func TestIDFilter(t *testing.T) {
	oid := primitive.NewObjectID()
	assert.Equal(t, bson.M{"_id": bson.M{"$in": bson.A{oid.Hex(), oid}}}, idFilter(oid.Hex()))
	assert.Equal(t, bson.M{"_id": "not-an-object-id"}, idFilter("not-an-object-id"))
}

func TestFieldFilter(t *testing.T) {
	assert.Equal(t, bson.M{"topic_id": "t1"}, fieldFilter(FieldTopicID, "t1"))
	assert.Equal(t, bson.M{"_id": "u1"}, fieldFilter(FieldID, "u1"))
}

func TestInFilter(t *testing.T) {
	assert.Equal(t, bson.M{"topic_id": bson.M{"$in": []string{"t1", "t2"}}}, inFilter(FieldTopicID, []string{"t1", "t2"}))

	oid := primitive.NewObjectID()
	assert.Equal(t, bson.M{"_id": bson.M{"$in": bson.A{"u1", oid.Hex(), oid}}}, inFilter(FieldID, []string{"u1", oid.Hex()}))
}

func TestToBsonMKeepsAllFields(t *testing.T) {
	m, err := toBsonM(models.Topic{Base: models.Base{ID: "t1"}, UnitID: "u1", TopicOrder: 2})
	require.NoError(t, err)
	assert.Equal(t, "t1", m["_id"])
	assert.Equal(t, "u1", m["unit_id"])
	assert.Contains(t, m, "created_at")
}

// TestMongoStoreIntegration runs against a real server when MONGO_TEST_URI is set.
func TestMongoStoreIntegration(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" || testing.Short() {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	dbName := "course_content_test_" + primitive.NewObjectID().Hex()
	t.Cleanup(func() {
		_ = client.Database(dbName).Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	st := NewMongoFromClient(client, dbName, log.New(io.Discard, "", 0))

	// A legacy unit written with a string unit_number.
	_, err = st.db.Collection(models.UnitsCollection).InsertOne(ctx, bson.M{
		"_id": "legacy", "unit_number": "4", "unit_title": "Legacy",
	})
	require.NoError(t, err)

	unit, err := st.UnitByNumber(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "legacy", unit.ID)
	assert.Equal(t, models.UnitNumber(4), unit.UnitNumber)

	require.NoError(t, st.Migrate(ctx))

	var raw bson.M
	require.NoError(t, st.db.Collection(models.UnitsCollection).FindOne(ctx, bson.M{"_id": "legacy"}).Decode(&raw))
	assert.IsType(t, int32(0), raw["unit_number"])

	topic := &models.Topic{UnitID: unit.ID, TopicTitle: "Keys", TopicOrder: 1}
	require.NoError(t, st.Topics().Create(ctx, topic))
	topics, err := st.Topics().ListBy(ctx, FieldUnitID, unit.ID)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, topic.ID, topics[0].ID)

	topic.TopicTitle = "Primary keys"
	require.NoError(t, st.Topics().Update(ctx, topic))
	got, err := st.Topics().Get(ctx, topic.ID)
	require.NoError(t, err)
	assert.Equal(t, "Primary keys", got.TopicTitle)

	require.NoError(t, st.Topics().Delete(ctx, topic.ID))
	assert.ErrorIs(t, st.Topics().Delete(ctx, topic.ID), ErrNotFound)
}
