package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"testing"

	"coursecms/backend/models"
	"coursecms/backend/store"
	"coursecms/backend/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = log.New(io.Discard, "", 0)

func seedUnit(t *testing.T, st store.Store, number int, title string) *models.Unit {
	t.Helper()
	u := &models.Unit{UnitNumber: models.UnitNumber(number), UnitTitle: title, Description: "Unit description"}
	require.NoError(t, st.Units().Create(context.Background(), u))
	return u
}

func seedTopic(t *testing.T, st store.Store, unitID, title string, order int) *models.Topic {
	t.Helper()
	topic := &models.Topic{UnitID: unitID, TopicTitle: title, TopicOrder: order}
	require.NoError(t, st.Topics().Create(context.Background(), topic))
	return topic
}

func TestUnitContentWithoutTopics(t *testing.T) {
	st := storetest.New(t)
	seedUnit(t, st, 1, "Intro")

	doc, err := NewContentService(st, discard).UnitContent(context.Background(), 1)
	require.NoError(t, err)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"unit_number":1,"unit_title":"Intro","topics":[]}`, string(out))
}

func TestUnitContentOrdering(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)
	unit := seedUnit(t, st, 2, "Databases")

	seedTopic(t, st, unit.ID, "Joins", 2)
	seedTopic(t, st, unit.ID, "Unordered", 0)
	first := seedTopic(t, st, unit.ID, "Keys", 1)
	seedTopic(t, st, unit.ID, "Indexes", 2)

	for _, v := range []struct {
		title string
		order int
	}{{"third", 3}, {"no index", 0}, {"first", 1}, {"also first", 1}} {
		require.NoError(t, st.Videos().Create(ctx, &models.Video{TopicID: first.ID, Title: v.title, OrderIndex: v.order}))
	}

	doc, err := NewContentService(st, discard).UnitContent(ctx, 2)
	require.NoError(t, err)

	var topics []string
	for _, topic := range doc.Topics {
		topics = append(topics, topic.TopicContent)
	}
	assert.Equal(t, []string{"Unordered", "Keys", "Joins", "Indexes"}, topics)

	var videos []string
	for _, v := range doc.Topics[1].Videos {
		videos = append(videos, v.Title)
	}
	assert.Equal(t, []string{"no index", "first", "also first", "third"}, videos)
}

func TestUnitContentRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)
	unit := seedUnit(t, st, 3, "Normalization")
	topic := seedTopic(t, st, unit.ID, "Normal forms", 1)

	video := &models.Video{TopicID: topic.ID, Title: "1NF", Description: "First normal form", VideoURL: "https://videos.example/1nf", Duration: 300, OrderIndex: 1}
	note := &models.Note{TopicID: topic.ID, Title: "Summary", Content: "Every attribute atomic."}
	question := &models.Question{
		TopicID:      topic.ID,
		QuestionType: models.QuestionTypeMCQ,
		QuestionText: "Which form removes transitive dependencies?",
		Options: []models.QuestionOption{
			{Text: "2NF"},
			{Text: "3NF", IsCorrect: true, Explanation: "Transitive dependencies go in 3NF"},
		},
		Explanation: "Codd",
		Difficulty:  models.DifficultyMedium,
		Points:      2,
	}
	require.NoError(t, st.Videos().Create(ctx, video))
	require.NoError(t, st.Notes().Create(ctx, note))
	require.NoError(t, st.Questions().Create(ctx, question))

	doc, err := NewContentService(st, discard).UnitContent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, doc.Topics, 1)

	got := doc.Topics[0]
	assert.Equal(t, "Normal forms", got.TopicContent)
	require.Len(t, got.Videos, 1)
	assert.Equal(t, models.VideoView{ID: video.ID, Title: "1NF", Description: "First normal form", VideoURL: "https://videos.example/1nf", Duration: 300, OrderIndex: 1}, got.Videos[0])

	require.Len(t, got.Notes, 1)
	assert.Equal(t, note.ID, got.Notes[0].ID)
	assert.Equal(t, "Every attribute atomic.", got.Notes[0].Content)

	require.Len(t, got.Questions, 1)
	q := got.Questions[0]
	assert.Equal(t, "medium", q.DifficultyLevel)
	assert.Len(t, q.Options, 2)
	require.NotNil(t, q.CorrectAnswer)
	assert.Equal(t, "3NF", *q.CorrectAnswer)
}

func TestUnitContentRepeatedReadsAreIdentical(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)
	unit := seedUnit(t, st, 4, "Transactions")
	for i, title := range []string{"ACID", "Isolation", "Locks", "MVCC", "Deadlocks", "Recovery"} {
		topic := seedTopic(t, st, unit.ID, title, i%3)
		require.NoError(t, st.Notes().Create(ctx, &models.Note{TopicID: topic.ID, Title: title, Content: "notes on " + title}))
	}

	svc := NewContentService(st, discard)
	first, err := svc.UnitContent(ctx, 4)
	require.NoError(t, err)
	second, err := svc.UnitContent(ctx, 4)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestUnitContentIgnoresOrphans(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)
	unit := seedUnit(t, st, 5, "Security")
	seedTopic(t, st, "deleted-unit", "Orphan topic", 1)
	require.NoError(t, st.Videos().Create(ctx, &models.Video{TopicID: "deleted-topic", Title: "Orphan video"}))
	seedTopic(t, st, unit.ID, "Grants", 1)

	doc, err := NewContentService(st, discard).UnitContent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, doc.Topics, 1)
	assert.Equal(t, "Grants", doc.Topics[0].TopicContent)
	assert.Empty(t, doc.Topics[0].Videos)
}

func TestUnitContentNotFound(t *testing.T) {
	st := storetest.New(t)
	seedUnit(t, st, 1, "Intro")

	_, err := NewContentService(st, discard).UnitContent(context.Background(), 999999)
	assert.ErrorIs(t, err, ErrUnitNotFound)
}

func TestUnitContentStoreFailureIsGeneric(t *testing.T) {
	st := storetest.New(t)
	unit := seedUnit(t, st, 6, "Replication")
	seedTopic(t, st, unit.ID, "Leaders", 1)

	broken := &brokenStore{Store: st}
	_, err := NewContentService(broken, discard).UnitContent(context.Background(), 6)
	assert.ErrorIs(t, err, ErrContentUnavailable)
	assert.NotErrorIs(t, err, ErrUnitNotFound)
}

func TestUnitIndexSortsNumerically(t *testing.T) {
	st := storetest.New(t)
	seedUnit(t, st, 10, "Ten")
	seedUnit(t, st, 2, "Two")
	seedUnit(t, st, 1, "One")

	units, err := NewContentService(st, discard).UnitIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.UnitSummary{
		{UnitNumber: "1", UnitTitle: "One"},
		{UnitNumber: "2", UnitTitle: "Two"},
		{UnitNumber: "10", UnitTitle: "Ten"},
	}, units)
}

var errBroken = errors.New("connection reset")

// brokenStore fails every question read and count.
type brokenStore struct {
	store.Store
}

func (b *brokenStore) Questions() store.Repository[models.Question] {
	return brokenRepo[models.Question]{b.Store.Questions()}
}

type brokenRepo[T any] struct {
	store.Repository[T]
}

func (brokenRepo[T]) ListBy(context.Context, string, any) ([]T, error) { return nil, errBroken }
func (brokenRepo[T]) Count(context.Context) (int64, error)              { return 0, errBroken }
