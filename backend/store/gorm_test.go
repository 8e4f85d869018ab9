package store_test

import (
	"context"
	"testing"
	"time"

	"coursecms/backend/models"
	"coursecms/backend/store"
	"coursecms/backend/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormUnitCRUD(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)

	unit := &models.Unit{UnitNumber: 7, UnitTitle: "Relational Design", Description: "Keys and normal forms"}
	require.NoError(t, st.Units().Create(ctx, unit))
	assert.NotEmpty(t, unit.ID)
	assert.False(t, unit.CreatedAt.IsZero())

	got, err := st.Units().Get(ctx, unit.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UnitNumber(7), got.UnitNumber)
	assert.Equal(t, "Relational Design", got.UnitTitle)

	got.UnitTitle = "Relational Modelling"
	got.Description = ""
	require.NoError(t, st.Units().Update(ctx, got))

	updated, err := st.Units().Get(ctx, unit.ID)
	require.NoError(t, err)
	assert.Equal(t, "Relational Modelling", updated.UnitTitle)
	assert.Empty(t, updated.Description, "update overwrites every field, including zero values")
	assert.WithinDuration(t, unit.CreatedAt, updated.CreatedAt, time.Second)

	require.NoError(t, st.Units().Delete(ctx, unit.ID))
	_, err = st.Units().Get(ctx, unit.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGormMissingRecords(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)

	_, err := st.Topics().Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = st.Topics().Update(ctx, &models.Topic{Base: models.Base{ID: "missing"}})
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = st.Topics().Delete(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.UnitByNumber(ctx, 999999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGormUnitByNumberReturnsFirstStored(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)

	first := &models.Unit{UnitNumber: 3, UnitTitle: "First"}
	require.NoError(t, st.Units().Create(ctx, first))
	require.NoError(t, st.Units().Create(ctx, &models.Unit{UnitNumber: 3, UnitTitle: "Second"}))

	got, err := st.UnitByNumber(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestGormForeignKeyQueries(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)

	for _, topicID := range []string{"t1", "t1", "t2"} {
		require.NoError(t, st.Videos().Create(ctx, &models.Video{TopicID: topicID, Title: "video"}))
	}

	byT1, err := st.Videos().ListBy(ctx, store.FieldTopicID, "t1")
	require.NoError(t, err)
	assert.Len(t, byT1, 2)

	in, err := st.Videos().ListIn(ctx, store.FieldTopicID, []string{"t1", "t2", "t3"})
	require.NoError(t, err)
	assert.Len(t, in, 3)

	none, err := st.Videos().ListIn(ctx, store.FieldTopicID, nil)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	n, err := st.Videos().CountBy(ctx, store.FieldTopicID, "t2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	deleted, err := st.Videos().DeleteBy(ctx, store.FieldTopicID, "t1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	total, err := st.Videos().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, err = st.Videos().ListBy(ctx, "title; DROP TABLE videos", "x")
	assert.Error(t, err)
}

func TestGormListWhere(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)

	for _, q := range []models.Question{
		{TopicID: "t1", QuestionType: models.QuestionTypeMCQ, Difficulty: models.DifficultyHard},
		{TopicID: "t1", QuestionType: models.QuestionTypeEssay, Difficulty: models.DifficultyHard},
		{TopicID: "t2", QuestionType: models.QuestionTypeMCQ, Difficulty: models.DifficultyHard},
		{TopicID: "t3", QuestionType: models.QuestionTypeMCQ, Difficulty: models.DifficultyEasy},
	} {
		require.NoError(t, st.Questions().Create(ctx, &q))
	}

	got, err := st.Questions().ListWhere(ctx, store.Where{
		store.FieldTopicID:      []string{"t1", "t2", "t3"},
		store.FieldQuestionType: models.QuestionTypeMCQ,
		store.FieldDifficulty:   models.DifficultyHard,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "t1", got[0].TopicID)
	assert.Equal(t, "t2", got[1].TopicID)

	none, err := st.Questions().ListWhere(ctx, store.Where{store.FieldTopicID: []string{}, store.FieldDifficulty: models.DifficultyHard})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = st.Questions().ListWhere(ctx, store.Where{"points": 1})
	assert.Error(t, err)
}

func TestGormQuestionJSONColumns(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)

	q := &models.Question{
		TopicID:      "t1",
		QuestionType: models.QuestionTypeMCQ,
		QuestionText: "Which key uniquely identifies a row?",
		Options: []models.QuestionOption{
			{Text: "Primary key", IsCorrect: true, Explanation: "By definition"},
			{Text: "Foreign key"},
		},
		Difficulty: models.DifficultyEasy,
		Points:     5,
	}
	require.NoError(t, st.Questions().Create(ctx, q))

	got, err := st.Questions().Get(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, got.Options, 2)
	assert.True(t, got.Options[0].IsCorrect)
	assert.Equal(t, "By definition", got.Options[0].Explanation)
	assert.Nil(t, got.CorrectAnswer)

	essay := &models.Question{TopicID: "t1", QuestionType: models.QuestionTypeEssay, QuestionText: "Explain normalization."}
	require.NoError(t, st.Questions().Create(ctx, essay))

	gotEssay, err := st.Questions().Get(ctx, essay.ID)
	require.NoError(t, err)
	assert.Nil(t, gotEssay.Options)
}
