package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestUnitNumberDecodesLegacyBSON(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  UnitNumber
	}{
		{"int32", int32(4), 4},
		{"int64", int64(12), 12},
		{"double", 3.0, 3},
		{"numeric string", "7", 7},
		{"padded string", " 9 ", 9},
		{"non-numeric string", "seven", 0},
		{"null", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := bson.Marshal(bson.M{"unit_number": tt.value, "unit_title": "T"})
			require.NoError(t, err)

			var unit Unit
			require.NoError(t, bson.Unmarshal(raw, &unit))
			assert.Equal(t, tt.want, unit.UnitNumber)
			assert.Equal(t, "T", unit.UnitTitle)
		})
	}
}

func TestUnitNumberEncodesAsInteger(t *testing.T) {
	raw, err := bson.Marshal(Unit{Base: Base{ID: "u1"}, UnitNumber: 5})
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.EqualValues(t, 5, doc["unit_number"])
	assert.Equal(t, "u1", doc["_id"])
	assert.IsType(t, int32(0), doc["unit_number"])
}

func TestUnitNumberJSON(t *testing.T) {
	var in struct {
		A UnitNumber `json:"a"`
		B UnitNumber `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 7, "b": "8"}`), &in))
	assert.Equal(t, UnitNumber(7), in.A)
	assert.Equal(t, UnitNumber(8), in.B)

	assert.Error(t, json.Unmarshal([]byte(`{"a": "x"}`), &in))
	assert.Error(t, json.Unmarshal([]byte(`{"a": true}`), &in))

	out, err := json.Marshal(UnitDocument{UnitNumber: 7, UnitTitle: "X", Topics: []TopicDocument{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"unit_number":7,"unit_title":"X","topics":[]}`, string(out))
}

func TestQuestionView(t *testing.T) {
	stored := "42"

	tests := []struct {
		name        string
		question    Question
		wantAnswer  *string
		wantOptions bool
	}{
		{
			name: "mcq derives answer from the correct option",
			question: Question{
				QuestionType: QuestionTypeMCQ,
				Options: []QuestionOption{
					{Text: "A"},
					{Text: "B", IsCorrect: true},
				},
			},
			wantAnswer:  strPtr("B"),
			wantOptions: true,
		},
		{
			name: "stored answer wins",
			question: Question{
				QuestionType:  QuestionTypeMCQ,
				CorrectAnswer: &stored,
				Options:       []QuestionOption{{Text: "A", IsCorrect: true}},
			},
			wantAnswer:  strPtr("42"),
			wantOptions: true,
		},
		{
			name:     "essay has neither",
			question: Question{QuestionType: QuestionTypeEssay},
		},
		{
			name: "ambiguous mcq has no answer",
			question: Question{
				QuestionType: QuestionTypeMCQ,
				Options:      []QuestionOption{{Text: "A", IsCorrect: true}, {Text: "B", IsCorrect: true}},
			},
			wantOptions: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := tt.question.View()
			assert.Equal(t, tt.wantAnswer, view.CorrectAnswer)
			assert.Equal(t, tt.wantOptions, view.Options != nil)
		})
	}
}

func TestQuestionViewJSONShape(t *testing.T) {
	q := Question{
		Base:         Base{ID: "q1"},
		QuestionType: QuestionTypeEssay,
		QuestionText: "Explain joins",
		Difficulty:   DifficultyHard,
		Explanation:  "Think sets",
	}

	out, err := json.Marshal(q.View())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "q1",
		"question_text": "Explain joins",
		"question_type": "essay",
		"difficulty_level": "hard",
		"options": null,
		"correct_answer": null,
		"explanation": "Think sets"
	}`, string(out))
}

func strPtr(s string) *string { return &s }
