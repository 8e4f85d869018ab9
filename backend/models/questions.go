package models

import "gorm.io/datatypes"

const (
	QuestionTypeMCQ   = "mcq"
	QuestionTypeEssay = "essay"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type Question struct {
	Base          `bson:",inline"`
	TopicID       string                              `json:"topic_id" bson:"topic_id" gorm:"index;size:64"`
	QuestionType  string                              `json:"question_type" bson:"question_type" gorm:"size:16"`
	QuestionText  string                              `json:"question_text" bson:"question_text"`
	Images        datatypes.JSONSlice[Image]          `json:"images" bson:"images"`
	Options       datatypes.JSONSlice[QuestionOption] `json:"options" bson:"options"`
	CorrectAnswer *string                             `json:"correct_answer,omitempty" bson:"correct_answer"`
	Explanation   string                              `json:"explanation" bson:"explanation"`
	Difficulty    string                              `json:"difficulty" bson:"difficulty" gorm:"size:16"`
	Points        int                                 `json:"points" bson:"points"`
}

func (Question) TableName() string { return QuestionsCollection }

type QuestionOption struct {
	Text        string `json:"text" bson:"text"`
	IsCorrect   bool   `json:"is_correct" bson:"is_correct"`
	Explanation string `json:"explanation" bson:"explanation"`
}

// CorrectOptions returns the options flagged correct, in order.
func (q *Question) CorrectOptions() []QuestionOption {
	var correct []QuestionOption
	for _, opt := range q.Options {
		if opt.IsCorrect {
			correct = append(correct, opt)
		}
	}
	return correct
}

// ResolvedCorrectAnswer returns the stored correct answer when present, otherwise the
// text of the single correct option of an MCQ. Essays and ambiguous MCQs yield nil.
func (q *Question) ResolvedCorrectAnswer() *string {
	if q.CorrectAnswer != nil {
		answer := *q.CorrectAnswer
		return &answer
	}
	if q.QuestionType != QuestionTypeMCQ {
		return nil
	}
	correct := q.CorrectOptions()
	if len(correct) != 1 {
		return nil
	}
	answer := correct[0].Text
	return &answer
}
