package models

import "time"

// Shapes served by the public read API. They are projections of the stored records,
// never the records themselves.

type UnitSummary struct {
	UnitNumber string `json:"unit_number"`
	UnitTitle  string `json:"unit_title"`
}

type UnitsResponse struct {
	Units []UnitSummary `json:"units"`
}

type UnitDocument struct {
	UnitNumber UnitNumber      `json:"unit_number"`
	UnitTitle  string          `json:"unit_title"`
	Topics     []TopicDocument `json:"topics"`
}

type TopicDocument struct {
	TopicContent string         `json:"topic_content"`
	Questions    []QuestionView `json:"questions"`
	Notes        []NoteView     `json:"notes"`
	Videos       []VideoView    `json:"videos"`
}

type VideoView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	Duration    int    `json:"duration"`
	OrderIndex  int    `json:"order_index"`
}

type NoteView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type OptionView struct {
	Text        string `json:"text"`
	IsCorrect   bool   `json:"is_correct"`
	Explanation string `json:"explanation"`
}

type QuestionView struct {
	ID              string       `json:"id"`
	QuestionText    string       `json:"question_text"`
	QuestionType    string       `json:"question_type"`
	DifficultyLevel string       `json:"difficulty_level"`
	Options         []OptionView `json:"options"`
	CorrectAnswer   *string      `json:"correct_answer"`
	Explanation     string       `json:"explanation"`
}

func (v *Video) View() VideoView {
	return VideoView{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		VideoURL:    v.VideoURL,
		Duration:    v.Duration,
		OrderIndex:  v.OrderIndex,
	}
}

func (n *Note) View() NoteView {
	return NoteView{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
	}
}

// View projects a question. Options stay null when none are stored.
func (q *Question) View() QuestionView {
	view := QuestionView{
		ID:              q.ID,
		QuestionText:    q.QuestionText,
		QuestionType:    q.QuestionType,
		DifficultyLevel: q.Difficulty,
		CorrectAnswer:   q.ResolvedCorrectAnswer(),
		Explanation:     q.Explanation,
	}
	if q.Options != nil {
		view.Options = make([]OptionView, 0, len(q.Options))
		for _, opt := range q.Options {
			view.Options = append(view.Options, OptionView{
				Text:        opt.Text,
				IsCorrect:   opt.IsCorrect,
				Explanation: opt.Explanation,
			})
		}
	}
	return view
}
