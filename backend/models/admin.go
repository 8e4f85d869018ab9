package models

// Placeholders shown for children whose parent no longer resolves.
const (
	UnknownUnit  = "Unknown Unit"
	UnknownTopic = "Unknown Topic"
)

// Stats are the dashboard counters.
type Stats struct {
	Units     int64 `json:"units"`
	Topics    int64 `json:"topics"`
	Videos    int64 `json:"videos"`
	Notes     int64 `json:"notes"`
	Questions int64 `json:"questions"`
}

type TopicListItem struct {
	Topic
	UnitTitle  string     `json:"unit_title"`
	UnitNumber UnitNumber `json:"unit_number"`
}

type VideoListItem struct {
	Video
	TopicTitle string `json:"topic_title"`
	UnitTitle  string `json:"unit_title"`
}

type NoteListItem struct {
	Note
	TopicTitle string `json:"topic_title"`
	UnitTitle  string `json:"unit_title"`
}

type QuestionListItem struct {
	Question
	TopicTitle string `json:"topic_title"`
	UnitTitle  string `json:"unit_title"`
}

// DeleteResult reports what a delete removed and what it left behind.
type DeleteResult struct {
	Deleted  int64            `json:"deleted"`
	Cascaded map[string]int64 `json:"cascaded,omitempty"`
	Orphaned map[string]int64 `json:"orphaned,omitempty"`
}
