package models

import "time"

// Collection names, shared by the Mongo collections and the relational tables.
const (
	UnitsCollection     = "units"
	TopicsCollection    = "topics"
	VideosCollection    = "videos"
	NotesCollection     = "notes"
	QuestionsCollection = "questions"
)

// Base holds the fields every stored record carries.
type Base struct {
	ID        string    `json:"id" bson:"_id,omitempty" gorm:"primaryKey;size:64"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (b *Base) GetBase() *Base { return b }

// Model is implemented by every record type through its embedded Base.
type Model interface {
	GetBase() *Base
}
