package models

import "gorm.io/datatypes"

type Video struct {
	Base         `bson:",inline"`
	TopicID      string `json:"topic_id" bson:"topic_id" gorm:"index;size:64"`
	Title        string `json:"title" bson:"title"`
	Description  string `json:"description" bson:"description"`
	VideoURL     string `json:"video_url" bson:"video_url"`
	Duration     int    `json:"duration" bson:"duration"` // seconds
	ThumbnailURL string `json:"thumbnail_url" bson:"thumbnail_url"`
	OrderIndex   int    `json:"order_index" bson:"order_index"`
}

func (Video) TableName() string { return VideosCollection }

type Note struct {
	Base        `bson:",inline"`
	TopicID     string                          `json:"topic_id" bson:"topic_id" gorm:"index;size:64"`
	Title       string                          `json:"title" bson:"title"`
	Content     string                          `json:"content" bson:"content"`
	Images      datatypes.JSONSlice[Image]      `json:"images" bson:"images"`
	Attachments datatypes.JSONSlice[Attachment] `json:"attachments" bson:"attachments"`
}

func (Note) TableName() string { return NotesCollection }

type Image struct {
	URL     string `json:"url" bson:"url"`
	Caption string `json:"caption" bson:"caption"`
	AltText string `json:"alt_text" bson:"alt_text"`
}

type Attachment struct {
	URL      string `json:"url" bson:"url"`
	Filename string `json:"filename" bson:"filename"`
	FileType string `json:"file_type" bson:"file_type"`
	FileSize int64  `json:"file_size" bson:"file_size"`
}
