// Package validators holds the admin write payloads and the rules they must pass
// before anything reaches the store.
package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"coursecms/backend/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(questionRules, QuestionRequest{})
	return v
}

// Validate runs the struct tags and cross-field rules of req.
func Validate(req interface{}) error {
	return validate.Struct(req)
}

// Messages turns a validation failure into field -> message pairs keyed by the
// payload's JSON names. Any other error is reported under "body".
func Messages(err error) map[string]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string]string{"body": err.Error()}
	}

	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		key := fe.Namespace()
		if i := strings.Index(key, "."); i >= 0 {
			key = key[i+1:]
		}
		out[key] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "http_url", "url":
		return "must be a valid http(s) URL"
	case "gte":
		return fmt.Sprintf("must not be below %s", fe.Param())
	case tagOneCorrect:
		return "exactly one option must be marked correct"
	case tagMinOptions:
		return "multiple choice questions need at least 2 options"
	}
	return "is invalid"
}

type UnitRequest struct {
	UnitNumber  models.UnitNumber `json:"unit_number" validate:"min=1"`
	UnitTitle   string            `json:"unit_title" validate:"required,min=3"`
	Description string            `json:"description" validate:"required,min=10"`
}

func (r *UnitRequest) ToModel() *models.Unit {
	return &models.Unit{
		UnitNumber:  r.UnitNumber,
		UnitTitle:   strings.TrimSpace(r.UnitTitle),
		Description: strings.TrimSpace(r.Description),
	}
}

type TopicRequest struct {
	UnitID      string `json:"unit_id" validate:"required"`
	TopicTitle  string `json:"topic_title" validate:"required,min=3"`
	TopicOrder  int    `json:"topic_order" validate:"min=1"`
	Description string `json:"description" validate:"required,min=10"`
}

func (r *TopicRequest) ToModel() *models.Topic {
	return &models.Topic{
		UnitID:      strings.TrimSpace(r.UnitID),
		TopicTitle:  strings.TrimSpace(r.TopicTitle),
		TopicOrder:  r.TopicOrder,
		Description: strings.TrimSpace(r.Description),
	}
}

type VideoRequest struct {
	TopicID      string `json:"topic_id" validate:"required"`
	Title        string `json:"title" validate:"required,min=3"`
	Description  string `json:"description" validate:"required,min=10"`
	VideoURL     string `json:"video_url" validate:"required,http_url"`
	Duration     int    `json:"duration" validate:"min=1"`
	ThumbnailURL string `json:"thumbnail_url" validate:"omitempty,http_url"`
	OrderIndex   int    `json:"order_index" validate:"min=1"`
}

func (r *VideoRequest) ToModel() *models.Video {
	return &models.Video{
		TopicID:      strings.TrimSpace(r.TopicID),
		Title:        strings.TrimSpace(r.Title),
		Description:  strings.TrimSpace(r.Description),
		VideoURL:     strings.TrimSpace(r.VideoURL),
		Duration:     r.Duration,
		ThumbnailURL: strings.TrimSpace(r.ThumbnailURL),
		OrderIndex:   r.OrderIndex,
	}
}

type ImageRequest struct {
	URL     string `json:"url" validate:"required,http_url"`
	Caption string `json:"caption"`
	AltText string `json:"alt_text"`
}

type AttachmentRequest struct {
	URL      string `json:"url" validate:"required,http_url"`
	Filename string `json:"filename" validate:"required"`
	FileType string `json:"file_type"`
	FileSize int64  `json:"file_size" validate:"gte=0"`
}

type NoteRequest struct {
	TopicID     string              `json:"topic_id" validate:"required"`
	Title       string              `json:"title" validate:"required,min=3"`
	Content     string              `json:"content" validate:"required,min=10"`
	Images      []ImageRequest      `json:"images" validate:"dive"`
	Attachments []AttachmentRequest `json:"attachments" validate:"dive"`
}

func (r *NoteRequest) ToModel() *models.Note {
	note := &models.Note{
		TopicID: strings.TrimSpace(r.TopicID),
		Title:   strings.TrimSpace(r.Title),
		Content: r.Content,
		Images:  images(r.Images),
	}
	for _, a := range r.Attachments {
		note.Attachments = append(note.Attachments, models.Attachment{
			URL:      a.URL,
			Filename: a.Filename,
			FileType: a.FileType,
			FileSize: a.FileSize,
		})
	}
	return note
}

type OptionRequest struct {
	Text        string `json:"text" validate:"required"`
	IsCorrect   bool   `json:"is_correct"`
	Explanation string `json:"explanation"`
}

type QuestionRequest struct {
	TopicID       string          `json:"topic_id" validate:"required"`
	QuestionType  string          `json:"question_type" validate:"required,oneof=mcq essay"`
	QuestionText  string          `json:"question_text" validate:"required,min=10"`
	Images        []ImageRequest  `json:"images" validate:"dive"`
	Options       []OptionRequest `json:"options" validate:"dive"`
	CorrectAnswer *string         `json:"correct_answer"`
	Explanation   string          `json:"explanation"`
	Difficulty    string          `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Points        int             `json:"points" validate:"min=1"`
}

const (
	tagOneCorrect = "one_correct"
	tagMinOptions = "min_options"
)

// questionRules enforces the multiple choice shape: at least two options and
// exactly one of them correct.
func questionRules(sl validator.StructLevel) {
	q := sl.Current().Interface().(QuestionRequest)
	if q.QuestionType != models.QuestionTypeMCQ {
		return
	}
	if len(q.Options) < 2 {
		sl.ReportError(q.Options, "options", "Options", tagMinOptions, "2")
		return
	}
	correct := 0
	for _, o := range q.Options {
		if o.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		sl.ReportError(q.Options, "options", "Options", tagOneCorrect, "")
	}
}

// ToModel drops options from essay questions, which never carry them.
func (r *QuestionRequest) ToModel() *models.Question {
	q := &models.Question{
		TopicID:      strings.TrimSpace(r.TopicID),
		QuestionType: r.QuestionType,
		QuestionText: strings.TrimSpace(r.QuestionText),
		Images:       images(r.Images),
		Explanation:  r.Explanation,
		Difficulty:   r.Difficulty,
		Points:       r.Points,
	}
	if r.CorrectAnswer != nil && strings.TrimSpace(*r.CorrectAnswer) != "" {
		answer := strings.TrimSpace(*r.CorrectAnswer)
		q.CorrectAnswer = &answer
	}
	if r.QuestionType == models.QuestionTypeMCQ {
		for _, o := range r.Options {
			q.Options = append(q.Options, models.QuestionOption{
				Text:        strings.TrimSpace(o.Text),
				IsCorrect:   o.IsCorrect,
				Explanation: o.Explanation,
			})
		}
	}
	return q
}

func images(in []ImageRequest) []models.Image {
	if len(in) == 0 {
		return nil
	}
	out := make([]models.Image, 0, len(in))
	for _, img := range in {
		out = append(out, models.Image{URL: img.URL, Caption: img.Caption, AltText: img.AltText})
	}
	return out
}
