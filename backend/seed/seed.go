// Package seed imports unit trees described in YAML files.
//
// A seed file lists whole units:
//
//	units:
//	  - unit_number: 1
//	    unit_title: Relational basics
//	    topics:
//	      - topic_title: Keys
//	        topic_order: 1
//	        videos: [...]
//	        notes: [...]
//	        questions: [...]
package seed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"coursecms/backend/models"
	"coursecms/backend/store"
	"coursecms/backend/validators"

	"gopkg.in/yaml.v3"
)

type File struct {
	Units []Unit `yaml:"units"`
}

type Unit struct {
	UnitNumber  int     `yaml:"unit_number"`
	UnitTitle   string  `yaml:"unit_title"`
	Description string  `yaml:"description"`
	Topics      []Topic `yaml:"topics"`

	source string
}

type Topic struct {
	TopicTitle  string     `yaml:"topic_title"`
	TopicOrder  int        `yaml:"topic_order"`
	Description string     `yaml:"description"`
	Videos      []Video    `yaml:"videos"`
	Notes       []Note     `yaml:"notes"`
	Questions   []Question `yaml:"questions"`
}

type Video struct {
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
	VideoURL     string `yaml:"video_url"`
	Duration     int    `yaml:"duration"`
	ThumbnailURL string `yaml:"thumbnail_url"`
	OrderIndex   int    `yaml:"order_index"`
}

type Note struct {
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

type Option struct {
	Text        string `yaml:"text"`
	IsCorrect   bool   `yaml:"is_correct"`
	Explanation string `yaml:"explanation"`
}

type Question struct {
	QuestionType  string   `yaml:"question_type"`
	QuestionText  string   `yaml:"question_text"`
	Options       []Option `yaml:"options"`
	CorrectAnswer string   `yaml:"correct_answer"`
	Explanation   string   `yaml:"explanation"`
	Difficulty    string   `yaml:"difficulty"`
	Points        int      `yaml:"points"`
}

// Load reads every .yaml/.yml file under dir. Files that do not parse are skipped
// with a warning.
func Load(dir string, logger *log.Logger) ([]Unit, error) {
	var units []Unit
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !(strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var f File
		if err := yaml.Unmarshal(data, &f); err != nil {
			logger.Printf("Skipping invalid seed file %s: %v", path, err)
			return nil
		}
		for _, u := range f.Units {
			u.source = path
			units = append(units, u)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading seed files from %s: %w", dir, err)
	}
	return units, nil
}

// Result summarizes an import.
type Result struct {
	Imported int
	Skipped  int
}

// Import writes every unit whose number is not stored yet, together with its
// whole tree. Units already present are left untouched. A unit whose tree fails
// part way is removed again, so the next import retries it.
func Import(ctx context.Context, st store.Store, units []Unit, logger *log.Logger) (Result, error) {
	var res Result
	for _, u := range units {
		_, err := st.UnitByNumber(ctx, u.UnitNumber)
		switch {
		case err == nil:
			res.Skipped++
			continue
		case !errors.Is(err, store.ErrNotFound):
			return res, err
		}

		if err := importUnit(ctx, st, u, logger); err != nil {
			return res, fmt.Errorf("importing unit %d from %s: %w", u.UnitNumber, u.source, err)
		}
		logger.Printf("Seeded unit %d (%s) with %d topics", u.UnitNumber, u.UnitTitle, len(u.Topics))
		res.Imported++
	}
	return res, nil
}

func importUnit(ctx context.Context, st store.Store, u Unit, logger *log.Logger) (err error) {
	if u.UnitNumber < 1 {
		return fmt.Errorf("unit_number must be at least 1")
	}

	// Questions are checked before anything is written.
	questions := make([][]*models.Question, len(u.Topics))
	for ti, t := range u.Topics {
		for qi, q := range t.Questions {
			question, err := q.toModel()
			if err != nil {
				return fmt.Errorf("topic %q question %d: %w", t.TopicTitle, qi+1, err)
			}
			questions[ti] = append(questions[ti], question)
		}
	}

	unit := &models.Unit{
		UnitNumber:  models.UnitNumber(u.UnitNumber),
		UnitTitle:   u.UnitTitle,
		Description: u.Description,
	}
	if err := st.Units().Create(ctx, unit); err != nil {
		return err
	}

	var topicIDs []string
	defer func() {
		if err == nil {
			return
		}
		if rbErr := rollback(context.WithoutCancel(ctx), st, unit.ID, topicIDs); rbErr != nil {
			logger.Printf("Could not remove partial unit %d (%s): %v", u.UnitNumber, unit.ID, rbErr)
		}
	}()

	for ti, t := range u.Topics {
		topic := &models.Topic{
			UnitID:      unit.ID,
			TopicTitle:  t.TopicTitle,
			TopicOrder:  t.TopicOrder,
			Description: t.Description,
		}
		if err := st.Topics().Create(ctx, topic); err != nil {
			return err
		}
		topicIDs = append(topicIDs, topic.ID)

		for _, v := range t.Videos {
			video := &models.Video{
				TopicID:      topic.ID,
				Title:        v.Title,
				Description:  v.Description,
				VideoURL:     v.VideoURL,
				Duration:     v.Duration,
				ThumbnailURL: v.ThumbnailURL,
				OrderIndex:   v.OrderIndex,
			}
			if err := st.Videos().Create(ctx, video); err != nil {
				return err
			}
		}
		for _, n := range t.Notes {
			if err := st.Notes().Create(ctx, &models.Note{TopicID: topic.ID, Title: n.Title, Content: n.Content}); err != nil {
				return err
			}
		}
		for _, question := range questions[ti] {
			question.TopicID = topic.ID
			if err := st.Questions().Create(ctx, question); err != nil {
				return err
			}
		}
	}
	return nil
}

// rollback deletes whatever importUnit wrote for one unit, leaves first.
func rollback(ctx context.Context, st store.Store, unitID string, topicIDs []string) error {
	var errs []error
	for _, id := range topicIDs {
		for _, del := range []func(context.Context, string, any) (int64, error){
			st.Videos().DeleteBy, st.Notes().DeleteBy, st.Questions().DeleteBy,
		} {
			if _, err := del(ctx, store.FieldTopicID, id); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if _, err := st.Topics().DeleteBy(ctx, store.FieldUnitID, unitID); err != nil {
		errs = append(errs, err)
	}
	if err := st.Units().Delete(ctx, unitID); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// toModel holds seeded questions to the same rules as the admin API.
func (q Question) toModel() (*models.Question, error) {
	req := validators.QuestionRequest{
		TopicID:      "pending",
		QuestionType: q.QuestionType,
		QuestionText: q.QuestionText,
		Explanation:  q.Explanation,
		Difficulty:   q.Difficulty,
		Points:       q.Points,
	}
	if q.CorrectAnswer != "" {
		answer := q.CorrectAnswer
		req.CorrectAnswer = &answer
	}
	for _, o := range q.Options {
		req.Options = append(req.Options, validators.OptionRequest{Text: o.Text, IsCorrect: o.IsCorrect, Explanation: o.Explanation})
	}

	if err := validators.Validate(&req); err != nil {
		return nil, fmt.Errorf("%v", validators.Messages(err))
	}
	return req.ToModel(), nil
}
