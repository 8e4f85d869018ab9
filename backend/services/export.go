package services

import (
	"bytes"
	"context"
	"fmt"

	"coursecms/backend/models"

	"github.com/xuri/excelize/v2"
)

// ExportUnit renders the unit with the given id as a workbook with one sheet per
// content kind. Rows follow the same ordering as the read API.
func (s *ContentService) ExportUnit(ctx context.Context, id string) (*bytes.Buffer, *models.Unit, error) {
	unit, err := s.Store.Units().Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	doc, err := s.assemble(ctx, unit)
	if err != nil {
		return nil, nil, err
	}

	buf, err := writeWorkbook(unit, doc)
	if err != nil {
		return nil, nil, fmt.Errorf("writing workbook for unit %s: %w", id, err)
	}
	return buf, unit, nil
}

func writeWorkbook(unit *models.Unit, doc *models.UnitDocument) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheets := map[string][][]interface{}{
		"Unit": {
			{"Unit number", "Unit title", "Description"},
			{int(unit.UnitNumber), unit.UnitTitle, unit.Description},
		},
		"Topics":    {{"Order", "Topic", "Videos", "Notes", "Questions"}},
		"Videos":    {{"Topic", "Order", "Title", "Description", "URL", "Duration (s)"}},
		"Notes":     {{"Topic", "Title", "Content", "Created at"}},
		"Questions": {{"Topic", "Type", "Difficulty", "Question", "Correct answer", "Explanation"}},
	}

	for i, topic := range doc.Topics {
		sheets["Topics"] = append(sheets["Topics"], []interface{}{
			i + 1, topic.TopicContent, len(topic.Videos), len(topic.Notes), len(topic.Questions),
		})
		for _, v := range topic.Videos {
			sheets["Videos"] = append(sheets["Videos"], []interface{}{
				topic.TopicContent, v.OrderIndex, v.Title, v.Description, v.VideoURL, v.Duration,
			})
		}
		for _, n := range topic.Notes {
			sheets["Notes"] = append(sheets["Notes"], []interface{}{
				topic.TopicContent, n.Title, n.Content, n.CreatedAt.Format("2006-01-02 15:04"),
			})
		}
		for _, q := range topic.Questions {
			answer := ""
			if q.CorrectAnswer != nil {
				answer = *q.CorrectAnswer
			}
			sheets["Questions"] = append(sheets["Questions"], []interface{}{
				topic.TopicContent, q.QuestionType, q.DifficultyLevel, q.QuestionText, answer, q.Explanation,
			})
		}
	}

	order := []string{"Unit", "Topics", "Videos", "Notes", "Questions"}
	if err := f.SetSheetName("Sheet1", order[0]); err != nil {
		return nil, err
	}
	for i, name := range order {
		if i > 0 {
			if _, err := f.NewSheet(name); err != nil {
				return nil, err
			}
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return nil, err
			}
		}
	}

	return f.WriteToBuffer()
}
