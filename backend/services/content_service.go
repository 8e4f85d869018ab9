package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"

	"coursecms/backend/models"
	"coursecms/backend/store"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrUnitNotFound means no unit carries the requested number.
	ErrUnitNotFound = errors.New("unit not found")
	// ErrContentUnavailable hides every other failure of the read path.
	ErrContentUnavailable = errors.New("unit content unavailable")
)

// topicFanOut bounds how many topics are fetched at once.
const topicFanOut = 4

// ContentService assembles the read-only views served to external applications.
type ContentService struct {
	Store  store.Store
	Logger *log.Logger
}

func NewContentService(st store.Store, logger *log.Logger) *ContentService {
	return &ContentService{Store: st, Logger: logger}
}

// UnitContent builds the full content tree of the unit with the given number.
// It returns either a complete document, ErrUnitNotFound or ErrContentUnavailable.
func (s *ContentService) UnitContent(ctx context.Context, unitNumber int) (*models.UnitDocument, error) {
	unit, err := s.Store.UnitByNumber(ctx, unitNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnitNotFound
		}
		s.Logger.Printf("Error fetching unit %d: %v", unitNumber, err)
		return nil, ErrContentUnavailable
	}

	doc, err := s.assemble(ctx, unit)
	if err != nil {
		s.Logger.Printf("Error fetching unit content for unit %d: %v", unitNumber, err)
		return nil, ErrContentUnavailable
	}
	return doc, nil
}

// assemble builds the tree below an already resolved unit. Any failed fetch aborts it.
func (s *ContentService) assemble(ctx context.Context, unit *models.Unit) (*models.UnitDocument, error) {
	topics, err := s.Store.Topics().ListBy(ctx, store.FieldUnitID, unit.ID)
	if err != nil {
		return nil, fmt.Errorf("fetching topics of unit %s: %w", unit.ID, err)
	}
	SortTopics(topics)

	// Results land at their topic's index, so completion order never leaks out.
	documents := make([]models.TopicDocument, len(topics))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(topicFanOut)
	for i := range topics {
		g.Go(func() error {
			doc, err := s.topicDocument(gctx, &topics[i])
			if err != nil {
				return fmt.Errorf("fetching content of topic %s: %w", topics[i].ID, err)
			}
			documents[i] = *doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.UnitDocument{
		UnitNumber: unit.UnitNumber,
		UnitTitle:  unit.UnitTitle,
		Topics:     documents,
	}, nil
}

func (s *ContentService) topicDocument(ctx context.Context, topic *models.Topic) (*models.TopicDocument, error) {
	var (
		videos    []models.Video
		notes     []models.Note
		questions []models.Question
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		videos, err = s.Store.Videos().ListBy(gctx, store.FieldTopicID, topic.ID)
		return err
	})
	g.Go(func() error {
		var err error
		notes, err = s.Store.Notes().ListBy(gctx, store.FieldTopicID, topic.ID)
		return err
	})
	g.Go(func() error {
		var err error
		questions, err = s.Store.Questions().ListBy(gctx, store.FieldTopicID, topic.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	SortVideos(videos)

	doc := &models.TopicDocument{
		TopicContent: topic.TopicTitle,
		Questions:    make([]models.QuestionView, 0, len(questions)),
		Notes:        make([]models.NoteView, 0, len(notes)),
		Videos:       make([]models.VideoView, 0, len(videos)),
	}
	for i := range questions {
		doc.Questions = append(doc.Questions, questions[i].View())
	}
	for i := range notes {
		doc.Notes = append(doc.Notes, notes[i].View())
	}
	for i := range videos {
		doc.Videos = append(doc.Videos, videos[i].View())
	}
	return doc, nil
}

// UnitIndex lists every unit's number and title, ascending by number.
func (s *ContentService) UnitIndex(ctx context.Context) ([]models.UnitSummary, error) {
	units, err := s.Store.Units().List(ctx)
	if err != nil {
		s.Logger.Printf("Error fetching units: %v", err)
		return nil, ErrContentUnavailable
	}
	SortUnits(units)

	summaries := make([]models.UnitSummary, 0, len(units))
	for _, unit := range units {
		summaries = append(summaries, models.UnitSummary{
			UnitNumber: strconv.Itoa(int(unit.UnitNumber)),
			UnitTitle:  unit.UnitTitle,
		})
	}
	return summaries, nil
}

// SortUnits orders units by unit number, keeping storage order for ties.
func SortUnits(units []models.Unit) {
	sort.SliceStable(units, func(i, j int) bool {
		return units[i].UnitNumber < units[j].UnitNumber
	})
}

// SortTopics orders topics by topic_order; a missing order reads as 0.
func SortTopics(topics []models.Topic) {
	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].TopicOrder < topics[j].TopicOrder
	})
}

// SortVideos orders videos by order_index; a missing index reads as 0.
func SortVideos(videos []models.Video) {
	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].OrderIndex < videos[j].OrderIndex
	})
}
