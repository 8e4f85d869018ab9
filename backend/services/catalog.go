package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"

	"coursecms/backend/models"
	"coursecms/backend/store"
)

// ParentError reports a write whose parent reference does not resolve.
type ParentError struct {
	Field string
	ID    string
}

func (e *ParentError) Error() string {
	return fmt.Sprintf("%s %q does not exist", e.Field, e.ID)
}

// ContentFilter narrows the admin content listings. Empty fields match everything.
type ContentFilter struct {
	UnitID     string
	TopicID    string
	Type       string
	Difficulty string
}

// CatalogService backs the admin CRUD screens.
type CatalogService struct {
	Store   store.Store
	Logger  *log.Logger
	Cascade bool
}

func NewCatalogService(st store.Store, logger *log.Logger, cascade bool) *CatalogService {
	return &CatalogService{Store: st, Logger: logger, Cascade: cascade}
}

// ListUnits returns every unit ordered by unit number.
func (s *CatalogService) ListUnits(ctx context.Context) ([]models.Unit, error) {
	units, err := s.Store.Units().List(ctx)
	if err != nil {
		return nil, err
	}
	SortUnits(units)
	return units, nil
}

// ListTopics returns topics ordered by unit number then topic order, each labelled
// with its unit. Topics of a missing unit sort last under UnknownUnit.
func (s *CatalogService) ListTopics(ctx context.Context, unitID string) ([]models.TopicListItem, error) {
	var (
		topics []models.Topic
		err    error
	)
	if unitID != "" {
		topics, err = s.Store.Topics().ListBy(ctx, store.FieldUnitID, unitID)
	} else {
		topics, err = s.Store.Topics().List(ctx)
	}
	if err != nil {
		return nil, err
	}

	units, err := s.unitsByID(ctx, topicUnitIDs(topics))
	if err != nil {
		return nil, err
	}

	items := make([]models.TopicListItem, 0, len(topics))
	for _, t := range topics {
		item := models.TopicListItem{Topic: t, UnitTitle: models.UnknownUnit}
		if u, ok := units[t.UnitID]; ok {
			item.UnitTitle = u.UnitTitle
			item.UnitNumber = u.UnitNumber
		}
		items = append(items, item)
	}

	rank := func(item models.TopicListItem) int {
		if _, ok := units[item.UnitID]; !ok {
			return math.MaxInt
		}
		return int(item.UnitNumber)
	}
	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := rank(items[i]), rank(items[j])
		if ri != rj {
			return ri < rj
		}
		return items[i].TopicOrder < items[j].TopicOrder
	})
	return items, nil
}

func (s *CatalogService) ListVideos(ctx context.Context, f ContentFilter) ([]models.VideoListItem, error) {
	videos, err := listContent(ctx, s, s.Store.Videos(), f, nil)
	if err != nil {
		return nil, err
	}
	SortVideos(videos)

	labels, err := s.topicLabels(ctx, distinctIDs(videos, func(v models.Video) string { return v.TopicID }))
	if err != nil {
		return nil, err
	}
	items := make([]models.VideoListItem, 0, len(videos))
	for _, v := range videos {
		l := labels.lookup(v.TopicID)
		items = append(items, models.VideoListItem{Video: v, TopicTitle: l.topic, UnitTitle: l.unit})
	}
	return items, nil
}

func (s *CatalogService) ListNotes(ctx context.Context, f ContentFilter) ([]models.NoteListItem, error) {
	notes, err := listContent(ctx, s, s.Store.Notes(), f, nil)
	if err != nil {
		return nil, err
	}

	labels, err := s.topicLabels(ctx, distinctIDs(notes, func(n models.Note) string { return n.TopicID }))
	if err != nil {
		return nil, err
	}
	items := make([]models.NoteListItem, 0, len(notes))
	for _, n := range notes {
		l := labels.lookup(n.TopicID)
		items = append(items, models.NoteListItem{Note: n, TopicTitle: l.topic, UnitTitle: l.unit})
	}
	return items, nil
}

func (s *CatalogService) ListQuestions(ctx context.Context, f ContentFilter) ([]models.QuestionListItem, error) {
	where := store.Where{}
	if f.Type != "" {
		where[store.FieldQuestionType] = f.Type
	}
	if f.Difficulty != "" {
		where[store.FieldDifficulty] = f.Difficulty
	}
	questions, err := listContent(ctx, s, s.Store.Questions(), f, where)
	if err != nil {
		return nil, err
	}

	labels, err := s.topicLabels(ctx, distinctIDs(questions, func(q models.Question) string { return q.TopicID }))
	if err != nil {
		return nil, err
	}
	items := make([]models.QuestionListItem, 0, len(questions))
	for _, q := range questions {
		l := labels.lookup(q.TopicID)
		items = append(items, models.QuestionListItem{Question: q, TopicTitle: l.topic, UnitTitle: l.unit})
	}
	return items, nil
}

// listContent resolves the unit/topic part of a filter into a topic_id condition
// and queries repo with it and the extra conditions in where.
func listContent[T any](ctx context.Context, s *CatalogService, repo store.Repository[T], f ContentFilter, where store.Where) ([]T, error) {
	if where == nil {
		where = store.Where{}
	}
	switch {
	case f.TopicID != "":
		where[store.FieldTopicID] = f.TopicID
	case f.UnitID != "":
		topics, err := s.Store.Topics().ListBy(ctx, store.FieldUnitID, f.UnitID)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(topics))
		for _, t := range topics {
			ids = append(ids, t.ID)
		}
		where[store.FieldTopicID] = ids
	}
	if len(where) == 0 {
		return repo.List(ctx)
	}
	return repo.ListWhere(ctx, where)
}

type label struct {
	topic string
	unit  string
}

type topicLabels map[string]label

func (l topicLabels) lookup(topicID string) label {
	if found, ok := l[topicID]; ok {
		return found
	}
	return label{topic: models.UnknownTopic, unit: models.UnknownUnit}
}

// topicLabels joins topic ids to their topic and unit titles.
func (s *CatalogService) topicLabels(ctx context.Context, topicIDs []string) (topicLabels, error) {
	topics, err := s.Store.Topics().ListIn(ctx, store.FieldID, topicIDs)
	if err != nil {
		return nil, err
	}

	units, err := s.unitsByID(ctx, topicUnitIDs(topics))
	if err != nil {
		return nil, err
	}

	labels := make(topicLabels, len(topics))
	for _, t := range topics {
		l := label{topic: t.TopicTitle, unit: models.UnknownUnit}
		if u, ok := units[t.UnitID]; ok {
			l.unit = u.UnitTitle
		}
		labels[t.ID] = l
	}
	return labels, nil
}

func (s *CatalogService) unitsByID(ctx context.Context, ids []string) (map[string]models.Unit, error) {
	units, err := s.Store.Units().ListIn(ctx, store.FieldID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Unit, len(units))
	for _, u := range units {
		byID[u.ID] = u
	}
	return byID, nil
}

func topicUnitIDs(topics []models.Topic) []string {
	return distinctIDs(topics, func(t models.Topic) string { return t.UnitID })
}

// distinctIDs returns the distinct non-empty keys of docs in first-seen order.
func distinctIDs[T any](docs []T, key func(T) string) []string {
	seen := make(map[string]struct{}, len(docs))
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		id := key(d)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
