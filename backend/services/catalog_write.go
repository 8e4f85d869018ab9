package services

import (
	"context"
	"errors"
	"fmt"

	"coursecms/backend/models"
	"coursecms/backend/store"
)

func (s *CatalogService) GetUnit(ctx context.Context, id string) (*models.Unit, error) {
	return s.Store.Units().Get(ctx, id)
}

func (s *CatalogService) CreateUnit(ctx context.Context, unit *models.Unit) error {
	return s.Store.Units().Create(ctx, unit)
}

func (s *CatalogService) UpdateUnit(ctx context.Context, id string, unit *models.Unit) error {
	return overwrite(ctx, s.Store.Units(), id, unit)
}

func (s *CatalogService) GetTopic(ctx context.Context, id string) (*models.Topic, error) {
	return s.Store.Topics().Get(ctx, id)
}

func (s *CatalogService) CreateTopic(ctx context.Context, topic *models.Topic) error {
	if err := s.requireUnit(ctx, topic.UnitID); err != nil {
		return err
	}
	return s.Store.Topics().Create(ctx, topic)
}

func (s *CatalogService) UpdateTopic(ctx context.Context, id string, topic *models.Topic) error {
	if err := s.requireUnit(ctx, topic.UnitID); err != nil {
		return err
	}
	return overwrite(ctx, s.Store.Topics(), id, topic)
}

func (s *CatalogService) GetVideo(ctx context.Context, id string) (*models.Video, error) {
	return s.Store.Videos().Get(ctx, id)
}

func (s *CatalogService) CreateVideo(ctx context.Context, video *models.Video) error {
	if err := s.requireTopic(ctx, video.TopicID); err != nil {
		return err
	}
	return s.Store.Videos().Create(ctx, video)
}

func (s *CatalogService) UpdateVideo(ctx context.Context, id string, video *models.Video) error {
	if err := s.requireTopic(ctx, video.TopicID); err != nil {
		return err
	}
	return overwrite(ctx, s.Store.Videos(), id, video)
}

func (s *CatalogService) GetNote(ctx context.Context, id string) (*models.Note, error) {
	return s.Store.Notes().Get(ctx, id)
}

func (s *CatalogService) CreateNote(ctx context.Context, note *models.Note) error {
	if err := s.requireTopic(ctx, note.TopicID); err != nil {
		return err
	}
	return s.Store.Notes().Create(ctx, note)
}

func (s *CatalogService) UpdateNote(ctx context.Context, id string, note *models.Note) error {
	if err := s.requireTopic(ctx, note.TopicID); err != nil {
		return err
	}
	return overwrite(ctx, s.Store.Notes(), id, note)
}

func (s *CatalogService) GetQuestion(ctx context.Context, id string) (*models.Question, error) {
	return s.Store.Questions().Get(ctx, id)
}

func (s *CatalogService) CreateQuestion(ctx context.Context, question *models.Question) error {
	if err := s.requireTopic(ctx, question.TopicID); err != nil {
		return err
	}
	return s.Store.Questions().Create(ctx, question)
}

func (s *CatalogService) UpdateQuestion(ctx context.Context, id string, question *models.Question) error {
	if err := s.requireTopic(ctx, question.TopicID); err != nil {
		return err
	}
	return overwrite(ctx, s.Store.Questions(), id, question)
}

// overwrite replaces the record stored under id with doc, keeping its creation time.
func overwrite[T any, PT interface {
	*T
	models.Model
}](ctx context.Context, repo store.Repository[T], id string, doc PT) error {
	existing, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}
	base := doc.GetBase()
	base.ID = id
	base.CreatedAt = PT(existing).GetBase().CreatedAt
	return repo.Update(ctx, (*T)(doc))
}

func (s *CatalogService) requireUnit(ctx context.Context, id string) error {
	return requireParent(ctx, s.Store.Units(), "unit_id", id)
}

func (s *CatalogService) requireTopic(ctx context.Context, id string) error {
	return requireParent(ctx, s.Store.Topics(), "topic_id", id)
}

func requireParent[T any](ctx context.Context, repo store.Repository[T], field, id string) error {
	if _, err := repo.Get(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &ParentError{Field: field, ID: id}
		}
		return err
	}
	return nil
}

// DeleteUnit removes a unit. Without cascading its topics stay behind and are
// reported as orphaned; with cascading the whole subtree goes.
func (s *CatalogService) DeleteUnit(ctx context.Context, id string) (*models.DeleteResult, error) {
	if _, err := s.Store.Units().Get(ctx, id); err != nil {
		return nil, err
	}

	result := &models.DeleteResult{}
	if s.Cascade {
		topics, err := s.Store.Topics().ListBy(ctx, store.FieldUnitID, id)
		if err != nil {
			return nil, err
		}
		result.Cascaded = map[string]int64{}
		for _, t := range topics {
			if err := s.deleteChildren(ctx, t.ID, result.Cascaded); err != nil {
				return nil, err
			}
		}
		n, err := s.Store.Topics().DeleteBy(ctx, store.FieldUnitID, id)
		if err != nil {
			return nil, fmt.Errorf("deleting topics of unit %s: %w", id, err)
		}
		result.Cascaded[models.TopicsCollection] += n
	} else {
		n, err := s.Store.Topics().CountBy(ctx, store.FieldUnitID, id)
		if err != nil {
			return nil, err
		}
		result.Orphaned = map[string]int64{models.TopicsCollection: n}
	}

	if err := s.Store.Units().Delete(ctx, id); err != nil {
		return nil, err
	}
	result.Deleted = 1
	return result, nil
}

// DeleteTopic removes a topic, cascading to or reporting its videos, notes and questions.
func (s *CatalogService) DeleteTopic(ctx context.Context, id string) (*models.DeleteResult, error) {
	if _, err := s.Store.Topics().Get(ctx, id); err != nil {
		return nil, err
	}

	result := &models.DeleteResult{}
	if s.Cascade {
		result.Cascaded = map[string]int64{}
		if err := s.deleteChildren(ctx, id, result.Cascaded); err != nil {
			return nil, err
		}
	} else {
		orphaned, err := s.countChildren(ctx, id)
		if err != nil {
			return nil, err
		}
		result.Orphaned = orphaned
	}

	if err := s.Store.Topics().Delete(ctx, id); err != nil {
		return nil, err
	}
	result.Deleted = 1
	return result, nil
}

func (s *CatalogService) DeleteVideo(ctx context.Context, id string) (*models.DeleteResult, error) {
	return deleteLeaf(ctx, s.Store.Videos(), id)
}

func (s *CatalogService) DeleteNote(ctx context.Context, id string) (*models.DeleteResult, error) {
	return deleteLeaf(ctx, s.Store.Notes(), id)
}

func (s *CatalogService) DeleteQuestion(ctx context.Context, id string) (*models.DeleteResult, error) {
	return deleteLeaf(ctx, s.Store.Questions(), id)
}

func deleteLeaf[T any](ctx context.Context, repo store.Repository[T], id string) (*models.DeleteResult, error) {
	if err := repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &models.DeleteResult{Deleted: 1}, nil
}

func (s *CatalogService) deleteChildren(ctx context.Context, topicID string, tally map[string]int64) error {
	children := []struct {
		name   string
		delete func(context.Context, string, any) (int64, error)
	}{
		{models.VideosCollection, s.Store.Videos().DeleteBy},
		{models.NotesCollection, s.Store.Notes().DeleteBy},
		{models.QuestionsCollection, s.Store.Questions().DeleteBy},
	}
	for _, c := range children {
		n, err := c.delete(ctx, store.FieldTopicID, topicID)
		if err != nil {
			return fmt.Errorf("deleting %s of topic %s: %w", c.name, topicID, err)
		}
		tally[c.name] += n
	}
	return nil
}

func (s *CatalogService) countChildren(ctx context.Context, topicID string) (map[string]int64, error) {
	counts := map[string]int64{}
	children := []struct {
		name  string
		count func(context.Context, string, any) (int64, error)
	}{
		{models.VideosCollection, s.Store.Videos().CountBy},
		{models.NotesCollection, s.Store.Notes().CountBy},
		{models.QuestionsCollection, s.Store.Questions().CountBy},
	}
	for _, c := range children {
		n, err := c.count(ctx, store.FieldTopicID, topicID)
		if err != nil {
			return nil, err
		}
		counts[c.name] = n
	}
	return counts, nil
}
