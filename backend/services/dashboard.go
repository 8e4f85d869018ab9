package services

import (
	"context"
	"log"
	"time"

	"coursecms/backend/models"
	"coursecms/backend/store"

	"golang.org/x/sync/errgroup"
)

// DashboardService computes the counters shown on the admin landing page.
type DashboardService struct {
	Store  store.Store
	Logger *log.Logger
}

func NewDashboardService(st store.Store, logger *log.Logger) *DashboardService {
	return &DashboardService{Store: st, Logger: logger}
}

// Stats counts every collection concurrently. A failed count reads as zero, and
// when the whole call outlives timeout every counter reads as zero.
func (s *DashboardService) Stats(ctx context.Context, timeout time.Duration) models.Stats {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stats models.Stats
	counters := []struct {
		name  string
		count func(context.Context) (int64, error)
		dst   *int64
	}{
		{models.UnitsCollection, s.Store.Units().Count, &stats.Units},
		{models.TopicsCollection, s.Store.Topics().Count, &stats.Topics},
		{models.VideosCollection, s.Store.Videos().Count, &stats.Videos},
		{models.NotesCollection, s.Store.Notes().Count, &stats.Notes},
		{models.QuestionsCollection, s.Store.Questions().Count, &stats.Questions},
	}

	var g errgroup.Group
	for _, c := range counters {
		g.Go(func() error {
			n, err := c.count(ctx)
			if err != nil {
				s.Logger.Printf("Error counting %s: %v", c.name, err)
				return nil
			}
			*c.dst = n
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		s.Logger.Printf("Dashboard statistics timed out after %s", timeout)
		return models.Stats{}
	}
	return stats
}
