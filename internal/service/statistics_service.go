package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/lead-intake/internal/domain"
	"github.com/spec-kit/lead-intake/internal/repository"
	apperrors "github.com/spec-kit/lead-intake/pkg/util/errorutil"
)

// Totals are the grand counts shown on the admin dashboard.
type Totals struct {
	Contacts        int `json:"contacts"`
	Demos           int `json:"demos"`
	PendingContacts int `json:"pendingContacts"`
	PendingDemos    int `json:"pendingDemos"`
}

// Statistics groups submissions by service.
type Statistics struct {
	ContactStats []domain.ServiceBreakdown `json:"contactStats"`
	DemoStats    []domain.ServiceBreakdown `json:"demoStats"`
	Totals       Totals                    `json:"totals"`
}

// StatisticsService computes read-only aggregates at call time.
type StatisticsService struct {
	contacts repository.ContactRepository
	demos    repository.DemoRepository
}

// NewStatisticsService constructs the service.
func NewStatisticsService(contacts repository.ContactRepository, demos repository.DemoRepository) *StatisticsService {
	return &StatisticsService{contacts: contacts, demos: demos}
}

// Compute runs the aggregate queries concurrently.
func (s *StatisticsService) Compute(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.ContactStats, err = s.contacts.GroupByService(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.DemoStats, err = s.demos.GroupByService(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Totals.Contacts, err = s.contacts.Count(ctx, repository.ListFilter{})
		return err
	})
	g.Go(func() (err error) {
		stats.Totals.Demos, err = s.demos.Count(ctx, repository.ListFilter{})
		return err
	})
	g.Go(func() (err error) {
		stats.Totals.PendingContacts, err = s.contacts.Count(ctx, repository.ListFilter{Status: string(domain.ContactStatusNew)})
		return err
	})
	g.Go(func() (err error) {
		stats.Totals.PendingDemos, err = s.demos.Count(ctx, repository.ListFilter{Status: string(domain.BookingStatusPending)})
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	if stats.ContactStats == nil {
		stats.ContactStats = []domain.ServiceBreakdown{}
	}
	if stats.DemoStats == nil {
		stats.DemoStats = []domain.ServiceBreakdown{}
	}
	return stats, nil
}
