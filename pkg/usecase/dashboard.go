package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/robofest-ru/robofest/pkg/domain/interfaces"
	"github.com/robofest-ru/robofest/pkg/domain/types"
)

// DashboardUseCase aggregates the counters shown on the admin landing
// page
type DashboardUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

func NewDashboardUseCase(repo interfaces.Repository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, now: time.Now}
}

// DashboardStats is a snapshot of the back-office counters
type DashboardStats struct {
	CurrentSeasonTeams int
	PendingTeams       int
	RecentTeams        int
	TotalNews          int
	UnreadContacts     int
	TotalPartners      int
	TotalUsers         int
}

// Stats gathers the counters concurrently. RecentTeams covers the last
// seven days.
func (u *DashboardUseCase) Stats(ctx context.Context) (*DashboardStats, error) {
	current, err := u.repo.Season().GetCurrent(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load current season")
	}

	stats := &DashboardStats{}
	eg, ctx := errgroup.WithContext(ctx)

	if current != nil {
		eg.Go(func() error {
			n, err := u.repo.Team().Count(ctx, interfaces.TeamFilter{SeasonID: current.ID})
			stats.CurrentSeasonTeams = n
			return err
		})
		eg.Go(func() error {
			n, err := u.repo.Team().Count(ctx, interfaces.TeamFilter{
				SeasonID: current.ID,
				Status:   types.TeamStatusPending,
			})
			stats.PendingTeams = n
			return err
		})
	}
	eg.Go(func() error {
		n, err := u.repo.Team().CountCreatedSince(ctx, u.now().AddDate(0, 0, -7))
		stats.RecentTeams = n
		return err
	})
	eg.Go(func() error {
		n, err := u.repo.News().Count(ctx)
		stats.TotalNews = n
		return err
	})
	eg.Go(func() error {
		n, err := u.repo.Contact().CountUnread(ctx)
		stats.UnreadContacts = n
		return err
	})
	eg.Go(func() error {
		n, err := u.repo.Partner().Count(ctx)
		stats.TotalPartners = n
		return err
	})
	eg.Go(func() error {
		n, err := u.repo.User().Count(ctx)
		stats.TotalUsers = n
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to gather dashboard stats")
	}
	return stats, nil
}
