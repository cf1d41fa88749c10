package service

import (
	"context"

	"huonganh/internal/domain"
	"huonganh/internal/models"
)

// RevenueSummary groups the most recent aggregate rows the way the stats
// command presents them: newest monthly rows first, then weekly.
type RevenueSummary struct {
	Monthly []models.RevenueStat
	Weekly  []models.RevenueStat
}

type StatsService struct {
	store domain.Store
}

func NewStatsService(store domain.Store) *StatsService {
	return &StatsService{store: store}
}

// RecentSummary fetches the 30 most recent revenue rows and keeps the
// 3 most recent monthly and 4 most recent weekly summaries.
func (s *StatsService) RecentSummary(ctx context.Context) (*RevenueSummary, error) {
	stats, err := s.store.ListRecentRevenue(ctx, models.StatsRecentRows)
	if err != nil {
		return nil, err
	}

	summary := &RevenueSummary{}
	for _, stat := range stats {
		switch stat.PeriodType {
		case models.PeriodMonthly:
			if len(summary.Monthly) < models.StatsMonthlyShown {
				summary.Monthly = append(summary.Monthly, stat)
			}
		case models.PeriodWeekly:
			if len(summary.Weekly) < models.StatsWeeklyShown {
				summary.Weekly = append(summary.Weekly, stat)
			}
		}
	}
	return summary, nil
}
