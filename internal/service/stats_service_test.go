package service

import (
	"context"
	"testing"
	"time"

	"huonganh/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecentSummaryKeepsMostRecentRows(t *testing.T) {
	store := new(mockStore)
	svc := NewStatsService(store)

	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	var rows []models.RevenueStat
	// 5 monthly and 6 weekly rows, newest first as the store returns them.
	for i := 0; i < 5; i++ {
		rows = append(rows, models.RevenueStat{
			PeriodType:   models.PeriodMonthly,
			PeriodStart:  base.AddDate(0, -i, 0),
			TotalRevenue: int64(1000 - i),
		})
	}
	for i := 0; i < 6; i++ {
		rows = append(rows, models.RevenueStat{
			PeriodType:   models.PeriodWeekly,
			PeriodStart:  base.AddDate(0, 0, -7*i),
			TotalRevenue: int64(500 - i),
		})
	}

	store.On("ListRecentRevenue", mock.Anything, models.StatsRecentRows).Return(rows, nil)

	summary, err := svc.RecentSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.Monthly, models.StatsMonthlyShown)
	require.Len(t, summary.Weekly, models.StatsWeeklyShown)
	assert.Equal(t, int64(1000), summary.Monthly[0].TotalRevenue)
	assert.Equal(t, int64(500), summary.Weekly[0].TotalRevenue)
}

func TestRecentSummaryEmpty(t *testing.T) {
	store := new(mockStore)
	svc := NewStatsService(store)

	store.On("ListRecentRevenue", mock.Anything, models.StatsRecentRows).Return([]models.RevenueStat{}, nil)

	summary, err := svc.RecentSummary(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summary.Monthly)
	assert.Empty(t, summary.Weekly)
}
