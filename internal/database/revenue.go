package database

import (
	"context"
	"fmt"
	"time"

	"huonganh/internal/models"
)

// ListRecentRevenue returns the most recent aggregate rows across all period
// types, newest first.
func (db *DB) ListRecentRevenue(ctx context.Context, limit int) ([]models.RevenueStat, error) {
	if limit <= 0 {
		limit = models.StatsRecentRows
	}

	rows, err := db.db.QueryContext(ctx, `
        SELECT id, period_type, period_start, total_revenue, total_bookings,
               completed_bookings, cancelled_bookings
        FROM revenue_tracking
        ORDER BY period_start DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list revenue: %w", err)
	}
	defer rows.Close()

	var stats []models.RevenueStat
	for rows.Next() {
		var s models.RevenueStat
		if err := rows.Scan(&s.ID, &s.PeriodType, &s.PeriodStart, &s.TotalRevenue,
			&s.TotalBookings, &s.CompletedBookings, &s.CancelledBookings); err != nil {
			return nil, fmt.Errorf("scan revenue stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// RecordRevenue folds one finished booking into the aggregate row for the
// given period. The row is created on first write (upsert on period key).
func (db *DB) RecordRevenue(ctx context.Context, periodType string, periodStart time.Time, revenue int64, completed, cancelled bool) error {
	completedInc := 0
	if completed {
		completedInc = 1
	}
	cancelledInc := 0
	if cancelled {
		cancelledInc = 1
	}

	_, err := db.db.ExecContext(ctx, `
        INSERT INTO revenue_tracking (period_type, period_start, total_revenue, total_bookings, completed_bookings, cancelled_bookings)
        VALUES (?, ?, ?, 1, ?, ?)
        ON CONFLICT(period_type, period_start) DO UPDATE SET
            total_revenue = total_revenue + excluded.total_revenue,
            total_bookings = total_bookings + 1,
            completed_bookings = completed_bookings + excluded.completed_bookings,
            cancelled_bookings = cancelled_bookings + excluded.cancelled_bookings`,
		periodType, periodStart, revenue, completedInc, cancelledInc)
	if err != nil {
		return fmt.Errorf("record revenue: %w", err)
	}
	return nil
}
