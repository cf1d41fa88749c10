package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"huonganh/internal/models"

	sq "github.com/Masterminds/squirrel"
)

const bookingColumns = `id, name, phone, COALESCE(email, ''), service, COALESCE(message, ''),
    booking_date, booking_time, notification_method, COALESCE(telegram_chat_id, ''),
    status, visible, created_at, updated_at`

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	if booking.Status == "" {
		booking.Status = models.StatusPending
	}
	if !models.IsValidStatus(booking.Status) {
		return ErrInvalidStatus
	}
	booking.Visible = models.VisibleForStatus(booking.Status)

	now := time.Now()
	query := `
        INSERT INTO bookings (name, phone, email, service, message, booking_date, booking_time,
            notification_method, telegram_chat_id, status, visible, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	result, err := db.db.ExecContext(ctx, query,
		booking.Name, booking.Phone, booking.Email, booking.Service, booking.Message,
		booking.BookingDate, booking.BookingTime, booking.Method, booking.TelegramChatID,
		booking.Status, booking.Visible, now, now)
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create booking id: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = ?`, bookingColumns)

	var b models.Booking
	err := db.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.Name, &b.Phone, &b.Email, &b.Service, &b.Message,
		&b.BookingDate, &b.BookingTime, &b.Method, &b.TelegramChatID,
		&b.Status, &b.Visible, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get booking %d: %w", id, err)
	}
	return &b, nil
}

// UpdateBookingStatus persists the new status together with the derived
// visible flag. Visibility is never written independently of status.
func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	if !models.IsValidStatus(status) {
		return ErrInvalidStatus
	}

	query := `UPDATE bookings SET status = ?, visible = ?, updated_at = ? WHERE id = ?`
	result, err := db.db.ExecContext(ctx, query, status, models.VisibleForStatus(status), time.Now(), id)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// BookingFilter narrows ListBookings. Zero values mean "no filter".
type BookingFilter struct {
	Status      string
	OnlyVisible bool
	OrderBy     string // created_at | booking_date
	Descending  bool
	Limit       uint64
}

func (db *DB) ListBookings(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	builder := db.sq.Select(bookingColumns).From("bookings")

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.OnlyVisible {
		builder = builder.Where(sq.Eq{"visible": true})
	}

	orderBy := "created_at"
	if filter.OrderBy != "" {
		orderBy = filter.OrderBy
	}
	direction := "ASC"
	if filter.Descending {
		direction = "DESC"
	}
	builder = builder.OrderBy(orderBy + " " + direction)

	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build bookings query: %w", err)
	}

	rows, err := db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(
			&b.ID, &b.Name, &b.Phone, &b.Email, &b.Service, &b.Message,
			&b.BookingDate, &b.BookingTime, &b.Method, &b.TelegramChatID,
			&b.Status, &b.Visible, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// DeleteBooking hard-deletes a row; only the admin CRUD surface uses it.
func (db *DB) DeleteBooking(ctx context.Context, id int64) error {
	result, err := db.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
