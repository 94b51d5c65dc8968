package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/srgjo27/captainbook/internal/core/domain"
)

const bookingColumns = `id, captain_id, user_id, shoot_type, location, booked_at, status, rating, review`

type BookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	query := `
	INSERT INTO bookings (id, captain_id, user_id, shoot_type, location, booked_at, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		booking.ID, booking.CaptainID, booking.UserID, booking.ShootType,
		booking.Location, booking.BookedAt, booking.Status)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewValidationError("unknown captain or user")
		}
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.GetContext(ctx, &b, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking %s: %w", bookingID, err)
	}
	return &b, nil
}

// ResolveIfPending only touches rows still in Pending, so of two racing
// resolutions exactly one wins.
func (r *BookingRepository) ResolveIfPending(ctx context.Context, bookingID uuid.UUID, status domain.BookingStatus) (*domain.Booking, error) {
	query := `
	UPDATE bookings
	SET status = $1
	WHERE id = $2 AND status = $3
	RETURNING ` + bookingColumns

	var b domain.Booking
	err := r.db.GetContext(ctx, &b, query, status, bookingID, domain.BookingPending)
	if err == nil {
		return &b, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	if _, err := r.GetByID(ctx, bookingID); err != nil {
		return nil, err
	}
	return nil, domain.ErrAlreadyResolved
}

func (r *BookingRepository) RateIfUnrated(ctx context.Context, bookingID uuid.UUID, rating int, review string) (*domain.Booking, error) {
	query := `
	UPDATE bookings
	SET rating = $1, review = $2
	WHERE id = $3 AND rating IS NULL
	RETURNING ` + bookingColumns

	var b domain.Booking
	err := r.db.GetContext(ctx, &b, query, rating, review, bookingID)
	if err == nil {
		return &b, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to rate booking: %w", err)
	}

	if _, err := r.GetByID(ctx, bookingID); err != nil {
		return nil, err
	}
	return nil, domain.ErrAlreadyRated
}

type captainBookingRow struct {
	domain.Booking
	UserFirstName string `db:"user_first_name"`
	UserLastName  string `db:"user_last_name"`
	UserEmail     string `db:"user_email"`
}

func (r *BookingRepository) ListForCaptain(ctx context.Context, captainID uuid.UUID) ([]domain.CaptainBooking, error) {
	query := `
	SELECT b.id, b.captain_id, b.user_id, b.shoot_type, b.location, b.booked_at, b.status, b.rating, b.review,
		u.first_name AS user_first_name, u.last_name AS user_last_name, u.email AS user_email
	FROM bookings b
	JOIN users u ON u.id = b.user_id
	WHERE b.captain_id = $1
	ORDER BY b.booked_at DESC
	`

	var rows []captainBookingRow
	if err := r.db.SelectContext(ctx, &rows, query, captainID); err != nil {
		return nil, fmt.Errorf("failed to list captain bookings: %w", err)
	}

	out := make([]domain.CaptainBooking, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.CaptainBooking{
			Booking: row.Booking,
			User: domain.UserSummary{
				ID:       row.UserID,
				FullName: domain.FullName{FirstName: row.UserFirstName, LastName: row.UserLastName},
				Email:    row.UserEmail,
			},
		})
	}
	return out, nil
}

type userBookingRow struct {
	domain.Booking
	captainProfileColumns
}

func (r *BookingRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.UserBooking, error) {
	query := `
	SELECT b.id, b.captain_id, b.user_id, b.shoot_type, b.location, b.booked_at, b.status, b.rating, b.review,` + captainProfileSelect + `
	FROM bookings b
	JOIN captains c ON c.id = b.captain_id
	WHERE b.user_id = $1
	ORDER BY b.booked_at DESC
	`

	var rows []userBookingRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list user bookings: %w", err)
	}

	out := make([]domain.UserBooking, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.UserBooking{
			Booking: row.Booking,
			Captain: row.captainProfileColumns.summary(row.CaptainID),
		})
	}
	return out, nil
}
