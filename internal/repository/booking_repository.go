package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/stayhub/booking-api/internal/model"
)

const bookingCols = "id, user_id, property_id, checkin_date, checkout_date, number_of_guests, total_price, booking_status"

// bookingColumns maps JSON field names to columns and acts as the update
// whitelist. The id is deliberately absent: identifiers are immutable.
var bookingColumns = map[string]string{
	"userId":         "user_id",
	"propertyId":     "property_id",
	"checkinDate":    "checkin_date",
	"checkoutDate":   "checkout_date",
	"numberOfGuests": "number_of_guests",
	"totalPrice":     "total_price",
	"bookingStatus":  "booking_status",
}

// BookingRepo encapsulates all database queries related to bookings.
type BookingRepo struct {
	db *sql.DB
}

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

func scanBooking(row *sql.Row) (model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.PropertyID, &b.CheckinDate, &b.CheckoutDate,
		&b.NumberOfGuests, &b.TotalPrice, &b.BookingStatus)
	return b, err
}

// List returns bookings, optionally narrowed to a single user via the
// "userId" filter.
func (r *BookingRepo) List(ctx context.Context, filter map[string]string) ([]model.Booking, error) {
	q := "SELECT " + bookingCols + " FROM bookings"
	var args []any
	if v, ok := filter["userId"]; ok {
		q += " WHERE user_id = ?"
		args = append(args, v)
	}
	q += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Booking{}
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.PropertyID, &b.CheckinDate, &b.CheckoutDate,
			&b.NumberOfGuests, &b.TotalPrice, &b.BookingStatus); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetByID fetches a booking by id, returning ErrNotFound when absent.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx,
		"SELECT "+bookingCols+" FROM bookings WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, ErrNotFound
	}
	return b, err
}

// Create inserts a booking and assigns its uuid id.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	b.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO bookings ("+bookingCols+") VALUES (?,?,?,?,?,?,?,?)",
		b.ID, b.UserID, b.PropertyID, b.CheckinDate, b.CheckoutDate,
		b.NumberOfGuests, b.TotalPrice, b.BookingStatus)
	if isConstraintErr(err) {
		return ErrConstraint
	}
	return err
}

// Update applies the submitted fields to a booking. Fields outside the
// column whitelist are ignored; an empty payload still succeeds when the
// row exists.
func (r *BookingRepo) Update(ctx context.Context, id string, fields map[string]any) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	set, args := buildSet(fields, bookingColumns)
	if set == "" {
		return nil
	}
	_, err := r.db.ExecContext(ctx, "UPDATE bookings SET "+set+" WHERE id = ?", append(args, id)...)
	if isConstraintErr(err) {
		return ErrConstraint
	}
	return err
}

// Delete removes a booking and returns the removed record, or ErrNotFound.
func (r *BookingRepo) Delete(ctx context.Context, id string) (model.Booking, error) {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Booking{}, err
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM bookings WHERE id = ?", id); err != nil {
		if isConstraintErr(err) {
			return model.Booking{}, ErrConstraint
		}
		return model.Booking{}, err
	}
	return b, nil
}
