package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/stayhub/booking-api/internal/model"
)

const propertyCols = "id, title, description, location, price_per_night, bedroom_count, bath_room_count, max_guest_count, host_id, rating"

var propertyColumns = map[string]string{
	"title":         "title",
	"description":   "description",
	"location":      "location",
	"pricePerNight": "price_per_night",
	"bedroomCount":  "bedroom_count",
	"bathRoomCount": "bath_room_count",
	"maxGuestCount": "max_guest_count",
	"hostId":        "host_id",
	"rating":        "rating",
}

// PropertyRepo encapsulates all database queries related to properties.
type PropertyRepo struct {
	db *sql.DB
}

func NewPropertyRepo(db *sql.DB) *PropertyRepo { return &PropertyRepo{db: db} }

func scanProperty(row *sql.Row) (model.Property, error) {
	var p model.Property
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Location, &p.PricePerNight,
		&p.BedroomCount, &p.BathRoomCount, &p.MaxGuestCount, &p.HostID, &p.Rating)
	return p, err
}

// List returns properties, optionally narrowed by "location" and
// "pricePerNight" equality filters.
func (r *PropertyRepo) List(ctx context.Context, filter map[string]string) ([]model.Property, error) {
	q := "SELECT " + propertyCols + " FROM properties"
	var where []string
	var args []any
	if v, ok := filter["location"]; ok {
		where = append(where, "location = ?")
		args = append(args, v)
	}
	if v, ok := filter["pricePerNight"]; ok {
		where = append(where, "price_per_night = ?")
		args = append(args, v)
	}
	for i, cond := range where {
		if i == 0 {
			q += " WHERE " + cond
		} else {
			q += " AND " + cond
		}
	}
	q += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Property{}
	for rows.Next() {
		var p model.Property
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Location, &p.PricePerNight,
			&p.BedroomCount, &p.BathRoomCount, &p.MaxGuestCount, &p.HostID, &p.Rating); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByID fetches a property by id, returning ErrNotFound when absent.
func (r *PropertyRepo) GetByID(ctx context.Context, id string) (model.Property, error) {
	p, err := scanProperty(r.db.QueryRowContext(ctx,
		"SELECT "+propertyCols+" FROM properties WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Property{}, ErrNotFound
	}
	return p, err
}

// Create inserts a property and assigns its uuid id.
func (r *PropertyRepo) Create(ctx context.Context, p *model.Property) error {
	p.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO properties ("+propertyCols+") VALUES (?,?,?,?,?,?,?,?,?,?)",
		p.ID, p.Title, p.Description, p.Location, p.PricePerNight,
		p.BedroomCount, p.BathRoomCount, p.MaxGuestCount, p.HostID, p.Rating)
	if isConstraintErr(err) {
		return ErrConstraint
	}
	return err
}

// Update applies the submitted fields to a property.
func (r *PropertyRepo) Update(ctx context.Context, id string, fields map[string]any) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	set, args := buildSet(fields, propertyColumns)
	if set == "" {
		return nil
	}
	_, err := r.db.ExecContext(ctx, "UPDATE properties SET "+set+" WHERE id = ?", append(args, id)...)
	if isConstraintErr(err) {
		return ErrConstraint
	}
	return err
}

// Delete removes a property and returns the removed record, or ErrNotFound.
func (r *PropertyRepo) Delete(ctx context.Context, id string) (model.Property, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Property{}, err
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM properties WHERE id = ?", id); err != nil {
		if isConstraintErr(err) {
			return model.Property{}, ErrConstraint
		}
		return model.Property{}, err
	}
	return p, nil
}
