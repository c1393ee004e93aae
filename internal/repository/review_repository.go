package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/stayhub/booking-api/internal/model"
)

const reviewCols = "id, rating, comment, user_id, property_id"

var reviewColumns = map[string]string{
	"rating":     "rating",
	"comment":    "comment",
	"userId":     "user_id",
	"propertyId": "property_id",
}

// ReviewRepo encapsulates all database queries related to reviews.
type ReviewRepo struct {
	db *sql.DB
}

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func scanReview(row *sql.Row) (model.Review, error) {
	var v model.Review
	err := row.Scan(&v.ID, &v.Rating, &v.Comment, &v.UserID, &v.PropertyID)
	return v, err
}

// List returns all reviews. The review collection accepts no filters.
func (r *ReviewRepo) List(ctx context.Context, _ map[string]string) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+reviewCols+" FROM reviews ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Review{}
	for rows.Next() {
		var v model.Review
		if err := rows.Scan(&v.ID, &v.Rating, &v.Comment, &v.UserID, &v.PropertyID); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// GetByID fetches a review by id, returning ErrNotFound when absent.
func (r *ReviewRepo) GetByID(ctx context.Context, id string) (model.Review, error) {
	v, err := scanReview(r.db.QueryRowContext(ctx,
		"SELECT "+reviewCols+" FROM reviews WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Review{}, ErrNotFound
	}
	return v, err
}

// Create inserts a review and assigns its uuid id.
func (r *ReviewRepo) Create(ctx context.Context, v *model.Review) error {
	v.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO reviews ("+reviewCols+") VALUES (?,?,?,?,?)",
		v.ID, v.Rating, v.Comment, v.UserID, v.PropertyID)
	if isConstraintErr(err) {
		return ErrConstraint
	}
	return err
}

// Update applies the submitted fields to a review.
func (r *ReviewRepo) Update(ctx context.Context, id string, fields map[string]any) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	set, args := buildSet(fields, reviewColumns)
	if set == "" {
		return nil
	}
	_, err := r.db.ExecContext(ctx, "UPDATE reviews SET "+set+" WHERE id = ?", append(args, id)...)
	if isConstraintErr(err) {
		return ErrConstraint
	}
	return err
}

// Delete removes a review and returns the removed record, or ErrNotFound.
func (r *ReviewRepo) Delete(ctx context.Context, id string) (model.Review, error) {
	v, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Review{}, err
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM reviews WHERE id = ?", id); err != nil {
		if isConstraintErr(err) {
			return model.Review{}, ErrConstraint
		}
		return model.Review{}, err
	}
	return v, nil
}
