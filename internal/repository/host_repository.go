package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/stayhub/booking-api/internal/model"
)

const hostCols = "id, username, password, name, email, phone_number, profile_picture, about_me"

var hostColumns = map[string]string{
	"username":       "username",
	"password":       "password",
	"name":           "name",
	"email":          "email",
	"phoneNumber":    "phone_number",
	"profilePicture": "profile_picture",
	"aboutMe":        "about_me",
}

// HostRepo encapsulates all database queries related to hosts. Hosts double
// as login identities, so besides the CRUD methods there is a lookup by
// username that returns the stored password hash for comparison.
type HostRepo struct {
	db *sql.DB
}

func NewHostRepo(db *sql.DB) *HostRepo { return &HostRepo{db: db} }

func scanHost(row *sql.Row) (model.Host, error) {
	var h model.Host
	err := row.Scan(&h.ID, &h.Username, &h.Password, &h.Name, &h.Email,
		&h.PhoneNumber, &h.ProfilePicture, &h.AboutMe)
	return h, err
}

// List returns hosts, optionally narrowed by a "name" substring filter.
func (r *HostRepo) List(ctx context.Context, filter map[string]string) ([]model.Host, error) {
	q := "SELECT " + hostCols + " FROM hosts"
	var args []any
	if v, ok := filter["name"]; ok {
		q += " WHERE name LIKE CONCAT('%', ?, '%')"
		args = append(args, v)
	}
	q += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Host{}
	for rows.Next() {
		var h model.Host
		if err := rows.Scan(&h.ID, &h.Username, &h.Password, &h.Name, &h.Email,
			&h.PhoneNumber, &h.ProfilePicture, &h.AboutMe); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// GetByID fetches a host by id, returning ErrNotFound when absent.
func (r *HostRepo) GetByID(ctx context.Context, id string) (model.Host, error) {
	h, err := scanHost(r.db.QueryRowContext(ctx,
		"SELECT "+hostCols+" FROM hosts WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Host{}, ErrNotFound
	}
	return h, err
}

// GetByUsername fetches a host by username for the credential check. The
// password is not part of the predicate; callers compare it after fetch.
func (r *HostRepo) GetByUsername(ctx context.Context, username string) (model.Host, error) {
	h, err := scanHost(r.db.QueryRowContext(ctx,
		"SELECT "+hostCols+" FROM hosts WHERE username = ?", username))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Host{}, ErrNotFound
	}
	return h, err
}

// Create inserts a host and assigns its uuid id. The Password field is
// expected to be hashed already.
func (r *HostRepo) Create(ctx context.Context, h *model.Host) error {
	h.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO hosts ("+hostCols+") VALUES (?,?,?,?,?,?,?,?)",
		h.ID, h.Username, h.Password, h.Name, h.Email,
		h.PhoneNumber, h.ProfilePicture, h.AboutMe)
	if isConstraintErr(err) {
		return ErrConstraint
	}
	return err
}

// Update applies the submitted fields to a host.
func (r *HostRepo) Update(ctx context.Context, id string, fields map[string]any) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	set, args := buildSet(fields, hostColumns)
	if set == "" {
		return nil
	}
	_, err := r.db.ExecContext(ctx, "UPDATE hosts SET "+set+" WHERE id = ?", append(args, id)...)
	if isConstraintErr(err) {
		return ErrConstraint
	}
	return err
}

// Delete removes a host and returns the removed record, or ErrNotFound.
func (r *HostRepo) Delete(ctx context.Context, id string) (model.Host, error) {
	h, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Host{}, err
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM hosts WHERE id = ?", id); err != nil {
		if isConstraintErr(err) {
			return model.Host{}, ErrConstraint
		}
		return model.Host{}, err
	}
	return h, nil
}
