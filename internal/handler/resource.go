package handler // handler implements the HTTP controllers of the API

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stayhub/booking-api/internal/queue"
	"github.com/stayhub/booking-api/internal/repository"
)

// storageTimeout bounds every storage call so a stuck database fails the
// request instead of hanging it.
const storageTimeout = 5 * time.Second

// Store is the storage collaborator contract the controller drives. Create
// assigns the new record's id into the entity; GetByID, Update and Delete
// return repository.ErrNotFound when no record matches the id.
type Store[T any] interface {
	List(ctx context.Context, filter map[string]string) ([]T, error)
	GetByID(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) (T, error)
}

// Resource is the CRUD controller for one resource type. The protocol is
// identical across bookings, hosts, properties and reviews, so it is
// implemented once here and instantiated four times with the
// resource-specific required-field set, list filters and store.
type Resource[T any] struct {
	Name     string   // display name used in messages, e.g. "Booking"
	Key      string   // JSON key wrapping entities in responses, e.g. "booking"
	Required []string // fields that must be present and non-falsy on create
	Filters  []string // query parameters forwarded to the store on list
	Store    Store[T]

	// Optional hooks. BeforeCreate/BeforeUpdate may rewrite the raw payload
	// before it reaches the store (hosts hash their password here); Sanitize
	// strips fields that must never leave the API.
	BeforeCreate func(fields map[string]any) error
	BeforeUpdate func(fields map[string]any) error
	Sanitize     func(entity *T)

	// Publish, when set, receives a change event after each successful
	// mutation. Failures are the publisher's problem, never the request's.
	Publish func(ctx context.Context, ev queue.ResourceEvent) error
}

// fieldPresent reports whether a decoded JSON value counts as provided.
// Absent, null, empty string, numeric zero and false are all treated as
// missing. This is the deliberately coarse presence check the API is
// contracted to keep: a zero price or an empty comment is rejected exactly
// like an omitted field.
func fieldPresent(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case float64:
		return t != 0
	case bool:
		return t
	default:
		return true // objects and arrays
	}
}

// entityID extracts the assigned id by round-tripping the entity through
// its JSON form; every entity exposes an `id` field.
func entityID(entity any) string {
	b, err := json.Marshal(entity)
	if err != nil {
		return ""
	}
	var m struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return ""
	}
	return m.ID
}

func (r *Resource[T]) storageCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), storageTimeout)
}

func (r *Resource[T]) notFound(c echo.Context, id string) error {
	return c.JSON(http.StatusNotFound, echo.Map{
		"message": fmt.Sprintf("%s with id %s not found", r.Name, id),
	})
}

// respondStorageErr maps storage failures the controller understands;
// anything else propagates to the top-level error handler, which logs it
// and answers a generic 500.
func (r *Resource[T]) respondStorageErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrConstraint):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid data provided."})
	case errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "Service unavailable"})
	default:
		return err
	}
}

func (r *Resource[T]) publish(action, id string) {
	if r.Publish == nil {
		return
	}
	ev := queue.ResourceEvent{
		Resource:   r.Key,
		Action:     action,
		ID:         id,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() { _ = r.Publish(context.Background(), ev) }()
}

// List handles GET /{resource}. Recognized query parameters are forwarded
// to the store as equality filters; filtering semantics belong entirely to
// storage. No authentication required.
func (r *Resource[T]) List(c echo.Context) error {
	filter := map[string]string{}
	for _, p := range r.Filters {
		if v := c.QueryParam(p); v != "" {
			filter[p] = v
		}
	}

	ctx, cancel := r.storageCtx(c)
	defer cancel()

	items, err := r.Store.List(ctx, filter)
	if err != nil {
		return r.respondStorageErr(c, err)
	}
	if r.Sanitize != nil {
		for i := range items {
			r.Sanitize(&items[i])
		}
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /{resource}/{id}. No authentication required.
func (r *Resource[T]) Get(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := r.storageCtx(c)
	defer cancel()

	item, err := r.Store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return r.notFound(c, id)
	}
	if err != nil {
		return r.respondStorageErr(c, err)
	}
	if r.Sanitize != nil {
		r.Sanitize(&item)
	}
	return c.JSON(http.StatusOK, item)
}

// Create handles POST /{resource}. The body is decoded into a raw map
// first so the presence check sees exactly what the client sent; the store
// is never invoked when a required field is missing. On success the store
// assigns the id and the created entity is echoed back.
func (r *Resource[T]) Create(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	for _, f := range r.Required {
		if !fieldPresent(fields[f]) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing required fields."})
		}
	}
	if r.BeforeCreate != nil {
		if err := r.BeforeCreate(fields); err != nil {
			return err
		}
	}

	// Re-encode after the hook so typed decoding sees its output.
	normalized, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	var entity T
	if err := json.Unmarshal(normalized, &entity); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := r.storageCtx(c)
	defer cancel()

	if err := r.Store.Create(ctx, &entity); err != nil {
		return r.respondStorageErr(c, err)
	}
	assignedID := entityID(&entity)
	if r.Sanitize != nil {
		r.Sanitize(&entity)
	}
	r.publish("created", assignedID)
	return c.JSON(http.StatusCreated, map[string]any{
		"message": fmt.Sprintf("%s with id %s successfully added", r.Name, assignedID),
		r.Key:     entity,
	})
}

// Update handles PUT /{resource}/{id}. No presence validation happens
// here: partial or empty payloads are passed through to the store as-is.
// Only a confirmation message is returned, not the updated entity.
func (r *Resource[T]) Update(c echo.Context) error {
	id := c.Param("id")

	fields := map[string]any{}
	if err := json.NewDecoder(c.Request().Body).Decode(&fields); err != nil && !errors.Is(err, io.EOF) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if r.BeforeUpdate != nil {
		if err := r.BeforeUpdate(fields); err != nil {
			return err
		}
	}

	ctx, cancel := r.storageCtx(c)
	defer cancel()

	err := r.Store.Update(ctx, id, fields)
	if errors.Is(err, repository.ErrNotFound) {
		return r.notFound(c, id)
	}
	if err != nil {
		return r.respondStorageErr(c, err)
	}
	r.publish("updated", id)
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("%s with id %s successfully updated", r.Name, id),
	})
}

// Delete handles DELETE /{resource}/{id}. The removed entity is echoed
// back alongside the confirmation message.
func (r *Resource[T]) Delete(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := r.storageCtx(c)
	defer cancel()

	entity, err := r.Store.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return r.notFound(c, id)
	}
	if err != nil {
		return r.respondStorageErr(c, err)
	}
	if r.Sanitize != nil {
		r.Sanitize(&entity)
	}
	r.publish("deleted", id)
	return c.JSON(http.StatusOK, map[string]any{
		"message": fmt.Sprintf("%s with id %s successfully deleted", r.Name, id),
		r.Key:     entity,
	})
}
