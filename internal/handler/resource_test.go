package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayhub/booking-api/internal/auth"
	"github.com/stayhub/booking-api/internal/handler"
	"github.com/stayhub/booking-api/internal/model"
	"github.com/stayhub/booking-api/internal/repository"
	"github.com/stayhub/booking-api/internal/router"
)

const testSecret = "unit-test-secret"

// fakeStore is an in-memory Store used to test the controllers without a
// database. calls counts every store invocation so tests can assert that
// validation and auth failures never reach storage.
type fakeStore[T any] struct {
	mu         sync.Mutex
	items      map[string]T
	assign     func(e *T, id string)
	nextID     int
	calls      int
	err        error // when set, every operation fails with it
	lastFilter map[string]string
	lastFields map[string]any
}

func (s *fakeStore[T]) List(_ context.Context, filter map[string]string) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	out := []T{}
	for _, it := range s.items {
		out = append(out, it)
	}
	return out, nil
}

func (s *fakeStore[T]) GetByID(_ context.Context, id string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	var zero T
	if s.err != nil {
		return zero, s.err
	}
	it, ok := s.items[id]
	if !ok {
		return zero, repository.ErrNotFound
	}
	return it, nil
}

func (s *fakeStore[T]) Create(_ context.Context, e *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return s.err
	}
	s.nextID++
	id := fmt.Sprintf("id-%d", s.nextID)
	s.assign(e, id)
	s.items[id] = *e
	return nil
}

func (s *fakeStore[T]) Update(_ context.Context, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastFields = fields
	if s.err != nil {
		return s.err
	}
	if _, ok := s.items[id]; !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (s *fakeStore[T]) Delete(_ context.Context, id string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	var zero T
	if s.err != nil {
		return zero, s.err
	}
	it, ok := s.items[id]
	if !ok {
		return zero, repository.ErrNotFound
	}
	delete(s.items, id)
	return it, nil
}

type stores struct {
	bookings   *fakeStore[model.Booking]
	hosts      *fakeStore[model.Host]
	properties *fakeStore[model.Property]
	reviews    *fakeStore[model.Review]
}

// hostFinder adapts the host fake to the login handler's lookup interface.
type hostFinder struct{ s *fakeStore[model.Host] }

func (f hostFinder) GetByUsername(_ context.Context, username string) (model.Host, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, h := range f.s.items {
		if h.Username == username {
			return h, nil
		}
	}
	return model.Host{}, repository.ErrNotFound
}

func newTestServer(t *testing.T) (*echo.Echo, *stores) {
	t.Helper()
	s := &stores{
		bookings:   &fakeStore[model.Booking]{items: map[string]model.Booking{}, assign: func(b *model.Booking, id string) { b.ID = id }},
		hosts:      &fakeStore[model.Host]{items: map[string]model.Host{}, assign: func(h *model.Host, id string) { h.ID = id }},
		properties: &fakeStore[model.Property]{items: map[string]model.Property{}, assign: func(p *model.Property, id string) { p.ID = id }},
		reviews:    &fakeStore[model.Review]{items: map[string]model.Review{}, assign: func(v *model.Review, id string) { v.ID = id }},
	}
	res := router.Resources{
		Bookings:   handler.NewBookingResource(s.bookings, nil),
		Hosts:      handler.NewHostResource(s.hosts, 4, nil), // min bcrypt cost keeps tests fast
		Properties: handler.NewPropertyResource(s.properties, nil),
		Reviews:    handler.NewReviewResource(s.reviews, nil),
		Login:      handler.NewLoginHandler(testSecret, hostFinder{s.hosts}),
	}
	e := echo.New()
	e.Logger.SetOutput(&strings.Builder{})
	router.Register(e, testSecret, nil, res)
	return e, s
}

func bearer(t *testing.T) string {
	t.Helper()
	token, err := auth.SignAccessToken(testSecret, "host-1")
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(e *echo.Echo, method, target, body, authHeader string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const validProperty = `{
	"title": "Canal view loft",
	"description": "Bright loft in the old centre",
	"location": "Amsterdam",
	"pricePerNight": 120.5,
	"bedroomCount": 2,
	"bathRoomCount": 1,
	"maxGuestCount": 4,
	"hostId": "host-1",
	"rating": 4.5
}`

func TestCreateProperty(t *testing.T) {
	t.Parallel()
	e, s := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/properties", validProperty, bearer(t))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Message  string         `json:"message"`
		Property model.Property `json:"property"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "id-1", resp.Property.ID)
	assert.Equal(t, "Property with id id-1 successfully added", resp.Message)
	assert.Equal(t, "Canal view loft", resp.Property.Title)
	assert.Equal(t, 120.5, resp.Property.PricePerNight)
	assert.Equal(t, 1, s.properties.calls)
}

// The presence check treats JSON falsy values as absent on purpose: the
// API keeps the source behavior where a zero price or an empty comment is
// rejected exactly like an omitted field.
func TestCreateProperty_MissingOrFalsyFields(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
	}{
		{"rating omitted", `{"title":"t","description":"d","location":"l","pricePerNight":1,"bedroomCount":1,"bathRoomCount":1,"maxGuestCount":1,"hostId":"h"}`},
		{"rating zero", `{"title":"t","description":"d","location":"l","pricePerNight":1,"bedroomCount":1,"bathRoomCount":1,"maxGuestCount":1,"hostId":"h","rating":0}`},
		{"title empty", `{"title":"","description":"d","location":"l","pricePerNight":1,"bedroomCount":1,"bathRoomCount":1,"maxGuestCount":1,"hostId":"h","rating":4}`},
		{"price zero", `{"title":"t","description":"d","location":"l","pricePerNight":0,"bedroomCount":1,"bathRoomCount":1,"maxGuestCount":1,"hostId":"h","rating":4}`},
		{"hostId null", `{"title":"t","description":"d","location":"l","pricePerNight":1,"bedroomCount":1,"bathRoomCount":1,"maxGuestCount":1,"hostId":null,"rating":4}`},
		{"empty object", `{}`},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			e, s := newTestServer(t)

			rec := doJSON(e, http.MethodPost, "/properties", tc.body, bearer(t))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"Missing required fields."}`, rec.Body.String())
			assert.Zero(t, s.properties.calls, "storage must not be touched on validation failure")
		})
	}
}

// A body that is not a JSON object is rejected with its own message;
// "Invalid data provided." stays reserved for storage constraint
// violations so the two failure modes cannot be confused.
func TestMalformedBodyRejected(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name           string
		method, target string
		body           string
	}{
		{"truncated create body", http.MethodPost, "/properties", `{"title":`},
		{"non-object create body", http.MethodPost, "/properties", `"just a string"`},
		{"wrong field type", http.MethodPost, "/properties",
			`{"title":"t","description":"d","location":"l","pricePerNight":"not-a-number","bedroomCount":1,"bathRoomCount":1,"maxGuestCount":1,"hostId":"h","rating":4}`},
		{"truncated update body", http.MethodPut, "/properties/42", `not json`},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			e, s := newTestServer(t)

			rec := doJSON(e, tc.method, tc.target, tc.body, bearer(t))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"invalid body"}`, rec.Body.String())
			assert.Zero(t, s.properties.calls, "a malformed body must never reach storage")
		})
	}
}

func TestMutationsRequireToken(t *testing.T) {
	t.Parallel()

	badToken, err := auth.SignAccessToken("some-other-secret", "host-1")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + badToken},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			e, s := newTestServer(t)

			for _, req := range []struct{ method, target, body string }{
				{http.MethodPost, "/properties", validProperty},
				{http.MethodPut, "/bookings/42", `{"bookingStatus":"cancelled"}`},
				{http.MethodDelete, "/reviews/42", ""},
			} {
				rec := doJSON(e, req.method, req.target, req.body, tc.header)
				assert.Equal(t, http.StatusUnauthorized, rec.Code)
				assert.JSONEq(t, `{"error":"invalid token"}`, rec.Body.String())
			}
			assert.Zero(t, s.properties.calls+s.bookings.calls+s.reviews.calls,
				"controller must never run without a verified token")
		})
	}
}

func TestReadsNeedNoToken(t *testing.T) {
	t.Parallel()
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/properties", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetByID_NotFound(t *testing.T) {
	t.Parallel()
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/bookings/42", "", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Booking with id 42 not found"}`, rec.Body.String())
}

func TestDeleteBooking(t *testing.T) {
	t.Parallel()
	e, s := newTestServer(t)
	s.bookings.items["42"] = model.Booking{
		ID: "42", UserID: "u-1", PropertyID: "p-1",
		CheckinDate: "2026-06-01", CheckoutDate: "2026-06-08",
		NumberOfGuests: 2, TotalPrice: 840, BookingStatus: "confirmed",
	}

	// Unknown id first.
	rec := doJSON(e, http.MethodDelete, "/bookings/nope", "", bearer(t))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Booking with id nope not found"}`, rec.Body.String())

	// Existing id: 200 with message and the removed entity echoed back.
	rec = doJSON(e, http.MethodDelete, "/bookings/42", "", bearer(t))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Message string        `json:"message"`
		Booking model.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Booking with id 42 successfully deleted", resp.Message)
	assert.Equal(t, "u-1", resp.Booking.UserID)

	// Deleting again is a 404: the first delete really removed the record.
	rec = doJSON(e, http.MethodDelete, "/bookings/42", "", bearer(t))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Booking with id 42 not found"}`, rec.Body.String())
}

func TestUpdate(t *testing.T) {
	t.Parallel()
	e, s := newTestServer(t)
	s.reviews.items["7"] = model.Review{ID: "7", Rating: 3, Comment: "ok", UserID: "u-1", PropertyID: "p-1"}

	rec := doJSON(e, http.MethodPut, "/reviews/missing", `{"rating":5}`, bearer(t))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Review with id missing not found"}`, rec.Body.String())

	// No presence validation on update: a partial payload passes through.
	rec = doJSON(e, http.MethodPut, "/reviews/7", `{"rating":5}`, bearer(t))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Review with id 7 successfully updated"}`, rec.Body.String())
	assert.Equal(t, map[string]any{"rating": float64(5)}, s.reviews.lastFields)

	// Even an empty payload succeeds when the record exists.
	rec = doJSON(e, http.MethodPut, "/reviews/7", `{}`, bearer(t))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestListFilterForwardedToStore(t *testing.T) {
	t.Parallel()
	e, s := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/bookings?userId=u-9&unknown=x", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"userId": "u-9"}, s.bookings.lastFilter,
		"only declared filter params reach the store")
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	t.Parallel()
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/properties", validProperty, bearer(t))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Property model.Property `json:"property"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(e, http.MethodGet, "/properties/"+created.Property.ID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.Property
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created.Property, got)
	assert.Equal(t, 2, got.BedroomCount)
}

func TestHostPasswordIsHashedAndNeverEchoed(t *testing.T) {
	t.Parallel()
	e, s := newTestServer(t)

	body := `{"username":"linda","password":"hunter2","name":"Linda","email":"l@x.nl",
		"phoneNumber":"061","profilePicture":"pic.png","aboutMe":"hi"}`
	rec := doJSON(e, http.MethodPost, "/hosts", body, bearer(t))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter2")
	assert.NotContains(t, rec.Body.String(), `"password"`)

	stored := s.hosts.items["id-1"]
	assert.NotEqual(t, "hunter2", stored.Password)
	assert.True(t, auth.VerifyPassword(stored.Password, "hunter2"))

	// Reads are sanitized too.
	rec = doJSON(e, http.MethodGet, "/hosts/id-1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"password"`)
}

func TestStorageFailureMapping(t *testing.T) {
	t.Parallel()

	t.Run("constraint violation is a 400", func(t *testing.T) {
		t.Parallel()
		e, s := newTestServer(t)
		s.properties.err = repository.ErrConstraint

		rec := doJSON(e, http.MethodPost, "/properties", validProperty, bearer(t))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid data provided."}`, rec.Body.String())
	})

	t.Run("timeout is a 503", func(t *testing.T) {
		t.Parallel()
		e, s := newTestServer(t)
		s.bookings.err = context.DeadlineExceeded

		rec := doJSON(e, http.MethodGet, "/bookings", "", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"error":"Service unavailable"}`, rec.Body.String())
	})

	t.Run("anything else is a generic 500", func(t *testing.T) {
		t.Parallel()
		e, s := newTestServer(t)
		s.reviews.err = fmt.Errorf("connection reset by peer")

		rec := doJSON(e, http.MethodGet, "/reviews", "", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())
		assert.NotContains(t, rec.Body.String(), "connection reset",
			"internal detail must never reach the caller")
	})
}
