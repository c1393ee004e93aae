package handler

import (
	"context"

	"github.com/stayhub/booking-api/internal/auth"
	"github.com/stayhub/booking-api/internal/model"
	"github.com/stayhub/booking-api/internal/queue"
)

// Publisher is the change-event sink injected into each resource
// controller. Production wires queue.PublishResourceEvent; tests leave it
// nil.
type Publisher func(ctx context.Context, ev queue.ResourceEvent) error

// NewBookingResource builds the bookings controller. Every field except the
// id is required on create; the list endpoint filters by userId.
func NewBookingResource(store Store[model.Booking], publish Publisher) *Resource[model.Booking] {
	return &Resource[model.Booking]{
		Name: "Booking",
		Key:  "booking",
		Required: []string{
			"userId", "propertyId", "checkinDate", "checkoutDate",
			"numberOfGuests", "totalPrice", "bookingStatus",
		},
		Filters: []string{"userId"},
		Store:   store,
		Publish: publish,
	}
}

// NewHostResource builds the hosts controller. Submitted passwords are
// bcrypt-hashed before they reach storage, and the password column never
// leaves the API in any response.
func NewHostResource(store Store[model.Host], bcryptCost int, publish Publisher) *Resource[model.Host] {
	hashPassword := func(fields map[string]any) error {
		pw, ok := fields["password"].(string)
		if !ok || pw == "" {
			return nil
		}
		hash, err := auth.HashPassword(pw, bcryptCost)
		if err != nil {
			return err
		}
		fields["password"] = hash
		return nil
	}

	return &Resource[model.Host]{
		Name: "Host",
		Key:  "host",
		Required: []string{
			"username", "password", "name", "email",
			"phoneNumber", "profilePicture", "aboutMe",
		},
		Filters:      []string{"name"},
		Store:        store,
		BeforeCreate: hashPassword,
		BeforeUpdate: hashPassword,
		Sanitize:     func(h *model.Host) { h.Password = "" },
		Publish:      publish,
	}
}

// NewPropertyResource builds the properties controller. All nine non-id
// fields are required on create; rating is presence-checked but not
// range-validated. The list endpoint filters by location and pricePerNight.
func NewPropertyResource(store Store[model.Property], publish Publisher) *Resource[model.Property] {
	return &Resource[model.Property]{
		Name: "Property",
		Key:  "property",
		Required: []string{
			"title", "description", "location", "pricePerNight",
			"bedroomCount", "bathRoomCount", "maxGuestCount", "hostId", "rating",
		},
		Filters: []string{"location", "pricePerNight"},
		Store:   store,
		Publish: publish,
	}
}

// NewReviewResource builds the reviews controller. The review collection
// accepts no list filters.
func NewReviewResource(store Store[model.Review], publish Publisher) *Resource[model.Review] {
	return &Resource[model.Review]{
		Name:     "Review",
		Key:      "review",
		Required: []string{"rating", "comment", "userId", "propertyId"},
		Store:    store,
		Publish:  publish,
	}
}
