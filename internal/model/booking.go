package model

// Booking represents a stay booked by a user on a property, as stored in
// the `bookings` table. JSON tags follow the public API's camelCase wire
// format. Check-in/check-out dates are opaque strings echoed back exactly
// as submitted.
//
// Fields:
//
//	ID             – uuid primary key, assigned on insert.
//	UserID         – id of the booking user.
//	PropertyID     – id of the booked property.
//	CheckinDate    – start of the stay.
//	CheckoutDate   – end of the stay.
//	NumberOfGuests – guest count for the stay.
//	TotalPrice     – total price for the stay.
//	BookingStatus  – free-form status (e.g. "confirmed").
type Booking struct {
	ID             string  `json:"id"`             // bookings.id
	UserID         string  `json:"userId"`         // bookings.user_id
	PropertyID     string  `json:"propertyId"`     // bookings.property_id
	CheckinDate    string  `json:"checkinDate"`    // bookings.checkin_date
	CheckoutDate   string  `json:"checkoutDate"`   // bookings.checkout_date
	NumberOfGuests int     `json:"numberOfGuests"` // bookings.number_of_guests
	TotalPrice     float64 `json:"totalPrice"`     // bookings.total_price
	BookingStatus  string  `json:"bookingStatus"`  // bookings.booking_status
}
