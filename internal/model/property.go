package model

// Property is a listing that can be booked and reviewed, as stored in the
// `properties` table. Rating is persisted as submitted and not
// range-validated anywhere.
type Property struct {
	ID            string  `json:"id"`            // properties.id
	Title         string  `json:"title"`         // properties.title
	Description   string  `json:"description"`   // properties.description
	Location      string  `json:"location"`      // properties.location
	PricePerNight float64 `json:"pricePerNight"` // properties.price_per_night
	BedroomCount  int     `json:"bedroomCount"`  // properties.bedroom_count
	BathRoomCount int     `json:"bathRoomCount"` // properties.bath_room_count
	MaxGuestCount int     `json:"maxGuestCount"` // properties.max_guest_count
	HostID        string  `json:"hostId"`        // properties.host_id
	Rating        float64 `json:"rating"`        // properties.rating
}
