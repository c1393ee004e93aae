package model

// Review is a user's rating and comment on a property, as stored in the
// `reviews` table.
type Review struct {
	ID         string  `json:"id"`         // reviews.id
	Rating     float64 `json:"rating"`     // reviews.rating
	Comment    string  `json:"comment"`    // reviews.comment
	UserID     string  `json:"userId"`     // reviews.user_id
	PropertyID string  `json:"propertyId"` // reviews.property_id
}
