package model

// Host is a property owner and the identity subject for the credential
// check endpoint. The password column holds a bcrypt hash; the field is
// cleared before any host leaves the API, so it only marshals on the way
// in (create/update payloads).
type Host struct {
	ID             string `json:"id"`                 // hosts.id
	Username       string `json:"username"`           // hosts.username (unique)
	Password       string `json:"password,omitempty"` // hosts.password (bcrypt hash, never echoed)
	Name           string `json:"name"`               // hosts.name
	Email          string `json:"email"`              // hosts.email
	PhoneNumber    string `json:"phoneNumber"`        // hosts.phone_number
	ProfilePicture string `json:"profilePicture"`     // hosts.profile_picture
	AboutMe        string `json:"aboutMe"`            // hosts.about_me
}
