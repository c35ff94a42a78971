package auth

import "time"

// Role selects which principal type signs in; the backend exposes one
// authentication endpoint per role.
type Role string

const (
	RoleUser      Role = "user"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

// IsValid checks if the role is one the backend knows.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// LoginRequest is the email/password sign-in payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// FederatedLoginRequest exchanges an identity token from the sign-in
// collaborator for a session token.
type FederatedLoginRequest struct {
	IdentityToken string `json:"identity_token" validate:"required"`
}

// AuthResponse is the backend's answer to a successful sign-in.
type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
}

// UserResponse is the signed-in user without sensitive fields.
type UserResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
