package models

import "time"

// Profile roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile represents an account and its authorization role.
type Profile struct {
	ID           string    `bson:"id" json:"id"` // UUID, doubles as the user identity on bookings
	Email        string    `bson:"email" json:"email"`
	Username     string    `bson:"username,omitempty" json:"username,omitempty"`
	FullName     string    `bson:"full_name,omitempty" json:"full_name,omitempty"`
	Role         string    `bson:"role" json:"role"` // "user" or "admin"
	PasswordHash string    `bson:"password_hash" json:"-"`
	TokenHash    string    `bson:"token_hash,omitempty" json:"-"` // SHA-256 of the active session token
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// ProfileWithBookingCount is a profile joined with how many bookings
// the user holds, for the admin user list.
type ProfileWithBookingCount struct {
	Profile      `bson:",inline"`
	BookingCount int64 `bson:"booking_count" json:"booking_count"`
}

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the session token issued on login.
type AuthResponse struct {
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`
}
