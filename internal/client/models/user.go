package models

import "time"

// User is the identity record returned by /auth/login, /auth/register and
// /auth/profile. It is also the cached identity persisted under userData.
type User struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Level         int       `json:"level"`
	TotalXP       int       `json:"total_xp"`
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
	CreatedAt     time.Time `json:"created_at"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthPayload is the data of a successful login or registration.
type AuthPayload struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// ProfilePayload is the data of GET /auth/profile.
type ProfilePayload struct {
	User User `json:"user"`
}
