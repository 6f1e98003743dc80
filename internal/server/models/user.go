// Package models holds the backend's domain rows. JSON tags give the wire
// shape inside the response envelope's "data".
package models

import "time"

// XPPerLevel is how much XP one level takes; level = 1 + xp/XPPerLevel.
const XPPerLevel = 500

type User struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	PasswordHash  string     `json:"-"`
	Level         int        `json:"level"`
	TotalXP       int        `json:"total_xp"`
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	LastActiveOn  *time.Time `json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
}

// LevelFor returns the level reached with xp.
func LevelFor(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return 1 + xp/XPPerLevel
}

// RevokedToken is a logged-out bearer token, kept until it would have
// expired anyway.
type RevokedToken struct {
	JTI       string
	UserID    int64
	ExpiresAt time.Time
}
