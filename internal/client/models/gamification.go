package models

import "time"

// Achievement is a catalog achievement; Unlocked and UnlockedAt are only
// populated by /user/achievements.
type Achievement struct {
	ID          int64      `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	XPReward    int        `json:"xp_reward"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

type Challenge struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Target      int       `json:"target"`
	XPReward    int       `json:"xp_reward"`
	ActiveOn    time.Time `json:"active_on"`
}
