package models

import "time"

// Achievement criteria: what Threshold is compared against.
const (
	CriterionCorrectAnswers = "correct_answers"
	CriterionLevel          = "level"
	CriterionStreak         = "streak"
)

type Achievement struct {
	ID          int64      `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	XPReward    int        `json:"xp_reward"`
	Criterion   string     `json:"-"`
	Threshold   int        `json:"-"`
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
