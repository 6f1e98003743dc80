package models

import "time"

type Topic struct {
	ID            int64  `json:"id"`
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"question_count"`
	HasSimulation bool   `json:"has_simulation"`
}

// Question is a catalog question. Answer and Tolerance never leave the
// server; Tolerance is relative (0.02 = 2%) and only applies to numeric
// answers.
type Question struct {
	ID           int64              `json:"id"`
	TopicID      int64              `json:"topic_id"`
	Text         string             `json:"text"`
	Options      []string           `json:"options,omitempty"`
	Difficulty   string             `json:"difficulty"`
	XPReward     int                `json:"xp_reward"`
	Answer       string             `json:"-"`
	Tolerance    float64            `json:"-"`
	IsSimulation bool               `json:"-"`
	Parameters   map[string]float64 `json:"-"`
	Unit         string             `json:"-"`
}

type SimulationQuestion struct {
	Question
	TopicSlug  string             `json:"topic_slug"`
	Parameters map[string]float64 `json:"parameters,omitempty"`
	Unit       string             `json:"unit,omitempty"`
}

type Attempt struct {
	ID         string    `json:"id"`
	UserID     int64     `json:"-"`
	QuestionID int64     `json:"question_id"`
	Answer     string    `json:"answer"`
	IsCorrect  bool      `json:"is_correct"`
	Score      int       `json:"score"`
	TimeTaken  int       `json:"time_taken"`
	CreatedAt  time.Time `json:"created_at"`
}

type SubmitResult struct {
	IsCorrect     bool   `json:"is_correct"`
	Score         int    `json:"score"`
	Feedback      string `json:"feedback"`
	XPEarned      int    `json:"xp_earned"`
	CorrectAnswer string `json:"correct_answer,omitempty"`
}

type TopicProgress struct {
	TopicID    int64   `json:"topic_id"`
	TopicSlug  string  `json:"topic_slug"`
	TopicTitle string  `json:"topic_title"`
	Completed  int     `json:"completed"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}
