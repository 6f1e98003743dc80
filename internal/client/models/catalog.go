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

type Question struct {
	ID         int64    `json:"id"`
	TopicID    int64    `json:"topic_id"`
	Text       string   `json:"text"`
	Options    []string `json:"options,omitempty"`
	Difficulty string   `json:"difficulty"`
	XPReward   int      `json:"xp_reward"`
}

// SimulationQuestion is a question bound to an interactive demonstration;
// Parameters are the initial values the demonstration is configured with.
type SimulationQuestion struct {
	Question
	TopicSlug  string             `json:"topic_slug"`
	Parameters map[string]float64 `json:"parameters,omitempty"`
	Unit       string             `json:"unit,omitempty"`
}

// SubmitAnswerRequest is the body of POST /simulation/questions/{id}/submit.
type SubmitAnswerRequest struct {
	Answer    string `json:"answer"`
	TimeTaken int    `json:"time_taken"`
}

type SubmitResult struct {
	IsCorrect     bool   `json:"is_correct"`
	Score         int    `json:"score"`
	Feedback      string `json:"feedback"`
	XPEarned      int    `json:"xp_earned"`
	CorrectAnswer string `json:"correct_answer,omitempty"`
}

type Attempt struct {
	ID         string    `json:"id"`
	QuestionID int64     `json:"question_id"`
	Answer     string    `json:"answer"`
	IsCorrect  bool      `json:"is_correct"`
	Score      int       `json:"score"`
	TimeTaken  int       `json:"time_taken"`
	CreatedAt  time.Time `json:"created_at"`
}

type TopicProgress struct {
	TopicID    int64   `json:"topic_id"`
	TopicSlug  string  `json:"topic_slug"`
	TopicTitle string  `json:"topic_title"`
	Completed  int     `json:"completed"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}
