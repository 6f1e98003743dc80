package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Sinduaditya/fisikaap-sub000/internal/dbx"
	"github.com/Sinduaditya/fisikaap-sub000/internal/idx"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/models"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/repositories/repomanager"
)

const (
	fullScore = 100

	// recentAttempts caps GET /user/attempts.
	recentAttempts = 50
)

type SubmitInput struct {
	UserID     int64
	QuestionID int64
	Answer     string
	TimeTaken  int
}

type AttemptService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewAttemptService(db *sql.DB, m repomanager.RepositoryManager) *AttemptService {
	return &AttemptService{db: db, repomanager: m, now: time.Now}
}

// Submit grades an answer and records the attempt. In the same transaction
// it moves the user's streak, awards the question's XP on the first correct
// answer to it, and unlocks any achievements that became reachable.
func (s *AttemptService) Submit(ctx context.Context, in SubmitInput) (*models.SubmitResult, error) {
	v := &ValidationError{}
	if normalizeText(in.Answer) == "" {
		v.add("answer", "The answer field is required.")
	}
	if in.TimeTaken < 0 {
		v.add("time_taken", "The time taken must be at least 0.")
	}
	if !v.empty() {
		return nil, v
	}

	now := s.now()
	var result *models.SubmitResult

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		q, err := s.repomanager.Catalog(tx).GetQuestion(ctx, in.QuestionID)
		if err != nil {
			return err
		}

		// The row lock serialises submissions per user, so the first-correct
		// check below sees every attempt committed before it.
		users := s.repomanager.Users(tx)
		user, err := users.LockByID(ctx, in.UserID)
		if err != nil {
			return err
		}

		attempts := s.repomanager.Attempts(tx)
		correct := grade(q, in.Answer)

		solvedBefore := false
		if correct {
			if solvedBefore, err = attempts.HasCorrect(ctx, in.UserID, q.ID); err != nil {
				return fmt.Errorf("error checking attempts: %w", err)
			}
		}

		attempt := &models.Attempt{
			ID:         idx.New(),
			UserID:     in.UserID,
			QuestionID: q.ID,
			Answer:     in.Answer,
			IsCorrect:  correct,
			TimeTaken:  in.TimeTaken,
		}
		if correct {
			attempt.Score = fullScore
		}
		if err := attempts.Create(ctx, attempt); err != nil {
			return fmt.Errorf("error saving attempt: %w", err)
		}

		touchStreak(user, now)

		earned := 0
		if correct && !solvedBefore {
			earned = q.XPReward
		}
		user.TotalXP += earned
		user.Level = models.LevelFor(user.TotalXP)

		bonus, err := s.unlockAchievements(ctx, tx, user)
		if err != nil {
			return err
		}
		earned += bonus

		if err := users.UpdateProgress(ctx, user); err != nil {
			return fmt.Errorf("error updating user: %w", err)
		}

		result = &models.SubmitResult{
			IsCorrect: correct,
			Score:     attempt.Score,
			XPEarned:  earned,
			Feedback:  feedback(q, correct, solvedBefore),
		}
		if !correct {
			result.CorrectAnswer = displayAnswer(q)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// unlockAchievements unlocks every reachable achievement and adds its XP to
// user. Bonus XP can raise the level, so it repeats until nothing new unlocks.
func (s *AttemptService) unlockAchievements(ctx context.Context, tx dbx.DBTX, user *models.User) (int, error) {
	repo := s.repomanager.Gamification(tx)

	list, err := repo.ListForUser(ctx, user.ID)
	if err != nil {
		return 0, fmt.Errorf("error listing achievements: %w", err)
	}

	correctAnswers := -1
	bonus := 0

	for changed := true; changed; {
		changed = false
		for i := range list {
			a := &list[i]
			if a.Unlocked {
				continue
			}

			var value int
			switch a.Criterion {
			case models.CriterionCorrectAnswers:
				if correctAnswers < 0 {
					if correctAnswers, err = s.repomanager.Attempts(tx).CountCorrect(ctx, user.ID); err != nil {
						return 0, fmt.Errorf("error counting answers: %w", err)
					}
				}
				value = correctAnswers
			case models.CriterionLevel:
				value = user.Level
			case models.CriterionStreak:
				value = user.CurrentStreak
			default:
				continue
			}
			if value < a.Threshold {
				continue
			}

			unlocked, err := repo.Unlock(ctx, user.ID, a.ID)
			if err != nil {
				return 0, fmt.Errorf("error unlocking achievement %s: %w", a.Code, err)
			}
			a.Unlocked = true
			if !unlocked {
				continue
			}

			bonus += a.XPReward
			user.TotalXP += a.XPReward
			user.Level = models.LevelFor(user.TotalXP)
			changed = true
		}
	}
	return bonus, nil
}

// touchStreak records activity on now's UTC day.
func touchStreak(user *models.User, now time.Time) {
	day := today(now)

	switch {
	case user.LastActiveOn != nil && today(*user.LastActiveOn).Equal(day):
		if user.CurrentStreak == 0 {
			user.CurrentStreak = 1
		}
	case user.LastActiveOn != nil && today(*user.LastActiveOn).Equal(day.AddDate(0, 0, -1)):
		user.CurrentStreak++
	default:
		user.CurrentStreak = 1
	}

	if user.CurrentStreak > user.LongestStreak {
		user.LongestStreak = user.CurrentStreak
	}
	user.LastActiveOn = &day
}

func feedback(q *models.Question, correct, solvedBefore bool) string {
	switch {
	case correct && solvedBefore:
		return "Correct! You already earned XP for this question."
	case correct:
		return fmt.Sprintf("Correct! +%d XP", q.XPReward)
	default:
		return "Incorrect. The correct answer is " + displayAnswer(q) + "."
	}
}

func displayAnswer(q *models.Question) string {
	if q.Unit == "" {
		return q.Answer
	}
	return q.Answer + " " + q.Unit
}

func (s *AttemptService) UserAttempts(ctx context.Context, userID int64) ([]models.Attempt, error) {
	return s.repomanager.Attempts(s.db).ListByUser(ctx, userID, recentAttempts)
}

func (s *AttemptService) UserProgress(ctx context.Context, userID int64) ([]models.TopicProgress, error) {
	return s.repomanager.Attempts(s.db).Progress(ctx, userID)
}

func (s *AttemptService) UserAchievements(ctx context.Context, userID int64) ([]models.Achievement, error) {
	return s.repomanager.Gamification(s.db).ListForUser(ctx, userID)
}
