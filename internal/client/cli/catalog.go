package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Sinduaditya/fisikaap-sub000/internal/client/models"
	"github.com/Sinduaditya/fisikaap-sub000/internal/client/services"
)

func (a *App) table(header string, rows func(w *tabwriter.Writer)) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	rows(tw)
	_ = tw.Flush()
}

func (a *App) degradedNote(degraded bool, fetchedAt time.Time) {
	if degraded {
		a.printf("(offline copy from %s)\n", fetchedAt.Local().Format("2006-01-02 15:04"))
	}
}

func (a *App) printTopics(res services.Result[[]models.Topic]) {
	a.degradedNote(res.Degraded, res.FetchedAt)
	if len(res.Data) == 0 {
		a.println("No topics.")
		return
	}
	a.table("SLUG\tTITLE\tDIFFICULTY\tQUESTIONS\tSIMULATION", func(w *tabwriter.Writer) {
		for _, t := range res.Data {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", t.Slug, t.Title, t.Difficulty, t.QuestionCount, yesNo(t.HasSimulation))
		}
	})
}

func (a *App) Topics(ctx context.Context, _ []string) error {
	res, err := a.catalog.Topics(ctx)
	if err != nil {
		return err
	}
	a.printTopics(res)
	return nil
}

func (a *App) Topic(ctx context.Context, args []string) error {
	res, err := a.catalog.Topic(ctx, args[0])
	if err != nil {
		return err
	}
	a.degradedNote(res.Degraded, res.FetchedAt)
	t := res.Data
	a.printf("%s (%s)\n", t.Title, t.Slug)
	if t.Description != "" {
		a.println(t.Description)
	}
	a.printf("Difficulty: %s, questions: %d, simulation: %s\n", t.Difficulty, t.QuestionCount, yesNo(t.HasSimulation))
	return nil
}

func (a *App) Questions(ctx context.Context, args []string) error {
	res, err := a.catalog.TopicQuestions(ctx, args[0])
	if err != nil {
		return err
	}
	a.degradedNote(res.Degraded, res.FetchedAt)
	if len(res.Data) == 0 {
		a.println("No questions.")
		return nil
	}
	for _, q := range res.Data {
		a.printf("#%d [%s, %d XP] %s\n", q.ID, q.Difficulty, q.XPReward, q.Text)
		for i, opt := range q.Options {
			a.printf("    %c) %s\n", 'a'+i, opt)
		}
	}
	return nil
}

func (a *App) Simulations(ctx context.Context, _ []string) error {
	res, err := a.catalog.SimulationTopics(ctx)
	if err != nil {
		return err
	}
	a.printTopics(res)
	return nil
}

// Simulate shows the next simulation question of a topic and remembers when
// it was shown, so submit can report the time taken.
func (a *App) Simulate(ctx context.Context, args []string) error {
	q, err := a.catalog.SimulationQuestion(ctx, args[0])
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.asked[q.ID] = a.now()
	a.mu.Unlock()

	a.printf("Question #%d [%s, %d XP]\n", q.ID, q.Difficulty, q.XPReward)
	a.println(q.Text)
	if len(q.Parameters) > 0 {
		a.table("PARAMETER\tVALUE", func(w *tabwriter.Writer) {
			for _, name := range sortedKeys(q.Parameters) {
				fmt.Fprintf(w, "%s\t%s\n", name, strconv.FormatFloat(q.Parameters[name], 'g', -1, 64))
			}
		})
	}
	if q.Unit != "" {
		a.printf("Answer in %s. Submit with: submit %d <answer>\n", q.Unit, q.ID)
	} else {
		a.printf("Submit with: submit %d <answer>\n", q.ID)
	}
	return nil
}

func (a *App) Submit(ctx context.Context, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("question id must be a number, got %q", args[0])
	}
	answer := strings.Join(args[1:], " ")

	a.mu.Lock()
	var elapsed time.Duration
	if at, ok := a.asked[id]; ok {
		elapsed = a.now().Sub(at)
	}
	a.mu.Unlock()

	res, err := a.catalog.SubmitAnswer(ctx, id, answer, elapsed)
	if err != nil {
		return err
	}

	a.mu.Lock()
	delete(a.asked, id)
	a.mu.Unlock()

	if res.IsCorrect {
		a.printf("Correct! Score %d, +%d XP\n", res.Score, res.XPEarned)
	} else {
		a.printf("Not quite. Score %d\n", res.Score)
		if res.CorrectAnswer != "" {
			a.printf("Expected: %s\n", res.CorrectAnswer)
		}
	}
	if res.Feedback != "" {
		a.println(res.Feedback)
	}
	return nil
}

func (a *App) printAchievements(list []models.Achievement, withStatus bool) {
	if len(list) == 0 {
		a.println("No achievements.")
		return
	}
	a.table("CODE\tNAME\tXP\tSTATUS", func(w *tabwriter.Writer) {
		for _, ach := range list {
			status := ""
			if withStatus {
				status = "locked"
				if ach.Unlocked {
					status = "unlocked"
					if ach.UnlockedAt != nil {
						status += " " + ach.UnlockedAt.Local().Format("2006-01-02")
					}
				}
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", ach.Code, ach.Name, ach.XPReward, status)
		}
	})
}

// Achievements lists the catalog, or the user's own progress on it with
// "achievements mine".
func (a *App) Achievements(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "mine" {
		list, err := a.catalog.UserAchievements(ctx)
		if err != nil {
			return err
		}
		a.printAchievements(list, true)
		return nil
	}

	res, err := a.catalog.Achievements(ctx)
	if err != nil {
		return err
	}
	a.degradedNote(res.Degraded, res.FetchedAt)
	a.printAchievements(res.Data, false)
	return nil
}

func (a *App) Challenges(ctx context.Context, _ []string) error {
	res, err := a.catalog.Challenges(ctx)
	if err != nil {
		return err
	}
	a.degradedNote(res.Degraded, res.FetchedAt)
	if len(res.Data) == 0 {
		a.println("No challenges.")
		return nil
	}
	a.table("DATE\tTITLE\tTARGET\tXP", func(w *tabwriter.Writer) {
		for _, c := range res.Data {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", c.ActiveOn.Format("2006-01-02"), c.Title, c.Target, c.XPReward)
		}
	})
	return nil
}

func (a *App) Daily(ctx context.Context, _ []string) error {
	res, err := a.catalog.DailyChallenge(ctx)
	if err != nil {
		return err
	}
	a.degradedNote(res.Degraded, res.FetchedAt)
	c := res.Data
	a.printf("Today's challenge: %s (+%d XP)\n", c.Title, c.XPReward)
	if c.Description != "" {
		a.println(c.Description)
	}
	return nil
}

func (a *App) Progress(ctx context.Context, _ []string) error {
	list, err := a.catalog.UserProgress(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No progress yet.")
		return nil
	}
	a.table("TOPIC\tDONE\tPROGRESS", func(w *tabwriter.Writer) {
		for _, p := range list {
			fmt.Fprintf(w, "%s\t%d/%d\t%.0f%%\n", p.TopicTitle, p.Completed, p.Total, p.Percentage)
		}
	})
	return nil
}

func (a *App) Attempts(ctx context.Context, _ []string) error {
	list, err := a.catalog.UserAttempts(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No attempts yet.")
		return nil
	}
	a.table("WHEN\tQUESTION\tANSWER\tRESULT\tSCORE\tTIME", func(w *tabwriter.Writer) {
		for _, at := range list {
			result := "wrong"
			if at.IsCorrect {
				result = "correct"
			}
			fmt.Fprintf(w, "%s\t#%d\t%s\t%s\t%d\t%ds\n",
				at.CreatedAt.Local().Format("2006-01-02 15:04"), at.QuestionID, at.Answer, result, at.Score, at.TimeTaken)
		}
	})
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
