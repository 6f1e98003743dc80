package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sinduaditya/fisikaap-sub000/internal/common"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/models"
)

func newCatalogFixture(t *testing.T) (*CatalogService, *fakeRepoManager) {
	t.Helper()
	rm := newFakeRepoManager()
	rm.catalog = &fakeCatalogRepo{
		topics: []models.Topic{
			{ID: 1, Slug: "kinematics", Title: "Kinematics", HasSimulation: true},
			{ID: 2, Slug: "optics", Title: "Optics"},
		},
		questions: []models.Question{
			{ID: 10, TopicID: 1, Text: "v?", Answer: "10"},
			{ID: 11, TopicID: 1, Text: "drop", Answer: "19.6", IsSimulation: true,
				Parameters: map[string]float64{"t": 2, "g": 9.8}, Unit: "m"},
			{ID: 20, TopicID: 2, Text: "bend?", Answer: "toward"},
		},
		next: map[int64]int64{1: 11},
	}

	db, _ := newSQLMockDB(t)
	return NewCatalogService(db, rm), rm
}

func TestCatalog_Topics(t *testing.T) {
	s, _ := newCatalogFixture(t)
	ctx := context.Background()

	all, err := s.Topics(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	sim, err := s.SimulationTopics(ctx)
	require.NoError(t, err)
	require.Len(t, sim, 1)
	assert.Equal(t, "kinematics", sim[0].Slug)

	topic, err := s.Topic(ctx, "optics")
	require.NoError(t, err)
	assert.Equal(t, "Optics", topic.Title)

	_, err = s.Topic(ctx, "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCatalog_TopicQuestions(t *testing.T) {
	s, _ := newCatalogFixture(t)

	qs, err := s.TopicQuestions(context.Background(), "kinematics")
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, int64(10), qs[0].ID)

	_, err = s.TopicQuestions(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCatalog_SimulationQuestion(t *testing.T) {
	s, rm := newCatalogFixture(t)

	q, err := s.SimulationQuestion(context.Background(), "kinematics", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(11), q.ID)
	assert.Equal(t, "kinematics", q.TopicSlug)
	assert.Equal(t, "m", q.Unit)
	assert.Equal(t, 9.8, q.Parameters["g"])
	assert.Equal(t, int64(5), rm.catalog.lastUser)

	_, err = s.SimulationQuestion(context.Background(), "optics", 5)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCatalog_Challenges(t *testing.T) {
	s, rm := newCatalogFixture(t)
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	rm.gamification.challenges = []models.Challenge{
		{ID: 1, Title: "yesterday", ActiveOn: day.AddDate(0, 0, -1)},
		{ID: 2, Title: "today", ActiveOn: day},
	}
	// 23:30 in UTC-5 is already the next UTC day.
	s.now = fixedClock(time.Date(2025, 2, 28, 23, 30, 0, 0, time.FixedZone("EST", -5*3600)))

	c, err := s.DailyChallenge(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "today", c.Title)

	_, err = s.Challenges(context.Background())
	require.NoError(t, err)
	assert.Equal(t, day, rm.gamification.from)
	assert.Equal(t, upcomingChallenges, rm.gamification.limit)

	s.now = fixedClock(day.AddDate(0, 0, 5))
	_, err = s.DailyChallenge(context.Background())
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCatalog_Achievements(t *testing.T) {
	s, rm := newCatalogFixture(t)
	rm.gamification.achievements = []models.Achievement{{ID: 1, Code: "first_correct"}}

	list, err := s.Achievements(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Unlocked)
}
