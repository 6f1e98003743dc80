package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Sinduaditya/fisikaap-sub000/internal/common"
	"github.com/Sinduaditya/fisikaap-sub000/internal/dbx"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/models"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/repositories/attempts"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/repositories/catalog"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/repositories/gamification"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/repositories/revokedtokens"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// record appends call to journal when a test asked for call ordering.
func record(journal *[]string, call string) {
	if journal != nil {
		*journal = append(*journal, call)
	}
}

// --- users ---

type fakeUsersRepo struct {
	journal   *[]string
	byID      map[int64]*models.User
	nextID    int64
	createErr error
	getErr    error
	updated   []models.User
}

func newFakeUsersRepo(us ...*models.User) *fakeUsersRepo {
	f := &fakeUsersRepo{byID: map[int64]*models.User{}, nextID: 1}
	for _, u := range us {
		f.byID[u.ID] = u
		if u.ID >= f.nextID {
			f.nextID = u.ID + 1
		}
	}
	return f
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	c := *u
	c.ID = f.nextID
	c.Level = 1
	f.nextID++
	f.byID[c.ID] = &c
	return &c, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsersRepo) LockByID(ctx context.Context, id int64) (*models.User, error) {
	record(f.journal, "lock user")
	return f.GetByID(ctx, id)
}

func (f *fakeUsersRepo) UpdateProgress(_ context.Context, u *models.User) error {
	if _, ok := f.byID[u.ID]; !ok {
		return common.ErrorNotFound
	}
	c := *u
	f.byID[u.ID] = &c
	f.updated = append(f.updated, c)
	return nil
}

// --- revoked tokens ---

type fakeRevokedRepo struct {
	revoked  map[string]time.Time
	err      error
	purgedAt time.Time
}

func newFakeRevokedRepo() *fakeRevokedRepo {
	return &fakeRevokedRepo{revoked: map[string]time.Time{}}
}

func (f *fakeRevokedRepo) Revoke(_ context.Context, jti string, _ int64, expiresAt time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.revoked[jti] = expiresAt
	return nil
}

func (f *fakeRevokedRepo) IsRevoked(_ context.Context, jti string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.revoked[jti]
	return ok, nil
}

func (f *fakeRevokedRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.purgedAt = now
	var n int64
	for jti, exp := range f.revoked {
		if !exp.After(now) {
			delete(f.revoked, jti)
			n++
		}
	}
	return n, nil
}

// --- catalog ---

type fakeCatalogRepo struct {
	topics    []models.Topic
	questions []models.Question
	next      map[int64]int64 // topic id -> question id
	lastUser  int64
}

func (f *fakeCatalogRepo) ListTopics(_ context.Context, simulationOnly bool) ([]models.Topic, error) {
	var out []models.Topic
	for _, t := range f.topics {
		if simulationOnly && !t.HasSimulation {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeCatalogRepo) GetTopic(_ context.Context, slug string) (*models.Topic, error) {
	for _, t := range f.topics {
		if t.Slug == slug {
			c := t
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeCatalogRepo) ListQuestions(_ context.Context, topicID int64) ([]models.Question, error) {
	var out []models.Question
	for _, q := range f.questions {
		if q.TopicID == topicID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) GetQuestion(_ context.Context, id int64) (*models.Question, error) {
	for _, q := range f.questions {
		if q.ID == id {
			c := q
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeCatalogRepo) NextSimulationQuestion(ctx context.Context, topicID, userID int64) (*models.Question, error) {
	f.lastUser = userID
	id, ok := f.next[topicID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return f.GetQuestion(ctx, id)
}

// --- attempts ---

type fakeAttemptsRepo struct {
	journal  *[]string
	created  []models.Attempt
	progress []models.TopicProgress
	limit    int
}

func (f *fakeAttemptsRepo) Create(_ context.Context, a *models.Attempt) error {
	record(f.journal, "create attempt")
	a.CreatedAt = time.Now()
	f.created = append(f.created, *a)
	return nil
}

func (f *fakeAttemptsRepo) ListByUser(_ context.Context, userID int64, limit int) ([]models.Attempt, error) {
	f.limit = limit
	var out []models.Attempt
	for i := len(f.created) - 1; i >= 0; i-- {
		if f.created[i].UserID == userID {
			out = append(out, f.created[i])
		}
	}
	return out, nil
}

func (f *fakeAttemptsRepo) HasCorrect(_ context.Context, userID, questionID int64) (bool, error) {
	record(f.journal, "has correct")
	for _, a := range f.created {
		if a.UserID == userID && a.QuestionID == questionID && a.IsCorrect {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttemptsRepo) CountCorrect(_ context.Context, userID int64) (int, error) {
	seen := map[int64]bool{}
	for _, a := range f.created {
		if a.UserID == userID && a.IsCorrect {
			seen[a.QuestionID] = true
		}
	}
	return len(seen), nil
}

func (f *fakeAttemptsRepo) Progress(context.Context, int64) ([]models.TopicProgress, error) {
	return f.progress, nil
}

// --- gamification ---

type fakeGamificationRepo struct {
	achievements []models.Achievement
	unlocked     map[int64]bool
	challenges   []models.Challenge
	from         time.Time
	limit        int
}

func (f *fakeGamificationRepo) ListAchievements(context.Context) ([]models.Achievement, error) {
	return append([]models.Achievement(nil), f.achievements...), nil
}

func (f *fakeGamificationRepo) ListForUser(context.Context, int64) ([]models.Achievement, error) {
	out := append([]models.Achievement(nil), f.achievements...)
	for i := range out {
		out[i].Unlocked = f.unlocked[out[i].ID]
	}
	return out, nil
}

func (f *fakeGamificationRepo) Unlock(_ context.Context, _ int64, achievementID int64) (bool, error) {
	if f.unlocked == nil {
		f.unlocked = map[int64]bool{}
	}
	if f.unlocked[achievementID] {
		return false, nil
	}
	f.unlocked[achievementID] = true
	return true, nil
}

func (f *fakeGamificationRepo) ListChallenges(_ context.Context, from time.Time, limit int) ([]models.Challenge, error) {
	f.from, f.limit = from, limit
	return f.challenges, nil
}

func (f *fakeGamificationRepo) ChallengeOn(_ context.Context, day time.Time) (*models.Challenge, error) {
	for _, c := range f.challenges {
		if c.ActiveOn.Equal(day) {
			cc := c
			return &cc, nil
		}
	}
	return nil, common.ErrorNotFound
}

// --- manager ---

type fakeRepoManager struct {
	users        *fakeUsersRepo
	revoked      *fakeRevokedRepo
	catalog      *fakeCatalogRepo
	attempts     *fakeAttemptsRepo
	gamification *fakeGamificationRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:        newFakeUsersRepo(),
		revoked:      newFakeRevokedRepo(),
		catalog:      &fakeCatalogRepo{},
		attempts:     &fakeAttemptsRepo{},
		gamification: &fakeGamificationRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.users }
func (m *fakeRepoManager) RevokedTokens(dbx.DBTX) revokedtokens.Repository { return m.revoked }
func (m *fakeRepoManager) Catalog(dbx.DBTX) catalog.Repository             { return m.catalog }
func (m *fakeRepoManager) Attempts(dbx.DBTX) attempts.Repository           { return m.attempts }
func (m *fakeRepoManager) Gamification(dbx.DBTX) gamification.Repository   { return m.gamification }
