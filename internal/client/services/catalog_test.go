package services

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/Sinduaditya/fisikaap-sub000/internal/client/client"
	"github.com/Sinduaditya/fisikaap-sub000/internal/client/models"
	"github.com/Sinduaditya/fisikaap-sub000/internal/client/repositories/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// fakeClient implements client.Client; methods not overridden panic on the
// embedded nil interface.
type fakeClient struct {
	client.Client

	topicsEnv *client.Envelope[[]models.Topic]
	topicsErr error

	submitReq models.SubmitAnswerRequest
	submitEnv *client.Envelope[models.SubmitResult]

	progressEnv *client.Envelope[[]models.TopicProgress]
	progressErr error
}

func (f *fakeClient) Topics(context.Context) (*client.Envelope[[]models.Topic], error) {
	return f.topicsEnv, f.topicsErr
}

func (f *fakeClient) SubmitAnswer(_ context.Context, _ int64, req models.SubmitAnswerRequest) (*client.Envelope[models.SubmitResult], error) {
	f.submitReq = req
	return f.submitEnv, nil
}

func (f *fakeClient) UserProgress(context.Context) (*client.Envelope[[]models.TopicProgress], error) {
	return f.progressEnv, f.progressErr
}

func newCacheRepo(t *testing.T) cache.Repository {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE cached_responses (key TEXT PRIMARY KEY, payload BLOB NOT NULL, fetched_at INTEGER NOT NULL)`)
	require.NoError(t, err)
	return cache.NewSQLiteRepository(db)
}

var topics = []models.Topic{
	{ID: 1, Slug: "kinematics", Title: "Kinematics", QuestionCount: 12, HasSimulation: true},
	{ID: 2, Slug: "dynamics", Title: "Dynamics", QuestionCount: 8},
}

func offline() error {
	return &client.NetworkError{Method: http.MethodGet, Endpoint: "/topics", Err: errors.New("connection refused")}
}

func TestCatalog_OnlineCachesAndReturnsFresh(t *testing.T) {
	fc := &fakeClient{topicsEnv: &client.Envelope[[]models.Topic]{Status: client.StatusSuccess, Data: topics}}
	repo := newCacheRepo(t)
	svc := NewCatalogService(fc, repo, nil)
	fetched := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fetched }

	res, err := svc.Topics(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Degraded)
	assert.Equal(t, topics, res.Data)

	hit, err := repo.Get(context.Background(), "/topics")
	require.NoError(t, err)
	assert.True(t, fetched.Equal(hit.FetchedAt))
}

func TestCatalog_OfflineServesCachedCopy(t *testing.T) {
	fc := &fakeClient{topicsEnv: &client.Envelope[[]models.Topic]{Status: client.StatusSuccess, Data: topics}}
	repo := newCacheRepo(t)
	svc := NewCatalogService(fc, repo, nil)
	fetched := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fetched }

	_, err := svc.Topics(context.Background())
	require.NoError(t, err)

	fc.topicsEnv, fc.topicsErr = nil, offline()
	res, err := svc.Topics(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Degraded)
	assert.Equal(t, topics, res.Data)
	assert.True(t, fetched.Equal(res.FetchedAt))
}

func TestCatalog_OfflineWithoutCache(t *testing.T) {
	fc := &fakeClient{topicsErr: offline()}
	svc := NewCatalogService(fc, newCacheRepo(t), nil)

	_, err := svc.Topics(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrLocalDataNotAvailable)
	assert.True(t, client.IsNetworkError(err))
}

func TestCatalog_DoesNotMaskOtherFailures(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(t *testing.T, err error)
	}{
		{name: "session expired", err: &client.SessionExpiredError{SessionExpired: true}, check: func(t *testing.T, err error) {
			assert.True(t, client.IsSessionExpired(err))
		}},
		{name: "http error", err: &client.HTTPError{StatusCode: http.StatusInternalServerError, Message: "boom"}, check: func(t *testing.T, err error) {
			var he *client.HTTPError
			assert.ErrorAs(t, err, &he)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newCacheRepo(t)
			require.NoError(t, repo.Put(context.Background(), "/topics", []byte(`[]`), time.Now()))

			svc := NewCatalogService(&fakeClient{topicsErr: tt.err}, repo, nil)
			_, err := svc.Topics(context.Background())
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestCatalog_EnvelopeErrorIsRejected(t *testing.T) {
	fc := &fakeClient{topicsEnv: &client.Envelope[[]models.Topic]{Status: client.StatusError, Message: "maintenance"}}
	svc := NewCatalogService(fc, newCacheRepo(t), nil)

	_, err := svc.Topics(context.Background())
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "maintenance")
}

func TestCatalog_CorruptCacheIsDropped(t *testing.T) {
	repo := newCacheRepo(t)
	require.NoError(t, repo.Put(context.Background(), "/topics", []byte(`{"not":"a list"}`), time.Now()))
	svc := NewCatalogService(&fakeClient{topicsErr: offline()}, repo, nil)

	_, err := svc.Topics(context.Background())
	assert.ErrorIs(t, err, client.ErrLocalDataNotAvailable)

	_, err = repo.Get(context.Background(), "/topics")
	assert.Error(t, err)
}

func TestCatalog_SubmitAnswerRoundsTimeTaken(t *testing.T) {
	fc := &fakeClient{submitEnv: &client.Envelope[models.SubmitResult]{
		Status: client.StatusSuccess,
		Data:   models.SubmitResult{IsCorrect: true, Score: 100, XPEarned: 20},
	}}
	svc := NewCatalogService(fc, newCacheRepo(t), nil)

	res, err := svc.SubmitAnswer(context.Background(), 5, "9.8", 12600*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)
	assert.Equal(t, 20, res.XPEarned)
	assert.Equal(t, models.SubmitAnswerRequest{Answer: "9.8", TimeTaken: 13}, fc.submitReq)
}

func TestCatalog_UserScopedReadsAreNotCached(t *testing.T) {
	fc := &fakeClient{progressErr: offline()}
	repo := newCacheRepo(t)
	svc := NewCatalogService(fc, repo, nil)

	_, err := svc.UserProgress(context.Background())
	require.Error(t, err)
	assert.True(t, client.IsNetworkError(err))
	assert.NotErrorIs(t, err, client.ErrLocalDataNotAvailable)
}

func TestCatalog_Forget(t *testing.T) {
	repo := newCacheRepo(t)
	require.NoError(t, repo.Put(context.Background(), "/topics", []byte(`[]`), time.Now()))
	svc := NewCatalogService(&fakeClient{}, repo, nil)

	require.NoError(t, svc.Forget(context.Background()))
	_, err := repo.Get(context.Background(), "/topics")
	assert.Error(t, err)
}
