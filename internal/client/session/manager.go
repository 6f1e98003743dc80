// Package session owns the process-wide authentication state of the client.
//
// The Manager moves between three states (see Status): Uninitialized until
// the first Bootstrap finishes, then Unauthenticated or Authenticated. Every
// transition that establishes or tears down a session writes the durable
// credential store first and only then commits the in-memory state, so the
// store never lags behind what the Manager reports.
//
// Results of asynchronous work are committed only if
//   - the liveness context given to NewManager is not done, and
//   - no later Login, Register or Logout has superseded the flow.
//
// Anything else is dropped silently.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Sinduaditya/fisikaap-sub000/internal/client/client"
	"github.com/Sinduaditya/fisikaap-sub000/internal/client/models"
	"github.com/Sinduaditya/fisikaap-sub000/internal/logging"
	"github.com/google/go-cmp/cmp"
)

// ErrSuperseded is returned by Login and Register when a Logout (or another
// login) started while the call was in flight.
var ErrSuperseded = errors.New("session: superseded by a newer operation")

// ErrNotAuthenticated is returned by Refresh when there is no session.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// AuthAPI is the part of the API client the Manager drives.
type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*client.Envelope[models.AuthPayload], error)
	Register(ctx context.Context, req models.RegisterRequest) (*client.Envelope[models.AuthPayload], error)
	Profile(ctx context.Context) (*client.Envelope[models.ProfilePayload], error)
	Logout(ctx context.Context) (*client.Envelope[json.RawMessage], error)
}

// CredentialStore is the durable half of the session; credentials.Store
// implements it.
type CredentialStore interface {
	Save(ctx context.Context, token string, user models.User) error
	Token(ctx context.Context) (string, error)
	CachedUser(ctx context.Context) (*models.User, error)
	UpdateUser(ctx context.Context, user models.User) error
	Purge(ctx context.Context) error
	Clear(ctx context.Context) error
}

type Manager struct {
	alive    context.Context
	api      AuthAPI
	store    CredentialStore
	logger   logging.Logger
	cooldown time.Duration
	now      func() time.Time

	mu            sync.Mutex
	state         State
	gen           uint64
	lastBootstrap time.Time
	observers     map[int]func(State)
	nextObserver  int

	// writeMu serialises "durable write then commit" sections so a purge
	// can never be overtaken by a concurrent save.
	writeMu sync.Mutex
	// notifyMu keeps observer deliveries in commit order.
	notifyMu sync.Mutex

	bootstrapping atomic.Bool
	wg            sync.WaitGroup
}

// NewManager creates a Manager in the Uninitialized state. alive is the
// lifetime of whoever owns the Manager; once it is done, pending results
// are discarded.
func NewManager(alive context.Context, api AuthAPI, store CredentialStore, opts ...Option) *Manager {
	m := &Manager{
		alive:     alive,
		api:       api,
		store:     store,
		logger:    logging.Nop(),
		cooldown:  DefaultBootstrapCooldown,
		now:       time.Now,
		state:     State{Loading: true},
		observers: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

func (m *Manager) IsAuthenticated() bool {
	return m.State().IsAuthenticated()
}

// Subscribe registers fn to receive a snapshot after every committed
// mutation. fn runs on the mutating goroutine and must not call Login,
// Register, Logout, Refresh or Bootstrap synchronously.
func (m *Manager) Subscribe(fn func(State)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextObserver
	m.nextObserver++
	m.observers[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.observers, id)
		m.mu.Unlock()
	}
}

// Wait blocks until background work started by Bootstrap and Logout has
// finished.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// begin starts a flow that supersedes every flow started before it.
func (m *Manager) begin() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	return m.gen
}

func (m *Manager) generation() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen
}

func (m *Manager) current(gen uint64) bool {
	return m.generation() == gen
}

// commit applies fn to the state if the owner is alive and gen is still
// current, then notifies observers.
func (m *Manager) commit(gen uint64, fn func(*State)) bool {
	return m.apply(func() bool { return gen == m.gen }, fn)
}

// apply runs fn under mu when the owner is alive and valid reports true.
// valid is called with mu held.
func (m *Manager) apply(valid func() bool, fn func(*State)) bool {
	m.mu.Lock()
	if m.alive.Err() != nil || !valid() {
		m.mu.Unlock()
		return false
	}
	fn(&m.state)
	snapshot := m.state.clone()
	observers := make([]func(State), 0, len(m.observers))
	for _, o := range m.observers {
		observers = append(observers, o)
	}
	m.notifyMu.Lock()
	m.mu.Unlock()

	defer m.notifyMu.Unlock()
	for _, o := range observers {
		o(snapshot.clone())
	}
	return true
}

func (m *Manager) commitUnauthenticated(gen uint64) bool {
	return m.commit(gen, func(s *State) {
		s.User = nil
		s.Loading = false
		s.Initialized = true
	})
}

func (m *Manager) commitUser(gen uint64, u models.User) bool {
	return m.commit(gen, func(s *State) {
		s.User = &u
		s.Loading = false
		s.Initialized = true
	})
}

// purgeLocal removes the session keys, wiping the whole store if that
// fails. Errors are logged only: local logout cannot fail.
func (m *Manager) purgeLocal(ctx context.Context) {
	err := m.store.Purge(ctx)
	if err == nil {
		return
	}
	m.logger.Error(ctx, "purging session keys failed, clearing local store", "error", err)
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Error(ctx, "clearing local store failed", "error", err)
	}
}

// Bootstrap rebuilds the session from durable storage. Overlapping calls,
// and calls within the cooldown of the previous run's start, return nil
// without doing anything.
//
// With a token and a cached identity it commits Authenticated immediately
// and refreshes the identity in the background (see Wait). With a token
// but no cached identity it fetches the profile before returning; any
// failure then leaves the session Unauthenticated with storage cleared.
func (m *Manager) Bootstrap(ctx context.Context) error {
	if !m.bootstrapping.CompareAndSwap(false, true) {
		return nil
	}

	m.mu.Lock()
	now := m.now()
	if !m.lastBootstrap.IsZero() && now.Sub(m.lastBootstrap) < m.cooldown {
		m.mu.Unlock()
		m.bootstrapping.Store(false)
		return nil
	}
	m.lastBootstrap = now
	gen := m.gen
	m.mu.Unlock()

	background := false
	defer func() {
		if !background {
			m.bootstrapping.Store(false)
		}
	}()

	m.commit(gen, func(s *State) { s.Loading = true })

	token, err := m.store.Token(ctx)
	if err != nil {
		m.commitUnauthenticated(gen)
		return fmt.Errorf("bootstrap: read token: %w", err)
	}
	if token == "" {
		m.commitUnauthenticated(gen)
		return nil
	}

	cached, err := m.store.CachedUser(ctx)
	if err != nil {
		m.logger.Warn(ctx, "reading cached identity failed", "error", err)
		cached = nil
	}

	if cached != nil {
		m.commitUser(gen, *cached)

		background = true
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			defer m.bootstrapping.Store(false)
			m.refreshCached(context.WithoutCancel(ctx), gen, *cached)
		}()
		return nil
	}

	return m.bootstrapWithoutCache(ctx, gen, token)
}

func (m *Manager) bootstrapWithoutCache(ctx context.Context, gen uint64, token string) error {
	env, err := m.api.Profile(ctx)
	if err == nil && !env.OK() {
		err = fmt.Errorf("profile rejected: %s", env.FailureMessage())
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if !m.current(gen) {
		return nil
	}

	if err == nil {
		if err = m.store.Save(ctx, token, env.Data.User); err == nil {
			m.commitUser(gen, env.Data.User)
			return nil
		}
	}

	m.logger.Info(ctx, "no cached identity and profile fetch failed, signing out", "error", err)
	m.purgeLocal(ctx)
	m.commitUnauthenticated(gen)
	return fmt.Errorf("bootstrap: %w", err)
}

// refreshCached is the background half of Bootstrap. Failures other than
// session expiry keep the cached identity.
func (m *Manager) refreshCached(ctx context.Context, gen uint64, cached models.User) {
	env, err := m.api.Profile(ctx)
	switch {
	case client.IsSessionExpired(err):
		m.expire(ctx, gen)
		return
	case err != nil:
		m.logger.Info(ctx, "background profile refresh failed, keeping cached identity", "error", err)
		return
	case !env.OK():
		m.logger.Info(ctx, "background profile refresh rejected, keeping cached identity", "message", env.FailureMessage())
		return
	}

	if err := m.applyFresh(ctx, gen, cached, env.Data.User); err != nil {
		m.logger.Warn(ctx, "persisting refreshed identity failed", "error", err)
	}
}

// applyFresh replaces the identity when fresh differs from known.
func (m *Manager) applyFresh(ctx context.Context, gen uint64, known, fresh models.User) error {
	if cmp.Equal(known, fresh) {
		return nil
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if !m.current(gen) {
		return nil
	}
	if err := m.store.UpdateUser(ctx, fresh); err != nil {
		return err
	}
	m.commit(gen, func(s *State) {
		if s.User != nil {
			s.User = &fresh
		}
	})
	return nil
}

// expire tears down a session the server no longer accepts. When a newer
// flow has taken over since gen, the expiry belongs to an older session and
// only reconcile runs.
func (m *Manager) expire(ctx context.Context, gen uint64) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if !m.current(gen) {
		m.reconcile(ctx)
		return
	}
	m.logger.Info(ctx, "session expired, signing out")
	m.purgeLocal(ctx)
	m.commitUnauthenticated(gen)
}

// reconcile drops the in-memory identity when the durable store no longer
// holds a token, whatever flow is current. The caller holds writeMu, so no
// Save can land between the read and the commit.
func (m *Manager) reconcile(ctx context.Context) {
	token, err := m.store.Token(ctx)
	if err != nil {
		m.logger.Warn(ctx, "reading token for reconciliation failed", "error", err)
		return
	}
	if token != "" {
		return
	}
	m.apply(func() bool { return m.state.User != nil }, func(s *State) {
		s.User = nil
		s.Initialized = true
	})
}

// Login authenticates with email and password. Rejections the server
// reports (wrong credentials, validation errors) come back in AuthResult;
// transport, server and storage failures come back as errors.
func (m *Manager) Login(ctx context.Context, email, password string) (AuthResult, error) {
	return m.authenticate(ctx, "login", func(ctx context.Context) (*client.Envelope[models.AuthPayload], error) {
		return m.api.Login(ctx, models.LoginRequest{Email: email, Password: password})
	})
}

// Register creates an account and signs it in.
func (m *Manager) Register(ctx context.Context, req models.RegisterRequest) (AuthResult, error) {
	return m.authenticate(ctx, "register", func(ctx context.Context) (*client.Envelope[models.AuthPayload], error) {
		return m.api.Register(ctx, req)
	})
}

func (m *Manager) authenticate(
	ctx context.Context,
	op string,
	call func(context.Context) (*client.Envelope[models.AuthPayload], error),
) (AuthResult, error) {
	gen := m.begin()
	m.commit(gen, func(s *State) { s.Loading = true })
	defer m.commit(gen, func(s *State) { s.Loading = false })

	env, err := call(ctx)
	if err != nil {
		if client.IsSessionExpired(err) {
			// The client already dropped the stored credentials.
			m.expire(ctx, gen)
		}
		if res, ok := rejection(err); ok {
			return res, nil
		}
		return AuthResult{Message: err.Error()}, fmt.Errorf("%s: %w", op, err)
	}
	if !env.OK() {
		return AuthResult{Message: env.FailureMessage(), FieldErrors: env.Errors}, nil
	}
	if env.Data.Token == "" {
		err := &client.MalformedResponseError{StatusCode: http.StatusOK, Err: errors.New("missing token")}
		return AuthResult{Message: err.Error()}, fmt.Errorf("%s: %w", op, err)
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if !m.current(gen) {
		return AuthResult{Message: ErrSuperseded.Error()}, ErrSuperseded
	}
	if err := m.store.Save(ctx, env.Data.Token, env.Data.User); err != nil {
		return AuthResult{Message: "could not save session"}, fmt.Errorf("%s: %w", op, err)
	}
	m.commitUser(gen, env.Data.User)

	return AuthResult{OK: true, Message: env.Message}, nil
}

// rejection turns an HTTP-level refusal of the credentials into an
// AuthResult.
func rejection(err error) (AuthResult, bool) {
	var se *client.SessionExpiredError
	if errors.As(err, &se) {
		msg := se.Message
		if msg == "" {
			msg = "Invalid credentials"
		}
		return AuthResult{Message: msg}, true
	}

	var he *client.HTTPError
	if errors.As(err, &he) && he.StatusCode >= 400 && he.StatusCode < 500 {
		return AuthResult{Message: he.Reason(), FieldErrors: he.Errors}, true
	}
	return AuthResult{}, false
}

// Logout ends the session locally and then tells the server in the
// background. The local part always succeeds.
func (m *Manager) Logout(ctx context.Context) {
	gen := m.begin()

	m.writeMu.Lock()
	token, err := m.store.Token(ctx)
	if err != nil {
		m.logger.Warn(ctx, "reading token before logout failed", "error", err)
	}
	m.purgeLocal(ctx)
	m.commitUnauthenticated(gen)
	m.writeMu.Unlock()

	if token == "" {
		return
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		rctx := client.WithToken(context.WithoutCancel(ctx), token)
		if _, err := m.api.Logout(rctx); err != nil {
			m.logger.Debug(rctx, "remote logout failed", "error", err)
		}
	}()
}

// Refresh re-fetches the identity. A session the server rejects is logged
// out and the SessionExpiredError returned.
func (m *Manager) Refresh(ctx context.Context) error {
	if !m.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	gen := m.generation()

	env, err := m.api.Profile(ctx)
	if err != nil {
		if client.IsSessionExpired(err) {
			m.expireRefreshed(ctx, gen)
		}
		return fmt.Errorf("refresh: %w", err)
	}
	if !env.OK() {
		return fmt.Errorf("refresh: %s", env.FailureMessage())
	}

	var known models.User
	if u := m.State().User; u != nil {
		known = *u
	}
	if err := m.applyFresh(ctx, gen, known, env.Data.User); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	return nil
}

// expireRefreshed logs out after Refresh saw a 401, unless a newer flow
// replaced the session the profile call was made for.
func (m *Manager) expireRefreshed(ctx context.Context, gen uint64) {
	if !m.current(gen) {
		m.writeMu.Lock()
		m.reconcile(ctx)
		m.writeMu.Unlock()
		return
	}
	m.Logout(ctx)
}
