package session

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"abhyaasi/api"
	"abhyaasi/models"
	"abhyaasi/store"
	"abhyaasi/utils"
)

// Options tunes the cache staleness window and the single retry policy
// applied to the three core reads. Writes are never retried.
type Options struct {
	Staleness  time.Duration
	RetryCount int
	RetryDelay time.Duration
}

func (o Options) withDefaults() Options {
	if o.Staleness <= 0 {
		o.Staleness = time.Minute
	}
	if o.RetryCount < 0 {
		o.RetryCount = 0
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = 500 * time.Millisecond
	}
	return o
}

type cached[T any] struct {
	val       T
	fetchedAt time.Time
	ok        bool
}

func (c *cached[T]) fresh(staleness time.Duration) bool {
	return c.ok && time.Since(c.fetchedAt) < staleness
}

func (c *cached[T]) set(val T) {
	c.val = val
	c.fetchedAt = time.Now()
	c.ok = true
}

func (c *cached[T]) invalidate() {
	var zero T
	c.val = zero
	c.ok = false
}

// Session is the application context: the current user, catalogs and module
// details, cached with a staleness window, plus the mutations that go with
// them. A token change in the store (login/logout) invalidates everything.
type Session struct {
	st   *store.Store
	api  *api.Client
	opts Options

	activityDone chan struct{}

	mu          sync.Mutex
	user        cached[*models.User]
	courses     cached[[]models.Course]
	professions cached[[]models.Profession]
	modules     map[string]*models.Module
}

func New(st *store.Store, client *api.Client, opts Options) *Session {
	return &Session{
		st:      st,
		api:     client,
		opts:    opts.withDefaults(),
		modules: make(map[string]*models.Module),
	}
}

// Start subscribes to store changes and records activity once, best effort.
// The activity call runs in the background; callers that exit right after
// their command must Wait for it, or a short-lived process kills the request
// before it leaves the socket.
func (s *Session) Start(ctx context.Context) {
	s.st.Subscribe(func(key string) {
		if key == store.KeyAuthToken {
			s.InvalidateAll()
		}
	})
	done := make(chan struct{})
	s.activityDone = done
	if !s.api.HasToken() {
		close(done)
		return
	}
	go func() {
		defer close(done)
		if err := s.api.Users.TrackActivity(ctx); err != nil {
			log.Printf("activity tracking failed: %v", err)
		}
	}()
}

// Wait blocks until Start's background work has finished, up to timeout.
func (s *Session) Wait(timeout time.Duration) {
	if s.activityDone == nil {
		return
	}
	select {
	case <-s.activityDone:
	case <-time.After(timeout):
	}
}

// CurrentUser returns the cached user, fetching when stale. Without a
// stored token it fails with api.ErrNotAuthenticated and no request fires.
func (s *Session) CurrentUser(ctx context.Context) (*models.User, error) {
	s.mu.Lock()
	if s.user.fresh(s.opts.Staleness) {
		usr := s.user.val
		s.mu.Unlock()
		return usr, nil
	}
	s.mu.Unlock()
	return s.RefreshUser(ctx)
}

// RefreshUser force-fetches the user and updates the cache and the stored
// user blob.
func (s *Session) RefreshUser(ctx context.Context) (*models.User, error) {
	if !s.api.HasToken() {
		return nil, api.ErrNotAuthenticated
	}
	var usr *models.User
	err := utils.Retry(ctx, s.opts.RetryCount, s.opts.RetryDelay, func() error {
		var err error
		usr, err = s.api.Users.Profile(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.user.set(usr)
	s.mu.Unlock()
	if blob, err := json.Marshal(usr); err == nil {
		_ = s.st.Set(store.KeyUser, string(blob))
	}
	return usr, nil
}

// Courses returns the course catalog, cached.
func (s *Session) Courses(ctx context.Context) ([]models.Course, error) {
	s.mu.Lock()
	if s.courses.fresh(s.opts.Staleness) {
		list := s.courses.val
		s.mu.Unlock()
		return list, nil
	}
	s.mu.Unlock()

	if !s.api.HasToken() {
		return nil, api.ErrNotAuthenticated
	}
	var list []models.Course
	err := utils.Retry(ctx, s.opts.RetryCount, s.opts.RetryDelay, func() error {
		var err error
		list, err = s.api.Courses.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.courses.set(list)
	s.mu.Unlock()
	return list, nil
}

// Professions returns the profession catalog, cached.
func (s *Session) Professions(ctx context.Context) ([]models.Profession, error) {
	s.mu.Lock()
	if s.professions.fresh(s.opts.Staleness) {
		list := s.professions.val
		s.mu.Unlock()
		return list, nil
	}
	s.mu.Unlock()

	if !s.api.HasToken() {
		return nil, api.ErrNotAuthenticated
	}
	var list []models.Profession
	err := utils.Retry(ctx, s.opts.RetryCount, s.opts.RetryDelay, func() error {
		var err error
		list, err = s.api.Professions.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.professions.set(list)
	s.mu.Unlock()
	return list, nil
}

// InvalidateAll drops every cached query and module detail.
func (s *Session) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user.invalidate()
	s.courses.invalidate()
	s.professions.invalidate()
	s.modules = make(map[string]*models.Module)
}

// InvalidateUser drops only the cached user.
func (s *Session) InvalidateUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user.invalidate()
}

// Logout deletes the stored credentials. The store notification invalidates
// the caches.
func (s *Session) Logout() error {
	if err := s.st.Delete(store.KeyAuthToken); err != nil {
		return err
	}
	return s.st.Delete(store.KeyUser)
}

// SaveLogin persists a login result.
func (s *Session) SaveLogin(res *api.LoginResponse) error {
	if blob, err := json.Marshal(res.User); err == nil {
		_ = s.st.Set(store.KeyUser, string(blob))
	}
	return s.st.Set(store.KeyAuthToken, res.Token)
}
