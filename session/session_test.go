package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abhyaasi/api"
	"abhyaasi/apitest"
	"abhyaasi/models"
	"abhyaasi/store"
)

func newSession(t *testing.T, srv *apitest.Server) (*Session, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	client := api.New(srv.URL, 5*time.Second, st)
	sess := New(st, client, Options{
		Staleness:  time.Minute,
		RetryCount: 0,
		RetryDelay: time.Millisecond,
	})
	return sess, st
}

func TestNoTokenNoCatalogFetch(t *testing.T) {
	srv := apitest.New(t)
	sess, _ := newSession(t, srv)

	_, err := sess.Courses(context.Background())
	assert.ErrorIs(t, err, api.ErrNotAuthenticated)
	_, err = sess.Professions(context.Background())
	assert.ErrorIs(t, err, api.ErrNotAuthenticated)
	_, err = sess.CurrentUser(context.Background())
	assert.ErrorIs(t, err, api.ErrNotAuthenticated)

	assert.Equal(t, 0, srv.Calls("GET /api/courses"))
	assert.Equal(t, 0, srv.Calls("GET /api/professions"))
	assert.Equal(t, 0, srv.Calls("GET /api/users/profile"))
}

func TestCoursesServedFromCache(t *testing.T) {
	srv := apitest.New(t)
	srv.Courses = []models.Course{{ID: "c1", Title: "Go Basics"}}
	sess, st := newSession(t, srv)
	require.NoError(t, st.Set(store.KeyAuthToken, srv.Token))

	ctx := context.Background()
	first, err := sess.Courses(ctx)
	require.NoError(t, err)
	second, err := sess.Courses(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, srv.Calls("GET /api/courses"), "second read must hit the cache")
}

func TestStartDeliversActivityPing(t *testing.T) {
	srv := apitest.New(t)
	sess, st := newSession(t, srv)
	require.NoError(t, st.Set(store.KeyAuthToken, srv.Token))

	sess.Start(context.Background())
	sess.Wait(5 * time.Second)
	assert.Equal(t, 1, srv.Calls("POST /api/users/activity"),
		"the activity ping must complete before the process may exit")
}

func TestStartWithoutTokenSkipsActivity(t *testing.T) {
	srv := apitest.New(t)
	sess, _ := newSession(t, srv)

	sess.Start(context.Background())
	sess.Wait(time.Second)
	assert.Equal(t, 0, srv.Calls("POST /api/users/activity"))
}

func TestTokenChangeInvalidatesCaches(t *testing.T) {
	srv := apitest.New(t)
	srv.Courses = []models.Course{{ID: "c1"}}
	sess, st := newSession(t, srv)
	sess.Start(context.Background())
	require.NoError(t, st.Set(store.KeyAuthToken, srv.Token))

	ctx := context.Background()
	_, err := sess.Courses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, srv.Calls("GET /api/courses"))

	// A login/logout writes the token key, which must drop the caches.
	require.NoError(t, st.Set(store.KeyAuthToken, srv.Token))
	_, err = sess.Courses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, srv.Calls("GET /api/courses"))
}

func TestEnrollmentToggleInverts(t *testing.T) {
	srv := apitest.New(t)
	sess, st := newSession(t, srv)
	require.NoError(t, st.Set(store.KeyAuthToken, srv.Token))
	ctx := context.Background()

	enrolled, err := sess.ToggleProfessionEnrollment(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, enrolled)
	assert.Equal(t, 1, srv.Calls("POST /api/professions/p1/enroll"))
	assert.Equal(t, 0, srv.Calls("POST /api/professions/p1/unenroll"))

	enrolled, err = sess.ToggleProfessionEnrollment(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, enrolled)
	assert.Equal(t, 1, srv.Calls("POST /api/professions/p1/enroll"), "already enrolled must not enroll again")
	assert.Equal(t, 1, srv.Calls("POST /api/professions/p1/unenroll"))
}

func TestCourseToggleCallsEnrollThenUnenroll(t *testing.T) {
	srv := apitest.New(t)
	sess, st := newSession(t, srv)
	require.NoError(t, st.Set(store.KeyAuthToken, srv.Token))
	ctx := context.Background()

	_, err := sess.ToggleCourseEnrollment(ctx, "c1")
	require.NoError(t, err)
	_, err = sess.ToggleCourseEnrollment(ctx, "c1")
	require.NoError(t, err)

	assert.Equal(t, 1, srv.Calls("POST /api/courses/c1/enroll"))
	assert.Equal(t, 1, srv.Calls("POST /api/courses/c1/unenroll"))
}

func TestModuleCacheHitAndInvalidation(t *testing.T) {
	srv := apitest.New(t)
	srv.Modules["m1"] = &models.Module{ID: "m1", Title: "Concurrency"}
	srv.CodeResult = &models.SubmissionResult{Type: "coding", Passed: true, Score: 3, MaxScore: 3}
	sess, st := newSession(t, srv)
	require.NoError(t, st.Set(store.KeyAuthToken, srv.Token))
	ctx := context.Background()

	_, err := sess.Module(ctx, "m1")
	require.NoError(t, err)
	_, err = sess.Module(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 1, srv.Calls("GET /api/modules/m1"), "second read must hit the cache")

	_, err = sess.SubmitCode(ctx, "m1", api.SubmitCodeRequest{Language: "go"})
	require.NoError(t, err)

	_, err = sess.Module(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 2, srv.Calls("GET /api/modules/m1"), "submission must invalidate the cached detail")
}

func TestCompletedCoursesJoinWithDefaults(t *testing.T) {
	srv := apitest.New(t)
	points := 30
	srv.Courses = []models.Course{{ID: "c1", Title: "Go Basics"}}
	srv.User.CompletedCourses = []models.CompletedCourse{
		{Course: models.Ref{ID: "c1"}},
		{Course: mustRef(t, `{"_id":"c2","title":"Advanced Go"}`), Points: &points},
	}
	sess, st := newSession(t, srv)
	require.NoError(t, st.Set(store.KeyAuthToken, srv.Token))

	views, err := sess.CompletedCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "Go Basics", views[0].Course.Title, "unpopulated ref joins against the catalog")
	assert.Equal(t, DefaultCoursePoints, views[0].Points, "missing points fall back to the default")
	assert.Equal(t, "Advanced Go", views[1].Course.Title, "populated ref decodes in place")
	assert.Equal(t, 30, views[1].Points)
}

func TestLogoutClearsCredentials(t *testing.T) {
	srv := apitest.New(t)
	sess, st := newSession(t, srv)
	require.NoError(t, st.Set(store.KeyAuthToken, srv.Token))
	require.NoError(t, st.Set(store.KeyUser, `{"_id":"u1"}`))

	require.NoError(t, sess.Logout())
	_, ok := st.Get(store.KeyAuthToken)
	assert.False(t, ok)
	_, ok = st.Get(store.KeyUser)
	assert.False(t, ok)
}

func mustRef(t *testing.T, raw string) models.Ref {
	t.Helper()
	var ref models.Ref
	require.NoError(t, ref.UnmarshalJSON([]byte(raw)))
	return ref
}
