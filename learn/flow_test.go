package learn

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
	"abhyaasi/session"
	"abhyaasi/store"
)

func newFlowEnv(t *testing.T, srv *apitest.Server) *session.Session {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "flow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	client := api.New(srv.URL, 5*time.Second, st)
	require.NoError(t, st.Set(store.KeyAuthToken, srv.Token))
	return session.New(st, client, session.Options{RetryDelay: time.Millisecond})
}

func baseModule() *models.Module {
	return &models.Module{
		ID:     "m1",
		Title:  "Slices and Maps",
		Theory: "A slice is a view over an array.",
		MCQs: []models.MCQQuestion{
			{ID: "q1", Question: "Cap of nil slice?", Options: []string{"0", "1", "panic"}},
		},
		Coding: models.CodingTask{
			Description:  "Reverse a slice in place.",
			Languages:    []string{"go", "python"},
			StarterFiles: map[string]string{"main.go": "package main\n"},
		},
	}
}

func TestStartFailureLeavesRetryableError(t *testing.T) {
	srv := apitest.New(t)
	sess := newFlowEnv(t, srv)

	flow := NewFlow(sess, "missing")
	err := flow.Start(context.Background())
	require.Error(t, err)
	assert.Error(t, flow.Err())
	assert.Nil(t, flow.Module())

	// The module shows up and a retry succeeds.
	srv.Modules["missing"] = baseModule()
	require.NoError(t, flow.Retry(context.Background()))
	assert.NotNil(t, flow.Module())
	assert.NoError(t, flow.Err())
}

func TestSectionsAdvanceInOrder(t *testing.T) {
	srv := apitest.New(t)
	srv.Modules["m1"] = baseModule()
	sess := newFlowEnv(t, srv)

	flow := NewFlow(sess, "m1")
	require.NoError(t, flow.Start(context.Background()))

	assert.Equal(t, SectionTheory, flow.Section())
	assert.Equal(t, SectionMCQ, flow.Next())
	assert.Equal(t, SectionCoding, flow.Next())
	assert.Equal(t, SectionInterview, flow.Next())
	assert.Equal(t, SectionInterview, flow.Next(), "interview is terminal")
}

func TestCompletedCodingRendersReadOnly(t *testing.T) {
	srv := apitest.New(t)
	mod := baseModule()
	mod.IsCodingCompleted = true
	srv.Modules["m1"] = mod
	sess := newFlowEnv(t, srv)

	flow := NewFlow(sess, "m1")
	require.NoError(t, flow.Start(context.Background()))

	state := flow.CodingSubmitState()
	assert.Equal(t, "Completed", state.Label)
	assert.False(t, state.Enabled)
	assert.True(t, flow.CodingReadOnly())

	_, err := flow.SubmitCode(context.Background(), "go", nil)
	assert.ErrorIs(t, err, ErrCodingCompleted)
	assert.Equal(t, 0, srv.Calls("POST /api/modules/m1/submit-code"))
}

func TestActiveCooldownDisablesSubmit(t *testing.T) {
	srv := apitest.New(t)
	mod := baseModule()
	mod.CodingCooldown = models.Cooldown{
		IsInCooldown:  true,
		CooldownUntil: time.Now().Add(30 * time.Second),
		AttemptNumber: 2,
	}
	srv.Modules["m1"] = mod
	sess := newFlowEnv(t, srv)

	flow := NewFlow(sess, "m1")
	require.NoError(t, flow.Start(context.Background()))

	state := flow.CodingSubmitState()
	assert.False(t, state.Enabled)
	require.NotNil(t, state.Cooldown)
	assert.Equal(t, 2, state.Cooldown.AttemptNumber)
	assert.LessOrEqual(t, NewCountdown(state.Cooldown.CooldownUntil).Remaining(), 30*time.Second)

	_, err := flow.SubmitCode(context.Background(), "go", nil)
	assert.ErrorIs(t, err, ErrCooldownActive)
	assert.Equal(t, 0, srv.Calls("POST /api/modules/m1/submit-code"))
}

func TestExpiredCooldownAllowsSubmit(t *testing.T) {
	srv := apitest.New(t)
	mod := baseModule()
	mod.CodingCooldown = models.Cooldown{
		IsInCooldown:  true,
		CooldownUntil: time.Now().Add(-time.Second),
		AttemptNumber: 1,
	}
	srv.Modules["m1"] = mod
	srv.CodeResult = &models.SubmissionResult{Type: "coding", Passed: true, Score: 2, MaxScore: 2}
	sess := newFlowEnv(t, srv)

	flow := NewFlow(sess, "m1")
	require.NoError(t, flow.Start(context.Background()))
	assert.True(t, flow.CodingSubmitState().Enabled)

	_, err := flow.SubmitCode(context.Background(), "go", map[string]string{"main.go": "x"})
	require.NoError(t, err)
}

func TestSubmitWhileInFlightRejected(t *testing.T) {
	srv := apitest.New(t)
	srv.Modules["m1"] = baseModule()
	sess := newFlowEnv(t, srv)

	flow := NewFlow(sess, "m1")
	require.NoError(t, flow.Start(context.Background()))

	flow.mu.Lock()
	flow.submitting = true
	flow.mu.Unlock()

	_, err := flow.SubmitCode(context.Background(), "go", nil)
	assert.ErrorIs(t, err, ErrSubmissionInFlight)
	assert.False(t, flow.CodingSubmitState().Enabled)
}

func TestUnsupportedLanguageRejected(t *testing.T) {
	srv := apitest.New(t)
	srv.Modules["m1"] = baseModule()
	sess := newFlowEnv(t, srv)

	flow := NewFlow(sess, "m1")
	require.NoError(t, flow.Start(context.Background()))

	_, err := flow.SubmitCode(context.Background(), "cobol", nil)
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestPassWithoutCascadeAdvancesToMCQAndRefetches(t *testing.T) {
	srv := apitest.New(t)
	srv.Modules["m1"] = baseModule()
	srv.CodeResult = &models.SubmissionResult{Type: "coding", Passed: true, Score: 2, MaxScore: 2}
	sess := newFlowEnv(t, srv)

	flow := NewFlow(sess, "m1")
	require.NoError(t, flow.Start(context.Background()))
	flow.GoTo(SectionCoding)

	outcome, err := flow.SubmitCode(context.Background(), "go", map[string]string{"main.go": "x"})
	require.NoError(t, err)
	assert.Equal(t, SectionMCQ, outcome.Next)
	assert.Equal(t, 2, srv.Calls("GET /api/modules/m1"), "pass must refetch the module detail")
}

func TestProfessionCompletionOutranksPassedFlag(t *testing.T) {
	srv := apitest.New(t)
	srv.Modules["m1"] = baseModule()
	srv.CodeResult = &models.SubmissionResult{
		Type:                  "coding",
		Passed:                false,
		IsModuleCompleted:     true,
		IsCourseCompleted:     true,
		IsProfessionCompleted: true,
	}
	sess := newFlowEnv(t, srv)

	flow := NewFlow(sess, "m1")
	require.NoError(t, flow.Start(context.Background()))

	outcome, err := flow.SubmitCode(context.Background(), "go", nil)
	require.NoError(t, err)
	assert.Equal(t, SectionInterview, outcome.Next)
	assert.Contains(t, outcome.Notice, "profession", "profession completion wins regardless of passed")
}

func TestFailedSubmissionStaysOnCodingWithCooldown(t *testing.T) {
	srv := apitest.New(t)
	srv.Modules["m1"] = baseModule()
	srv.CodeResult = &models.SubmissionResult{
		Type:   "coding",
		Passed: false,
		Score:  1, MaxScore: 3,
		TestResults: []models.TestCaseResult{
			{Input: "1 2", Expected: "3", Actual: "2", Passed: false},
		},
		Cooldown: &models.Cooldown{
			IsInCooldown:  true,
			CooldownUntil: time.Now().Add(2 * time.Minute),
			AttemptNumber: 3,
		},
	}
	sess := newFlowEnv(t, srv)

	flow := NewFlow(sess, "m1")
	require.NoError(t, flow.Start(context.Background()))
	flow.GoTo(SectionCoding)

	outcome, err := flow.SubmitCode(context.Background(), "go", nil)
	require.NoError(t, err)
	assert.Equal(t, SectionCoding, outcome.Next)
	assert.False(t, outcome.Result.Passed)

	state := flow.CodingSubmitState()
	assert.False(t, state.Enabled, "reply cooldown must lock further submissions")
	require.NotNil(t, state.Cooldown)
	assert.Equal(t, 3, state.Cooldown.AttemptNumber)
}

func TestMCQPassAdvancesToCoding(t *testing.T) {
	srv := apitest.New(t)
	srv.Modules["m1"] = baseModule()
	srv.MCQResult = &models.SubmissionResult{Type: "mcq", Passed: true, Score: 1, MaxScore: 1}
	sess := newFlowEnv(t, srv)

	flow := NewFlow(sess, "m1")
	require.NoError(t, flow.Start(context.Background()))
	flow.GoTo(SectionMCQ)

	outcome, err := flow.SubmitMCQ(context.Background(), []models.MCQAnswer{{QuestionID: "q1", Selected: 0}})
	require.NoError(t, err)
	assert.Equal(t, SectionCoding, outcome.Next)
	assert.Equal(t, 1, srv.Calls("POST /api/modules/m1/submit-mcq"))
}

func TestSubmissionErrorClassification(t *testing.T) {
	srv := apitest.New(t)
	srv.Modules["m1"] = baseModule()
	sess := newFlowEnv(t, srv)

	flow := NewFlow(sess, "m1")
	require.NoError(t, flow.Start(context.Background()))

	cases := []struct {
		status  int
		message string
		want    string
	}{
		{404, "Module not found!", "Module not found."},
		{400, "Language required!", "Language required!"},
		{500, "boom", "Something went wrong on our side. Please try again later."},
	}
	for _, tc := range cases {
		srv.SubmitCodeStatus = tc.status
		srv.SubmitCodeError = tc.message
		_, err := flow.SubmitCode(context.Background(), "go", nil)
		require.Error(t, err)
		assert.Equal(t, tc.want, ErrorMessage(err))
	}
}
