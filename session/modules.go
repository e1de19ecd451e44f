package session

import (
	"context"

	"abhyaasi/api"
	"abhyaasi/models"
)

// Module returns module detail from the per-session cache, fetching on
// miss. Submissions invalidate the entry, so a hit is always consistent
// with what this client knows.
func (s *Session) Module(ctx context.Context, id string) (*models.Module, error) {
	s.mu.Lock()
	if mod, ok := s.modules[id]; ok {
		s.mu.Unlock()
		return mod, nil
	}
	s.mu.Unlock()

	if !s.api.HasToken() {
		return nil, api.ErrNotAuthenticated
	}
	mod, err := s.api.Modules.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.modules[id] = mod
	s.mu.Unlock()
	return mod, nil
}

// InvalidateModule drops one cached module detail.
func (s *Session) InvalidateModule(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.modules, id)
}

// SubmitCode submits the coding task. On success the module's cached detail
// and the cached user are invalidated, since completion state may have
// changed on the server.
func (s *Session) SubmitCode(ctx context.Context, moduleID string, req api.SubmitCodeRequest) (*models.SubmissionResult, error) {
	res, err := s.api.Modules.SubmitCode(ctx, moduleID, req)
	if err != nil {
		return nil, err
	}
	s.InvalidateModule(moduleID)
	s.InvalidateUser()
	return res, nil
}

// SubmitMCQ submits MCQ answers for server-side scoring, with the same
// invalidation as SubmitCode.
func (s *Session) SubmitMCQ(ctx context.Context, moduleID string, answers []models.MCQAnswer) (*models.SubmissionResult, error) {
	res, err := s.api.Modules.SubmitMCQ(ctx, moduleID, answers)
	if err != nil {
		return nil, err
	}
	s.InvalidateModule(moduleID)
	s.InvalidateUser()
	return res, nil
}
