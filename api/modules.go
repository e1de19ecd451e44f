package api

import (
	"context"
	"net/http"

	"abhyaasi/models"
)

type ModulesClient struct {
	c *Client
}

// Get fetches module detail including the caller's completion and cooldown
// flags.
func (m *ModulesClient) Get(ctx context.Context, id string) (*models.Module, error) {
	var out models.Module
	if err := m.c.do(ctx, http.MethodGet, "/api/modules/"+id, nil, &out, callOpts{auth: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// ModuleRequest is the payload for creating or updating a module.
type ModuleRequest struct {
	Title              string                     `json:"title"`
	Theory             string                     `json:"theoryNotes,omitempty"`
	MCQs               []models.MCQQuestion       `json:"mcqs,omitempty"`
	Coding             *models.CodingTask         `json:"codingTask,omitempty"`
	InterviewQuestions []models.InterviewQuestion `json:"interviewQuestions,omitempty"`
}

// Create adds a module. Requires an admin token.
func (m *ModulesClient) Create(ctx context.Context, req ModuleRequest) (*models.Module, error) {
	var out models.Module
	if err := m.c.do(ctx, http.MethodPost, "/api/modules", req, &out, callOpts{auth: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update edits a module. Requires an admin token.
func (m *ModulesClient) Update(ctx context.Context, id string, req ModuleRequest) (*models.Module, error) {
	var out models.Module
	if err := m.c.do(ctx, http.MethodPut, "/api/modules/"+id, req, &out, callOpts{auth: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a module. Requires an admin token.
func (m *ModulesClient) Delete(ctx context.Context, id string) error {
	return m.c.do(ctx, http.MethodDelete, "/api/modules/"+id, nil, nil, callOpts{auth: true})
}

type submitMCQRequest struct {
	Answers []models.MCQAnswer `json:"answers"`
}

// SubmitMCQ submits the selected options for server-side scoring.
func (m *ModulesClient) SubmitMCQ(ctx context.Context, id string, answers []models.MCQAnswer) (*models.SubmissionResult, error) {
	var out models.SubmissionResult
	body := submitMCQRequest{Answers: answers}
	if err := m.c.do(ctx, http.MethodPost, "/api/modules/"+id+"/submit-mcq", body, &out, callOpts{auth: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

type SubmitCodeRequest struct {
	Language string `json:"language"`
	// Files maps file path to contents.
	Files map[string]string `json:"files"`
}

// SubmitCode submits the coding task for evaluation. The reply carries
// pass/fail, per-test results and the completion cascade flags.
func (m *ModulesClient) SubmitCode(ctx context.Context, id string, req SubmitCodeRequest) (*models.SubmissionResult, error) {
	var out models.SubmissionResult
	if err := m.c.do(ctx, http.MethodPost, "/api/modules/"+id+"/submit-code", req, &out, callOpts{auth: true}); err != nil {
		return nil, err
	}
	return &out, nil
}
