package api

import (
	"context"
	"net/http"

	"abhyaasi/models"
)

type ProfessionsClient struct {
	c *Client
}

func (p *ProfessionsClient) List(ctx context.Context) ([]models.Profession, error) {
	var out []models.Profession
	if err := p.c.do(ctx, http.MethodGet, "/api/professions", nil, &out, callOpts{auth: true}); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *ProfessionsClient) GetByID(ctx context.Context, id string) (*models.Profession, error) {
	var out models.Profession
	if err := p.c.do(ctx, http.MethodGet, "/api/professions/"+id, nil, &out, callOpts{auth: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProfessionRequest is the payload for creating or updating a profession.
type ProfessionRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Duration    string   `json:"duration,omitempty"`
}

// Create adds a profession. Requires an admin token.
func (p *ProfessionsClient) Create(ctx context.Context, req ProfessionRequest) (*models.Profession, error) {
	var out models.Profession
	if err := p.c.do(ctx, http.MethodPost, "/api/professions", req, &out, callOpts{auth: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update edits a profession. Requires an admin token.
func (p *ProfessionsClient) Update(ctx context.Context, id string, req ProfessionRequest) (*models.Profession, error) {
	var out models.Profession
	if err := p.c.do(ctx, http.MethodPut, "/api/professions/"+id, req, &out, callOpts{auth: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a profession. Requires an admin token.
func (p *ProfessionsClient) Delete(ctx context.Context, id string) error {
	return p.c.do(ctx, http.MethodDelete, "/api/professions/"+id, nil, nil, callOpts{auth: true})
}

type assignCoursesRequest struct {
	Courses []models.ProfessionCourse `json:"courses"`
}

// AssignCourses replaces the profession's ordered course list. Requires an
// admin token.
func (p *ProfessionsClient) AssignCourses(ctx context.Context, id string, courses []models.ProfessionCourse) (*models.Profession, error) {
	var out models.Profession
	body := assignCoursesRequest{Courses: courses}
	if err := p.c.do(ctx, http.MethodPost, "/api/professions/"+id+"/assign-courses", body, &out, callOpts{auth: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProfessionsClient) Enroll(ctx context.Context, id string) error {
	return p.c.do(ctx, http.MethodPost, "/api/professions/"+id+"/enroll", nil, nil, callOpts{auth: true})
}

func (p *ProfessionsClient) Unenroll(ctx context.Context, id string) error {
	return p.c.do(ctx, http.MethodPost, "/api/professions/"+id+"/unenroll", nil, nil, callOpts{auth: true})
}
