package api

import (
	"context"
	"net/http"

	"abhyaasi/models"
)

type CoursesClient struct {
	c *Client
}

func (cc *CoursesClient) List(ctx context.Context) ([]models.Course, error) {
	var out []models.Course
	if err := cc.c.do(ctx, http.MethodGet, "/api/courses", nil, &out, callOpts{auth: true}); err != nil {
		return nil, err
	}
	return out, nil
}

func (cc *CoursesClient) GetByID(ctx context.Context, id string) (*models.Course, error) {
	var out models.Course
	if err := cc.c.do(ctx, http.MethodGet, "/api/courses/"+id, nil, &out, callOpts{auth: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *CoursesClient) GetBySlug(ctx context.Context, slug string) (*models.Course, error) {
	var out models.Course
	if err := cc.c.do(ctx, http.MethodGet, "/api/courses/slug/"+slug, nil, &out, callOpts{auth: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// CourseRequest is the payload for creating or updating a course. Empty
// optional fields are left untouched by the backend.
type CourseRequest struct {
	Slug        string   `json:"slug,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Difficulty  string   `json:"difficulty,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	ModuleIDs   []string `json:"moduleIds,omitempty"`
}

// Create adds a course to the catalog. Requires an admin token.
func (cc *CoursesClient) Create(ctx context.Context, req CourseRequest) (*models.Course, error) {
	var out models.Course
	if err := cc.c.do(ctx, http.MethodPost, "/api/courses", req, &out, callOpts{auth: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update edits a course. Requires an admin token.
func (cc *CoursesClient) Update(ctx context.Context, id string, req CourseRequest) (*models.Course, error) {
	var out models.Course
	if err := cc.c.do(ctx, http.MethodPut, "/api/courses/"+id, req, &out, callOpts{auth: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a course from the catalog. Requires an admin token.
func (cc *CoursesClient) Delete(ctx context.Context, id string) error {
	return cc.c.do(ctx, http.MethodDelete, "/api/courses/"+id, nil, nil, callOpts{auth: true})
}

func (cc *CoursesClient) Enroll(ctx context.Context, id string) error {
	return cc.c.do(ctx, http.MethodPost, "/api/courses/"+id+"/enroll", nil, nil, callOpts{auth: true})
}

func (cc *CoursesClient) Unenroll(ctx context.Context, id string) error {
	return cc.c.do(ctx, http.MethodPost, "/api/courses/"+id+"/unenroll", nil, nil, callOpts{auth: true})
}
