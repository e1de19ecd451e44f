package api

import (
	"context"
	"net/http"

	"abhyaasi/models"
)

type ProgressClient struct {
	c *Client
}

func (p *ProgressClient) Overall(ctx context.Context) (*models.ProgressReport, error) {
	var out models.ProgressReport
	if err := p.c.do(ctx, http.MethodGet, "/api/progress/overall", nil, &out, callOpts{auth: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProgressClient) ForCourse(ctx context.Context, courseID string) (*models.CourseProgress, error) {
	var out models.CourseProgress
	if err := p.c.do(ctx, http.MethodGet, "/api/progress/course/"+courseID, nil, &out, callOpts{auth: true}); err != nil {
		return nil, err
	}
	return &out, nil
}
