package api

import (
	"context"
	"net/http"
	"strconv"

	"abhyaasi/models"
)

type LeaderboardClient struct {
	c *Client
}

func (l *LeaderboardClient) Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	opts := callOpts{auth: true}
	if limit > 0 {
		opts.query = map[string]string{"limit": strconv.Itoa(limit)}
	}
	var out []models.LeaderboardEntry
	if err := l.c.do(ctx, http.MethodGet, "/api/leaderboard", nil, &out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
