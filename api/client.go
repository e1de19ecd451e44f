package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v4"

	"abhyaasi/store"
)

// Client talks to the Abhyaasi backend. Resource clients hang off it and
// share the base URL, timeout and token handling.
type Client struct {
	http  *resty.Client
	store *store.Store

	Users       *UsersClient
	Courses     *CoursesClient
	Modules     *ModulesClient
	Professions *ProfessionsClient
	Progress    *ProgressClient
	Leaderboard *LeaderboardClient
	Chat        *ChatClient
}

// New creates a client against baseURL reading credentials from st.
func New(baseURL string, timeout time.Duration, st *store.Store) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
		store: st,
	}
	c.Users = &UsersClient{c: c}
	c.Courses = &CoursesClient{c: c}
	c.Modules = &ModulesClient{c: c}
	c.Professions = &ProfessionsClient{c: c}
	c.Progress = &ProgressClient{c: c}
	c.Leaderboard = &LeaderboardClient{c: c}
	c.Chat = &ChatClient{c: c}
	return c
}

// HasToken reports whether an auth token is currently stored.
func (c *Client) HasToken() bool {
	token, ok := c.store.Get(store.KeyAuthToken)
	return ok && token != ""
}

// envelope is the backend's uniform response body.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type callOpts struct {
	auth     bool
	purge401 bool
	query    map[string]string
}

// do performs one request. out, when non-nil, receives the envelope's data
// field. Failures are never swallowed: HTTP errors come back as *Error with
// the server's payload when it sent one, transport errors come back as-is.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, opts callOpts) error {
	req := c.http.R().SetContext(ctx)
	if opts.auth {
		token, err := c.bearerToken()
		if err != nil {
			return err
		}
		req.SetHeader("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.SetBody(body)
	}
	if opts.query != nil {
		req.SetQueryParams(opts.query)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}

	if resp.StatusCode() >= 400 {
		if opts.purge401 && resp.StatusCode() == http.StatusUnauthorized {
			c.purgeCredentials()
		}
		return decodeError(resp.StatusCode(), resp.Body())
	}

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return &Error{StatusCode: resp.StatusCode(), Message: "malformed response body"}
	}
	if env.Data == nil {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

// bearerToken returns the stored token. A token that has already expired is
// purged right away instead of being sent on a round trip that is
// guaranteed to 401.
func (c *Client) bearerToken() (string, error) {
	token, ok := c.store.Get(store.KeyAuthToken)
	if !ok || token == "" {
		return "", ErrNotAuthenticated
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if !claims.VerifyExpiresAt(time.Now().Unix(), false) {
			c.purgeCredentials()
			return "", ErrNotAuthenticated
		}
	}
	return token, nil
}

func (c *Client) purgeCredentials() {
	_ = c.store.Delete(store.KeyAuthToken)
	_ = c.store.Delete(store.KeyUser)
}
