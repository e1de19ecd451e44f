// Package apitest runs an in-process Abhyaasi backend for tests. It speaks
// the real {status,message,data} envelope on the real paths so client
// packages can be tested over actual HTTP.
package apitest

import (
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"abhyaasi/models"
)

type Server struct {
	App *fiber.App
	URL string

	// Fixtures. Tests mutate these before exercising the client.
	Token       string
	User        models.User
	Courses     []models.Course
	Professions []models.Profession
	Modules     map[string]*models.Module
	Leaderboard []models.LeaderboardEntry
	Progress    models.ProgressReport
	ChatReply   string

	// CodeResult and MCQResult are returned by the submit endpoints unless
	// the corresponding status/hook overrides them.
	CodeResult       *models.SubmissionResult
	MCQResult        *models.SubmissionResult
	SubmitCodeStatus int    // non-zero forces an error status
	SubmitCodeError  string // message for the forced error

	mu    sync.Mutex
	calls map[string]int
}

// New starts the fake backend on an ephemeral port and shuts it down when
// the test finishes.
func New(t *testing.T) *Server {
	t.Helper()
	s := &Server{
		Token:     "test-token",
		User:      models.User{ID: "u1", Name: "Test Learner", Email: "learner@example.com"},
		Modules:   make(map[string]*models.Module),
		ChatReply: "Hello!",
		calls:     make(map[string]int),
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	s.App = app
	s.routes(app)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("apitest: listen: %v", err)
	}
	s.URL = "http://" + ln.Addr().String()
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	return s
}

// Calls returns how often a "METHOD path" endpoint was hit.
func (s *Server) Calls(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[key]
}

func (s *Server) record(c *fiber.Ctx) {
	s.mu.Lock()
	s.calls[c.Method()+" "+c.Path()]++
	s.mu.Unlock()
}

func jsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func (s *Server) authorized(c *fiber.Ctx) bool {
	auth := c.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && auth[len("Bearer "):] == s.Token
}

func (s *Server) requireAuth(c *fiber.Ctx) error {
	return jsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
}

func (s *Server) routes(app *fiber.App) {
	app.Use(func(c *fiber.Ctx) error {
		s.record(c)
		return c.Next()
	})

	app.Post("/api/users/register", func(c *fiber.Ctx) error {
		return jsonResponse(c, fiber.StatusOK, true, "OTP sent!", nil)
	})
	app.Post("/api/users/verify-otp", s.loginHandler)
	app.Post("/api/users/login", s.loginHandler)
	app.Post("/api/users/oauth", s.loginHandler)
	app.Get("/api/users/profile", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		s.mu.Lock()
		usr := s.User
		s.mu.Unlock()
		return jsonResponse(c, fiber.StatusOK, true, "Profile fetched!", usr)
	})
	app.Post("/api/users/activity", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		return jsonResponse(c, fiber.StatusOK, true, "Activity recorded!", nil)
	})
	app.Post("/api/users/email-change/request", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		return jsonResponse(c, fiber.StatusOK, true, "OTP sent!", nil)
	})
	app.Post("/api/users/email-change/confirm", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		return jsonResponse(c, fiber.StatusOK, true, "Email updated!", nil)
	})
	app.Delete("/api/users", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		return jsonResponse(c, fiber.StatusOK, true, "Account deleted!", nil)
	})

	app.Get("/api/courses", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		s.mu.Lock()
		list := s.Courses
		s.mu.Unlock()
		return jsonResponse(c, fiber.StatusOK, true, "Courses fetched!", list)
	})
	app.Get("/api/courses/slug/:slug", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, course := range s.Courses {
			if course.Slug == c.Params("slug") {
				return jsonResponse(c, fiber.StatusOK, true, "Course fetched!", course)
			}
		}
		return jsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	})
	app.Get("/api/courses/:id", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, course := range s.Courses {
			if course.ID == c.Params("id") {
				return jsonResponse(c, fiber.StatusOK, true, "Course fetched!", course)
			}
		}
		return jsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	})
	app.Post("/api/courses", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		var course models.Course
		if err := c.BodyParser(&course); err != nil {
			return jsonResponse(c, fiber.StatusBadRequest, false, "Invalid payload!", nil)
		}
		s.mu.Lock()
		course.ID = fmt.Sprintf("c%d", len(s.Courses)+1)
		s.Courses = append(s.Courses, course)
		s.mu.Unlock()
		return jsonResponse(c, fiber.StatusOK, true, "Course created!", course)
	})
	app.Put("/api/courses/:id", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		var patch models.Course
		if err := c.BodyParser(&patch); err != nil {
			return jsonResponse(c, fiber.StatusBadRequest, false, "Invalid payload!", nil)
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.Courses {
			if s.Courses[i].ID == c.Params("id") {
				patch.ID = s.Courses[i].ID
				s.Courses[i] = patch
				return jsonResponse(c, fiber.StatusOK, true, "Course updated!", s.Courses[i])
			}
		}
		return jsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	})
	app.Delete("/api/courses/:id", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		s.mu.Lock()
		kept := s.Courses[:0]
		for _, course := range s.Courses {
			if course.ID != c.Params("id") {
				kept = append(kept, course)
			}
		}
		s.Courses = kept
		s.mu.Unlock()
		return jsonResponse(c, fiber.StatusOK, true, "Course deleted!", nil)
	})
	app.Post("/api/courses/:id/enroll", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		s.mu.Lock()
		// Copy: fiber reuses the params buffer after the handler returns.
		s.User.EnrolledCourses = append(s.User.EnrolledCourses, models.Ref{ID: utils.CopyString(c.Params("id"))})
		s.mu.Unlock()
		return jsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", nil)
	})
	app.Post("/api/courses/:id/unenroll", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		s.mu.Lock()
		kept := s.User.EnrolledCourses[:0]
		for _, ref := range s.User.EnrolledCourses {
			if ref.ID != c.Params("id") {
				kept = append(kept, ref)
			}
		}
		s.User.EnrolledCourses = kept
		s.mu.Unlock()
		return jsonResponse(c, fiber.StatusOK, true, "Unenrolled from course!", nil)
	})

	app.Get("/api/professions", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		s.mu.Lock()
		list := s.Professions
		s.mu.Unlock()
		return jsonResponse(c, fiber.StatusOK, true, "Professions fetched!", list)
	})
	app.Get("/api/professions/:id", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, prof := range s.Professions {
			if prof.ID == c.Params("id") {
				return jsonResponse(c, fiber.StatusOK, true, "Profession fetched!", prof)
			}
		}
		return jsonResponse(c, fiber.StatusNotFound, false, "Profession not found!", nil)
	})
	app.Post("/api/professions", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		var prof models.Profession
		if err := c.BodyParser(&prof); err != nil {
			return jsonResponse(c, fiber.StatusBadRequest, false, "Invalid payload!", nil)
		}
		s.mu.Lock()
		prof.ID = fmt.Sprintf("p%d", len(s.Professions)+1)
		s.Professions = append(s.Professions, prof)
		s.mu.Unlock()
		return jsonResponse(c, fiber.StatusOK, true, "Profession created!", prof)
	})
	app.Put("/api/professions/:id", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		var patch models.Profession
		if err := c.BodyParser(&patch); err != nil {
			return jsonResponse(c, fiber.StatusBadRequest, false, "Invalid payload!", nil)
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.Professions {
			if s.Professions[i].ID == c.Params("id") {
				patch.ID = s.Professions[i].ID
				patch.Courses = s.Professions[i].Courses
				s.Professions[i] = patch
				return jsonResponse(c, fiber.StatusOK, true, "Profession updated!", s.Professions[i])
			}
		}
		return jsonResponse(c, fiber.StatusNotFound, false, "Profession not found!", nil)
	})
	app.Delete("/api/professions/:id", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		s.mu.Lock()
		kept := s.Professions[:0]
		for _, prof := range s.Professions {
			if prof.ID != c.Params("id") {
				kept = append(kept, prof)
			}
		}
		s.Professions = kept
		s.mu.Unlock()
		return jsonResponse(c, fiber.StatusOK, true, "Profession deleted!", nil)
	})
	app.Post("/api/professions/:id/assign-courses", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		var body struct {
			Courses []models.ProfessionCourse `json:"courses"`
		}
		if err := c.BodyParser(&body); err != nil {
			return jsonResponse(c, fiber.StatusBadRequest, false, "Invalid payload!", nil)
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.Professions {
			if s.Professions[i].ID == c.Params("id") {
				s.Professions[i].Courses = body.Courses
				return jsonResponse(c, fiber.StatusOK, true, "Courses assigned!", s.Professions[i])
			}
		}
		return jsonResponse(c, fiber.StatusNotFound, false, "Profession not found!", nil)
	})
	app.Post("/api/professions/:id/enroll", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		s.mu.Lock()
		// Copy: fiber reuses the params buffer after the handler returns.
		s.User.EnrolledProfessions = append(s.User.EnrolledProfessions, models.Ref{ID: utils.CopyString(c.Params("id"))})
		s.mu.Unlock()
		return jsonResponse(c, fiber.StatusOK, true, "Enrolled in profession successfully!", nil)
	})
	app.Post("/api/professions/:id/unenroll", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		s.mu.Lock()
		kept := s.User.EnrolledProfessions[:0]
		for _, ref := range s.User.EnrolledProfessions {
			if ref.ID != c.Params("id") {
				kept = append(kept, ref)
			}
		}
		s.User.EnrolledProfessions = kept
		s.mu.Unlock()
		return jsonResponse(c, fiber.StatusOK, true, "Unenrolled from profession!", nil)
	})

	app.Post("/api/modules", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		var mod models.Module
		if err := c.BodyParser(&mod); err != nil {
			return jsonResponse(c, fiber.StatusBadRequest, false, "Invalid payload!", nil)
		}
		s.mu.Lock()
		mod.ID = fmt.Sprintf("m%d", len(s.Modules)+1)
		s.Modules[mod.ID] = &mod
		s.mu.Unlock()
		return jsonResponse(c, fiber.StatusOK, true, "Module created!", mod)
	})
	app.Put("/api/modules/:id", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		var patch models.Module
		if err := c.BodyParser(&patch); err != nil {
			return jsonResponse(c, fiber.StatusBadRequest, false, "Invalid payload!", nil)
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.Modules[c.Params("id")]; !ok {
			return jsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
		}
		patch.ID = utils.CopyString(c.Params("id"))
		s.Modules[patch.ID] = &patch
		return jsonResponse(c, fiber.StatusOK, true, "Module updated!", patch)
	})
	app.Delete("/api/modules/:id", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		s.mu.Lock()
		delete(s.Modules, c.Params("id"))
		s.mu.Unlock()
		return jsonResponse(c, fiber.StatusOK, true, "Module deleted!", nil)
	})
	app.Get("/api/modules/:id", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		s.mu.Lock()
		mod, ok := s.Modules[c.Params("id")]
		s.mu.Unlock()
		if !ok {
			return jsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
		}
		return jsonResponse(c, fiber.StatusOK, true, "Module fetched!", mod)
	})
	app.Post("/api/modules/:id/submit-code", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		s.mu.Lock()
		status, msg, res := s.SubmitCodeStatus, s.SubmitCodeError, s.CodeResult
		s.mu.Unlock()
		if status != 0 {
			return jsonResponse(c, status, false, msg, nil)
		}
		return jsonResponse(c, fiber.StatusOK, true, "Submission evaluated!", res)
	})
	app.Post("/api/modules/:id/submit-mcq", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		s.mu.Lock()
		res := s.MCQResult
		s.mu.Unlock()
		return jsonResponse(c, fiber.StatusOK, true, "Answers scored!", res)
	})

	app.Get("/api/progress/overall", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		s.mu.Lock()
		report := s.Progress
		s.mu.Unlock()
		return jsonResponse(c, fiber.StatusOK, true, "Progress fetched!", report)
	})
	app.Get("/api/progress/course/:id", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, cp := range s.Progress.Courses {
			if cp.Course.ID == c.Params("id") {
				return jsonResponse(c, fiber.StatusOK, true, "Progress fetched!", cp)
			}
		}
		return jsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	})

	app.Get("/api/leaderboard", func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		s.mu.Lock()
		list := s.Leaderboard
		s.mu.Unlock()
		return jsonResponse(c, fiber.StatusOK, true, "Leaderboard fetched!", list)
	})

	chat := func(c *fiber.Ctx) error {
		if !s.authorized(c) {
			return s.requireAuth(c)
		}
		s.mu.Lock()
		reply := s.ChatReply
		s.mu.Unlock()
		return jsonResponse(c, fiber.StatusOK, true, "Reply generated!", fiber.Map{"reply": reply})
	}
	app.Post("/api/ai/chat", chat)
	app.Post("/api/ai/voice-chat", chat)
	app.Post("/api/ai/platform-chat", chat)
}

func (s *Server) loginHandler(c *fiber.Ctx) error {
	s.mu.Lock()
	token, usr := s.Token, s.User
	s.mu.Unlock()
	return jsonResponse(c, fiber.StatusOK, true, "Logged in!", fiber.Map{
		"token": token,
		"user":  usr,
	})
}
