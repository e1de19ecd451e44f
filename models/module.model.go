package models

import "time"

// Module is the module-detail response. Per-user completion and cooldown
// flags come embedded alongside the content.
type Module struct {
	ID     string `json:"_id"`
	Title  string `json:"title"`
	Theory string `json:"theoryNotes"`

	MCQs               []MCQQuestion       `json:"mcqs"`
	Coding             CodingTask          `json:"codingTask"`
	InterviewQuestions []InterviewQuestion `json:"interviewQuestions"`

	IsMCQCompleted    bool     `json:"isMCQCompleted"`
	IsCodingCompleted bool     `json:"isCodingCompleted"`
	CodingCooldown    Cooldown `json:"codingCooldown"`
}

type MCQQuestion struct {
	ID       string   `json:"_id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// MCQAnswer is one selected option submitted for scoring.
type MCQAnswer struct {
	QuestionID string `json:"questionId"`
	Selected   int    `json:"selected"`
}

type CodingTask struct {
	Description string `json:"description"`
	// StarterFiles maps file path to initial contents.
	StarterFiles map[string]string `json:"starterFiles"`
	TestCases    []TestCase        `json:"testCases"`
	Languages    []string          `json:"supportedLanguages"`
}

type TestCase struct {
	Input    string `json:"input"`
	Expected string `json:"expectedOutput"`
	Hidden   bool   `json:"hidden"`
}

type InterviewQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Cooldown is the server-computed post-failure lockout. The client only
// renders a countdown against CooldownUntil.
type Cooldown struct {
	IsInCooldown  bool      `json:"isInCooldown"`
	CooldownUntil time.Time `json:"cooldownUntil"`
	AttemptNumber int       `json:"attemptNumber"`
}

// Active reports whether the cooldown still holds at the given instant.
func (c Cooldown) Active(now time.Time) bool {
	return c.IsInCooldown && c.CooldownUntil.After(now)
}
