package models

// SubmissionResult is the reply to an MCQ or coding submission. It is
// ephemeral: the client renders it and moves on.
type SubmissionResult struct {
	Type     string `json:"type"` // "coding" or "mcq"
	Passed   bool   `json:"passed"`
	Score    int    `json:"score"`
	MaxScore int    `json:"maxScore"`

	TestResults []TestCaseResult `json:"testResults"`

	IsModuleCompleted     bool `json:"isModuleCompleted"`
	IsCourseCompleted     bool `json:"isCourseCompleted"`
	IsProfessionCompleted bool `json:"isProfessionCompleted"`

	Cooldown *Cooldown `json:"cooldown,omitempty"`
}

type TestCaseResult struct {
	Input    string `json:"input"`
	Expected string `json:"expectedOutput"`
	Actual   string `json:"actualOutput"`
	Passed   bool   `json:"passed"`
}

// CompletionCascade reports whether any completion flag is set.
func (r *SubmissionResult) CompletionCascade() bool {
	return r.IsModuleCompleted || r.IsCourseCompleted || r.IsProfessionCompleted
}
