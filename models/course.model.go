package models

type Course struct {
	ID          string         `json:"_id"`
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Difficulty  string         `json:"difficulty"` // BEGINNER, INTERMEDIATE, ADVANCED
	Duration    string         `json:"duration"`
	Modules     []CourseModule `json:"modules"`
}

// CourseModule is an ordered module reference inside a course.
type CourseModule struct {
	Module Ref    `json:"moduleId"`
	Order  int    `json:"order"`
	Title  string `json:"title"`
}
