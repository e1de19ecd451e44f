package models

// ProgressReport is the overall progress report for the current user.
type ProgressReport struct {
	TotalModules     int              `json:"totalModules"`
	CompletedModules int              `json:"completedModules"`
	Points           int              `json:"points"`
	Courses          []CourseProgress `json:"courses"`
}

// CourseProgress is the per-course progress report.
type CourseProgress struct {
	Course           Ref     `json:"courseId"`
	TotalModules     int     `json:"totalModules"`
	CompletedModules int     `json:"completedModules"`
	Percent          float64 `json:"percent"`
}
