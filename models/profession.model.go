package models

type Profession struct {
	ID          string             `json:"_id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Tags        []string           `json:"tags"`
	Duration    string             `json:"duration"`
	Courses     []ProfessionCourse `json:"courses"`
}

// ProfessionCourse is an ordered course reference inside a profession.
type ProfessionCourse struct {
	Course Ref `json:"courseId"`
	Order  int `json:"order"`
}
