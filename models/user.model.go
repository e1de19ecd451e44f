package models

import "time"

type User struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Mobile       string `json:"mobile"`
	ProfileImage string `json:"profileImage"`

	CurrentCourse     Ref `json:"currentCourse"`
	CurrentModule     Ref `json:"currentModule"`
	CurrentProfession Ref `json:"currentProfession"`

	EnrolledCourses     []Ref `json:"enrolledCourses"`
	EnrolledProfessions []Ref `json:"enrolledProfessions"`

	ModuleProgress       []ModuleProgress      `json:"moduleProgress"`
	CompletedCourses     []CompletedCourse     `json:"completedCourses"`
	CompletedProfessions []CompletedProfession `json:"completedProfessions"`

	// ActivityHistory holds ISO dates the user was active on.
	ActivityHistory []string `json:"activityHistory"`

	Points int `json:"points"`
	Rank   int `json:"rank"`
}

// ModuleProgress is the per-module completion record embedded in the user.
type ModuleProgress struct {
	Module            Ref  `json:"moduleId"`
	IsMCQCompleted    bool `json:"isMCQCompleted"`
	MCQScore          int  `json:"mcqScore"`
	IsCodingCompleted bool `json:"isCodingCompleted"`
	CodingScore       int  `json:"codingScore"`
}

type CompletedCourse struct {
	Course         Ref        `json:"courseId"`
	Points         *int       `json:"points"`
	CompletedAt    *time.Time `json:"completedAt"`
	CertificateURL string     `json:"certificateUrl"`
}

type CompletedProfession struct {
	Profession     Ref        `json:"professionId"`
	Points         *int       `json:"points"`
	CompletedAt    *time.Time `json:"completedAt"`
	CertificateURL string     `json:"certificateUrl"`
}

// IsEnrolledInCourse checks the enrollment relation by course id.
func (u *User) IsEnrolledInCourse(courseID string) bool {
	for _, ref := range u.EnrolledCourses {
		if ref.ID == courseID {
			return true
		}
	}
	return false
}

// IsEnrolledInProfession checks the enrollment relation by profession id.
func (u *User) IsEnrolledInProfession(professionID string) bool {
	for _, ref := range u.EnrolledProfessions {
		if ref.ID == professionID {
			return true
		}
	}
	return false
}

// ProgressFor returns the progress record for a module, if any.
func (u *User) ProgressFor(moduleID string) *ModuleProgress {
	for i := range u.ModuleProgress {
		if u.ModuleProgress[i].Module.ID == moduleID {
			return &u.ModuleProgress[i]
		}
	}
	return nil
}

// HasCompletedCourse checks the completion records by course id.
func (u *User) HasCompletedCourse(courseID string) bool {
	for _, cc := range u.CompletedCourses {
		if cc.Course.ID == courseID {
			return true
		}
	}
	return false
}

// HasCompletedProfession checks the completion records by profession id.
func (u *User) HasCompletedProfession(professionID string) bool {
	for _, cp := range u.CompletedProfessions {
		if cp.Profession.ID == professionID {
			return true
		}
	}
	return false
}
