package session

import (
	"context"

	"abhyaasi/models"
)

// Default point values shown when a completion record carries none.
const (
	DefaultCoursePoints     = 10
	DefaultProfessionPoints = 50
)

// ToggleCourseEnrollment enrolls in the course when not enrolled and
// unenrolls otherwise, then force-refetches the user. It returns the new
// enrollment state.
func (s *Session) ToggleCourseEnrollment(ctx context.Context, courseID string) (bool, error) {
	usr, err := s.CurrentUser(ctx)
	if err != nil {
		return false, err
	}
	enrolled := usr.IsEnrolledInCourse(courseID)
	if enrolled {
		err = s.api.Courses.Unenroll(ctx, courseID)
	} else {
		err = s.api.Courses.Enroll(ctx, courseID)
	}
	if err != nil {
		return enrolled, err
	}
	if _, err := s.RefreshUser(ctx); err != nil {
		return !enrolled, err
	}
	return !enrolled, nil
}

// ToggleProfessionEnrollment mirrors ToggleCourseEnrollment for
// professions.
func (s *Session) ToggleProfessionEnrollment(ctx context.Context, professionID string) (bool, error) {
	usr, err := s.CurrentUser(ctx)
	if err != nil {
		return false, err
	}
	enrolled := usr.IsEnrolledInProfession(professionID)
	if enrolled {
		err = s.api.Professions.Unenroll(ctx, professionID)
	} else {
		err = s.api.Professions.Enroll(ctx, professionID)
	}
	if err != nil {
		return enrolled, err
	}
	if _, err := s.RefreshUser(ctx); err != nil {
		return !enrolled, err
	}
	return !enrolled, nil
}

// CompletedCourseView is a completion record joined against catalog data.
type CompletedCourseView struct {
	Course         models.Course
	Points         int
	CompletedAt    string
	CertificateURL string
}

// CompletedCourses joins the user's completion records with the course
// catalog. Records without a points value get the default.
func (s *Session) CompletedCourses(ctx context.Context) ([]CompletedCourseView, error) {
	usr, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := s.Courses(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Course, len(catalog))
	for _, course := range catalog {
		byID[course.ID] = course
	}

	views := make([]CompletedCourseView, 0, len(usr.CompletedCourses))
	for _, rec := range usr.CompletedCourses {
		view := CompletedCourseView{
			Points:         DefaultCoursePoints,
			CertificateURL: rec.CertificateURL,
		}
		if rec.Points != nil {
			view.Points = *rec.Points
		}
		if rec.CompletedAt != nil {
			view.CompletedAt = rec.CompletedAt.Format("2006-01-02")
		}
		// Populated references win, the catalog fills the rest in.
		if ok, err := rec.Course.Decode(&view.Course); err != nil || !ok {
			if course, found := byID[rec.Course.ID]; found {
				view.Course = course
			} else {
				view.Course = models.Course{ID: rec.Course.ID, Title: rec.Course.ID}
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// CompletedProfessionView is a profession completion joined against the
// catalog.
type CompletedProfessionView struct {
	Profession     models.Profession
	Points         int
	CompletedAt    string
	CertificateURL string
}

func (s *Session) CompletedProfessions(ctx context.Context) ([]CompletedProfessionView, error) {
	usr, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := s.Professions(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Profession, len(catalog))
	for _, prof := range catalog {
		byID[prof.ID] = prof
	}

	views := make([]CompletedProfessionView, 0, len(usr.CompletedProfessions))
	for _, rec := range usr.CompletedProfessions {
		view := CompletedProfessionView{
			Points:         DefaultProfessionPoints,
			CertificateURL: rec.CertificateURL,
		}
		if rec.Points != nil {
			view.Points = *rec.Points
		}
		if rec.CompletedAt != nil {
			view.CompletedAt = rec.CompletedAt.Format("2006-01-02")
		}
		if ok, err := rec.Profession.Decode(&view.Profession); err != nil || !ok {
			if prof, found := byID[rec.Profession.ID]; found {
				view.Profession = prof
			} else {
				view.Profession = models.Profession{ID: rec.Profession.ID, Name: rec.Profession.ID}
			}
		}
		views = append(views, view)
	}
	return views, nil
}
