package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"
)

func (cli *CommandLine) listCourses() error {
	ctx := context.Background()
	courses, err := cli.sess.Courses(ctx)
	if err != nil {
		fmt.Fprintf(cli.out, "Could not load courses: %s\n", errText(err))
		return err
	}

	usr, _ := cli.sess.CurrentUser(ctx)
	fmt.Fprintln(cli.out, "Courses:")
	for _, course := range courses {
		marker := " "
		if usr != nil {
			if usr.HasCompletedCourse(course.ID) {
				marker = "✓"
			} else if usr.IsEnrolledInCourse(course.ID) {
				marker = "*"
			}
		}
		fmt.Fprintf(cli.out, "  [%s] %s  %s (%s, %s, %d modules)\n",
			marker, course.ID, course.Title, course.Difficulty, course.Duration, len(course.Modules))
	}
	return nil
}

func (cli *CommandLine) listProfessions() error {
	ctx := context.Background()
	professions, err := cli.sess.Professions(ctx)
	if err != nil {
		fmt.Fprintf(cli.out, "Could not load professions: %s\n", errText(err))
		return err
	}

	usr, _ := cli.sess.CurrentUser(ctx)
	fmt.Fprintln(cli.out, "Professions:")
	for _, prof := range professions {
		marker := " "
		if usr != nil {
			if usr.HasCompletedProfession(prof.ID) {
				marker = "✓"
			} else if usr.IsEnrolledInProfession(prof.ID) {
				marker = "*"
			}
		}
		tags := ""
		if len(prof.Tags) > 0 {
			tags = " [" + strings.Join(prof.Tags, ", ") + "]"
		}
		fmt.Fprintf(cli.out, "  [%s] %s  %s (%d courses, %s)%s\n",
			marker, prof.ID, prof.Name, len(prof.Courses), prof.Duration, tags)
	}
	return nil
}

// enroll toggles enrollment: already enrolled means unenroll.
func (cli *CommandLine) enroll(args []string) error {
	enrollCmd := flag.NewFlagSet("enroll", flag.ExitOnError)
	courseID := enrollCmd.String("course", "", "Course id")
	professionID := enrollCmd.String("profession", "", "Profession id")
	if err := enrollCmd.Parse(args); err != nil {
		return err
	}
	if (*courseID == "") == (*professionID == "") {
		enrollCmd.Usage()
		return errHelp
	}

	ctx := context.Background()
	if *courseID != "" {
		enrolled, err := cli.sess.ToggleCourseEnrollment(ctx, *courseID)
		if err != nil {
			fmt.Fprintf(cli.out, "Enrollment change failed: %s\n", errText(err))
			return err
		}
		if enrolled {
			fmt.Fprintln(cli.out, "Enrolled in course.")
		} else {
			fmt.Fprintln(cli.out, "Unenrolled from course.")
		}
		return nil
	}

	enrolled, err := cli.sess.ToggleProfessionEnrollment(ctx, *professionID)
	if err != nil {
		fmt.Fprintf(cli.out, "Enrollment change failed: %s\n", errText(err))
		return err
	}
	if enrolled {
		fmt.Fprintln(cli.out, "Enrolled in profession.")
	} else {
		fmt.Fprintln(cli.out, "Unenrolled from profession.")
	}
	return nil
}
