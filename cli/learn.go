package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"abhyaasi/learn"
	"abhyaasi/models"
	"abhyaasi/utils"
)

func (cli *CommandLine) learn(args []string) error {
	learnCmd := flag.NewFlagSet("learn", flag.ExitOnError)
	moduleID := learnCmd.String("module", "", "Module id")
	wait := learnCmd.Bool("wait", false, "Keep the cooldown countdown running")
	if err := learnCmd.Parse(args); err != nil {
		return err
	}
	if *moduleID == "" {
		learnCmd.Usage()
		return errHelp
	}

	ctx := context.Background()
	flow := learn.NewFlow(cli.sess, *moduleID)
	if err := flow.Start(ctx); err != nil {
		fmt.Fprintf(cli.out, "Could not load module: %s\n", learn.ErrorMessage(err))
		fmt.Fprintln(cli.out, "Run the command again to retry.")
		return err
	}

	mod := flow.Module()
	fmt.Fprintf(cli.out, "%s\n%s\n\n", mod.Title, strings.Repeat("=", len(mod.Title)))
	fmt.Fprintln(cli.out, "Sections: theory → mcq → coding → interview")
	fmt.Fprintln(cli.out)
	fmt.Fprintln(cli.out, "Theory")
	fmt.Fprintln(cli.out, "------")
	fmt.Fprintln(cli.out, mod.Theory)
	fmt.Fprintln(cli.out)

	fmt.Fprintf(cli.out, "MCQs: %d questions", len(mod.MCQs))
	if mod.IsMCQCompleted {
		fmt.Fprint(cli.out, " (completed)")
	}
	fmt.Fprintln(cli.out)

	fmt.Fprintln(cli.out, "Coding task")
	fmt.Fprintln(cli.out, "-----------")
	fmt.Fprintln(cli.out, mod.Coding.Description)
	fmt.Fprintf(cli.out, "Languages: %s\n", strings.Join(mod.Coding.Languages, ", "))

	if len(mod.Coding.StarterFiles) > 0 && !mod.IsCodingCompleted {
		root, err := learn.Materialize(cli.cfg.WorkspaceDir, mod.ID, mod.Coding)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Starter files are in %s — edit them and run `submit`.\n", root)
	}

	state := flow.CodingSubmitState()
	fmt.Fprintf(cli.out, "Submit control: %s\n", state.Label)
	if state.Cooldown != nil {
		cli.renderCooldown(ctx, state.Cooldown, *wait)
	}

	if len(mod.InterviewQuestions) > 0 {
		fmt.Fprintln(cli.out)
		fmt.Fprintf(cli.out, "Interview prep: %d questions (shown after completion)\n", len(mod.InterviewQuestions))
	}
	return nil
}

func (cli *CommandLine) renderCooldown(ctx context.Context, cd *models.Cooldown, wait bool) {
	fmt.Fprintf(cli.out, "Attempt %d failed recently. Submissions locked.\n", cd.AttemptNumber)
	countdown := learn.NewCountdown(cd.CooldownUntil)
	if !wait {
		fmt.Fprintf(cli.out, "Try again in %s\n", utils.FormatCountdown(countdown.Remaining()))
		return
	}
	countdown.Run(ctx, func(remaining time.Duration) {
		fmt.Fprintf(cli.out, "\rTry again in %s ", utils.FormatCountdown(remaining))
	})
	fmt.Fprintln(cli.out)
	fmt.Fprintln(cli.out, "Cooldown over. You can submit again.")
}

func (cli *CommandLine) submitCode(args []string) error {
	submitCmd := flag.NewFlagSet("submit", flag.ExitOnError)
	moduleID := submitCmd.String("module", "", "Module id")
	language := submitCmd.String("lang", "", "Submission language")
	if err := submitCmd.Parse(args); err != nil {
		return err
	}
	if *moduleID == "" || *language == "" {
		submitCmd.Usage()
		return errHelp
	}

	ctx := context.Background()
	flow := learn.NewFlow(cli.sess, *moduleID)
	if err := flow.Start(ctx); err != nil {
		fmt.Fprintf(cli.out, "Could not load module: %s\n", learn.ErrorMessage(err))
		return err
	}

	if flow.CodingReadOnly() {
		fmt.Fprintln(cli.out, "Completed — this coding task is already done.")
		return nil
	}
	if state := flow.CodingSubmitState(); !state.Enabled {
		if state.Cooldown != nil {
			cli.renderCooldown(ctx, state.Cooldown, false)
		} else {
			fmt.Fprintf(cli.out, "Submission unavailable: %s\n", state.Label)
		}
		return nil
	}

	files, err := learn.Collect(cli.cfg.WorkspaceDir, *moduleID)
	if err != nil {
		fmt.Fprintf(cli.out, "Could not read the workspace: %v\n", err)
		fmt.Fprintln(cli.out, "Run `learn` first to materialize the starter files.")
		return err
	}

	outcome, err := flow.SubmitCode(ctx, *language, files)
	if err != nil {
		fmt.Fprintln(cli.out, learn.ErrorMessage(err))
		return err
	}
	cli.renderOutcome(outcome)
	return nil
}

func (cli *CommandLine) submitMCQ(args []string) error {
	mcqCmd := flag.NewFlagSet("mcq", flag.ExitOnError)
	moduleID := mcqCmd.String("module", "", "Module id")
	if err := mcqCmd.Parse(args); err != nil {
		return err
	}
	if *moduleID == "" {
		mcqCmd.Usage()
		return errHelp
	}

	ctx := context.Background()
	flow := learn.NewFlow(cli.sess, *moduleID)
	if err := flow.Start(ctx); err != nil {
		fmt.Fprintf(cli.out, "Could not load module: %s\n", learn.ErrorMessage(err))
		return err
	}

	mod := flow.Module()
	if len(mod.MCQs) == 0 {
		fmt.Fprintln(cli.out, "This module has no MCQs.")
		return nil
	}
	if mod.IsMCQCompleted {
		fmt.Fprintln(cli.out, "MCQs already completed for this module.")
		return nil
	}

	answers := make([]models.MCQAnswer, 0, len(mod.MCQs))
	for i, q := range mod.MCQs {
		fmt.Fprintf(cli.out, "\nQ%d. %s\n", i+1, q.Question)
		for j, opt := range q.Options {
			fmt.Fprintf(cli.out, "  %d) %s\n", j+1, opt)
		}
		choice, err := cli.prompt("Your answer: ")
		if err != nil {
			return err
		}
		selected, err := strconv.Atoi(choice)
		if err != nil || selected < 1 || selected > len(q.Options) {
			fmt.Fprintln(cli.out, "Please pick one of the listed options.")
			return fmt.Errorf("invalid option")
		}
		answers = append(answers, models.MCQAnswer{QuestionID: q.ID, Selected: selected - 1})
	}

	outcome, err := flow.SubmitMCQ(ctx, answers)
	if err != nil {
		fmt.Fprintln(cli.out, learn.ErrorMessage(err))
		return err
	}
	cli.renderOutcome(outcome)
	return nil
}

// renderOutcome is the result modal: copy picked by the completion cascade,
// per-test detail only for failed coding submissions.
func (cli *CommandLine) renderOutcome(outcome *learn.Outcome) {
	res := outcome.Result
	fmt.Fprintln(cli.out)
	fmt.Fprintln(cli.out, outcome.Notice)
	fmt.Fprintf(cli.out, "Score: %d/%d\n", res.Score, res.MaxScore)

	if !res.Passed && res.Type == "coding" {
		for i, tc := range res.TestResults {
			mark := "PASS"
			if !tc.Passed {
				mark = "FAIL"
			}
			fmt.Fprintf(cli.out, "  Test %d: %s\n", i+1, mark)
			if !tc.Passed {
				fmt.Fprintf(cli.out, "    input:    %s\n", tc.Input)
				fmt.Fprintf(cli.out, "    expected: %s\n", tc.Expected)
				fmt.Fprintf(cli.out, "    actual:   %s\n", tc.Actual)
			}
		}
	}
	if res.Cooldown != nil && res.Cooldown.IsInCooldown {
		fmt.Fprintf(cli.out, "Next attempt in %s (attempt %d)\n",
			utils.FormatCountdown(learn.NewCountdown(res.Cooldown.CooldownUntil).Remaining()),
			res.Cooldown.AttemptNumber)
	}
	fmt.Fprintf(cli.out, "Next section: %s\n", outcome.Next)
}
