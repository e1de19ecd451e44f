// Package cli is the command surface: thin rendering of session data plus
// flag parsing. No business rules live here.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"abhyaasi/api"
	"abhyaasi/config"
	"abhyaasi/session"
	"abhyaasi/store"
)

var errHelp = errors.New("help provided")

type CommandLine struct {
	cfg   *config.Config
	store *store.Store
	api   *api.Client
	sess  *session.Session

	out io.Writer
	in  *bufio.Reader
}

func New(cfg *config.Config, st *store.Store, client *api.Client, sess *session.Session) *CommandLine {
	return &CommandLine{
		cfg:   cfg,
		store: st,
		api:   client,
		sess:  sess,
		out:   os.Stdout,
		in:    bufio.NewReader(os.Stdin),
	}
}

func (cli *CommandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login                            - log in with email and password")
	fmt.Fprintln(cli.out, "  register                         - create an account (OTP follows by email)")
	fmt.Fprintln(cli.out, "  logout                           - clear stored credentials")
	fmt.Fprintln(cli.out, "  courses                          - list the course catalog")
	fmt.Fprintln(cli.out, "  professions                      - list the profession catalog")
	fmt.Fprintln(cli.out, "  enroll -course ID|-profession ID - toggle enrollment")
	fmt.Fprintln(cli.out, "  learn -module ID                 - open a module's learning flow")
	fmt.Fprintln(cli.out, "  submit -module ID -lang LANGUAGE - submit the coding workspace")
	fmt.Fprintln(cli.out, "  mcq -module ID                   - answer the module's MCQs")
	fmt.Fprintln(cli.out, "  dashboard                        - points, rank and activity")
	fmt.Fprintln(cli.out, "  leaderboard                      - top learners")
	fmt.Fprintln(cli.out, "  progress                         - overall progress report")
	fmt.Fprintln(cli.out, "  settings                         - account and editor settings")
	fmt.Fprintln(cli.out, "  chat -message TEXT               - ask the AI assistant")
}

// Run dispatches a command. args is os.Args.
func (cli *CommandLine) Run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "login":
		return cli.login(args[2:])
	case "register":
		return cli.register(args[2:])
	case "logout":
		return cli.logout()
	case "courses":
		return cli.listCourses()
	case "professions":
		return cli.listProfessions()
	case "enroll":
		return cli.enroll(args[2:])
	case "learn":
		return cli.learn(args[2:])
	case "submit":
		return cli.submitCode(args[2:])
	case "mcq":
		return cli.submitMCQ(args[2:])
	case "dashboard":
		return cli.dashboard()
	case "leaderboard":
		return cli.leaderboard()
	case "progress":
		return cli.progress()
	case "settings":
		return cli.settings(args[2:])
	case "chat":
		return cli.chat(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

// prompt reads one trimmed line from stdin.
func (cli *CommandLine) prompt(label string) (string, error) {
	fmt.Fprint(cli.out, label)
	line, err := cli.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
