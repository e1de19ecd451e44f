package learn

import (
	"context"
	"errors"
	"sync"
	"time"

	"abhyaasi/api"
	"abhyaasi/models"
	"abhyaasi/session"
)

// Section is one tab of the module learning flow.
type Section string

const (
	SectionTheory    Section = "theory"
	SectionMCQ       Section = "mcq"
	SectionCoding    Section = "coding"
	SectionInterview Section = "interview"
)

var sectionOrder = []Section{SectionTheory, SectionMCQ, SectionCoding, SectionInterview}

var (
	ErrNotLoaded           = errors.New("module not loaded")
	ErrSubmissionInFlight  = errors.New("a submission is already in flight")
	ErrCodingCompleted     = errors.New("coding task already completed")
	ErrCooldownActive      = errors.New("submission locked by cooldown")
	ErrUnsupportedLanguage = errors.New("language not supported for this module")
)

// Flow drives one module through theory → mcq → coding → interview. It owns
// the section pointer, the in-flight submission flag and the last result;
// everything else lives in the session.
type Flow struct {
	sess     *session.Session
	moduleID string

	mu         sync.Mutex
	section    Section
	module     *models.Module
	loadErr    error
	submitting bool
	lastResult *models.SubmissionResult
}

func NewFlow(sess *session.Session, moduleID string) *Flow {
	return &Flow{sess: sess, moduleID: moduleID, section: SectionTheory}
}

// Start fetches the module detail. On failure the flow stays in an error
// state and Retry may be called.
func (f *Flow) Start(ctx context.Context) error {
	return f.load(ctx)
}

// Retry re-attempts a failed module fetch.
func (f *Flow) Retry(ctx context.Context) error {
	return f.load(ctx)
}

func (f *Flow) load(ctx context.Context) error {
	mod, err := f.sess.Module(ctx, f.moduleID)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.module = mod
	f.loadErr = err
	return err
}

// Module returns the loaded module detail, nil while loading failed.
func (f *Flow) Module() *models.Module {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.module
}

// Err returns the last load error.
func (f *Flow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loadErr
}

// Section returns the current section.
func (f *Flow) Section() Section {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.section
}

// GoTo jumps to a section.
func (f *Flow) GoTo(section Section) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.section = section
}

// Next advances to the following section, stopping at interview.
func (f *Flow) Next() Section {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, sec := range sectionOrder {
		if sec == f.section && i < len(sectionOrder)-1 {
			f.section = sectionOrder[i+1]
			break
		}
	}
	return f.section
}

// LastResult returns the most recent submission result, nil if none.
func (f *Flow) LastResult() *models.SubmissionResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastResult
}

// SubmitState describes how the coding submit control should render.
type SubmitState struct {
	Label    string
	Enabled  bool
	Cooldown *models.Cooldown
}

// CodingSubmitState derives the submit control from completion, cooldown
// and in-flight state.
func (f *Flow) CodingSubmitState() SubmitState {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.module == nil {
		return SubmitState{Label: "Submit", Enabled: false}
	}
	if f.module.IsCodingCompleted {
		return SubmitState{Label: "Completed", Enabled: false}
	}
	if cd := f.module.CodingCooldown; cd.Active(time.Now()) {
		cooldown := cd
		return SubmitState{Label: "Submit", Enabled: false, Cooldown: &cooldown}
	}
	if f.submitting {
		return SubmitState{Label: "Submitting...", Enabled: false}
	}
	return SubmitState{Label: "Submit", Enabled: true}
}

// CodingReadOnly reports whether the workspace should be treated as
// read-only (coding already completed).
func (f *Flow) CodingReadOnly() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.module != nil && f.module.IsCodingCompleted
}

// Outcome is what the result view renders after a submission.
type Outcome struct {
	Result *models.SubmissionResult
	Notice string
	Next   Section
}

// SubmitCode submits the workspace files. One submission at a time; a
// completed task, an active cooldown or an unsupported language reject
// before any network call. Pass without a completion cascade advances to
// mcq and refetches the module; a completion cascade advances to
// interview.
func (f *Flow) SubmitCode(ctx context.Context, language string, files map[string]string) (*Outcome, error) {
	f.mu.Lock()
	if f.module == nil {
		f.mu.Unlock()
		return nil, ErrNotLoaded
	}
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	if f.module.IsCodingCompleted {
		f.mu.Unlock()
		return nil, ErrCodingCompleted
	}
	if f.module.CodingCooldown.Active(time.Now()) {
		f.mu.Unlock()
		return nil, ErrCooldownActive
	}
	if !supportsLanguage(f.module.Coding.Languages, language) {
		f.mu.Unlock()
		return nil, ErrUnsupportedLanguage
	}
	f.submitting = true
	f.mu.Unlock()

	res, err := f.sess.SubmitCode(ctx, f.moduleID, api.SubmitCodeRequest{
		Language: language,
		Files:    files,
	})

	f.mu.Lock()
	f.submitting = false
	if err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.lastResult = res
	if res.Cooldown != nil {
		f.module.CodingCooldown = *res.Cooldown
	}
	switch {
	case res.CompletionCascade():
		f.section = SectionInterview
	case res.Passed:
		f.section = SectionMCQ
	}
	next := f.section
	f.mu.Unlock()

	if res.Passed && !res.CompletionCascade() {
		// The session dropped its cached detail on submit; pick up the
		// fresh completion flags.
		_ = f.load(ctx)
	}

	return &Outcome{Result: res, Notice: noticeFor(res), Next: next}, nil
}

// SubmitMCQ submits the selected answers for server-side scoring. Pass
// advances to coding; a completion cascade advances to interview.
func (f *Flow) SubmitMCQ(ctx context.Context, answers []models.MCQAnswer) (*Outcome, error) {
	f.mu.Lock()
	if f.module == nil {
		f.mu.Unlock()
		return nil, ErrNotLoaded
	}
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	f.submitting = true
	f.mu.Unlock()

	res, err := f.sess.SubmitMCQ(ctx, f.moduleID, answers)

	f.mu.Lock()
	f.submitting = false
	if err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.lastResult = res
	switch {
	case res.CompletionCascade():
		f.section = SectionInterview
	case res.Passed:
		f.section = SectionCoding
	}
	next := f.section
	f.mu.Unlock()

	if res.Passed && !res.CompletionCascade() {
		_ = f.load(ctx)
	}

	return &Outcome{Result: res, Notice: noticeFor(res), Next: next}, nil
}

// noticeFor picks the result copy. Completion cascade flags outrank the
// plain pass/fail flag, profession highest.
func noticeFor(res *models.SubmissionResult) string {
	switch {
	case res.IsProfessionCompleted:
		return "Congratulations! You have completed the entire profession!"
	case res.IsCourseCompleted:
		return "Congratulations! You have completed the course!"
	case res.IsModuleCompleted:
		return "Module completed! On to the next one."
	case res.Passed:
		return "Passed! Well done."
	default:
		return "Not quite there yet. Review the results and try again."
	}
}

func supportsLanguage(languages []string, language string) bool {
	for _, l := range languages {
		if l == language {
			return true
		}
	}
	return false
}
