package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bikeshare/internal/config"
	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/exporter"
	"bikeshare/internal/infrastructure"
	"bikeshare/internal/services"
	"bikeshare/internal/validation"
)

// Prompts shown by the runner
const (
	greeting       = "Hello! Ready to dig into some bikeshare data?"
	monthPrompt    = "Which month? January to June, or type 'all' for no month filter: "
	dayPrompt      = "Which day? Monday to Sunday, or type 'all' for no day filter: "
	firstRowsAsk   = "Do you want to check the first 5 rows of the dataset related to the chosen city? (yes/no): "
	moreRowsAsk    = "Do you want to check another 5 rows of the dataset? (yes/no): "
	startOverAsk   = "Do you want to start over with new filters? (yes/no): "
	endOfDataAsk   = "You have reached the end of the dataset. Do you want to start over with new filters? (yes/no): "
	restartAsk     = "\nWould you like to restart the analysis? Type 'yes' or 'no': "
	invalidAnswer  = "Invalid %s. Please try again.\n"
	loadFailedNote = "Could not load data for %s: %v\n"
)

// Runner drives a Machine over a line-oriented reader and writer
type Runner struct {
	svc      *services.AnalysisService
	in       *bufio.Reader
	out      io.Writer
	exporter *exporter.TextExporter
	machine  *Machine
	logger   *slog.Logger

	analysis *services.Analysis
	page     int
}

// NewRunner creates a runner reading answers from in and writing to out
func NewRunner(svc *services.AnalysisService, in io.Reader, out io.Writer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	return &Runner{
		svc:      svc,
		in:       bufio.NewReader(in),
		out:      out,
		exporter: exporter.NewTextExporter(out),
		machine:  NewMachine(),
		logger:   infrastructure.WithComponent(logger, "session"),
	}
}

// State returns the current session state
func (r *Runner) State() State {
	return r.machine.State()
}

// Run loops until the user quits or input ends. Running out of input is a
// normal way to leave and is not an error.
func (r *Runner) Run(ctx context.Context) error {
	for r.machine.State() != StateDone {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch r.machine.State() {
		case StatePrompting:
			err = r.prompt(ctx)
		case StateLoaded:
			err = r.offerRows(ctx)
		case StatePaginating:
			err = r.showPage(ctx)
		case StateReporting:
			err = r.report(ctx)
		}

		if errors.Is(err, io.EOF) {
			r.logger.DebugContext(ctx, "Input closed", slog.String("state", r.machine.State().String()))
			return r.fire(ctx, EventQuit)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) prompt(ctx context.Context) error {
	r.printf("%s\n", greeting)

	v := r.svc.Validator()
	region, err := r.askValid("city", cityPrompt(v.Regions()), v.ValidateRegion)
	if err != nil {
		return err
	}
	month, err := r.askValid("month", monthPrompt, v.ValidateMonth)
	if err != nil {
		return err
	}
	day, err := r.askValid("day", dayPrompt, v.ValidateDay)
	if err != nil {
		return err
	}
	r.printf("%s\n", exporter.Separator)

	analysis, err := r.svc.Load(ctx, validation.Selection{Region: region, Month: month, Day: day})
	if err != nil {
		infrastructure.WithError(r.logger, err).ErrorContext(ctx, "Load failed",
			slog.String("region", region),
			slog.String("error_type", string(apperrors.TypeOf(err))))
		r.printf(loadFailedNote, region, err)
		return nil
	}

	r.analysis = analysis
	r.page = 0
	return r.fire(ctx, EventFiltersChosen)
}

func (r *Runner) offerRows(ctx context.Context) error {
	if r.analysis.View.Len() == 0 {
		return r.askStartOver(ctx, endOfDataAsk)
	}

	yes, err := r.askYesNo(firstRowsAsk)
	if err != nil {
		return err
	}
	if yes {
		return r.fire(ctx, EventShowRows)
	}
	return r.askStartOver(ctx, startOverAsk)
}

func (r *Runner) showPage(ctx context.Context) error {
	page := r.svc.Page(ctx, r.analysis, r.page)
	r.page++
	if err := r.exporter.WritePage(page, r.analysis.Store.Capabilities()); err != nil {
		return err
	}

	if page.Done {
		return r.askStartOver(ctx, endOfDataAsk)
	}

	yes, err := r.askYesNo(moreRowsAsk)
	if err != nil {
		return err
	}
	if yes {
		return r.fire(ctx, EventShowRows)
	}
	return r.askStartOver(ctx, startOverAsk)
}

func (r *Runner) report(ctx context.Context) error {
	report, err := r.svc.Report(ctx, r.analysis)
	if err != nil {
		return err
	}
	if err := r.exporter.WriteReport(report); err != nil {
		return err
	}

	yes, err := r.askYesNo(restartAsk)
	if err != nil {
		return err
	}
	if yes {
		return r.fire(ctx, EventRestart)
	}
	return r.fire(ctx, EventQuit)
}

// askStartOver asks whether to restart; "no" proceeds to the statistics
func (r *Runner) askStartOver(ctx context.Context, question string) error {
	yes, err := r.askYesNo(question)
	if err != nil {
		return err
	}
	if yes {
		return r.fire(ctx, EventRestart)
	}
	return r.fire(ctx, EventProceed)
}

func (r *Runner) fire(ctx context.Context, ev Event) error {
	from := r.machine.State()
	to, err := r.machine.Fire(ev)
	if err != nil {
		return err
	}
	if ev == EventRestart {
		r.analysis = nil
		r.page = 0
	}
	r.logger.DebugContext(ctx, "Session transition",
		slog.String("from", from.String()),
		slog.String("event", ev.String()),
		slog.String("to", to.String()))
	return nil
}

// askValid repeats question until check accepts the answer
func (r *Runner) askValid(kind, question string, check func(string) error) (string, error) {
	for {
		answer, err := r.ask(question)
		if err != nil {
			return "", err
		}
		if err := check(answer); err != nil {
			r.logger.Debug("Rejected answer", slog.String("kind", kind), slog.String("error", err.Error()))
			r.printf(invalidAnswer, kind)
			continue
		}
		return answer, nil
	}
}

// askYesNo treats anything other than a yes answer as no
func (r *Runner) askYesNo(question string) (bool, error) {
	answer, err := r.ask(question)
	if err != nil {
		return false, err
	}
	return slices.Contains(config.YesAnswers, answer), nil
}

func (r *Runner) ask(question string) (string, error) {
	r.printf("%s", question)
	line, err := r.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// cityPrompt lists the configured regions: "Choose a city: Chicago, New York City, or Washington: "
func cityPrompt(regions []string) string {
	caser := cases.Title(language.English)
	names := make([]string, len(regions))
	for i, region := range regions {
		names[i] = caser.String(region)
	}

	var list string
	switch len(names) {
	case 0:
	case 1:
		list = names[0]
	case 2:
		list = names[0] + " or " + names[1]
	default:
		list = strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
	}
	return "Choose a city: " + list + ": "
}
