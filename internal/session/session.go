package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gradebook/gradebook/internal/compute"
	"github.com/gradebook/gradebook/internal/export"
	"github.com/gradebook/gradebook/internal/ingest"
	"github.com/gradebook/gradebook/internal/report"
	"github.com/gradebook/gradebook/internal/roster"
)

type state int

const (
	stateChooseInput state = iota
	stateManual
	stateFile
	stateAnalyze
	stateExport
	stateChooseRepeat
	stateDone
)

func (s state) String() string {
	switch s {
	case stateChooseInput:
		return "choose_input"
	case stateManual:
		return "manual"
	case stateFile:
		return "file"
	case stateAnalyze:
		return "analyze"
	case stateExport:
		return "export"
	case stateChooseRepeat:
		return "choose_repeat"
	case stateDone:
		return "done"
	default:
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
}

// Options configures a Session.
type Options struct {
	In        io.Reader
	Out       io.Writer
	Aliases   ingest.Aliases
	ExportDir string
	Format    export.Format
	Color     bool
}

// Session is one interactive run of the gradebook. It is not safe for
// concurrent use.
type Session struct {
	in       *bufio.Reader
	out      io.Writer
	analyzer *compute.Analyzer
	log      zerolog.Logger
	opts     Options
	palette  report.Palette

	// per-analysis data, reset on every pass through chooseInput
	roster *roster.Roster
	result *compute.Result
}

// New returns a Session reading answers from opts.In and writing prompts and
// reports to opts.Out.
func New(opts Options, analyzer *compute.Analyzer, log zerolog.Logger) *Session {
	if opts.Format == "" {
		opts.Format = export.FormatCSV
	}
	return &Session{
		in:       bufio.NewReader(opts.In),
		out:      opts.Out,
		analyzer: analyzer,
		log:      log.With().Str("component", "session").Logger(),
		opts:     opts,
		palette:  report.NewPalette(opts.Color),
	}
}

// Run drives the state machine until the user exits, input ends or ctx is
// cancelled.
func (s *Session) Run(ctx context.Context) error {
	s.welcome()

	st := stateChooseInput
	for st != stateDone {
		if err := ctx.Err(); err != nil {
			return err
		}

		next, err := s.step(st)
		if errors.Is(err, io.EOF) {
			s.log.Debug().Str("state", st.String()).Msg("session: input closed")
			s.printf("\n")
			return nil
		}
		if err != nil {
			return err
		}
		s.log.Debug().Str("from", st.String()).Str("to", next.String()).Msg("session: transition")
		st = next
	}
	return nil
}

func (s *Session) step(st state) (state, error) {
	switch st {
	case stateChooseInput:
		return s.chooseInput()
	case stateManual:
		return s.manual()
	case stateFile:
		return s.file()
	case stateAnalyze:
		return s.analyze()
	case stateExport:
		return s.export()
	case stateChooseRepeat:
		return s.chooseRepeat()
	default:
		return stateDone, fmt.Errorf("session: unexpected state %v", st)
	}
}

func (s *Session) welcome() {
	s.printf("\n%s\n", report.Rule("="))
	s.printf("%s\n", s.palette.Heading.Sprint("       WELCOME TO GRADEBOOK ANALYZER"))
	s.printf("%s\n", report.Rule("="))
	s.printf("\nThis tool helps you analyze student grades efficiently!\n")
	s.printf("\nFeatures:\n")
	s.printf("  • Calculate grade statistics (mean, median, min, max)\n")
	s.printf("  • Assign letter grades automatically\n")
	s.printf("  • Filter pass/fail students\n")
	s.printf("  • Generate formatted grade reports\n\n")
}

func (s *Session) chooseInput() (state, error) {
	s.roster, s.result = nil, nil
	for {
		s.printf("How would you like to input student data?\n")
		s.printf("1. Manual entry (type names and marks)\n")
		s.printf("2. Load from file (CSV, TSV or XLSX)\n")
		choice, err := s.ask("\nEnter your choice (1 or 2): ")
		if err != nil {
			return stateDone, err
		}
		switch choice {
		case "1":
			return stateManual, nil
		case "2":
			return stateFile, nil
		}
		s.fail("Invalid choice. Please enter 1 or 2.\n")
	}
}

func (s *Session) manual() (state, error) {
	s.printf("\n--- MANUAL DATA ENTRY ---\n\n")

	count, err := s.askCount()
	if err != nil {
		return stateDone, err
	}
	s.printf("\n")

	r := roster.New()
	for i := 1; i <= count; i++ {
		name, score, err := s.askRecord(i)
		if err != nil {
			return stateDone, err
		}
		r.Put(name, score)
		s.ok("Added %s: %g\n", name, score)
	}

	s.roster = r
	return stateAnalyze, nil
}

func (s *Session) askCount() (int, error) {
	for {
		answer, err := s.ask("How many students are in the class? ")
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(answer)
		switch {
		case convErr != nil:
			s.fail("Please enter a valid number.\n")
		case n <= 0:
			s.fail("Please enter a positive number.\n")
		default:
			return n, nil
		}
	}
}

// askRecord prompts until student i has a non-empty name and in-range marks.
func (s *Session) askRecord(i int) (string, float64, error) {
	for {
		name, err := s.ask(fmt.Sprintf("Student %d - Enter name: ", i))
		if err != nil {
			return "", 0, err
		}
		if name == "" {
			s.fail("Name cannot be empty.\n")
			continue
		}

		answer, err := s.ask(fmt.Sprintf("Enter marks for %s: ", name))
		if err != nil {
			return "", 0, err
		}
		score, err := ingest.ParseScore(answer)
		if err != nil {
			s.fail("%s.\n", capitalize(err.Error()))
			continue
		}
		if err := ingest.ValidateRecord(name, score); err != nil {
			s.fail("%s.\n", err)
			continue
		}
		return name, score, nil
	}
}

func (s *Session) file() (state, error) {
	s.printf("\n--- FILE IMPORT ---\n\n")
	for {
		path, err := s.ask("Enter file path (e.g., students.csv): ")
		if err != nil {
			return stateDone, err
		}
		if path == "" {
			s.fail("File path cannot be empty.\n")
			continue
		}

		ld, err := ingest.LoadFile(path, s.opts.Aliases)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			s.fail("File '%s' not found.\n", path)
			continue
		case errors.Is(err, ingest.ErrEmptyFile):
			s.fail("File is empty.\n")
			continue
		case errors.Is(err, ingest.ErrTooFewColumns):
			s.fail("File must have at least 2 columns (name and marks).\n")
			continue
		case errors.Is(err, ingest.ErrNoRecords):
			s.fail("No valid student records found in file.\n")
			continue
		case err != nil:
			s.log.Warn().Err(err).Str("path", path).Msg("session: import failed")
			s.fail("Error reading file: %v\n", err)
			continue
		}

		s.log.Info().Str("path", path).Int("students", ld.Roster.Len()).
			Int("skipped", ld.Skipped).Str("name_col", ld.NameCol).
			Str("score_col", ld.ScoreCol).Msg("session: file imported")

		s.ok("Successfully loaded %d students from %s\n", ld.Roster.Len(), path)
		if ld.Skipped > 0 {
			s.printf("  (%d invalid rows skipped)\n", ld.Skipped)
		}
		s.printf("\n")
		s.roster = ld.Roster
		return stateAnalyze, nil
	}
}

func (s *Session) analyze() (state, error) {
	res, err := s.analyzer.Analyze(s.roster)
	if err != nil {
		s.log.Warn().Err(err).Msg("session: analysis rejected")
		s.fail("No student data available for analysis.\n")
		return stateChooseRepeat, nil
	}
	s.result = res

	if err := report.Render(s.out, res, report.Options{Color: s.opts.Color}); err != nil {
		return stateDone, fmt.Errorf("session: render report: %w", err)
	}
	return stateExport, nil
}

func (s *Session) export() (state, error) {
	prompt := fmt.Sprintf("Would you like to export results to %s? (yes/no): ", strings.ToUpper(string(s.opts.Format)))
	want, err := s.askYesNo(prompt)
	if err != nil {
		return stateDone, err
	}
	if want {
		if err := s.exportFile(); err != nil {
			return stateDone, err
		}
	}
	return stateChooseRepeat, nil
}

// exportFile asks for a filename, confirms overwrites and writes the file.
// Write failures are reported to the user, not returned.
func (s *Session) exportFile() error {
	format := s.opts.Format
	var path string
	for path == "" {
		raw, err := s.ask(fmt.Sprintf("\nEnter the filename for export (without %s): ", format.Ext()))
		if err != nil {
			return err
		}
		name, err := export.Filename(raw, format)
		if err != nil {
			s.fail("Filename cannot be empty.\n")
			continue
		}
		path = export.Resolve(s.opts.ExportDir, name)
	}

	if export.Exists(path) {
		overwrite, err := s.confirm(fmt.Sprintf("File '%s' already exists. Overwrite? (yes/no): ", path))
		if err != nil {
			return err
		}
		if !overwrite {
			s.fail("Export cancelled.\n")
			return nil
		}
	}

	if err := export.ToFile(path, format, s.result, true); err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("session: export failed")
		s.fail("Error exporting results: %v\n", err)
		return nil
	}
	s.log.Info().Str("path", path).Str("format", string(format)).
		Str("run_id", s.result.RunID).Msg("session: results exported")
	s.ok("Results successfully exported to '%s'\n", path)
	return nil
}

func (s *Session) chooseRepeat() (state, error) {
	for {
		s.printf("\n%s\n", report.Rule("-"))
		s.printf("What would you like to do?\n")
		s.printf("1. Analyze another set of grades\n")
		s.printf("2. Exit program\n")
		choice, err := s.ask("\nEnter your choice (1 or 2): ")
		if err != nil {
			return stateDone, err
		}
		switch choice {
		case "1":
			s.printf("\n")
			return stateChooseInput, nil
		case "2":
			s.printf("\n%s\n", report.Rule("="))
			s.printf("Thank you for using GradeBook Analyzer!\n")
			s.printf("%s\n\n", report.Rule("="))
			return stateDone, nil
		}
		s.fail("Invalid choice. Please enter 1 or 2.\n")
	}
}
