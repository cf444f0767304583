package recorder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/ppiankov/eyec/internal/loader"
)

// ExitError carries the exit status of a wrapped program that failed
type ExitError struct {
	Program string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Program, e.Code)
}

// Recorder runs a build tool and appends what it observed to a report
type Recorder struct {
	ReportPath string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// PathList and Self drive program lookup; they default to $PATH and
	// the running executable.
	PathList string
	Self     string
}

// New creates a recorder appending to reportPath with the process stdio
func New(reportPath string) *Recorder {
	self, err := os.Executable()
	if err != nil {
		slog.Debug("could not determine own executable", slog.String("error", err.Error()))
	}
	return &Recorder{
		ReportPath: reportPath,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		PathList:   os.Getenv("PATH"),
		Self:       self,
	}
}

// Run executes argv through the real program found on PATH, then records
// the invocation. The report is updated even when the program fails; the
// failure is then returned as *ExitError.
func (r *Recorder) Run(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return errors.New("no program to run: expected a compiler command")
	}

	program, err := FindProgram(argv[0], r.PathList, r.Self)
	if err != nil {
		return err
	}
	args := argv[1:]
	slog.Debug("running wrapped program", slog.String("program", program), slog.Any("args", args))

	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	var exitErr *exec.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		return fmt.Errorf("failed to start %s: %w", program, runErr)
	}

	if err := r.record(program, args, float64(elapsed.Microseconds())); err != nil {
		return err
	}

	if exitErr != nil {
		return &ExitError{Program: program, Code: exitErr.ExitCode()}
	}
	return nil
}

func (r *Recorder) record(program string, args []string, micros float64) error {
	obs, ok := Analyze(program, args, micros)
	if !ok {
		slog.Debug("invocation not recorded", slog.String("program", program))
		return nil
	}

	report := loader.LoadOrEmpty(r.ReportPath)
	obs.Apply(report)
	if err := loader.Save(r.ReportPath, report); err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}

	slog.Debug("stage recorded",
		slog.String("report", r.ReportPath),
		slog.String("type", string(obs.Stage.Type)),
		slog.Int("inputs", len(obs.Stage.Inputs)),
		slog.Int("outputs", len(obs.Stage.Outputs)),
	)
	return nil
}
