package recorder

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/eyec/internal/loader"
	"github.com/ppiankov/eyec/internal/models"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func newTestRecorder(t *testing.T, pathList string) (*Recorder, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &Recorder{
		ReportPath: filepath.Join(t.TempDir(), "eyec-report.json"),
		Stdin:      bytes.NewReader(nil),
		Stdout:     &out,
		Stderr:     &out,
		PathList:   pathList,
	}, &out
}

func TestFindProgramSkipsSelf(t *testing.T) {
	wrapperDir := t.TempDir()
	realDir := t.TempDir()
	self := writeScript(t, wrapperDir, "gcc", "exit 0")
	real := writeScript(t, realDir, "gcc", "exit 0")
	require.NoError(t, os.WriteFile(filepath.Join(wrapperDir, "ar"), []byte("not executable"), 0o644))

	got, err := FindProgram("/some/where/gcc", wrapperDir+string(os.PathListSeparator)+realDir, self)
	require.NoError(t, err)
	assert.Equal(t, resolve(real), got)

	_, err = FindProgram("ar", wrapperDir, self)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFindProgramSkipsSymlinkToSelf(t *testing.T) {
	binDir := t.TempDir()
	linkDir := t.TempDir()
	self := writeScript(t, binDir, "eyec", "exit 0")
	require.NoError(t, os.Symlink(self, filepath.Join(linkDir, "cc")))

	_, err := FindProgram("cc", linkDir, self)
	assert.Error(t, err)
}

func TestRunRecordsCompilation(t *testing.T) {
	bin := t.TempDir()
	writeScript(t, bin, "gcc", `echo compiled "$@"`)
	rec, out := newTestRecorder(t, bin)

	err := rec.Run(context.Background(), []string{"gcc", "-c", "main.c", "-o", "main.o"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "compiled -c main.c -o main.o")

	err = rec.Run(context.Background(), []string{"gcc", "-o", "app", "main.o"})
	require.NoError(t, err)

	report, err := loader.Load(rec.ReportPath)
	require.NoError(t, err)
	require.Len(t, report.Stages, 2)
	assert.Equal(t, models.StageCompilation, report.Stages[0].Type)
	assert.Equal(t, models.StageLink, report.Stages[1].Type)
	assert.GreaterOrEqual(t, report.Stages[0].Duration, float64(0))
	assert.Len(t, report.Files, 4)
}

func TestRunPropagatesExitStatus(t *testing.T) {
	bin := t.TempDir()
	writeScript(t, bin, "gcc", "exit 3")
	rec, _ := newTestRecorder(t, bin)

	err := rec.Run(context.Background(), []string{"gcc", "-c", "broken.c", "-o", "broken.o"})
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected ExitError, got %v", err)
	assert.Equal(t, 3, exitErr.Code)

	report, err := loader.Load(rec.ReportPath)
	require.NoError(t, err)
	assert.Len(t, report.Stages, 1, "failed invocations are still recorded")
}

func TestRunSkipsUnrecognisedPrograms(t *testing.T) {
	bin := t.TempDir()
	writeScript(t, bin, "make", "exit 0")
	rec, _ := newTestRecorder(t, bin)

	require.NoError(t, rec.Run(context.Background(), []string{"make", "all"}))
	_, err := os.Stat(rec.ReportPath)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRunErrors(t *testing.T) {
	rec, _ := newTestRecorder(t, t.TempDir())
	assert.Error(t, rec.Run(context.Background(), nil))

	err := rec.Run(context.Background(), []string{"gcc", "-c", "a.c"})
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
