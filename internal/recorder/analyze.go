package recorder

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/ppiankov/eyec/internal/models"
)

var sourceExtensions = []string{".c", ".cc", ".cpp", ".cxx", ".cx", ".c++"}

var compilerNames = []string{"cc", "c++", "gcc", "g++"}

// Observation is what a single tool invocation adds to a report
type Observation struct {
	Files []models.File
	Stage models.Stage
}

// Apply appends the observation to report
func (o Observation) Apply(report *models.Report) {
	report.AddStage(o.Stage)
	report.AddFiles(o.Files...)
}

// Analyze classifies one invocation of program with args (argv without the
// program itself). It returns false when the invocation produces nothing
// worth recording. duration is in microseconds.
func Analyze(program string, args []string, duration float64) (Observation, bool) {
	name := filepath.Base(program)
	switch {
	case isArchiver(name):
		return archive(args, duration), true
	case isCompiler(name):
		if contains(args, "-c") {
			return compilation(args, duration), true
		}
		return link(args, duration)
	default:
		return Observation{}, false
	}
}

func compilation(args []string, duration float64) Observation {
	var inputs []models.File
	for _, a := range args {
		if hasAnySuffix(a, sourceExtensions) {
			inputs = append(inputs, newFile(a, models.Source))
		}
	}

	var outputs []models.File
	if len(inputs) == 1 {
		if object, ok := flagValue(args, "-o"); ok {
			outputs = append(outputs, newFile(object, models.Object))
		}
	}

	return observe(models.StageCompilation, inputs, outputs, duration)
}

func link(args []string, duration float64) (Observation, bool) {
	executable, ok := flagValue(args, "-o")
	if !ok {
		return Observation{}, false
	}

	var implicit, explicit, objects []models.File
	for _, a := range args {
		switch {
		case isLibraryFlag(a):
			implicit = append(implicit, newFile("lib"+a[2:]+".a", models.Library))
		case strings.HasSuffix(a, ".a"):
			explicit = append(explicit, newFile(a, models.Library))
		case strings.HasSuffix(a, ".o"):
			objects = append(objects, newFile(a, models.Object))
		}
	}

	inputs := append(append(implicit, explicit...), objects...)
	return observe(models.StageLink, inputs, []models.File{newFile(executable, models.Executable)}, duration), true
}

func archive(args []string, duration float64) Observation {
	var libraries, objects []models.File
	for _, a := range args {
		switch {
		case strings.HasSuffix(a, ".a"):
			libraries = append(libraries, newFile(a, models.Library))
		case strings.HasSuffix(a, ".o"):
			objects = append(objects, newFile(a, models.Object))
		}
	}
	return observe(models.StageArchiving, objects, libraries, duration)
}

func observe(kind models.StageType, inputs, outputs []models.File, duration float64) Observation {
	stage := models.Stage{
		ID:       uuid.NewString(),
		Inputs:   ids(inputs),
		Outputs:  ids(outputs),
		Type:     kind,
		Duration: duration,
	}
	files := make([]models.File, 0, len(inputs)+len(outputs))
	files = append(files, outputs...)
	files = append(files, inputs...)
	return Observation{Files: files, Stage: stage}
}

func newFile(name string, kind models.FileType) models.File {
	return models.File{ID: models.FileID(uuid.NewString()), Name: name, Type: kind}
}

func ids(files []models.File) []models.FileID {
	out := make([]models.FileID, 0, len(files))
	for _, f := range files {
		out = append(out, f.ID)
	}
	return out
}

// isArchiver matches ar, gcc-ar, llvm-ar and versioned names like
// x86_64-linux-gnu-gcc-ar-13. It must be checked before isCompiler since
// gcc-ar also contains "cc".
func isArchiver(name string) bool {
	trimmed := strings.TrimRight(name, "0123456789.")
	if trimmed != name {
		trimmed = strings.TrimSuffix(trimmed, "-")
	}
	return strings.HasSuffix(trimmed, "ar")
}

func isCompiler(name string) bool {
	for _, c := range compilerNames {
		if strings.Contains(name, c) {
			return true
		}
	}
	return false
}

// isLibraryFlag matches -lfoo style arguments
func isLibraryFlag(a string) bool {
	if len(a) <= 2 || !strings.HasPrefix(a, "-l") {
		return false
	}
	r := rune(a[2])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func flagValue(args []string, flag string) (string, bool) {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1], true
		}
	}
	return "", false
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
