package models

import (
	"math"
	"strconv"
)

// Report is the build report written by the recorder and read by the renderer
type Report struct {
	Files  []File  `json:"files"`
	Stages []Stage `json:"stages"`
}

// File is a single artifact seen during a build
type File struct {
	ID   FileID   `json:"id"`
	Name string   `json:"name"`
	Type FileType `json:"type,omitempty"`
}

// Stage is one tool invocation turning inputs into outputs.
// Duration is in microseconds.
type Stage struct {
	ID       string    `json:"id,omitempty"`
	Inputs   []FileID  `json:"inputs"`
	Outputs  []FileID  `json:"outputs"`
	Type     StageType `json:"type,omitempty"`
	Duration float64   `json:"duration"`
}

// Output returns the primary output of the stage. Additional outputs are ignored.
func (s Stage) Output() (FileID, bool) {
	if len(s.Outputs) == 0 {
		return "", false
	}
	return s.Outputs[0], true
}

// Index maps identities to files. The first declaration of an identity wins.
func (r *Report) Index() map[FileID]*File {
	index := make(map[FileID]*File, len(r.Files))
	for i := range r.Files {
		f := &r.Files[i]
		if _, ok := index[f.ID]; ok {
			continue
		}
		index[f.ID] = f
	}
	return index
}

// AddFiles appends files to the report
func (r *Report) AddFiles(files ...File) {
	r.Files = append(r.Files, files...)
}

// AddStage appends a stage to the report
func (r *Report) AddStage(stage Stage) {
	r.Stages = append(r.Stages, stage)
}

// FormatDuration renders a microsecond duration as whole milliseconds, e.g. "12ms"
func FormatDuration(micros float64) string {
	return strconv.FormatFloat(math.Round(micros/1000), 'f', 0, 64) + "ms"
}
