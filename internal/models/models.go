package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FileType classifies a file taking part in a build
type FileType int

const (
	Unclassified FileType = iota
	Source
	Object
	Library
	Executable
)

var fileTypeNames = map[FileType]string{
	Source:     "Source",
	Object:     "Object",
	Library:    "Library",
	Executable: "Executable",
}

// String returns the report spelling of the type, or "" when unclassified
func (t FileType) String() string {
	return fileTypeNames[t]
}

// ParseFileType maps a report type name to a FileType.
// Unknown names map to Unclassified.
func ParseFileType(name string) FileType {
	for t, n := range fileTypeNames {
		if n == name {
			return t
		}
	}
	return Unclassified
}

// MarshalJSON implements json.Marshaler
func (t FileType) MarshalJSON() ([]byte, error) {
	if t == Unclassified {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler. Anything that is not a known
// type name, including null and non-string values, decodes to Unclassified.
func (t *FileType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		*t = Unclassified
		return nil
	}
	*t = ParseFileType(name)
	return nil
}

// StageType classifies the tool invocation behind a stage
type StageType string

const (
	StageCompilation StageType = "Compilation"
	StageLink        StageType = "Link"
	StageArchiving   StageType = "Archiving"
)

// FileID identifies a file within a report. Reports may use either
// strings or numbers; both are kept in their textual form.
type FileID string

// UnmarshalJSON implements json.Unmarshaler
func (id *FileID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FileID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("file id must be a string or number, got %s", data)
	}
	*id = FileID(n.String())
	return nil
}
