// Package execution defines the on-disk contract between the interception
// engine and downstream collectors: one JSON record per intercepted
// process-creation call, one file per record.
package execution

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FilePrefix starts the name of every report file in an output directory.
// The rest of the name is an opaque uniqueness suffix.
const FilePrefix = "execution."

// Record is one intercepted process-creation call.
type Record struct {
	// PID identifies the calling process, not the created one.
	PID int `json:"pid"`
	// Cmd is the complete argument vector, argv[0] included.
	Cmd []string `json:"cmd"`
	// Cwd is the caller's working directory at call time.
	Cwd string `json:"cwd"`
}

// IsReportName reports whether a file name looks like a report emitted by
// the engine.
func IsReportName(name string) bool {
	return strings.HasPrefix(name, FilePrefix) && len(name) > len(FilePrefix)
}

// Parse decodes a single report record. Unknown fields and trailing
// content are rejected.
func Parse(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return Record{}, fmt.Errorf("parse execution record: %w", err)
	}
	if dec.More() {
		return Record{}, fmt.Errorf("parse execution record: trailing content after record")
	}
	return rec, nil
}
