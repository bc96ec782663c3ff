// Package report emits one JSON report file per intercepted
// process-creation call.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/agentsh/execlog/pkg/execution"
)

// maxCreateAttempts bounds name-collision retries when creating a report
// file.
const maxCreateAttempts = 100

// Writer writes report files into a single output directory. A Writer is
// stateless between calls; concurrent Reports are safe and end up in
// distinct files.
type Writer struct {
	dir string

	getwd  func() (string, error)
	getpid func() int
	suffix func() string
}

// NewWriter returns a Writer for dir. The directory must already exist.
func NewWriter(dir string) *Writer {
	return &Writer{
		dir:    dir,
		getwd:  os.Getwd,
		getpid: os.Getpid,
		suffix: uuid.NewString,
	}
}

// Report records one process-creation call: the calling process's pid and
// working directory and the full argument vector, as a single JSON object
// in a freshly created file. argv is borrowed only for the duration of
// the call. The file is created before the working directory is read, so
// a failure partway through can leave a truncated file behind; readers
// treat files that do not parse as garbage.
func (w *Writer) Report(argv []string) error {
	f, err := w.create()
	if err != nil {
		return err
	}
	cwd, err := w.getwd()
	if err != nil {
		f.Close()
		return fmt.Errorf("working directory: %w", err)
	}
	if err := writeRecord(f, w.getpid(), argv, cwd); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	return nil
}

// create allocates a uniquely named report file. Exclusive creation is
// the only arbiter against concurrent reporters, in this process or
// cooperating ones; a name collision retries with a fresh suffix.
func (w *Writer) create() (*os.File, error) {
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		name := filepath.Join(w.dir, execution.FilePrefix+w.suffix())
		f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if err == nil {
			return f, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("create report: %w", err)
		}
	}
	return nil, fmt.Errorf("create report in %s: gave up after %d name collisions", w.dir, maxCreateAttempts)
}

// writeRecord streams the record to f: pid first, then each argument
// escaped one at a time, then the working directory. No argument is ever
// concatenated with another in memory. Field order and spacing are part
// of the on-disk contract.
func writeRecord(f io.Writer, pid int, argv []string, cwd string) error {
	bw := bufio.NewWriter(f)
	if _, err := bw.WriteString(`{ "pid": ` + strconv.Itoa(pid) + `, "cmd": [`); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	for i, arg := range argv {
		escaped, err := Escape(arg)
		if err != nil {
			return fmt.Errorf("encode argument %d: %w", i, err)
		}
		sep := " "
		if i > 0 {
			sep = ", "
		}
		if _, err := bw.WriteString(sep + `"` + escaped + `"`); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	closeCmd := ` ], `
	if len(argv) == 0 {
		closeCmd = `], `
	}
	escapedCwd, err := Escape(cwd)
	if err != nil {
		return fmt.Errorf("encode working directory: %w", err)
	}
	if _, err := bw.WriteString(closeCmd + `"cwd": "` + escapedCwd + `" }`); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
