//go:build darwin || linux

// execlog-exec runs a command with process-creation logging applied.
//
// Usage:
//
//	EXECLOG_TARGET_DIR=<dir> execlog-exec <command> [args...]
//
// The wrapper snapshots the instrumentation environment once, records the
// command as an execution.<suffix> report file in the target directory,
// then replaces itself with the command resolved from PATH. The forced
// instrumentation variables follow the command's descendants, so anything
// that re-runs this wrapper keeps reporting into the same directory. With
// EXECLOG_TARGET_DIR unset or empty the wrapper degrades to a plain exec.
//
// Exit codes: 2 usage error, 127 command not found, 126 command found but
// not executable. Fatal reporting errors exit 1 before the exec.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/agentsh/execlog/internal/capture"
	"github.com/agentsh/execlog/internal/intercept"
)

func main() {
	if len(os.Args) < 2 {
		fatalf(2, "usage: execlog-exec <command> [args...]")
	}

	state := intercept.NewState()
	state.Initialize(wrapperLookup)

	shim := intercept.New(state, intercept.System(), nil)

	args := os.Args[1:] // includes the command as args[0]
	err := shim.Execvp(args[0], args)

	// Execvp returns only when the exec failed.
	code := 126
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		code = 127
	}
	fatalf(code, "execlog-exec: exec %s: %v", args[0], err)
}

// wrapperLookup reads the instrumentation variables from the real
// environment, with one twist: the wrapper is itself the preload stage,
// so the loader variables count as present even when the environment
// does not carry them. Only the target directory decides arming.
func wrapperLookup(name string) (string, bool) {
	value, ok := os.LookupEnv(name)
	if !ok && name != capture.TargetDirVar {
		return "", true
	}
	return value, ok
}

func fatalf(code int, format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(code)
}
