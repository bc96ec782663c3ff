// Package capture takes the one-time snapshot of the instrumentation
// environment variables that must follow every descendant process.
package capture

import (
	"os"

	"github.com/agentsh/execlog/internal/envvec"
)

// TargetDirVar names the variable holding the report output directory.
// An unset or empty value leaves instrumentation disarmed.
const TargetDirVar = "EXECLOG_TARGET_DIR"

// slot is one captured variable. set distinguishes captured-as-empty from
// absent at snapshot time.
type slot struct {
	name  string
	value string
	set   bool
}

// Environment is an immutable snapshot of the instrumentation variables.
// The zero value is an empty, incomplete snapshot. Concurrent reads of a
// published snapshot are safe.
type Environment struct {
	slots    []slot
	complete bool
}

// Snapshot captures the platform's variable set, in order, through lookup
// (nil means os.LookupEnv). The snapshot is complete only when every
// variable is present; the target directory additionally has to be
// non-empty. An incomplete snapshot still records whatever was present.
func Snapshot(lookup func(string) (string, bool)) Environment {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	env := Environment{complete: true}
	for _, name := range Names() {
		value, ok := lookup(name)
		if name == TargetDirVar && value == "" {
			value, ok = "", false
		}
		if !ok {
			value = ""
			env.complete = false
		}
		env.slots = append(env.slots, slot{name: name, value: value, set: ok})
	}
	return env
}

// Complete reports whether every variable was captured.
func (e Environment) Complete() bool { return e.complete }

// Missing lists the variables the snapshot could not capture, in snapshot
// order.
func (e Environment) Missing() []string {
	var missing []string
	for _, s := range e.slots {
		if !s.set {
			missing = append(missing, s.name)
		}
	}
	return missing
}

// TargetDir returns the captured report directory, or "" when it was not
// captured.
func (e Environment) TargetDir() string {
	for _, s := range e.slots {
		if s.name == TargetDirVar && s.set {
			return s.value
		}
	}
	return ""
}

// Pairs returns the bindings to force into child environments: the
// captured slots in snapshot order, stopping at the first missing one.
// Slots after a gap are not handed out even when they were captured.
func (e Environment) Pairs() []envvec.Pair {
	pairs := make([]envvec.Pair, 0, len(e.slots))
	for _, s := range e.slots {
		if !s.set {
			break
		}
		pairs = append(pairs, envvec.Pair{Key: s.name, Value: s.value})
	}
	return pairs
}
