//go:build unix && !darwin

package capture

// PreloadVar names the loader variable that keeps descendants
// instrumented wherever the system loader honors preloading.
const PreloadVar = "LD_PRELOAD"

// Names lists the captured variables in snapshot order.
func Names() []string {
	return []string{TargetDirVar, PreloadVar}
}
