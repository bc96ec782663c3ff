//go:build darwin

package capture

// PreloadVar names the loader variable that keeps descendants
// instrumented. The darwin loader wants the flat-namespace switch set
// alongside it for interposition to take.
const PreloadVar = "DYLD_INSERT_LIBRARIES"

// FlatNamespaceVar forces flat symbol resolution in descendants.
const FlatNamespaceVar = "DYLD_FORCE_FLAT_NAMESPACE"

// Names lists the captured variables in snapshot order.
func Names() []string {
	return []string{TargetDirVar, PreloadVar, FlatNamespaceVar}
}
