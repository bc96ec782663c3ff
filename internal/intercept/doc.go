// Package intercept implements the process-creation interception surface:
// one wrapper per exec- and spawn-family entry point. Each wrapper records
// the call as a report file while the engine is armed, then delegates to
// the genuine implementation with the captured instrumentation variables
// forced into the child environment, so descendants stay observed.
//
// The genuine implementations form the next resolution scope, expressed as
// a Syscalls table. System returns the OS-backed table; tests install
// recording fakes. Wrappers and the genuine table are two providers of the
// same named operations, and a wrapper never re-enters itself through the
// table.
package intercept
