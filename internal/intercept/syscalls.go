package intercept

import "syscall"

// SpawnAttr carries the child-process attributes a spawn call forwards to
// the genuine implementation untouched.
type SpawnAttr struct {
	// Dir, when non-empty, becomes the child's working directory.
	Dir string
	// Files are the descriptors handed to the child in fd order. Nil
	// inherits the caller's stdin, stdout, and stderr.
	Files []uintptr
	// Sys carries platform-specific process attributes.
	Sys *syscall.SysProcAttr
}

// Syscalls is the next resolution scope: the genuine entry points the
// wrappers delegate to. System returns the OS-backed table; tests install
// recording fakes. A nil entry means the scope has no definition for that
// name, which is fatal at call time, armed or not.
//
// The table carries only the primitive forms. The surface's remaining
// variants decompose onto these: list forms collect their arguments
// first, and no-environment forms pass the ambient environment.
type Syscalls struct {
	// Execve replaces the process image with path, resolved as given.
	Execve func(path string, argv, env []string) error
	// Execvpe replaces the process image with file resolved against PATH.
	Execvpe func(file string, argv, env []string) error
	// ExecvP replaces the process image with file resolved against an
	// explicit search path instead of PATH.
	ExecvP func(file, searchPath string, argv, env []string) error
	// Spawn creates a child process from path and returns its pid.
	Spawn func(path string, argv, env []string, attr *SpawnAttr) (int, error)
	// Spawnp is Spawn with PATH resolution of file.
	Spawnp func(file string, argv, env []string, attr *SpawnAttr) (int, error)
}
