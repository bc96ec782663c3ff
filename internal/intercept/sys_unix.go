//go:build unix

package intercept

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

// System returns the OS-backed resolution scope.
func System() Syscalls {
	return Syscalls{
		Execve:  sysExecve,
		Execvpe: sysExecvpe,
		ExecvP:  sysExecvP,
		Spawn:   sysSpawn,
		Spawnp:  sysSpawnp,
	}
}

func sysExecve(path string, argv, env []string) error {
	return unix.Exec(path, argv, env)
}

func sysExecvpe(file string, argv, env []string) error {
	path, err := exec.LookPath(file)
	if err != nil {
		return err
	}
	return unix.Exec(path, argv, env)
}

func sysExecvP(file, searchPath string, argv, env []string) error {
	path, err := lookPathIn(file, searchPath)
	if err != nil {
		return err
	}
	return unix.Exec(path, argv, env)
}

func sysSpawn(path string, argv, env []string, attr *SpawnAttr) (int, error) {
	return syscall.ForkExec(path, argv, procAttr(env, attr))
}

func sysSpawnp(file string, argv, env []string, attr *SpawnAttr) (int, error) {
	path, err := exec.LookPath(file)
	if err != nil {
		return 0, err
	}
	return syscall.ForkExec(path, argv, procAttr(env, attr))
}

// procAttr lowers env and a SpawnAttr onto syscall.ProcAttr. Nil Files
// inherits the caller's stdio.
func procAttr(env []string, attr *SpawnAttr) *syscall.ProcAttr {
	pa := &syscall.ProcAttr{
		Env:   env,
		Files: []uintptr{0, 1, 2},
	}
	if attr == nil {
		return pa
	}
	pa.Dir = attr.Dir
	if attr.Files != nil {
		pa.Files = attr.Files
	}
	pa.Sys = attr.Sys
	return pa
}

// lookPathIn resolves file against an explicit colon-separated search
// path. A file containing a slash is tried directly without a search,
// matching PATH-resolution convention. Empty path elements mean the
// current directory.
func lookPathIn(file, searchPath string) (string, error) {
	if strings.Contains(file, "/") {
		if err := unix.Access(file, unix.X_OK); err != nil {
			return "", &exec.Error{Name: file, Err: err}
		}
		return file, nil
	}
	for _, dir := range filepath.SplitList(searchPath) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		if unix.Access(candidate, unix.X_OK) == nil {
			return candidate, nil
		}
	}
	return "", &exec.Error{Name: file, Err: exec.ErrNotFound}
}
