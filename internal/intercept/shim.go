package intercept

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/agentsh/execlog/internal/envvec"
	"github.com/agentsh/execlog/internal/report"
	"github.com/agentsh/execlog/internal/strarr"
)

// Options injects the process seams a Shim touches. Zero fields use the
// real process.
type Options struct {
	// Environ supplies the ambient environment for variants that take
	// none. Defaults to os.Environ.
	Environ func() []string
	// Stderr receives fatal diagnostics. Defaults to os.Stderr.
	Stderr io.Writer
	// Exit terminates the process on fatal instrumentation errors.
	// Defaults to os.Exit.
	Exit func(code int)
}

// Shim is the intercepting provider of the process-creation surface.
// Every method reports the call while state is armed, then delegates to
// the genuine entry point with the captured bindings forced into the
// child environment. Methods are safe for concurrent use.
type Shim struct {
	state *State
	sys   Syscalls

	writerOnce sync.Once
	writer     *report.Writer

	environ func() []string
	stderr  io.Writer
	exit    func(int)
}

// New builds a Shim over state that delegates to sys. opts may be nil.
func New(state *State, sys Syscalls, opts *Options) *Shim {
	sh := &Shim{
		state:   state,
		sys:     sys,
		environ: os.Environ,
		stderr:  os.Stderr,
		exit:    os.Exit,
	}
	if opts != nil {
		if opts.Environ != nil {
			sh.environ = opts.Environ
		}
		if opts.Stderr != nil {
			sh.stderr = opts.Stderr
		}
		if opts.Exit != nil {
			sh.exit = opts.Exit
		}
	}
	return sh
}

// Execve reports the call, then replaces the process image via the
// genuine execve. Like every exec variant, it returns only when the
// genuine call failed, and returns that call's error unchanged.
func (sh *Shim) Execve(path string, argv, env []string) error {
	sh.report(argv)
	sh.need("execve", sh.sys.Execve != nil)
	return sh.sys.Execve(path, argv, sh.childEnv(env))
}

// Execv is Execve with the ambient environment.
func (sh *Shim) Execv(path string, argv []string) error {
	sh.report(argv)
	sh.need("execve", sh.sys.Execve != nil)
	return sh.sys.Execve(path, argv, sh.ambientEnv())
}

// Execvpe reports the call, then replaces the process image with file
// resolved against PATH.
func (sh *Shim) Execvpe(file string, argv, env []string) error {
	sh.report(argv)
	sh.need("execvpe", sh.sys.Execvpe != nil)
	return sh.sys.Execvpe(file, argv, sh.childEnv(env))
}

// Execvp is Execvpe with the ambient environment.
func (sh *Shim) Execvp(file string, argv []string) error {
	sh.report(argv)
	sh.need("execvpe", sh.sys.Execvpe != nil)
	return sh.sys.Execvpe(file, argv, sh.ambientEnv())
}

// ExecvP resolves file against searchPath instead of PATH, with the
// ambient environment.
func (sh *Shim) ExecvP(file, searchPath string, argv []string) error {
	sh.report(argv)
	sh.need("execvP", sh.sys.ExecvP != nil)
	return sh.sys.ExecvP(file, searchPath, argv, sh.ambientEnv())
}

// Execl execs path with an inline argument list and the ambient
// environment.
func (sh *Shim) Execl(path string, arg string, rest ...string) error {
	argv := strarr.FromList(arg, rest...)
	sh.report(argv)
	sh.need("execve", sh.sys.Execve != nil)
	return sh.sys.Execve(path, argv, sh.ambientEnv())
}

// Execlp is Execl with PATH resolution of file.
func (sh *Shim) Execlp(file string, arg string, rest ...string) error {
	argv := strarr.FromList(arg, rest...)
	sh.report(argv)
	sh.need("execvpe", sh.sys.Execvpe != nil)
	return sh.sys.Execvpe(file, argv, sh.ambientEnv())
}

// Execle is Execl with an explicit child environment. env comes before
// the argument list because the variadic tail must come last.
func (sh *Shim) Execle(path string, env []string, arg string, rest ...string) error {
	argv := strarr.FromList(arg, rest...)
	sh.report(argv)
	sh.need("execve", sh.sys.Execve != nil)
	return sh.sys.Execve(path, argv, sh.childEnv(env))
}

// Spawn reports the call, then creates a child process via the genuine
// spawn and returns its pid. A nil env spawns with an empty environment,
// plus whatever bindings are forced.
func (sh *Shim) Spawn(path string, argv, env []string, attr *SpawnAttr) (int, error) {
	sh.report(argv)
	sh.need("spawn", sh.sys.Spawn != nil)
	return sh.sys.Spawn(path, argv, sh.childEnv(env), attr)
}

// Spawnp is Spawn with PATH resolution of file.
func (sh *Shim) Spawnp(file string, argv, env []string, attr *SpawnAttr) (int, error) {
	sh.report(argv)
	sh.need("spawnp", sh.sys.Spawnp != nil)
	return sh.sys.Spawnp(file, argv, sh.childEnv(env), attr)
}

// StartCommand reports and starts an os/exec command, forcing the
// captured bindings into its environment. A nil cmd.Env starts from the
// ambient environment, the same base exec.Cmd itself would use.
func (sh *Shim) StartCommand(cmd *exec.Cmd) error {
	sh.report(cmd.Args)
	env := cmd.Env
	if env == nil {
		env = sh.environ()
	}
	cmd.Env = sh.childEnv(env)
	return cmd.Start()
}

// report writes one report file when armed. A failure to report is fatal,
// never a silent gap. It reads the published snapshot exactly once so a
// concurrent Finalize cannot tear the armed check from the target
// directory.
func (sh *Shim) report(argv []string) {
	env := sh.state.Environment()
	if !env.Complete() {
		return
	}
	sh.writerOnce.Do(func() {
		sh.writer = report.NewWriter(env.TargetDir())
	})
	if err := sh.writer.Report(argv); err != nil {
		sh.fatal(err)
	}
}

// need aborts unless the named genuine entry point resolved. Resolution
// failures are fatal even when disarmed.
func (sh *Shim) need(name string, ok bool) {
	if !ok {
		sh.fatal(fmt.Errorf("resolve %s: no genuine implementation in next scope", name))
	}
}

// fatal reports the cause on stderr and terminates the process. It does
// not return; the panic fires only when a test exit seam returns.
func (sh *Shim) fatal(err error) {
	fmt.Fprintf(sh.stderr, "execlog: %v\n", err)
	sh.exit(1)
	panic(err)
}

// childEnv builds the environment handed to the genuine call: the
// caller's vector with every captured binding forced in, position
// preserved for entries that already exist.
func (sh *Shim) childEnv(env []string) []string {
	return envvec.Apply(env, sh.state.Environment().Pairs())
}

// ambientEnv is childEnv over the process's own environment, for variants
// that take none.
func (sh *Shim) ambientEnv() []string {
	return sh.childEnv(sh.environ())
}
