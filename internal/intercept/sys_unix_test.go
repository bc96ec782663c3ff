//go:build unix

package intercept

import (
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemTableComplete(t *testing.T) {
	sys := System()
	require.NotNil(t, sys.Execve)
	require.NotNil(t, sys.Execvpe)
	require.NotNil(t, sys.ExecvP)
	require.NotNil(t, sys.Spawn)
	require.NotNil(t, sys.Spawnp)
}

func TestLookPathIn(t *testing.T) {
	dir := t.TempDir()
	tool := filepath.Join(dir, "tool")
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\n"), 0o755))

	decoy := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(decoy, "plain"), nil, 0o644))

	t.Run("finds executable on search path", func(t *testing.T) {
		got, err := lookPathIn("tool", decoy+":"+dir)
		require.NoError(t, err)
		assert.Equal(t, tool, got)
	})

	t.Run("skips non-executable files", func(t *testing.T) {
		_, err := lookPathIn("plain", decoy)
		require.ErrorIs(t, err, exec.ErrNotFound)
	})

	t.Run("not found anywhere", func(t *testing.T) {
		_, err := lookPathIn("no-such-tool", decoy+":"+dir)
		require.ErrorIs(t, err, exec.ErrNotFound)
	})

	t.Run("slash bypasses the search", func(t *testing.T) {
		got, err := lookPathIn(tool, "")
		require.NoError(t, err)
		assert.Equal(t, tool, got)
	})

	t.Run("slash to a missing file fails", func(t *testing.T) {
		_, err := lookPathIn(filepath.Join(dir, "missing"), dir)
		require.Error(t, err)
	})

	t.Run("directories never match", func(t *testing.T) {
		sub := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(sub, "tool"), 0o755))
		_, err := lookPathIn("tool", sub)
		require.ErrorIs(t, err, exec.ErrNotFound)
	})
}

func TestSystemSpawnRunsChild(t *testing.T) {
	path, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true not on PATH")
	}

	sys := System()
	pid, err := sys.Spawn(path, []string{"true"}, []string{}, nil)
	require.NoError(t, err)
	require.Greater(t, pid, 0)

	var ws syscall.WaitStatus
	_, err = syscall.Wait4(pid, &ws, 0, nil)
	require.NoError(t, err)
	assert.True(t, ws.Exited())
	assert.Equal(t, 0, ws.ExitStatus())
}

func TestSystemSpawnpResolvesOnPath(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not on PATH")
	}

	sys := System()
	pid, err := sys.Spawnp("true", []string{"true"}, []string{"PATH=" + os.Getenv("PATH")}, nil)
	require.NoError(t, err)

	var ws syscall.WaitStatus
	_, err = syscall.Wait4(pid, &ws, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, ws.ExitStatus())
}

func TestSystemSpawnpNotFound(t *testing.T) {
	sys := System()
	_, err := sys.Spawnp("definitely-not-a-real-command-xyz", []string{"x"}, nil, nil)
	require.Error(t, err)
}

func TestProcAttrDefaults(t *testing.T) {
	pa := procAttr([]string{"A=1"}, nil)
	assert.Equal(t, []string{"A=1"}, pa.Env)
	assert.Equal(t, []uintptr{0, 1, 2}, pa.Files)
	assert.Empty(t, pa.Dir)

	attr := &SpawnAttr{Dir: "/tmp", Files: []uintptr{0}}
	pa = procAttr(nil, attr)
	assert.Equal(t, "/tmp", pa.Dir)
	assert.Equal(t, []uintptr{0}, pa.Files)
}
