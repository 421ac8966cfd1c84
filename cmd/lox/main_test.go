package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.lox")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

func TestRunFileCleanScript(t *testing.T) {
	path := writeScript(t, `print 1 + 2;`)
	require.Equal(t, exitOK, runFile(path))
}

func TestRunFileSyntaxErrorExitsCompile(t *testing.T) {
	path := writeScript(t, `print 1`)
	require.Equal(t, exitCompile, runFile(path))
}

func TestRunFileResolveErrorExitsCompile(t *testing.T) {
	path := writeScript(t, `{ var a = a; }`)
	require.Equal(t, exitCompile, runFile(path))
}

func TestRunFileRuntimeErrorExitsRuntime(t *testing.T) {
	path := writeScript(t, `print "a" - 1;`)
	require.Equal(t, exitRuntime, runFile(path))
}

func TestRunFileMissingFileExitsCompile(t *testing.T) {
	require.Equal(t, exitCompile, runFile(filepath.Join(t.TempDir(), "nope.lox")))
}
