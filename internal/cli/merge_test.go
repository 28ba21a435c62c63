// Package cli tests the permkit merge command end to end through the root command.

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetMergeFlags restores the merge command's flags to their defaults.
// Cobra keeps flag state between Execute calls within one test binary.
func resetMergeFlags(t *testing.T) {
	t.Helper()
	for _, name := range []string{"output", "indent", "compact", "no-backup", "force"} {
		f := mergeCmd.Flags().Lookup(name)
		require.NotNil(t, f, "flag %s", name)
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	}
}

// runRoot executes the root command with the given args and captured streams.
func runRoot(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errBuf bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errBuf.String(), err
}

// chdir switches to dir for the duration of the test, like t.Chdir
// (which needs Go 1.24; this toolchain is older).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestMergeToStdout(t *testing.T) {
	resetMergeFlags(t)
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"model": "opus", "permissions": {"allow": ["x", "y"]}}`)
	b := writeFile(t, dir, "b.json", `{"model": "haiku", "permissions": {"allow": ["y", "z"], "deny": ["d"]}}`)

	stdout, stderr, err := runRoot(t, "merge", a, b, "--compact")

	require.NoError(t, err)
	assert.Equal(t, `{"model":"opus","permissions":{"allow":["x","y","z"],"deny":["d"]}}`+"\n", stdout)
	assert.Contains(t, stderr, "Merging 2 files...")
}

func TestMergeToFile(t *testing.T) {
	resetMergeFlags(t)
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"permissions": {"allow": ["x"]}}`)
	out := filepath.Join(dir, "merged.json")

	stdout, stderr, err := runRoot(t, "merge", a, "-o", out)

	require.NoError(t, err)
	assert.Empty(t, stdout, "document must not leak to stdout when writing a file")
	assert.Contains(t, stderr, "Successfully wrote merged settings to '"+out+"'")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"permissions\": {\n    \"allow\": [\n      \"x\"\n    ],\n    \"deny\": []\n  }\n}\n", string(data))
}

func TestMergeBackupSequence(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"permissions": {"allow": ["x"]}}`)
	out := filepath.Join(dir, "merged.json")

	// First write: no backup, file is new.
	resetMergeFlags(t)
	_, stderr, err := runRoot(t, "merge", a, "-o", out)
	require.NoError(t, err)
	assert.NotContains(t, stderr, "Created backup")

	// Second write: merged.json.bak appears.
	resetMergeFlags(t)
	_, stderr, err = runRoot(t, "merge", a, "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Created backup '"+out+".bak'")
	assert.FileExists(t, out+".bak")

	// Third write: the existing backup is kept, .bak.1 is used.
	resetMergeFlags(t)
	_, stderr, err = runRoot(t, "merge", a, "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Created backup '"+out+".bak.1'")
	assert.FileExists(t, out+".bak.1")

	// --no-backup suppresses the copy.
	resetMergeFlags(t)
	_, stderr, err = runRoot(t, "merge", a, "-o", out, "--no-backup")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "Created backup")
	assert.NoFileExists(t, out+".bak.2")

	// -f is an alias for --no-backup.
	resetMergeFlags(t)
	_, stderr, err = runRoot(t, "merge", a, "-o", out, "-f")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "Created backup")
	assert.NoFileExists(t, out+".bak.2")
}

func TestMergeGlobExpansion(t *testing.T) {
	resetMergeFlags(t)
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	writeFile(t, dir, "gh-a.json", `{"permissions": {"allow": ["a"]}}`)
	writeFile(t, dir, "gh-b.json", `{"permissions": {"allow": ["b"]}}`)
	chdir(t, dir)

	// gh-a.json appears both literally and via the glob; it is merged once.
	stdout, stderr, err := runRoot(t, "merge", "gh-a.json", "gh-*.json", "--compact")

	require.NoError(t, err)
	assert.Contains(t, stderr, "Merging 2 files...")
	assert.Equal(t, `{"permissions":{"allow":["a","b"],"deny":[]}}`+"\n", stdout)
}

func TestMergeGlobWithoutMatches(t *testing.T) {
	resetMergeFlags(t)
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	_, stderr, err := runRoot(t, "merge", "zzz-*.json")

	require.Error(t, err)
	assert.Contains(t, stderr, "Warning: No files match pattern 'zzz-*.json'")
	assert.Contains(t, err.Error(), "no files to merge")
}

func TestMergeMissingFile(t *testing.T) {
	resetMergeFlags(t)
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "absent.json")

	_, _, err := runRoot(t, "merge", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading settings file")
	assert.Contains(t, err.Error(), path)
}

func TestMergeMalformedFile(t *testing.T) {
	resetMergeFlags(t)
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.json", `{broken`)
	out := filepath.Join(dir, "merged.json")
	good := writeFile(t, dir, "good.json", `{"permissions": {"allow": ["a"]}}`)

	_, _, err := runRoot(t, "merge", good, bad, "-o", out)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing settings file")
	assert.NoFileExists(t, out, "partial merges must never be written")
}

func TestMergeIndentFlag(t *testing.T) {
	resetMergeFlags(t)
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"permissions": {"allow": ["x"]}}`)

	stdout, _, err := runRoot(t, "merge", a, "--indent", "4")

	require.NoError(t, err)
	assert.Contains(t, stdout, "\n    \"permissions\"")
}
