package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func execRoot(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestRunSeedsAndStepsKernel(t *testing.T) {
	out := execRoot(t, "run", "--steps", "3", "--subject", "sparrow", "--predicate", "bird")
	require.True(t, strings.Contains(out, "seeded Inheritance(sparrow,bird)"))
	require.True(t, strings.Contains(out, "edges in graph"))
}

func TestRunWithoutSeedStillSteps(t *testing.T) {
	// cobra keeps flag values between Execute calls on the shared rootCmd.
	runSeedSubject, runSeedPredicate = "", ""
	out := execRoot(t, "run", "--steps", "1")
	require.False(t, strings.Contains(out, "seeded"))
	require.True(t, strings.Contains(out, "ran"))
}

func TestSnapshotSaveThenShow(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")

	saveOut := execRoot(t, "--state-dir", dir, "snapshot", "save", "--steps", "2")
	require.True(t, strings.Contains(saveOut, "saved snapshot"))

	showOut := execRoot(t, "--state-dir", dir, "snapshot", "show")
	require.True(t, strings.Contains(showOut, "last snapshot:"))
}

func TestInspectUnknownEdgeErrors(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	_, err := func() (string, error) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)
		rootCmd.SetArgs([]string{"--state-dir", dir, "snapshot", "save", "--steps", "1"})
		if err := rootCmd.Execute(); err != nil {
			return "", err
		}
		rootCmd.SetArgs([]string{"--state-dir", dir, "inspect", "Inheritance(nope,nope)"})
		err := rootCmd.Execute()
		return out.String(), err
	}()
	require.Error(t, err)
}
