package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"setrunner/internal/cli"
	"setrunner/internal/config"
	"setrunner/internal/domain"
	"setrunner/internal/exitcodes"
)

func init() {
	color.NoColor = true
}

type fakeViewer struct {
	mu      sync.Mutex
	viewed  []*domain.Summary
	viewErr error
}

func (v *fakeViewer) View(summary *domain.Summary) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.viewed = append(v.viewed, summary)
	return v.viewErr
}

type exitRecorder struct {
	mu    sync.Mutex
	codes []int
}

func (e *exitRecorder) exit(code int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.codes = append(e.codes, code)
}

func mathSets(r Registrar) {
	_ = r.Run(domain.TestSet{
		Name: "math",
		Cases: []domain.TestCase{
			{Name: "add", Execute: func(context.Context, domain.Environment) error { return nil }},
			{Name: "sub", Execute: func(context.Context, domain.Environment) error { return errors.New("2-1 != 0") }},
		},
	})
	_ = r.Run(domain.TestSet{
		Name: "strings",
		Cases: []domain.TestCase{
			{Name: "concat", Execute: func(context.Context, domain.Environment) error { return nil }},
		},
	})
}

type harness struct {
	out, err bytes.Buffer
	exits    exitRecorder
	viewer   fakeViewer
	root     *cobra.Command
}

func newHarness(t *testing.T, register RegisterFunc, args ...string) *harness {
	t.Helper()
	for _, key := range []string{config.EnvSetName, config.EnvCaseName} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	h := &harness{}
	cfg := config.New()
	var flags cli.Flags
	cmds := NewCommands(cfg, register, Options{
		Out:    &h.out,
		Err:    &h.err,
		Exit:   h.exits.exit,
		Viewer: &h.viewer,
	})
	h.root = &cobra.Command{Use: "setrunner", SilenceUsage: true}
	cmds.Register(h.root, &flags, cfg)
	h.root.SetOut(&h.out)
	h.root.SetErr(&h.err)
	h.root.SetArgs(append([]string{"--env-file", ""}, args...))
	return h
}

func TestRunCommand_RunsAllSets(t *testing.T) {
	h := newHarness(t, mathSets)
	require.NoError(t, h.root.Execute())

	out := h.out.String()
	assert.Contains(t, out, "Test set math starts.")
	assert.Contains(t, out, "Test set strings starts.")
	assert.Contains(t, out, "✓ add success!")
	assert.Contains(t, out, "✗ sub failed!")
	assert.Contains(t, out, "✓ concat success!")
	assert.Contains(t, h.err.String(), "2-1 != 0")
	assert.Less(t, strings.Index(out, "Test set math starts."), strings.Index(out, "Test set strings starts."))

	assert.Equal(t, []int{exitcodes.TestFailure}, h.exits.codes)
	assert.Empty(t, h.viewer.viewed)
}

func TestRunCommand_Filters(t *testing.T) {
	h := newHarness(t, mathSets, "--set-name", "math", "--case-name", "add")
	require.NoError(t, h.root.Execute())

	out := h.out.String()
	assert.Contains(t, out, "✓ add success!")
	assert.NotContains(t, out, "sub")
	assert.NotContains(t, out, "strings")
	assert.Equal(t, []int{exitcodes.Success}, h.exits.codes)
}

func TestRunCommand_EnvironmentFilter(t *testing.T) {
	h := newHarness(t, mathSets)
	t.Setenv(config.EnvSetName, "strings")
	require.NoError(t, h.root.Execute())

	assert.NotContains(t, h.out.String(), "Test set math starts.")
	assert.Contains(t, h.out.String(), "✓ concat success!")
	assert.Equal(t, []int{exitcodes.Success}, h.exits.codes)
}

func TestRunCommand_MissingCase(t *testing.T) {
	h := newHarness(t, mathSets, "-s", "math", "-c", "mul")
	require.NoError(t, h.root.Execute())

	assert.Contains(t, h.out.String(), "[CONFIG]")
	assert.Equal(t, []int{exitcodes.RuntimeErr}, h.exits.codes)
}

func TestRunCommand_OpenFailuresAndMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.prom")
	h := newHarness(t, mathSets, "--open-failures", "--metrics-textfile", path, "--table")
	require.NoError(t, h.root.Execute())

	require.Len(t, h.viewer.viewed, 1)
	failures := h.viewer.viewed[0].Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "sub", failures[0].TestName)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "setrunner_cases_total")
}

func TestRunCommand_ViewerSkippedWhenAllPass(t *testing.T) {
	h := newHarness(t, mathSets, "--open-failures", "-s", "strings")
	require.NoError(t, h.root.Execute())

	assert.Empty(t, h.viewer.viewed)
	assert.Equal(t, []int{exitcodes.Success}, h.exits.codes)
}

func TestListCommand(t *testing.T) {
	h := newHarness(t, mathSets, "list", "-s", "math", "-c", "sub")
	require.NoError(t, h.root.Execute())

	out := h.out.String()
	assert.Contains(t, out, "Found 2 test set(s) with 3 test case(s):")
	assert.Contains(t, out, "[x] sub")
	assert.Contains(t, out, "[ ] add")
	assert.Contains(t, out, "[ ] concat")
	assert.NotContains(t, out, "starts.")
	assert.Empty(t, h.exits.codes)
}

func TestListCommand_Empty(t *testing.T) {
	h := newHarness(t, func(Registrar) {}, "list")
	require.NoError(t, h.root.Execute())
	assert.Contains(t, h.out.String(), "No test sets registered")
}
