package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"setrunner/internal/domain"
	"setrunner/internal/execution"
)

func TestMetrics_RecordCase(t *testing.T) {
	m := New("run-1")

	m.RecordCase("math", domain.TestCaseResult{Name: "add", Success: true, Duration: time.Millisecond})
	m.RecordCase("math", domain.TestCaseResult{Name: "sub", Success: false})
	m.RecordCase("math", domain.TestCaseResult{Name: "mul", Success: true})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.casesTotal.WithLabelValues("run-1", "math", "pass")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.casesTotal.WithLabelValues("run-1", "math", "fail")))
}

func TestMetrics_RecordSet(t *testing.T) {
	m := New("run-1")

	m.RecordSet(domain.TestSetResult{Name: "ok", Cases: []domain.TestCaseResult{{Success: true}}})
	m.RecordSet(domain.TestSetResult{Name: "bad", Cases: []domain.TestCaseResult{{Success: false}}})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.setsTotal.WithLabelValues("run-1", "pass")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.setsTotal.WithLabelValues("run-1", "fail")))
}

func TestMetrics_RecordEntryError(t *testing.T) {
	m := New("run-1")

	m.RecordEntryError(&execution.ConfigError{Err: execution.ErrCaseNotFound})
	m.RecordEntryError(&execution.HookError{Phase: execution.PhaseTearDown, Err: errors.New("x")})
	m.RecordEntryError(errors.New("other"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorsTotal.WithLabelValues("run-1", "config")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorsTotal.WithLabelValues("run-1", "hook_teardown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorsTotal.WithLabelValues("run-1", "other")))
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := New("run-1")
	m.RecordCase("math", domain.TestCaseResult{Name: "add", Success: true})

	path := filepath.Join(t.TempDir(), "setrunner.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `setrunner_cases_total{result="pass",run_id="run-1",set="math"} 1`))
}
