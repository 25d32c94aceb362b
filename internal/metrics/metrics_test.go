package metrics_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"sigquery/internal/metrics"
)

func TestResultLabel(t *testing.T) {
	require.Equal(t, metrics.ResultOK, metrics.ResultLabel(nil))
	require.Equal(t, metrics.ResultError, metrics.ResultLabel(errors.New("x")))
}

func TestWriteTextfile(t *testing.T) {
	before := testutil.ToFloat64(metrics.RunsTotal.WithLabelValues("completed"))
	metrics.RunsTotal.WithLabelValues("completed").Inc()
	require.Equal(t, before+1, testutil.ToFloat64(metrics.RunsTotal.WithLabelValues("completed")))

	path := filepath.Join(t.TempDir(), "sigquery.prom")
	require.NoError(t, metrics.WriteTextfile(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(b), `sigquery_runs_total{status="completed"}`))
}
