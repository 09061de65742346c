package logic

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookout/internal/probes"
	"lookout/pkg/logging"
)

type fakeProbe struct {
	name     string
	eligible bool
	status   probes.Status
	delay    time.Duration
	panics   bool
	calls    int32
}

func (f *fakeProbe) Service() string { return f.name }

func (f *fakeProbe) Eligible() bool { return f.eligible }

func (f *fakeProbe) Execute(ctx context.Context) probes.Result {
	atomic.AddInt32(&f.calls, 1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
		}
	}
	if f.panics {
		panic("probe exploded")
	}
	return probes.Result{
		Service: f.name,
		Status:  f.status,
		Message: "fake check",
	}
}

func newTestChecker(set ...probes.Probe) *Checker {
	return NewChecker(set, logging.NewLogger())
}

func TestRunAllPreservesDeclarationOrder(t *testing.T) {
	// The slowest probe is declared first so completion order inverts
	// declaration order.
	set := []probes.Probe{
		&fakeProbe{name: "slow", eligible: true, status: probes.StatusSuccess, delay: 150 * time.Millisecond},
		&fakeProbe{name: "medium", eligible: true, status: probes.StatusSuccess, delay: 50 * time.Millisecond},
		&fakeProbe{name: "fast", eligible: true, status: probes.StatusSuccess},
	}

	results := newTestChecker(set...).RunAll(context.Background())

	require.Len(t, results, 3)
	assert.Equal(t, "slow", results[0].Service)
	assert.Equal(t, "medium", results[1].Service)
	assert.Equal(t, "fast", results[2].Service)
}

func TestRunAllSkipsIneligibleProbes(t *testing.T) {
	skipped := &fakeProbe{name: "unconfigured", eligible: false, status: probes.StatusSuccess}
	set := []probes.Probe{
		&fakeProbe{name: "a", eligible: true, status: probes.StatusSuccess},
		skipped,
		&fakeProbe{name: "b", eligible: true, status: probes.StatusSuccess},
	}

	results := newTestChecker(set...).RunAll(context.Background())

	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Service)
	assert.Equal(t, "b", results[1].Service)
	assert.Zero(t, atomic.LoadInt32(&skipped.calls), "skipped probe must never run")
}

func TestRunAllFailureDoesNotBlockSiblings(t *testing.T) {
	set := []probes.Probe{
		&fakeProbe{name: "healthy", eligible: true, status: probes.StatusSuccess},
		&fakeProbe{name: "broken", eligible: true, status: probes.StatusError},
		&fakeProbe{name: "also healthy", eligible: true, status: probes.StatusSuccess},
	}

	results := newTestChecker(set...).RunAll(context.Background())

	require.Len(t, results, 3)
	assert.Equal(t, probes.StatusSuccess, results[0].Status)
	assert.Equal(t, probes.StatusError, results[1].Status)
	assert.Equal(t, probes.StatusSuccess, results[2].Status)
}

func TestRunAllConvertsPanicToErrorResult(t *testing.T) {
	set := []probes.Probe{
		&fakeProbe{name: "stable", eligible: true, status: probes.StatusSuccess},
		&fakeProbe{name: "volatile", eligible: true, panics: true},
	}

	results := newTestChecker(set...).RunAll(context.Background())

	require.Len(t, results, 2)
	assert.Equal(t, probes.StatusSuccess, results[0].Status)
	assert.Equal(t, "volatile", results[1].Service)
	assert.Equal(t, probes.StatusError, results[1].Status)
	assert.Equal(t, "check failed", results[1].Message)
}

func TestRunAllAttachesLatencyDetail(t *testing.T) {
	set := []probes.Probe{
		&fakeProbe{name: "a", eligible: true, status: probes.StatusSuccess},
	}

	results := newTestChecker(set...).RunAll(context.Background())

	require.Len(t, results, 1)
	assert.Contains(t, results[0].Details, "latency")
}

func TestRunAllRunsEachProbeExactlyOnce(t *testing.T) {
	a := &fakeProbe{name: "a", eligible: true, status: probes.StatusSuccess}
	b := &fakeProbe{name: "b", eligible: true, status: probes.StatusError}

	checker := newTestChecker(a, b)
	checker.RunAll(context.Background())

	assert.Equal(t, int32(1), atomic.LoadInt32(&a.calls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&b.calls), "no retries on failure")
}

func TestReportIsDeterministicAcrossRuns(t *testing.T) {
	set := []probes.Probe{
		&fakeProbe{name: "a", eligible: true, status: probes.StatusSuccess, delay: 20 * time.Millisecond},
		&fakeProbe{name: "b", eligible: true, status: probes.StatusError},
		&fakeProbe{name: "c", eligible: false},
	}
	checker := newTestChecker(set...)

	first := checker.Report(context.Background())
	second := checker.Report(context.Background())

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.Summary, second.Summary)
	require.Len(t, second.Checks, 2)
	assert.Equal(t, StatusUnhealthy, second.Status)
	assert.Equal(t, Summary{Total: 2, Passed: 1, Failed: 1}, second.Summary)
}

func TestReportWithOnlySelfReport(t *testing.T) {
	// Mirrors a deployment with no dependency configuration at all:
	// exactly one check, overall healthy.
	checker := newTestChecker(
		&fakeProbe{name: "API Server", eligible: true, status: probes.StatusSuccess},
		&fakeProbe{name: "PostgreSQL Database", eligible: false},
		&fakeProbe{name: "S3 Object Storage", eligible: false},
		&fakeProbe{name: "SES Email Service", eligible: false},
		&fakeProbe{name: "Network Reachability", eligible: false},
	)

	report := checker.Report(context.Background())

	assert.Equal(t, StatusHealthy, report.Status)
	require.Len(t, report.Checks, 1)
	assert.Equal(t, "API Server", report.Checks[0].Service)
	assert.Equal(t, Summary{Total: 1, Passed: 1, Failed: 0}, report.Summary)
}
