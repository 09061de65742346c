// Package logic contains the health-check engine: it gates, fans out
// and collects the probe set, and reduces the results to a report.
package logic

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"lookout/internal/probes"
	"lookout/pkg/logging"
)

// probeTimeout is the engine's outer bound on a single probe. Probes
// enforce their own tighter I/O timeouts; this is the last resort for
// one whose timeout fails to fire.
const probeTimeout = 10 * time.Second

// Metrics holds the engine's Prometheus instruments. A nil Metrics
// disables recording.
type Metrics struct {
	ChecksTotal   *prometheus.CounterVec   // labels: service, status
	CheckDuration *prometheus.HistogramVec // labels: service
}

// Checker runs the configured probes concurrently and collects one
// result per eligible probe.
type Checker struct {
	probes  []probes.Probe
	logger  logging.Logger
	metrics *Metrics
	timeout time.Duration
}

func NewChecker(set []probes.Probe, logger logging.Logger) *Checker {
	return &Checker{probes: set, logger: logger, timeout: probeTimeout}
}

// WithMetrics attaches Prometheus instruments to the engine.
func (c *Checker) WithMetrics(m *Metrics) *Checker {
	c.metrics = m
	return c
}

// RunAll executes every eligible probe concurrently and waits for all
// of them to settle. Ineligible probes are omitted entirely. Output
// order is the fixed declaration order of the probe set, independent
// of completion order. Each probe is attempted exactly once; a slow
// or failing probe never aborts its siblings.
func (c *Checker) RunAll(ctx context.Context) []probes.Result {
	eligible := make([]probes.Probe, 0, len(c.probes))
	for _, p := range c.probes {
		if !p.Eligible() {
			c.logger.WithField("check", p.Service()).Debug("Probe skipped: required configuration absent")
			continue
		}
		eligible = append(eligible, p)
	}

	// Each goroutine owns exactly one slot, so the slice needs no lock
	// and declaration order is preserved for free.
	results := make([]probes.Result, len(eligible))
	var wg sync.WaitGroup
	for i, p := range eligible {
		wg.Add(1)
		go func(i int, p probes.Probe) {
			defer wg.Done()
			results[i] = c.runProbe(ctx, p)
		}(i, p)
	}
	wg.Wait()

	for _, r := range results {
		if r.Status == probes.StatusError {
			c.logger.WithFields(logging.Fields{
				"check":   r.Service,
				"message": r.Message,
			}).Warn("Health check failed")
		}
	}

	return results
}

// Report runs the full probe set and reduces it to a report.
func (c *Checker) Report(ctx context.Context) Report {
	return BuildReport(c.RunAll(ctx))
}

// runProbe executes one probe under the engine's outer timeout and
// converts a panic into a generic error result, so a broken probe can
// never take its siblings' results down with it.
func (c *Checker) runProbe(ctx context.Context, p probes.Probe) (result probes.Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			c.logger.WithFields(logging.Fields{
				"check": p.Service(),
				"panic": r,
			}).Error("Health probe panicked")
			result = probes.Result{
				Service: p.Service(),
				Status:  probes.StatusError,
				Message: "check failed",
			}
		}
		c.observe(p.Service(), result.Status, time.Since(start))
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result = p.Execute(ctx)
	if result.Details == nil {
		result.Details = make(map[string]interface{}, 1)
	}
	result.Details["latency"] = time.Since(start).String()
	return result
}

func (c *Checker) observe(service string, status probes.Status, d time.Duration) {
	if c.metrics == nil {
		return
	}
	c.metrics.ChecksTotal.WithLabelValues(service, string(status)).Inc()
	c.metrics.CheckDuration.WithLabelValues(service).Observe(d.Seconds())
}
