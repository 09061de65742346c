package logic

import (
	"time"

	"lookout/internal/probes"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// Summary carries the derived pass/fail counts for one report.
type Summary struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

// Report is the aggregated, user-facing health verdict for a single
// invocation. It is constructed fresh per call and never mutated.
type Report struct {
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Checks    []probes.Result `json:"checks"`
	Summary   Summary         `json:"summary"`
}

// BuildReport reduces an ordered result list to an overall verdict.
// Pure reduction: no I/O and no failure path. The report is unhealthy
// iff at least one check errored.
func BuildReport(results []probes.Result) Report {
	summary := Summary{Total: len(results)}
	for _, r := range results {
		if r.Status == probes.StatusSuccess {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}

	status := StatusHealthy
	if summary.Failed > 0 {
		status = StatusUnhealthy
	}

	return Report{
		Status:    status,
		Timestamp: time.Now(),
		Checks:    results,
		Summary:   summary,
	}
}
