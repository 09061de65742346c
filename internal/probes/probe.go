// Package probes implements the dependency checks run by the health
// engine. Each probe is self-contained: it knows its own required
// configuration, performs one bounded check against one external
// dependency, and reports a Result without ever propagating a fault
// past its own boundary.
package probes

import "context"

// Status is the terminal outcome of a probe execution. There are
// exactly two: a probe either succeeded or errored. Probes whose
// configuration is absent are skipped and produce no Result at all.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is the outcome of one dependency check. It is constructed
// once, by the probe (or by the engine on a timeout or panic), and
// never mutated afterwards.
type Result struct {
	Service string                 `json:"service"`
	Status  Status                 `json:"status"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Probe is a single dependency-connectivity check.
type Probe interface {
	// Service returns the human-readable name used as the display key
	// for this probe's result.
	Service() string

	// Eligible reports whether the probe's required configuration is
	// fully present. Partially configured probes are ineligible: they
	// are skipped entirely, never run and failed.
	Eligible() bool

	// Execute runs the check. Implementations must resolve within the
	// deadline carried by ctx and convert internal faults into an
	// error Result rather than panicking.
	Execute(ctx context.Context) Result
}

func success(service, message string, details map[string]interface{}) Result {
	return Result{
		Service: service,
		Status:  StatusSuccess,
		Message: message,
		Details: details,
	}
}

func failure(service, message string, details map[string]interface{}) Result {
	return Result{
		Service: service,
		Status:  StatusError,
		Message: message,
		Details: details,
	}
}
