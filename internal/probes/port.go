package probes

import "context"

// PortProbe reports the service's own listen port and environment
// label. It performs no I/O and always succeeds.
type PortProbe struct {
	port        string
	environment string
}

func NewPortProbe(cfg Settings) *PortProbe {
	return &PortProbe{port: cfg.Port, environment: cfg.Environment}
}

func (p *PortProbe) Service() string { return "API Server" }

// Eligible always returns true: the self-report has no required
// configuration.
func (p *PortProbe) Eligible() bool { return true }

func (p *PortProbe) Execute(ctx context.Context) Result {
	return success(p.Service(), "API server is running", map[string]interface{}{
		"port":        p.port,
		"environment": p.environment,
	})
}
