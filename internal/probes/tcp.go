package probes

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

const (
	connectTimeout = 5 * time.Second

	defaultTargetHost = "google.com"
	defaultTargetPort = "80"
)

// TCPProbe attempts a raw TCP connection to a target host and port.
// The dial and the timeout race for the same pending connection;
// net.Dialer resolves exactly one of them and tears the loser down.
type TCPProbe struct {
	host     string
	port     string
	explicit bool
}

// NewTCPProbe builds a probe over the ambient DNS_CHECK_HOST and
// DNS_CHECK_PORT settings. Without a configured host the probe is
// ineligible and skipped.
func NewTCPProbe(cfg Settings) *TCPProbe {
	return &TCPProbe{host: cfg.DNSCheckHost, port: cfg.DNSCheckPort}
}

// NewTCPTarget builds a probe for an explicit target, falling back to
// a well-known host on port 80 for any empty field. Explicit probes
// are always eligible.
func NewTCPTarget(host, port string) *TCPProbe {
	if host == "" {
		host = defaultTargetHost
	}
	if port == "" {
		port = defaultTargetPort
	}
	return &TCPProbe{host: host, port: port, explicit: true}
}

func (p *TCPProbe) Service() string { return "Network Reachability" }

func (p *TCPProbe) Eligible() bool { return p.explicit || p.host != "" }

// Target returns the host:port the probe will dial.
func (p *TCPProbe) Target() string {
	port := p.port
	if port == "" {
		port = defaultTargetPort
	}
	return net.JoinHostPort(p.host, port)
}

// Execute has three disjoint outcomes: the connect succeeds before
// the timeout, the timeout fires first, or the dial errors outright.
// Each produces exactly one Result and releases the connection.
func (p *TCPProbe) Execute(ctx context.Context) Result {
	addr := p.Target()

	dialer := net.Dialer{Timeout: connectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		details := map[string]interface{}{
			"reachable": false,
			"target":    addr,
		}
		var nerr net.Error
		if errors.As(err, &nerr) && nerr.Timeout() {
			details["timeout"] = connectTimeout.String()
			return failure(p.Service(), fmt.Sprintf("Connection to %s timed out after %s", addr, connectTimeout), details)
		}
		details["error"] = err.Error()
		return failure(p.Service(), fmt.Sprintf("Connection to %s failed: %v", addr, err), details)
	}
	_ = conn.Close()

	return success(p.Service(), fmt.Sprintf("Successfully connected to %s", addr), map[string]interface{}{
		"reachable": true,
		"target":    addr,
	})
}
