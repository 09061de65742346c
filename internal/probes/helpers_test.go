package probes

import (
	"net"
	"testing"
)

// unusedPort reserves an ephemeral port and releases it, returning a
// port that is very likely closed for the duration of the test.
func unusedPort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to reserve port: %v", err)
	}
	_, port, err := net.SplitHostPort(l.Addr().String())
	if err != nil {
		t.Fatalf("failed to parse listener address: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("failed to release port: %v", err)
	}
	return port
}
