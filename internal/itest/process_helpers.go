// If you are AI: This file provides helper functions for building, starting and stopping
// amfgate processes in tests.

package itest

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"testing"
	"time"
)

// Process is a running amfgate binary.
type Process struct {
	cmd        *exec.Cmd
	HTTPPort   int
	HealthPort int
}

// BuildBinary builds cmd/amfgate into a temp dir and returns its path.
func BuildBinary(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "amfgate")
	buildCmd := exec.Command("go", "build", "-o", binPath, "../../cmd/amfgate")
	buildCmd.Stderr = os.Stderr
	if err := buildCmd.Run(); err != nil {
		t.Fatalf("Failed to build binary: %v", err)
	}
	return binPath
}

// StartServer starts binPath on free ports with extra appended to the amf section
// and waits for the health endpoint. The process is stopped when the test ends.
func StartServer(t *testing.T, ctx context.Context, binPath, extra string) *Process {
	t.Helper()
	p := &Process{HTTPPort: findFreePort(t), HealthPort: findFreePort(t)}

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := fmt.Sprintf("server:\n  health_port: %d\n  http_port: %d\namf:\n  gateway_path: /amf\n%s",
		p.HealthPort, p.HTTPPort, extra)
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	p.cmd = exec.CommandContext(ctx, binPath, "--config", configPath)
	p.cmd.Stdout = os.Stdout
	p.cmd.Stderr = os.Stderr
	if err := p.cmd.Start(); err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	t.Cleanup(func() {
		if p.cmd.ProcessState == nil {
			_ = p.cmd.Process.Kill()
			_ = p.cmd.Wait()
		}
	})

	if err := WaitForHealth(p.HealthPort, 5*time.Second); err != nil {
		t.Fatalf("Health endpoint not available: %v", err)
	}
	return p
}

// Stop sends SIGINT and waits up to timeout for a clean exit.
func (p *Process) Stop(timeout time.Duration) error {
	if err := p.cmd.Process.Signal(syscall.SIGINT); err != nil {
		return fmt.Errorf("send SIGINT: %w", err)
	}
	done := make(chan error, 1)
	go func() { done <- p.cmd.Wait() }()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		_ = p.cmd.Process.Kill()
		return fmt.Errorf("server did not exit within %v after SIGINT", timeout)
	}
}

// URL returns an address on the main listener.
func (p *Process) URL(path string) string {
	return fmt.Sprintf("http://127.0.0.1:%d%s", p.HTTPPort, path)
}

// WaitForHealth waits for the health endpoint to become available.
// Returns an error if the endpoint is not available within the timeout.
func WaitForHealth(port int, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	url := fmt.Sprintf("http://127.0.0.1:%d/healthz", port)

	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("health endpoint not available after %v", timeout)
}

// findFreePort returns a port nothing listens on.
func findFreePort(t *testing.T) int {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to find free port: %v", err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}
