// If you are AI: This file validates configuration values and returns descriptive errors.

package config

import (
	"fmt"
	"strings"
)

// Validate checks that all configuration values are within acceptable ranges.
// Returns an error describing the first validation failure found.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := c.AMF.Validate(); err != nil {
		return fmt.Errorf("amf config: %w", err)
	}
	return nil
}

// Validate checks server configuration values.
func (s *ServerConfig) Validate() error {
	if s.HealthPort <= 0 || s.HealthPort > 65535 {
		return fmt.Errorf("health_port must be between 1 and 65535, got %d", s.HealthPort)
	}
	if s.HTTPPort <= 0 || s.HTTPPort > 65535 {
		return fmt.Errorf("http_port must be between 1 and 65535, got %d", s.HTTPPort)
	}
	if s.HealthPort == s.HTTPPort {
		return fmt.Errorf("health_port and http_port must be different, both are %d", s.HealthPort)
	}
	return nil
}

// Validate checks remoting endpoint settings.
func (a *AMFConfig) Validate() error {
	if !strings.HasPrefix(a.GatewayPath, "/") {
		return fmt.Errorf("gateway_path must start with /, got %q", a.GatewayPath)
	}
	if !strings.HasPrefix(a.WSPath, "/") {
		return fmt.Errorf("ws_path must start with /, got %q", a.WSPath)
	}
	if a.GatewayPath == a.WSPath {
		return fmt.Errorf("gateway_path and ws_path must be different, both are %q", a.GatewayPath)
	}
	if strings.HasPrefix(a.GatewayPath, "/api/") || strings.HasPrefix(a.WSPath, "/api/") {
		return fmt.Errorf("/api/ is reserved for the admin API")
	}
	if a.MaxPacketBytes < 0 {
		return fmt.Errorf("max_packet_bytes must be positive, got %d", a.MaxPacketBytes)
	}
	if a.WSReadLimit < 0 {
		return fmt.Errorf("ws_read_limit must be positive, got %d", a.WSReadLimit)
	}
	if a.WSIdleTimeoutSeconds < 0 {
		return fmt.Errorf("ws_idle_timeout_seconds must be positive, got %d", a.WSIdleTimeoutSeconds)
	}
	return nil
}
