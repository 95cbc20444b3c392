// If you are AI: This file defines the configuration structure for amfgate.
// It uses strict YAML (or TOML) decoding and explicit defaults.

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the complete server configuration.
// All fields must have explicit defaults or be required.
type Config struct {
	Server ServerConfig `yaml:"server" toml:"server"`
	AMF    AMFConfig    `yaml:"amf" toml:"amf"`
}

// ServerConfig defines HTTP server settings.
type ServerConfig struct {
	HealthPort int `yaml:"health_port" toml:"health_port"` // Port for health endpoint
	HTTPPort   int `yaml:"http_port" toml:"http_port"`     // Port for gateway, WebSocket and API
}

// AMFConfig defines the remoting endpoints and their limits.
type AMFConfig struct {
	GatewayPath          string `yaml:"gateway_path" toml:"gateway_path"`
	WSPath               string `yaml:"ws_path" toml:"ws_path"`
	MaxPacketBytes       int64  `yaml:"max_packet_bytes" toml:"max_packet_bytes"`
	ResetPerValue        *bool  `yaml:"reset_per_value" toml:"reset_per_value"` // Clear tables between envelope values
	WSReadLimit          int64  `yaml:"ws_read_limit" toml:"ws_read_limit"`
	WSIdleTimeoutSeconds int    `yaml:"ws_idle_timeout_seconds" toml:"ws_idle_timeout_seconds"`
}

// Load reads configuration from a YAML file, or a TOML file when the name ends in .toml.
// Returns an error if the file cannot be read or decoded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = decodeTOML(data, &cfg)
	} else {
		err = decodeYAML(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// Apply defaults
	cfg.setDefaults()

	return &cfg, nil
}

// decodeYAML decodes data, rejecting unknown fields.
func decodeYAML(data []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	return decoder.Decode(cfg)
}

// decodeTOML decodes data, rejecting keys that map to no field.
func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown field %q", undecoded[0].String())
	}
	return nil
}

// setDefaults applies explicit default values to unset fields.
func (c *Config) setDefaults() {
	if c.Server.HealthPort == 0 {
		c.Server.HealthPort = 8080
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8081
	}
	if c.AMF.GatewayPath == "" {
		c.AMF.GatewayPath = "/amf"
	}
	if c.AMF.WSPath == "" {
		c.AMF.WSPath = "/ws/amf"
	}
	if c.AMF.MaxPacketBytes == 0 {
		c.AMF.MaxPacketBytes = 1 << 20
	}
	if c.AMF.ResetPerValue == nil {
		reset := true
		c.AMF.ResetPerValue = &reset
	}
	if c.AMF.WSReadLimit == 0 {
		c.AMF.WSReadLimit = 1 << 20
	}
	if c.AMF.WSIdleTimeoutSeconds == 0 {
		c.AMF.WSIdleTimeoutSeconds = 60
	}
}

// WSIdleTimeout returns the WebSocket idle timeout as a duration.
func (a *AMFConfig) WSIdleTimeout() time.Duration {
	return time.Duration(a.WSIdleTimeoutSeconds) * time.Second
}
