/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ohmyphone/daemon/pkg/logger"
)

var (
	errSecretRequired       = errors.New("security.secret or security.secret_file is required")
	errSecretConflict       = errors.New("security.secret and security.secret_file are mutually exclusive")
	errEmptySecretFile      = errors.New("security.secret_file is empty")
	errInvalidPort          = errors.New("server.port must be between 1 and 65535")
	errInvalidWindow        = errors.New("security.timestamp_window must not be negative")
	errInvalidNonceCapacity = errors.New("security.nonce_capacity must not be negative")
	errInvalidTimeout       = errors.New("executor.command_timeout must not be negative")
	errMetricsEndpoint      = errors.New("metrics.endpoint is required when metrics are enabled")
)

const (
	DefaultBindAddress     = "0.0.0.0"
	DefaultPort            = 8080
	DefaultTimestampWindow = 30
	DefaultNonceCapacity   = 1000
	DefaultCommandTimeout  = 30 * time.Second
	DefaultReadTimeout     = 15 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultExportInterval  = 15 * time.Second
)

// ServerConfig is the HTTP listener.
type ServerConfig struct {
	BindAddress     string   `json:"bind_address" yaml:"bind_address"`
	Port            int      `json:"port" yaml:"port"`
	ReadTimeout     Duration `json:"read_timeout" yaml:"read_timeout"`
	ShutdownTimeout Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// SecurityConfig holds the shared secret and replay protection settings.
type SecurityConfig struct {
	Secret     string `json:"secret,omitempty" yaml:"secret,omitempty"`
	SecretFile string `json:"secret_file,omitempty" yaml:"secret_file,omitempty"`
	// TimestampWindow is the accepted clock skew in seconds.
	TimestampWindow int64 `json:"timestamp_window" yaml:"timestamp_window"`
	NonceCapacity   int   `json:"nonce_capacity" yaml:"nonce_capacity"`
}

// ExecutorConfig bounds handset command execution.
type ExecutorConfig struct {
	CommandTimeout Duration `json:"command_timeout" yaml:"command_timeout"`
}

// MetricsConfig controls OTLP export of the daemon's own metrics.
type MetricsConfig struct {
	Enabled        bool              `json:"enabled" yaml:"enabled"`
	Endpoint       string            `json:"endpoint" yaml:"endpoint"`
	Insecure       bool              `json:"insecure" yaml:"insecure"`
	Headers        map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	CAFile         string            `json:"ca_file,omitempty" yaml:"ca_file,omitempty"`
	ServiceName    string            `json:"service_name,omitempty" yaml:"service_name,omitempty"`
	ExportInterval Duration          `json:"export_interval" yaml:"export_interval"`
}

// DaemonConfig is the top-level daemon configuration.
type DaemonConfig struct {
	Server   ServerConfig   `json:"server" yaml:"server"`
	Security SecurityConfig `json:"security" yaml:"security"`
	Executor ExecutorConfig `json:"executor" yaml:"executor"`
	Logging  *logger.Config `json:"logging" yaml:"logging"`
	Metrics  MetricsConfig  `json:"metrics" yaml:"metrics"`
}

// DefaultDaemonConfig returns a configuration with every optional field filled in.
// Loaders overlay the file or environment on top of it.
func DefaultDaemonConfig() *DaemonConfig {
	return &DaemonConfig{
		Server: ServerConfig{
			BindAddress:     DefaultBindAddress,
			Port:            DefaultPort,
			ReadTimeout:     Duration(DefaultReadTimeout),
			ShutdownTimeout: Duration(DefaultShutdownTimeout),
		},
		Security: SecurityConfig{
			TimestampWindow: DefaultTimestampWindow,
			NonceCapacity:   DefaultNonceCapacity,
		},
		Executor: ExecutorConfig{
			CommandTimeout: Duration(DefaultCommandTimeout),
		},
		Logging: logger.DefaultConfig(),
		Metrics: MetricsConfig{
			ExportInterval: Duration(DefaultExportInterval),
		},
	}
}

// Validate implements config.Validator.
func (c *DaemonConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: got %d", errInvalidPort, c.Server.Port)
	}

	switch {
	case c.Security.Secret == "" && c.Security.SecretFile == "":
		return errSecretRequired
	case c.Security.Secret != "" && c.Security.SecretFile != "":
		return errSecretConflict
	}

	if c.Security.TimestampWindow < 0 {
		return errInvalidWindow
	}

	if c.Security.NonceCapacity < 0 {
		return errInvalidNonceCapacity
	}

	if c.Executor.CommandTimeout < 0 {
		return errInvalidTimeout
	}

	if c.Metrics.Enabled && c.Metrics.Endpoint == "" {
		return errMetricsEndpoint
	}

	return nil
}

// ListenAddr is the host:port the server binds to.
func (c *DaemonConfig) ListenAddr() string {
	return net.JoinHostPort(c.Server.BindAddress, strconv.Itoa(c.Server.Port))
}

// Window returns TimestampWindow as a duration.
func (s *SecurityConfig) Window() time.Duration {
	return time.Duration(s.TimestampWindow) * time.Second
}

// ResolveSecret returns the shared secret, reading SecretFile when configured.
// Surrounding whitespace in the file is ignored.
func (s *SecurityConfig) ResolveSecret() ([]byte, error) {
	if s.SecretFile == "" {
		if s.Secret == "" {
			return nil, errSecretRequired
		}

		return []byte(s.Secret), nil
	}

	data, err := os.ReadFile(s.SecretFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret file: %w", err)
	}

	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return nil, errEmptySecretFile
	}

	return []byte(secret), nil
}
