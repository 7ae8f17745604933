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
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDaemonConfig(t *testing.T) {
	cfg := DefaultDaemonConfig()

	assert.Equal(t, "0.0.0.0:8080", cfg.ListenAddr())
	assert.Equal(t, 30*time.Second, cfg.Security.Window())
	assert.Equal(t, DefaultNonceCapacity, cfg.Security.NonceCapacity)
	assert.Equal(t, DefaultCommandTimeout, cfg.Executor.CommandTimeout.Std())
	require.NotNil(t, cfg.Logging)

	require.ErrorIs(t, cfg.Validate(), errSecretRequired)

	cfg.Security.Secret = "s3cret"
	require.NoError(t, cfg.Validate())
}

func TestDaemonConfigOverlay(t *testing.T) {
	cfg := DefaultDaemonConfig()

	raw := `{
		"server": {"port": 9090},
		"security": {"secret": "abc", "timestamp_window": 60},
		"executor": {"command_timeout": "5s"},
		"logging": {"level": "debug"}
	}`

	require.NoError(t, json.Unmarshal([]byte(raw), cfg))

	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr())
	assert.Equal(t, time.Minute, cfg.Security.Window())
	assert.Equal(t, DefaultNonceCapacity, cfg.Security.NonceCapacity)
	assert.Equal(t, 5*time.Second, cfg.Executor.CommandTimeout.Std())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, Duration(DefaultShutdownTimeout), cfg.Server.ShutdownTimeout)
	require.NoError(t, cfg.Validate())
}

func TestDaemonConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*DaemonConfig)
		wantErr error
	}{
		{name: "port zero", mutate: func(c *DaemonConfig) { c.Server.Port = 0 }, wantErr: errInvalidPort},
		{name: "port too large", mutate: func(c *DaemonConfig) { c.Server.Port = 70000 }, wantErr: errInvalidPort},
		{name: "both secrets", mutate: func(c *DaemonConfig) { c.Security.SecretFile = "/tmp/x" }, wantErr: errSecretConflict},
		{name: "negative window", mutate: func(c *DaemonConfig) { c.Security.TimestampWindow = -1 }, wantErr: errInvalidWindow},
		{
			name:    "negative capacity",
			mutate:  func(c *DaemonConfig) { c.Security.NonceCapacity = -5 },
			wantErr: errInvalidNonceCapacity,
		},
		{
			name:    "negative timeout",
			mutate:  func(c *DaemonConfig) { c.Executor.CommandTimeout = Duration(-time.Second) },
			wantErr: errInvalidTimeout,
		},
		{name: "metrics without endpoint", mutate: func(c *DaemonConfig) { c.Metrics.Enabled = true }, wantErr: errMetricsEndpoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultDaemonConfig()
			cfg.Security.Secret = "s3cret"
			tt.mutate(cfg)

			require.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestResolveSecret(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "secret")
	require.NoError(t, os.WriteFile(path, []byte("  from-file\n"), 0o600))

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, []byte("\n"), 0o600))

	s := SecurityConfig{Secret: "inline"}
	got, err := s.ResolveSecret()
	require.NoError(t, err)
	assert.Equal(t, []byte("inline"), got)

	s = SecurityConfig{SecretFile: path}
	got, err = s.ResolveSecret()
	require.NoError(t, err)
	assert.Equal(t, []byte("from-file"), got)

	s = SecurityConfig{SecretFile: empty}
	_, err = s.ResolveSecret()
	require.ErrorIs(t, err, errEmptySecretFile)

	s = SecurityConfig{SecretFile: filepath.Join(dir, "missing")}
	_, err = s.ResolveSecret()
	require.ErrorIs(t, err, os.ErrNotExist)

	s = SecurityConfig{}
	_, err = s.ResolveSecret()
	require.ErrorIs(t, err, errSecretRequired)
}
