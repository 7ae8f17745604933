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

// Package app wires the handset daemon together.
package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/ohmyphone/daemon/pkg/api"
	"github.com/ohmyphone/daemon/pkg/auth"
	"github.com/ohmyphone/daemon/pkg/config"
	"github.com/ohmyphone/daemon/pkg/device"
	"github.com/ohmyphone/daemon/pkg/lifecycle"
	"github.com/ohmyphone/daemon/pkg/metrics"
	"github.com/ohmyphone/daemon/pkg/models"
	"github.com/ohmyphone/daemon/pkg/shell"
	"github.com/ohmyphone/daemon/pkg/version"
)

// Options contains runtime configuration derived from CLI flags.
type Options struct {
	ConfigPath string
}

// Run loads configuration and serves the API until ctx is done or a shutdown signal arrives.
func Run(ctx context.Context, opts Options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := models.DefaultDaemonConfig()

	bootLogger, err := lifecycle.CreateComponentLogger("ohmyphoned-boot", cfg.Logging)
	if err != nil {
		return err
	}

	if err := config.NewConfig(bootLogger).LoadAndValidate(ctx, opts.ConfigPath, cfg); err != nil {
		return err
	}

	mainLogger, err := lifecycle.CreateComponentLogger("ohmyphoned", cfg.Logging)
	if err != nil {
		return err
	}

	defer func() {
		if shutdownErr := lifecycle.ShutdownLogger(); shutdownErr != nil {
			mainLogger.Error().Err(shutdownErr).Msg("Error shutting down logger")
		}
	}()

	if _, metricsErr := metrics.InitializeMetrics(ctx, &cfg.Metrics, version.GetVersion()); metricsErr != nil &&
		!errors.Is(metricsErr, metrics.ErrOTelMetricsDisabled) {
		return metricsErr
	}

	defer func() {
		if err := metrics.Shutdown(context.Background()); err != nil {
			mainLogger.Error().Err(err).Msg("Error shutting down meter provider")
		}
	}()

	secret, err := cfg.Security.ResolveSecret()
	if err != nil {
		return err
	}

	guard := auth.NewGuard(secret, cfg.Security.Window(),
		auth.WithNonceStore(auth.NewMemoryNonceStore(cfg.Security.NonceCapacity)))

	executor := shell.NewExecutor(shell.NewProcessRunner(), mainLogger,
		shell.WithTimeout(cfg.Executor.CommandTimeout.Std()))

	server := api.NewServer(device.NewService(executor, mainLogger), guard, mainLogger,
		api.WithVersion(version.GetFullVersion()))

	readTimeout := cfg.Server.ReadTimeout.Std()

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           server.Handler(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
	}

	mainLogger.Info().
		Str("version", version.GetFullVersion()).
		Dur("timestamp_window", cfg.Security.Window()).
		Dur("command_timeout", cfg.Executor.CommandTimeout.Std()).
		Msg("Starting ohmyphoned")

	return lifecycle.RunServer(ctx, srv, cfg.Server.ShutdownTimeout.Std(), mainLogger)
}
