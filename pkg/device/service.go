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

// Package device composes catalog commands and parsers into handset-level operations.
package device

import (
	"context"
	"errors"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/ohmyphone/daemon/pkg/logger"
	"github.com/ohmyphone/daemon/pkg/models"
	"github.com/ohmyphone/daemon/pkg/parsers"
	"github.com/ohmyphone/daemon/pkg/phone"
	"github.com/ohmyphone/daemon/pkg/shell"
)

// ErrMissingNumber is returned when call forwarding is enabled without a target.
var ErrMissingNumber = errors.New("number required when enabling call forwarding")

// Service reads and changes handset state through a CommandExecutor.
type Service struct {
	exec   shell.CommandExecutor
	logger logger.Logger

	// hostUptime is used when /proc/uptime cannot be read through the executor.
	hostUptime func(ctx context.Context) (uint64, error)
}

// NewService creates a device service.
func NewService(exec shell.CommandExecutor, log logger.Logger) *Service {
	return &Service{
		exec:       exec,
		logger:     log,
		hostUptime: host.UptimeWithContext,
	}
}

// Status gathers a fresh snapshot. It never fails: a command that errors contributes
// empty output, and every parser maps that to its unknown value.
func (s *Service) Status(ctx context.Context) *models.DeviceStatus {
	battery := parsers.ParseBattery(s.output(ctx, shell.GetBattery{}))
	data := shell.DetectDataState(ctx, s.exec)

	status := &models.DeviceStatus{
		Charging:                 battery.Charging,
		SignalDBM:                parsers.ParseSignal(s.output(ctx, shell.GetSignal{})),
		DataEnabled:              data.State.Bool(),
		DataDetectionMethod:      string(data.Method),
		DataConnected:            parsers.MobileDataConnected(s.output(ctx, shell.GetConnectivity{})),
		AirplaneMode:             parsers.ParseAirplaneMode(s.output(ctx, shell.GetAirplaneMode{})),
		CallForwardingActive:     parsers.ParseCallForwarding(s.output(ctx, shell.GetCallForwardingState{})),
		CallForwardingBestEffort: true,
		Uptime:                   s.uptime(ctx),
	}

	if battery.Known() {
		level := battery.Level
		status.Battery = &level
	}

	return status
}

func (s *Service) uptime(ctx context.Context) uint64 {
	if up := parsers.ParseUptime(s.output(ctx, shell.GetUptime{})); up > 0 {
		return up
	}

	up, err := s.hostUptime(ctx)
	if err != nil {
		s.logger.Debug().Err(err).Msg("Host uptime fallback failed")

		return 0
	}

	return up
}

func (s *Service) output(ctx context.Context, cmd shell.Command) string {
	out, err := s.exec.Execute(ctx, cmd)
	if err != nil {
		s.logger.Debug().Err(err).Str("command", cmd.Name()).Msg("Status command failed, treating output as empty")

		return ""
	}

	return out
}

// SetMobileData switches mobile data on or off.
func (s *Service) SetMobileData(ctx context.Context, enable bool) error {
	if enable {
		return s.run(ctx, shell.EnableData{})
	}

	return s.run(ctx, shell.DisableData{})
}

// SetAirplaneMode switches airplane mode on or off.
func (s *Service) SetAirplaneMode(ctx context.Context, enable bool) error {
	if enable {
		return s.run(ctx, shell.EnableAirplaneMode{})
	}

	return s.run(ctx, shell.DisableAirplaneMode{})
}

// SetCallForwarding enables unconditional forwarding to number, or disables it.
// number is ignored when disabling.
func (s *Service) SetCallForwarding(ctx context.Context, enable bool, number phone.Number) error {
	if !enable {
		return s.run(ctx, shell.DisableCallForwarding{})
	}

	if number.IsZero() {
		return ErrMissingNumber
	}

	return s.run(ctx, shell.EnableCallForwarding{Number: number})
}

// Dial starts an outgoing call.
func (s *Service) Dial(ctx context.Context, number phone.Number) error {
	return s.run(ctx, shell.DialNumber{Number: number})
}

func (s *Service) run(ctx context.Context, cmd shell.Command) error {
	if _, err := s.exec.Execute(ctx, cmd); err != nil {
		return err
	}

	s.logger.Info().Str("command", cmd.Name()).Msg("Device action applied")

	return nil
}
