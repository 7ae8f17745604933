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

package shell

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ohmyphone/daemon/pkg/logger"
)

// DefaultTimeout bounds a single catalog command.
const DefaultTimeout = 30 * time.Second

// Executor runs catalog commands through a Runner.
type Executor struct {
	runner  Runner
	timeout time.Duration
	logger  logger.Logger
}

// ExecutorOption customizes an Executor.
type ExecutorOption func(*Executor)

// WithTimeout overrides DefaultTimeout. A non-positive value disables the deadline.
func WithTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) {
		e.timeout = d
	}
}

// NewExecutor creates an Executor backed by runner.
func NewExecutor(runner Runner, log logger.Logger, opts ...ExecutorOption) *Executor {
	e := &Executor{
		runner:  runner,
		timeout: DefaultTimeout,
		logger:  log,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Execute runs cmd and returns its stdout. Failures are reported as *ExecutionError,
// except for an unvalidated command which yields ErrInvalidCommand without running anything.
func (e *Executor) Execute(ctx context.Context, cmd Command) (string, error) {
	if err := validate(cmd); err != nil {
		return "", err
	}

	inv := cmd.invocation()

	if e.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := e.runner.Run(ctx, inv.program, inv.args...)
	elapsed := time.Since(start)

	execErr := classify(cmd.Name(), result, err)

	outcome := "success"
	if execErr != nil {
		outcome = execErr.Kind.String()
	}

	recordCommand(context.WithoutCancel(ctx), cmd.Name(), outcome, elapsed)

	if execErr != nil {
		e.logger.Warn().
			Err(execErr.Err).
			Str("command", cmd.Name()).
			Str("program", inv.program).
			Str("kind", execErr.Kind.String()).
			Int("exit_code", execErr.ExitCode).
			Str("stderr", execErr.Stderr).
			Dur("duration", elapsed).
			Msg("Command failed")

		return "", execErr
	}

	e.logger.Debug().
		Str("command", cmd.Name()).
		Int("stdout_bytes", len(result.Stdout)).
		Dur("duration", elapsed).
		Msg("Command completed")

	return result.Stdout, nil
}

func classify(name string, result *ExecutionResult, err error) *ExecutionError {
	switch {
	case err != nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)):
		return &ExecutionError{Command: name, Kind: TimedOut, Err: err}
	case err != nil:
		return &ExecutionError{Command: name, Kind: SpawnFailed, Err: err}
	case result == nil:
		return &ExecutionError{Command: name, Kind: SpawnFailed, Err: errNoResult}
	case !result.Success():
		return &ExecutionError{
			Command:  name,
			Kind:     NonZeroExit,
			ExitCode: result.ExitCode,
			Stderr:   strings.TrimSpace(result.Stderr),
		}
	}

	return nil
}
