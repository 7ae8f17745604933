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
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

const defaultWaitDelay = 2 * time.Second

// ProcessRunner runs programs as child processes of the daemon.
type ProcessRunner struct {
	// WaitDelay bounds how long Run waits for output pipes after the child is killed.
	WaitDelay time.Duration
}

// NewProcessRunner returns a runner with default settings.
func NewProcessRunner() *ProcessRunner {
	return &ProcessRunner{WaitDelay: defaultWaitDelay}
}

// Run executes program with args, capturing stdout and stderr. When ctx ends before
// the child exits, the child and its process group are killed and ctx.Err() is returned.
func (p *ProcessRunner) Run(ctx context.Context, program string, args ...string) (*ExecutionResult, error) {
	cmd := exec.CommandContext(ctx, program, args...)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = p.WaitDelay

	configureProcess(cmd)

	err := cmd.Run()

	result := &ExecutionResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err == nil {
		return result, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()

		return result, nil
	}

	return nil, err
}
