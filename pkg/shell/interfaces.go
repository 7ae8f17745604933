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

//go:generate mockgen -destination=mock_shell.go -package=shell github.com/ohmyphone/daemon/pkg/shell Runner,CommandExecutor

package shell

import "context"

// ExecutionResult is what a finished process left behind.
type ExecutionResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports whether the process exited with status zero.
func (r *ExecutionResult) Success() bool {
	return r.ExitCode == 0
}

// Runner starts a program with an explicit argument vector and waits for it.
// A process that ran but exited non-zero is a result, not an error; the error
// return is reserved for processes that never started or were cancelled.
type Runner interface {
	Run(ctx context.Context, program string, args ...string) (*ExecutionResult, error)
}

// CommandExecutor runs catalog commands and returns their stdout.
type CommandExecutor interface {
	Execute(ctx context.Context, cmd Command) (string, error)
}
