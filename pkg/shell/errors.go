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
	"errors"
	"fmt"
)

var (
	// ErrInvalidCommand is returned for a nil command or a parameterized command
	// whose phone number was never validated.
	ErrInvalidCommand = errors.New("invalid command")
	// ErrSpawnFailed matches an ExecutionError whose process could not be started.
	ErrSpawnFailed = errors.New("command spawn failed")
	// ErrNonZeroExit matches an ExecutionError whose process exited unsuccessfully.
	ErrNonZeroExit = errors.New("command exited with non-zero status")
	// ErrTimedOut matches an ExecutionError whose process outlived its deadline.
	ErrTimedOut = errors.New("command timed out")

	errNoResult = errors.New("runner returned no result")
)

// ErrorKind classifies an ExecutionError.
type ErrorKind int

const (
	SpawnFailed ErrorKind = iota + 1
	NonZeroExit
	TimedOut
)

func (k ErrorKind) String() string {
	switch k {
	case SpawnFailed:
		return "spawn_failed"
	case NonZeroExit:
		return "non_zero_exit"
	case TimedOut:
		return "timed_out"
	}

	return "unknown"
}

// ExecutionError reports a catalog command that did not succeed.
type ExecutionError struct {
	Command  string
	Kind     ErrorKind
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExecutionError) Error() string {
	switch e.Kind {
	case NonZeroExit:
		return fmt.Sprintf("%s: exit status %d: %s", e.Command, e.ExitCode, e.Stderr)
	case SpawnFailed:
		return fmt.Sprintf("%s: failed to start: %v", e.Command, e.Err)
	case TimedOut:
		return fmt.Sprintf("%s: timed out: %v", e.Command, e.Err)
	}

	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Is lets callers match on the failure kind with errors.Is.
func (e *ExecutionError) Is(target error) bool {
	switch target {
	case ErrSpawnFailed:
		return e.Kind == SpawnFailed
	case ErrNonZeroExit:
		return e.Kind == NonZeroExit
	case ErrTimedOut:
		return e.Kind == TimedOut
	}

	return false
}
