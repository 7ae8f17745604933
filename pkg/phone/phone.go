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

// Package phone validates untrusted phone number input before it can reach a command.
package phone

import (
	"errors"
	"fmt"
)

const (
	minDigits = 7
	maxDigits = 15
)

// ErrBadFormat is returned when a number fails validation.
var ErrBadFormat = errors.New("invalid phone number format")

// Number is a phone number that has passed IsValid. The zero value holds no number.
type Number struct {
	value string
}

// IsValid reports whether s is an optional leading '+' followed only by digits,
// with 7 to 15 digits in total.
func IsValid(s string) bool {
	if s == "" {
		return false
	}

	digits := 0

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '+' && i == 0:
		default:
			return false
		}
	}

	return digits >= minDigits && digits <= maxDigits
}

// Parse validates s and wraps it in a Number.
func Parse(s string) (Number, error) {
	if !IsValid(s) {
		return Number{}, fmt.Errorf("%w: %q", ErrBadFormat, s)
	}

	return Number{value: s}, nil
}

// String returns the number exactly as it was supplied.
func (n Number) String() string {
	return n.value
}

// IsZero reports whether n was produced by Parse.
func (n Number) IsZero() bool {
	return n.value == ""
}
