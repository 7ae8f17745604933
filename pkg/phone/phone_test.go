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

package phone

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "international with plus", input: "+1234567890", want: true},
		{name: "national digits", input: "1234567890", want: true},
		{name: "long international", input: "+919876543210", want: true},
		{name: "seven digits", input: "7654321", want: true},
		{name: "fifteen digits", input: "123456789012345", want: true},
		{name: "plus and fifteen digits", input: "+123456789012345", want: true},
		{name: "empty", input: "", want: false},
		{name: "plus only", input: "+", want: false},
		{name: "letters first", input: "abc123", want: false},
		{name: "letters after plus", input: "+123abc", want: false},
		{name: "dashes", input: "123-456-7890", want: false},
		{name: "spaces", input: "123 456 7890", want: false},
		{name: "too short", input: "123", want: false},
		{name: "six digits", input: "123456", want: false},
		{name: "sixteen digits", input: "1234567890123456", want: false},
		{name: "twenty digits", input: "12345678901234567890", want: false},
		{name: "plus in middle", input: "123+4567890", want: false},
		{name: "double plus", input: "++1234567", want: false},
		{name: "unicode digit", input: "١٢٣٤٥٦٧٨", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, IsValid(tt.input))
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	n, err := Parse("+15551234567")
	require.NoError(t, err)
	assert.Equal(t, "+15551234567", n.String())
	assert.False(t, n.IsZero())

	_, err = Parse("555-1234")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadFormat))

	var zero Number
	assert.True(t, zero.IsZero())
}
