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

package parsers

import (
	"strings"
	"unicode"
)

// DataState is the mobile data setting as far as the device could tell us.
type DataState int

const (
	DataUnknown DataState = iota
	DataEnabled
	DataDisabled
)

// String implements fmt.Stringer.
func (s DataState) String() string {
	switch s {
	case DataEnabled:
		return "enabled"
	case DataDisabled:
		return "disabled"
	case DataUnknown:
		return "unknown"
	}

	return "unknown"
}

// Bool returns the state as a pointer so JSON can carry null for unknown.
func (s DataState) Bool() *bool {
	var v bool

	switch s {
	case DataEnabled:
		v = true
	case DataDisabled:
		v = false
	case DataUnknown:
		return nil
	}

	return &v
}

// DataControllerTag is the log tag whose lines report the data toggle.
const DataControllerTag = "MobileDataPreferenceController"

const (
	connectivityAgentMarker = "NetworkAgentInfo"
	connectivityMobileToken = "MOBILE"
)

// ParseDataSetting reads `settings get global mobile_data`. Only an exact "0" or "1"
// is trusted; anything else, including "null" or an empty reply, is DataUnknown.
func ParseDataSetting(output string) DataState {
	switch strings.TrimSpace(output) {
	case "1":
		return DataEnabled
	case "0":
		return DataDisabled
	default:
		return DataUnknown
	}
}

// ParseDataLog scans a window of the system log for the most recent line from the
// data controller that carries an explicit enabled=true or enabled=false marker.
func ParseDataLog(output string) DataState {
	state := DataUnknown

	forEachLine(output, func(line string) {
		if !strings.Contains(line, DataControllerTag) {
			return
		}

		t := strings.LastIndex(line, "enabled=true")
		f := strings.LastIndex(line, "enabled=false")

		switch {
		case t < 0 && f < 0:
			return
		case t > f:
			state = DataEnabled
		default:
			state = DataDisabled
		}
	})

	return state
}

type agentBlock struct {
	open      bool
	connected bool
	userData  bool
}

func (b *agentBlock) observe(line string) {
	upper := strings.ToUpper(line)

	switch {
	case strings.Contains(upper, "DISCONNECTED"):
		b.connected = false
	case strings.Contains(upper, "CONNECTED"):
		b.connected = true
	}

	for _, tok := range strings.FieldsFunc(strings.ToLower(line), isTokenSeparator) {
		switch tok {
		case "default", "internet":
			b.userData = true
		case "ims":
			b.userData = false
		}
	}
}

func (b *agentBlock) carriesUserData() bool {
	return b.open && b.connected && b.userData
}

// MobileDataConnected walks a `dumpsys connectivity` dump block by block. A block opens
// at a NetworkAgentInfo line for a MOBILE agent and closes at the next agent line or a
// blank line. The result is true only when some mobile block was connected and
// classified as default/internet traffic; an IMS-only bearer is signaling, not user data.
func MobileDataConnected(output string) bool {
	var (
		block  agentBlock
		result bool
	)

	closeBlock := func() {
		if block.carriesUserData() {
			result = true
		}

		block = agentBlock{}
	}

	forEachLine(output, func(line string) {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			closeBlock()
		case strings.Contains(trimmed, connectivityAgentMarker):
			closeBlock()

			if strings.Contains(strings.ToUpper(trimmed), connectivityMobileToken) {
				block.open = true
				block.observe(trimmed)
			}
		case block.open:
			block.observe(trimmed)
		}
	})

	closeBlock()

	return result
}

func isTokenSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
}
