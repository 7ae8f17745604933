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

// Package shell maps a closed set of handset actions onto fixed program invocations
// and runs them without ever going through a shell interpreter.
package shell

import (
	"strconv"

	"github.com/ohmyphone/daemon/pkg/phone"
)

// LogWindow is how many of the most recent log lines GetDataLog reads.
const LogWindow = 2000

// Command is one entry of the command catalog. The set of implementations is closed:
// the unexported method keeps other packages from adding variants, and every variant
// must declare its program and argv here.
type Command interface {
	// Name is a stable label used in logs and metrics.
	Name() string
	invocation() invocation
}

type invocation struct {
	program string
	args    []string
}

type (
	GetBattery             struct{}
	GetSignal              struct{}
	GetDataSetting         struct{}
	GetDataLog             struct{}
	GetConnectivity        struct{}
	GetAirplaneMode        struct{}
	GetUptime              struct{}
	EnableData             struct{}
	DisableData            struct{}
	EnableAirplaneMode     struct{}
	DisableAirplaneMode    struct{}
	DisableCallForwarding  struct{}
	GetCallForwardingState struct{}
)

// EnableCallForwarding forwards unconditionally to Number.
type EnableCallForwarding struct {
	Number phone.Number
}

// DialNumber places an outgoing call to Number.
type DialNumber struct {
	Number phone.Number
}

func (GetBattery) Name() string             { return "get_battery" }
func (GetSignal) Name() string              { return "get_signal" }
func (GetDataSetting) Name() string         { return "get_data_setting" }
func (GetDataLog) Name() string             { return "get_data_log" }
func (GetConnectivity) Name() string        { return "get_connectivity" }
func (GetAirplaneMode) Name() string        { return "get_airplane_mode" }
func (GetUptime) Name() string              { return "get_uptime" }
func (EnableData) Name() string             { return "enable_data" }
func (DisableData) Name() string            { return "disable_data" }
func (EnableAirplaneMode) Name() string     { return "enable_airplane_mode" }
func (DisableAirplaneMode) Name() string    { return "disable_airplane_mode" }
func (EnableCallForwarding) Name() string   { return "enable_call_forwarding" }
func (DisableCallForwarding) Name() string  { return "disable_call_forwarding" }
func (GetCallForwardingState) Name() string { return "get_call_forwarding_state" }
func (DialNumber) Name() string             { return "dial_number" }

func (GetBattery) invocation() invocation {
	return invocation{program: "dumpsys", args: []string{"battery"}}
}

func (GetSignal) invocation() invocation {
	return invocation{program: "dumpsys", args: []string{"telephony.registry"}}
}

func (GetDataSetting) invocation() invocation {
	return invocation{program: "settings", args: []string{"get", "global", "mobile_data"}}
}

func (GetDataLog) invocation() invocation {
	return invocation{program: "logcat", args: []string{"-d", "-t", strconv.Itoa(LogWindow)}}
}

func (GetConnectivity) invocation() invocation {
	return invocation{program: "dumpsys", args: []string{"connectivity"}}
}

func (GetAirplaneMode) invocation() invocation {
	return invocation{program: "settings", args: []string{"get", "global", "airplane_mode_on"}}
}

func (GetUptime) invocation() invocation {
	return invocation{program: "cat", args: []string{"/proc/uptime"}}
}

func (EnableData) invocation() invocation {
	return invocation{program: "svc", args: []string{"data", "enable"}}
}

func (DisableData) invocation() invocation {
	return invocation{program: "svc", args: []string{"data", "disable"}}
}

func (EnableAirplaneMode) invocation() invocation {
	return invocation{program: "cmd", args: []string{"connectivity", "airplane-mode", "enable"}}
}

func (DisableAirplaneMode) invocation() invocation {
	return invocation{program: "cmd", args: []string{"connectivity", "airplane-mode", "disable"}}
}

// The number travels as its own argv entry inside an MMI code; nothing is re-parsed.
func (c EnableCallForwarding) invocation() invocation {
	return invocation{
		program: "service",
		args:    []string{"call", "phone", "14", "i32", "1", "s16", "*21*" + c.Number.String() + "#"},
	}
}

func (DisableCallForwarding) invocation() invocation {
	return invocation{program: "service", args: []string{"call", "phone", "14", "i32", "1", "s16", "#21#"}}
}

func (GetCallForwardingState) invocation() invocation {
	return invocation{program: "service", args: []string{"call", "phone", "13", "i32", "1", "i32", "0"}}
}

func (c DialNumber) invocation() invocation {
	return invocation{
		program: "am",
		args:    []string{"start", "-a", "android.intent.action.CALL", "-d", "tel:" + c.Number.String()},
	}
}

// validate rejects parameterized commands built from a zero phone.Number.
func validate(cmd Command) error {
	switch c := cmd.(type) {
	case nil:
		return ErrInvalidCommand
	case EnableCallForwarding:
		if c.Number.IsZero() {
			return ErrInvalidCommand
		}
	case DialNumber:
		if c.Number.IsZero() {
			return ErrInvalidCommand
		}
	}

	return nil
}
