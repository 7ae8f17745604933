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

// Package parsers turns raw handset command output into typed values.
//
// Every parser is total: unrecognized input yields a documented sentinel, never an error,
// so a status snapshot can always be assembled from whatever the device returned.
package parsers

import (
	"bufio"
	"math"
	"strconv"
	"strings"
)

const (
	// BatteryLevelUnknown marks a battery report that carried no usable level.
	BatteryLevelUnknown = -1
	// SignalUnknown marks a telephony dump with no readable rssi.
	SignalUnknown = -999

	batteryStatusCharging = 2
	batteryStatusFull     = 5

	callForwardingMarker    = "Result: Parcel"
	callForwardingMinLength = 50
)

// Battery is the parsed form of `dumpsys battery`.
type Battery struct {
	Level    int
	Charging bool
}

// Known reports whether a battery level was found.
func (b Battery) Known() bool {
	return b.Level != BatteryLevelUnknown
}

// ParseBattery reads the "level:" and "status:" fields of a battery dump.
// Charging is true only for status codes 2 (charging) and 5 (full).
func ParseBattery(output string) Battery {
	b := Battery{Level: BatteryLevelUnknown}

	forEachLine(output, func(line string) {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "level:"):
			v, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "level:")))
			if err == nil && v >= 0 && v <= 100 {
				b.Level = v
			}
		case strings.HasPrefix(line, "status:"):
			v, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "status:")))
			if err == nil {
				b.Charging = v == batteryStatusCharging || v == batteryStatusFull
			}
		}
	})

	return b
}

// ParseSignal extracts the rssi value, in dBm, from a telephony registry dump.
func ParseSignal(output string) int {
	dbm := SignalUnknown
	found := false

	forEachLine(output, func(line string) {
		if found || !strings.Contains(line, "SignalStrength") {
			return
		}

		pos := strings.Index(line, "rssi=")
		if pos < 0 {
			return
		}

		rest := line[pos+len("rssi="):]

		end := strings.IndexFunc(rest, func(r rune) bool {
			return (r < '0' || r > '9') && r != '-'
		})
		if end >= 0 {
			rest = rest[:end]
		}

		if v, err := strconv.Atoi(rest); err == nil {
			dbm = v
			found = true
		}
	})

	return dbm
}

// ParseUptime reads the first field of /proc/uptime and truncates it to whole seconds.
func ParseUptime(output string) uint64 {
	fields := strings.Fields(output)
	if len(fields) == 0 {
		return 0
	}

	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return uint64(v)
}

// ParseCallForwarding guesses whether call forwarding is active from a raw
// `service call phone` parcel dump. It is a heuristic, not an authoritative read:
// a parcel response longer than a fixed threshold is taken to carry forwarding data.
func ParseCallForwarding(output string) bool {
	if !strings.Contains(output, callForwardingMarker) {
		return false
	}

	return len(output) > callForwardingMinLength
}

// ParseAirplaneMode interprets `settings get global airplane_mode_on`.
func ParseAirplaneMode(output string) bool {
	return strings.TrimSpace(output) == "1"
}

func forEachLine(output string, fn func(line string)) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		fn(scanner.Text())
	}
}
