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

package models

// DeviceStatus represents a point-in-time snapshot of the handset.
// @Description Battery, radio and telephony state gathered for a single request.
type DeviceStatus struct {
	// Battery level in percent, null when the battery report could not be read
	Battery *int `json:"battery" example:"82"`
	// Whether the battery is charging or full
	Charging bool `json:"charging" example:"false"`
	// Signal strength in dBm, -999 when unknown
	SignalDBM int `json:"signal_dbm" example:"-71"`
	// Mobile data setting, null when neither source was conclusive
	DataEnabled *bool `json:"data_enabled" example:"true"`
	// Source that decided data_enabled: settings, logcat or unknown
	DataDetectionMethod string `json:"data_detection_method" example:"settings"`
	// Whether a mobile network agent is connected and carrying internet traffic
	DataConnected bool `json:"data_connected" example:"true"`
	// Whether airplane mode is on
	AirplaneMode bool `json:"airplane_mode" example:"false"`
	// Heuristic reading of unconditional call forwarding
	CallForwardingActive bool `json:"call_forwarding_active" example:"false"`
	// Always true: call_forwarding_active is inferred from the size of a raw parcel dump
	CallForwardingBestEffort bool `json:"call_forwarding_best_effort" example:"true"`
	// Seconds since boot
	Uptime uint64 `json:"uptime" example:"12345"`
}

// ToggleRequest switches a radio feature on or off.
// @Description Request body for /radio/data and /radio/airplane.
type ToggleRequest struct {
	// Desired state
	Enable *bool `json:"enable" example:"true"`
}

// CallForwardRequest configures unconditional call forwarding.
// @Description Number is required when enable is true.
type CallForwardRequest struct {
	// Desired state
	Enable *bool `json:"enable" example:"true"`
	// Forwarding target
	Number *string `json:"number,omitempty" example:"+15551234567"`
}

// DialRequest places an outgoing call.
type DialRequest struct {
	// Number to call
	Number string `json:"number" example:"+15551234567"`
}

// ActionResponse reports the result of a state-changing action.
// @Description On failure enabled holds the state the feature is assumed to have kept.
type ActionResponse struct {
	Success bool   `json:"success" example:"true"`
	Enabled bool   `json:"enabled" example:"true"`
	Message string `json:"message" example:"Mobile data enabled"`
}

// DialResponse reports the result of a dial request.
type DialResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Dialing +15551234567"`
}

// HealthResponse is served without authentication.
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Version string `json:"version" example:"1.0.0 (build: dev)"`
}

// ErrorResponse represents an API error response.
// @Description Error information returned from the API.
type ErrorResponse struct {
	// Error message
	Message string `json:"message" example:"Invalid request parameters"`
	// HTTP status code
	Status int `json:"status" example:"400"`
}
