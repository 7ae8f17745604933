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

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ohmyphone/daemon/pkg/device"
	"github.com/ohmyphone/daemon/pkg/models"
	"github.com/ohmyphone/daemon/pkg/phone"
)

const (
	msgNumberRequired = "Number required when enabling call forwarding"
	msgInvalidNumber  = "Invalid phone number format"
	msgEnableRequired = "Field 'enable' is required"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{Status: "ok", Version: s.version})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request, _ []byte) {
	writeJSON(w, http.StatusOK, s.device.Status(r.Context()))
}

func (s *Server) handleMobileData(w http.ResponseWriter, r *http.Request, body []byte) {
	s.handleToggle(w, r, body, "mobile_data", "Mobile data", s.device.SetMobileData)
}

func (s *Server) handleAirplaneMode(w http.ResponseWriter, r *http.Request, body []byte) {
	s.handleToggle(w, r, body, "airplane_mode", "Airplane mode", s.device.SetAirplaneMode)
}

func (s *Server) handleToggle(
	w http.ResponseWriter,
	r *http.Request,
	body []byte,
	action, label string,
	apply func(ctx context.Context, enable bool) error,
) {
	var req models.ToggleRequest
	if !decodeBody(w, body, &req) {
		return
	}

	if req.Enable == nil {
		writeError(w, msgEnableRequired, http.StatusBadRequest)

		return
	}

	enable := *req.Enable

	if err := apply(r.Context(), enable); err != nil {
		recordAction(r.Context(), action, false)

		writeJSON(w, http.StatusInternalServerError, models.ActionResponse{
			Success: false,
			Enabled: !enable,
			Message: fmt.Sprintf("Failed to set %s: %v", lowerFirst(label), err),
		})

		return
	}

	recordAction(r.Context(), action, true)

	writeJSON(w, http.StatusOK, models.ActionResponse{
		Success: true,
		Enabled: enable,
		Message: label + " " + stateWord(enable),
	})
}

func (s *Server) handleCallForward(w http.ResponseWriter, r *http.Request, body []byte) {
	var req models.CallForwardRequest
	if !decodeBody(w, body, &req) {
		return
	}

	if req.Enable == nil {
		writeError(w, msgEnableRequired, http.StatusBadRequest)

		return
	}

	enable := *req.Enable

	var number phone.Number

	if enable {
		if req.Number == nil || *req.Number == "" {
			writeJSON(w, http.StatusBadRequest, models.ActionResponse{Message: msgNumberRequired})

			return
		}

		n, err := phone.Parse(*req.Number)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.ActionResponse{Message: msgInvalidNumber})

			return
		}

		number = n
	}

	if err := s.device.SetCallForwarding(r.Context(), enable, number); err != nil {
		if errors.Is(err, device.ErrMissingNumber) {
			writeJSON(w, http.StatusBadRequest, models.ActionResponse{Message: msgNumberRequired})

			return
		}

		recordAction(r.Context(), "call_forwarding", false)

		writeJSON(w, http.StatusInternalServerError, models.ActionResponse{
			Success: false,
			Enabled: !enable,
			Message: fmt.Sprintf("Failed to set call forwarding: %v", err),
		})

		return
	}

	recordAction(r.Context(), "call_forwarding", true)

	writeJSON(w, http.StatusOK, models.ActionResponse{
		Success: true,
		Enabled: enable,
		Message: "Call forwarding " + stateWord(enable),
	})
}

func (s *Server) handleDial(w http.ResponseWriter, r *http.Request, body []byte) {
	var req models.DialRequest
	if !decodeBody(w, body, &req) {
		return
	}

	number, err := phone.Parse(req.Number)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.DialResponse{Message: msgInvalidNumber})

		return
	}

	if err := s.device.Dial(r.Context(), number); err != nil {
		recordAction(r.Context(), "dial", false)

		writeJSON(w, http.StatusInternalServerError, models.DialResponse{
			Message: fmt.Sprintf("Failed to initiate call: %v", err),
		})

		return
	}

	recordAction(r.Context(), "dial", true)

	writeJSON(w, http.StatusOK, models.DialResponse{
		Success: true,
		Message: "Dialing " + number.String(),
	})
}

// decodeBody writes a 400 and returns false when body is not valid JSON for dst.
func decodeBody(w http.ResponseWriter, body []byte, dst interface{}) bool {
	if err := json.Unmarshal(body, dst); err != nil {
		writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)

		return false
	}

	return true
}

func stateWord(enable bool) string {
	if enable {
		return "enabled"
	}

	return "disabled"
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}

	return string(s[0]|0x20) + s[1:]
}
