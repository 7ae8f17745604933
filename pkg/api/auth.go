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
	"errors"
	"io"
	"net/http"

	"github.com/ohmyphone/daemon/pkg/auth"
	srHttp "github.com/ohmyphone/daemon/pkg/http"
)

// authedHandler receives the body bytes that were verified.
type authedHandler func(w http.ResponseWriter, r *http.Request, body []byte)

// authenticated reads the whole body, verifies it, and only then calls next.
// next sees exactly the bytes the signature covered.
func (s *Server) authenticated(next authedHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, "Request body too large", http.StatusRequestEntityTooLarge)

				return
			}

			writeError(w, "Failed to read request body", http.StatusBadRequest)

			return
		}

		if err := s.verifier.Verify(r.Header, body); err != nil {
			reason, status := classifyAuthError(err)

			recordAuthRejection(r.Context(), reason)

			s.logger.Warn().
				Str("request_id", srHttp.RequestIDFromContext(r.Context())).
				Str("path", r.URL.Path).
				Str("remote_addr", r.RemoteAddr).
				Str("reason", reason).
				Msg("Rejected unauthenticated request")

			writeError(w, err.Error(), status)

			return
		}

		next(w, r, body)
	})
}

func classifyAuthError(err error) (reason string, status int) {
	switch {
	case errors.Is(err, auth.ErrMissingHeader):
		return "missing_header", http.StatusUnauthorized
	case errors.Is(err, auth.ErrBadTimestamp):
		return "bad_timestamp", http.StatusBadRequest
	case errors.Is(err, auth.ErrExpired):
		return "expired", http.StatusUnauthorized
	case errors.Is(err, auth.ErrReplayDetected):
		return "replay", http.StatusUnauthorized
	case errors.Is(err, auth.ErrInvalidSignature):
		return "invalid_signature", http.StatusUnauthorized
	}

	return "unknown", http.StatusUnauthorized
}
