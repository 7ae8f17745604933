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

// Package api serves the daemon's authenticated HTTP surface.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	srHttp "github.com/ohmyphone/daemon/pkg/http"
	"github.com/ohmyphone/daemon/pkg/logger"
)

// DefaultMaxBodyBytes caps how much of a request body is read for verification.
const DefaultMaxBodyBytes = 64 << 10

// Server routes HTTP requests to a DeviceService behind a RequestVerifier.
type Server struct {
	router       *mux.Router
	device       DeviceService
	verifier     RequestVerifier
	logger       logger.Logger
	maxBodyBytes int64
	version      string
}

// NewServer creates a new API server instance.
func NewServer(device DeviceService, verifier RequestVerifier, log logger.Logger, options ...func(*Server)) *Server {
	s := &Server{
		router:       mux.NewRouter(),
		device:       device,
		verifier:     verifier,
		logger:       log,
		maxBodyBytes: DefaultMaxBodyBytes,
	}

	for _, o := range options {
		o(s)
	}

	s.setupRoutes()

	return s
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) func(*Server) {
	return func(s *Server) {
		s.maxBodyBytes = n
	}
}

// WithVersion sets the version reported by /health.
func WithVersion(v string) func(*Server) {
	return func(s *Server) {
		s.version = v
	}
}

// Handler returns the root handler with request logging and panic recovery applied.
func (s *Server) Handler() http.Handler {
	return srHttp.RequestLogger(s.logger)(srHttp.Recoverer(s.logger)(s.router))
}

func (s *Server) setupRoutes() {
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, "Not found", http.StatusNotFound)
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	s.router.Handle("/status", s.authenticated(s.handleStatus)).Methods(http.MethodGet)
	s.router.Handle("/radio/data", s.authenticated(s.handleMobileData)).Methods(http.MethodPost)
	s.router.Handle("/radio/airplane", s.authenticated(s.handleAirplaneMode)).Methods(http.MethodPost)
	s.router.Handle("/call/forward", s.authenticated(s.handleCallForward)).Methods(http.MethodPost)
	s.router.Handle("/call/dial", s.authenticated(s.handleDial)).Methods(http.MethodPost)
}
