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

// Package auth verifies that a request was signed with the shared secret, is fresh,
// and has not been seen before.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"time"
)

const (
	// HeaderAuth carries the lowercase hex HMAC-SHA256 signature.
	HeaderAuth = "X-Auth"
	// HeaderTime carries the signing time in milliseconds since the Unix epoch.
	HeaderTime = "X-Time"

	// DefaultWindow is the accepted clock skew between client and daemon.
	DefaultWindow = 30 * time.Second
)

var (
	ErrMissingHeader    = errors.New("missing authentication header")
	ErrBadTimestamp     = errors.New("malformed timestamp")
	ErrExpired          = errors.New("request timestamp outside allowed window")
	ErrReplayDetected   = errors.New("request replay detected")
	ErrInvalidSignature = errors.New("invalid request signature")
)

// Clock returns the current time.
type Clock func() time.Time

// Guard authenticates requests against a shared secret.
type Guard struct {
	secret        []byte
	windowSeconds int64
	nonces        NonceStore
	now           Clock
}

// Option customizes a Guard.
type Option func(*Guard)

// WithClock replaces time.Now.
func WithClock(c Clock) Option {
	return func(g *Guard) {
		g.now = c
	}
}

// WithNonceStore replaces the default in-memory nonce store.
func WithNonceStore(s NonceStore) Option {
	return func(g *Guard) {
		g.nonces = s
	}
}

// NewGuard creates a Guard. window is truncated to whole seconds.
func NewGuard(secret []byte, window time.Duration, opts ...Option) *Guard {
	g := &Guard{
		secret:        append([]byte(nil), secret...),
		windowSeconds: int64(window / time.Second),
		nonces:        NewMemoryNonceStore(DefaultNonceCapacity),
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Verify checks the headers of a request against its exact body bytes.
//
// The replay check runs before the signature check, so a request with a bad
// signature still consumes its nonce.
func (g *Guard) Verify(header http.Header, body []byte) error {
	sig := header.Get(HeaderAuth)
	ts := header.Get(HeaderTime)

	if sig == "" || ts == "" {
		return ErrMissingHeader
	}

	tsMillis, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return ErrBadTimestamp
	}

	if absDiff(g.now().UnixMilli(), tsMillis)/1000 > uint64(max(g.windowSeconds, 0)) {
		return ErrExpired
	}

	if !g.nonces.Add(ts + "-" + sig) {
		return ErrReplayDetected
	}

	if !hmac.Equal([]byte(sig), []byte(Sign(g.secret, body, ts))) {
		return ErrInvalidSignature
	}

	return nil
}

// Sign returns the X-Auth value for body signed at ts, the literal X-Time string.
func Sign(secret, body []byte, ts string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	mac.Write([]byte(ts))

	return hex.EncodeToString(mac.Sum(nil))
}

// SignRequest sets both authentication headers on h for body signed at t.
func SignRequest(h http.Header, secret, body []byte, t time.Time) {
	ts := strconv.FormatInt(t.UnixMilli(), 10)

	h.Set(HeaderTime, ts)
	h.Set(HeaderAuth, Sign(secret, body, ts))
}

// absDiff returns |a-b| without overflowing for any pair of int64 values.
func absDiff(a, b int64) uint64 {
	if a >= b {
		return uint64(a) - uint64(b)
	}

	return uint64(b) - uint64(a)
}
