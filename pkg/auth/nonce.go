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

package auth

import "sync"

// DefaultNonceCapacity is how many nonces are remembered before the set is reset.
const DefaultNonceCapacity = 1000

// NonceStore remembers nonces that have already been accepted.
type NonceStore interface {
	// Add records nonce and reports false if it was already present.
	Add(nonce string) bool
}

// MemoryNonceStore is a bounded in-process NonceStore. Once it holds more than its
// capacity it forgets everything at once, which reopens a replay window for nonces
// still inside the timestamp window.
type MemoryNonceStore struct {
	mu       sync.Mutex
	seen     map[string]struct{}
	capacity int
}

// NewMemoryNonceStore creates a store. A non-positive capacity uses DefaultNonceCapacity.
func NewMemoryNonceStore(capacity int) *MemoryNonceStore {
	if capacity <= 0 {
		capacity = DefaultNonceCapacity
	}

	return &MemoryNonceStore{
		seen:     make(map[string]struct{}),
		capacity: capacity,
	}
}

func (s *MemoryNonceStore) Add(nonce string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[nonce]; ok {
		return false
	}

	s.seen[nonce] = struct{}{}

	if len(s.seen) > s.capacity {
		clear(s.seen)
	}

	return true
}

// Len returns the number of remembered nonces.
func (s *MemoryNonceStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.seen)
}
