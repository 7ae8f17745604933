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

//go:generate mockgen -destination=mock_api.go -package=api github.com/ohmyphone/daemon/pkg/api DeviceService,RequestVerifier

package api

import (
	"context"
	"net/http"

	"github.com/ohmyphone/daemon/pkg/models"
	"github.com/ohmyphone/daemon/pkg/phone"
)

// DeviceService is the handset surface the HTTP handlers drive.
type DeviceService interface {
	Status(ctx context.Context) *models.DeviceStatus
	SetMobileData(ctx context.Context, enable bool) error
	SetAirplaneMode(ctx context.Context, enable bool) error
	SetCallForwarding(ctx context.Context, enable bool, number phone.Number) error
	Dial(ctx context.Context, number phone.Number) error
}

// RequestVerifier authenticates a request from its headers and exact body bytes.
type RequestVerifier interface {
	Verify(header http.Header, body []byte) error
}
