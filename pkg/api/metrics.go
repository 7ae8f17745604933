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
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName              = "ohmyphone.api"
	metricAuthRejections   = "api_auth_rejections_total"
	metricActionsProcessed = "api_actions_total"
)

var (
	//nolint:gochecknoglobals // metrics instruments are shared across the process intentionally
	meterOnce sync.Once
	//nolint:gochecknoglobals // metrics instruments are shared across the process intentionally
	authRejectionCounter metric.Int64Counter
	//nolint:gochecknoglobals // metrics instruments are shared across the process intentionally
	actionCounter metric.Int64Counter
)

func initMeter() {
	meter := otel.Meter(meterName)

	if counter, err := meter.Int64Counter(
		metricAuthRejections,
		metric.WithDescription("Requests rejected by the integrity gate, by reason"),
	); err != nil {
		otel.Handle(err)
	} else {
		authRejectionCounter = counter
	}

	if counter, err := meter.Int64Counter(
		metricActionsProcessed,
		metric.WithDescription("State-changing device actions, by action and outcome"),
	); err != nil {
		otel.Handle(err)
	} else {
		actionCounter = counter
	}
}

func recordAuthRejection(ctx context.Context, reason string) {
	meterOnce.Do(initMeter)
	if authRejectionCounter == nil {
		return
	}

	authRejectionCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func recordAction(ctx context.Context, action string, success bool) {
	meterOnce.Do(initMeter)
	if actionCounter == nil {
		return
	}

	actionCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.Bool("success", success),
	))
}
