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

package shell

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName              = "ohmyphone.shell"
	metricCommandsTotal    = "shell_commands_total"
	metricCommandDurations = "shell_command_duration_seconds"
)

var (
	//nolint:gochecknoglobals // metrics instruments are shared across the process intentionally
	meterOnce sync.Once
	//nolint:gochecknoglobals // metrics instruments are shared across the process intentionally
	commandCounter metric.Int64Counter
	//nolint:gochecknoglobals // metrics instruments are shared across the process intentionally
	commandHistogram metric.Float64Histogram
)

func initMeter() {
	meter := otel.Meter(meterName)

	if counter, err := meter.Int64Counter(
		metricCommandsTotal,
		metric.WithDescription("Total catalog commands executed, by outcome"),
	); err != nil {
		otel.Handle(err)
	} else {
		commandCounter = counter
	}

	if hist, err := meter.Float64Histogram(
		metricCommandDurations,
		metric.WithDescription("Wall time of catalog command executions"),
		metric.WithUnit("s"),
	); err != nil {
		otel.Handle(err)
	} else {
		commandHistogram = hist
	}
}

func recordCommand(ctx context.Context, name, outcome string, duration time.Duration) {
	meterOnce.Do(initMeter)

	attrs := metric.WithAttributes(
		attribute.String("command", name),
		attribute.String("outcome", outcome),
	)

	if commandCounter != nil {
		commandCounter.Add(ctx, 1, attrs)
	}

	if commandHistogram != nil {
		commandHistogram.Record(ctx, duration.Seconds(), attrs)
	}
}
