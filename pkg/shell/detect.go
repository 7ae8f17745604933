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

	"github.com/ohmyphone/daemon/pkg/parsers"
)

// DetectionMethod names the source that settled a data state.
type DetectionMethod string

const (
	MethodSettings DetectionMethod = "settings"
	MethodLogcat   DetectionMethod = "logcat"
	MethodUnknown  DetectionMethod = "unknown"
)

// DataDetection is the outcome of DetectDataState.
type DataDetection struct {
	State  parsers.DataState
	Method DetectionMethod
}

// DetectDataState works out whether mobile data is switched on. The settings store is
// asked first and only an exact "0" or "1" is taken as an answer; failing that, the
// most recent data controller log line decides. A command failure at either tier
// just moves on to the next one.
func DetectDataState(ctx context.Context, exec CommandExecutor) DataDetection {
	if out, err := exec.Execute(ctx, GetDataSetting{}); err == nil {
		if state := parsers.ParseDataSetting(out); state != parsers.DataUnknown {
			return DataDetection{State: state, Method: MethodSettings}
		}
	}

	if out, err := exec.Execute(ctx, GetDataLog{}); err == nil {
		if state := parsers.ParseDataLog(out); state != parsers.DataUnknown {
			return DataDetection{State: state, Method: MethodLogcat}
		}
	}

	return DataDetection{State: parsers.DataUnknown, Method: MethodUnknown}
}
