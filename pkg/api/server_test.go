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
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"github.com/ohmyphone/daemon/pkg/auth"
	"github.com/ohmyphone/daemon/pkg/device"
	"github.com/ohmyphone/daemon/pkg/lifecycle"
	"github.com/ohmyphone/daemon/pkg/logger"
	"github.com/ohmyphone/daemon/pkg/models"
	"github.com/ohmyphone/daemon/pkg/phone"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testSecret = []byte("test-secret")

type fixture struct {
	device  *MockDeviceService
	handler http.Handler
	now     time.Time
	offset  atomic.Int64
}

func newFixture(t *testing.T, opts ...func(*Server)) *fixture {
	t.Helper()

	return newLoggedFixture(t, logger.NewTestLogger(), opts...)
}

func newLoggedFixture(t *testing.T, log logger.Logger, opts ...func(*Server)) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		device: NewMockDeviceService(ctrl),
		now:    time.UnixMilli(1700000000000),
	}

	guard := auth.NewGuard(testSecret, auth.DefaultWindow, auth.WithClock(func() time.Time { return f.now }))
	opts = append([]func(*Server){WithVersion("1.2.3 (build: test)")}, opts...)
	f.handler = NewServer(f.device, guard, log, opts...).Handler()

	return f
}

// signed builds a request signed a distinct millisecond after the fixture clock.
func (f *fixture) signed(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	auth.SignRequest(req.Header, testSecret, []byte(body), f.now.Add(time.Duration(f.offset.Add(1))*time.Millisecond))

	return req
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())

	return v
}

func TestHealthIsUnauthenticated(t *testing.T) {
	f := newFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	resp := decode[models.HealthResponse](t, rec)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.3 (build: test)", resp.Version)
}

func TestStatus(t *testing.T) {
	f := newFixture(t)

	level := 82
	enabled := true
	f.device.EXPECT().Status(gomock.Any()).Return(&models.DeviceStatus{
		Battery:                  &level,
		SignalDBM:                -71,
		DataEnabled:              &enabled,
		DataDetectionMethod:      "settings",
		CallForwardingBestEffort: true,
		Uptime:                   42,
	})

	rec := f.do(f.signed(http.MethodGet, "/status", ""))

	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[models.DeviceStatus](t, rec)
	require.NotNil(t, resp.Battery)
	assert.Equal(t, 82, *resp.Battery)
	assert.Equal(t, -71, resp.SignalDBM)
	assert.Equal(t, "settings", resp.DataDetectionMethod)
	assert.True(t, resp.CallForwardingBestEffort)
	assert.Equal(t, uint64(42), resp.Uptime)
}

func TestAuthRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *fixture, req *http.Request)
		want   int
	}{
		{
			name: "missing headers",
			mutate: func(_ *fixture, req *http.Request) {
				req.Header.Del(auth.HeaderAuth)
				req.Header.Del(auth.HeaderTime)
			},
			want: http.StatusUnauthorized,
		},
		{
			name: "missing signature only",
			mutate: func(_ *fixture, req *http.Request) {
				req.Header.Del(auth.HeaderAuth)
			},
			want: http.StatusUnauthorized,
		},
		{
			name: "non numeric timestamp",
			mutate: func(_ *fixture, req *http.Request) {
				req.Header.Set(auth.HeaderTime, "yesterday")
			},
			want: http.StatusBadRequest,
		},
		{
			name: "expired timestamp",
			mutate: func(f *fixture, req *http.Request) {
				auth.SignRequest(req.Header, testSecret, nil, f.now.Add(-time.Minute))
			},
			want: http.StatusUnauthorized,
		},
		{
			name: "wrong secret",
			mutate: func(f *fixture, req *http.Request) {
				auth.SignRequest(req.Header, []byte("other"), nil, f.now)
			},
			want: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			req := f.signed(http.MethodGet, "/status", "")
			tt.mutate(f, req)

			rec := f.do(req)

			require.Equal(t, tt.want, rec.Code)

			resp := decode[models.ErrorResponse](t, rec)
			assert.Equal(t, tt.want, resp.Status)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestReplayIsRejected(t *testing.T) {
	f := newFixture(t)

	f.device.EXPECT().SetMobileData(gomock.Any(), true).Return(nil).Times(1)

	body := `{"enable":true}`
	first := f.signed(http.MethodPost, "/radio/data", body)

	replay := httptest.NewRequest(http.MethodPost, "/radio/data", strings.NewReader(body))
	replay.Header = first.Header.Clone()

	require.Equal(t, http.StatusOK, f.do(first).Code)

	rec := f.do(replay)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, decode[models.ErrorResponse](t, rec).Message, "replay")
}

func TestTamperedBodyIsRejected(t *testing.T) {
	f := newFixture(t)

	req := f.signed(http.MethodPost, "/radio/data", `{"enable":false}`)
	req.Body = io.NopCloser(strings.NewReader(`{"enable":true}`))

	rec := f.do(req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBodyTooLarge(t *testing.T) {
	f := newFixture(t, WithMaxBodyBytes(16))

	rec := f.do(f.signed(http.MethodPost, "/radio/data", `{"enable":true,"padding":"xxxxxxxxxxxxxxxx"}`))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestToggleEndpoints(t *testing.T) {
	errRadio := errors.New("exit status 1: permission denied")

	tests := []struct {
		name       string
		path       string
		body       string
		expect     func(d *MockDeviceService)
		wantStatus int
		want       models.ActionResponse
	}{
		{
			name: "enable data",
			path: "/radio/data",
			body: `{"enable":true}`,
			expect: func(d *MockDeviceService) {
				d.EXPECT().SetMobileData(gomock.Any(), true).Return(nil)
			},
			wantStatus: http.StatusOK,
			want:       models.ActionResponse{Success: true, Enabled: true, Message: "Mobile data enabled"},
		},
		{
			name: "disable data fails",
			path: "/radio/data",
			body: `{"enable":false}`,
			expect: func(d *MockDeviceService) {
				d.EXPECT().SetMobileData(gomock.Any(), false).Return(errRadio)
			},
			wantStatus: http.StatusInternalServerError,
			want: models.ActionResponse{
				Enabled: true,
				Message: "Failed to set mobile data: " + errRadio.Error(),
			},
		},
		{
			name: "disable airplane",
			path: "/radio/airplane",
			body: `{"enable":false}`,
			expect: func(d *MockDeviceService) {
				d.EXPECT().SetAirplaneMode(gomock.Any(), false).Return(nil)
			},
			wantStatus: http.StatusOK,
			want:       models.ActionResponse{Success: true, Message: "Airplane mode disabled"},
		},
		{
			name: "enable airplane fails",
			path: "/radio/airplane",
			body: `{"enable":true}`,
			expect: func(d *MockDeviceService) {
				d.EXPECT().SetAirplaneMode(gomock.Any(), true).Return(errRadio)
			},
			wantStatus: http.StatusInternalServerError,
			want: models.ActionResponse{
				Message: "Failed to set airplane mode: " + errRadio.Error(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.expect(f.device)

			rec := f.do(f.signed(http.MethodPost, tt.path, tt.body))

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.want, decode[models.ActionResponse](t, rec))
		})
	}
}

func TestToggleBadBodies(t *testing.T) {
	for _, body := range []string{`{"enable":`, `{}`, `{"enable":null}`} {
		t.Run(body, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(f.signed(http.MethodPost, "/radio/data", body))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, http.StatusBadRequest, decode[models.ErrorResponse](t, rec).Status)
		})
	}
}

func TestCallForward(t *testing.T) {
	number, err := phone.Parse("+15551234567")
	require.NoError(t, err)

	t.Run("enable", func(t *testing.T) {
		f := newFixture(t)
		f.device.EXPECT().SetCallForwarding(gomock.Any(), true, number).Return(nil)

		rec := f.do(f.signed(http.MethodPost, "/call/forward", `{"enable":true,"number":"+15551234567"}`))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t,
			models.ActionResponse{Success: true, Enabled: true, Message: "Call forwarding enabled"},
			decode[models.ActionResponse](t, rec))
	})

	t.Run("disable ignores number", func(t *testing.T) {
		f := newFixture(t)
		f.device.EXPECT().SetCallForwarding(gomock.Any(), false, phone.Number{}).Return(nil)

		rec := f.do(f.signed(http.MethodPost, "/call/forward", `{"enable":false,"number":"junk"}`))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Call forwarding disabled", decode[models.ActionResponse](t, rec).Message)
	})

	t.Run("enable without number", func(t *testing.T) {
		for _, body := range []string{`{"enable":true}`, `{"enable":true,"number":""}`} {
			f := newFixture(t)

			rec := f.do(f.signed(http.MethodPost, "/call/forward", body))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t,
				models.ActionResponse{Message: "Number required when enabling call forwarding"},
				decode[models.ActionResponse](t, rec))
		}
	})

	t.Run("enable with bad number", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(f.signed(http.MethodPost, "/call/forward", `{"enable":true,"number":"555-1234"}`))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid phone number format", decode[models.ActionResponse](t, rec).Message)
	})

	t.Run("missing number from service", func(t *testing.T) {
		f := newFixture(t)
		f.device.EXPECT().SetCallForwarding(gomock.Any(), true, number).Return(device.ErrMissingNumber)

		rec := f.do(f.signed(http.MethodPost, "/call/forward", `{"enable":true,"number":"+15551234567"}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("execution failure", func(t *testing.T) {
		f := newFixture(t)
		f.device.EXPECT().SetCallForwarding(gomock.Any(), true, number).Return(errors.New("mmi rejected"))

		rec := f.do(f.signed(http.MethodPost, "/call/forward", `{"enable":true,"number":"+15551234567"}`))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t,
			models.ActionResponse{Message: "Failed to set call forwarding: mmi rejected"},
			decode[models.ActionResponse](t, rec))
	})
}

func TestDial(t *testing.T) {
	number, err := phone.Parse("5551234567")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.device.EXPECT().Dial(gomock.Any(), number).Return(nil)

		rec := f.do(f.signed(http.MethodPost, "/call/dial", `{"number":"5551234567"}`))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t,
			models.DialResponse{Success: true, Message: "Dialing 5551234567"},
			decode[models.DialResponse](t, rec))
	})

	t.Run("invalid number", func(t *testing.T) {
		for _, n := range []string{"", "123", "+1 555 123 4567", "1234567890123456"} {
			f := newFixture(t)

			body, err := json.Marshal(models.DialRequest{Number: n})
			require.NoError(t, err)

			rec := f.do(f.signed(http.MethodPost, "/call/dial", string(body)))

			require.Equal(t, http.StatusBadRequest, rec.Code, strconv.Quote(n))
			assert.Equal(t,
				models.DialResponse{Message: "Invalid phone number format"},
				decode[models.DialResponse](t, rec))
		}
	})

	t.Run("failure", func(t *testing.T) {
		f := newFixture(t)
		f.device.EXPECT().Dial(gomock.Any(), number).Return(errors.New("exit status 255"))

		rec := f.do(f.signed(http.MethodPost, "/call/dial", `{"number":"5551234567"}`))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to initiate call: exit status 255", decode[models.DialResponse](t, rec).Message)
	})
}

func TestRouting(t *testing.T) {
	f := newFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, decode[models.ErrorResponse](t, rec).Status)

	rec = f.do(httptest.NewRequest(http.MethodGet, "/radio/data", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.StatusMethodNotAllowed, decode[models.ErrorResponse](t, rec).Status)
}

func TestPanicIsRecoveredAndLoggedWithRequestID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")

	log, err := lifecycle.NewLoggerImpl(&logger.Config{Level: "info", File: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = lifecycle.ShutdownLogger() })

	f := newLoggedFixture(t, log)
	f.device.EXPECT().Status(gomock.Any()).DoAndReturn(func(context.Context) *models.DeviceStatus {
		panic("dumpsys exploded")
	})

	rec := f.do(f.signed(http.MethodGet, "/status", ""))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	id := rec.Header().Get("X-Request-ID")
	require.NotEmpty(t, id)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var panicLogged, accessLogged bool

	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)

		if entry["request_id"] != id {
			continue
		}

		switch entry["message"] {
		case "Recovered from handler panic":
			panicLogged = true
		case "HTTP request":
			accessLogged = true
			assert.InDelta(t, http.StatusInternalServerError, entry["status"], 0)
		}
	}

	assert.True(t, panicLogged, "panic log carries the request ID")
	assert.True(t, accessLogged, "panicking request still gets an access log line")
}

func TestClassifyAuthError(t *testing.T) {
	reason, status := classifyAuthError(errors.New("something else"))
	assert.Equal(t, "unknown", reason)
	assert.Equal(t, http.StatusUnauthorized, status)

	reason, status = classifyAuthError(auth.ErrBadTimestamp)
	assert.Equal(t, "bad_timestamp", reason)
	assert.Equal(t, http.StatusBadRequest, status)
}
