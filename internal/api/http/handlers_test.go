package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GriffinCanCode/AgentOS/bridge/internal/domain/service"
	"github.com/GriffinCanCode/AgentOS/bridge/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/bridge/internal/shared/types"
)

type stubProvider struct {
	result  *types.Result
	err     error
	params  map[string]interface{}
	appCtx  *types.Context
	ctxErr  error
	invoked bool
}

func (s *stubProvider) Definition() types.Service {
	return types.Service{
		ID:       "stub",
		Name:     "Stub",
		Category: types.CategoryHTTP,
		Tools:    []types.Tool{{ID: "stub_cmd", Name: "Stub"}},
	}
}

func (s *stubProvider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	s.invoked = true
	s.params = params
	s.appCtx = appCtx
	s.ctxErr = ctx.Err()
	return s.result, s.err
}

func setupRouter(t *testing.T, p service.Provider) (*gin.Engine, *Handlers) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := service.NewRegistry()
	require.NoError(t, reg.Register(p))

	h := NewHandlers(reg, monitoring.NewMetrics(prometheus.NewRegistry()), zap.NewNop())

	router := gin.New()
	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/commands", h.ListCommands)
	router.POST("/invoke/:command", h.Invoke)
	router.POST("/logs", h.StreamLogs)
	router.GET("/metrics/summary", h.GetMetricsSummary)
	return router, h
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestInvokeSuccess(t *testing.T) {
	stub := &stubProvider{result: types.Success(map[string]interface{}{"status": uint16(200), "body": "ok"})}
	router, _ := setupRouter(t, stub)

	w := do(router, http.MethodPost, "/invoke/stub_cmd", `{"url":"http://x","method":"GET","headers":[["A","1"]]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"status":200,"body":"ok"}}`, w.Body.String())

	require.True(t, stub.invoked)
	assert.Equal(t, "http://x", stub.params["url"])
	assert.Equal(t, []interface{}{[]interface{}{"A", "1"}}, stub.params["headers"])
	assert.Equal(t, "http", stub.appCtx.Channel)
	assert.True(t, strings.HasPrefix(stub.appCtx.RequestID, "req_"))
}

func TestInvokeFailureResult(t *testing.T) {
	stub := &stubProvider{result: types.Failure("Unsupported HTTP method: PATCH")}
	router, _ := setupRouter(t, stub)

	w := do(router, http.MethodPost, "/invoke/stub_cmd", `{"url":"http://x","method":"PATCH"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Unsupported HTTP method: PATCH"}`, w.Body.String())
}

func TestInvokeBoundaryErrors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"invalid json", "/invoke/stub_cmd", `{"url":`, http.StatusBadRequest, "invalid JSON arguments"},
		{"array args", "/invoke/stub_cmd", `[1,2]`, http.StatusBadRequest, "invalid JSON arguments"},
		{"unknown command", "/invoke/nope", `{}`, http.StatusNotFound, "command not found: nope"},
		{"invalid command name", "/invoke/bad%20name", `{}`, http.StatusBadRequest, "invalid characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubProvider{result: types.Success(nil)}
			router, _ := setupRouter(t, stub)

			w := do(router, http.MethodPost, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantError)
			assert.False(t, stub.invoked)
		})
	}
}

func TestInvokeEmptyBody(t *testing.T) {
	stub := &stubProvider{result: types.Success(nil)}
	router, _ := setupRouter(t, stub)

	for _, body := range []string{"", "null"} {
		w := do(router, http.MethodPost, "/invoke/stub_cmd", body)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotNil(t, stub.params)
		assert.Empty(t, stub.params)
	}
}

func TestInvokeProviderError(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	stub := &stubProvider{err: errors.New("provider exploded")}

	gin.SetMode(gin.TestMode)
	reg := service.NewRegistry()
	require.NoError(t, reg.Register(stub))
	h := NewHandlers(reg, nil, zap.New(core))
	router := gin.New()
	router.POST("/invoke/:command", h.Invoke)

	w := do(router, http.MethodPost, "/invoke/stub_cmd", `{}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"provider exploded"}`, w.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("Command execution failed").Len())
}

func TestInvokeIgnoresCallerCancellation(t *testing.T) {
	stub := &stubProvider{result: types.Success(nil)}
	router, _ := setupRouter(t, stub)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodPost, "/invoke/stub_cmd", strings.NewReader(`{}`)).WithContext(ctx)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.True(t, stub.invoked)
	assert.NoError(t, stub.ctxErr)
}

func TestInfoEndpoints(t *testing.T) {
	router, _ := setupRouter(t, &stubProvider{result: types.Success(nil)})

	t.Run("root", func(t *testing.T) {
		w := do(router, http.MethodGet, "/", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"online"`)
	})

	t.Run("health", func(t *testing.T) {
		w := do(router, http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total_commands":1`)
		assert.Contains(t, w.Body.String(), `"runtime"`)
	})

	t.Run("commands", func(t *testing.T) {
		w := do(router, http.MethodGet, "/commands", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"stub_cmd"`)
	})

	t.Run("metrics summary", func(t *testing.T) {
		w := do(router, http.MethodGet, "/metrics/summary", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"error_rate":0`)
	})
}

func TestStreamLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	gin.SetMode(gin.TestMode)
	h := NewHandlers(service.NewRegistry(), nil, zap.New(core))
	router := gin.New()
	router.POST("/logs", h.StreamLogs)

	w := do(router, http.MethodPost, "/logs", `{"source":"ui","entries":[
		{"id":"1","level":"error","message":"render failed","context":{"component":"Window"}},
		{"id":"2","level":"verbose","message":"tick"}
	]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"entries_received":2`)

	errs := logs.FilterMessage("render failed").All()
	require.Len(t, errs, 1)
	assert.Equal(t, zapcore.ErrorLevel, errs[0].Level)
	assert.Equal(t, "Window", errs[0].ContextMap()["component"])
	assert.Equal(t, zapcore.DebugLevel, logs.FilterMessage("tick").All()[0].Level)

	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodPost, "/logs", `{"source":"kernel","entries":[{}]}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodPost, "/logs", `{"source":"ui","entries":[]}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodPost, "/logs", `not json`).Code)
}
