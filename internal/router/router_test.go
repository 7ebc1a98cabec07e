package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sudooom.mj.advisor/internal/config"
	"sudooom.mj.advisor/internal/handler"
	"sudooom.mj.advisor/internal/health"
	"sudooom.mj.advisor/internal/jwt"
	"sudooom.mj.advisor/internal/mahjong"
	"sudooom.mj.advisor/internal/model"
	"sudooom.mj.advisor/internal/repository"
	"sudooom.mj.advisor/internal/service"
	"sudooom.mj.advisor/internal/snowflake"
	"sudooom.mj.advisor/pkg/response"
)

// recordingStore 只记录写入的分析记录
type recordingStore struct {
	mu      sync.Mutex
	records []*model.AnalysisRecord
}

func (s *recordingStore) Create(_ context.Context, record *model.AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *recordingStore) GetByID(context.Context, int64) (*model.AnalysisRecord, error) {
	return nil, repository.ErrRecordNotFound
}

func (s *recordingStore) ListRecent(context.Context, model.Operation, int) ([]*model.AnalysisRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.AnalysisRecord(nil), s.records...), nil
}

func (s *recordingStore) clientIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.records))
	for _, r := range s.records {
		ids = append(ids, r.ClientID)
	}
	return ids
}

func newTestRouter(t *testing.T, jwtService *jwt.Service) http.Handler {
	t.Helper()
	return newTestRouterWithStore(t, jwtService, nil)
}

func newTestRouterWithStore(t *testing.T, jwtService *jwt.Service, store service.RecordStore) http.Handler {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := service.NewAdvisorService(mahjong.NewAnalyzer(), nil, store, node, nil)
	cfg := &config.Config{App: config.AppConfig{Mode: "test"}}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	return SetupRouter(cfg, logger, jwtService,
		handler.NewAdvisorHandler(svc),
		handler.NewHealthHandler(svc, health.NewChecker(time.Second)),
	)
}

func call(t *testing.T, h http.Handler, method, path, body, token string) (int, response.Response) {
	t.Helper()
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestRoutes(t *testing.T) {
	r := newTestRouter(t, nil)

	tests := []struct {
		method string
		path   string
		body   string
		code   int
	}{
		{http.MethodPost, "/api/v1/recommend", `{"hand":"123456789m1122p1z"}`, response.CodeSuccess},
		{http.MethodPost, "/api/v1/analyze", `{"hand":"123456789m1122p1z"}`, response.CodeSuccess},
		{http.MethodPost, "/api/v1/agarihai", `{"hand":"123456789m1122p"}`, response.CodeSuccess},
		{http.MethodPost, "/api/v1/shanten", `{"hand":"123456789m1122p"}`, response.CodeSuccess},
		{http.MethodGet, "/api/v1/recommend/health", "", response.CodeSuccess},
		{http.MethodGet, "/api/v1/agarihai/health", "", response.CodeSuccess},
		{http.MethodGet, "/api/v1/records", "", response.CodeSuccess},
		{http.MethodGet, "/health", "", response.CodeSuccess},
		{http.MethodGet, "/ready", "", response.CodeSuccess},
		{http.MethodPost, "/api/v1/score/calculate", `{"hand":"112233456789m11s"}`, 30001},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			status, resp := call(t, r, tt.method, tt.path, tt.body, "")
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, tt.code, resp.Code, resp.Message)
		})
	}
}

func TestRecordsRequireToken(t *testing.T) {
	svc := jwt.NewService("secret", "mj-advisor", time.Hour)
	r := newTestRouter(t, svc)

	status, _ := call(t, r, http.MethodGet, "/api/v1/records", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	token, _, err := svc.GenerateToken("client-1")
	require.NoError(t, err)
	status, resp := call(t, r, http.MethodGet, "/api/v1/records", "", token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	// 分析接口不需要 Token
	_, resp = call(t, r, http.MethodPost, "/api/v1/recommend", `{"hand":"123456789m1122p1z"}`, "")
	assert.Equal(t, response.CodeSuccess, resp.Code)
}

func TestAnalysisRoutesRecordClientID(t *testing.T) {
	svc := jwt.NewService("secret", "mj-advisor", time.Hour)
	store := &recordingStore{}
	r := newTestRouterWithStore(t, svc, store)

	token, _, err := svc.GenerateToken("client-9")
	require.NoError(t, err)

	hand := `{"hand":"123456789m1122p1z"}`
	status, resp := call(t, r, http.MethodPost, "/api/v1/recommend", hand, token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	// 无效 Token 按匿名请求处理
	status, resp = call(t, r, http.MethodPost, "/api/v1/analyze", hand, "not-a-token")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	status, _ = call(t, r, http.MethodPost, "/api/v1/agarihai", `{"hand":"123456789m1122p"}`, "")
	assert.Equal(t, http.StatusOK, status)

	assert.Equal(t, []string{"client-9", "", ""}, store.clientIDs())
}
