package validation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"phonechecker/internal/events"
	apphttp "phonechecker/internal/http"
	"phonechecker/platform/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuota struct {
	consumed int
	err      error
}

func (f *fakeQuota) Consume(_ context.Context, _ string, n int) error {
	if f.err != nil {
		return f.err
	}
	f.consumed += n
	return nil
}

type fakePublisher struct {
	published []events.Event
}

func (f *fakePublisher) Publish(_ context.Context, event events.Event) {
	f.published = append(f.published, event)
}

type moduleConfig struct{}

func (moduleConfig) GetDefaultRegion() string  { return "SA" }
func (moduleConfig) GetGuestDailyChecks() int { return 50 }
func (moduleConfig) GetBulkMaxNumbers() int   { return 3 }

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
}

func newTestRouter(q Quota, p events.Publisher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	m := NewModule(moduleConfig{}, q, p, nil)
	m.RegisterRoutes(&apphttp.RouterContext{Engine: engine, V1: engine.Group("/api/v1")})
	return engine
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestCheck_UsesDefaultRegion(t *testing.T) {
	q := &fakeQuota{}
	rec, env := doJSON(t, newTestRouter(q, nil), http.MethodPost, "/api/v1/phone/check", `{"phone_number":"0501234567"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	var r Result
	require.NoError(t, json.Unmarshal(env.Data, &r))
	assert.True(t, r.Success)
	assert.Equal(t, "+966501234567", r.PhoneNumber.E164)
	assert.Equal(t, 1, q.consumed)
}

func TestCheck_InvalidNumberIsStillOK(t *testing.T) {
	rec, env := doJSON(t, newTestRouter(&fakeQuota{}, nil), http.MethodPost, "/api/v1/phone/check", `{"phone_number":"abc","region":"us"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var r Result
	require.NoError(t, json.Unmarshal(env.Data, &r))
	assert.False(t, r.Success)
	assert.Equal(t, ErrNotANumber, r.ErrorType)
}

func TestCheck_MissingNumber(t *testing.T) {
	q := &fakeQuota{}
	rec, env := doJSON(t, newTestRouter(q, nil), http.MethodPost, "/api/v1/phone/check", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Phone number is required", env.Error)
	assert.Zero(t, q.consumed)
}

func TestCheck_QuotaExhausted(t *testing.T) {
	q := &fakeQuota{err: apperr.TooManyRequests("Rate limit exceeded").WithDetails(map[string]int{"used": 50, "limit": 50})}
	rec, env := doJSON(t, newTestRouter(q, nil), http.MethodPost, "/api/v1/phone/check", `{"phone_number":"+966501234567"}`)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Rate limit exceeded", env.Error)
	assert.JSONEq(t, `{"used":50,"limit":50}`, string(env.Details))
}

func TestCheck_QuotaStoreDown(t *testing.T) {
	q := &fakeQuota{err: apperr.Unavailable("quota store unavailable", errors.New("dial tcp: refused"))}
	rec, _ := doJSON(t, newTestRouter(q, nil), http.MethodPost, "/api/v1/phone/check", `{"phone_number":"+966501234567"}`)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestBulkCheck_ProcessesEveryNumber(t *testing.T) {
	q := &fakeQuota{}
	p := &fakePublisher{}
	body := `{"phone_numbers":["+966501234567","abc","+442071838750"],"telegram_username":"alice"}`
	rec, env := doJSON(t, newTestRouter(q, p), http.MethodPost, "/api/v1/phone/bulk-check", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp BulkCheckResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, 3, resp.TotalProcessed)
	require.Len(t, resp.Results, 3)
	assert.True(t, resp.Results[0].Success)
	assert.False(t, resp.Results[1].Success)
	assert.True(t, resp.Results[2].Success)
	assert.Equal(t, 3, q.consumed)

	require.Len(t, p.published, 1)
	evt, ok := p.published[0].(events.BulkCheckCompleted)
	require.True(t, ok)
	assert.Equal(t, "alice", evt.Handle)
	assert.Equal(t, 3, evt.TotalProcessed)
	assert.Equal(t, 2, evt.ValidCount)
	assert.False(t, evt.OccurredAt().IsZero())
}

func TestBulkCheck_NoHandleNoEvent(t *testing.T) {
	p := &fakePublisher{}
	rec, _ := doJSON(t, newTestRouter(&fakeQuota{}, p), http.MethodPost, "/api/v1/phone/bulk-check", `{"phone_numbers":["+966501234567"]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, p.published)
}

func TestBulkCheck_LimitExceeded(t *testing.T) {
	q := &fakeQuota{}
	body := `{"phone_numbers":["1","2","3","4"]}`
	rec, env := doJSON(t, newTestRouter(q, nil), http.MethodPost, "/api/v1/phone/bulk-check", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Bulk limit exceeded. Maximum: 3 numbers", env.Error)
	assert.Zero(t, q.consumed)
}

func TestBulkCheck_EmptyList(t *testing.T) {
	rec, env := doJSON(t, newTestRouter(&fakeQuota{}, nil), http.MethodPost, "/api/v1/phone/bulk-check", `{"phone_numbers":[]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Phone numbers array is required", env.Error)
}

func TestRegionsEndpoint(t *testing.T) {
	rec, env := doJSON(t, newTestRouter(nil, nil), http.MethodGet, "/api/v1/phone/regions", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var regions []RegionInfo
	require.NoError(t, json.Unmarshal(env.Data, &regions))
	assert.Len(t, regions, len(SupportedRegions))
}

func TestCheck_MalformedJSONReportsDetails(t *testing.T) {
	rec, env := doJSON(t, newTestRouter(&fakeQuota{}, nil), http.MethodPost, "/api/v1/phone/check", `{"phone_number":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Phone number is required", env.Error)
	assert.Contains(t, string(env.Details), `"error"`)
}
