package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/api"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

const (
	secret = "test-secret-0123456789"
	caller = models.Address("0xffcf8fdee72ac11b5c542428b35eef5769c409f0")
)

// whoami echoes the authenticated caller
var whoami = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	c, ok := api.CallerFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	_, _ = w.Write([]byte(c.String()))
})

func TestAuth_IssueAndParseToken(t *testing.T) {
	a := api.NewAuth(secret, time.Hour, "")

	token, exp, err := a.IssueToken(caller)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	got, err := a.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, caller, got)

	_, _, err = a.IssueToken("")
	assert.Error(t, err)
}

func TestAuth_ParseTokenRejectsForeignSecret(t *testing.T) {
	token, _, err := api.NewAuth("another-secret-0123456789", time.Hour, "").IssueToken(caller)
	require.NoError(t, err)

	_, err = api.NewAuth(secret, time.Hour, "").ParseToken(token)
	assert.Error(t, err)
}

func TestAuth_ParseTokenRejectsExpired(t *testing.T) {
	a := api.NewAuth(secret, -time.Minute, "")
	token, _, err := a.IssueToken(caller)
	require.NoError(t, err)

	_, err = a.ParseToken(token)
	assert.ErrorContains(t, err, "expired")
}

func TestAuth_Middleware(t *testing.T) {
	a := api.NewAuth(secret, time.Hour, "")
	h := a.Middleware(whoami)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cases", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/cases", nil)
	req.Header.Set("Authorization", "Bearer asdfasdf")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	var body models.ErrorMessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "unauthorized", body.Response.Message)

	token, _, err := a.IssueToken(caller)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/cases", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, caller.String(), rr.Body.String())
}

func TestAuth_CreateToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("ganache"), bcrypt.MinCost)
	require.NoError(t, err)
	a := api.NewAuth(secret, time.Hour, string(hash))
	h := a.BasicMiddleware(http.HandlerFunc(a.CreateToken))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", nil)
	req.SetBasicAuth("0xFFcf8FDEE72ac11b5c542428B35EEF5769C409f0", "wrong")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", nil)
	req.SetBasicAuth("0xFFcf8FDEE72ac11b5c542428B35EEF5769C409f0", "ganache")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp api.TokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, caller, resp.Address)

	got, err := a.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, caller, got)
}

func TestTimeoutMiddleware(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})
	rr := httptest.NewRecorder()
	api.TimeoutMiddleware(20*time.Millisecond)(slow).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	fast := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	rr = httptest.NewRecorder()
	api.TimeoutMiddleware(time.Second)(fast).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestTimeoutMiddleware_WaitsForWrites(t *testing.T) {
	var committed atomic.Bool
	slowWrite := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(60 * time.Millisecond)
		if r.Context().Err() != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		committed.Store(true)
		w.WriteHeader(http.StatusCreated)
	})
	rr := httptest.NewRecorder()
	api.TimeoutMiddleware(20*time.Millisecond)(slowWrite).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

	// the handler gets to report its own outcome, and it matches what happened
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.False(t, committed.Load())

	lateWrite := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		committed.Store(true)
		time.Sleep(60 * time.Millisecond)
		w.WriteHeader(http.StatusCreated)
	})
	rr = httptest.NewRecorder()
	api.TimeoutMiddleware(20*time.Millisecond)(lateWrite).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.True(t, committed.Load())
}

func TestMetricsMiddleware_SetsRequestID(t *testing.T) {
	r := mux.NewRouter()
	r.Use(api.MetricsMiddleware)
	r.HandleFunc("/api/v1/cases/{case_id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/cases/1", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(api.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cases/1", nil)
	req.Header.Set(api.RequestIDHeader, "fixed-id")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, "fixed-id", rr.Header().Get(api.RequestIDHeader))
}

func TestHealthCheckHandler(t *testing.T) {
	rr := httptest.NewRecorder()
	api.HealthCheckHandler(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"alive":true}`, rr.Body.String())
}
