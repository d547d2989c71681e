package config

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

const testAdmin = "0x90f8bf6a479f320ead074411a4b0e7944ea8c9c1"

func setRequired(t *testing.T) {
	t.Setenv("ADMIN_ADDRESS", testAdmin)
	t.Setenv("JWT_SECRET", "0123456789abcdef0123")
}

func TestNew(t *testing.T) {
	setRequired(t)
	t.Setenv("ENV", "local")
	conf, err := New()
	require.NoError(t, err)

	assert.NotEmpty(t, conf)
	assert.Equal(t, "8080", conf.Port)
	assert.Equal(t, "memory", conf.Store)
	assert.Equal(t, "lawconsensus", conf.DatabaseName)
	assert.Equal(t, 300*time.Second, conf.CaseDuration)
	assert.Equal(t, 24*time.Hour, conf.TokenTTL)
	assert.Equal(t, 15*time.Second, conf.RequestTimeout)
	assert.Equal(t, "@every 1m", conf.ExpirySweepSchedule)
	assert.Equal(t, testAdmin, conf.KeeperAddress)
	assert.False(t, conf.EnableDevTokens)
}

func TestLoadReadsEnvironment(t *testing.T) {
	setRequired(t)
	t.Setenv("STORE", "badger")
	t.Setenv("BADGER_PATH", "/tmp/court")
	t.Setenv("CASE_DURATION", "10m")
	t.Setenv("KEEPER_ADDRESS", "0xffcf8fdee72ac11b5c542428b35eef5769c409f0")

	conf, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "badger", conf.Store)
	assert.Equal(t, "/tmp/court", conf.BadgerPath)
	assert.Equal(t, 10*time.Minute, conf.CaseDuration)
	assert.Equal(t, "0xffcf8fdee72ac11b5c542428b35eef5769c409f0", conf.KeeperAddress)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing admin", env: map[string]string{"ADMIN_ADDRESS": ""}},
		{name: "admin not an address", env: map[string]string{"ADMIN_ADDRESS": "alice"}},
		{name: "short secret", env: map[string]string{"JWT_SECRET": "short"}},
		{name: "unknown store", env: map[string]string{"STORE": "postgres"}},
		{name: "mongo without uri", env: map[string]string{"STORE": "mongo", "DB_URI": ""}},
		{name: "dev tokens without hash", env: map[string]string{"ENABLE_DEV_TOKENS": "true", "DEV_PASSWORD_HASH": ""}},
		{name: "zero duration", env: map[string]string{"CASE_DURATION": "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestErrorStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorStatus("error it borked", http.StatusBadRequest, rr, errors.New("bad request"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body models.ErrorMessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, models.ErrorMessageResponse{Response: models.MessageError{
		Message: "error it borked",
		Error:   "bad request",
	}}, body)
}

func TestErrorStatusCode(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorStatusCode("failed to close case", "TooEarly", http.StatusTooEarly, rr, errors.New("too early"))

	assert.Equal(t, http.StatusTooEarly, rr.Code)
	var body models.ErrorMessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "TooEarly", body.Response.Code)
}
