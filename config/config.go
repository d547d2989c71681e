package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/logging"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

// Config holds the project config values
type Config struct {
	Env                 string        `validate:"oneof=local development production"`
	Port                string        `validate:"required,numeric"`
	BaseURL             string
	Store               string        `validate:"oneof=memory badger mongo"`
	URL                 string        `validate:"required_if=Store mongo"`
	DatabaseName        string        `validate:"required_if=Store mongo"`
	BadgerPath          string        `validate:"required_if=Store badger"`
	AdminAddress        string        `validate:"required,eth_addr"`
	CaseDuration        time.Duration `validate:"gt=0"`
	JWTSecret           string        `validate:"required,min=16"`
	TokenTTL            time.Duration `validate:"gt=0"`
	EnableDevTokens     bool
	DevPasswordHash     string `validate:"required_if=EnableDevTokens true"`
	RequestTimeout      time.Duration `validate:"gt=0"`
	ExpirySweepSchedule string
	KeeperAddress       string `validate:"omitempty,eth_addr"`
}

// SetDefaults registers the default of every key with viper
func SetDefaults() {
	viper.SetDefault("ENV", "production")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("STORE", "memory")
	viper.SetDefault("DB_NAME", "lawconsensus")
	viper.SetDefault("BADGER_PATH", "./data")
	viper.SetDefault("CASE_DURATION", "300s")
	viper.SetDefault("TOKEN_TTL", "24h")
	viper.SetDefault("ENABLE_DEV_TOKENS", false)
	viper.SetDefault("REQUEST_TIMEOUT", "15s")
	viper.SetDefault("EXPIRY_SWEEP_SCHEDULE", "@every 1m")
}

// Load reads the config from viper without touching the global logger
func Load() (*Config, error) {
	SetDefaults()
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	c := &Config{
		Env:                 viper.GetString("ENV"),
		Port:                viper.GetString("PORT"),
		BaseURL:             viper.GetString("BASE_URL"),
		Store:               viper.GetString("STORE"),
		URL:                 viper.GetString("DB_URI"),
		DatabaseName:        viper.GetString("DB_NAME"),
		BadgerPath:          viper.GetString("BADGER_PATH"),
		AdminAddress:        viper.GetString("ADMIN_ADDRESS"),
		CaseDuration:        viper.GetDuration("CASE_DURATION"),
		JWTSecret:           viper.GetString("JWT_SECRET"),
		TokenTTL:            viper.GetDuration("TOKEN_TTL"),
		EnableDevTokens:     viper.GetBool("ENABLE_DEV_TOKENS"),
		DevPasswordHash:     viper.GetString("DEV_PASSWORD_HASH"),
		RequestTimeout:      viper.GetDuration("REQUEST_TIMEOUT"),
		ExpirySweepSchedule: viper.GetString("EXPIRY_SWEEP_SCHEDULE"),
		KeeperAddress:       viper.GetString("KEEPER_ADDRESS"),
	}
	if c.KeeperAddress == "" {
		c.KeeperAddress = c.AdminAddress
	}
	if err := validator.New().Struct(c); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// New sets up all config related services
func New() (*Config, error) {
	c, err := Load()
	if err != nil {
		return nil, err
	}

	//setup zap logger and replace default logger
	logger, err := logging.New(c.Env)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	_ = zap.ReplaceGlobals(logger)

	return c, nil
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	ErrorStatusCode(message, "", httpStatusCode, w, err)
}

// ErrorStatusCode is ErrorStatus with a machine readable error code in the body
func ErrorStatusCode(message, code string, httpStatusCode int, w http.ResponseWriter, err error) {
	errText := ""
	if err != nil {
		errText = err.Error()
	}
	if httpStatusCode >= http.StatusInternalServerError {
		zap.S().Errorw(message, "error", err, "status", httpStatusCode)
	} else {
		zap.S().Debugw(message, "error", err, "status", httpStatusCode, "code", code)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	_ = json.NewEncoder(w).Encode(models.ErrorMessageResponse{
		Response: models.MessageError{
			Message: message,
			Error:   errText,
			Code:    code,
		},
	})
}
