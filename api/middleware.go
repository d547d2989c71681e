package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/basic"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/config"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

// tokenCacheTTL bounds how long a parsed bearer token is trusted without
// re-checking its signature and expiry
const tokenCacheTTL = time.Minute

// Auth issues and verifies caller identity tokens. The subject of a token is
// the caller's normalized address.
type Auth struct {
	secret          []byte
	ttl             time.Duration
	devPasswordHash []byte
	now             func() time.Time

	bearerAuth auth.Authenticator
	basicAuth  auth.Authenticator
}

// TokenResponse is the body returned when a token is minted
type TokenResponse struct {
	Token     string         `json:"token"`
	Address   models.Address `json:"address"`
	ExpiresAt time.Time      `json:"expiresAt"`
}

// NewAuth sets up the go-guardian strategies. devPasswordHash may be empty
// when dev token minting is disabled.
func NewAuth(secret string, ttl time.Duration, devPasswordHash string) *Auth {
	a := &Auth{
		secret:          []byte(secret),
		ttl:             ttl,
		devPasswordHash: []byte(devPasswordHash),
		now:             time.Now,
	}

	a.bearerAuth = auth.New()
	a.bearerAuth.EnableStrategy(bearer.CachedStrategyKey,
		bearer.New(a.validateToken, store.NewFIFO(context.Background(), tokenCacheTTL)))

	a.basicAuth = auth.New()
	a.basicAuth.EnableStrategy(basic.StrategyKey,
		basic.New(a.validateDevUser, store.NewFIFO(context.Background(), tokenCacheTTL)))

	return a
}

// IssueToken signs an HS256 token for addr
func (a *Auth) IssueToken(addr models.Address) (string, time.Time, error) {
	if addr.IsZero() {
		return "", time.Time{}, errors.New("cannot issue a token for an empty address")
	}
	now := a.now()
	exp := now.Add(a.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   addr.String(),
		ID:        uuid.New().String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// ParseToken verifies a token and returns the caller it names
func (a *Auth) ParseToken(token string) (models.Address, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil {
		return "", fmt.Errorf("failed to parse token, %w", err)
	}
	addr := models.NewAddress(claims.Subject)
	if addr.IsZero() {
		return "", errors.New("token has no subject")
	}
	return addr, nil
}

func (a *Auth) validateToken(_ context.Context, _ *http.Request, token string) (auth.Info, error) {
	addr, err := a.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return auth.NewDefaultUser(addr.String(), addr.String(), nil, nil), nil
}

// validateDevUser accepts any address as the basic auth user name, provided
// the password matches the configured bcrypt hash
func (a *Auth) validateDevUser(_ context.Context, _ *http.Request, userName, password string) (auth.Info, error) {
	if len(a.devPasswordHash) == 0 {
		return nil, errors.New("dev tokens are disabled")
	}
	addr := models.NewAddress(userName)
	if addr.IsZero() {
		return nil, errors.New("user name must be an address")
	}
	if err := bcrypt.CompareHashAndPassword(a.devPasswordHash, []byte(password)); err != nil {
		return nil, fmt.Errorf("failed to compare password")
	}
	return auth.NewDefaultUser(addr.String(), addr.String(), nil, nil), nil
}

// Middleware requires a valid bearer token and stores its caller in the
// request context
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return a.middleware(a.bearerAuth, next)
}

// BasicMiddleware guards the dev token endpoint
func (a *Auth) BasicMiddleware(next http.Handler) http.Handler {
	return a.middleware(a.basicAuth, next)
}

func (a *Auth) middleware(authenticator auth.Authenticator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		user, err := authenticator.Authenticate(r)
		if err != nil {
			zap.S().Debugw("unauthorized",
				"url", r.URL,
				"error", err)
			config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, err)
			return
		}
		caller := models.NewAddress(user.UserName())
		zap.S().Debugw("caller authenticated", "caller", caller)
		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
	})
}

// CreateToken mints a bearer token for the basic-authenticated caller
func (a *Auth) CreateToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		config.ErrorStatus("no caller in request", http.StatusUnauthorized, w, errors.New("missing caller"))
		return
	}

	token, exp, err := a.IssueToken(caller)
	if err != nil {
		config.ErrorStatus("failed to create token", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(TokenResponse{Token: token, Address: caller, ExpiresAt: exp})
}
