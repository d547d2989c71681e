package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/api"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/config"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/court"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/databases"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

var validate = validator.New()

// App stores the router and the court, so it can be reused
type App struct {
	Router *mux.Router
	Config config.Config
	Court  *court.Court
	Auth   *api.Auth
	Hub    *EventHub

	store court.Store
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	r := mux.NewRouter()
	r.Use(api.MetricsMiddleware)

	cc := CourtCase{Court: a.Court}
	chat := CourtChat{Court: a.Court}
	info := CourtInfo{Court: a.Court}
	mw := a.Auth.Middleware

	// healthchex
	r.HandleFunc("/health", api.HealthCheckHandler).Methods("GET")
	r.Handle("/metrics", api.MetricsHandler()).Methods("GET")
	r.HandleFunc("/ws/events", a.Hub.EventsWebSocketHandler).Methods("GET")

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(a.Config.RequestTimeout))

	if a.Config.EnableDevTokens {
		apiCreate.Handle("/auth/token", a.Auth.BasicMiddleware(http.HandlerFunc(a.Auth.CreateToken))).Methods("POST")
	}

	apiCreate.HandleFunc("/court", info.CourtHandler).Methods("GET")
	apiCreate.HandleFunc("/judges/{address}", info.JudgeHandler).Methods("GET")
	apiCreate.HandleFunc("/identities/{address}/role", info.RoleHandler).Methods("GET")
	apiCreate.HandleFunc("/events", info.EventsHandler).Methods("GET")

	apiCreate.Handle("/cases", mw(http.HandlerFunc(cc.SubmitCaseHandler))).Methods("POST")
	apiCreate.HandleFunc("/cases", cc.CasesHandler).Methods("GET")
	apiCreate.HandleFunc("/cases/{case_id}", cc.CaseHandler).Methods("GET")
	apiCreate.Handle("/cases/{case_id}/judge", mw(http.HandlerFunc(cc.AddJudgeHandler))).Methods("POST")
	apiCreate.Handle("/cases/{case_id}/advocates", mw(http.HandlerFunc(cc.AddAdvocateHandler))).Methods("POST")
	apiCreate.Handle("/cases/{case_id}/approve", mw(http.HandlerFunc(cc.JudgeApproveHandler))).Methods("POST")
	apiCreate.Handle("/cases/{case_id}/reject", mw(http.HandlerFunc(cc.JudgeRejectHandler))).Methods("POST")
	apiCreate.Handle("/cases/{case_id}/close", mw(http.HandlerFunc(cc.CloseCaseHandler))).Methods("POST")

	apiCreate.HandleFunc("/cases/{case_id}/messages", chat.MessagesHandler).Methods("GET")
	apiCreate.Handle("/cases/{case_id}/messages", mw(http.HandlerFunc(chat.SendMessageHandler))).Methods("POST")
	apiCreate.HandleFunc("/cases/{case_id}/messages/{index}", chat.MessageHandler).Methods("GET")

	return r
}

// Initialize opens the configured store, records genesis on first start and
// builds the court and the router
func (a *App) Initialize(ctx context.Context) error {
	store, err := openStore(ctx, &a.Config)
	if err != nil {
		// if we fail to open the store, then kill the pod
		zap.S().Errorw("failed to open store", "store", a.Config.Store, "error", err)
		return err
	}
	a.store = store
	zap.S().Infow("store opened", "store", a.Config.Store)

	a.Hub = NewEventHub()
	a.Court, err = court.New(ctx, store, models.Genesis{
		Admin:               models.NewAddress(a.Config.AdminAddress),
		CaseDurationSeconds: uint64(a.Config.CaseDuration / time.Second),
	}, court.WithPublisher(a.Hub))
	if err != nil {
		_ = store.Close()
		return err
	}
	a.Auth = api.NewAuth(a.Config.JWTSecret, a.Config.TokenTTL, a.Config.DevPasswordHash)

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

// Close releases the event hub and the store
func (a *App) Close() error {
	if a.Hub != nil {
		a.Hub.Close()
	}
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

func openStore(ctx context.Context, conf *config.Config) (court.Store, error) {
	switch conf.Store {
	case "memory":
		return databases.NewMemoryStore(), nil
	case "badger":
		store, err := databases.OpenBadgerStore(databases.BadgerConfig{
			Path:       conf.BadgerPath,
			SyncWrites: true,
			Logger:     zap.S(),
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	case "mongo":
		client, err := databases.NewClient(conf)
		if err != nil {
			return nil, fmt.Errorf("create mongo client: %w", err)
		}
		if err := client.Connect(ctx); err != nil {
			return nil, fmt.Errorf("connect to mongo: %w", err)
		}
		return databases.NewMongoStore(client, databases.NewDatabase(conf, client)), nil
	default:
		return nil, fmt.Errorf("unknown store %q", conf.Store)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Errorw("failed to encode response", "error", err)
	}
}
