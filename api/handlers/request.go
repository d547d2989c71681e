package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/api"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/config"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/court"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

var statusByKind = map[error]int{
	court.ErrUnauthorized:      http.StatusForbidden,
	court.ErrNotFound:          http.StatusNotFound,
	court.ErrInvalidAssignment: http.StatusConflict,
	court.ErrCaseClosed:        http.StatusConflict,
	court.ErrNotFullyAssigned:  http.StatusPreconditionFailed,
	court.ErrTooEarly:          http.StatusTooEarly,
}

// courtErrorStatus maps a court error to its HTTP status. A cancelled or
// expired request context means nothing was written. Anything else that is
// not a court error kind is a storage failure.
func courtErrorStatus(message string, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		config.ErrorStatus(message, http.StatusServiceUnavailable, w, err)
		return
	}
	for kind, status := range statusByKind {
		if errors.Is(err, kind) {
			config.ErrorStatusCode(message, court.Kind(err), status, w, err)
			return
		}
	}
	config.ErrorStatus(message, http.StatusInternalServerError, w, err)
}

// caseID parses the case_id path variable
func caseID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["case_id"], 10, 64)
	if err != nil {
		config.ErrorStatus("invalid case id", http.StatusBadRequest, w, err)
		return 0, false
	}
	return id, true
}

// pathAddress parses and normalizes the address path variable
func pathAddress(w http.ResponseWriter, r *http.Request) (models.Address, bool) {
	raw := mux.Vars(r)["address"]
	if err := validate.Var(raw, "required,eth_addr"); err != nil {
		config.ErrorStatus("invalid address", http.StatusBadRequest, w, err)
		return "", false
	}
	return models.NewAddress(raw), true
}

// caller returns the authenticated identity set by the auth middleware
func caller(w http.ResponseWriter, r *http.Request) (models.Address, bool) {
	c, ok := api.CallerFromContext(r.Context())
	if !ok {
		config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, errors.New("no authenticated caller"))
		return "", false
	}
	return c, true
}
