package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/api"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/config"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/court"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

// CourtInfo exported for testing purposes
type CourtInfo struct {
	Court *court.Court
}

// CourtResponse describes the court's genesis and its case counter
type CourtResponse struct {
	Admin        models.Address `json:"admin"`
	CaseCounter  uint64         `json:"caseCounter"`
	CaseDuration uint64         `json:"caseDuration"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// JudgeResponse answers whether an identity was ever assigned as a judge
type JudgeResponse struct {
	Address models.Address `json:"address"`
	IsJudge bool           `json:"isJudge"`
}

// RoleResponse holds the coarse role of an identity
type RoleResponse struct {
	Address models.Address `json:"address"`
	Role    court.Role     `json:"role"`
}

// EventsResponse is one page of the event log. Next is the cursor to pass as
// after for the following page.
type EventsResponse struct {
	Data []models.Event `json:"data"`
	Next uint64         `json:"next"`
}

// CourtHandler returns the admin, the case counter and the case duration in seconds
func (c CourtInfo) CourtHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	count, err := c.Court.CaseCounter(ctx)
	if err != nil {
		config.ErrorStatus("failed to count cases", http.StatusInternalServerError, w, err)
		return
	}
	g := c.Court.Genesis()
	writeJSON(w, http.StatusOK, CourtResponse{
		Admin:        g.Admin,
		CaseCounter:  count,
		CaseDuration: g.CaseDurationSeconds,
		CreatedAt:    g.CreatedAt,
	})
}

// JudgeHandler reports the judge flag of an identity
func (c CourtInfo) JudgeHandler(w http.ResponseWriter, r *http.Request) {
	addr, ok := pathAddress(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	isJudge, err := c.Court.IsJudge(ctx, addr)
	if err != nil {
		config.ErrorStatus("failed to look up judge", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, JudgeResponse{Address: addr, IsJudge: isJudge})
}

// RoleHandler reports whether an identity is the admin, a judge, a lawyer or none
func (c CourtInfo) RoleHandler(w http.ResponseWriter, r *http.Request) {
	addr, ok := pathAddress(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	role, err := c.Court.Role(ctx, addr)
	if err != nil {
		config.ErrorStatus("failed to look up role", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, RoleResponse{Address: addr, Role: role})
}

// EventsHandler pages through the event log in sequence order
func (c CourtInfo) EventsHandler(w http.ResponseWriter, r *http.Request) {
	var after uint64
	if v := r.URL.Query().Get("after"); v != "" {
		var err error
		after, err = strconv.ParseUint(v, 10, 64)
		if err != nil {
			config.ErrorStatus("invalid after cursor", http.StatusBadRequest, w, err)
			return
		}
	}
	limit := getLimit(100, r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	events, err := c.Court.Events(ctx, after, limit)
	if err != nil {
		config.ErrorStatus("failed to read events", http.StatusInternalServerError, w, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	next := after
	if len(events) > 0 {
		next = events[len(events)-1].Seq
	}
	writeJSON(w, http.StatusOK, EventsResponse{Data: events, Next: next})
}
