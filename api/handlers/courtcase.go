package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/api"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/config"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/court"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

// CourtCase exported for testing purposes
type CourtCase struct {
	Court *court.Court
}

// SubmitCaseRequest is the body of a case submission
type SubmitCaseRequest struct {
	Description string `json:"description" validate:"max=10000"`
}

// AssignJudgeRequest is the body of a judge assignment
type AssignJudgeRequest struct {
	Judge string `json:"judge" validate:"required,eth_addr"`
}

// AssignAdvocateRequest is the body of an advocate assignment
type AssignAdvocateRequest struct {
	Advocate string `json:"advocate" validate:"required,eth_addr"`
}

// PaginatedResponse holds the structure for paginated responses
type PaginatedResponse struct {
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalCount int64         `json:"totalCount"`
	TotalPages int           `json:"totalPages"`
	Data       []models.Case `json:"data"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return false
	}
	if err := validate.Struct(v); err != nil {
		config.ErrorStatus("invalid request body", http.StatusBadRequest, w, err)
		return false
	}
	return true
}

// SubmitCaseHandler creates the next case
func (c CourtCase) SubmitCaseHandler(w http.ResponseWriter, r *http.Request) {
	from, ok := caller(w, r)
	if !ok {
		return
	}
	var req SubmitCaseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	cs, err := c.Court.SubmitCase(ctx, from, req.Description)
	if err != nil {
		courtErrorStatus("failed to submit case", w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cs)
}

// CaseHandler returns a single case
func (c CourtCase) CaseHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := caseID(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	cs, err := c.Court.GetCase(ctx, id)
	if err != nil {
		courtErrorStatus("failed to get case", w, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

// CasesHandler lists cases, optionally filtered by judge, advocate,
// participant or resolved state
func (c CourtCase) CasesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter models.CaseFilter
	for key, dst := range map[string]*models.Address{
		"judge":       &filter.Judge,
		"advocate":    &filter.Advocate,
		"participant": &filter.Participant,
	} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		if err := validate.Var(v, "eth_addr"); err != nil {
			config.ErrorStatus("invalid "+key+" filter", http.StatusBadRequest, w, err)
			return
		}
		*dst = models.NewAddress(v)
	}
	if v := q.Get("resolved"); v != "" {
		resolved, err := strconv.ParseBool(v)
		if err != nil {
			config.ErrorStatus("invalid resolved filter", http.StatusBadRequest, w, err)
			return
		}
		filter.Resolved = &resolved
	}

	Page := getPage(0, r)
	Limit := getLimit(10, r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	cases, total, err := c.Court.ListCases(ctx, filter, Page, Limit)
	if err != nil {
		courtErrorStatus("failed to list cases", w, err)
		return
	}
	if len(cases) == 0 {
		cases = []models.Case{}
	}

	writeJSON(w, http.StatusOK, PaginatedResponse{
		Page:       Page,
		Limit:      Limit,
		TotalCount: total,
		TotalPages: int((total + int64(Limit) - 1) / int64(Limit)),
		Data:       cases,
	})
}

// AddJudgeHandler assigns the judge of a case
func (c CourtCase) AddJudgeHandler(w http.ResponseWriter, r *http.Request) {
	from, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := caseID(w, r)
	if !ok {
		return
	}
	var req AssignJudgeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	cs, err := c.Court.AddJudge(ctx, from, models.NewAddress(req.Judge), id)
	if err != nil {
		courtErrorStatus("failed to assign judge", w, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

// AddAdvocateHandler fills the next advocate slot of a case
func (c CourtCase) AddAdvocateHandler(w http.ResponseWriter, r *http.Request) {
	from, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := caseID(w, r)
	if !ok {
		return
	}
	var req AssignAdvocateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	cs, err := c.Court.AddAdvocate(ctx, from, models.NewAddress(req.Advocate), id)
	if err != nil {
		courtErrorStatus("failed to assign advocate", w, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

// JudgeApproveHandler records the judge's approval
func (c CourtCase) JudgeApproveHandler(w http.ResponseWriter, r *http.Request) {
	c.resolve(w, r, "failed to approve case", c.Court.JudgeApprove)
}

// JudgeRejectHandler records the judge's rejection
func (c CourtCase) JudgeRejectHandler(w http.ResponseWriter, r *http.Request) {
	c.resolve(w, r, "failed to reject case", c.Court.JudgeReject)
}

// CloseCaseHandler closes a case whose window has elapsed. Any authenticated
// caller may close it.
func (c CourtCase) CloseCaseHandler(w http.ResponseWriter, r *http.Request) {
	c.resolve(w, r, "failed to close case", c.Court.CloseCase)
}

type resolveFunc func(ctx context.Context, caller models.Address, caseID uint64) (models.Case, error)

func (c CourtCase) resolve(w http.ResponseWriter, r *http.Request, message string, fn resolveFunc) {
	from, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := caseID(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	cs, err := fn(ctx, from, id)
	if err != nil {
		courtErrorStatus(message, w, err)
		return
	}
	zap.S().Debugw("case resolved over http", "caseId", id, "resolution", cs.Resolution)
	writeJSON(w, http.StatusOK, cs)
}

func getPage(Page int, r *http.Request) int {
	if r.URL.Query().Get("page") == "" {
		return Page
	}
	p, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		zap.S().Warnw("error parsing page number, using default", "default", Page, "error", err)
		return Page
	}
	if p < 0 {
		zap.S().Warnw("cannot process page number less than 0", "page", p)
		return 0
	}
	return p
}

func getLimit(Limit int, r *http.Request) int {
	if r.URL.Query().Get("limit") == "" {
		return Limit
	}
	l, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || l <= 0 {
		zap.S().Warnw("limit not set, using default", "default", Limit, "error", err)
		return Limit
	}
	if l > 100 {
		return 100
	}
	return l
}
