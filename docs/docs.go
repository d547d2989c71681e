// Package docs Legal Consensus API.
//
// Documentation of the Legal Consensus API.
//
//     Schemes: http, https
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     Security:
//     - bearer
//
//    SecurityDefinitions:
//    bearer:
//      type: apiKey
//      name: Authorization
//      in: header
//
// swagger:meta
package docs

import (
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/api/handlers"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route GET /api/v1/court court courtInfo
// Gets the admin, the case counter and the case duration.
// responses:
//   200: courtResponse

// swagger:response courtResponse
type courtResponseWrapper struct {
	// in:body
	Body handlers.CourtResponse
}

// swagger:parameters submitCase
type submitCaseParamsWrapper struct {
	// in:body
	Body handlers.SubmitCaseRequest
}

// swagger:route POST /api/v1/cases cases submitCase
// Submits a new case. Admin only.
// responses:
//   201: caseResponse
//   403: errorResponse

// swagger:route GET /api/v1/cases/{case_id} cases caseByID
// Gets a single case by its id.
// responses:
//   200: caseResponse
//   404: errorResponse

// Shows a single case
// swagger:response caseResponse
type caseResponseWrapper struct {
	// in:body
	Body models.Case
}

// swagger:route GET /api/v1/cases cases listCases
// Lists cases filtered by judge, advocate, participant or resolved state.
// responses:
//   200: casesResponse

// swagger:response casesResponse
type casesResponseWrapper struct {
	// in:body
	Body handlers.PaginatedResponse
}

// swagger:parameters addJudge
type addJudgeParamsWrapper struct {
	// in:body
	Body handlers.AssignJudgeRequest
}

// swagger:route POST /api/v1/cases/{case_id}/judge cases addJudge
// Assigns the judge of a case. Admin only.
// responses:
//   200: caseResponse
//   409: errorResponse

// swagger:parameters addAdvocate
type addAdvocateParamsWrapper struct {
	// in:body
	Body handlers.AssignAdvocateRequest
}

// swagger:route POST /api/v1/cases/{case_id}/advocates cases addAdvocate
// Fills the next free advocate slot of a case. Admin only.
// responses:
//   200: caseResponse
//   409: errorResponse

// swagger:route POST /api/v1/cases/{case_id}/approve cases judgeApprove
// Resolves the case as approved. Judge of the case only.
// responses:
//   200: caseResponse

// swagger:route POST /api/v1/cases/{case_id}/reject cases judgeReject
// Resolves the case as rejected. Judge of the case only.
// responses:
//   200: caseResponse

// swagger:route POST /api/v1/cases/{case_id}/close cases closeCase
// Closes a case whose time window has elapsed.
// responses:
//   200: caseResponse
//   425: errorResponse

// swagger:parameters sendMessage
type sendMessageParamsWrapper struct {
	// in:body
	Body handlers.SendMessageRequest
}

// swagger:route POST /api/v1/cases/{case_id}/messages messages sendMessage
// Appends a message to the debate of a fully assigned case.
// responses:
//   201: messageResponse
//   412: errorResponse

// swagger:route GET /api/v1/cases/{case_id}/messages/{index} messages messageByIndex
// Gets one message of a case.
// responses:
//   200: messageResponse

// swagger:response messageResponse
type messageResponseWrapper struct {
	// in:body
	Body models.Message
}

// swagger:route GET /api/v1/events events listEvents
// Pages through the event log.
// responses:
//   200: eventsResponse

// swagger:response eventsResponse
type eventsResponseWrapper struct {
	// in:body
	Body handlers.EventsResponse
}

// swagger:response errorResponse
type errorResponseWrapper struct {
	// in:body
	Body models.ErrorMessageResponse
}
