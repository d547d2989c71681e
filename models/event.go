package models

import "time"

// EventName identifies a notification kind
type EventName string

// Notifications emitted by successful mutations
const (
	EventCaseSubmitted    EventName = "CaseSubmitted"
	EventJudgeAssigned    EventName = "JudgeAssigned"
	EventAdvocateAssigned EventName = "AdvocateAssigned"
	EventMessageSent      EventName = "MessageSent"
	EventJudgeApproval    EventName = "JudgeApproval"
	EventJudgeRejection   EventName = "JudgeRejection"
	EventCaseResolved     EventName = "CaseResolved"
)

// Event is one entry of the append-only notification log. Seq is strictly
// increasing across the whole log, starting at 1.
type Event struct {
	Seq          uint64    `json:"seq" bson:"_id"`
	Name         EventName `json:"event" bson:"event"`
	CaseID       uint64    `json:"caseId" bson:"caseId"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
	Advocate     Address   `json:"advocate,omitempty" bson:"advocate,omitempty"`
	Judge        Address   `json:"judge,omitempty" bson:"judge,omitempty"`
	Sender       Address   `json:"sender,omitempty" bson:"sender,omitempty"`
	Text         string    `json:"text,omitempty" bson:"text,omitempty"`
	EvidenceHash string    `json:"evidenceHash,omitempty" bson:"evidenceHash,omitempty"`
	Resolution   string    `json:"resolution,omitempty" bson:"resolution,omitempty"`
	Timestamp    time.Time `json:"timestamp" bson:"timestamp"`
}
