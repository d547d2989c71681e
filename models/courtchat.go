package models

import "time"

// Message holds one debate entry of a case. Messages are append-only.
type Message struct {
	CaseID       uint64    `json:"caseId" bson:"caseId"`
	Index        uint64    `json:"index" bson:"index"`
	Sender       Address   `json:"sender" bson:"sender"`
	Text         string    `json:"text" bson:"text"`
	EvidenceHash string    `json:"evidenceHash" bson:"evidenceHash"`
	Timestamp    time.Time `json:"timestamp" bson:"timestamp"`
}
