package models

import "time"

// Fixed resolution texts recorded when a case is resolved
const (
	ResolutionApproved = "Approved by Judges"
	ResolutionRejected = "Rejected by Judges"
	ResolutionExpired  = "Closed due to time limit"
)

// CaseState is derived from the role slots and the resolved flag
type CaseState string

// Case lifecycle states
const (
	StateSubmitted         CaseState = "submitted"
	StatePartiallyAssigned CaseState = "partially_assigned"
	StateFullyAssigned     CaseState = "fully_assigned"
	StateResolved          CaseState = "resolved"
)

// Case holds the structure for the cases collection
type Case struct {
	ID              uint64    `json:"caseId" bson:"_id"`
	Description     string    `json:"description" bson:"description"`
	Advocate1       Address   `json:"advocate1" bson:"advocate1"`
	Advocate2       Address   `json:"advocate2" bson:"advocate2"`
	Judge           Address   `json:"judge" bson:"judge"`
	IsResolved      bool      `json:"isResolved" bson:"isResolved"`
	Resolution      string    `json:"resolution" bson:"resolution"`
	JudgeApprovals  uint64    `json:"judgeApprovals" bson:"judgeApprovals"`
	JudgeRejections uint64    `json:"judgeRejections" bson:"judgeRejections"`
	SubmissionTime  time.Time `json:"submissionTime" bson:"submissionTime"`
	MessageCount    uint64    `json:"messageCount" bson:"messageCount"`
}

// State returns the lifecycle state of the case
func (c Case) State() CaseState {
	switch {
	case c.IsResolved:
		return StateResolved
	case c.FullyAssigned():
		return StateFullyAssigned
	case c.Judge.IsZero() && c.Advocate1.IsZero() && c.Advocate2.IsZero():
		return StateSubmitted
	default:
		return StatePartiallyAssigned
	}
}

// FullyAssigned reports whether the judge and both advocate slots are filled
func (c Case) FullyAssigned() bool {
	return !c.Judge.IsZero() && !c.Advocate1.IsZero() && !c.Advocate2.IsZero()
}

// IsAdvocate reports whether a occupies either advocate slot
func (c Case) IsAdvocate(a Address) bool {
	return !a.IsZero() && (c.Advocate1 == a || c.Advocate2 == a)
}

// IsParticipant reports whether a is the judge or one of the advocates
func (c Case) IsParticipant(a Address) bool {
	return !a.IsZero() && (c.Judge == a || c.IsAdvocate(a))
}

// CaseFilter narrows a case listing. Zero-valued fields match everything.
type CaseFilter struct {
	Judge       Address
	Advocate    Address
	Participant Address
	Resolved    *bool
}

// Matches reports whether c satisfies every set field of the filter
func (f CaseFilter) Matches(c Case) bool {
	if !f.Judge.IsZero() && c.Judge != f.Judge {
		return false
	}
	if !f.Advocate.IsZero() && !c.IsAdvocate(f.Advocate) {
		return false
	}
	if !f.Participant.IsZero() && !c.IsParticipant(f.Participant) {
		return false
	}
	if f.Resolved != nil && c.IsResolved != *f.Resolved {
		return false
	}
	return true
}
