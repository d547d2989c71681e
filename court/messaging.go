package court

import (
	"context"
	"fmt"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

// SendMessage appends a debate entry. The case must be open and fully
// assigned, and caller must be its judge or one of its advocates.
func (c *Court) SendMessage(ctx context.Context, caller models.Address, caseID uint64, text, evidenceHash string) (_ models.Message, err error) {
	defer func() { observe("sendMessage", err) }()

	if err = c.acquire(ctx); err != nil {
		return models.Message{}, err
	}
	defer c.mu.Unlock()

	cs, err := c.loadCase(ctx, caseID)
	if err != nil {
		return models.Message{}, err
	}
	if cs.IsResolved {
		return models.Message{}, fmt.Errorf("%w: case %d is resolved", ErrCaseClosed, caseID)
	}
	if !cs.FullyAssigned() {
		return models.Message{}, fmt.Errorf("%w: case %d needs a judge and two advocates", ErrNotFullyAssigned, caseID)
	}
	if !cs.IsParticipant(caller) {
		return models.Message{}, fmt.Errorf("%w: %s is not a participant of case %d", ErrUnauthorized, caller, caseID)
	}

	now := c.now()
	msg := models.Message{
		CaseID:       caseID,
		Index:        cs.MessageCount,
		Sender:       caller,
		Text:         text,
		EvidenceHash: evidenceHash,
		Timestamp:    now,
	}
	cs.MessageCount++

	err = c.commit(ctx, models.Changeset{
		Case:    *cs,
		Message: &msg,
		Events: []models.Event{{
			Name:         models.EventMessageSent,
			CaseID:       caseID,
			Sender:       caller,
			Text:         text,
			EvidenceHash: evidenceHash,
			Timestamp:    now,
		}},
	})
	if err != nil {
		return models.Message{}, err
	}
	c.log.Debugw("message sent", "caseId", caseID, "sender", caller, "index", msg.Index)
	return msg, nil
}
