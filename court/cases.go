package court

import (
	"context"
	"fmt"
	"math"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

// SubmitCase creates the next case. Only the admin may submit.
func (c *Court) SubmitCase(ctx context.Context, caller models.Address, description string) (_ models.Case, err error) {
	defer func() { observe("submitCase", err) }()

	if err = c.acquire(ctx); err != nil {
		return models.Case{}, err
	}
	defer c.mu.Unlock()

	if !c.IsAdmin(caller) {
		return models.Case{}, fmt.Errorf("%w: %s is not the admin", ErrUnauthorized, caller)
	}

	count, err := c.store.CaseCount(ctx)
	if err != nil {
		return models.Case{}, fmt.Errorf("count cases: %w", err)
	}

	now := c.now()
	cs := models.Case{
		ID:             count + 1,
		Description:    description,
		SubmissionTime: now,
	}
	// no advocate is known at submission, the zero account stands in
	err = c.commit(ctx, models.Changeset{
		NewCase: true,
		Case:    cs,
		Events: []models.Event{{
			Name:        models.EventCaseSubmitted,
			CaseID:      cs.ID,
			Description: description,
			Advocate:    models.ZeroAddress,
			Timestamp:   now,
		}},
	})
	if err != nil {
		return models.Case{}, err
	}
	c.log.Infow("case submitted", "caseId", cs.ID)
	return cs, nil
}

// GetCase returns the case with the given id
func (c *Court) GetCase(ctx context.Context, id uint64) (*models.Case, error) {
	return c.loadCase(ctx, id)
}

// ListCases returns one page of cases matching filter, ordered by case id, and
// the total number of matches. page is zero-based.
func (c *Court) ListCases(ctx context.Context, filter models.CaseFilter, page, limit int) ([]models.Case, int64, error) {
	if limit <= 0 {
		limit = 10
	}
	if page < 0 {
		page = 0
	}
	if page > math.MaxInt/limit {
		// no store holds that many cases; report the total with an empty page
		_, total, err := c.store.FindCases(ctx, filter, 0, 1)
		if err != nil {
			return nil, 0, err
		}
		return []models.Case{}, total, nil
	}
	return c.store.FindCases(ctx, filter, page*limit, limit)
}

// GetMessages returns the debate log of a case in append order
func (c *Court) GetMessages(ctx context.Context, caseID uint64) ([]models.Message, error) {
	if _, err := c.loadCase(ctx, caseID); err != nil {
		return nil, err
	}
	msgs, err := c.store.Messages(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("find messages of case %d: %w", caseID, err)
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	return msgs, nil
}

// GetMessage returns the message at a zero-based index of a case's log
func (c *Court) GetMessage(ctx context.Context, caseID, index uint64) (*models.Message, error) {
	cs, err := c.loadCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if index >= cs.MessageCount {
		return nil, fmt.Errorf("%w: message %d of case %d", ErrNotFound, index, caseID)
	}
	return c.store.Message(ctx, caseID, index)
}
