package court

import (
	"context"
	"fmt"
	"time"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

// JudgeApprove resolves a case in favour of approval. One vote from the
// assigned judge is final.
func (c *Court) JudgeApprove(ctx context.Context, caller models.Address, caseID uint64) (_ models.Case, err error) {
	defer func() { observe("judgeApprove", err) }()
	return c.vote(ctx, caller, caseID, true)
}

// JudgeReject resolves a case by rejection
func (c *Court) JudgeReject(ctx context.Context, caller models.Address, caseID uint64) (_ models.Case, err error) {
	defer func() { observe("judgeReject", err) }()
	return c.vote(ctx, caller, caseID, false)
}

func (c *Court) vote(ctx context.Context, caller models.Address, caseID uint64, approve bool) (models.Case, error) {
	if err := c.acquire(ctx); err != nil {
		return models.Case{}, err
	}
	defer c.mu.Unlock()

	cs, err := c.loadCase(ctx, caseID)
	if err != nil {
		return models.Case{}, err
	}
	if cs.IsResolved {
		return models.Case{}, fmt.Errorf("%w: case %d is resolved", ErrCaseClosed, caseID)
	}
	if cs.Judge.IsZero() || cs.Judge != caller {
		return models.Case{}, fmt.Errorf("%w: %s is not the judge of case %d", ErrUnauthorized, caller, caseID)
	}

	now := c.now()
	vote := models.EventJudgeApproval
	if approve {
		cs.JudgeApprovals++
		cs.Resolution = models.ResolutionApproved
	} else {
		vote = models.EventJudgeRejection
		cs.JudgeRejections++
		cs.Resolution = models.ResolutionRejected
	}
	cs.IsResolved = true

	err = c.commit(ctx, models.Changeset{
		Case: *cs,
		Events: []models.Event{
			{Name: vote, CaseID: caseID, Judge: caller, Timestamp: now},
			{Name: models.EventCaseResolved, CaseID: caseID, Resolution: cs.Resolution, Timestamp: now},
		},
	})
	if err != nil {
		return models.Case{}, err
	}
	c.log.Infow("case resolved", "caseId", caseID, "resolution", cs.Resolution, "judge", caller)
	return *cs, nil
}

// CloseCase resolves a case whose window has fully elapsed. Anyone may call
// it; the window must be strictly exceeded.
func (c *Court) CloseCase(ctx context.Context, caller models.Address, caseID uint64) (_ models.Case, err error) {
	defer func() { observe("closeCase", err) }()

	if err = c.acquire(ctx); err != nil {
		return models.Case{}, err
	}
	defer c.mu.Unlock()

	cs, err := c.loadCase(ctx, caseID)
	if err != nil {
		return models.Case{}, err
	}
	if cs.IsResolved {
		return models.Case{}, fmt.Errorf("%w: case %d is resolved", ErrCaseClosed, caseID)
	}
	now := c.now()
	if !c.expired(*cs, now) {
		return models.Case{}, fmt.Errorf("%w: case %d is open until %s", ErrTooEarly, caseID,
			cs.SubmissionTime.Add(c.CaseDuration()).Format(time.RFC3339))
	}

	cs.IsResolved = true
	cs.Resolution = models.ResolutionExpired
	err = c.commit(ctx, models.Changeset{
		Case: *cs,
		Events: []models.Event{
			{Name: models.EventCaseResolved, CaseID: caseID, Resolution: cs.Resolution, Timestamp: now},
		},
	})
	if err != nil {
		return models.Case{}, err
	}
	c.log.Infow("case closed", "caseId", caseID, "caller", caller)
	return *cs, nil
}

// ExpiredCases lists the open cases CloseCase would accept right now
func (c *Court) ExpiredCases(ctx context.Context) ([]models.Case, error) {
	open := false
	now := c.now()

	var expired []models.Case
	const pageSize = 100
	for skip := 0; ; skip += pageSize {
		page, total, err := c.store.FindCases(ctx, models.CaseFilter{Resolved: &open}, skip, pageSize)
		if err != nil {
			return nil, fmt.Errorf("find open cases: %w", err)
		}
		for _, cs := range page {
			if c.expired(cs, now) {
				expired = append(expired, cs)
			}
		}
		if len(page) < pageSize || int64(skip+len(page)) >= total {
			return expired, nil
		}
	}
}

func (c *Court) expired(cs models.Case, now time.Time) bool {
	return now.Sub(cs.SubmissionTime) > c.CaseDuration()
}
