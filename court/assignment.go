package court

import (
	"context"
	"fmt"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

// AddJudge assigns the judge slot of a case. An occupied judge slot is never
// overwritten: reassignment fails with ErrInvalidAssignment.
func (c *Court) AddJudge(ctx context.Context, caller, judge models.Address, caseID uint64) (_ models.Case, err error) {
	defer func() { observe("addJudge", err) }()

	if err = c.acquire(ctx); err != nil {
		return models.Case{}, err
	}
	defer c.mu.Unlock()

	cs, err := c.assignable(ctx, caller, caseID)
	if err != nil {
		return models.Case{}, err
	}
	switch {
	case judge.IsZero():
		return models.Case{}, fmt.Errorf("%w: judge identity is empty", ErrInvalidAssignment)
	case cs.IsAdvocate(judge):
		return models.Case{}, fmt.Errorf("%w: %s is already an advocate on case %d", ErrInvalidAssignment, judge, caseID)
	case !cs.Judge.IsZero():
		return models.Case{}, fmt.Errorf("%w: case %d already has a judge", ErrInvalidAssignment, caseID)
	}

	cs.Judge = judge
	change := models.Changeset{
		Case: *cs,
		Events: []models.Event{{
			Name:      models.EventJudgeAssigned,
			CaseID:    caseID,
			Judge:     judge,
			Timestamp: c.now(),
		}},
	}
	registerJudge(&change, judge)
	if err := c.commit(ctx, change); err != nil {
		return models.Case{}, err
	}
	c.log.Infow("judge assigned", "caseId", caseID, "judge", judge)
	return *cs, nil
}

// AddAdvocate fills the first empty advocate slot, advocate1 before advocate2
func (c *Court) AddAdvocate(ctx context.Context, caller, advocate models.Address, caseID uint64) (_ models.Case, err error) {
	defer func() { observe("addAdvocate", err) }()

	if err = c.acquire(ctx); err != nil {
		return models.Case{}, err
	}
	defer c.mu.Unlock()

	cs, err := c.assignable(ctx, caller, caseID)
	if err != nil {
		return models.Case{}, err
	}
	switch {
	case advocate.IsZero():
		return models.Case{}, fmt.Errorf("%w: advocate identity is empty", ErrInvalidAssignment)
	case cs.Judge == advocate:
		return models.Case{}, fmt.Errorf("%w: %s is the judge of case %d", ErrInvalidAssignment, advocate, caseID)
	case cs.IsAdvocate(advocate):
		return models.Case{}, fmt.Errorf("%w: %s is already an advocate on case %d", ErrInvalidAssignment, advocate, caseID)
	case cs.Advocate1.IsZero():
		cs.Advocate1 = advocate
	case cs.Advocate2.IsZero():
		cs.Advocate2 = advocate
	default:
		return models.Case{}, fmt.Errorf("%w: both advocate slots of case %d are filled", ErrInvalidAssignment, caseID)
	}

	err = c.commit(ctx, models.Changeset{
		Case: *cs,
		Events: []models.Event{{
			Name:      models.EventAdvocateAssigned,
			CaseID:    caseID,
			Advocate:  advocate,
			Timestamp: c.now(),
		}},
	})
	if err != nil {
		return models.Case{}, err
	}
	c.log.Infow("advocate assigned", "caseId", caseID, "advocate", advocate)
	return *cs, nil
}

// assignable runs the checks shared by both assignments: admin caller, known
// case, case still open.
func (c *Court) assignable(ctx context.Context, caller models.Address, caseID uint64) (*models.Case, error) {
	if !c.IsAdmin(caller) {
		return nil, fmt.Errorf("%w: %s is not the admin", ErrUnauthorized, caller)
	}
	cs, err := c.loadCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if cs.IsResolved {
		return nil, fmt.Errorf("%w: case %d is resolved", ErrCaseClosed, caseID)
	}
	return cs, nil
}
