package court

import (
	"context"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

// Role is the coarse role of an identity across all cases
type Role string

// Roles reported by Court.Role
const (
	RoleAdmin  Role = "admin"
	RoleJudge  Role = "judge"
	RoleLawyer Role = "lawyer"
	RoleNone   Role = "none"
)

// IsAdmin reports whether caller is the court's admin
func (c *Court) IsAdmin(caller models.Address) bool {
	return !caller.IsZero() && caller == c.genesis.Admin
}

// IsJudge reports whether a has ever been assigned as a judge. The flag is
// informational and never authorizes anything by itself.
func (c *Court) IsJudge(ctx context.Context, a models.Address) (bool, error) {
	if a.IsZero() {
		return false, nil
	}
	return c.store.IsJudge(ctx, a)
}

// Role resolves a to admin, judge, lawyer (advocate on any case) or none, in that order
func (c *Court) Role(ctx context.Context, a models.Address) (Role, error) {
	if c.IsAdmin(a) {
		return RoleAdmin, nil
	}
	judge, err := c.IsJudge(ctx, a)
	if err != nil {
		return "", err
	}
	if judge {
		return RoleJudge, nil
	}
	if a.IsZero() {
		return RoleNone, nil
	}
	_, total, err := c.store.FindCases(ctx, models.CaseFilter{Advocate: a}, 0, 1)
	if err != nil {
		return "", err
	}
	if total > 0 {
		return RoleLawyer, nil
	}
	return RoleNone, nil
}

// registerJudge adds the judge flag to a changeset. Flagging a registered judge again is a no-op.
func registerJudge(cs *models.Changeset, a models.Address) {
	cs.Judge = a
}
