package court

import "errors"

// Error kinds returned by court operations. Callers match them with errors.Is.
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrInvalidAssignment = errors.New("invalid assignment")
	ErrCaseClosed        = errors.New("case closed")
	ErrNotFullyAssigned  = errors.New("case not fully assigned")
	ErrTooEarly          = errors.New("too early")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrUnauthorized, "Unauthorized"},
	{ErrNotFound, "NotFound"},
	{ErrInvalidAssignment, "InvalidAssignment"},
	{ErrCaseClosed, "CaseClosed"},
	{ErrNotFullyAssigned, "NotFullyAssigned"},
	{ErrTooEarly, "TooEarly"},
}

// Kind returns the name of the court error kind wrapped by err, or "" for
// anything else (storage failures, nil).
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return ""
}
