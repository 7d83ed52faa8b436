package order

import (
	"fmt"

	"github.com/example/storefront-core/internal/apperr"
	"github.com/example/storefront-core/internal/domain/actor"
)

// Policy selects the transition table used for admin status changes.
type Policy string

const (
	PolicyStrict       Policy = "strict"
	PolicyUnrestricted Policy = "unrestricted"
)

var (
	ErrInvalidPolicy        = fmt.Errorf("%w: transition policy must be strict or unrestricted", apperr.ErrValidation)
	ErrTransitionNotAllowed = fmt.Errorf("%w: status transition not allowed", apperr.ErrConflict)
)

var customerTransitions = map[Status][]Status{
	StatusPending:   {StatusCancelled},
	StatusDelivered: {StatusReturnRequest, StatusCompleted},
}

var adminTransitions = map[Status][]Status{
	StatusPending:       {StatusProcessing, StatusCancelled},
	StatusProcessing:    {StatusPacked, StatusCancelled},
	StatusPacked:        {StatusShipped, StatusCancelled},
	StatusShipped:       {StatusDelivered},
	StatusDelivered:     {StatusCompleted, StatusReturnRequest},
	StatusReturnRequest: {StatusReturned, StatusDelivered},
	StatusReturned:      {}, // terminal state
	StatusCompleted:     {}, // terminal state
	StatusCancelled:     {}, // terminal state
}

func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyStrict, PolicyUnrestricted:
		return p, nil
	case "":
		return PolicyStrict, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidPolicy, s)
	}
}

// Allows reports whether role may move an order from one status to another.
// Unknown roles are never allowed.
func (p Policy) Allows(role actor.Role, from, to Status) bool {
	if !to.Valid() {
		return false
	}

	var table map[Status][]Status
	switch role {
	case actor.RoleCustomer:
		table = customerTransitions
	case actor.RoleAdmin:
		if p == PolicyUnrestricted {
			return true
		}
		table = adminTransitions
	default:
		return false
	}

	for _, s := range table[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Next returns the statuses role may move an order to from current.
func (p Policy) Next(role actor.Role, current Status) []Status {
	var next []Status
	for _, s := range Statuses() {
		if s != current && p.Allows(role, current, s) {
			next = append(next, s)
		}
	}
	return next
}
