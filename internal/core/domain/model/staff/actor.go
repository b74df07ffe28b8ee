package staff

import (
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// Role is the profile role of an authenticated user.
type Role string

const (
	RoleManager  Role = "manager"
	RoleChef     Role = "chef"
	RoleCustomer Role = "customer"
)

func ParseRole(s string) (Role, error) {
	r := Role(s)
	switch r {
	case RoleManager, RoleChef, RoleCustomer:
		return r, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
	}
}

// Actor is the user behind a request.
type Actor struct {
	ID   kernel.UUID
	Role Role
}

func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if _, err := ParseRole(string(role)); err != nil {
		return Actor{}, err
	}
	return Actor{ID: id, Role: role}, nil
}

// CanManageOrders reports whether the actor may change order statuses and see the board.
func (a Actor) CanManageOrders() bool {
	return a.Role == RoleManager || a.Role == RoleChef
}

// AuthorizeOrderManagement returns a forbidden error unless CanManageOrders.
func (a Actor) AuthorizeOrderManagement(action string) error {
	if a.ID.Validate() != nil {
		return errs.NewUnauthenticatedError(action)
	}
	if !a.CanManageOrders() {
		return errs.NewForbiddenError(a.ID.String(), action)
	}
	return nil
}
