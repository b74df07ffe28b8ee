package commands

import (
	"errors"
	"fmt"
	"time"

	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrExpireUnpaidOrdersCommandIsNotConstructed = errors.New(
	"ExpireUnpaidOrdersCommand must be created via NewExpireUnpaidOrdersCommand constructor",
)

// ExpireUnpaidOrdersCommand gives up on online payments that were never
// confirmed within olderThan of order creation.
type ExpireUnpaidOrdersCommand struct {
	olderThan time.Duration

	guard guard.ConstructorGuard
}

func NewExpireUnpaidOrdersCommand(olderThan time.Duration) (ExpireUnpaidOrdersCommand, error) {
	if olderThan <= 0 {
		return ExpireUnpaidOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause("older_than",
			fmt.Errorf("%s is not a positive duration", olderThan))
	}
	return ExpireUnpaidOrdersCommand{olderThan: olderThan, guard: guard.NewConstructorGuard()}, nil
}

func (c ExpireUnpaidOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpireUnpaidOrdersCommandIsNotConstructed)
}

func (c ExpireUnpaidOrdersCommand) OlderThan() time.Duration {
	return c.olderThan
}
