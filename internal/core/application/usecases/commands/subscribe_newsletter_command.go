package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/newsletter"
	"restaurant/internal/pkg/guard"
)

var ErrSubscribeNewsletterCommandIsNotConstructed = errors.New(
	"SubscribeNewsletterCommand must be created via NewSubscribeNewsletterCommand constructor",
)

type SubscribeNewsletterCommand struct {
	email newsletter.Email

	guard guard.ConstructorGuard
}

// NewSubscribeNewsletterCommand normalizes the address before validating it.
func NewSubscribeNewsletterCommand(rawEmail string) (SubscribeNewsletterCommand, error) {
	email, err := newsletter.ParseEmail(rawEmail)
	if err != nil {
		return SubscribeNewsletterCommand{}, err
	}
	return SubscribeNewsletterCommand{email: email, guard: guard.NewConstructorGuard()}, nil
}

func (c SubscribeNewsletterCommand) Validate() error {
	return c.guard.Validate(ErrSubscribeNewsletterCommandIsNotConstructed)
}

func (c SubscribeNewsletterCommand) Email() newsletter.Email {
	return c.email
}
