package newsletter

import (
	"fmt"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// Email is a normalized (trimmed, lower-cased) address.
type Email struct {
	value string
}

func ParseEmail(raw string) (Email, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return Email{}, errs.NewValueIsRequiredError("email")
	}
	if !strings.Contains(v, "@") {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is missing '@'", v))
	}
	return Email{value: v}, nil
}

func (e Email) String() string {
	return e.value
}

type Subscriber struct {
	ID        kernel.UUID
	Email     Email
	CreatedAt time.Time
}

func NewSubscriber(email Email, now time.Time) (*Subscriber, error) {
	if email.value == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}
	return &Subscriber{ID: kernel.NewUUID(), Email: email, CreatedAt: now.UTC()}, nil
}
