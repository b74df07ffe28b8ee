package menu

import (
	"fmt"

	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// GroupKind tells whether a modifier group accepts one or several choices.
type GroupKind string

const (
	GroupKindSingle   GroupKind = "single"
	GroupKindMultiple GroupKind = "multiple"
)

func (k GroupKind) Validate() error {
	switch k {
	case GroupKindSingle, GroupKindMultiple:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("modifier group kind", fmt.Errorf("%q is not single or multiple", string(k)))
	}
}

// ModifierChoice is one selectable add-on with its price delta.
type ModifierChoice struct {
	Name          string          `json:"name"`
	PriceAddition decimal.Decimal `json:"price_addition"`
}

// ModifierGroup is a named set of choices, e.g. "Size" or "Extra toppings".
// Required is a presentation concern; pricing does not enforce it.
type ModifierGroup struct {
	Name     string           `json:"name"`
	Kind     GroupKind        `json:"type"`
	Required bool             `json:"required"`
	Choices  []ModifierChoice `json:"choices"`
}

// Choice returns the first choice whose name matches exactly.
func (g ModifierGroup) Choice(name string) (ModifierChoice, bool) {
	for _, c := range g.Choices {
		if c.Name == name {
			return c, true
		}
	}
	return ModifierChoice{}, false
}
