package menu

import "github.com/shopspring/decimal"

// Price computes the unit price of a cart line: the base price plus the price
// addition of every selected choice found in groups.
//
//   - no groups or no selection: the base price
//   - a group without a selection is skipped, even when Required
//   - every chosen name is matched exactly against the group's choices;
//     unknown names contribute nothing
func Price(base decimal.Decimal, selection Selection, groups []ModifierGroup) decimal.Decimal {
	if len(groups) == 0 || selection == nil {
		return base
	}

	total := base
	for _, group := range groups {
		chosen, ok := selection[group.Name]
		if !ok {
			continue
		}
		for _, name := range chosen {
			if choice, found := group.Choice(name); found {
				total = total.Add(choice.PriceAddition)
			}
		}
	}
	return total
}
