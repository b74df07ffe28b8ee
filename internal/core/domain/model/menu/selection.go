package menu

import (
	"errors"

	jsoniter "github.com/json-iterator/go"
)

var errSelectionShape = errors.New("selection values must be a string or an array of strings")

// Selection maps a modifier group name to the chosen choice names.
//
// On the wire a single-choice group is usually sent as a plain string and a
// multiple-choice group as an array; both forms decode into the same shape.
type Selection map[string][]string

// UnmarshalJSON accepts {"Size": "L", "Toppings": ["Olives", "Ham"]}.
func (s *Selection) UnmarshalJSON(data []byte) error {
	raw := map[string]jsoniter.RawMessage{}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Selection, len(raw))
	for group, value := range raw {
		var single string
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(value, &single); err == nil {
			if single != "" {
				out[group] = []string{single}
			}
			continue
		}

		var many []string
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(value, &many); err != nil {
			return errSelectionShape
		}
		if len(many) > 0 {
			out[group] = many
		}
	}

	*s = out
	return nil
}
