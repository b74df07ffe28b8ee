package order

import (
	"fmt"
	"strings"

	"restaurant/internal/pkg/errs"
)

const (
	TrackingTokenPrefix = "ORD-"
	// TrackingTokenAlphabet leaves out 0, O, 1 and I.
	TrackingTokenAlphabet   = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	TrackingTokenCodeLength = 6
)

// TrackingToken is the public handle customers use to look up their order.
type TrackingToken struct {
	value string
}

// NewTrackingToken builds a token from a generated code (without prefix).
func NewTrackingToken(code string) (TrackingToken, error) {
	return ParseTrackingToken(TrackingTokenPrefix + code)
}

// ParseTrackingToken validates the full textual form, e.g. "ORD-7KQ2ZD".
func ParseTrackingToken(s string) (TrackingToken, error) {
	if s == "" {
		return TrackingToken{}, errs.NewValueIsRequiredError("tracking_token")
	}
	code, ok := strings.CutPrefix(s, TrackingTokenPrefix)
	if !ok {
		return TrackingToken{}, errs.NewValueIsInvalidErrorWithCause("tracking_token",
			fmt.Errorf("%q does not start with %s", s, TrackingTokenPrefix))
	}
	if len(code) != TrackingTokenCodeLength {
		return TrackingToken{}, errs.NewValueIsInvalidErrorWithCause("tracking_token",
			fmt.Errorf("code must have %d symbols, got %d", TrackingTokenCodeLength, len(code)))
	}
	for _, r := range code {
		if !strings.ContainsRune(TrackingTokenAlphabet, r) {
			return TrackingToken{}, errs.NewValueIsInvalidErrorWithCause("tracking_token",
				fmt.Errorf("symbol %q is not allowed", r))
		}
	}
	return TrackingToken{value: s}, nil
}

func (t TrackingToken) String() string {
	return t.value
}

func (t TrackingToken) IsEmpty() bool {
	return t.value == ""
}

func (t TrackingToken) Validate() error {
	if t.IsEmpty() {
		return errs.NewValueIsRequiredError("tracking_token")
	}
	return nil
}
