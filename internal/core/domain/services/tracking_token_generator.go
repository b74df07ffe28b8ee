package services

import (
	"fmt"

	"restaurant/internal/core/domain/model/order"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// TrackingTokenGenerator draws uniformly random tracking tokens. It does not
// guarantee uniqueness; the order store rejects duplicates and the caller retries.
type TrackingTokenGenerator struct {
	generate func(alphabet string, size int) (string, error)
}

func NewTrackingTokenGenerator() TrackingTokenGenerator {
	return TrackingTokenGenerator{generate: gonanoid.Generate}
}

func (g TrackingTokenGenerator) Next() (order.TrackingToken, error) {
	code, err := g.generate(order.TrackingTokenAlphabet, order.TrackingTokenCodeLength)
	if err != nil {
		return order.TrackingToken{}, fmt.Errorf("generate tracking token: %w", err)
	}
	return order.NewTrackingToken(code)
}
