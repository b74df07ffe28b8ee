package newsletter_test

import (
	"testing"
	"time"

	"restaurant/internal/core/domain/model/newsletter"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmail(t *testing.T) {
	email, err := newsletter.ParseEmail("  Ada@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", email.String())

	_, err = newsletter.ParseEmail("   ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = newsletter.ParseEmail("ada.example.com")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewSubscriber(t *testing.T) {
	email, _ := newsletter.ParseEmail("bo@example.com")
	s, err := newsletter.NewSubscriber(email, time.Now())
	require.NoError(t, err)
	assert.NoError(t, s.ID.Validate())
	assert.Equal(t, email, s.Email)

	_, err = newsletter.NewSubscriber(newsletter.Email{}, time.Now())
	require.Error(t, err)
}
