package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRating(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		assert.NoError(t, validateRating(rating), "rating %d", rating)
	}

	assert.ErrorIs(t, validateRating(0), ErrInvalidRating)
	assert.ErrorIs(t, validateRating(6), ErrInvalidRating)
	assert.ErrorIs(t, validateRating(-1), ErrInvalidRating)
}
