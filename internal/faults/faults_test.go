package faults_test

import (
	"fmt"
	"testing"

	"github.com/mauv0809/scrimsync/internal/faults"
	"github.com/stretchr/testify/assert"
)

func TestCategoriesSurviveWrapping(t *testing.T) {
	err := faults.NotFoundf("team %s", "team-a")
	assert.True(t, faults.IsNotFound(err))
	assert.False(t, faults.IsValidation(err))

	wrapped := fmt.Errorf("loading roster: %w", err)
	assert.True(t, faults.IsNotFound(wrapped))
}

func TestCategoriesAreDisjoint(t *testing.T) {
	err := faults.AlreadyExistsf("slot %s is booked", "wed_2000")
	assert.True(t, faults.IsAlreadyExists(err))
	assert.False(t, faults.IsFailedPrecondition(err))
	assert.False(t, faults.IsNotFound(err))
	assert.False(t, faults.IsPermissionDenied(err))

	assert.False(t, faults.IsValidation(nil))
}

func TestMessageCarriesDetail(t *testing.T) {
	err := faults.Validationf("malformed week id %q", "garbage")
	assert.Contains(t, err.Error(), `"garbage"`)
	assert.Contains(t, err.Error(), "validation")
}
