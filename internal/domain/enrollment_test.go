package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnrollmentTarget(t *testing.T) {
	profileID := uint(10)
	athleteID := uint(20)

	t.Run("profile only", func(t *testing.T) {
		target, err := NewEnrollmentTarget(&profileID, nil)
		require.NoError(t, err)
		assert.True(t, target.IsProfile())
		assert.Equal(t, uint(10), target.ID())
	})

	t.Run("athlete only", func(t *testing.T) {
		target, err := NewEnrollmentTarget(nil, &athleteID)
		require.NoError(t, err)
		assert.True(t, target.IsAthlete())
		assert.Equal(t, uint(20), target.ID())
	})

	t.Run("both set is rejected", func(t *testing.T) {
		_, err := NewEnrollmentTarget(&profileID, &athleteID)
		assert.ErrorIs(t, err, ErrInvalidEnrollmentTarget)
	})

	t.Run("neither set is rejected", func(t *testing.T) {
		_, err := NewEnrollmentTarget(nil, nil)
		assert.ErrorIs(t, err, ErrInvalidEnrollmentTarget)
	})
}

func TestEnrollmentTargetColumns(t *testing.T) {
	profileID, athleteID := ProfileTarget(7).Columns()
	require.NotNil(t, profileID)
	assert.Equal(t, uint(7), *profileID)
	assert.Nil(t, athleteID)

	profileID, athleteID = AthleteTarget(9).Columns()
	assert.Nil(t, profileID)
	require.NotNil(t, athleteID)
	assert.Equal(t, uint(9), *athleteID)
}
