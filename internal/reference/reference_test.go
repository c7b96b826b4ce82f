package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assessment-report-engine/internal/domain"
)

func TestNormalROM(t *testing.T) {
	v, ok := NormalROM("Shoulder", "Flexion")
	require.True(t, ok)
	assert.Equal(t, 180.0, v)

	v, ok = NormalROM("shoulder", "external rotation")
	require.True(t, ok)
	assert.Equal(t, 90.0, v)

	_, ok = NormalROM("finger", "flexion")
	assert.False(t, ok)
	_, ok = NormalROM("knee", "abduction")
	assert.False(t, ok)

	for _, joint := range Joints() {
		_, ok := normalROM[joint]
		assert.True(t, ok, joint)
	}
}

func TestInterpretBerg(t *testing.T) {
	tests := []struct {
		score    int
		fallRisk string
		mdc      int
	}{
		{0, "High fall risk", 7},
		{20, "High fall risk", 7},
		{21, "Medium fall risk", 7},
		{34, "Medium fall risk", 7},
		{35, "Medium fall risk", 5},
		{40, "Medium fall risk", 5},
		{41, "Low fall risk", 5},
		{44, "Low fall risk", 5},
		{45, "Low fall risk", 4},
		{56, "Low fall risk", 4},
	}

	for _, tt := range tests {
		interp, ok := InterpretBerg(tt.score)
		require.True(t, ok, "score %d", tt.score)
		assert.Equal(t, tt.fallRisk, interp.FallRisk, "score %d", tt.score)
		assert.Equal(t, tt.mdc, interp.MinimalDetectableChange, "score %d", tt.score)
	}

	_, ok := InterpretBerg(57)
	assert.False(t, ok)
	_, ok = InterpretBerg(-1)
	assert.False(t, ok)
	assert.Len(t, BergItems, 14)
}

func TestRateTables(t *testing.T) {
	current := CurrentRates()
	assert.Equal(t, 14.90, current.Rate(domain.CareLevel1))
	assert.Equal(t, 14.00, current.Rate(domain.CareLevel2))
	assert.Equal(t, 21.11, current.Rate(domain.CareLevel3))

	// Mutating a returned table must not leak into later calls
	current.Rates[domain.CareLevel1] = 0
	assert.Equal(t, 14.90, CurrentRates().Rate(domain.CareLevel1))

	historical, err := RatesByName("historical")
	require.NoError(t, err)
	assert.Equal(t, 11.23, historical.Rate(domain.CareLevel1))

	_, err = RatesByName("future")
	assert.Error(t, err)
}
