package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/fitscore/internal/types"
)

func TestDecide_Bands(t *testing.T) {
	bands := DefaultBands()
	bench := testBenchmark() // hire 7.5, elite 8.5

	tests := []struct {
		name    string
		overall float64
		want    types.HireDecision
	}{
		{"above elite", 9.0, types.DecisionHire},
		{"at elite", 8.5, types.DecisionHire},
		{"between hire and elite", 8.0, types.DecisionHire},
		{"exactly at hire threshold", 7.5, types.DecisionHire},
		{"just below hire", 7.49, types.DecisionStrongMaybe},
		{"strong maybe lower edge", 6.5, types.DecisionStrongMaybe},
		{"maybe band", 6.0, types.DecisionMaybe},
		{"maybe lower edge", 5.5, types.DecisionMaybe},
		{"below every band", 5.49, types.DecisionNoHire},
		{"zero", 0.0, types.DecisionNoHire},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bands.Decide(tt.overall, bench))
		})
	}
}

func TestDecide_CustomOffsets(t *testing.T) {
	bands := Bands{StrongMaybeOffset: 0.5, MaybeOffset: 1.0}
	bench := testBenchmark()

	assert.Equal(t, types.DecisionStrongMaybe, bands.Decide(7.2, bench))
	assert.Equal(t, types.DecisionMaybe, bands.Decide(6.7, bench))
	assert.Equal(t, types.DecisionNoHire, bands.Decide(6.4, bench))
}

func TestBorderline(t *testing.T) {
	bands := DefaultBands() // margin 0.5, floor 70
	bench := testBenchmark()

	// Within the margin around the hire threshold, either side.
	assert.True(t, bands.Borderline(7.5, 90, bench))
	assert.True(t, bands.Borderline(7.1, 90, bench))
	assert.True(t, bands.Borderline(8.0, 90, bench))

	// Clearly decided scores with solid confidence are not borderline.
	assert.False(t, bands.Borderline(9.0, 90, bench))
	assert.False(t, bands.Borderline(3.0, 90, bench))

	// Low confidence makes any score borderline.
	assert.True(t, bands.Borderline(9.0, 50, bench))
	assert.True(t, bands.Borderline(3.0, 69.9, bench))
	assert.False(t, bands.Borderline(3.0, 70.0, bench))
}
