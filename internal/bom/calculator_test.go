package bom

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/cablemrp/internal/domain"
)

const tol = 1e-9

func TestCalculateItem_TRN70Scenario(t *testing.T) {
	catalog := []domain.CompositionRecord{{
		Code:          "TRN70",
		PerMeter:      map[domain.MaterialKind]float64{domain.Aluminum: 0.6, domain.PE: 0.2},
		TotalPerMeter: 0.8,
	}}
	require.NoError(t, catalog[0].Validate())

	item, err := CalculateItem(NewResolver(NewIndex(catalog)), "TRN70", 500)
	require.NoError(t, err)

	assert.True(t, item.Resolved)
	require.NotNil(t, item.ResolvedCode)
	assert.Equal(t, "TRN70", *item.ResolvedCode)
	assert.InDelta(t, 300, item.Materials[domain.Aluminum], tol)
	assert.InDelta(t, 100, item.Materials[domain.PE], tol)
	assert.InDelta(t, 400, item.NetWeightKg, tol)
	assert.InDelta(t, 420, item.GrossWeightKg, tol)
}

func TestCalculate_MassIsCoefficientTimesLength(t *testing.T) {
	r := rec("MULTI16", map[domain.MaterialKind]float64{
		domain.Aluminum:       0.151,
		domain.XLPE:           0.0432,
		domain.XLPESilane:     0.0011,
		domain.PVC:            0.0894,
		domain.PigUVBlack:     0.00042,
		domain.PigPVCBlack:    0.00031,
		domain.PigPVCBrown:    0.0002,
		domain.PigUVBlue:      0.00017,
		domain.HEPR:           0,
		domain.PVCMasterbatch: 0.0035,
	})
	for _, length := range []float64{0.5, 1, 137.25, 1000, 25000} {
		item, err := Calculate(&r, "multi16", length, domain.MatchExact)
		require.NoError(t, err)
		for kind, coef := range r.PerMeter {
			assert.InDelta(t, coef*length, item.Materials[kind], tol, "kind %s length %v", kind, length)
		}
		assert.InDelta(t, r.TotalPerMeter*length, item.NetWeightKg, 1e-6)
		assert.Equal(t, item.NetWeightKg*GrossOverheadFactor, item.GrossWeightKg)
	}
}

func TestCalculate_PigmentBuckets(t *testing.T) {
	r := rec("UN10", map[domain.MaterialKind]float64{
		domain.Aluminum:     0.1,
		domain.PigUVBlack:   0.002,
		domain.PigPVCBlack:  0.001,
		domain.PigPVCOrange: 0.004,
	})
	item, err := Calculate(&r, "UN10", 100, domain.MatchExact)
	require.NoError(t, err)

	assert.InDelta(t, 0.3, item.Pigments[domain.ColorBlack], tol)
	assert.InDelta(t, 0.4, item.Pigments[domain.ColorOrange], tol)
	assert.Len(t, item.Pigments, len(PigmentBuckets))
	assert.Zero(t, item.Pigments[domain.ColorBrown])
}

func TestCalculate_UnknownKindWarns(t *testing.T) {
	r := rec("UN16", map[domain.MaterialKind]float64{
		domain.Aluminum:                    0.15,
		domain.MaterialKind("pig_uv_pink"): 0.001,
	})
	item, err := Calculate(&r, "UN16", 1000, domain.MatchExact)
	require.NoError(t, err)

	assert.InDelta(t, 151, item.NetWeightKg, 1e-6)
	assert.InDelta(t, 1, item.Materials[domain.MaterialKind("pig_uv_pink")], tol)
	require.Len(t, item.Warnings, 1)
	assert.Contains(t, item.Warnings[0], "pig_uv_pink")
}

func TestCalculateItem_UnknownCodeIsSoft(t *testing.T) {
	idx := NewIndex([]domain.CompositionRecord{rec("TRN70", map[domain.MaterialKind]float64{domain.Aluminum: 0.6})})

	item, err := CalculateItem(NewResolver(idx), "ZZZ", 250)
	require.NoError(t, err)

	assert.False(t, item.Resolved)
	assert.Nil(t, item.ResolvedCode)
	assert.Equal(t, 250.0, item.LengthMeters)
	assert.Zero(t, item.NetWeightKg)
	assert.Zero(t, item.GrossWeightKg)
	for _, v := range item.Materials {
		assert.Zero(t, v)
	}
	for _, v := range item.Pigments {
		assert.Zero(t, v)
	}
}

func TestValidateLength(t *testing.T) {
	for _, l := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := ValidateLength(l)
		require.Error(t, err, "length %v", l)
		assert.True(t, errors.Is(err, domain.ErrValidation))
	}
	assert.NoError(t, ValidateLength(0.01))

	_, err := CalculateItem(NewResolver(NewIndex(nil)), "TRN70", -5)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCompositionRecord_TotalInvariant(t *testing.T) {
	r := rec("TRN70", map[domain.MaterialKind]float64{domain.Aluminum: 0.1, domain.PE: 0.2, domain.PVC: 0.3})
	assert.InDelta(t, 0.6, r.TotalPerMeter, tol)
	assert.NoError(t, r.Validate())

	r.TotalPerMeter = 0.61
	assert.ErrorIs(t, r.Validate(), domain.ErrValidation)

	neg := rec("NEG1", map[domain.MaterialKind]float64{domain.PE: -0.1})
	assert.ErrorIs(t, neg.Validate(), domain.ErrValidation)
}
