package escrow

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() Config {
	return Config{
		PlatformFeePercent: 10,
		TDSRate:            10,
		TDSThreshold:       30000,
		MinEscrowAmount:    500,
		MaxRevisions:       2,
	}
}

func TestComputePayoutAboveTDSThreshold(t *testing.T) {
	got, err := ComputePayout(50000, defaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 5000.0, got.PlatformFee)
	assert.Equal(t, 4500.0, got.TDSAmount)
	assert.Equal(t, 40500.0, got.ProfessionalPayout)
}

func TestComputePayoutBelowTDSThreshold(t *testing.T) {
	got, err := ComputePayout(20000, defaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 2000.0, got.PlatformFee)
	assert.Equal(t, 0.0, got.TDSAmount)
	assert.Equal(t, 18000.0, got.ProfessionalPayout)
}

func TestComputePayoutThresholdIsStrictAndPostFee(t *testing.T) {
	// A threshold of 900 with a 10% fee keeps the boundary arithmetic exact:
	// a gross of 1000 lands afterFee on the threshold to the rupee.
	cfg := defaultConfig()
	cfg.TDSThreshold = 900

	got, err := ComputePayout(1000, cfg)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.TDSAmount, "TDS must not apply when afterFee equals the threshold")

	got, err = ComputePayout(1012, cfg)
	require.NoError(t, err)
	assert.Greater(t, got.TDSAmount, 0.0, "TDS applies once afterFee strictly exceeds the threshold")

	// Gross above the threshold but afterFee below it: no TDS, because the
	// comparison runs against the post-fee amount.
	got, err = ComputePayout(950, cfg)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.TDSAmount)
}

func TestComputePayoutSumInvariant(t *testing.T) {
	cfg := defaultConfig()
	for _, amount := range []float64{500, 999.99, 20000, 30001, 45678.91, 50000, 123456.78} {
		got, err := ComputePayout(amount, cfg)
		require.NoError(t, err)

		sum := got.PlatformFee + got.TDSAmount + got.ProfessionalPayout
		assert.InDelta(t, amount, sum, 0.01, "breakdown of %.2f must reconstruct the total", amount)
	}
}

func TestComputePayoutRejectsBadAmounts(t *testing.T) {
	cfg := defaultConfig()
	for _, amount := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := ComputePayout(amount, cfg)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
}
