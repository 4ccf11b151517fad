package escrow

import "math"

// Config carries the platform payment policy. It is built once by the caller
// (see config.Platform) and passed in explicitly so tests can vary fees and
// thresholds without touching process-wide state.
type Config struct {
	PlatformFeePercent float64
	TDSRate            float64
	TDSThreshold       float64
	MinEscrowAmount    float64
	MaxRevisions       int
}

// PayoutBreakdown is the fee/tax split computed at escrow creation. It is
// snapshotted onto the escrow row and never recomputed afterwards.
type PayoutBreakdown struct {
	TotalAmount        float64 `json:"totalAmount"`
	PlatformFee        float64 `json:"platformFee"`
	TDSAmount          float64 `json:"tdsAmount"`
	ProfessionalPayout float64 `json:"professionalPayout"`
}

// ComputePayout splits a contract amount into platform fee, TDS withholding
// and the professional's net payout.
//
// TDS applies only when the post-fee amount strictly exceeds the configured
// threshold; the comparison is against the amount after the platform fee,
// not the gross total. Derived values are rounded to 2 decimal places with
// math.Round (half away from zero), so fee + tds + payout reconstructs the
// total within 0.01.
func ComputePayout(totalAmount float64, cfg Config) (PayoutBreakdown, error) {
	if math.IsNaN(totalAmount) || math.IsInf(totalAmount, 0) || totalAmount <= 0 {
		return PayoutBreakdown{}, ErrInvalidAmount
	}

	platformFee := totalAmount * cfg.PlatformFeePercent / 100
	afterFee := totalAmount - platformFee

	var tds float64
	if afterFee > cfg.TDSThreshold {
		tds = afterFee * cfg.TDSRate / 100
	}

	payout := afterFee - tds

	return PayoutBreakdown{
		TotalAmount:        totalAmount,
		PlatformFee:        round2(platformFee),
		TDSAmount:          round2(tds),
		ProfessionalPayout: round2(payout),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
