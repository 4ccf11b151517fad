package config

import (
	"os"
	"strconv"

	"github.com/iamram3sh/2ndshift-sub002/internal/escrow"
)

const (
	defaultPlatformFeePercent = 10.0
	defaultTDSRate            = 10.0
	defaultTDSThreshold       = 30000.0
	defaultMinEscrowAmount    = 500.0
	defaultMaxRevisions       = 2
	defaultBidShiftCost       = 2
	defaultSignupShiftGrant   = 10
)

// Platform builds the marketplace policy from environment variables. The
// result is passed explicitly into the escrow workflow so tests can vary
// fees and thresholds without touching process-wide state.
func Platform() escrow.Config {
	return escrow.Config{
		PlatformFeePercent: floatEnv("PLATFORM_FEE_PERCENT", defaultPlatformFeePercent),
		TDSRate:            floatEnv("TDS_RATE", defaultTDSRate),
		TDSThreshold:       floatEnv("TDS_THRESHOLD", defaultTDSThreshold),
		MinEscrowAmount:    floatEnv("MIN_ESCROW_AMOUNT", defaultMinEscrowAmount),
		MaxRevisions:       intEnv("MAX_REVISIONS", defaultMaxRevisions),
	}
}

// BidShiftCost is the number of Shift credits debited when a worker places a bid.
func BidShiftCost() int {
	return intEnv("BID_SHIFT_COST", defaultBidShiftCost)
}

// SignupShiftGrant is the number of Shift credits granted to new accounts.
func SignupShiftGrant() int {
	return intEnv("SIGNUP_SHIFT_GRANT", defaultSignupShiftGrant)
}

func floatEnv(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
