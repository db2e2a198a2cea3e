package settings

import (
	"fmt"
	"math"
)

// ValidationError reports an invalid settings field
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks all required constraints
func Validate(s *Settings) error {
	if s.Collect.BatchSize <= 0 {
		return ValidationError{"collect.batch_size", "must be > 0"}
	}
	if s.Collect.PriceCeiling <= 0 {
		return ValidationError{"collect.price_ceiling", "must be > 0"}
	}

	if s.Scoring.ReferencePVP <= 0 {
		return ValidationError{"scoring.reference_pvp", "must be > 0"}
	}
	for field, w := range map[string]float64{
		"scoring.weight_dy":        s.Scoring.WeightDY,
		"scoring.weight_discount":  s.Scoring.WeightDiscount,
		"scoring.weight_liquidity": s.Scoring.WeightLiquidity,
	} {
		if w < 0 {
			return ValidationError{field, "must be >= 0"}
		}
	}
	if math.Abs(s.Scoring.WeightSum()-1.0) > 0.01 {
		return ValidationError{"scoring", fmt.Sprintf("weights must sum to 1.0, got %.2f", s.Scoring.WeightSum())}
	}
	if s.Scoring.LiquidityDivisor <= 0 {
		return ValidationError{"scoring.liquidity_divisor", "must be > 0"}
	}
	if s.Scoring.LiquidityCap < 0 {
		return ValidationError{"scoring.liquidity_cap", "must be >= 0"}
	}

	if s.Ranking.Limit <= 0 {
		return ValidationError{"ranking.limit", "must be > 0"}
	}

	return nil
}
