package pipeline

import (
	"github.com/shopspring/decimal"

	"github.com/wonny/fiidash/internal/contracts"
	"github.com/wonny/fiidash/internal/settings"
)

// ComputeMetrics returns a copy of f with fair price, discount and score set.
//
//	fair     = book * referencePVP
//	discount = (1 - price/fair) * 100, 0 when fair <= 0
//	score    = wDY*dy*100 + wDiscount*discount + wLiquidity*min(volume/divisor, cap)
//
// Each result is rounded half away from zero to 2 places. The discount is
// taken against the unrounded fair price; the score uses the rounded discount.
func ComputeMetrics(f *contracts.FundRecord, s settings.Scoring) *contracts.FundRecord {
	out := f.Clone()

	fair := decimal.NewFromFloat(f.Book()).Mul(decimal.NewFromFloat(s.ReferencePVP))

	discount := decimal.Zero
	if fair.IsPositive() {
		discount = decimal.NewFromInt(1).
			Sub(decimal.NewFromFloat(f.Price()).Div(fair)).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	liquidity := decimal.Zero
	if s.LiquidityDivisor > 0 {
		liquidity = decimal.NewFromFloat(f.Volume()).Div(decimal.NewFromFloat(s.LiquidityDivisor))
	}
	liquidity = decimal.Min(liquidity, decimal.NewFromFloat(s.LiquidityCap))

	score := decimal.NewFromFloat(s.WeightDY).Mul(decimal.NewFromFloat(f.DY())).Mul(decimal.NewFromInt(100)).
		Add(decimal.NewFromFloat(s.WeightDiscount).Mul(discount)).
		Add(decimal.NewFromFloat(s.WeightLiquidity).Mul(liquidity)).
		Round(2)

	out.FairPrice = contracts.Float(fair.Round(2).InexactFloat64())
	out.DiscountPct = contracts.Float(discount.InexactFloat64())
	out.Score = contracts.Float(score.InexactFloat64())
	return out
}
