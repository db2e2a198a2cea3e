package settings

// Settings are the tunables of the fetch/process pipeline
type Settings struct {
	Collect Collect `yaml:"collect" json:"collect"`
	Scoring Scoring `yaml:"scoring" json:"scoring"`
	Ranking Ranking `yaml:"ranking" json:"ranking"`
}

// Collect controls which funds are fetched and kept
type Collect struct {
	BatchSize    int      `yaml:"batch_size" json:"batch_size"`       // tickers per batch
	PriceCeiling float64  `yaml:"price_ceiling" json:"price_ceiling"` // BRL, exclusive
	Tickers      []string `yaml:"tickers" json:"tickers"`             // empty = whole fund list
}

// Scoring controls the derived metrics
type Scoring struct {
	ReferencePVP     float64 `yaml:"reference_pvp" json:"reference_pvp"`
	WeightDY         float64 `yaml:"weight_dy" json:"weight_dy"`
	WeightDiscount   float64 `yaml:"weight_discount" json:"weight_discount"`
	WeightLiquidity  float64 `yaml:"weight_liquidity" json:"weight_liquidity"`
	LiquidityDivisor float64 `yaml:"liquidity_divisor" json:"liquidity_divisor"`
	LiquidityCap     float64 `yaml:"liquidity_cap" json:"liquidity_cap"`
}

// Ranking controls the processed output size
type Ranking struct {
	Limit int `yaml:"limit" json:"limit"`
}

// WeightSum returns the sum of the score weights
func (s Scoring) WeightSum() float64 {
	return s.WeightDY + s.WeightDiscount + s.WeightLiquidity
}

// Default returns the values the dashboard has always been built with
func Default() *Settings {
	return &Settings{
		Collect: Collect{
			BatchSize:    20,
			PriceCeiling: 25.0,
		},
		Scoring: Scoring{
			ReferencePVP:     1.0,
			WeightDY:         0.5,
			WeightDiscount:   0.3,
			WeightLiquidity:  0.2,
			LiquidityDivisor: 1_000_000,
			LiquidityCap:     10,
		},
		Ranking: Ranking{
			Limit: 30,
		},
	}
}
