package contracts

import (
	"encoding/json"
	"fmt"
)

// FundRecord is one FII as carried by the dataset document.
// Optional numerics are pointers: nil means the field was absent.
// ⭐ SSOT: Loader → Engine/Renderer 데이터 전달
type FundRecord struct {
	Symbol   string `json:"symbol"`
	LongName string `json:"longName,omitempty"`
	Sector   Sector `json:"sector,omitempty"`

	DividendYield      *float64 `json:"dividendYield,omitempty"` // 0.08 = 8%
	PriceToBook        *float64 `json:"priceToBook,omitempty"`
	RegularMarketPrice *float64 `json:"regularMarketPrice,omitempty"`
	LastDividend       *float64 `json:"lastDividend,omitempty"`
	BookValue          *float64 `json:"bookValue,omitempty"`
	AvgDailyVolume10D  *float64 `json:"avgDailyVolume10Day,omitempty"`

	// Derived by the processing pipeline
	FairPrice   *float64 `json:"precoJusto,omitempty"`
	DiscountPct *float64 `json:"desconto,omitempty"` // percent, 15 = 15%
	Score       *float64 `json:"score,omitempty"`
}

// Float returns a pointer to v, for building records
func Float(v float64) *float64 {
	return &v
}

func valueOr0(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// DY returns the dividend yield ratio, 0 when absent
func (f *FundRecord) DY() float64 { return valueOr0(f.DividendYield) }

// PVP returns price-to-book, 0 when absent
func (f *FundRecord) PVP() float64 { return valueOr0(f.PriceToBook) }

// Price returns the regular market price, 0 when absent
func (f *FundRecord) Price() float64 { return valueOr0(f.RegularMarketPrice) }

// Dividend returns the last dividend amount, 0 when absent
func (f *FundRecord) Dividend() float64 { return valueOr0(f.LastDividend) }

// Book returns the book value per share, 0 when absent
func (f *FundRecord) Book() float64 { return valueOr0(f.BookValue) }

// Volume returns the 10-day average daily volume, 0 when absent
func (f *FundRecord) Volume() float64 { return valueOr0(f.AvgDailyVolume10D) }

// Fair returns the computed fair price, 0 when absent
func (f *FundRecord) Fair() float64 { return valueOr0(f.FairPrice) }

// Discount returns the discount percentage, 0 when absent
func (f *FundRecord) Discount() float64 { return valueOr0(f.DiscountPct) }

// ScoreValue returns the ranking score, 0 when absent
func (f *FundRecord) ScoreValue() float64 { return valueOr0(f.Score) }

// Clone returns a shallow copy whose pointer fields are independent
func (f *FundRecord) Clone() *FundRecord {
	c := *f
	for _, p := range []**float64{
		&c.DividendYield, &c.PriceToBook, &c.RegularMarketPrice, &c.LastDividend,
		&c.BookValue, &c.AvgDailyVolume10D, &c.FairPrice, &c.DiscountPct, &c.Score,
	} {
		if *p != nil {
			v := **p
			*p = &v
		}
	}
	return &c
}

// UnmarshalJSON accepts lastDividend either as a number or as the
// upstream object form {"value": n}.
func (f *FundRecord) UnmarshalJSON(data []byte) error {
	type plain FundRecord
	aux := struct {
		*plain
		LastDividend json.RawMessage `json:"lastDividend,omitempty"`
	}{plain: (*plain)(f)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	f.LastDividend = nil
	if len(aux.LastDividend) == 0 || string(aux.LastDividend) == "null" {
		return nil
	}

	var amount float64
	if err := json.Unmarshal(aux.LastDividend, &amount); err == nil {
		f.LastDividend = &amount
		return nil
	}

	var obj struct {
		Value *float64 `json:"value"`
	}
	if err := json.Unmarshal(aux.LastDividend, &obj); err != nil {
		return fmt.Errorf("lastDividend for %s: %w", f.Symbol, err)
	}
	f.LastDividend = obj.Value
	return nil
}
