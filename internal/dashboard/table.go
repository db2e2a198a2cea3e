package dashboard

import (
	"github.com/wonny/fiidash/internal/contracts"
	"github.com/wonny/fiidash/internal/external/fundamentus"
	"github.com/wonny/fiidash/internal/recommend"
)

// CSS classes of the discount cell
const (
	ClassPositive = "positivo"
	ClassNegative = "negativo"
)

// TableRow is one formatted row of the funds table
type TableRow struct {
	Symbol        string
	Name          string
	Link          string
	Sector        string
	Price         string
	AnnualDY      string
	LastDividend  string
	MonthlyDY     string
	PVP           string
	FairPrice     string
	Discount      string
	DiscountClass string
}

// BuildRows formats funds for the table, in input order
func BuildRows(funds []*contracts.FundRecord) []TableRow {
	rows := make([]TableRow, 0, len(funds))
	for _, f := range funds {
		if f == nil {
			continue
		}
		rows = append(rows, buildRow(f))
	}
	return rows
}

func buildRow(f *contracts.FundRecord) TableRow {
	price := f.Price()

	monthly := 0.0
	if price > 0 {
		monthly = f.Dividend() / price * 100
	}

	name := f.LongName
	if name == "" {
		name = f.Symbol
	}

	sector := recommend.NotAvailable
	if !f.Sector.IsEmpty() {
		sector = f.Sector.String()
	}

	class := ClassNegative
	if f.Discount() > 0 {
		class = ClassPositive
	}

	return TableRow{
		Symbol:        f.Symbol,
		Name:          name,
		Link:          fundamentus.DetailsURL(fundamentus.DefaultBaseURL, f.Symbol),
		Sector:        sector,
		Price:         BRL(price, 2),
		AnnualDY:      Percent(f.DY() * 100),
		LastDividend:  BRL(f.Dividend(), 4),
		MonthlyDY:     Percent(monthly),
		PVP:           Ratio(f.PVP()),
		FairPrice:     BRL(f.Fair(), 2),
		Discount:      Percent(f.Discount()),
		DiscountClass: class,
	}
}
