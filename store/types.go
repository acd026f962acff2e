// CLAUDE:SUMMARY Store data types: PriceObservation, WageObservation, Stats, VariationRow.
package store

import "time"

// dateLayout is how periods are stored in the DATE columns.
const dateLayout = "2006-01-02"

// PriceObservation is one basket-price record extracted from a bulletin.
// A zero Date means the reporting period could not be determined and is
// stored as NULL; an empty Location likewise.
type PriceObservation struct {
	ID       int64     `json:"id"`
	Source   string    `json:"source"`
	Location string    `json:"state,omitempty"`
	Date     time.Time `json:"date,omitzero"`
	Product  string    `json:"product"`
	Price    float64   `json:"price"`
}

// WageObservation is the nominal and necessary minimum wage for one month.
type WageObservation struct {
	ID       int64     `json:"id"`
	Date     time.Time `json:"date"`
	Nominal  float64   `json:"nominal"`
	Required float64   `json:"necessario"`
}

// Stats holds row counts per table.
type Stats struct {
	BasketPrices int `json:"basket_prices"`
	MinimumWage  int `json:"minimum_wage"`
}

// VariationRow is one line of the year-over-year report: the mean basket
// price for a state and year, its percentage change against the previous
// year, the wage change for the same year, and the difference between the
// two. Pct fields are nil for the first year of a series.
type VariationRow struct {
	State     string   `json:"state"`
	Year      int      `json:"year"`
	MeanPrice float64  `json:"mean_price"`
	BasketPct *float64 `json:"basket_pct,omitempty"`
	WagePct   *float64 `json:"wage_pct,omitempty"`
	IndexPct  *float64 `json:"index_pct,omitempty"`
}
