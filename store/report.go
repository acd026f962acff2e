// CLAUDE:SUMMARY Year-over-year variation report joining basket means against wage changes.
package store

import (
	"context"
	"fmt"
	"sort"
)

// YearOverYear computes, per (state, year), the mean basket price and its
// percentage change against the previous year for the same state, joins in
// the minimum-wage change for that year, and derives the comparison index
// (wage change minus basket change). Observations without a state or a
// period are excluded; the first year of each series has no change figures.
func (s *Store) YearOverYear(ctx context.Context) ([]VariationRow, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT state, CAST(strftime('%Y', date) AS INTEGER) AS year, AVG(price)
		FROM basket_prices
		WHERE state IS NOT NULL AND date IS NOT NULL
		GROUP BY state, year
		ORDER BY state, year`)
	if err != nil {
		return nil, fmt.Errorf("yearly means: %w", err)
	}
	defer rows.Close()

	var result []VariationRow
	for rows.Next() {
		var r VariationRow
		if err := rows.Scan(&r.State, &r.Year, &r.MeanPrice); err != nil {
			return nil, fmt.Errorf("scan yearly mean: %w", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	wagePct, err := s.yearlyWagePct(ctx)
	if err != nil {
		return nil, err
	}

	for i := range result {
		if i > 0 && result[i-1].State == result[i].State {
			pct := (result[i].MeanPrice - result[i-1].MeanPrice) / result[i-1].MeanPrice * 100
			result[i].BasketPct = &pct
		}
		if w, ok := wagePct[result[i].Year]; ok {
			wp := w
			result[i].WagePct = &wp
			if result[i].BasketPct != nil {
				idx := wp - *result[i].BasketPct
				result[i].IndexPct = &idx
			}
		}
	}
	return result, nil
}

// yearlyWagePct maps year → percentage change of the first nominal wage of
// that year against the previous year's.
func (s *Store) yearlyWagePct(ctx context.Context) (map[int]float64, error) {
	// Bare-column + MIN() picks nominal from the earliest row of each year
	// (SQLite's min/max bare-column guarantee).
	rows, err := s.DB.QueryContext(ctx, `
		SELECT CAST(strftime('%Y', date) AS INTEGER) AS year, nominal, MIN(date)
		FROM minimum_wage
		GROUP BY year
		ORDER BY year`)
	if err != nil {
		return nil, fmt.Errorf("yearly wages: %w", err)
	}
	defer rows.Close()

	type yw struct {
		year    int
		nominal float64
	}
	var wages []yw
	for rows.Next() {
		var (
			w       yw
			minDate string
		)
		if err := rows.Scan(&w.year, &w.nominal, &minDate); err != nil {
			return nil, fmt.Errorf("scan yearly wage: %w", err)
		}
		wages = append(wages, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Slice(wages, func(i, j int) bool { return wages[i].year < wages[j].year })

	pct := make(map[int]float64, len(wages))
	for i := 1; i < len(wages); i++ {
		if wages[i-1].nominal != 0 {
			pct[wages[i].year] = (wages[i].nominal - wages[i-1].nominal) / wages[i-1].nominal * 100
		}
	}
	return pct, nil
}
