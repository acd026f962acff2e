// CLAUDE:SUMMARY Basket-price operations: transactional append, bulk clear, read queries, stats.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// AppendPrices inserts observations as new rows inside one transaction.
// The statement batch is all-or-nothing: a failed insert rolls back the
// whole call and the error is fatal for the current ingestion batch.
func (s *Store) AppendPrices(ctx context.Context, rows []PriceObservation) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("append prices: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO basket_prices (source, state, date, product, price) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("append prices: prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx,
			r.Source, nullString(r.Location), nullDate(r.Date), r.Product, r.Price); err != nil {
			return fmt.Errorf("append prices: insert %s/%s: %w", r.Source, r.Location, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("append prices: commit: %w", err)
	}
	return nil
}

// ClearPrices removes every basket-price row. This is the destructive
// maintenance operation; normal ingestion never deletes.
func (s *Store) ClearPrices(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM basket_prices`); err != nil {
		return fmt.Errorf("clear prices: %w", err)
	}
	return nil
}

// ListPrices returns up to limit observations, newest period first.
func (s *Store) ListPrices(ctx context.Context, limit int) ([]PriceObservation, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.queryPrices(ctx,
		`SELECT id, source, state, date, product, price
		FROM basket_prices ORDER BY date DESC LIMIT ?`, limit)
}

// Cheapest returns the n lowest-priced observations.
func (s *Store) Cheapest(ctx context.Context, n int) ([]PriceObservation, error) {
	if n <= 0 {
		n = 3
	}
	return s.queryPrices(ctx,
		`SELECT id, source, state, date, product, price
		FROM basket_prices ORDER BY price ASC LIMIT ?`, n)
}

// GetPrice retrieves one observation by id. A missing id returns nil, nil.
func (s *Store) GetPrice(ctx context.Context, id int64) (*PriceObservation, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT id, source, state, date, product, price
		FROM basket_prices WHERE id = ?`, id)
	obs, err := scanPrice(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get price: %w", err)
	}
	return obs, nil
}

// Stats returns row counts for both tables.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM basket_prices`).Scan(&st.BasketPrices); err != nil {
		return st, fmt.Errorf("stats: basket_prices: %w", err)
	}
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM minimum_wage`).Scan(&st.MinimumWage); err != nil {
		return st, fmt.Errorf("stats: minimum_wage: %w", err)
	}
	return st, nil
}

func (s *Store) queryPrices(ctx context.Context, query string, args ...any) ([]PriceObservation, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PriceObservation
	for rows.Next() {
		obs, err := scanPrice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		result = append(result, *obs)
	}
	return result, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPrice(row scanner) (*PriceObservation, error) {
	var (
		obs   PriceObservation
		state sql.NullString
		date  sql.NullString
	)
	if err := row.Scan(&obs.ID, &obs.Source, &state, &date, &obs.Product, &obs.Price); err != nil {
		return nil, err
	}
	obs.Location = state.String
	if date.Valid {
		t, err := time.Parse(dateLayout, date.String)
		if err != nil {
			return nil, fmt.Errorf("bad date %q: %w", date.String, err)
		}
		obs.Date = t
	}
	return &obs, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(dateLayout)
}
