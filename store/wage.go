// CLAUDE:SUMMARY Minimum-wage upsert keyed by period and the wage listing query.
package store

import (
	"context"
	"fmt"
	"time"
)

// UpsertWages inserts or updates one row per observation, keyed by period.
// Re-running with the same period overwrites nominal and necessario in
// place, a true upsert, so repeated scrapes never duplicate months.
func (s *Store) UpsertWages(ctx context.Context, rows []WageObservation) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert wages: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO minimum_wage (date, nominal, necessario) VALUES (?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			nominal = excluded.nominal,
			necessario = excluded.necessario`)
	if err != nil {
		return fmt.Errorf("upsert wages: prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx,
			r.Date.Format(dateLayout), r.Nominal, r.Required); err != nil {
			return fmt.Errorf("upsert wages: %s: %w", r.Date.Format(dateLayout), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert wages: commit: %w", err)
	}
	return nil
}

// ListWages returns all wage observations ordered by period.
func (s *Store) ListWages(ctx context.Context) ([]WageObservation, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, date, nominal, necessario FROM minimum_wage ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []WageObservation
	for rows.Next() {
		var (
			obs  WageObservation
			date string
		)
		if err := rows.Scan(&obs.ID, &date, &obs.Nominal, &obs.Required); err != nil {
			return nil, fmt.Errorf("scan wage: %w", err)
		}
		t, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("bad date %q: %w", date, err)
		}
		obs.Date = t
		result = append(result, obs)
	}
	return result, rows.Err()
}
