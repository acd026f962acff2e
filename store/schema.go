// CLAUDE:SUMMARY The basket_prices and minimum_wage SQL schema.
package store

import "database/sql"

// Schema holds both observation tables.
//
// basket_prices carries no natural uniqueness key: a document may
// legitimately yield several observations per entity, and dedup within a
// document is a best-effort pipeline stage, not a constraint. The caller
// must not re-ingest the same document within one run.
//
// minimum_wage is keyed by month: re-scraping a period updates the values
// in place.
const Schema = `
CREATE TABLE IF NOT EXISTS basket_prices (
    id      INTEGER PRIMARY KEY AUTOINCREMENT,
    source  TEXT NOT NULL,
    state   TEXT,
    date    DATE,
    product TEXT NOT NULL,
    price   REAL NOT NULL CHECK (price > 0)
);
CREATE INDEX IF NOT EXISTS idx_basket_prices_date ON basket_prices(date DESC);

CREATE TABLE IF NOT EXISTS minimum_wage (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    date       DATE NOT NULL UNIQUE,
    nominal    REAL NOT NULL CHECK (nominal > 0),
    necessario REAL NOT NULL CHECK (necessario > 0)
);
`

// ApplySchema creates all tables and indexes on the given database.
func ApplySchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
