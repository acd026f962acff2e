// CLAUDE:SUMMARY Minimum-wage HTML table parser — year-heading state machine, Portuguese month lookup.
// Package wage parses the DIEESE minimum-wage table.
//
// The source page lists months grouped under year heading rows (class
// "subtitulo" carrying an <a name="YYYY"> anchor). Data rows are only
// meaningful once the current year is known; rows preceding any heading
// are discarded.
package wage

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/cestalab/cesta/extract"
)

// Row is one minimum-wage observation: the nominal wage for the month and
// the wage DIEESE estimates as necessary to cover basic costs.
type Row struct {
	Date     time.Time
	Nominal  float64
	Required float64
}

// months maps folded Portuguese month names to month numbers. Keys are
// lower-case with diacritics removed, so "Março", "março" and "marco" all
// resolve to 3.
var months = map[string]time.Month{
	"janeiro":   time.January,
	"fevereiro": time.February,
	"marco":     time.March,
	"abril":     time.April,
	"maio":      time.May,
	"junho":     time.June,
	"julho":     time.July,
	"agosto":    time.August,
	"setembro":  time.September,
	"outubro":   time.October,
	"novembro":  time.November,
	"dezembro":  time.December,
}

// foldTransformer strips combining marks after NFD decomposition.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldMonth lower-cases a month token and removes diacritics.
func foldMonth(s string) string {
	folded, _, err := transform.String(foldTransformer, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return folded
}

// ParseTable reads the first <table> of the document and returns one Row
// per recognised month. Rows with an unknown month name, unparsable
// amounts, or no preceding year heading are discarded silently; the page
// carries footnotes and spacer rows that must not poison the import.
func ParseTable(r io.Reader) ([]Row, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no wage table found in document")
	}

	var rows []Row
	currentYear := 0

	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.HasClass("subtitulo") {
			if name, ok := tr.Find("a[name]").Attr("name"); ok {
				if year, err := strconv.Atoi(name); err == nil {
					currentYear = year
				}
			}
			return
		}

		tds := tr.Find("td")
		if tds.Length() != 3 || currentYear == 0 {
			return
		}

		month, ok := months[foldMonth(tds.Eq(0).Text())]
		if !ok {
			return
		}

		nominal, err := parseAmount(tds.Eq(1).Text())
		if err != nil {
			return
		}
		required, err := parseAmount(tds.Eq(2).Text())
		if err != nil {
			return
		}

		rows = append(rows, Row{
			Date:     time.Date(currentYear, month, 1, 0, 0, 0, 0, time.UTC),
			Nominal:  nominal,
			Required: required,
		})
	})

	return rows, nil
}

// parseAmount strips the currency marker and parses a cell value.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "R$", ""))
	return extract.ParseMoney(s)
}
