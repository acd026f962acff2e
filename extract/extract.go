// CLAUDE:SUMMARY Inline and tabular pattern rules producing candidate price records from bulletin text.
package extract

import (
	"log/slog"
	"regexp"
	"strings"
	"time"
)

// Candidate is one price tuple produced by a pattern rule, before
// deduplication and outlier filtering.
type Candidate struct {
	Source   string    // publishing agency tag ("procon", "dieese", ...)
	Entity   string    // entity name as matched in the text, trimmed
	Location string    // city/state label persisted with the row; may equal Entity
	Date     time.Time // reporting period, zero when unknown
	Product  string
	Price    float64
	Inline   bool // true when produced by the inline rule
}

// amount is the Brazilian currency pattern: optional thousands groups and
// mandatory two decimals ("467,65", "1.234,56"). The second alternative
// accepts ungrouped digit runs ("90000,00"): PDF text layers concatenate
// digits across columns, and those artifacts must reach FilterOutliers
// rather than silently vanish.
const amount = `(?:[0-9]{1,3}(?:\.[0-9]{3})*|[0-9]+),[0-9]{2}`

var (
	// inlineRe matches prose mentions with an explicit currency marker:
	// "Goiânia (R$ 467,65)".
	inlineRe = regexp.MustCompile(`(?i)([A-Za-zÀ-ÿ ]+?)\s*\(\s*R\$\s*(` + amount + `)\s*\)`)

	// tableRe matches fixed-width table rows: a line starting with an
	// entity name followed by a bare amount ("Goiânia 467,65 ...").
	// Bare numbers are prone to false positives; Dedupe and
	// FilterOutliers clean up after this rule.
	tableRe = regexp.MustCompile(`(?im)^([A-Za-zÀ-ÿ ]+?)\s+(` + amount + `)\b`)
)

// Extract runs both pattern rules over the full text of one document and
// returns the union of their candidates.
//
// When fixedLocation is non-empty the source reports a single region: every
// match keeps fixedLocation as its persisted location and the matched entity
// name only serves deduplication. When fixedLocation is empty the entity
// name becomes the row's location (multi-city sources).
//
// Amounts that fail to parse are skipped with a warning; a document matching
// nothing yields an empty slice. Neither case is an error.
func Extract(text, source, product, fixedLocation string, logger *slog.Logger) []Candidate {
	if logger == nil {
		logger = slog.Default()
	}

	var out []Candidate
	emit := func(entity, raw string, inline bool) {
		entity = strings.TrimSpace(entity)
		if entity == "" {
			return
		}
		price, err := ParseMoney(raw)
		if err != nil {
			logger.Warn("extract: skipping malformed amount",
				"source", source, "entity", entity, "raw", raw, "error", err)
			return
		}
		location := fixedLocation
		if location == "" {
			location = entity
		}
		out = append(out, Candidate{
			Source:   source,
			Entity:   entity,
			Location: location,
			Product:  product,
			Price:    price,
			Inline:   inline,
		})
	}

	for _, m := range inlineRe.FindAllStringSubmatch(text, -1) {
		emit(m[1], m[2], true)
	}
	for _, m := range tableRe.FindAllStringSubmatch(text, -1) {
		emit(m[1], m[2], false)
	}
	return out
}

// Dedupe drops tabular candidates whose entity name already has an inline
// match within the same document. The inline rule carries an unambiguous
// currency marker and is treated as higher confidence than a bare table
// number. Keying is exact trimmed entity-name equality; tabular rows for
// names the inline rule never saw all survive.
func Dedupe(cands []Candidate) []Candidate {
	inline := make(map[string]bool, len(cands))
	for _, c := range cands {
		if c.Inline {
			inline[c.Entity] = true
		}
	}
	out := cands[:0:0]
	for _, c := range cands {
		if !c.Inline && inline[c.Entity] {
			continue
		}
		out = append(out, c)
	}
	return out
}
