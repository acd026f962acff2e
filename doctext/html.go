// CLAUDE:SUMMARY HTML excerpt extractor via goquery — one line per block element or table row.
package doctext

import (
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractHTML extracts text from a saved HTML excerpt. Crawlers store
// price-bearing fragments (paragraphs, lists, tables) rather than whole
// pages; each block element and each table row becomes one output line so
// that tabular price rows stay line-anchored.
func extractHTML(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return "", err
	}
	doc.Find("script, style").Remove()

	var lines []string
	doc.Find("p, li, h1, h2, h3, h4, h5, h6, tr").Each(func(_ int, sel *goquery.Selection) {
		var text string
		if goquery.NodeName(sel) == "tr" {
			var cells []string
			sel.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
				if t := strings.TrimSpace(cell.Text()); t != "" {
					cells = append(cells, t)
				}
			})
			text = strings.Join(cells, " ")
		} else if sel.Find("li, tr").Length() == 0 {
			// Leaf blocks only; a <p> wrapping a list is covered by its items.
			text = sel.Text()
		}
		if t := strings.TrimSpace(text); t != "" {
			lines = append(lines, t)
		}
	})

	if len(lines) == 0 {
		return normalizeLines(doc.Text()), nil
	}
	return normalizeLines(strings.Join(lines, "\n")), nil
}
