// CLAUDE:SUMMARY Resolves a reporting period (year+month) from a document filename.
package extract

import (
	"regexp"
	"strconv"
	"time"
)

// periodRe matches a 4-digit year followed by a 2-digit month, optionally
// separated by a single non-digit ("relatorio_202303", "2023-03-report").
var periodRe = regexp.MustCompile(`(\d{4})[^\d]?(\d{2})`)

// ResolvePeriod infers the reporting period from a document's base filename
// (without extension). It returns the first plausible year+month pair found,
// normalized to day 1 UTC. The second return value is false when the name
// carries no date. That is a valid absence, not an error; callers persist
// such rows with a NULL period.
func ResolvePeriod(name string) (time.Time, bool) {
	for _, m := range periodRe.FindAllStringSubmatch(name, -1) {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			continue
		}
		return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}
