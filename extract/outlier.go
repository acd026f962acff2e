// CLAUDE:SUMMARY Median-band outlier filter rejecting PDF-extraction artifacts within one document.
package extract

import "sort"

// Outlier band relative to the per-document median. Values this far from
// the rest of the same report are truncated or concatenated digits from
// the PDF text layer, not real prices.
const (
	outlierLow  = 0.3
	outlierHigh = 1.7
)

// FilterOutliers retains candidates whose price lies within
// [0.3×median, 1.7×median] inclusive, where the median is computed over the
// whole input batch. The batch must come from a single document: absolute
// price levels differ genuinely across documents and years, so filtering
// across documents would reject valid data. An empty batch passes through
// unchanged.
func FilterOutliers(cands []Candidate) []Candidate {
	if len(cands) == 0 {
		return cands
	}
	med := medianPrice(cands)

	out := cands[:0:0]
	for _, c := range cands {
		if c.Price >= outlierLow*med && c.Price <= outlierHigh*med {
			out = append(out, c)
		}
	}
	return out
}

// medianPrice returns the median candidate price; even-sized batches use
// the mean of the two middle values.
func medianPrice(cands []Candidate) float64 {
	prices := make([]float64, len(cands))
	for i, c := range cands {
		prices[i] = c.Price
	}
	sort.Float64s(prices)

	n := len(prices)
	if n%2 == 1 {
		return prices[n/2]
	}
	return (prices[n/2-1] + prices[n/2]) / 2
}
