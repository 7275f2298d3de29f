// Package finmath holds the financial formulas shared by the content
// composer and the citation verifier. Both must use identical math so that
// a KPI the composer writes is the KPI the verifier re-derives.
package finmath

import (
	"fmt"
	"math"

	"github.com/praxal/teasergen/internal/model"
)

// CAGRResult carries a compound annual growth rate with the exact inputs
// that produced it, so references can reproduce the calculation.
type CAGRResult struct {
	StartYear  int
	EndYear    int
	StartValue float64
	EndValue   float64
	Span       int // years between start and end
	Value      float64
}

// CAGR computes ((end/start)^(1/span) - 1) * 100. The metric is not
// computable (ok=false) unless start > 0 and span > 0.
func CAGR(start, end float64, span int) (float64, bool) {
	if start <= 0 || span <= 0 {
		return 0, false
	}
	return (math.Pow(end/start, 1/float64(span)) - 1) * 100, true
}

// SeriesCAGR computes the full-span CAGR of a year→value series
func SeriesCAGR(series map[int]float64) (CAGRResult, bool) {
	years := model.Years(series)
	if len(years) < 2 {
		return CAGRResult{}, false
	}
	start, end := years[0], years[len(years)-1]
	span := end - start
	value, ok := CAGR(series[start], series[end], span)
	if !ok {
		return CAGRResult{}, false
	}
	return CAGRResult{
		StartYear:  start,
		EndYear:    end,
		StartValue: series[start],
		EndValue:   series[end],
		Span:       span,
		Value:      value,
	}, true
}

// MarginResult carries a margin with its inputs
type MarginResult struct {
	Year        int
	Numerator   float64
	Denominator float64
	Value       float64
}

// Margin computes (numerator/denominator)*100; not computable unless
// denominator > 0.
func Margin(numerator, denominator float64) (float64, bool) {
	if denominator <= 0 {
		return 0, false
	}
	return numerator / denominator * 100, true
}

// SeriesMargin computes the margin for the latest year present in both series
func SeriesMargin(numerator, denominator map[int]float64) (MarginResult, bool) {
	year, ok := LatestCommonYear(numerator, denominator)
	if !ok {
		return MarginResult{}, false
	}
	value, ok := Margin(numerator[year], denominator[year])
	if !ok {
		return MarginResult{}, false
	}
	return MarginResult{
		Year:        year,
		Numerator:   numerator[year],
		Denominator: denominator[year],
		Value:       value,
	}, true
}

// LatestCommonYear returns the most recent year present in both series
func LatestCommonYear(a, b map[int]float64) (int, bool) {
	best, found := 0, false
	for year := range a {
		if _, ok := b[year]; ok && (!found || year > best) {
			best, found = year, true
		}
	}
	return best, found
}

// Pct formats a percentage figure rounded to one decimal place, the
// headline rounding used everywhere a computed value is displayed or
// compared against claim text.
func Pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
