// Package contradiction implements the rule-based engine that detects
// conflicting assessments between the findings of independent specialist
// agents. Seven heuristic rules cover the common disagreement patterns in
// program analysis: performance-index direction, risk severity, schedule
// impact, cost estimates, root cause, mitigation strategy, and confidence.
package contradiction

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// "45 days", "6 weeks", "3 months"
	durationPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(day|days|week|weeks|month|months)`)

	// "$557M", "$485,000,000", "$1.2B"
	dollarPattern = regexp.MustCompile(`(?i)\$\s*([\d,]+(?:\.\d+)?)\s*(b|m|k|billion|million|thousand)?`)

	percentPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
)

// ExtractDollars returns every dollar amount found in text, normalized to
// raw USD. Magnitude suffixes B/M/K (or billion/million/thousand) are
// applied case-insensitively.
func ExtractDollars(text string) []float64 {
	var values []float64
	for _, m := range dollarPattern.FindAllStringSubmatch(text, -1) {
		raw := strings.ReplaceAll(m[1], ",", "")
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		switch strings.ToLower(m[2]) {
		case "b", "billion":
			value *= 1e9
		case "m", "million":
			value *= 1e6
		case "k", "thousand":
			value *= 1e3
		}
		values = append(values, value)
	}
	return values
}

// MaxDollar returns the largest dollar amount in text. By convention the
// maximum normalized value is "the" cost figure of a finding.
func MaxDollar(text string) (float64, bool) {
	return maxOf(ExtractDollars(text))
}

// ExtractDurationDays returns every duration found in text, normalized to
// days (week = 7, month = 30).
func ExtractDurationDays(text string) []float64 {
	var values []float64
	for _, m := range durationPattern.FindAllStringSubmatch(text, -1) {
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		unit := strings.ToLower(m[2])
		switch {
		case strings.HasPrefix(unit, "week"):
			value *= 7
		case strings.HasPrefix(unit, "month"):
			value *= 30
		}
		values = append(values, value)
	}
	return values
}

// MaxDurationDays returns the largest duration in text, in days.
func MaxDurationDays(text string) (float64, bool) {
	return maxOf(ExtractDurationDays(text))
}

// ExtractPercents returns every percentage found in text, as written
// (no division by 100).
func ExtractPercents(text string) []float64 {
	var values []float64
	for _, m := range percentPattern.FindAllStringSubmatch(text, -1) {
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		values = append(values, value)
	}
	return values
}

func maxOf(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max, true
}

// Severity label tiers, scanned highest first. Matching is substring
// containment on the case-folded text.
var severityTiers = []struct {
	label    string
	keywords []string
}{
	{"critical", []string{"critical", "catastrophic", "showstopper", "unacceptable", "severe"}},
	{"high", []string{"high", "significant", "major", "serious", "substantial"}},
	{"medium", []string{"medium", "moderate", "manageable", "notable"}},
	{"low", []string{"low", "minor", "minimal", "negligible", "marginal"}},
}

var severityRank = map[string]int{"low": 0, "medium": 1, "high": 2, "critical": 3}

// SeverityLabel returns the highest severity tier whose keywords appear in
// text, or false if none do.
func SeverityLabel(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, tier := range severityTiers {
		if hasAnyKeyword(lower, tier.keywords) {
			return tier.label, true
		}
	}
	return "", false
}

func severityGap(a, b string) int {
	gap := severityRank[a] - severityRank[b]
	if gap < 0 {
		gap = -gap
	}
	return gap
}

var improvingKeywords = []string{
	"improving", "recovery", "recovering", "positive", "upward",
	"increasing", "better", "gained", "favorable", "trending up",
	"on track", "ahead",
}

var worseningKeywords = []string{
	"declining", "worsening", "negative", "downward", "decreasing",
	"worse", "degrading", "unfavorable", "trending down", "behind",
	"slipping", "eroding", "deteriorating",
}

// Improving reports whether text contains improving-direction language.
// A text may match both Improving and Worsening; the checks are
// independent membership tests, not mutually exclusive.
func Improving(text string) bool {
	return hasAnyKeyword(strings.ToLower(text), improvingKeywords)
}

// Worsening reports whether text contains worsening-direction language.
func Worsening(text string) bool {
	return hasAnyKeyword(strings.ToLower(text), worseningKeywords)
}

func hasAnyKeyword(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Stop words excluded from topical-overlap counts. The confidence rule
// uses a slightly wider list than the severity rule.
var (
	overlapStopWords = []string{"the", "a", "an", "is", "are", "of", "in", "to", "and"}

	confidenceStopWords = []string{
		"the", "a", "an", "is", "are", "of", "in", "to", "and",
		"for", "that", "this", "with",
	}
)

// sharedWordCount tokenizes both texts on whitespace, case-folds, and
// returns the size of the word-set intersection minus the stop words. A
// coarse proxy for "discussing the same subject".
func sharedWordCount(a, b string, stopWords []string) int {
	wordsA := wordSet(a)
	wordsB := wordSet(b)
	stop := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		stop[w] = struct{}{}
	}

	count := 0
	for w := range wordsA {
		if _, trivial := stop[w]; trivial {
			continue
		}
		if _, ok := wordsB[w]; ok {
			count++
		}
	}
	return count
}

func wordSet(text string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		words[w] = struct{}{}
	}
	return words
}
