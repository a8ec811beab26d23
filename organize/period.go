package organize

import (
	"fmt"
	"regexp"
)

// Period is a time-granularity bucket a plot is filed under.
type Period string

const (
	Hour Period = "hour"
	Day  Period = "day"
	Week Period = "week"
	Year Period = "year"
)

// Periods lists every period in the order patterns are tested.
var Periods = []Period{Hour, Day, Week, Year}

// The patterns are anchored at the start of the name only, so trailing text
// after ".png" still matches. \w is widened to Unicode letters and digits.
var patterns = map[Period]*regexp.Regexp{
	Hour: regexp.MustCompile(`^Aggregated_Effect_of_Hour_of_Day_on_[\p{L}\p{N}_]+_Counts_aggregated\.png`),
	Day:  regexp.MustCompile(`^Aggregated_Effect_of_Day_of_Week_on_[\p{L}\p{N}_]+_Counts_aggregated\.png`),
	Week: regexp.MustCompile(`^Aggregated_Effect_of_Week_on_[\p{L}\p{N}_]+_Counts_aggregated\.png`),
	Year: regexp.MustCompile(`^Aggregated_Effect_of_Year_on_[\p{L}\p{N}_]+_Counts_aggregated\.png`),
}

// ParsePeriod returns the period named s.
func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	if _, ok := patterns[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
	}
	return p, nil
}

// Matches reports whether name is a plot for period p.
func (p Period) Matches(name string) bool {
	re, ok := patterns[p]
	return ok && re.MatchString(name)
}

func (p Period) String() string {
	return string(p)
}

// MatchPolicy decides what happens when a name matches several periods.
type MatchPolicy int

const (
	// EveryMatch copies the file once per matching period.
	EveryMatch MatchPolicy = iota
	// FirstMatch copies the file only for the first matching period.
	FirstMatch
)

func (m MatchPolicy) String() string {
	switch m {
	case EveryMatch:
		return "every-match"
	case FirstMatch:
		return "first-match"
	default:
		return fmt.Sprintf("MatchPolicy(%d)", int(m))
	}
}

// Classify returns the periods whose pattern matches name, in Periods order.
// With FirstMatch at most one period is returned.
func Classify(name string, policy MatchPolicy) []Period {
	var matched []Period
	for _, p := range Periods {
		if !p.Matches(name) {
			continue
		}
		matched = append(matched, p)
		if policy == FirstMatch {
			break
		}
	}
	return matched
}
