package organize

import (
	"errors"
	"regexp"
	"slices"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		file string
		want []Period
	}{
		{name: "hour", file: "Aggregated_Effect_of_Hour_of_Day_on_species1_Counts_aggregated.png", want: []Period{Hour}},
		{name: "day", file: "Aggregated_Effect_of_Day_of_Week_on_red_deer_Counts_aggregated.png", want: []Period{Day}},
		{name: "week", file: "Aggregated_Effect_of_Week_on_boar_Counts_aggregated.png", want: []Period{Week}},
		{name: "year", file: "Aggregated_Effect_of_Year_on_fox_2_Counts_aggregated.png", want: []Period{Year}},
		{name: "unicode word characters", file: "Aggregated_Effect_of_Year_on_chevreuil_été_Counts_aggregated.png", want: []Period{Year}},
		{name: "trailing text after extension", file: "Aggregated_Effect_of_Week_on_boar_Counts_aggregated.png.bak", want: []Period{Week}},
		{name: "prefix required", file: "old_Aggregated_Effect_of_Week_on_boar_Counts_aggregated.png", want: nil},
		{name: "wrong extension", file: "Aggregated_Effect_of_Week_on_boar_Counts_aggregated.jpg", want: nil},
		{name: "empty species", file: "Aggregated_Effect_of_Week_on__Counts_aggregated.png", want: nil},
		{name: "hyphen is not a word character", file: "Aggregated_Effect_of_Week_on_red-deer_Counts_aggregated.png", want: nil},
		{name: "unrelated file", file: "notes.txt", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, policy := range []MatchPolicy{EveryMatch, FirstMatch} {
				got := Classify(tt.file, policy)
				if !slices.Equal(got, tt.want) {
					t.Errorf("Classify(%q, %v) = %v, want %v", tt.file, policy, got, tt.want)
				}
			}
		})
	}
}

func TestClassifyPolicy(t *testing.T) {
	// no real name hits two patterns, so swap in overlapping ones
	old := patterns
	defer func() { patterns = old }()
	patterns = map[Period]*regexp.Regexp{
		Hour: regexp.MustCompile(`^plot`),
		Day:  regexp.MustCompile(`^nope`),
		Week: regexp.MustCompile(`^plot_`),
		Year: regexp.MustCompile(`^pl`),
	}

	every := Classify("plot_1.png", EveryMatch)
	if !slices.Equal(every, []Period{Hour, Week, Year}) {
		t.Errorf("EveryMatch = %v", every)
	}
	first := Classify("plot_1.png", FirstMatch)
	if !slices.Equal(first, []Period{Hour}) {
		t.Errorf("FirstMatch = %v", first)
	}
}

func TestParsePeriod(t *testing.T) {
	for _, p := range Periods {
		got, err := ParsePeriod(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePeriod(%q) = %v, %v", p, got, err)
		}
	}
	if _, err := ParsePeriod("month"); !errors.Is(err, ErrUnknownPeriod) {
		t.Errorf("expected ErrUnknownPeriod, got %v", err)
	}
}
