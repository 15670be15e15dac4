package explorer

import (
	"reflect"
	"testing"
)

func TestProgressRatios(t *testing.T) {
	tests := []struct {
		name        string
		p           Progress
		translation float64
		translOK    bool
		oneToOne    float64
		oneOK       bool
	}{
		{name: "first report", p: Progress{}, translOK: false, oneOK: false},
		{name: "nothing translated yet", p: Progress{Scraped: 4}, translation: 0, translOK: true, oneOK: false},
		{name: "normal", p: Progress{Scraped: 8, Translations: 4, OneToOne: 1}, translation: 0.5, translOK: true, oneToOne: 0.25, oneOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := tt.p.TranslationRatio()
			if ok != tt.translOK || r != tt.translation {
				t.Errorf("TranslationRatio() = %v, %v; want %v, %v", r, ok, tt.translation, tt.translOK)
			}
			r, ok = tt.p.OneToOneRatio()
			if ok != tt.oneOK || r != tt.oneToOne {
				t.Errorf("OneToOneRatio() = %v, %v; want %v, %v", r, ok, tt.oneToOne, tt.oneOK)
			}
		})
	}
}

func TestProgressLines(t *testing.T) {
	p := Progress{Iteration: 25, Pending: 310, Scraped: 337, Translations: 26, OneToOne: 3}
	want := []string{
		"Iteration 25",
		"Words to translate: 310",
		"Scraped words: 337",
		"Translations: 26",
		"Proportion of translations to scraped words: 7.72%",
		"One-to-one translations: 3",
		"Proportion of 1-to-1 translations: 11.5%",
	}
	if got := p.Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() =\n%q\nwant\n%q", got, want)
	}
}

func TestProgressLinesUndefined(t *testing.T) {
	lines := Progress{}.Lines()
	if lines[4] != "Proportion of translations to scraped words: n/a" {
		t.Errorf("got %q", lines[4])
	}
	if lines[6] != "Proportion of 1-to-1 translations: n/a" {
		t.Errorf("got %q", lines[6])
	}
}
