package explorer

import "fmt"

// Progress is a snapshot of the run counters.
type Progress struct {
	Iteration    int
	Pending      int // words waiting in the frontier
	Scraped      int // distinct words ever queued
	Translations int // words with a table entry
	OneToOne     int
}

// TranslationRatio is Translations/Scraped. ok is false when nothing has
// been scraped yet.
func (p Progress) TranslationRatio() (ratio float64, ok bool) {
	if p.Scraped == 0 {
		return 0, false
	}
	return float64(p.Translations) / float64(p.Scraped), true
}

// OneToOneRatio is OneToOne/Translations. ok is false before the first
// translation.
func (p Progress) OneToOneRatio() (ratio float64, ok bool) {
	if p.Translations == 0 {
		return 0, false
	}
	return float64(p.OneToOne) / float64(p.Translations), true
}

// Lines renders the report, one line per counter.
func (p Progress) Lines() []string {
	return []string{
		fmt.Sprintf("Iteration %d", p.Iteration),
		fmt.Sprintf("Words to translate: %d", p.Pending),
		fmt.Sprintf("Scraped words: %d", p.Scraped),
		fmt.Sprintf("Translations: %d", p.Translations),
		"Proportion of translations to scraped words: " + percent(p.TranslationRatio()),
		fmt.Sprintf("One-to-one translations: %d", p.OneToOne),
		"Proportion of 1-to-1 translations: " + percent(p.OneToOneRatio()),
	}
}

func percent(ratio float64, ok bool) string {
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.3g%%", ratio*100)
}
