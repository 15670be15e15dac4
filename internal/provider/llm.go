package provider

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jparta/onetoone/internal/models"
)

// llmPrompt asks a chat model to behave like a bilingual corpus lookup.
// Frequencies are relative so that the detector's ratio test still applies.
const llmPrompt = `You are a bilingual concordance. For the %[2]s word %[1]q list its %[3]s translations
ordered from most to least common, with an estimated relative corpus frequency (integer, 0-1000)
and a dictionary part-of-speech tag such as "n.", "v.", "adj.", "adv." or "nf./nm." when you know it.
Also give up to %[4]d natural example sentences in %[2]s that use the word, each with its %[3]s translation.
Answer with JSON only, in exactly this shape:
{"translations":[{"term":"...","frequency":0,"pos":"..."}],"examples":[{"source":"...","target":"..."}]}`

const llmExampleCount = 10

type llmAnswer struct {
	Translations []struct {
		Term      string `json:"term"`
		Frequency int    `json:"frequency"`
		POS       string `json:"pos"`
	} `json:"translations"`
	Examples []struct {
		Source string `json:"source"`
		Target string `json:"target"`
	} `json:"examples"`
}

func buildPrompt(word, sourceLang, targetLang string) string {
	return fmt.Sprintf(llmPrompt, word, languageName(sourceLang), languageName(targetLang), llmExampleCount)
}

// parseAnswer converts the model's JSON reply into a Result. Code fences
// around the JSON are tolerated.
func parseAnswer(word, content string) (*Result, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var answer llmAnswer
	if err := json.Unmarshal([]byte(content), &answer); err != nil {
		return nil, fmt.Errorf("decode model answer: %w", err)
	}

	translations := make([]models.Candidate, 0, len(answer.Translations))
	for _, t := range answer.Translations {
		term := strings.TrimSpace(t.Term)
		if term == "" {
			continue
		}
		translations = append(translations, models.Candidate{
			SourceWord:   word,
			Translation:  term,
			Frequency:    t.Frequency,
			PartOfSpeech: strings.TrimSpace(t.POS),
		})
	}

	sentences := make([]models.Sentence, 0, len(answer.Examples))
	for _, e := range answer.Examples {
		if strings.TrimSpace(e.Source) == "" {
			continue
		}
		sentences = append(sentences, models.Sentence{Text: e.Source, Translation: e.Target})
	}

	return &Result{
		Translations: translations,
		Examples:     models.NewSliceStream(sentences),
	}, nil
}

var languageNames = map[string]string{
	"ar": "Arabic",
	"bg": "Bulgarian",
	"de": "German",
	"en": "English",
	"es": "Spanish",
	"fi": "Finnish",
	"fr": "French",
	"he": "Hebrew",
	"it": "Italian",
	"ja": "Japanese",
	"nl": "Dutch",
	"pl": "Polish",
	"pt": "Portuguese",
	"ro": "Romanian",
	"ru": "Russian",
	"sv": "Swedish",
	"tr": "Turkish",
	"uk": "Ukrainian",
	"zh": "Chinese",
}

func languageName(code string) string {
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	return code
}
