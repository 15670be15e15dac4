package models

import "encoding/json"

// Inflection is an inflected form of a translation together with how
// often the provider saw it aligned with the query word.
type Inflection struct {
	Translation string `json:"translation"`
	Frequency   int    `json:"frequency"`
}

// Candidate is one entry of a provider's ranked translation list.
// PartOfSpeech is empty when the provider did not tag the entry.
type Candidate struct {
	SourceWord     string
	Translation    string
	Frequency      int
	PartOfSpeech   string
	InflectedForms []Inflection
}

type candidateJSON struct {
	SourceWord     string       `json:"source_word"`
	Translation    string       `json:"translation"`
	Frequency      int          `json:"frequency"`
	PartOfSpeech   *string      `json:"part_of_speech"`
	InflectedForms []Inflection `json:"inflected_forms"`
}

// MarshalJSON writes an absent part of speech as null.
func (c Candidate) MarshalJSON() ([]byte, error) {
	out := candidateJSON{
		SourceWord:     c.SourceWord,
		Translation:    c.Translation,
		Frequency:      c.Frequency,
		InflectedForms: c.InflectedForms,
	}
	if c.PartOfSpeech != "" {
		pos := c.PartOfSpeech
		out.PartOfSpeech = &pos
	}
	if out.InflectedForms == nil {
		out.InflectedForms = []Inflection{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts both null and string parts of speech.
func (c *Candidate) UnmarshalJSON(data []byte) error {
	var in candidateJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	c.SourceWord = in.SourceWord
	c.Translation = in.Translation
	c.Frequency = in.Frequency
	c.PartOfSpeech = ""
	if in.PartOfSpeech != nil {
		c.PartOfSpeech = *in.PartOfSpeech
	}
	c.InflectedForms = in.InflectedForms
	return nil
}

// Record is a discovered one-to-one pair: Word translates to Translation
// and Translation translates back to Word. Frequency is the alignment
// frequency of the top back-translation.
type Record struct {
	Word        string `json:"word"`
	Frequency   int    `json:"frequency"`
	Translation string `json:"translation"`
}
