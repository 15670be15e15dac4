// Package anki exports discovered one-to-one pairs as Anki flashcards,
// either as an import CSV or as a self-contained .apkg deck.
package anki

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jparta/onetoone/internal/models"
)

// Card represents a single Anki flashcard
type Card struct {
	Front     string // source-language word
	Back      string // its one-to-one translation
	Frequency int
	Tags      []string
}

// CardsFromRecords builds one card per record, tagged with the language pair
func CardsFromRecords(records []models.Record, sourceLang, targetLang string) []Card {
	tag := fmt.Sprintf("onetoone::%s-%s", sourceLang, targetLang)
	cards := make([]Card, 0, len(records))
	for _, r := range records {
		cards = append(cards, Card{
			Front:     r.Word,
			Back:      r.Translation,
			Frequency: r.Frequency,
			Tags:      []string{tag},
		})
	}
	return cards
}

// GeneratorOptions configures the CSV export
type GeneratorOptions struct {
	OutputPath     string
	IncludeHeaders bool
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		OutputPath:     "anki_import.csv",
		IncludeHeaders: true,
	}
}

// Generator creates Anki-compatible import files
type Generator struct {
	options *GeneratorOptions
	cards   []Card
}

// NewGenerator creates a new Anki generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{options: options}
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// Cards returns the collected cards
func (g *Generator) Cards() []Card {
	return g.cards
}

// GenerateCSV writes the cards as Front,Back,Frequency,Tags rows
func (g *Generator) GenerateCSV() error {
	file, err := os.Create(g.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if g.options.IncludeHeaders {
		if err := writer.Write([]string{"Front", "Back", "Frequency", "Tags"}); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for _, card := range g.cards {
		record := []string{card.Front, card.Back, strconv.Itoa(card.Frequency), strings.Join(card.Tags, " ")}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return file.Close()
}

// GenerateAPKG creates a .apkg deck from the collected cards
func (g *Generator) GenerateAPKG(outputPath, deckName string) error {
	apkg := NewAPKGGenerator(deckName)
	for _, card := range g.cards {
		apkg.AddCard(card)
	}
	return apkg.GenerateAPKG(outputPath)
}
