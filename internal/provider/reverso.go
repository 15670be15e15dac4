package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jparta/onetoone/internal/models"
)

// DefaultReversoURL is the Reverso Context query endpoint.
const DefaultReversoURL = "https://context.reverso.net/bst-query-service"

const reversoUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// ReversoProvider queries the Reverso Context corpus service.
type ReversoProvider struct {
	url        string
	httpClient *http.Client
	log        *slog.Logger
}

// NewReversoProvider creates a Reverso client from configuration
func NewReversoProvider(config *Config) *ReversoProvider {
	url := config.ReversoURL
	if url == "" {
		url = DefaultReversoURL
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ReversoProvider{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("provider", "reverso"),
	}
}

// Name returns the provider name
func (p *ReversoProvider) Name() string {
	return "reverso"
}

type reversoRequest struct {
	SourceText string `json:"source_text"`
	TargetText string `json:"target_text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
	Page       int    `json:"npage"`
	Mode       int    `json:"mode"`
}

type reversoResponse struct {
	List []struct {
		SourceText string `json:"s_text"`
		TargetText string `json:"t_text"`
	} `json:"list"`
	Pages   int `json:"npages"`
	Entries []struct {
		Term           string  `json:"term"`
		AlignFreq      int     `json:"alignFreq"`
		POS            *string `json:"pos"`
		InflectedForms []struct {
			Term      string `json:"term"`
			AlignFreq int    `json:"alignFreq"`
		} `json:"inflectedForms"`
	} `json:"dictionary_entry_list"`
}

// Translate fetches the first page for word. Further example pages are
// fetched on demand by the returned stream.
func (p *ReversoProvider) Translate(ctx context.Context, word, sourceLang, targetLang string) (*Result, error) {
	resp, err := p.query(ctx, word, sourceLang, targetLang, 1)
	if err != nil {
		return nil, err
	}

	translations := make([]models.Candidate, 0, len(resp.Entries))
	for _, e := range resp.Entries {
		c := models.Candidate{
			SourceWord:  word,
			Translation: e.Term,
			Frequency:   e.AlignFreq,
		}
		if e.POS != nil {
			c.PartOfSpeech = *e.POS
		}
		for _, f := range e.InflectedForms {
			c.InflectedForms = append(c.InflectedForms, models.Inflection{Translation: f.Term, Frequency: f.AlignFreq})
		}
		translations = append(translations, c)
	}

	p.log.DebugContext(ctx, "reverso response",
		slog.String("word", word),
		slog.Int("translations", len(translations)),
		slog.Int("pages", resp.Pages),
	)

	return &Result{
		Translations: translations,
		Examples: &reversoStream{
			provider:   p,
			word:       word,
			sourceLang: sourceLang,
			targetLang: targetLang,
			page:       1,
			pages:      resp.Pages,
			buffer:     examplesFrom(resp),
		},
	}, nil
}

func (p *ReversoProvider) query(ctx context.Context, word, sourceLang, targetLang string, page int) (*reversoResponse, error) {
	body, err := json.Marshal(reversoRequest{
		SourceText: word,
		SourceLang: sourceLang,
		TargetLang: targetLang,
		Page:       page,
	})
	if err != nil {
		return nil, &Error{Provider: p.Name(), Word: word, Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Provider: p.Name(), Word: word, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("User-Agent", reversoUserAgent)
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Provider: p.Name(), Word: word, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Provider: p.Name(), Word: word, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status")}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Provider: p.Name(), Word: word, Err: fmt.Errorf("read body: %w", err)}
	}

	var out reversoResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &Error{Provider: p.Name(), Word: word, Err: fmt.Errorf("decode json: %w", err)}
	}
	return &out, nil
}

func examplesFrom(resp *reversoResponse) []models.Sentence {
	sentences := make([]models.Sentence, 0, len(resp.List))
	for _, item := range resp.List {
		sentences = append(sentences, models.Sentence{
			Text:        stripMarkup(item.SourceText),
			Translation: stripMarkup(item.TargetText),
		})
	}
	return sentences
}

// stripMarkup removes the <em> highlighting Reverso puts around the
// query word and decodes HTML entities.
func stripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}

// reversoStream pages through the examples of one query.
type reversoStream struct {
	provider   *ReversoProvider
	word       string
	sourceLang string
	targetLang string
	page       int
	pages      int
	buffer     []models.Sentence
}

func (s *reversoStream) Next(ctx context.Context) (models.Sentence, error) {
	for len(s.buffer) == 0 {
		if s.page >= s.pages {
			return models.Sentence{}, io.EOF
		}
		s.page++
		resp, err := s.provider.query(ctx, s.word, s.sourceLang, s.targetLang, s.page)
		if err != nil {
			return models.Sentence{}, err
		}
		s.buffer = examplesFrom(resp)
	}

	sentence := s.buffer[0]
	s.buffer = s.buffer[1:]
	return sentence, nil
}
