package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultUDPipeURL is the public LINDAT UDPipe service.
const DefaultUDPipeURL = "https://lindat.mff.cuni.cz/services/udpipe/api/process"

var udpipeModels = map[string]string{
	"ar": "arabic",
	"bg": "bulgarian",
	"cs": "czech",
	"de": "german",
	"en": "english",
	"es": "spanish",
	"fi": "finnish",
	"fr": "french",
	"he": "hebrew",
	"it": "italian",
	"nl": "dutch",
	"pl": "polish",
	"pt": "portuguese",
	"ro": "romanian",
	"ru": "russian",
	"sv": "swedish",
	"tr": "turkish",
	"uk": "ukrainian",
	"zh": "chinese",
}

// UDPipe lemmatizes text through a UDPipe REST endpoint.
type UDPipe struct {
	url    string
	client *http.Client
}

// NewUDPipe creates a UDPipe client. An empty endpoint selects the public service.
func NewUDPipe(endpoint string, client *http.Client) *UDPipe {
	if endpoint == "" {
		endpoint = DefaultUDPipeURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &UDPipe{url: endpoint, client: client}
}

// Name returns the analyzer name
func (u *UDPipe) Name() string {
	return "udpipe"
}

// Analyze sends text to the service and parses the CoNLL-U answer
func (u *UDPipe) Analyze(ctx context.Context, text, lang string) ([]Token, error) {
	model, ok := udpipeModels[lang]
	if !ok {
		model = lang
	}

	form := url.Values{}
	form.Set("model", model)
	form.Set("tokenizer", "")
	form.Set("tagger", "")
	form.Set("data", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.url, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &Error{Analyzer: u.Name(), Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, &Error{Analyzer: u.Name(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Analyzer: u.Name(), Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Analyzer: u.Name(), Err: fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))}
	}

	var out struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &Error{Analyzer: u.Name(), Err: fmt.Errorf("decode json: %w", err)}
	}
	return parseCoNLLU(out.Result), nil
}

// parseCoNLLU extracts word lines. Comments, multiword ranges (1-2) and
// empty nodes (1.1) are skipped.
func parseCoNLLU(doc string) []Token {
	var tokens []Token
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 4 {
			continue
		}
		if strings.ContainsAny(cols[0], "-.") {
			continue
		}
		lemma := cols[2]
		if lemma == "_" || lemma == "" {
			lemma = cols[1]
		}
		pos := cols[3]
		if pos == "_" {
			pos = ""
		}
		tokens = append(tokens, Token{Surface: cols[1], Lemma: lemma, PartOfSpeech: pos})
	}
	return tokens
}
