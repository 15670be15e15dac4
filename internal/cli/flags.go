package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	SeedsFile  string
	Resume     bool
	Archive    bool
	ListModels bool

	// Run flags
	SourceLang     string
	TargetLang     string
	Iterations     int
	MaxSentences   int
	ReportInterval int
	SaveInterval   int
	Delay          time.Duration

	// Output flags
	Output   string
	DBPath   string
	AnkiCSV  string
	AnkiAPKG string
	DeckName string

	// Provider flags
	Provider         string
	FallbackProvider string
	Retries          int
	Breaker          bool
	Timeout          time.Duration
	OpenAIModel      string
	GeminiModel      string

	// Analyzer flags
	Analyzer    string
	AnalyzerURL string

	// Logging flags
	LogFile  string
	LogLevel string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		SourceLang:     "ru",
		TargetLang:     "en",
		Iterations:     1000,
		MaxSentences:   10,
		ReportInterval: 25,
		SaveInterval:   100,
		Delay:          time.Second,
		Output:         "translations.json",
		DeckName:       "One-to-one translations",
		Provider:       "reverso",
		Timeout:        30 * time.Second,
		OpenAIModel:    "gpt-4o-mini",
		GeminiModel:    "gemini-2.0-flash",
		Analyzer:       "udpipe",
		LogFile:        "progress.log",
		LogLevel:       "info",
	}
}
