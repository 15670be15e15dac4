package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jparta/onetoone/internal/analyzer"
	"github.com/jparta/onetoone/internal/anki"
	"github.com/jparta/onetoone/internal/archive"
	"github.com/jparta/onetoone/internal/batch"
	"github.com/jparta/onetoone/internal/checkpoint"
	"github.com/jparta/onetoone/internal/cli"
	"github.com/jparta/onetoone/internal/explorer"
	"github.com/jparta/onetoone/internal/logging"
	"github.com/jparta/onetoone/internal/models"
	"github.com/jparta/onetoone/internal/provider"
	"github.com/jparta/onetoone/internal/store"
)

// breakerCooldown is how long an open breaker rejects queries.
const breakerCooldown = time.Minute

// Processor handles one invocation of the explorer
type Processor struct {
	flags   *cli.Flags
	console io.Writer

	// overridable in tests
	newProvider func(ctx context.Context, config *provider.Config) (provider.Provider, error)
	newAnalyzer func(config analyzer.Config, lang string) (analyzer.Analyzer, error)
}

// NewProcessor creates a new processor
func NewProcessor(flags *cli.Flags) *Processor {
	return &Processor{
		flags:       flags,
		console:     os.Stdout,
		newProvider: provider.NewProvider,
		newAnalyzer: analyzer.NewAnalyzer,
	}
}

// ProviderConfig returns the provider settings for the named backend
func (p *Processor) ProviderConfig(name string) *provider.Config {
	config := provider.DefaultConfig()
	config.Provider = name
	config.Timeout = p.flags.Timeout
	config.OpenAIKey = cli.GetOpenAIKey()
	config.OpenAIModel = p.flags.OpenAIModel
	config.GeminiKey = cli.GetGeminiKey()
	config.GeminiModel = p.flags.GeminiModel
	return config
}

// ListModels prints the OpenAI chat models available to the configured key
func (p *Processor) ListModels(ctx context.Context) error {
	return provider.NewLister(p.ProviderConfig("openai")).ListModels(ctx, p.console)
}

// BuildProvider creates the primary provider with its retry and breaker
// wrappers, falling back to a second provider when one is configured.
func (p *Processor) BuildProvider(ctx context.Context, logger *slog.Logger) (provider.Provider, error) {
	primary, err := p.wrappedProvider(ctx, p.flags.Provider, logger)
	if err != nil {
		return nil, err
	}
	if p.flags.FallbackProvider == "" || p.flags.FallbackProvider == p.flags.Provider {
		return primary, nil
	}
	fallback, err := p.wrappedProvider(ctx, p.flags.FallbackProvider, logger)
	if err != nil {
		return nil, fmt.Errorf("fallback provider: %w", err)
	}
	return provider.NewProviderWithFallback(primary, fallback, logger), nil
}

func (p *Processor) wrappedProvider(ctx context.Context, name string, logger *slog.Logger) (provider.Provider, error) {
	config := p.ProviderConfig(name)
	config.Logger = logger

	prov, err := p.newProvider(ctx, config)
	if err != nil {
		return nil, err
	}
	if p.flags.Retries > 0 {
		prov = provider.WithRetry(prov, uint64(p.flags.Retries), logger)
	}
	if p.flags.Breaker {
		prov = provider.WithBreaker(prov, 0, breakerCooldown, logger)
	}
	return prov, nil
}

// Run explores from startWord and exports the result
func (p *Processor) Run(ctx context.Context, startWord string) error {
	startWord = strings.TrimSpace(startWord)
	if startWord == "" {
		return errors.New("a start word is required")
	}

	if p.flags.Archive && !p.flags.Resume {
		archived, err := archive.ArchiveExisting(p.flags.Output, p.flags.LogFile)
		if err != nil {
			return fmt.Errorf("failed to archive previous run: %w", err)
		}
		for _, path := range archived {
			fmt.Fprintf(p.console, "Archived to: %s\n", path)
		}
	}

	logConfig := logging.DefaultConfig()
	logConfig.Level = p.flags.LogLevel
	logConfig.File = p.flags.LogFile
	logConfig.Console = p.console
	logger, closer := logging.New(logConfig)
	defer closer.Close()

	prov, err := p.BuildProvider(ctx, logger)
	if err != nil {
		return err
	}
	an, err := p.newAnalyzer(analyzer.Config{
		Name:    p.flags.Analyzer,
		URL:     p.flags.AnalyzerURL,
		Timeout: p.flags.Timeout,
	}, p.flags.SourceLang)
	if err != nil {
		return err
	}
	logger.Debug(fmt.Sprintf("Using provider %s and analyzer %s", prov.Name(), an.Name()))

	state, err := p.initialState()
	if err != nil {
		return err
	}

	opts := []explorer.Option{
		explorer.WithState(state),
		explorer.WithLogger(logger),
		explorer.WithCheckpointer(checkpoint.NewWriter(p.flags.Output)),
	}

	if p.flags.SeedsFile != "" {
		seeds, err := batch.ReadWordList(p.flags.SeedsFile)
		if err != nil {
			return err
		}
		logger.Info(fmt.Sprintf("Loaded %d seed words from %s", len(seeds), p.flags.SeedsFile))
		opts = append(opts, explorer.WithSeeds(seeds))
	}

	var known map[string]string
	if p.flags.DBPath != "" {
		db, err := store.Open(p.flags.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		known, err = store.KnownPairs(ctx, db, state.SourceLang, state.TargetLang)
		if err != nil {
			return err
		}
		run, err := store.NewRun(ctx, db, startWord, state.SourceLang, state.TargetLang)
		if err != nil {
			return err
		}
		logger.Info(fmt.Sprintf("Recording run %s in %s (%d pairs already known)", run.RunID(), p.flags.DBPath, len(known)))
		opts = append(opts, explorer.WithCheckpointer(run))
	}

	exp := explorer.New(p.explorerConfig(state), prov, an, opts...)
	summary, runErr := exp.Run(ctx, startWord)

	logger.Info(fmt.Sprintf("Finished after %d iterations (%s): %d translations, %d one-to-one pairs",
		summary.Iterations, summary.Phase, summary.Progress.Translations, summary.Progress.OneToOne),
		logging.Prefix("\n"))
	if known != nil {
		logger.Info(fmt.Sprintf("New pairs not seen in earlier runs: %d", countNew(state.OneToOne.Records(), known)))
	}

	if err := p.export(state); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

// initialState loads the checkpoint when resuming and starts empty otherwise
func (p *Processor) initialState() (*models.State, error) {
	if !p.flags.Resume {
		return models.NewState(p.flags.SourceLang, p.flags.TargetLang), nil
	}
	state, err := checkpoint.Load(p.flags.Output)
	if err != nil {
		return nil, fmt.Errorf("cannot resume: %w", err)
	}
	if state.SourceLang != p.flags.SourceLang || state.TargetLang != p.flags.TargetLang {
		return nil, fmt.Errorf("cannot resume: %s is for %s-%s, not %s-%s", p.flags.Output,
			state.SourceLang, state.TargetLang, p.flags.SourceLang, p.flags.TargetLang)
	}
	return state, nil
}

func (p *Processor) explorerConfig(state *models.State) explorer.Config {
	return explorer.Config{
		SourceLang:     state.SourceLang,
		TargetLang:     state.TargetLang,
		Iterations:     p.flags.Iterations,
		MaxSentences:   p.flags.MaxSentences,
		ReportInterval: p.flags.ReportInterval,
		SaveInterval:   p.flags.SaveInterval,
		Delay:          p.flags.Delay,
	}
}

// export writes the requested Anki files
func (p *Processor) export(state *models.State) error {
	if p.flags.AnkiCSV == "" && p.flags.AnkiAPKG == "" {
		return nil
	}

	gen := anki.NewGenerator(&anki.GeneratorOptions{OutputPath: p.flags.AnkiCSV, IncludeHeaders: true})
	for _, card := range anki.CardsFromRecords(state.OneToOne.Records(), state.SourceLang, state.TargetLang) {
		gen.AddCard(card)
	}

	if p.flags.AnkiCSV != "" {
		if err := gen.GenerateCSV(); err != nil {
			return err
		}
		fmt.Fprintf(p.console, "Anki CSV created: %s\n", p.flags.AnkiCSV)
	}
	if p.flags.AnkiAPKG != "" {
		if err := gen.GenerateAPKG(p.flags.AnkiAPKG, p.flags.DeckName); err != nil {
			return err
		}
		fmt.Fprintf(p.console, "Anki package created: %s\n", p.flags.AnkiAPKG)
	}
	return nil
}

// countNew counts records whose pair is not in known
func countNew(records []models.Record, known map[string]string) int {
	n := 0
	for _, r := range records {
		if known[r.Word] != r.Translation {
			n++
		}
	}
	return n
}
