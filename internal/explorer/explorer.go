package explorer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/jparta/onetoone/internal/analyzer"
	"github.com/jparta/onetoone/internal/detector"
	"github.com/jparta/onetoone/internal/frontier"
	"github.com/jparta/onetoone/internal/logging"
	"github.com/jparta/onetoone/internal/models"
	"github.com/jparta/onetoone/internal/pos"
	"github.com/jparta/onetoone/internal/provider"
	"github.com/jparta/onetoone/internal/vocab"
)

// Config holds the run parameters
type Config struct {
	SourceLang     string
	TargetLang     string
	Iterations     int
	MaxSentences   int
	ReportInterval int // <= 0 disables reports
	SaveInterval   int // <= 0 disables periodic checkpoints
	Delay          time.Duration
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		SourceLang:     "ru",
		TargetLang:     "en",
		Iterations:     1000,
		MaxSentences:   vocab.DefaultMaxSentences,
		ReportInterval: 25,
		SaveInterval:   100,
		Delay:          time.Second,
	}
}

// Phase is the lifecycle state of an Explorer.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseIterating
	PhaseDone   // all iterations ran
	PhaseFailed // stopped early on an error or cancellation
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseIterating:
		return "iterating"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Checkpointer persists a snapshot of the run state.
type Checkpointer interface {
	Save(ctx context.Context, state *models.State) error
}

// Summary describes a finished run
type Summary struct {
	Phase      Phase
	Iterations int // iterations fully completed
	Progress   Progress
}

// Explorer owns the state of one discovery run.
type Explorer struct {
	cfg           Config
	provider      provider.Provider
	detector      *detector.Detector
	extractor     *vocab.Extractor
	frontier      *frontier.Frontier
	state         *models.State
	checkpointers []Checkpointer
	seeds         []string
	equiv         *pos.Equivalence
	log           *slog.Logger
	sleep         func(ctx context.Context, d time.Duration) error
	phase         Phase
}

// Option configures an Explorer
type Option func(*Explorer)

// WithState continues from an existing state, typically loaded from a
// checkpoint. Every word already in its table counts as processed.
func WithState(state *models.State) Option {
	return func(e *Explorer) { e.state = state }
}

// WithCheckpointer adds a sink for periodic and final snapshots.
func WithCheckpointer(c Checkpointer) Option {
	return func(e *Explorer) { e.checkpointers = append(e.checkpointers, c) }
}

// WithSeeds queues extra words behind the start word.
func WithSeeds(words []string) Option {
	return func(e *Explorer) { e.seeds = append(e.seeds, words...) }
}

// WithEquivalence replaces the part-of-speech classes used for matching.
func WithEquivalence(eq *pos.Equivalence) Option {
	return func(e *Explorer) { e.equiv = eq }
}

// WithLogger sets the progress logger
func WithLogger(l *slog.Logger) Option {
	return func(e *Explorer) { e.log = l }
}

// WithSleep replaces the inter-iteration wait, mainly for tests.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(e *Explorer) { e.sleep = fn }
}

// New creates an explorer
func New(cfg Config, p provider.Provider, a analyzer.Analyzer, opts ...Option) *Explorer {
	e := &Explorer{
		cfg:       cfg,
		provider:  p,
		extractor: vocab.NewExtractor(a),
		frontier:  frontier.New(),
		equiv:     pos.Default,
		log:       slog.Default(),
		sleep:     sleepContext,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.state == nil {
		e.state = models.NewState(cfg.SourceLang, cfg.TargetLang)
	}
	e.detector = detector.New(p, detector.WithEquivalence(e.equiv), detector.WithObserver(e.observe))
	return e
}

// State returns the state the explorer mutates.
func (e *Explorer) State() *models.State {
	return e.state
}

// Phase returns the current lifecycle phase.
func (e *Explorer) Phase() Phase {
	return e.phase
}

// Progress returns the current counters.
func (e *Explorer) Progress(iteration int) Progress {
	return Progress{
		Iteration:    iteration,
		Pending:      e.frontier.Len(),
		Scraped:      e.frontier.SeenCount(),
		Translations: e.state.Translations.Len(),
		OneToOne:     e.state.OneToOne.Len(),
	}
}

// Run explores from startWord for the configured number of iterations. A
// final checkpoint is written however the run ends. Any error is terminal.
func (e *Explorer) Run(ctx context.Context, startWord string) (Summary, error) {
	if e.phase != PhaseInit {
		return Summary{}, errors.New("explorer has already run")
	}
	e.phase = PhaseIterating

	current := norm.NFC.String(strings.TrimSpace(startWord))
	for _, w := range e.state.Translations.Words() {
		e.frontier.MarkSeen(w)
	}
	e.frontier.MarkSeen(current)
	if len(e.seeds) > 0 {
		seeds := make([]string, 0, len(e.seeds))
		for _, s := range e.seeds {
			if s = norm.NFC.String(strings.TrimSpace(s)); s != "" {
				seeds = append(seeds, s)
			}
		}
		e.frontier.EnqueueNew(seeds)
	}

	e.log.InfoContext(ctx, "Starting word: "+current, logging.Postfix("\n"))

	completed := 0
	var runErr error
	for i := 0; i < e.cfg.Iterations; i++ {
		next, err := e.step(ctx, i, current)
		if err != nil {
			runErr = err
			break
		}
		completed++
		current = next

		if e.cfg.ReportInterval > 0 && i%e.cfg.ReportInterval == 0 {
			e.report(ctx, i)
		}
		if e.cfg.SaveInterval > 0 && i%e.cfg.SaveInterval == 0 {
			if err := e.checkpoint(ctx); err != nil {
				runErr = err
				break
			}
		}
		if i+1 < e.cfg.Iterations && e.cfg.Delay > 0 {
			if err := e.sleep(ctx, e.cfg.Delay); err != nil {
				runErr = err
				break
			}
		}
	}

	// the final snapshot must be written even when ctx was cancelled
	if err := e.checkpoint(context.WithoutCancel(ctx)); err != nil {
		runErr = errors.Join(runErr, err)
	}

	summary := Summary{Iterations: completed, Progress: e.Progress(completed)}
	if runErr != nil {
		e.phase = PhaseFailed
		summary.Phase = e.phase
		return summary, runErr
	}
	e.phase = PhaseDone
	summary.Phase = e.phase
	return summary, nil
}

// step processes one word and returns the next one. On the last iteration
// the next word is not dequeued, so an empty frontier there is not an error.
func (e *Explorer) step(ctx context.Context, i int, word string) (string, error) {
	src, tgt := e.state.SourceLang, e.state.TargetLang

	result, err := e.provider.Translate(ctx, word, src, tgt)
	if err != nil {
		return "", &ProviderError{Op: "translate", Word: word, Err: err}
	}
	e.state.Translations.Set(word, result.Translations)
	e.log.DebugContext(ctx, fmt.Sprintf("Translations for %s: %s", word, joinTranslations(result.Translations)), logging.Postfix("\n"))

	record, err := e.detector.Detect(ctx, word, result.Translations, src, tgt)
	if err != nil {
		return "", &ProviderError{Op: "reverse", Word: word, Err: err}
	}
	if record != nil && !e.state.OneToOne.Contains(record.Word) {
		e.state.OneToOne.Append(*record)
		e.log.InfoContext(ctx, fmt.Sprintf("1-to-1: %s -> %s", record.Word, record.Translation))
	} else {
		e.log.InfoContext(ctx, word)
	}

	if result.Examples != nil {
		batch, err := e.extractor.Extract(ctx, result.Examples, e.cfg.MaxSentences, src)
		if err != nil {
			var aerr *analyzer.Error
			if errors.As(err, &aerr) {
				return "", &AnalyzerError{Word: word, Err: err}
			}
			return "", &ProviderError{Op: "examples", Word: word, Err: err}
		}
		e.log.DebugContext(ctx, "Words to translate: "+strings.Join(batch, " "), logging.Postfix("\n"))
		e.frontier.EnqueueNew(batch)
	}

	if i+1 >= e.cfg.Iterations {
		return "", nil
	}
	next, err := e.frontier.DequeueNext()
	if err != nil {
		return "", fmt.Errorf("after %q at iteration %d: %w", word, i, err)
	}
	return next, nil
}

// observe logs the forward top candidate and the back-translations as
// ('word', 'tag') tuples for later part-of-speech statistics.
func (e *Explorer) observe(top models.Candidate, back []models.Candidate) {
	tuples := make([]string, 0, len(back))
	for _, c := range back {
		tuples = append(tuples, logging.Tuple(c.Translation, c.PartOfSpeech))
	}
	e.log.Info(logging.Tuple(top.Translation, top.PartOfSpeech) + " <- " + strings.Join(tuples, " "))
}

func (e *Explorer) report(ctx context.Context, i int) {
	lines := e.Progress(i).Lines()
	for n, line := range lines {
		switch n {
		case 0:
			e.log.InfoContext(ctx, line, logging.Prefix("\n"))
		case len(lines) - 1:
			e.log.InfoContext(ctx, line, logging.Postfix("\n"))
		default:
			e.log.InfoContext(ctx, line)
		}
	}
}

func (e *Explorer) checkpoint(ctx context.Context) error {
	for _, c := range e.checkpointers {
		if err := c.Save(ctx, e.state); err != nil {
			return fmt.Errorf("checkpoint: %w", err)
		}
	}
	return nil
}

func joinTranslations(cs []models.Candidate) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.Translation
	}
	return strings.Join(parts, " ")
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
