package explorer

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jparta/onetoone/internal/logging"
	"github.com/jparta/onetoone/internal/models"
	"github.com/jparta/onetoone/internal/testutil"
)

var c = testutil.Candidate

type recordingCheckpointer struct {
	saves     int
	oneToOne  []int
	err       error
	ctxErrors []error
}

func (r *recordingCheckpointer) Save(ctx context.Context, state *models.State) error {
	r.saves++
	r.oneToOne = append(r.oneToOne, state.OneToOne.Len())
	r.ctxErrors = append(r.ctxErrors, ctx.Err())
	return r.err
}

func noSleep(context.Context, time.Duration) error { return nil }

func testConfig(iterations int) Config {
	cfg := DefaultConfig()
	cfg.Iterations = iterations
	cfg.Delay = 0
	return cfg
}

func testLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(logging.NewHandler(&buf, nil, slog.LevelInfo)), &buf
}

// desireProvider answers the scenario of a seed with a one-to-one pair
// whose examples lead to two more words.
func desireProvider() *testutil.FakeProvider {
	return testutil.NewFakeProvider().
		Add("желание", "ru", "en", testutil.Entry{
			Translations: []models.Candidate{c("desire", 120, "n."), c("wish", 80, "n.")},
			Examples:     []string{"Моё желание сбылось. ", "Огромное желание. "},
		}).
		Add("desire", "en", "ru", testutil.Entry{
			Translations: []models.Candidate{c("желание", 95, "n."), c("жажда", 10, "n.")},
		}).
		Add("Моё", "ru", "en", testutil.Entry{
			Translations: []models.Candidate{c("my", 500, "")},
		}).
		Add("my", "en", "ru", testutil.Entry{
			Translations: []models.Candidate{c("мой", 700, "")},
		})
}

func TestRunScenario(t *testing.T) {
	fake := desireProvider()
	cp := &recordingCheckpointer{}
	logger, out := testLogger()

	e := New(testConfig(3), fake, &testutil.FakeAnalyzer{},
		WithCheckpointer(cp), WithLogger(logger), WithSleep(noSleep))
	summary, err := e.Run(context.Background(), "желание")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Phase != PhaseDone || e.Phase() != PhaseDone {
		t.Errorf("phase = %v, want done", summary.Phase)
	}
	if summary.Iterations != 3 {
		t.Errorf("iterations = %d, want 3", summary.Iterations)
	}

	want := []models.Record{{Word: "желание", Frequency: 95, Translation: "desire"}}
	if got := e.State().OneToOne.Records(); !reflect.DeepEqual(got, want) {
		t.Errorf("ledger = %v, want %v", got, want)
	}
	if got, want := e.State().Translations.Words(), []string{"Моё", "Огромное", "желание"}; !reflect.DeepEqual(got, want) {
		t.Errorf("processed words = %v, want %v", got, want)
	}

	// one save at i=0 and the final one
	if cp.saves != 2 {
		t.Errorf("saves = %d, want 2", cp.saves)
	}

	log := out.String()
	for _, line := range []string{
		"Starting word: желание\n\n",
		"('desire', 'n.') <- ('желание', 'n.') ('жажда', 'n.')\n",
		"1-to-1: желание -> desire\n",
		"\nIteration 0\n",
		"Моё\n",
		"('my', None) <- ('мой', None)\n",
	} {
		if !strings.Contains(log, line) {
			t.Errorf("log is missing %q:\n%s", line, log)
		}
	}
}

func TestRunProcessesEachWordOnce(t *testing.T) {
	fake := testutil.NewFakeProvider().
		Add("а", "ru", "en", testutil.Entry{Examples: []string{"б а в "}}).
		Add("б", "ru", "en", testutil.Entry{Examples: []string{"а в б "}}).
		Add("в", "ru", "en", testutil.Entry{Examples: []string{"г "}})

	e := New(testConfig(4), fake, &testutil.FakeAnalyzer{}, WithSleep(noSleep), WithLogger(slog.New(slog.DiscardHandler)))
	if _, err := e.Run(context.Background(), "а"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var forward []string
	for _, call := range fake.Calls {
		if strings.HasSuffix(call, "(ru->en)") {
			forward = append(forward, strings.TrimSuffix(call, " (ru->en)"))
		}
	}
	if want := []string{"а", "б", "в", "г"}; !reflect.DeepEqual(forward, want) {
		t.Errorf("forward queries = %v, want %v", forward, want)
	}
}

func TestRunEmptyFrontier(t *testing.T) {
	fake := testutil.NewFakeProvider()
	cp := &recordingCheckpointer{}

	e := New(testConfig(5), fake, &testutil.FakeAnalyzer{}, WithCheckpointer(cp), WithSleep(noSleep), WithLogger(slog.New(slog.DiscardHandler)))
	summary, err := e.Run(context.Background(), "одинокий")

	if !errors.Is(err, ErrEmptyFrontier) {
		t.Fatalf("expected ErrEmptyFrontier, got %v", err)
	}
	if summary.Phase != PhaseFailed || summary.Iterations != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if e.State().Translations.Len() != 1 {
		t.Errorf("the processed word must be kept, table has %d", e.State().Translations.Len())
	}
	if cp.saves != 1 {
		t.Errorf("expected a final checkpoint, got %d saves", cp.saves)
	}
}

func TestRunLastIterationDoesNotNeedNextWord(t *testing.T) {
	e := New(testConfig(1), testutil.NewFakeProvider(), &testutil.FakeAnalyzer{}, WithSleep(noSleep), WithLogger(slog.New(slog.DiscardHandler)))
	summary, err := e.Run(context.Background(), "одинокий")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Phase != PhaseDone || summary.Iterations != 1 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestRunProviderError(t *testing.T) {
	boom := errors.New("503")
	fake := testutil.NewFakeProvider().Fail("кот", "ru", "en", boom)

	e := New(testConfig(3), fake, &testutil.FakeAnalyzer{}, WithSleep(noSleep), WithLogger(slog.New(slog.DiscardHandler)))
	_, err := e.Run(context.Background(), "кот")

	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ProviderError, got %v", err)
	}
	if perr.Op != "translate" || perr.Word != "кот" {
		t.Errorf("ProviderError = %+v", perr)
	}
	if !errors.Is(err, boom) {
		t.Error("cause must be preserved")
	}
}

func TestRunReverseQueryError(t *testing.T) {
	fake := testutil.NewFakeProvider().
		Add("кот", "ru", "en", testutil.Entry{Translations: []models.Candidate{c("cat", 1, "n.")}}).
		Fail("cat", "en", "ru", errors.New("timeout"))

	e := New(testConfig(3), fake, &testutil.FakeAnalyzer{}, WithSleep(noSleep), WithLogger(slog.New(slog.DiscardHandler)))
	_, err := e.Run(context.Background(), "кот")

	var perr *ProviderError
	if !errors.As(err, &perr) || perr.Op != "reverse" {
		t.Fatalf("expected reverse ProviderError, got %v", err)
	}
}

func TestRunAnalyzerError(t *testing.T) {
	fake := testutil.NewFakeProvider().
		Add("кот", "ru", "en", testutil.Entry{Examples: []string{"Кот спит."}})
	analyzer := &testutil.FakeAnalyzer{Err: errors.New("model missing")}

	e := New(testConfig(3), fake, analyzer, WithSleep(noSleep), WithLogger(slog.New(slog.DiscardHandler)))
	_, err := e.Run(context.Background(), "кот")

	var aerr *AnalyzerError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected *AnalyzerError, got %v", err)
	}
	var perr *ProviderError
	if errors.As(err, &perr) {
		t.Error("analyzer failure must not be reported as a provider failure")
	}
}

func TestRunIntervals(t *testing.T) {
	fake := testutil.NewFakeProvider().
		Add("a", "ru", "en", testutil.Entry{Examples: []string{"b c d e f g "}})
	cp := &recordingCheckpointer{}
	logger, out := testLogger()

	cfg := testConfig(5)
	cfg.ReportInterval = 2
	cfg.SaveInterval = 3
	e := New(cfg, fake, &testutil.FakeAnalyzer{}, WithCheckpointer(cp), WithLogger(logger), WithSleep(noSleep))
	if _, err := e.Run(context.Background(), "a"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var reports []string
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.HasPrefix(line, "Iteration ") {
			reports = append(reports, line)
		}
	}
	if want := []string{"Iteration 0", "Iteration 2", "Iteration 4"}; !reflect.DeepEqual(reports, want) {
		t.Errorf("reports = %v, want %v", reports, want)
	}
	// i=0, i=3 and the final save
	if cp.saves != 3 {
		t.Errorf("saves = %d, want 3", cp.saves)
	}
}

func TestRunDisabledIntervals(t *testing.T) {
	fake := testutil.NewFakeProvider().
		Add("a", "ru", "en", testutil.Entry{Examples: []string{"b c "}})
	cp := &recordingCheckpointer{}
	logger, out := testLogger()

	cfg := testConfig(2)
	cfg.ReportInterval = 0
	cfg.SaveInterval = -1
	e := New(cfg, fake, &testutil.FakeAnalyzer{}, WithCheckpointer(cp), WithLogger(logger), WithSleep(noSleep))
	if _, err := e.Run(context.Background(), "a"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Contains(out.String(), "Iteration") {
		t.Error("reports should be disabled")
	}
	if cp.saves != 1 {
		t.Errorf("only the final save expected, got %d", cp.saves)
	}
}

func TestRunDelay(t *testing.T) {
	fake := testutil.NewFakeProvider().
		Add("a", "ru", "en", testutil.Entry{Examples: []string{"b c d "}})
	var waits []time.Duration
	sleep := func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}

	cfg := testConfig(3)
	cfg.Delay = 250 * time.Millisecond
	e := New(cfg, fake, &testutil.FakeAnalyzer{}, WithSleep(sleep), WithLogger(slog.New(slog.DiscardHandler)))
	if _, err := e.Run(context.Background(), "a"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := []time.Duration{250 * time.Millisecond, 250 * time.Millisecond}
	if !reflect.DeepEqual(waits, want) {
		t.Errorf("waits = %v, want %v", waits, want)
	}
}

func TestRunCancelled(t *testing.T) {
	fake := testutil.NewFakeProvider().
		Add("a", "ru", "en", testutil.Entry{Examples: []string{"b c d "}})
	cp := &recordingCheckpointer{}
	ctx, cancel := context.WithCancel(context.Background())

	sleep := func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}
	cfg := testConfig(10)
	cfg.Delay = time.Second
	cfg.SaveInterval = 0
	e := New(cfg, fake, &testutil.FakeAnalyzer{}, WithCheckpointer(cp), WithSleep(sleep), WithLogger(slog.New(slog.DiscardHandler)))
	summary, err := e.Run(ctx, "a")

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if summary.Iterations != 1 || summary.Phase != PhaseFailed {
		t.Errorf("summary = %+v", summary)
	}
	if cp.saves != 1 || cp.ctxErrors[0] != nil {
		t.Errorf("final checkpoint must use a live context: saves=%d errs=%v", cp.saves, cp.ctxErrors)
	}
}

func TestRunCheckpointError(t *testing.T) {
	fake := testutil.NewFakeProvider().
		Add("a", "ru", "en", testutil.Entry{Examples: []string{"b c "}})
	cp := &recordingCheckpointer{err: errors.New("disk full")}

	e := New(testConfig(3), fake, &testutil.FakeAnalyzer{}, WithCheckpointer(cp), WithSleep(noSleep), WithLogger(slog.New(slog.DiscardHandler)))
	summary, err := e.Run(context.Background(), "a")
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected checkpoint error, got %v", err)
	}
	if summary.Iterations != 1 {
		t.Errorf("run should stop after the failed save, iterations = %d", summary.Iterations)
	}
}

func TestRunResume(t *testing.T) {
	state := models.NewState("ru", "en")
	state.Translations.Set("b", nil)
	state.OneToOne.Append(models.Record{Word: "a", Frequency: 5, Translation: "x"})

	fake := testutil.NewFakeProvider().
		Add("a", "ru", "en", testutil.Entry{
			Translations: []models.Candidate{c("x", 9, "n.")},
			Examples:     []string{"b c "},
		}).
		Add("x", "en", "ru", testutil.Entry{Translations: []models.Candidate{c("a", 5, "n.")}})

	e := New(testConfig(2), fake, &testutil.FakeAnalyzer{}, WithState(state), WithSleep(noSleep), WithLogger(slog.New(slog.DiscardHandler)))
	if _, err := e.Run(context.Background(), "a"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := e.State().Translations.Words(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("words = %v; b was already processed and must be skipped", got)
	}
	if e.State().OneToOne.Len() != 1 {
		t.Errorf("resumed record must not be duplicated, ledger has %d", e.State().OneToOne.Len())
	}
}

func TestRunSeeds(t *testing.T) {
	fake := testutil.NewFakeProvider()
	e := New(testConfig(3), fake, &testutil.FakeAnalyzer{},
		WithSeeds([]string{" z ", "y", "start", ""}), WithSleep(noSleep), WithLogger(slog.New(slog.DiscardHandler)))
	if _, err := e.Run(context.Background(), "start"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := []string{"start (ru->en)", "y (ru->en)", "z (ru->en)"}
	if !reflect.DeepEqual(fake.Calls, want) {
		t.Errorf("calls = %v, want %v", fake.Calls, want)
	}
}

func TestRunTwice(t *testing.T) {
	e := New(testConfig(1), testutil.NewFakeProvider(), &testutil.FakeAnalyzer{}, WithSleep(noSleep), WithLogger(slog.New(slog.DiscardHandler)))
	if _, err := e.Run(context.Background(), "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Run(context.Background(), "a"); err == nil {
		t.Error("second Run must fail")
	}
}

func TestPhaseString(t *testing.T) {
	for p, want := range map[Phase]string{
		PhaseInit: "init", PhaseIterating: "iterating", PhaseDone: "done", PhaseFailed: "failed", Phase(9): "Phase(9)",
	} {
		if p.String() != want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(p), p.String(), want)
		}
	}
}
