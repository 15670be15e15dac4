package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jparta/onetoone/internal"
)

// configKeys maps flag names to their config file keys
var configKeys = map[string]string{
	"source":            "run.source",
	"target":            "run.target",
	"iterations":        "run.iterations",
	"max-sentences":     "run.max_sentences",
	"report-interval":   "run.report_interval",
	"save-interval":     "run.save_interval",
	"delay":             "run.delay",
	"seeds":             "run.seeds",
	"resume":            "run.resume",
	"output":            "output.checkpoint",
	"db":                "output.db",
	"anki":              "output.anki_csv",
	"anki-apkg":         "output.anki_apkg",
	"deck-name":         "output.deck_name",
	"provider":          "provider.name",
	"fallback-provider": "provider.fallback",
	"retries":           "provider.retries",
	"breaker":           "provider.breaker",
	"timeout":           "provider.timeout",
	"openai-model":      "provider.openai_model",
	"gemini-model":      "provider.gemini_model",
	"analyzer":          "analyzer.name",
	"analyzer-url":      "analyzer.url",
	"log-file":          "log.file",
	"log-level":         "log.level",
}

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "onetoone [start-word]",
		Short: "One-to-one translation pair explorer",
		Long: `onetoone discovers word pairs that are each other's most frequent
translation, walking outward from a start word through translations and
the vocabulary of example sentences.

Progress is logged to the console and to progress.log; the table of
translations and the found pairs are checkpointed to a JSON file.

Examples:
  onetoone желание                          # Explore Russian-English from "desire"
  onetoone --source de --target en Haus     # Another language pair
  onetoone --resume желание                 # Continue from translations.json
  onetoone --anki pairs.csv желание         # Also export the pairs for Anki
  onetoone --provider openai --list-models  # Show usable OpenAI models`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.onetoone.yaml)")

	// Run flags
	cmd.Flags().StringVarP(&flags.SourceLang, "source", "s", flags.SourceLang, "Source language code")
	cmd.Flags().StringVarP(&flags.TargetLang, "target", "t", flags.TargetLang, "Target language code")
	cmd.Flags().IntVarP(&flags.Iterations, "iterations", "n", flags.Iterations, "Number of words to process")
	cmd.Flags().IntVar(&flags.MaxSentences, "max-sentences", flags.MaxSentences, "Example sentences mined per word")
	cmd.Flags().IntVar(&flags.ReportInterval, "report-interval", flags.ReportInterval, "Iterations between progress reports (0 disables)")
	cmd.Flags().IntVar(&flags.SaveInterval, "save-interval", flags.SaveInterval, "Iterations between checkpoints (0 disables)")
	cmd.Flags().DurationVar(&flags.Delay, "delay", flags.Delay, "Pause between iterations")
	cmd.Flags().StringVar(&flags.SeedsFile, "seeds", "", "Queue extra start words from file (one per line)")
	cmd.Flags().BoolVar(&flags.Resume, "resume", false, "Continue from the existing checkpoint")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move the previous checkpoint and log to archive/ before starting")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")

	// Output flags
	cmd.Flags().StringVarP(&flags.Output, "output", "o", flags.Output, "Checkpoint file")
	cmd.Flags().StringVar(&flags.DBPath, "db", "", "Also record the run in this SQLite database")
	cmd.Flags().StringVar(&flags.AnkiCSV, "anki", "", "Export the pairs as an Anki import CSV")
	cmd.Flags().StringVar(&flags.AnkiAPKG, "anki-apkg", "", "Export the pairs as an Anki package (.apkg)")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for APKG export")

	// Provider flags
	cmd.Flags().StringVarP(&flags.Provider, "provider", "p", flags.Provider, "Translation provider: reverso, openai or gemini")
	cmd.Flags().StringVar(&flags.FallbackProvider, "fallback-provider", "", "Provider to use when the primary one fails")
	cmd.Flags().IntVar(&flags.Retries, "retries", 0, "Retry failed provider queries this many times")
	cmd.Flags().BoolVar(&flags.Breaker, "breaker", false, "Stop querying a provider after repeated failures")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Per-request timeout")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI chat model")
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model")

	// Analyzer flags
	cmd.Flags().StringVarP(&flags.Analyzer, "analyzer", "a", flags.Analyzer, "Lexical analyzer: udpipe, kagome or simple")
	cmd.Flags().StringVar(&flags.AnalyzerURL, "analyzer-url", "", "UDPipe REST endpoint")

	// Logging flags
	cmd.Flags().StringVar(&flags.LogFile, "log-file", flags.LogFile, "Progress log file (empty disables)")
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn or error")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	for name, key := range configKeys {
		viper.BindPFlag(key, cmd.Flags().Lookup(name))
	}
}

// ApplyConfig copies the effective settings back into flags. A flag given
// on the command line wins over the config file, which wins over defaults.
func ApplyConfig(flags *Flags) {
	flags.SourceLang = viper.GetString("run.source")
	flags.TargetLang = viper.GetString("run.target")
	flags.Iterations = viper.GetInt("run.iterations")
	flags.MaxSentences = viper.GetInt("run.max_sentences")
	flags.ReportInterval = viper.GetInt("run.report_interval")
	flags.SaveInterval = viper.GetInt("run.save_interval")
	flags.Delay = viper.GetDuration("run.delay")
	flags.SeedsFile = viper.GetString("run.seeds")
	flags.Resume = viper.GetBool("run.resume")
	flags.Output = viper.GetString("output.checkpoint")
	flags.DBPath = viper.GetString("output.db")
	flags.AnkiCSV = viper.GetString("output.anki_csv")
	flags.AnkiAPKG = viper.GetString("output.anki_apkg")
	flags.DeckName = viper.GetString("output.deck_name")
	flags.Provider = viper.GetString("provider.name")
	flags.FallbackProvider = viper.GetString("provider.fallback")
	flags.Retries = viper.GetInt("provider.retries")
	flags.Breaker = viper.GetBool("provider.breaker")
	flags.Timeout = viper.GetDuration("provider.timeout")
	flags.OpenAIModel = viper.GetString("provider.openai_model")
	flags.GeminiModel = viper.GetString("provider.gemini_model")
	flags.Analyzer = viper.GetString("analyzer.name")
	flags.AnalyzerURL = viper.GetString("analyzer.url")
	flags.LogFile = viper.GetString("log.file")
	flags.LogLevel = viper.GetString("log.level")
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".onetoone" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".onetoone")
	}

	// Environment variables
	viper.SetEnvPrefix("ONETOONE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("provider.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("provider.gemini_key")
}
