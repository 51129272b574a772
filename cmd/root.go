package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizgen/internal/config"
	"github.com/abhisek/quizgen/internal/store"
)

// tuiAnnotation marks commands that take over the terminal; their logs go
// to a file instead of stderr.
const tuiAnnotation = "tui"

var (
	cfg     *config.Config
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "quizgen",
	Short: "Generate multiple-choice quizzes on any subject",
	Long: `quizgen asks a language model for ten multiple-choice questions on a
subject at a chosen proficiency level, lets you answer them and scores the
result with per-question advice.`,
	Annotations:        map[string]string{tuiAnnotation: "true"},
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default ./quizgen.yaml or $XDG_CONFIG_HOME/quizgen/quizgen.yaml)")
	pf.String("db", "", "Path to the request-event database (overrides QUIZGEN_DB)")
	pf.Bool("no-log", false, "Do not record LLM request events")
	pf.String("provider", "", "LLM provider: openai, anthropic, gemini, openrouter or mock")
	pf.String("model", "", "Model ID for the selected provider")
	pf.String("mock-file", "", "Response file replayed by the mock provider")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// setup loads the configuration and installs the default logger.
func setup(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("config")
	loaded, err := config.Load(config.Options{File: file, Flags: cmd.Flags()})
	if err != nil {
		return err
	}
	cfg = loaded

	var w io.Writer = os.Stderr
	path := cfg.Log.File
	if path == "" && cmd.Annotations[tuiAnnotation] == "true" {
		if path, err = config.DefaultLogFile(); err != nil {
			return err
		}
	}
	if path != "" {
		if err := store.EnsureDir(path); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		w = f
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLevel(cfg.Log.Level),
	})))
	slog.Debug("configuration loaded", "file", cfg.File(), "provider", cfg.LLM.Provider)
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
