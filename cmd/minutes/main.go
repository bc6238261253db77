package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meeting-minutes/internal/artifact"
	"github.com/nguyentantai21042004/meeting-minutes/internal/audio"
	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/llm"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/pipeline"
	"github.com/nguyentantai21042004/meeting-minutes/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-minutes/internal/transcriber"
	"github.com/nguyentantai21042004/meeting-minutes/internal/watcher"
	"github.com/nguyentantai21042004/meeting-minutes/pkg/executor"
)

type options struct {
	configPath string
	envFile    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	code := execute(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the CLI and returns the process exit code. Every error,
// including usage errors, is written to stderr.
func execute(ctx context.Context, args []string, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "minutes",
		Short:         "Transcribe a meeting recording and summarize it",
		Long:          "Transcribes an audio recording with a speech-to-text service, derives an abstract summary, key points, action items and sentiment with a language model, and stores them as a JSON artifact.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "path to a .env file (default: ./.env when present)")

	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))

	return rootCmd
}

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run <audio-file>",
		Short: "Produce meeting minutes for one recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			p, log, err := buildPipeline(ctx, opts)
			if err != nil {
				return err
			}

			if _, err := p.Run(ctx, args[0]); err != nil {
				log.Error(ctx, "Run failed: %v", err)
				return err
			}
			return nil
		},
	}
}

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <dir>",
		Short: "Produce meeting minutes for every recording dropped into a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			inputDir := args[0]

			p, log, err := buildPipeline(ctx, opts)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(inputDir, 0755); err != nil {
				log.Error(ctx, "Failed to create directory %s: %v", inputDir, err)
				return err
			}

			w, err := watcher.New(inputDir, p.Process, log)
			if err != nil {
				log.Error(ctx, "Failed to create watcher: %v", err)
				return err
			}
			defer w.Stop()

			log.Info(ctx, "Press Ctrl+C to stop")

			if err := w.Start(ctx); err != nil && ctx.Err() == nil {
				log.Error(ctx, "Watcher error: %v", err)
				return err
			}

			log.Info(ctx, "Shutdown signal received, watcher stopped")
			return nil
		},
	}
}

// buildPipeline loads configuration and wires every stage
func buildPipeline(ctx context.Context, opts *options) (pipeline.Pipeline, logger.Logger, error) {
	if err := loadEnvFile(opts.envFile); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(opts.configPath, os.LookupEnv)
	if err != nil {
		return nil, nil, err
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting Minutes")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Speech model: %s", cfg.Speech.ModelID)
	log.Info(ctx, "Language model: %s (parallel generations: %d)", cfg.LLM.Model, cfg.Parallelism())
	log.Info(ctx, "Max audio size: %d bytes", cfg.Audio.MaxSizeBytes)

	exec := executor.New()
	if cfg.Audio.Resize && !(exec.Available(cfg.Audio.FFprobePath) && exec.Available(cfg.Audio.FFmpegPath)) {
		log.Warn(ctx, "Audio resize is enabled but %s or %s is not on PATH", cfg.Audio.FFprobePath, cfg.Audio.FFmpegPath)
	}

	gen, err := llm.NewGemini(ctx, cfg.LLM)
	if err != nil {
		log.Error(ctx, "Failed to create language model client: %v", err)
		return nil, nil, err
	}

	p, err := pipeline.New(cfg, pipeline.Deps{
		Preparer:    audio.New(cfg.Audio, exec, log),
		Transcriber: transcriber.New(cfg.Speech, log),
		Summarizer:  summarizer.New(gen, log, cfg.Parallelism()),
		Store:       artifact.New(cfg.Output, log),
		Logger:      log,
		Out:         os.Stdout,
	})
	if err != nil {
		return nil, nil, err
	}

	return p, log, nil
}

// loadEnvFile loads path, or ./.env when path is empty and the file exists.
// Variables already set in the environment win.
func loadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
