package cli

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/greetly/greetly/engine/core"
	"github.com/greetly/greetly/engine/notify"
	"github.com/greetly/greetly/engine/pipeline"
	"github.com/greetly/greetly/engine/roster"
	"github.com/greetly/greetly/pkg/config"
	"github.com/greetly/greetly/pkg/logger"
)

func sendCmd() *cobra.Command {
	var file, dateStr string
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Run one pipeline invocation and deliver the notification",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd, file, dateStr, dryRun)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Roster spreadsheet path (overrides GREETLY_SOURCE_PATH)")
	cmd.Flags().StringVar(&dateStr, "date", "", "Target date as YYYY-MM-DD (default: today, local clock)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render the message without delivering it")
	return cmd
}

func previewCmd() *cobra.Command {
	var file, dateStr string
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Ingest, match and render the message without delivering",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd, file, dateStr, true)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Roster spreadsheet path (overrides GREETLY_SOURCE_PATH)")
	cmd.Flags().StringVar(&dateStr, "date", "", "Target date as YYYY-MM-DD (default: today, local clock)")
	return cmd
}

func runPipeline(cmd *cobra.Command, file, dateStr string, dryRun bool) error {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load(func(c *config.Config) {
		if file != "" {
			c.Source.Path = file
		}
	})
	if err != nil {
		return err
	}

	log := buildLogger(cmd, cfg)
	ctx := logger.ContextWithLogger(cmd.Context(), log)

	target, err := resolveTarget(dateStr)
	if err != nil {
		return err
	}

	ingestor := roster.New(roster.Config{Path: cfg.Source.Path})
	var deliverer pipeline.Deliverer
	if !dryRun {
		deliverer = notify.NewClient(notify.Config{
			URL:         cfg.Gateway.URL,
			APIKey:      cfg.Gateway.APIKey.Value(),
			From:        cfg.Gateway.From,
			To:          cfg.Gateway.To,
			Timeout:     cfg.Gateway.Timeout,
			MaxAttempts: cfg.Gateway.MaxAttempts,
			BackoffBase: cfg.Gateway.BackoffBase,
		})
	}

	result := pipeline.New(ingestor, deliverer).Run(ctx, target)
	reportResult(log, result)
	if result.HasErrors() {
		return fmt.Errorf("run completed with %d error(s)", len(result.Errors))
	}
	return nil
}

func buildLogger(cmd *cobra.Command, cfg *config.Config) logger.Logger {
	level := cfg.Log.Level
	if flagLevel, err := cmd.Flags().GetString("log-level"); err == nil && flagLevel != "" {
		level = flagLevel
	}
	jsonOut := cfg.Log.JSON
	if flagJSON, err := cmd.Flags().GetBool("log-json"); err == nil && flagJSON {
		jsonOut = true
	}
	return logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(level),
		JSON:       jsonOut,
		TimeFormat: "15:04:05",
	})
}

// resolveTarget parses the --date flag, defaulting to the host's local
// clock. The target is injectable so runs are reproducible in tests and
// backfills.
func resolveTarget(dateStr string) (core.Date, error) {
	if dateStr == "" {
		return core.DateOf(time.Now()), nil
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return core.Date{}, fmt.Errorf("invalid --date %q, want YYYY-MM-DD: %w", dateStr, err)
	}
	return core.DateOf(t), nil
}

// reportResult logs the externally observable surface of one run.
func reportResult(log logger.Logger, result *core.PipelineResult) {
	log.Info("pipeline result",
		"run_id", result.RunID,
		"records_processed", result.RecordsProcessed,
		"matched", result.MatchedNames(),
		"notification_sent", result.NotificationSent,
	)
	if result.Outcome != nil && result.Outcome.Success {
		log.Info("delivery receipt",
			"message_id", result.Outcome.MessageID,
			"attempts", result.Outcome.Attempts,
			"timestamp", result.Outcome.Timestamp,
		)
	}
	for _, e := range result.Errors {
		log.Error("run error", "error", e)
	}
}
