package pipeline

import (
	"context"
	"fmt"

	"github.com/greetly/greetly/engine/core"
	"github.com/greetly/greetly/engine/match"
	"github.com/greetly/greetly/engine/notify"
	"github.com/greetly/greetly/pkg/logger"
)

// Ingestor produces validated records plus per-row diagnostics, or a
// whole-source error.
type Ingestor interface {
	Ingest(ctx context.Context) ([]core.Record, []core.RowDiagnostic, error)
}

// Deliverer sends one message and reports the outcome of the attempt
// sequence.
type Deliverer interface {
	Deliver(ctx context.Context, message string) core.DeliveryOutcome
}

// Orchestrator sequences ingest, match, format and deliver for a single
// invocation. A nil deliverer turns the run into a dry run: the message is
// rendered and logged but nothing is sent.
type Orchestrator struct {
	ingestor  Ingestor
	deliverer Deliverer
}

func New(ingestor Ingestor, deliverer Deliverer) *Orchestrator {
	return &Orchestrator{ingestor: ingestor, deliverer: deliverer}
}

// Run executes one pipeline invocation against the target date. It never
// returns an error and never panics past its own boundary; every failure
// mode lands in the returned PipelineResult. The deliverer is invoked at
// most once per run, and only when the match set is non-empty.
func (o *Orchestrator) Run(ctx context.Context, target core.Date) (result *core.PipelineResult) {
	result = core.NewPipelineResult()
	log := logger.FromContext(ctx).With("run_id", result.RunID)
	defer func() {
		if r := recover(); r != nil {
			result.AddError(core.RedactString(fmt.Sprintf("unexpected failure: %v", r)))
		}
	}()

	records, skipped, err := o.ingestor.Ingest(ctx)
	if err != nil {
		result.AddError(core.RedactError(err))
		log.Error("ingestion failed", "error", core.RedactError(err))
		return result
	}
	result.RecordsProcessed = len(records)
	result.Skipped = skipped
	for _, d := range skipped {
		log.Warn("skipped row", "row", d.Row, "reason", d.Message(), "name", d.Name)
	}

	result.Matches = match.Match(records, target)
	if len(result.Matches) == 0 {
		log.Info("no birthdays today", "records", result.RecordsProcessed, "date", target.String())
		return result
	}
	log.Info("matched birthdays", "names", result.MatchedNames(), "date", target.String())

	message := notify.FormatMessage(result.Matches, target)
	if o.deliverer == nil {
		log.Info("dry run, skipping delivery", "message", message)
		return result
	}

	outcome := o.deliverer.Deliver(ctx, message)
	result.Outcome = &outcome
	if !outcome.Success {
		// A failed send never aborts the run; counts and matches stay valid.
		result.AddError("delivery failed: " + outcome.ErrorDescription)
		log.Error("delivery failed", "attempts", outcome.Attempts, "error", outcome.ErrorDescription)
		return result
	}
	result.NotificationSent = true
	log.Info("notification delivered",
		"message_id", outcome.MessageID,
		"attempts", outcome.Attempts,
		"timestamp", outcome.Timestamp,
	)
	return result
}
