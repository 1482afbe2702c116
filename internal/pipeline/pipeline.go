// Package pipeline runs the full assessment pass over a batch of records:
// evidence collection, per-field conflict resolution, anomaly scanning,
// confidence aggregation, and review prioritization.
package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/medguard-ai/verify-cli/internal/anomaly"
	"github.com/medguard-ai/verify-cli/internal/assess"
	"github.com/medguard-ai/verify-cli/internal/enrich"
	"github.com/medguard-ai/verify-cli/internal/model"
	"github.com/medguard-ai/verify-cli/internal/resolve"
	"github.com/medguard-ai/verify-cli/internal/validate"
)

const defaultMaxConcurrent = 5

// Pipeline holds the assessment stages. All stages are safe for concurrent
// use; per-record state lives on the stack of each worker.
type Pipeline struct {
	validator     *validate.Validator
	enricher      *enrich.Enricher
	detector      *anomaly.Detector
	aggregator    *assess.Aggregator
	prioritizer   *assess.Prioritizer
	maxConcurrent int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMaxConcurrent bounds the record worker pool.
func WithMaxConcurrent(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxConcurrent = n
		}
	}
}

// New assembles a pipeline from its stages.
func New(
	validator *validate.Validator,
	enricher *enrich.Enricher,
	detector *anomaly.Detector,
	aggregator *assess.Aggregator,
	prioritizer *assess.Prioritizer,
	opts ...Option,
) *Pipeline {
	p := &Pipeline{
		validator:     validator,
		enricher:      enricher,
		detector:      detector,
		aggregator:    aggregator,
		prioritizer:   prioritizer,
		maxConcurrent: defaultMaxConcurrent,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// validateStages reports a configuration error when a required stage is
// missing. A missing collaborator is fatal for the whole batch, not a
// per-record failure.
func (p *Pipeline) validateStages() error {
	switch {
	case p.validator == nil:
		return eris.New("pipeline: validator is required")
	case p.enricher == nil:
		return eris.New("pipeline: enricher is required")
	case p.detector == nil:
		return eris.New("pipeline: anomaly detector is required")
	case p.aggregator == nil:
		return eris.New("pipeline: confidence aggregator is required")
	case p.prioritizer == nil:
		return eris.New("pipeline: review prioritizer is required")
	}
	return nil
}

// BatchResult is the outcome of one batch run. Assessments are ordered by
// input position, with failed records omitted; Errors records why.
type BatchResult struct {
	Assessments []model.Assessment
	Metrics     model.RunMetrics
	Errors      []model.RecordError
}

// stageClock accumulates wall time per stage across workers.
type stageClock struct {
	validation atomic.Int64
	enrichment atomic.Int64
	resolution atomic.Int64
	anomaly    atomic.Int64
	scoring    atomic.Int64
}

func (c *stageClock) durations() map[string]time.Duration {
	return map[string]time.Duration{
		model.StageValidation: time.Duration(c.validation.Load()),
		model.StageEnrichment: time.Duration(c.enrichment.Load()),
		model.StageResolution: time.Duration(c.resolution.Load()),
		model.StageAnomaly:    time.Duration(c.anomaly.Load()),
		model.StageScoring:    time.Duration(c.scoring.Load()),
	}
}

func timed(counter *atomic.Int64, fn func()) {
	start := time.Now()
	fn()
	counter.Add(int64(time.Since(start)))
}

// Assess runs the full pass over a batch. Records are processed by a
// bounded worker pool; results are keyed by input position so output order
// never depends on scheduling. One record's failure is recorded and does
// not abort the batch, but a missing stage fails the whole batch before any
// record is dispatched. Cancelling the context stops dispatch of new records
// while letting in-flight records finish.
func (p *Pipeline) Assess(ctx context.Context, records []model.Provider) (*BatchResult, error) {
	if err := p.validateStages(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, eris.New("pipeline: batch is empty")
	}

	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID))
	log.Info("pipeline: starting batch", zap.Int("records", len(records)))

	started := time.Now()
	clock := &stageClock{}

	type slot struct {
		assessment model.Assessment
		err        error
	}
	slots := make([]slot, len(records))

	g := &errgroup.Group{}
	g.SetLimit(p.maxConcurrent)

dispatch:
	for i := range records {
		select {
		case <-ctx.Done():
			log.Warn("pipeline: batch cancelled, draining in-flight records")
			for j := i; j < len(records); j++ {
				slots[j].err = eris.Wrap(ctx.Err(), "pipeline: cancelled before dispatch")
			}
			break dispatch
		default:
		}

		g.Go(func() error {
			slots[i].assessment, slots[i].err = p.assessOne(ctx, clock, records[i])
			return nil
		})
	}
	_ = g.Wait()

	result := &BatchResult{}
	for i, s := range slots {
		if s.err != nil {
			id := records[i].RecordID()
			log.Error("pipeline: record failed",
				zap.String("record_id", id), zap.Error(s.err))
			result.Errors = append(result.Errors, model.RecordError{
				RecordID: id,
				Reason:   eris.ToString(s.err, false),
			})
			continue
		}
		result.Assessments = append(result.Assessments, s.assessment)
	}

	completed := time.Now()
	duration := completed.Sub(started)
	processed := len(records)
	throughput := 0.0
	if duration > 0 {
		throughput = float64(processed) / duration.Hours()
	}
	result.Metrics = model.RunMetrics{
		RunID:             runID,
		StartedAt:         started,
		CompletedAt:       completed,
		Duration:          duration,
		StageDurations:    clock.durations(),
		Processed:         processed,
		Succeeded:         len(result.Assessments),
		Failed:            len(result.Errors),
		ThroughputPerHour: throughput,
	}

	log.Info("pipeline: batch complete",
		zap.Int("succeeded", result.Metrics.Succeeded),
		zap.Int("failed", result.Metrics.Failed),
		zap.Duration("duration", duration))
	return result, nil
}

// assessOne runs every stage for a single record. A panic inside a stage is
// converted to a record error rather than taking down the batch.
func (p *Pipeline) assessOne(ctx context.Context, clock *stageClock, record model.Provider) (assessment model.Assessment, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = eris.New(fmt.Sprintf("pipeline: panic assessing record: %v", r))
		}
	}()

	var evidence []model.Evidence
	var flags []string

	timed(&clock.validation, func() {
		ev, vflags := p.validator.Collect(ctx, record)
		evidence = append(evidence, ev...)
		flags = append(flags, vflags...)
	})

	timed(&clock.enrichment, func() {
		evidence = append(evidence, p.enricher.Collect(record)...)
	})

	var fields map[string]model.FieldResolution
	timed(&clock.resolution, func() {
		fields = resolve.Resolve(evidence)
	})

	timed(&clock.anomaly, func() {
		flags = append(flags, p.detector.Detect(record)...)
	})

	timed(&clock.scoring, func() {
		confidence := p.aggregator.Aggregate(fields)
		verdict := p.prioritizer.Review(confidence, flags)
		assessment = model.Assessment{
			RecordID:          record.RecordID(),
			Fields:            fields,
			OverallConfidence: confidence,
			Flags:             flags,
			RequiresReview:    verdict.RequiresReview,
			Priority:          verdict.Priority,
			RiskLevel:         verdict.RiskLevel,
			Status:            verdict.Status,
			AssessedAt:        time.Now().UTC(),
		}
	})
	return assessment, nil
}
