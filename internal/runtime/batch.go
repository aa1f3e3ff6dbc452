// runtime/batch.go

package runtime

import (
	"context"
	"fmt"
	"time"

	"rgehrsitz/appraise/internal/facts"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Job is one fact bundle in a batch. Line is the position in the input and
// is carried through to the result.
type Job struct {
	Line  int
	Facts facts.Facts
}

// Result is the decision for one Job.
type Result struct {
	ID   string `json:"id"`
	Line int    `json:"line"`
	Decision
}

// Observer is notified of every decision made in a batch. Implementations
// must be safe for concurrent use.
type Observer interface {
	Observe(d Decision, elapsed time.Duration)
}

// EvaluateAll decides every job against the knowledge base using at most
// workers goroutines. Results are returned in job order. Evaluation itself
// cannot fail; the only error is cancellation of ctx.
func (kb *KnowledgeBase) EvaluateAll(ctx context.Context, jobs []Job, workers int, obs Observer) ([]Result, error) {
	if workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", workers)
	}

	results := make([]Result, len(jobs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			start := time.Now()
			d := kb.Decide(job.Facts)
			if obs != nil {
				obs.Observe(d, time.Since(start))
			}
			results[i] = Result{ID: uuid.New().String(), Line: job.Line, Decision: d}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch evaluation interrupted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch evaluation interrupted: %w", err)
	}

	log.Info().Int("jobs", len(jobs)).Int("workers", workers).Msg("Batch evaluation completed")
	return results, nil
}
