package service

import (
	"context"
	"fmt"
	"log"
)

// SagaStep pairs one network action with the compensating action that
// undoes it after a later step fails. Compensate is nil when there is
// nothing to undo.
type SagaStep struct {
	Name       string
	Run        func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga executes a fixed sequence of dependent calls against a backend with
// no multi-statement transactions. When a step fails, the compensations of
// the steps that already completed run in reverse order. Compensations are
// best-effort: their failures are logged, never retried, and never change
// the reported outcome. The guarantee is at-least-one-path cleanup, not
// exactly-once.
type Saga struct {
	name  string
	steps []SagaStep
}

// NewSaga creates a saga with the given steps, executed in order.
func NewSaga(name string, steps ...SagaStep) *Saga {
	return &Saga{name: name, steps: steps}
}

// Execute runs the steps strictly sequentially. The returned error names
// the step that failed.
func (s *Saga) Execute(ctx context.Context) error {
	for i, step := range s.steps {
		if err := step.Run(ctx); err != nil {
			s.compensate(ctx, i-1)
			return fmt.Errorf("%s: %w", step.Name, err)
		}
	}
	return nil
}

func (s *Saga) compensate(ctx context.Context, from int) {
	for i := from; i >= 0; i-- {
		if s.steps[i].Compensate == nil {
			continue
		}
		if err := s.steps[i].Compensate(ctx); err != nil {
			log.Printf("[%s] compensation for %q failed: %v", s.name, s.steps[i].Name, err)
		}
	}
}
