// Package pipeline holds the stage contract and the data passed between the
// slidextract stages.
package pipeline

import "context"

// Stage turns one input into one result. The orchestrator runs the detect
// stage and then the document stage; a stage must return promptly with
// ctx.Err() once ctx is cancelled.
type Stage[In, Out any] interface {
	Execute(ctx context.Context, input In) (Out, error)
}

// StageFunc lets a plain function stand in for a Stage.
type StageFunc[In, Out any] func(ctx context.Context, input In) (Out, error)

// Execute calls f.
func (f StageFunc[In, Out]) Execute(ctx context.Context, input In) (Out, error) {
	return f(ctx, input)
}
