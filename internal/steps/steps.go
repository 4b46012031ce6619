// Package steps provides the pure evaluators that judge user input against a
// step's configuration. Evaluators register themselves per step type,
// allowing the runtime to dispatch without hardcoded switches.
//
// Evaluators are pure predicates: they may not mutate runtime state or touch
// persistence. An incorrect answer is a normal false verdict, never an error.
package steps

import (
	"fmt"
	"sync"

	"github.com/cybercop-labs/cybercop/internal/catalog"
)

// Input carries everything a user submitted for one attempt. Which fields
// matter depends on the step type. Attempts is the ephemeral per-session
// submit counter owned by the view layer; it is not persisted anywhere.
type Input struct {
	Text     string
	Username string
	Password string
	Option   int
	Attempts int
}

// Evaluator judges one attempt against a step's configuration.
type Evaluator func(data catalog.StepData, in Input) bool

var (
	evaluators = make(map[catalog.StepType]Evaluator)
	mu         sync.RWMutex
)

// Register adds an evaluator for a step type.
// Panics if the type already has one.
func Register(t catalog.StepType, e Evaluator) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := evaluators[t]; exists {
		panic(fmt.Sprintf("steps: evaluator for %q already registered", t))
	}
	evaluators[t] = e
}

// Supported reports whether a step type has an evaluator.
func Supported(t catalog.StepType) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := evaluators[t]
	return ok
}

// Evaluate runs the evaluator for the step's type. Unsupported types never
// pass.
func Evaluate(step catalog.Step, in Input) bool {
	mu.RLock()
	e, ok := evaluators[step.Type]
	mu.RUnlock()

	if !ok {
		return false
	}
	return e(step.Data, in)
}
