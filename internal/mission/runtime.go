// Package mission provides the in-memory runtime that drives one open
// mission: it merges catalog definitions with persisted progress, tracks the
// active step and countdown, dispatches step evaluation, and pushes
// completions into the progress repository and rewards out through a
// callback.
package mission

import (
	"errors"
	"fmt"
	"time"

	"github.com/cybercop-labs/cybercop/internal/catalog"
	"github.com/cybercop-labs/cybercop/internal/progress"
	"github.com/cybercop-labs/cybercop/internal/steps"
)

// ErrMissionNotFound marks a mission id absent from the catalog. The
// presentation layer shows this as a terminal load error, distinct from
// "still loading".
var ErrMissionNotFound = errors.New("mission: not found in catalog")

// ErrNotLoaded rejects operations before a successful Load.
var ErrNotLoaded = errors.New("mission: no mission loaded")

// Notifier receives fire-and-forget completion and reward messages. The
// runtime never depends on a return value.
type Notifier interface {
	Notify(title, message string)
}

// nopNotifier drops notifications.
type nopNotifier struct{}

func (nopNotifier) Notify(string, string) {}

// Config wires a Runtime to its collaborators. Catalog and Progress are
// required; the rest default to no-ops.
type Config struct {
	Catalog  *catalog.Catalog
	Progress *progress.Store

	// Reward is called with the shard amount when a step completes for the
	// first time.
	Reward func(shards int) error

	// CompleteMission is called once when the last step of a mission
	// completes, with the mission id.
	CompleteMission func(missionID int) error

	Notify Notifier

	// Now is the clock used for completion timestamps. Defaults to time.Now.
	Now func() time.Time
}

// Runtime is the transient state of one open mission. It is discarded when
// the mission view closes; everything durable lives in the progress and
// profile repositories.
type Runtime struct {
	cfg Config

	mission   *catalog.Mission
	completed []bool
	active    int
	remaining int
	budget    int
	started   bool
}

// New creates a runtime with nothing loaded.
func New(cfg Config) *Runtime {
	if cfg.Notify == nil {
		cfg.Notify = nopNotifier{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Runtime{cfg: cfg}
}

// Load opens a mission: fetches its definition, merges any persisted
// progress onto the local completed flags, and points the active index at
// the first incomplete step. When every step is already complete the active
// index rests on the last step.
func (r *Runtime) Load(missionID int) error {
	m, ok := r.cfg.Catalog.Mission(missionID)
	if !ok {
		return fmt.Errorf("%w: id %d", ErrMissionNotFound, missionID)
	}

	r.mission = m
	r.completed = make([]bool, len(m.Steps))
	r.active = 0
	r.remaining = 0
	r.budget = 0
	r.started = false

	if rec := r.cfg.Progress.Get(missionID); rec != nil {
		for i, s := range m.Steps {
			r.completed[i] = rec.HasStep(s.ID)
		}
	}

	r.active = r.firstIncomplete()
	return nil
}

// Start begins the countdown: the budget is the mission duration's leading
// integer in minutes, converted to seconds.
func (r *Runtime) Start() error {
	if r.mission == nil {
		return ErrNotLoaded
	}
	r.budget = r.mission.DurationMinutes() * 60
	r.remaining = r.budget
	r.started = true
	r.cfg.Notify.Notify("Mission Started", fmt.Sprintf("%s is now active!", r.mission.Title))
	return nil
}

// Tick advances the countdown by one second, flooring at zero. Reaching zero
// has no gameplay consequence: the countdown is cosmetic by design, and the
// presentation layer may surface Expired however it likes.
func (r *Runtime) Tick() {
	if r.started && r.remaining > 0 {
		r.remaining--
	}
}

// Submit evaluates the user's attempt against the active step. A false
// verdict is a normal retryable outcome. On a true verdict the runtime
// records the completion, grants the shard reward for first-time
// completions, and advances to the next step.
func (r *Runtime) Submit(in steps.Input) (bool, error) {
	if r.mission == nil {
		return false, ErrNotLoaded
	}
	if r.Completed() {
		return false, nil
	}

	step := r.mission.Steps[r.active]
	if r.completed[r.active] {
		return false, nil
	}
	if !steps.Evaluate(step, in) {
		return false, nil
	}

	shards := RewardShards(step.Points)
	_, wasNew, err := r.cfg.Progress.RecordStepCompletion(r.mission.ID, step.ID, step.Points, shards)
	if err != nil {
		return false, err
	}

	if wasNew && r.cfg.Reward != nil {
		if err := r.cfg.Reward(shards); err != nil {
			return false, fmt.Errorf("mission: reward grant failed: %w", err)
		}
	}

	r.completed[r.active] = true
	if r.active < len(r.mission.Steps)-1 {
		r.active++
	}

	if r.Completed() {
		if err := r.cfg.Progress.MarkCompleted(r.mission.ID, r.cfg.Now()); err != nil {
			return true, err
		}
		if r.cfg.CompleteMission != nil {
			if err := r.cfg.CompleteMission(r.mission.ID); err != nil {
				return true, err
			}
		}
		r.cfg.Notify.Notify("Mission Completed!",
			fmt.Sprintf("Congratulations! You earned %d points.", r.mission.Points))
	} else {
		r.cfg.Notify.Notify("Step Completed!",
			fmt.Sprintf("You earned %d points and %d shards!", step.Points, shards))
	}

	return true, nil
}

// Reset is the canonical mission reset: it clears the local step flags,
// active index, countdown, and started flag, AND deletes the persisted
// progress record, so runtime and durable state cannot drift apart. Shards
// already granted stay granted.
func (r *Runtime) Reset() error {
	if r.mission == nil {
		return ErrNotLoaded
	}
	for i := range r.completed {
		r.completed[i] = false
	}
	r.active = 0
	r.remaining = 0
	r.budget = 0
	r.started = false
	return r.cfg.Progress.Reset(r.mission.ID)
}

// Mission returns the loaded definition, or nil.
func (r *Runtime) Mission() *catalog.Mission {
	return r.mission
}

// ActiveIndex returns the index of the active step.
func (r *Runtime) ActiveIndex() int {
	return r.active
}

// ActiveStep returns the active step, or nil when nothing is loaded.
func (r *Runtime) ActiveStep() *catalog.Step {
	if r.mission == nil {
		return nil
	}
	return &r.mission.Steps[r.active]
}

// StepCompleted reports the local completed flag for a step index.
func (r *Runtime) StepCompleted(i int) bool {
	return i >= 0 && i < len(r.completed) && r.completed[i]
}

// Completed reports whether every step of the loaded mission is complete.
// This is derived from the step flags, never stored.
func (r *Runtime) Completed() bool {
	if r.mission == nil {
		return false
	}
	for _, done := range r.completed {
		if !done {
			return false
		}
	}
	return true
}

// Progress returns the completed fraction in [0, 1].
func (r *Runtime) Progress() float64 {
	if r.mission == nil || len(r.completed) == 0 {
		return 0
	}
	done := 0
	for _, c := range r.completed {
		if c {
			done++
		}
	}
	return float64(done) / float64(len(r.completed))
}

// Started reports whether the countdown has been started.
func (r *Runtime) Started() bool {
	return r.started
}

// Remaining returns the countdown seconds left.
func (r *Runtime) Remaining() int {
	return r.remaining
}

// Expired reports whether a started countdown has run out.
func (r *Runtime) Expired() bool {
	return r.started && r.budget > 0 && r.remaining == 0
}

// firstIncomplete returns the first incomplete step index, or the last index
// when all steps are done.
func (r *Runtime) firstIncomplete() int {
	for i, done := range r.completed {
		if !done {
			return i
		}
	}
	return len(r.completed) - 1
}
