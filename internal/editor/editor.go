// Package editor implements the goals editing state machine used by UI
// front-ends and the CLI. It holds a local draft of targets, merges server
// state over built-in defaults on load, and tracks the pending/error/
// success transitions around a save.
package editor

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/stafflens/goalboard/internal/kpi"
	"github.com/stafflens/goalboard/internal/models"
)

// State is the editor lifecycle state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateSaving
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateSaving:
		return "saving"
	default:
		return "unknown"
	}
}

// ErrSaveInFlight is returned when Submit is called while a save is
// already pending. The editor allows one outstanding save at a time.
var ErrSaveInFlight = errors.New("a save is already in flight")

// ErrNotLoaded is returned when the draft is touched before Load completes.
var ErrNotLoaded = errors.New("editor is not loaded")

// GoalsAPI is the slice of the API client the editor needs.
type GoalsAPI interface {
	FetchGoals(ctx context.Context) (models.GoalSet, error)
	SaveGoals(ctx context.Context, goals models.GoalSet) (models.GoalSet, error)
}

// Gauge is a derived per-goal progress view. Gauges are recomputed from the
// current draft and the actuals snapshot on every call, never stored.
type Gauge struct {
	Name    string
	Target  float64
	Current float64
	Percent float64
	OnTrack bool
}

// Editor is the goals editing state machine. It is not safe for concurrent
// use; drive it from a single goroutine the way a UI event loop would.
type Editor struct {
	api     GoalsAPI
	actuals models.GoalSet // separately-held snapshot, read-only

	state   State
	draft   models.GoalSet
	saved   bool
	saveErr string
}

// New creates an editor over the given API. The actuals snapshot feeds the
// derived gauge math; the editor never mutates it.
func New(api GoalsAPI, actuals models.GoalSet) *Editor {
	return &Editor{
		api:     api,
		actuals: actuals.Clone(),
		state:   StateIdle,
	}
}

// Load fetches the stored goals and seeds the draft: server values override
// the built-in defaults key by key, missing keys keep their default. A
// fetch failure is swallowed: the editor still lands in Loaded with
// defaults only, so a surface that must render always has values.
func (e *Editor) Load(ctx context.Context) {
	e.state = StateLoading

	stored, err := e.api.FetchGoals(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("Failed to fetch goals, using defaults")
		stored = models.GoalSet{}
	}

	e.draft = kpi.MergeDefaults(stored)
	e.saved = false
	e.saveErr = ""
	e.state = StateLoaded
}

// SetField applies a field edit to the local draft. Input is coerced the
// way the form does it: non-digit/non-dot characters stripped, unparsable
// input becomes zero. No network call. Clears any prior save outcome.
func (e *Editor) SetField(name, input string) error {
	if e.state != StateLoaded {
		return ErrNotLoaded
	}

	e.draft[name] = kpi.SanitizeNumber(input)
	e.saved = false
	e.saveErr = ""
	return nil
}

// Submit sends the full current draft. On success the saved flag is set and
// the draft is left as-is: it already reflects what was sent. On failure
// the draft stays intact for retry and the server's error message is
// recorded when present.
func (e *Editor) Submit(ctx context.Context) error {
	switch e.state {
	case StateSaving:
		return ErrSaveInFlight
	case StateLoaded:
		// ok
	default:
		return ErrNotLoaded
	}

	e.state = StateSaving
	e.saved = false
	e.saveErr = ""

	_, err := e.api.SaveGoals(ctx, e.draft.Clone())
	e.state = StateLoaded

	if err != nil {
		e.saveErr = err.Error()
		return err
	}

	e.saved = true
	return nil
}

// State returns the current lifecycle state.
func (e *Editor) State() State {
	return e.state
}

// Draft returns a copy of the current draft.
func (e *Editor) Draft() models.GoalSet {
	return e.draft.Clone()
}

// Saved reports whether the last submit succeeded and no edit has happened
// since.
func (e *Editor) Saved() bool {
	return e.saved
}

// SaveError returns the last save failure message, or "" if none.
func (e *Editor) SaveError() string {
	return e.saveErr
}

// Gauges derives percent-to-goal views for every goal in the draft,
// compared against the actuals snapshot.
func (e *Editor) Gauges() []Gauge {
	gauges := make([]Gauge, 0, len(e.draft))
	for name, target := range e.draft {
		current := e.actuals[name]
		percent := kpi.PercentToGoal(current, target)
		gauges = append(gauges, Gauge{
			Name:    name,
			Target:  target,
			Current: current,
			Percent: percent,
			OnTrack: kpi.OnTrack(percent),
		})
	}
	return gauges
}
