// Package registry owns the catalog of goal definitions. It is a pure data
// store: registering or removing a definition never triggers a recompute;
// callers publish the matching goal event afterwards, keeping the progress
// engine the sole recompute authority.
package registry

import (
	"sync"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/domain/entity"
	domainerror "github.com/life-planner/backend/internal/domain/error"
)

// GoalDefinitionRegistry holds registered goal definitions keyed by id.
type GoalDefinitionRegistry struct {
	mu   sync.RWMutex
	defs map[uuid.UUID]*entity.GoalDefinition
}

// New creates an empty registry.
func New() *GoalDefinitionRegistry {
	return &GoalDefinitionRegistry{
		defs: make(map[uuid.UUID]*entity.GoalDefinition),
	}
}

// Register validates and upserts a definition by its id. The registry keeps
// its own copy, so later mutations of the caller's definition change nothing
// until it is registered again.
func (r *GoalDefinitionRegistry) Register(def *entity.GoalDefinition) error {
	if err := validate(def); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[def.ID] = copyDefinition(def)
	return nil
}

// Get retrieves a copy of the definition, or nil when none is registered.
func (r *GoalDefinitionRegistry) Get(id uuid.UUID) *entity.GoalDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[id]
	if !ok {
		return nil
	}
	return copyDefinition(def)
}

// Remove deletes a definition. Removing an unknown id is a no-op.
func (r *GoalDefinitionRegistry) Remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.defs, id)
}

// List returns copies of all registered definitions in unspecified order.
func (r *GoalDefinitionRegistry) List() []*entity.GoalDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]*entity.GoalDefinition, 0, len(r.defs))
	for _, d := range r.defs {
		defs = append(defs, copyDefinition(d))
	}
	return defs
}

// FindByBudget returns definitions whose money tracks draw from the budget.
func (r *GoalDefinitionRegistry) FindByBudget(budgetID uuid.UUID) []*entity.GoalDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var defs []*entity.GoalDefinition
	for _, d := range r.defs {
		if d.LinkedBudgetID != nil && *d.LinkedBudgetID == budgetID {
			defs = append(defs, copyDefinition(d))
		}
	}
	return defs
}

// FindByHabit returns definitions whose habit tracks draw from the habit.
func (r *GoalDefinitionRegistry) FindByHabit(habitID uuid.UUID) []*entity.GoalDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var defs []*entity.GoalDefinition
	for _, d := range r.defs {
		if d.LinkedHabitID != nil && *d.LinkedHabitID == habitID {
			defs = append(defs, copyDefinition(d))
		}
	}
	return defs
}

// copyDefinition detaches a definition from the caller's pointer, so stored
// entries can only change through Register.
func copyDefinition(def *entity.GoalDefinition) *entity.GoalDefinition {
	out := *def
	out.Tracks = append([]entity.Track(nil), def.Tracks...)
	if def.Deadline != nil {
		d := *def.Deadline
		out.Deadline = &d
	}
	if def.LinkedBudgetID != nil {
		id := *def.LinkedBudgetID
		out.LinkedBudgetID = &id
	}
	if def.LinkedHabitID != nil {
		id := *def.LinkedHabitID
		out.LinkedHabitID = &id
	}
	return &out
}

func validate(def *entity.GoalDefinition) error {
	if len(def.Tracks) == 0 {
		return domainerror.NewDefinitionError(
			domainerror.ErrCodeEmptyTracks,
			"definition must declare at least one track",
			domainerror.ErrEmptyTracks,
		)
	}

	if def.Target.Equal(def.Baseline) {
		return domainerror.NewDefinitionError(
			domainerror.ErrCodeTargetEqualsBaseline,
			"target must differ from baseline",
			domainerror.ErrTargetEqualsBaseline,
		)
	}

	if def.PacingWindowDays <= 0 {
		return domainerror.NewDefinitionError(
			domainerror.ErrCodeInvalidPacingWindow,
			"pacing window must be a positive number of days",
			domainerror.ErrInvalidPacingWindow,
		)
	}

	seen := make(map[string]struct{}, len(def.Tracks))
	kinds := make(map[entity.TrackKind]struct{})
	for _, t := range def.Tracks {
		if _, dup := seen[t.ID]; dup {
			return domainerror.NewDefinitionError(
				domainerror.ErrCodeDuplicateTrackID,
				"track id '"+t.ID+"' appears more than once",
				domainerror.ErrDuplicateTrackID,
			)
		}
		seen[t.ID] = struct{}{}
		kinds[t.Kind] = struct{}{}
	}

	// A definition describes one coherent quantity. Mixed-kind track sets
	// have no defined aggregation and are rejected outright.
	if len(kinds) > 1 {
		return domainerror.NewDefinitionError(
			domainerror.ErrCodeMixedTrackKinds,
			"tracks of different kinds cannot be combined in one definition",
			domainerror.ErrMixedTrackKinds,
		)
	}

	if def.HasMoneyTrack() && def.Currency == "" {
		return domainerror.NewDefinitionError(
			domainerror.ErrCodeMissingCurrency,
			"definitions with money tracks must declare a currency",
			domainerror.ErrMissingCurrency,
		)
	}

	return nil
}
