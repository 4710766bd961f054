package services

import (
	"context"
	"sync"

	"github.com/matchday-lens/core/pkg/models"
)

// ViewState is one immutable snapshot of everything a match or league view
// renders from. Merges never mutate a snapshot in place; they produce a new
// one, so a reader holding an old snapshot is always safe.
type ViewState struct {
	Hero      models.LeagueEntity
	LogoCache map[string]string
	Seasons   []string
	Fixtures  []models.CanonicalFixture
	Standings []models.CanonicalStandingRow
}

// ViewSession owns the state of one active view. Fetches record the session
// generation when they are issued; by the time a slow response lands the
// user may have switched to another match, and applying it would show data
// for the wrong entity. Apply discards any result whose generation is stale.
type ViewSession struct {
	mu         sync.Mutex
	generation uint64
	state      ViewState

	ctx    context.Context
	cancel context.CancelFunc
}

// NewViewSession starts a session scoped to the parent context.
func NewViewSession(parent context.Context) *ViewSession {
	ctx, cancel := context.WithCancel(parent)
	return &ViewSession{ctx: ctx, cancel: cancel}
}

// Context returns the session's liveness context. Fetches issued for this
// session should pass it down so teardown cancels them in flight.
func (s *ViewSession) Context() context.Context {
	return s.ctx
}

// Generation returns the token a fetch must present back to Apply.
func (s *ViewSession) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// State returns the current snapshot.
func (s *ViewSession) State() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Switch moves the session to a new target entity: it bumps the generation
// so every in-flight fetch settles as stale, and resets the state.
func (s *ViewSession) Switch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.state = ViewState{}
	return s.generation
}

// Apply merges a fetched update into the session state, unless the update
// was issued under an older generation or the session is closed. It reports
// whether the update was applied.
func (s *ViewSession) Apply(gen uint64, update func(ViewState) ViewState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	select {
	case <-s.ctx.Done():
		return false
	default:
	}
	s.state = update(s.state)
	return true
}

// ApplyHero merges hero info under the monotonic merge rules.
func (s *ViewSession) ApplyHero(gen uint64, patch models.LeagueEntity) bool {
	return s.Apply(gen, func(st ViewState) ViewState {
		st.Hero = MergeHeroInfo(st.Hero, patch)
		return st
	})
}

// ApplyLogos merges logo updates; the snapshot map is only replaced when
// the merge actually changed something.
func (s *ViewSession) ApplyLogos(gen uint64, updates map[string]any, overrideExisting bool) bool {
	return s.Apply(gen, func(st ViewState) ViewState {
		st.LogoCache = MergeLogoCache(st.LogoCache, updates, overrideExisting)
		return st
	})
}

// Close tears the session down. Subsequent Apply calls are no-ops.
func (s *ViewSession) Close() {
	s.cancel()
}
