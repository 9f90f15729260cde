// README: Wizard session; drives the step flow and performs the single plan submission.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"packntrack/internal/trip"
)

var (
	ErrCityRequired      = errors.New("city is required")
	ErrInvalidTransition = errors.New("invalid wizard transition")
	ErrInvalidState      = errors.New("action not available at this step")
	ErrUnknownPref       = errors.New("unknown preference")
	ErrInvalidDays       = errors.New("unsupported trip duration")
	ErrSubmitInFlight    = errors.New("a trip is already being generated")
	ErrGenerateFailed    = errors.New("trip generation failed")
)

// Generator produces a plan for a submitted request.
type Generator interface {
	PlanTrip(ctx context.Context, req trip.TripRequest) (*trip.TripPlan, error)
}

// Session is one user's pass through the wizard. It is safe for concurrent
// use; the lock is never held across the Generator call.
type Session struct {
	mu    sync.Mutex
	gen   Generator
	state State
	sel   Selection
	plan  *trip.TripPlan
}

func NewSession(gen Generator) *Session {
	return &Session{
		gen:   gen,
		state: StateCityEntry,
		sel:   NewSelection(),
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// Plan returns the generated plan while in the result step, nil otherwise.
func (s *Session) Plan() *trip.TripPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan
}

// SetCity updates the city text. Only editable on the city step.
func (s *Session) SetCity(city string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateCityEntry {
		return ErrInvalidState
	}
	s.sel = s.sel.WithCity(city)
	return nil
}

// Advance leaves the city step. An empty city keeps the wizard where it is.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateCityEntry {
		return ErrInvalidState
	}
	if strings.TrimSpace(s.sel.City()) == "" {
		return ErrCityRequired
	}
	return s.transition(StatePrefsEntry)
}

func (s *Session) TogglePref(p string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePrefsEntry {
		return ErrInvalidState
	}
	if !isKnownPref(p) {
		return fmt.Errorf("%w: %q", ErrUnknownPref, p)
	}
	s.sel = s.sel.TogglePref(p)
	return nil
}

// Next leaves the preference step. Any number of preferences is fine.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePrefsEntry {
		return ErrInvalidState
	}
	return s.transition(StateDurationEntry)
}

func (s *Session) SelectDays(days int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateDurationEntry {
		return ErrInvalidState
	}
	if !trip.IsDayOption(days) {
		return fmt.Errorf("%w: %d", ErrInvalidDays, days)
	}
	s.sel = s.sel.WithDays(days)
	return nil
}

// Back steps from prefs to city or from duration to prefs.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StatePrefsEntry:
		return s.transition(StateCityEntry)
	case StateDurationEntry:
		return s.transition(StatePrefsEntry)
	default:
		return ErrInvalidTransition
	}
}

// Submit sends the selection to the Generator. On failure the wizard returns
// to the duration step with the selection intact.
func (s *Session) Submit(ctx context.Context) (*trip.TripPlan, error) {
	s.mu.Lock()
	if s.state == StateSubmitting {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if err := s.transition(StateSubmitting); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	req := s.sel.Request()
	s.mu.Unlock()

	plan, err := s.gen.PlanTrip(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		_ = s.transition(StateDurationEntry)
		return nil, fmt.Errorf("%w: %w", ErrGenerateFailed, err)
	}
	s.plan = plan
	_ = s.transition(StateResult)
	return plan, nil
}

// StartOver discards the plan and returns to an empty city step.
func (s *Session) StartOver() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateResult {
		return ErrInvalidState
	}
	if err := s.transition(StateCityEntry); err != nil {
		return err
	}
	s.plan = nil
	s.sel = NewSelection()
	return nil
}

// transition must be called with mu held.
func (s *Session) transition(to State) error {
	if !CanTransition(s.state, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.state, to)
	}
	s.state = to
	return nil
}

func isKnownPref(p string) bool {
	for _, x := range trip.Prefs {
		if x == p {
			return true
		}
	}
	return false
}
