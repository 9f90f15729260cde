package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"packntrack/internal/trip"
)

type stubGenerator struct {
	mu    sync.Mutex
	plan  *trip.TripPlan
	err   error
	reqs  []trip.TripRequest
	block chan struct{}
}

func (g *stubGenerator) PlanTrip(ctx context.Context, req trip.TripRequest) (*trip.TripPlan, error) {
	g.mu.Lock()
	g.reqs = append(g.reqs, req)
	block := g.block
	g.mu.Unlock()
	if block != nil {
		<-block
	}
	return g.plan, g.err
}

func toDuration(t *testing.T, s *Session, city string) {
	t.Helper()
	require.NoError(t, s.SetCity(city))
	require.NoError(t, s.Advance())
	require.NoError(t, s.Next())
	require.Equal(t, StateDurationEntry, s.State())
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StateCityEntry, StatePrefsEntry))
	assert.True(t, CanTransition(StateSubmitting, StateDurationEntry))
	assert.True(t, CanTransition(StateResult, StateCityEntry))
	assert.False(t, CanTransition(StateCityEntry, StateSubmitting))
	assert.False(t, CanTransition(StateSubmitting, StatePrefsEntry))
	assert.False(t, CanTransition(State("bogus"), StateCityEntry))
}

func TestAdvance_EmptyCityStays(t *testing.T) {
	s := NewSession(&stubGenerator{})

	assert.ErrorIs(t, s.Advance(), ErrCityRequired)
	assert.Equal(t, StateCityEntry, s.State())

	require.NoError(t, s.SetCity("   "))
	assert.ErrorIs(t, s.Advance(), ErrCityRequired)
	assert.Equal(t, StateCityEntry, s.State())

	require.NoError(t, s.SetCity("Kyoto"))
	require.NoError(t, s.Advance())
	assert.Equal(t, StatePrefsEntry, s.State())
}

func TestTogglePref_TwiceRestores(t *testing.T) {
	s := NewSession(&stubGenerator{})
	require.NoError(t, s.SetCity("Kyoto"))
	require.NoError(t, s.Advance())

	require.NoError(t, s.TogglePref("🌿 Nature"))
	before := s.Selection().Prefs()

	require.NoError(t, s.TogglePref("🍕 Foodie"))
	assert.True(t, s.Selection().HasPref("🍕 Foodie"))
	require.NoError(t, s.TogglePref("🍕 Foodie"))

	assert.ElementsMatch(t, before, s.Selection().Prefs())
	assert.False(t, s.Selection().HasPref("🍕 Foodie"))
}

func TestTogglePref_RejectsUnknownAndWrongStep(t *testing.T) {
	s := NewSession(&stubGenerator{})
	assert.ErrorIs(t, s.TogglePref("🍕 Foodie"), ErrInvalidState)

	require.NoError(t, s.SetCity("Kyoto"))
	require.NoError(t, s.Advance())
	assert.ErrorIs(t, s.TogglePref("Skydiving"), ErrUnknownPref)
	assert.Empty(t, s.Selection().Prefs())
}

func TestSelection_IsAValue(t *testing.T) {
	a := NewSelection().TogglePref("🎨 Arts")
	b := a.TogglePref("🍸 Nightlife")
	c := b.WithCity("Paris").WithDays(5)

	assert.Equal(t, []string{"🎨 Arts"}, a.Prefs())
	assert.Equal(t, []string{"🎨 Arts", "🍸 Nightlife"}, b.Prefs())
	assert.Equal(t, "", b.City())
	assert.Equal(t, trip.DefaultDays, b.Days())
	assert.Equal(t, trip.TripRequest{City: "Paris", Prefs: []string{"🎨 Arts", "🍸 Nightlife"}, Days: 5}, c.Request())

	p := c.Prefs()
	p[0] = "mutated"
	assert.Equal(t, "🎨 Arts", c.Prefs()[0])
}

func TestSelectDays(t *testing.T) {
	s := NewSession(&stubGenerator{})
	toDuration(t, s, "Kyoto")

	assert.Equal(t, 3, s.Selection().Days())
	assert.ErrorIs(t, s.SelectDays(6), ErrInvalidDays)
	require.NoError(t, s.SelectDays(7))
	assert.Equal(t, 7, s.Selection().Days())
}

func TestBack(t *testing.T) {
	s := NewSession(&stubGenerator{})
	assert.ErrorIs(t, s.Back(), ErrInvalidTransition)

	toDuration(t, s, "Kyoto")
	require.NoError(t, s.Back())
	assert.Equal(t, StatePrefsEntry, s.State())
	require.NoError(t, s.Back())
	assert.Equal(t, StateCityEntry, s.State())
	assert.Equal(t, "Kyoto", s.Selection().City())
}

func TestSubmit_Success(t *testing.T) {
	plan := &trip.TripPlan{TripName: "Kyoto Eats"}
	g := &stubGenerator{plan: plan}
	s := NewSession(g)
	toDuration(t, s, " Kyoto ")
	require.NoError(t, s.SelectDays(2))

	got, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Same(t, plan, got)
	assert.Equal(t, StateResult, s.State())
	assert.Same(t, plan, s.Plan())
	assert.Equal(t, []trip.TripRequest{{City: "Kyoto", Prefs: []string{}, Days: 2}}, g.reqs)
}

func TestSubmit_FailureReturnsToDuration(t *testing.T) {
	g := &stubGenerator{err: errors.New("connection refused")}
	s := NewSession(g)
	toDuration(t, s, "Kyoto")
	require.NoError(t, s.SelectDays(5))

	_, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, ErrGenerateFailed)
	assert.EqualError(t, err, "trip generation failed: connection refused")
	assert.Equal(t, StateDurationEntry, s.State())
	assert.Equal(t, 5, s.Selection().Days())
	assert.Equal(t, "Kyoto", s.Selection().City())
	assert.Nil(t, s.Plan())
}

func TestSubmit_OnlyFromDuration(t *testing.T) {
	s := NewSession(&stubGenerator{})
	_, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StateCityEntry, s.State())
}

func TestSubmit_SingleInFlight(t *testing.T) {
	g := &stubGenerator{plan: &trip.TripPlan{}, block: make(chan struct{})}
	s := NewSession(g)
	toDuration(t, s, "Kyoto")

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool { return s.State() == StateSubmitting }, time.Second, time.Millisecond)
	_, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInFlight)
	assert.ErrorIs(t, s.Back(), ErrInvalidTransition)

	close(g.block)
	require.NoError(t, <-done)
	assert.Equal(t, StateResult, s.State())
	assert.Len(t, g.reqs, 1)
}

func TestStartOver(t *testing.T) {
	s := NewSession(&stubGenerator{plan: &trip.TripPlan{TripName: "x"}})
	assert.ErrorIs(t, s.StartOver(), ErrInvalidState)

	toDuration(t, s, "Kyoto")
	_, err := s.Submit(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.StartOver())
	assert.Equal(t, StateCityEntry, s.State())
	assert.Nil(t, s.Plan())
	assert.Equal(t, NewSelection(), s.Selection())
}
