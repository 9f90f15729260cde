// README: Wizard steps and the allowed step transitions.
package wizard

type State string

const (
	StateCityEntry     State = "city-entry"
	StatePrefsEntry    State = "prefs-entry"
	StateDurationEntry State = "duration-entry"
	StateSubmitting    State = "submitting"
	StateResult        State = "result"
)

// AllowedTransitions represents the wizard flow (diagram) as code.
var AllowedTransitions = map[State][]State{
	StateCityEntry:     {StatePrefsEntry},
	StatePrefsEntry:    {StateDurationEntry, StateCityEntry},
	StateDurationEntry: {StateSubmitting, StatePrefsEntry},
	StateSubmitting:    {StateResult, StateDurationEntry},
	StateResult:        {StateCityEntry},
}

func CanTransition(from, to State) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
