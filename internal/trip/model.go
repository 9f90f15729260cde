// README: Trip request/plan types plus the fixed preference and duration options.
package trip

// TripRequest is the wizard's selection as posted to /api/plan-trip.
// Absent fields decode to zero values and flow into the prompt unchanged.
type TripRequest struct {
	City  string   `json:"city"`
	Prefs []string `json:"prefs"`
	Days  int      `json:"days"`
}

// TripPlan is produced by the model. The proxy relays it as raw JSON; this
// typed form is used by the client and the dashboard.
type TripPlan struct {
	TripName  string    `json:"trip_name"`
	CenterLat float64   `json:"center_lat"`
	CenterLon float64   `json:"center_lon"`
	Days      []DayPlan `json:"days"`
}

type DayPlan struct {
	Day        int        `json:"day"`
	Activities []Activity `json:"activities"`
}

type Activity struct {
	Name string `json:"name"`
	// Coords is [lat, lon]. Anything other than two values is unusable on a map.
	Coords []float64 `json:"coords"`
	Time   string    `json:"time"`
	Desc   string    `json:"desc"`
}

// HasCoords reports whether the activity can be placed on a map.
func (a Activity) HasCoords() bool {
	return len(a.Coords) == 2
}

// Prefs lists the selectable preference tags, in display order.
var Prefs = []string{
	"📍 Must Visits",
	"🍕 Foodie",
	"💎 Hidden Gems",
	"🌿 Nature",
	"🏛️ History",
	"🛍️ Shopping",
	"🎨 Arts",
	"🍸 Nightlife",
}

// DayOptions lists the selectable trip durations.
var DayOptions = []int{1, 2, 3, 4, 5, 7}

const DefaultDays = 3

// IsDayOption reports whether n is one of DayOptions.
func IsDayOption(n int) bool {
	for _, d := range DayOptions {
		if d == n {
			return true
		}
	}
	return false
}
