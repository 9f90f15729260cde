// README: Dashboard view model; sidebar sections, day-coloured markers and map camera for a trip plan.
package dashboard

import (
	"errors"
	"fmt"
	"html"
	"sync"
	"time"

	"packntrack/internal/trip"
)

var (
	ErrNoPlan        = errors.New("no plan rendered")
	ErrMissingCoords = errors.New("activity has no usable coords")
	ErrNoSuchEntry   = errors.New("no such itinerary entry")
)

type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Entry struct {
	Time   string
	Name   string
	Desc   string
	Coords LatLon
	// LegKm is the straight-line distance from the previous entry of the
	// same day, zero for the first.
	LegKm float64
}

// Section is one day of the sidebar.
type Section struct {
	Day     int
	Label   string
	Color   string
	Entries []Entry
}

type Marker struct {
	Position LatLon `json:"position"`
	Color    string `json:"color"`
	// Badge is the day number shown on the pin.
	Badge int    `json:"badge"`
	Popup string `json:"popup"`
}

// Camera is where the map is looking.
type Camera struct {
	Center LatLon
	Zoom   int
}

// Flight is an animated camera move started by Focus.
type Flight struct {
	Target   LatLon
	Zoom     int
	Duration time.Duration
}

// Dashboard is one mounted dashboard. The map is initialised by the first
// Render and kept for the life of the instance; later renders add markers on
// top. Starting over means dropping the instance and mounting a new one.
type Dashboard struct {
	mu      sync.Mutex
	mapInit bool
	camera  Camera
	markers []Marker
	plan    *trip.TripPlan
	sidebar []Section
}

func New() *Dashboard {
	return &Dashboard{}
}

// Render shows plan. Nothing changes if any activity cannot be placed.
func (d *Dashboard) Render(plan *trip.TripPlan) error {
	if plan == nil {
		return ErrNoPlan
	}
	for _, day := range plan.Days {
		for _, act := range day.Activities {
			if !act.HasCoords() || !inRange(LatLon{Lat: act.Coords[0], Lon: act.Coords[1]}) {
				return fmt.Errorf("%w: day %d %q", ErrMissingCoords, day.Day, act.Name)
			}
		}
	}

	sidebar := make([]Section, 0, len(plan.Days))
	var markers []Marker
	for i, day := range plan.Days {
		color := DayColor(i)
		sec := Section{
			Day:     day.Day,
			Label:   fmt.Sprintf("Day %d", day.Day),
			Color:   color,
			Entries: make([]Entry, 0, len(day.Activities)),
		}
		for j, act := range day.Activities {
			pos := LatLon{Lat: act.Coords[0], Lon: act.Coords[1]}
			e := Entry{Time: act.Time, Name: act.Name, Desc: act.Desc, Coords: pos}
			if j > 0 {
				e.LegKm = haversineKm(sec.Entries[j-1].Coords, pos)
			}
			sec.Entries = append(sec.Entries, e)
			markers = append(markers, Marker{
				Position: pos,
				Color:    color,
				Badge:    day.Day,
				Popup:    popupHTML(act.Name, day.Day, act.Time, color),
			})
		}
		sidebar = append(sidebar, sec)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.mapInit {
		d.camera = Camera{Center: LatLon{Lat: plan.CenterLat, Lon: plan.CenterLon}, Zoom: InitialZoom}
		d.mapInit = true
	}
	d.markers = append(d.markers, markers...)
	d.plan = plan
	d.sidebar = sidebar
	return nil
}

// popupHTML shows the name over "day - time" in the day's colour.
func popupHTML(name string, day int, at, color string) string {
	return fmt.Sprintf(`<b>%s</b><br><span style="color:%s">%d - %s</span>`,
		html.EscapeString(name), html.EscapeString(color), day, html.EscapeString(at))
}

// Focus flies the camera to coords.
func (d *Dashboard) Focus(coords LatLon) (Flight, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.mapInit {
		return Flight{}, ErrNoPlan
	}
	d.camera = Camera{Center: coords, Zoom: FocusZoom}
	return Flight{Target: coords, Zoom: FocusZoom, Duration: FocusDuration}, nil
}

// FocusEntry focuses the entry-th activity of the section at position section.
func (d *Dashboard) FocusEntry(section, entry int) (Flight, error) {
	d.mu.Lock()
	if section < 0 || section >= len(d.sidebar) || entry < 0 || entry >= len(d.sidebar[section].Entries) {
		d.mu.Unlock()
		return Flight{}, fmt.Errorf("%w: section %d entry %d", ErrNoSuchEntry, section, entry)
	}
	coords := d.sidebar[section].Entries[entry].Coords
	d.mu.Unlock()
	return d.Focus(coords)
}

func (d *Dashboard) Title() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.plan == nil {
		return ""
	}
	return d.plan.TripName
}

func (d *Dashboard) Sidebar() []Section {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Section(nil), d.sidebar...)
}

// Markers returns every marker added since the map was initialised.
func (d *Dashboard) Markers() []Marker {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Marker(nil), d.markers...)
}

func (d *Dashboard) Camera() Camera {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.camera
}
