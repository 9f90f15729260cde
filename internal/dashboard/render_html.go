package dashboard

import (
	_ "embed"
	"html/template"
	"io"
)

//go:embed dashboard.html.tmpl
var pageTemplate string

var page = template.Must(template.New("dashboard").Parse(pageTemplate))

type pageData struct {
	Title           string
	Sections        []Section
	Markers         []Marker
	Center          LatLon
	InitialZoom     int
	FocusZoom       int
	FocusSeconds    float64
	TileURL         string
	TileAttribution string
}

// WriteHTML renders a standalone Leaflet page: the itinerary sidebar on the
// left, the marker map on the right, click-to-fly on every entry.
func (d *Dashboard) WriteHTML(w io.Writer) error {
	d.mu.Lock()
	if d.plan == nil {
		d.mu.Unlock()
		return ErrNoPlan
	}
	data := pageData{
		Title:           d.plan.TripName,
		Sections:        append([]Section(nil), d.sidebar...),
		Markers:         append([]Marker(nil), d.markers...),
		Center:          LatLon{Lat: d.plan.CenterLat, Lon: d.plan.CenterLon},
		InitialZoom:     InitialZoom,
		FocusZoom:       FocusZoom,
		FocusSeconds:    FocusDuration.Seconds(),
		TileURL:         TileURL,
		TileAttribution: TileAttribution,
	}
	d.mu.Unlock()

	return page.Execute(w, data)
}
