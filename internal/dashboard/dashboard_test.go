package dashboard

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"packntrack/internal/trip"
)

func kyoto() *trip.TripPlan {
	return &trip.TripPlan{
		TripName:  "Kyoto Eats",
		CenterLat: 35.0,
		CenterLon: 135.8,
		Days: []trip.DayPlan{{
			Day: 1,
			Activities: []trip.Activity{
				{Name: "Nishiki Market", Coords: []float64{35.005, 135.764}, Time: "10AM", Desc: "Street food"},
			},
		}},
	}
}

func longTrip(days int) *trip.TripPlan {
	p := &trip.TripPlan{TripName: "Long", CenterLat: 1, CenterLon: 2}
	for i := 1; i <= days; i++ {
		p.Days = append(p.Days, trip.DayPlan{Day: i, Activities: []trip.Activity{
			{Name: "A", Coords: []float64{float64(i), float64(i)}, Time: "9AM"},
		}})
	}
	return p
}

func TestRender_Kyoto(t *testing.T) {
	d := New()
	require.NoError(t, d.Render(kyoto()))

	sidebar := d.Sidebar()
	require.Len(t, sidebar, 1)
	assert.Equal(t, "Day 1", sidebar[0].Label)
	assert.Equal(t, "#000000", sidebar[0].Color)
	require.Len(t, sidebar[0].Entries, 1)
	assert.Equal(t, "Nishiki Market", sidebar[0].Entries[0].Name)

	markers := d.Markers()
	require.Len(t, markers, 1)
	assert.Equal(t, LatLon{Lat: 35.005, Lon: 135.764}, markers[0].Position)
	assert.Equal(t, 1, markers[0].Badge)
	assert.Equal(t, `<b>Nishiki Market</b><br><span style="color:#000000">1 - 10AM</span>`, markers[0].Popup)

	assert.Equal(t, Camera{Center: LatLon{Lat: 35.0, Lon: 135.8}, Zoom: InitialZoom}, d.Camera())
}

func TestDayColor_Wraps(t *testing.T) {
	d := New()
	require.NoError(t, d.Render(longTrip(9)))

	sidebar := d.Sidebar()
	require.Len(t, sidebar, 9)
	for i, sec := range sidebar {
		assert.Equal(t, Palette[i%len(Palette)], sec.Color)
	}
	assert.Equal(t, "#000000", sidebar[7].Color)
	assert.Equal(t, "#F97316", sidebar[8].Color)
	assert.Equal(t, DayColor(7), DayColor(0))
}

func TestRender_MissingCoordsLeavesViewUntouched(t *testing.T) {
	d := New()
	bad := kyoto()
	bad.Days[0].Activities = append(bad.Days[0].Activities, trip.Activity{Name: "Ghost"})

	err := d.Render(bad)
	assert.ErrorIs(t, err, ErrMissingCoords)
	assert.Empty(t, d.Markers())
	assert.Empty(t, d.Sidebar())

	_, err = d.Focus(LatLon{})
	assert.ErrorIs(t, err, ErrNoPlan)
}

func TestRender_MapInitialisedOnce(t *testing.T) {
	d := New()
	require.NoError(t, d.Render(kyoto()))

	other := longTrip(2)
	require.NoError(t, d.Render(other))

	assert.Equal(t, LatLon{Lat: 35.0, Lon: 135.8}, d.Camera().Center)
	assert.Len(t, d.Markers(), 3)
	assert.Equal(t, "Long", d.Title())
	assert.Len(t, d.Sidebar(), 2)

	fresh := New()
	require.NoError(t, fresh.Render(other))
	assert.Equal(t, LatLon{Lat: 1, Lon: 2}, fresh.Camera().Center)
	assert.Len(t, fresh.Markers(), 2)
}

func TestFocusEntry(t *testing.T) {
	d := New()
	require.NoError(t, d.Render(kyoto()))

	f, err := d.FocusEntry(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Flight{Target: LatLon{Lat: 35.005, Lon: 135.764}, Zoom: 16, Duration: FocusDuration}, f)
	assert.Equal(t, 1.5, f.Duration.Seconds())
	assert.Equal(t, Camera{Center: f.Target, Zoom: FocusZoom}, d.Camera())

	_, err = d.FocusEntry(0, 1)
	assert.ErrorIs(t, err, ErrNoSuchEntry)
	_, err = d.FocusEntry(-1, 0)
	assert.ErrorIs(t, err, ErrNoSuchEntry)
}

func TestPopupEscapesMarkup(t *testing.T) {
	assert.Equal(t, `<b>A &amp; B</b><br><span style="color:#F97316">2 - &lt;noon&gt;</span>`, popupHTML("A & B", 2, "<noon>", "#F97316"))
}

func TestWriteText(t *testing.T) {
	d := New()
	var buf bytes.Buffer
	assert.ErrorIs(t, d.WriteText(&buf), ErrNoPlan)

	require.NoError(t, d.Render(kyoto()))
	require.NoError(t, d.WriteText(&buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Kyoto Eats\n"))
	assert.Contains(t, out, "Day 1  (#000000)")
	assert.Contains(t, out, "1.1  10AM     Nishiki Market")
	assert.Contains(t, out, "Street food")
}

func TestWriteHTML(t *testing.T) {
	d := New()
	var buf bytes.Buffer
	assert.ErrorIs(t, d.WriteHTML(&buf), ErrNoPlan)

	plan := kyoto()
	plan.TripName = "Kyoto <Eats>"
	require.NoError(t, d.Render(plan))
	require.NoError(t, d.WriteHTML(&buf))

	out := buf.String()
	assert.Contains(t, out, "Kyoto &lt;Eats&gt;")
	assert.NotContains(t, out, "Kyoto <Eats>")
	assert.Contains(t, out, "leaflet")
	assert.Contains(t, out, "Day 1")
	assert.Contains(t, out, "Nishiki Market")
	assert.Contains(t, out, `data-lat="35.005"`)
	assert.Contains(t, out, "map.flyTo(")
	assert.Contains(t, out, "basemaps.cartocdn.com")
}

func TestRender_LegDistances(t *testing.T) {
	p := kyoto()
	p.Days[0].Activities = append(p.Days[0].Activities,
		trip.Activity{Name: "Fushimi Inari", Coords: []float64{34.9671, 135.7727}, Time: "2PM"})

	d := New()
	require.NoError(t, d.Render(p))

	entries := d.Sidebar()[0].Entries
	require.Len(t, entries, 2)
	assert.Zero(t, entries[0].LegKm)
	assert.InDelta(t, 4.3, entries[1].LegKm, 0.5)

	var buf bytes.Buffer
	require.NoError(t, d.WriteText(&buf))
	assert.Contains(t, buf.String(), "Fushimi Inari  (+")
}

func TestRender_RejectsOutOfRangeCoords(t *testing.T) {
	p := kyoto()
	p.Days[0].Activities[0].Coords = []float64{135.764, 35.005}

	err := New().Render(p)
	assert.ErrorIs(t, err, ErrMissingCoords)
}

func TestMarkerPopupsUseDayColour(t *testing.T) {
	d := New()
	require.NoError(t, d.Render(longTrip(3)))

	for i, m := range d.Markers() {
		assert.Contains(t, m.Popup, `<span style="color:`+DayColor(i)+`">`)
		assert.Equal(t, DayColor(i), m.Color)
	}
}
