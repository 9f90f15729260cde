package dashboard

import "time"

// Palette colours days by position, wrapping when a plan has more days.
var Palette = []string{
	"#000000",
	"#F97316",
	"#3B82F6",
	"#10B981",
	"#8B5CF6",
	"#EC4899",
	"#EAB308",
}

// DayColor returns the colour for the day at position index (0-based).
func DayColor(index int) string {
	n := len(Palette)
	return Palette[((index%n)+n)%n]
}

const (
	InitialZoom   = 13
	FocusZoom     = 16
	FocusDuration = 1500 * time.Millisecond

	TileURL         = "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png"
	TileAttribution = "&copy; CARTO"
)
