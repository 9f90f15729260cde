package dashboard

import (
	"fmt"
	"io"
	"strings"
)

// WriteText prints the sidebar for a terminal. Entries are numbered
// "<section>.<entry>" so they can be passed back to FocusEntry.
func (d *Dashboard) WriteText(w io.Writer) error {
	title := d.Title()
	sidebar := d.Sidebar()
	if title == "" && len(sidebar) == 0 {
		return ErrNoPlan
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", title, strings.Repeat("=", len([]rune(title))))
	for i, sec := range sidebar {
		fmt.Fprintf(&b, "\n%s  (%s)\n", sec.Label, sec.Color)
		for j, e := range sec.Entries {
			fmt.Fprintf(&b, "  %d.%d  %-8s %s", i+1, j+1, e.Time, e.Name)
			if j > 0 {
				fmt.Fprintf(&b, "  (+%.1f km)", e.LegKm)
			}
			b.WriteByte('\n')
			if e.Desc != "" {
				fmt.Fprintf(&b, "            %s\n", e.Desc)
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
