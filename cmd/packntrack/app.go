package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"packntrack/internal/dashboard"
	"packntrack/internal/trip"
	"packntrack/internal/wizard"
)

// Alerts shown to the user.
const (
	msgEnterCity      = "Enter a city"
	msgGenerateFailed = "Error generating trip. Please try again."
)

var errQuit = errors.New("quit")

// App is the interactive wizard. One line of input is one action.
type App struct {
	In       io.Reader
	Out      io.Writer
	Planner  wizard.Generator
	HTMLPath string

	scanner *bufio.Scanner
	session *wizard.Session
	dash    *dashboard.Dashboard
}

// Run loops until the user quits or input ends.
func (a *App) Run(ctx context.Context) error {
	a.scanner = bufio.NewScanner(a.In)
	a.session = wizard.NewSession(a.Planner)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		var err error
		switch a.session.State() {
		case wizard.StateCityEntry:
			err = a.cityStep()
		case wizard.StatePrefsEntry:
			err = a.prefsStep()
		case wizard.StateDurationEntry:
			err = a.durationStep(ctx)
		case wizard.StateResult:
			err = a.resultStep()
		default:
			err = fmt.Errorf("unexpected wizard state %s", a.session.State())
		}
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) readLine(prompt string) (string, error) {
	fmt.Fprint(a.Out, prompt)
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	line := strings.TrimSpace(a.scanner.Text())
	if line == "q" || line == "quit" {
		return "", errQuit
	}
	return line, nil
}

func (a *App) cityStep() error {
	fmt.Fprintln(a.Out, "\nWhere to?")
	line, err := a.readLine("City (e.g. Tokyo, Paris): ")
	if err != nil {
		return err
	}
	if err := a.session.SetCity(line); err != nil {
		return err
	}
	if err := a.session.Advance(); err != nil {
		if errors.Is(err, wizard.ErrCityRequired) {
			fmt.Fprintln(a.Out, msgEnterCity)
			return nil
		}
		return err
	}
	return nil
}

func (a *App) prefsStep() error {
	sel := a.session.Selection()
	fmt.Fprintf(a.Out, "\nWhat do you like in %s?\n", sel.City())
	for i, p := range trip.Prefs {
		mark := " "
		if sel.HasPref(p) {
			mark = "x"
		}
		fmt.Fprintf(a.Out, "  [%s] %d. %s\n", mark, i+1, p)
	}
	line, err := a.readLine("Toggle a number, n = next, b = back: ")
	if err != nil {
		return err
	}
	switch line {
	case "n", "":
		return a.session.Next()
	case "b":
		return a.session.Back()
	}
	n, convErr := strconv.Atoi(line)
	if convErr != nil || n < 1 || n > len(trip.Prefs) {
		fmt.Fprintf(a.Out, "pick 1-%d\n", len(trip.Prefs))
		return nil
	}
	return a.session.TogglePref(trip.Prefs[n-1])
}

func (a *App) durationStep(ctx context.Context) error {
	sel := a.session.Selection()
	fmt.Fprintln(a.Out, "\nDuration")
	for _, d := range trip.DayOptions {
		mark := " "
		if sel.Days() == d {
			mark = "x"
		}
		fmt.Fprintf(a.Out, "  [%s] %d Days\n", mark, d)
	}
	line, err := a.readLine("Days, g = generate plan, b = back: ")
	if err != nil {
		return err
	}
	switch line {
	case "b":
		return a.session.Back()
	case "g", "":
		return a.generate(ctx)
	}
	n, convErr := strconv.Atoi(line)
	if convErr != nil {
		fmt.Fprintln(a.Out, "enter a number of days")
		return nil
	}
	if err := a.session.SelectDays(n); err != nil {
		if errors.Is(err, wizard.ErrInvalidDays) {
			fmt.Fprintln(a.Out, err)
			return nil
		}
		return err
	}
	return nil
}

func (a *App) generate(ctx context.Context) error {
	fmt.Fprintf(a.Out, "\nDesigning your trip...\nPack-n-Track is finding the best spots in %s\n", a.session.Selection().City())
	_, err := a.session.Submit(ctx)
	if errors.Is(err, wizard.ErrGenerateFailed) {
		fmt.Fprintln(a.Out, msgGenerateFailed)
		return nil
	}
	return err
}

func (a *App) resultStep() error {
	if a.dash == nil {
		a.dash = dashboard.New()
		if err := a.dash.Render(a.session.Plan()); err != nil {
			fmt.Fprintf(a.Out, "cannot show this plan: %v\n", err)
			a.dash = nil
			return a.session.StartOver()
		}
		fmt.Fprintln(a.Out)
		if err := a.dash.WriteText(a.Out); err != nil {
			return err
		}
		if a.HTMLPath != "" {
			if err := a.writeHTML(); err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "\nMap written to %s\n", a.HTMLPath)
		}
	}

	line, err := a.readLine("\nFocus an entry (e.g. 1.2), s = start over, q = quit: ")
	if err != nil {
		return err
	}
	if line == "s" {
		a.dash = nil
		return a.session.StartOver()
	}

	section, entry, ok := parseEntryRef(line)
	if !ok {
		fmt.Fprintln(a.Out, "use <day>.<entry>")
		return nil
	}
	f, err := a.dash.FocusEntry(section, entry)
	if err != nil {
		fmt.Fprintln(a.Out, err)
		return nil
	}
	fmt.Fprintf(a.Out, "Flying to %.5f, %.5f (zoom %d, %.1fs)\n", f.Target.Lat, f.Target.Lon, f.Zoom, f.Duration.Seconds())
	return nil
}

func (a *App) writeHTML() error {
	f, err := os.Create(a.HTMLPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", a.HTMLPath, err)
	}
	if err := a.dash.WriteHTML(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", a.HTMLPath, err)
	}
	return f.Close()
}

// parseEntryRef turns "2.3" into zero-based (1, 2).
func parseEntryRef(s string) (int, int, bool) {
	day, entry, found := strings.Cut(s, ".")
	if !found {
		return 0, 0, false
	}
	d, err1 := strconv.Atoi(day)
	e, err2 := strconv.Atoi(entry)
	if err1 != nil || err2 != nil || d < 1 || e < 1 {
		return 0, 0, false
	}
	return d - 1, e - 1, true
}
