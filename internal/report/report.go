// Package report renders monthly visibility reports from window records,
// grouped by local day, in plain text and email-friendly HTML.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/iss-horizon/horizon/internal/predict"
)

// MonthRange is a timezone-aware half-open local month [Start, End).
type MonthRange struct {
	Start time.Time
	End   time.Time
}

// MonthRangeFor returns the local boundaries of the given calendar month.
func MonthRangeFor(tz *time.Location, year, month int) (MonthRange, error) {
	if month < 1 || month > 12 {
		return MonthRange{}, fmt.Errorf("month must be in 1..12, got %d", month)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, tz)
	return MonthRange{Start: start, End: start.AddDate(0, 1, 0)}, nil
}

// NextMonth returns the calendar month after the one containing now.
func NextMonth(now time.Time) (year, month int) {
	next := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	return next.Year(), int(next.Month())
}

// MonthLabel formats a year/month pair as "2026-09".
func MonthLabel(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// StarsText renders a rating as a fixed-width five-star string.
func StarsText(stars int) (string, error) {
	if stars < 1 || stars > 5 {
		return "", fmt.Errorf("stars must be in 1..5, got %d", stars)
	}
	return strings.Repeat("★", stars) + strings.Repeat("☆", 5-stars), nil
}

// FormatDuration renders a duration as compact mm:ss, or h:mm:ss once it
// reaches an hour.
func FormatDuration(d time.Duration) string {
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// Options carries the report metadata lines. Satellite defaults to "ISS".
// The Settings block is emitted only when HasSettings is set.
type Options struct {
	Satellite   string
	GeneratedAt time.Time

	HasSettings      bool
	MinElevDeg       float64
	TwilightDeg      float64
	SampleSeconds    int
	MinWindowSeconds int

	ProjectURL string
}

func (o Options) satellite() string {
	if o.Satellite == "" {
		return "ISS"
	}
	return o.Satellite
}

func (o Options) title(obs predict.Observer) string {
	return fmt.Sprintf("%s visibility report for %s", o.satellite(), obs.Name)
}

func (o Options) generatedLabel(obs predict.Observer) string {
	ts := o.GeneratedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	return ts.In(obs.TZ).Format("2006-01-02 15:04:05 MST")
}

func (o Options) settingsLabel() string {
	if !o.HasSettings {
		return ""
	}
	return fmt.Sprintf("min_elev=%.1f°, twilight=%.1f°, sample=%ds, min_window=%ds",
		o.MinElevDeg, o.TwilightDeg, o.SampleSeconds, o.MinWindowSeconds)
}

// dayGroup is the windows of one local day, keyed by its ISO date.
type dayGroup struct {
	Day     string
	Windows []predict.Window
}

// groupByDay buckets windows by local start date, days ascending, windows
// within a day ordered by start time.
func groupByDay(windows []predict.Window) []dayGroup {
	sorted := make([]predict.Window, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	byDay := make(map[string][]predict.Window)
	var days []string
	for _, w := range sorted {
		day := w.Start.Format("2006-01-02")
		if _, ok := byDay[day]; !ok {
			days = append(days, day)
		}
		byDay[day] = append(byDay[day], w)
	}
	sort.Strings(days)

	groups := make([]dayGroup, len(days))
	for i, day := range days {
		groups[i] = dayGroup{Day: day, Windows: byDay[day]}
	}
	return groups
}

// Text formats a plain-text monthly report.
func Text(obs predict.Observer, monthLabel string, windows []predict.Window, opts Options) string {
	var b strings.Builder

	fmt.Fprintln(&b, opts.title(obs))
	fmt.Fprintf(&b, "Month: %s\n", monthLabel)
	fmt.Fprintf(&b, "Timezone: %s\n", obs.TZName)
	fmt.Fprintf(&b, "Generated: %s\n", opts.generatedLabel(obs))
	if s := opts.settingsLabel(); s != "" {
		fmt.Fprintf(&b, "Settings: %s\n", s)
	}
	if opts.ProjectURL != "" {
		fmt.Fprintf(&b, "Project: %s\n", opts.ProjectURL)
	}
	fmt.Fprintln(&b)

	if len(windows) == 0 {
		fmt.Fprintf(&b, "No %s windows found for this period.\n", opts.satellite())
		fmt.Fprintln(&b, "Check minimum elevation, twilight threshold, and window duration settings.")
		return b.String()
	}

	for _, group := range groupByDay(windows) {
		fmt.Fprintln(&b, group.Day)
		for _, w := range group.Windows {
			glyphs, _ := StarsText(w.Stars)
			fmt.Fprintf(&b,
				"  %s -> %s (%s) | visibility %s | start %.1f° %s | peak %.1f° @ %.1f° %s at %s | end %.1f° %s\n",
				w.Start.Format("15:04:05"),
				w.End.Format("15:04:05"),
				FormatDuration(w.Duration),
				glyphs,
				w.StartAzDeg, w.StartDirection,
				w.PeakElevDeg, w.PeakAzDeg, w.PeakDirection,
				w.Peak.Format("15:04:05"),
				w.EndAzDeg, w.EndDirection,
			)
		}
		fmt.Fprintln(&b)
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}
