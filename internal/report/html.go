package report

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/iss-horizon/horizon/internal/predict"
)

var htmlTmpl = template.Must(template.New("report").Parse(`<!doctype html>
<html><head><meta charset="utf-8">
<style>
body{font-family:Arial,sans-serif;color:#1f2937;margin:0;padding:24px;background:#f8fafc;}
main{max-width:980px;margin:0 auto;background:#ffffff;padding:20px;border:1px solid #e5e7eb;}
h1{font-size:20px;margin:0;}
.hero{background:#0f172a;color:#f8fafc;padding:16px;border-radius:8px;}
.hero-meta{font-size:13px;color:#cbd5e1;margin-top:8px;}
.pill{display:inline-block;background:#e2e8f0;color:#1e293b;padding:4px 8px;border-radius:999px;font-size:12px;margin-right:8px;margin-top:10px;}
.day-title{font-size:16px;margin:0 0 8px;color:#111827;}
table{width:100%;border-collapse:collapse;font-size:13px;}
thead tr{background:#f3f4f6;text-align:left;}
th{padding:8px;border:1px solid #e5e7eb;color:#374151;}
td{padding:8px;border:1px solid #e5e7eb;vertical-align:top;}
.stars{font-weight:700;color:#b45309;}
.footer{font-size:12px;color:#6b7280;margin-top:16px;}
</style></head><body><main>
<header class="hero">
<h1>{{.Title}}</h1>
<div class="hero-meta">Month: {{.Month}} · Timezone: {{.Timezone}} · Generated: {{.Generated}}</div>
{{if .Days}}<span class="pill">{{.TotalWindows}} windows</span><span class="pill">{{len .Days}} days</span>{{end}}
</header>
{{if not .Days}}
<p style="margin-top:16px;">No {{.Satellite}} windows found for this period.<br>
Check minimum elevation, twilight threshold, and window duration settings.</p>
{{end}}
{{range .Days}}
<section style="margin-top:18px;">
<h2 class="day-title">{{.Day}}</h2>
<table>
<thead><tr><th>Window</th><th>Duration</th><th>Visibility</th><th>Start az/dir</th><th>Peak</th><th>End az/dir</th></tr></thead>
<tbody>
{{range .Rows}}<tr><td>{{.Window}}</td><td>{{.Duration}}</td><td><span class="stars">{{.Stars}}</span></td><td>{{.Start}}</td><td>{{.Peak}}</td><td>{{.End}}</td></tr>
{{end}}</tbody>
</table>
</section>
{{end}}
{{if .Settings}}<p class="footer">Settings: {{.Settings}}</p>{{end}}
{{if .ProjectURL}}<p class="footer">Project: <a href="{{.ProjectURL}}">{{.ProjectURL}}</a></p>{{end}}
<p class="footer">Generated by {{.Satellite}} Horizon at {{.Generated}}</p>
</main></body></html>
`))

type htmlRow struct {
	Window   string
	Duration string
	Stars    string
	Start    string
	Peak     string
	End      string
}

type htmlDay struct {
	Day  string
	Rows []htmlRow
}

type htmlData struct {
	Title        string
	Satellite    string
	Month        string
	Timezone     string
	Generated    string
	Settings     string
	ProjectURL   string
	TotalWindows int
	Days         []htmlDay
}

// HTML formats an HTML monthly report with a plain email-friendly layout.
func HTML(obs predict.Observer, monthLabel string, windows []predict.Window, opts Options) (string, error) {
	data := htmlData{
		Title:        opts.title(obs),
		Satellite:    opts.satellite(),
		Month:        monthLabel,
		Timezone:     obs.TZName,
		Generated:    opts.generatedLabel(obs),
		Settings:     opts.settingsLabel(),
		ProjectURL:   opts.ProjectURL,
		TotalWindows: len(windows),
	}

	for _, group := range groupByDay(windows) {
		day := htmlDay{Day: group.Day}
		for _, w := range group.Windows {
			glyphs, _ := StarsText(w.Stars)
			day.Rows = append(day.Rows, htmlRow{
				Window:   fmt.Sprintf("%s → %s", w.Start.Format("15:04:05"), w.End.Format("15:04:05")),
				Duration: FormatDuration(w.Duration),
				Stars:    glyphs,
				Start:    fmt.Sprintf("%.1f° %s", w.StartAzDeg, w.StartDirection),
				Peak: fmt.Sprintf("%.1f° @ %.1f° %s at %s",
					w.PeakElevDeg, w.PeakAzDeg, w.PeakDirection, w.Peak.Format("15:04:05")),
				End: fmt.Sprintf("%.1f° %s", w.EndAzDeg, w.EndDirection),
			})
		}
		data.Days = append(data.Days, day)
	}

	var b strings.Builder
	if err := htmlTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render HTML report: %w", err)
	}
	return b.String(), nil
}
