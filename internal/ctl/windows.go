package ctl

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// WindowsOptions controls the windows command output.
type WindowsOptions struct {
	Hours int
	JSON  bool
}

type windowsResponse struct {
	Hours     int          `json:"hours"`
	Satellite string       `json:"satellite"`
	Station   stationView  `json:"station"`
	Windows   []windowView `json:"windows"`
}

// Windows lists upcoming visibility windows from the daemon.
func Windows(baseURL string, opts WindowsOptions) error {
	params := url.Values{}
	if opts.Hours > 0 {
		params.Set("hours", strconv.Itoa(opts.Hours))
	}
	path := "/api/windows"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var resp windowsResponse
	if err := getJSONWith(predictClient, baseURL, path, &resp); err != nil {
		return err
	}

	if opts.JSON {
		return printJSON(resp)
	}

	fmt.Println()
	fmt.Println(header("  VISIBILITY WINDOWS"))
	fmt.Printf("  %s %s over the next %dh from %s (%.4f, %.4f)\n",
		colorize(dim, "Satellite:"),
		resp.Satellite, resp.Hours, resp.Station.Name,
		resp.Station.Latitude, resp.Station.Longitude,
	)
	fmt.Println(colorize(dim, "  "+strings.Repeat("─", 78)))

	if len(resp.Windows) == 0 {
		fmt.Println(colorize(dim, "  No visible windows found."))
		fmt.Println()
		return nil
	}

	fmt.Printf("  %-4s %-22s %-9s %7s %-6s %-18s %s\n",
		colorize(dim, "#"),
		colorize(dim, "Start"),
		colorize(dim, "Duration"),
		colorize(dim, "Peak"),
		colorize(dim, "Dir"),
		colorize(dim, "Track"),
		colorize(dim, "Rating"),
	)
	fmt.Println(colorize(dim, "  "+strings.Repeat("─", 78)))

	for i, win := range resp.Windows {
		track := fmt.Sprintf("%s -> %s -> %s", win.StartDirection, win.PeakDirection, win.EndDirection)
		fmt.Printf("  %-4d %-22s %-9s %6.1f° %-6s %-18s %s\n",
			i+1,
			formatLocalTime(win.StartLocal),
			formatDuration(time.Duration(win.DurationSeconds)*time.Second),
			win.PeakElevDeg,
			win.PeakDirection,
			track,
			starBar(win.VisibilityStars),
		)
	}
	fmt.Println()

	return nil
}
