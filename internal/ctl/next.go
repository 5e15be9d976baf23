package ctl

import (
	"fmt"
	"time"
)

// Next shows the first upcoming visibility window.
func Next(baseURL string, jsonOutput bool) error {
	var resp struct {
		Window     *windowView `json:"window"`
		CountdownS int         `json:"countdown_s"`
	}
	if err := getJSONWith(predictClient, baseURL, "/api/next", &resp); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(resp)
	}

	fmt.Println()
	if resp.Window == nil {
		fmt.Println(colorize(dim, "  No upcoming window in the prediction horizon."))
		fmt.Println()
		return nil
	}

	win := resp.Window
	countdown := formatDuration(time.Duration(resp.CountdownS) * time.Second)

	fmt.Println(header("  NEXT VISIBILITY WINDOW"))
	fmt.Printf("    %-12s %s %s\n", colorize(dim, "Starts:"), formatLocalTime(win.StartLocal), colorize(dim, "(in "+countdown+")"))
	fmt.Printf("    %-12s %s\n", colorize(dim, "Ends:"), formatLocalTime(win.EndLocal))
	fmt.Printf("    %-12s %s\n", colorize(dim, "Duration:"), formatDuration(time.Duration(win.DurationSeconds)*time.Second))
	fmt.Printf("    %-12s %.1f° %s at %s\n", colorize(dim, "Peak:"), win.PeakElevDeg, win.PeakDirection, formatLocalTime(win.PeakLocal))
	fmt.Printf("    %-12s %s -> %s -> %s\n", colorize(dim, "Track:"), win.StartDirection, win.PeakDirection, win.EndDirection)
	fmt.Printf("    %-12s %s (%s)\n", colorize(dim, "Rating:"), starBar(win.VisibilityStars), win.VisibilityLabel)
	fmt.Println()

	return nil
}
