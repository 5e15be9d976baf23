package ctl

import (
	"fmt"
)

// Refresh asks the daemon to recompute its cached window snapshot now.
func Refresh(baseURL string, jsonOutput bool) error {
	var resp struct {
		OK         bool   `json:"ok"`
		Windows    int    `json:"windows"`
		ComputedAt string `json:"computed_at"`
	}
	if err := postJSON(baseURL, "/api/refresh", nil, &resp); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(resp)
	}

	fmt.Println()
	fmt.Printf("  %s  %d windows cached at %s\n",
		colorize(green, "REFRESHED"), resp.Windows, formatLocalTime(resp.ComputedAt))
	fmt.Println()

	return nil
}
