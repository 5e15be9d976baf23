package ctl

import (
	"fmt"
	"strings"
)

// TLE fetches and displays the element set the daemon is predicting with.
func TLE(baseURL string, jsonOutput bool) error {
	var resp struct {
		Name  string `json:"name"`
		Line1 string `json:"line1"`
		Line2 string `json:"line2"`
	}
	if err := getJSONWith(predictClient, baseURL, "/api/tle", &resp); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(resp)
	}

	fmt.Println()
	fmt.Println(header("  ORBITAL ELEMENTS"))
	fmt.Println(colorize(dim, "  "+strings.Repeat("─", 69)))
	fmt.Printf("  %s\n", colorize(bold, resp.Name))
	fmt.Printf("  %s\n", resp.Line1)
	fmt.Printf("  %s\n", resp.Line2)
	fmt.Println()

	return nil
}
