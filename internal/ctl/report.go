package ctl

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// ReportOptions controls the report command behavior.
type ReportOptions struct {
	Year   int
	Month  int
	Format string // text, html, or json
	Output string // write to this file instead of stdout
}

// Report fetches a monthly visibility report from the daemon and writes it
// to stdout or a file.
func Report(baseURL string, opts ReportOptions) error {
	format := opts.Format
	if format == "" {
		format = "text"
	}

	params := url.Values{}
	params.Set("format", format)
	if opts.Year > 0 {
		params.Set("year", strconv.Itoa(opts.Year))
	}
	if opts.Month > 0 {
		params.Set("month", strconv.Itoa(opts.Month))
	}

	status, body, err := getRaw(baseURL, "/api/report?"+params.Encode())
	if err != nil {
		return err
	}
	if status != 200 {
		msg := strings.TrimSpace(string(body))
		if msg != "" {
			return fmt.Errorf("HTTP %d: %s", status, msg)
		}
		return fmt.Errorf("HTTP %d from /api/report", status)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, body, 0o644); err != nil {
			return err
		}
		fmt.Printf("report written to %s\n", opts.Output)
		return nil
	}

	_, err = os.Stdout.Write(body)
	return err
}
