// Horizonctl is the command-line client for a running horizond instance.
// It connects over HTTP and WebSocket to query visibility predictions and
// stream live events from the daemon.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/iss-horizon/horizon/internal/ctl"
)

func main() {
	var (
		host    = pflag.StringP("host", "H", "http://127.0.0.1:8080", "Horizon daemon URL (e.g. http://192.168.8.1:8080)")
		jsonOut = pflag.Bool("json", false, "Output raw JSON instead of formatted text")
		filter  = pflag.StringSlice("filter", nil, "Event types to show in watch (e.g. --filter state,log)")
	)

	// Stop parsing global flags at the first non-flag argument (the command
	// name), so subcommand-specific flags like --hours are not rejected.
	pflag.CommandLine.SetInterspersed(false)
	pflag.Parse()

	if pflag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cmd := pflag.Arg(0)
	subArgs := pflag.Args()[1:]

	var err error
	switch cmd {
	// ── Query commands ────────────────────────────────────────────
	case "status":
		err = ctl.Status(*host, *jsonOut)

	case "health":
		err = ctl.Health(*host, *jsonOut)

	case "version":
		err = ctl.VersionInfo(*host, *jsonOut)

	case "config":
		err = ctl.Config(*host, *jsonOut)

	case "windows":
		opts := ctl.WindowsOptions{JSON: *jsonOut}
		winFlags := pflag.NewFlagSet("windows", pflag.ContinueOnError)
		winFlags.IntVar(&opts.Hours, "hours", 0, "Prediction horizon in hours (default: daemon lookahead)")
		_ = winFlags.Parse(subArgs)
		err = ctl.Windows(*host, opts)

	case "next":
		err = ctl.Next(*host, *jsonOut)

	case "report":
		opts := ctl.ReportOptions{}
		repFlags := pflag.NewFlagSet("report", pflag.ContinueOnError)
		repFlags.IntVar(&opts.Year, "year", 0, "Report year (default: next month)")
		repFlags.IntVar(&opts.Month, "month", 0, "Report month 1-12 (default: next month)")
		repFlags.StringVar(&opts.Format, "format", "text", "Report format: text, html, or json")
		repFlags.StringVarP(&opts.Output, "output", "o", "", "Write report to a file instead of stdout")
		_ = repFlags.Parse(subArgs)
		err = ctl.Report(*host, opts)

	case "tle":
		err = ctl.TLE(*host, *jsonOut)

	// ── Control commands ──────────────────────────────────────────
	case "refresh":
		err = ctl.Refresh(*host, *jsonOut)

	// ── Live streaming ────────────────────────────────────────────
	case "watch":
		err = ctl.Watch(*host, ctl.WatchOptions{
			Filter: *filter,
			JSON:   *jsonOut,
		})

	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Print(`
  horizonctl, the ISS visibility control CLI

  USAGE
    horizonctl [flags] <command> [command-flags]

  COMMANDS (query)
    status          Show daemon state, uptime, and the next window
    health          Check daemon liveness
    version         Show CLI and daemon version information
    config          Show the daemon's running configuration
    windows         List upcoming visibility windows
    next            Show the next upcoming window
    report          Render a monthly visibility report
    tle             Show the orbital element set in use

  COMMANDS (control)
    refresh         Force an immediate prediction recompute

  COMMANDS (live)
    watch           Stream live events from the daemon (Ctrl-C to stop)

  GLOBAL FLAGS
    -H, --host URL      Daemon base URL (default: http://127.0.0.1:8080)
        --json          Output raw JSON instead of formatted text
        --filter TYPE   Event types to show in watch (comma-separated)

  COMMAND FLAGS
    windows:
        --hours N           Prediction horizon in hours

    report:
        --year YYYY         Report year
        --month M           Report month (1-12)
        --format FMT        text, html, or json (default: text)
    -o, --output FILE       Write report to a file

  EXAMPLES
    horizonctl status
    horizonctl --json status
    horizonctl --host http://192.168.8.1:8080 watch
    horizonctl windows --hours 72
    horizonctl next
    horizonctl report --format html -o report.html
    horizonctl report --year 2026 --month 10
    horizonctl tle
    horizonctl refresh
    horizonctl watch --filter state,windows_computed

`)
}
