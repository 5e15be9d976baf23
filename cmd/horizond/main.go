// Horizond is the ISS visibility prediction daemon.
//
// It loads configuration, starts the HTTP/WebSocket server, and runs the
// periodic prediction scheduler. Shutdown is handled gracefully on SIGINT
// or SIGTERM.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/iss-horizon/horizon/internal/app"
	"github.com/iss-horizon/horizon/internal/config"
)

func main() {
	var (
		configPath = pflag.StringP("config", "c", "/etc/horizon/horizon.toml", "Path to config TOML")
		bind       = pflag.String("bind", "", "HTTP bind address (overrides config)")
	)
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	logger := log.New(os.Stdout, "horizond ", log.LstdFlags|log.Lmicroseconds)

	a, err := app.New(app.Options{
		Logger:     logger,
		Cfg:        cfg,
		Bind:       *bind,
		ConfigPath: *configPath,
	})
	if err != nil {
		logger.Fatalf("horizond init failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("horizond failed: %v", err)
	}

	// Brief pause so in-flight log writes can flush before exit.
	time.Sleep(50 * time.Millisecond)
}
