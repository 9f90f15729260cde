// README: Terminal client; walks the trip wizard over stdin/stdout against a running API.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"packntrack/internal/client"
	"packntrack/internal/config"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatal(err)
	}

	var baseURL, htmlPath string
	flag.StringVar(&baseURL, "base-url", cfg.BaseURL, "API base URL")
	flag.StringVar(&htmlPath, "html", "", "Also write the dashboard as a Leaflet HTML page to this path")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &App{
		In:       os.Stdin,
		Out:      os.Stdout,
		Planner:  client.New(strings.TrimRight(baseURL, "/"), nil),
		HTMLPath: htmlPath,
	}
	if err := app.Run(ctx); err != nil {
		log.Fatal(err)
	}
}
