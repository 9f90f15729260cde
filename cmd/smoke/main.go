// README: Smoke runner; executes black-box HTTP checks against a running Pack-n-Track API and prints results.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"packntrack/internal/config"
)

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	runner := NewRunner(cfg)
	results := runner.RunAll(ctx)

	fmt.Println("\n== Summary ==")
	pass, fail, pending, skipped := 0, 0, 0, 0
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			pass++
		case StatusFail:
			fail++
		case StatusPending:
			pending++
		case StatusSkip:
			skipped++
		}
	}
	fmt.Printf("PASS=%d FAIL=%d PENDING=%d SKIP=%d\n", pass, fail, pending, skipped)

	if fail > 0 || (cfg.Strict && pending > 0) {
		os.Exit(1)
	}
}

type Config = config.Smoke

// loadConfig reads the environment through config.LoadSmoke; flags win.
func loadConfig() Config {
	cfg, err := config.LoadSmoke()
	if err != nil {
		log.Fatal(err)
	}
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "API base URL")
	flag.BoolVar(&cfg.Live, "live", cfg.Live, "Run checks that call the real LLM upstream")
	flag.BoolVar(&cfg.Strict, "strict", cfg.Strict, "Fail on pending checks")
	flag.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Total timeout")
	flag.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "Concurrent requests for the method-guard check")
	flag.Parse()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg
}
