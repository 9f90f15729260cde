package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"packntrack/internal/ai"
	"packntrack/internal/config"
	"packntrack/internal/trip"
)

func main() {
	city := flag.String("city", "Kyoto", "Destination city")
	prefs := flag.String("prefs", "🍕 Foodie", "Comma separated preference tags")
	days := flag.Int("days", trip.DefaultDays, "Trip length in days")
	key := flag.String("key", "", "API key for the configured provider, overriding the environment")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	overrideKey(&cfg.AI, *key)

	provider := ai.NewProvider(cfg.AI)
	if !provider.HasCredentials() {
		log.Fatalf("no API key set for provider %s", provider.Name())
	}

	planner := trip.NewPlanner(provider, zap.NewNop(), trip.Options{
		UpstreamTimeout: cfg.AI.UpstreamTimeout,
		LenientJSON:     true,
		ValidatePlan:    true,
	})

	req := trip.TripRequest{City: *city, Days: *days, Prefs: splitPrefs(*prefs)}
	fmt.Printf("Request: %d days in %s (%s)\n", req.Days, req.City, strings.Join(req.Prefs, ", "))

	raw, err := planner.Plan(context.Background(), req)
	if err != nil {
		log.Fatalf("Error planning trip: %v", err)
	}

	plan, err := trip.DecodePlan(raw)
	if err != nil {
		log.Fatalf("Error decoding plan: %v", err)
	}
	fmt.Printf("Trip: %s (center %.4f, %.4f)\n", plan.TripName, plan.CenterLat, plan.CenterLon)
	for _, d := range plan.Days {
		fmt.Printf("Day %d\n", d.Day)
		for _, a := range d.Activities {
			fmt.Printf("  %-8s %s\n", a.Time, a.Name)
		}
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err == nil {
		fmt.Fprintf(os.Stderr, "\n%s\n", pretty.String())
	}
}

// overrideKey pins both provider keys to key when it is set.
func overrideKey(cfg *config.AIConfig, key string) {
	if key == "" {
		return
	}
	cfg.GroqKey = config.Static(key)
	cfg.GeminiKey = config.Static(key)
}

func splitPrefs(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
