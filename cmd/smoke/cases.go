// README: Smoke check cases for the plan-trip proxy, options, health and metrics endpoints.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"packntrack/internal/client"
	"packntrack/internal/dashboard"
	"packntrack/internal/trip"
)

const (
	StatusPass    = "PASS"
	StatusFail    = "FAIL"
	StatusPending = "PENDING"
	StatusSkip    = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	api   *client.Client
}

type Result struct {
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	httpc := &http.Client{Timeout: 90 * time.Second}
	return &Runner{
		cfg:   cfg,
		httpc: httpc,
		api:   client.New(cfg.BaseURL, httpc),
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name: "Health: GET /health",
			Run: func(ctx context.Context, r *Runner) Result {
				status, body, latency, err := r.send(ctx, http.MethodGet, base+"/health", "")
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				if status != http.StatusOK || strings.TrimSpace(body) != "OK" {
					return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("status=%d body=%q", status, body)}
				}
				return Result{Status: StatusPass, Latency: latency}
			},
		},
		{
			Name: "Options: prefs and day choices",
			Run: func(ctx context.Context, r *Runner) Result {
				opts, err := r.api.Options(ctx)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				if len(opts.Prefs) != len(trip.Prefs) || opts.DefaultDays != trip.DefaultDays {
					return Result{Status: StatusFail, Note: fmt.Sprintf("prefs=%d default_days=%d", len(opts.Prefs), opts.DefaultDays)}
				}
				return Result{Status: StatusPass}
			},
		},
		expectError("Plan: GET is rejected", http.MethodGet, base+"/api/plan-trip", "", http.StatusMethodNotAllowed, trip.MsgMethodNotAllowed),
		expectError("Plan: PUT is rejected", http.MethodPut, base+"/api/plan-trip", `{"city":"Kyoto"}`, http.StatusMethodNotAllowed, trip.MsgMethodNotAllowed),
		expectError("Plan: malformed body", http.MethodPost, base+"/api/plan-trip", `{"city":`, http.StatusBadRequest, trip.MsgInvalidBody),
		{
			Name: "Plan: concurrent non-POST stay 405",
			Run: func(ctx context.Context, r *Runner) Result {
				return concurrentMethodGuard(ctx, r, base+"/api/plan-trip")
			},
		},
		{
			Name: "Plan: live Kyoto request renders",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.Live {
					return Result{Status: StatusSkip, Note: "live=false"}
				}
				start := time.Now()
				plan, err := r.api.PlanTrip(ctx, trip.TripRequest{City: "Kyoto", Days: 2, Prefs: []string{"🍕 Foodie"}})
				latency := time.Since(start)
				if err != nil {
					var apiErr *client.APIError
					if errors.As(err, &apiErr) && apiErr.Message == trip.MsgAPIKeyMissing {
						return Result{Status: StatusPending, Latency: latency, Note: "server has no API key"}
					}
					return Result{Status: StatusFail, Latency: latency, Note: err.Error()}
				}
				d := dashboard.New()
				if err := d.Render(plan); err != nil {
					return Result{Status: StatusFail, Latency: latency, Note: err.Error()}
				}
				return Result{Status: StatusPass, Latency: latency, Note: fmt.Sprintf("%q days=%d markers=%d", plan.TripName, len(plan.Days), len(d.Markers()))}
			},
		},
		{
			Name: "Metrics: plan outcomes exported",
			Run: func(ctx context.Context, r *Runner) Result {
				status, body, latency, err := r.send(ctx, http.MethodGet, base+"/metrics", "")
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				if status != http.StatusOK || !strings.Contains(body, "packntrack_plan_requests_total") {
					return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
				}
				return Result{Status: StatusPass, Latency: latency}
			},
		},
	}
}

func expectError(name, method, url, body string, wantStatus int, wantMsg string) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			status, respBody, latency, err := r.send(ctx, method, url, body)
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			var e struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal([]byte(respBody), &e)
			if status != wantStatus || e.Error != wantMsg {
				return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("status=%d error=%q", status, e.Error)}
			}
			return Result{Status: StatusPass, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
		},
	}
}

func (r *Runner) send(ctx context.Context, method, url, body string) (int, string, time.Duration, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, "", 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, "", 0, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	latency := time.Since(start)
	if err != nil {
		return 0, "", latency, err
	}
	return resp.StatusCode, string(b), latency, nil
}

// concurrentMethodGuard fires non-POST requests in parallel; none may reach the upstream.
func concurrentMethodGuard(ctx context.Context, r *Runner, url string) Result {
	methods := []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch}
	wg := sync.WaitGroup{}
	mu := sync.Mutex{}
	got405, other, errCount := 0, 0, 0

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status, _, _, err := r.send(ctx, methods[i%len(methods)], url, "")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				errCount++
			case status == http.StatusMethodNotAllowed:
				got405++
			default:
				other++
			}
		}(i)
	}
	wg.Wait()

	note := fmt.Sprintf("405=%d other=%d errors=%d", got405, other, errCount)
	if got405 != r.cfg.Concurrency {
		return Result{Status: StatusFail, Note: note}
	}
	return Result{Status: StatusPass, Note: note}
}
