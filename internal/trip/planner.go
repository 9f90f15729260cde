package trip

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"packntrack/internal/ai"
	"packntrack/internal/metrics"
)

// Options toggles post-processing of the model output. The zero value relays
// the completion verbatim.
type Options struct {
	// UpstreamTimeout bounds the provider call. Zero means the request context alone.
	UpstreamTimeout time.Duration
	LenientJSON     bool
	ValidatePlan    bool
	// Geocoder, when set, fills activities that came back without coords.
	Geocoder Geocoder
}

// Planner turns a TripRequest into the model's plan. It holds no per-request
// state and is safe for concurrent use.
type Planner struct {
	provider ai.Provider
	opts     Options
	log      *zap.Logger
	tracer   trace.Tracer
}

func NewPlanner(provider ai.Provider, log *zap.Logger, opts Options) *Planner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Planner{
		provider: provider,
		opts:     opts,
		log:      log,
		tracer:   otel.Tracer("packntrack/internal/trip"),
	}
}

// Plan makes exactly one upstream call and returns the plan as compact JSON.
// Every failure is a *Error.
func (p *Planner) Plan(ctx context.Context, req TripRequest) (json.RawMessage, error) {
	return p.PlanInput(ctx, req.Input())
}

// PlanInput is Plan for a body decoded with DecodeInput.
func (p *Planner) PlanInput(ctx context.Context, in Input) (json.RawMessage, error) {
	if !p.provider.HasCredentials() {
		return nil, &Error{Kind: KindConfig, Msg: MsgAPIKeyMissing, Err: ai.ErrMissingKey}
	}

	ctx, span := p.tracer.Start(ctx, "trip.plan", trace.WithAttributes(
		attribute.String("llm.provider", p.provider.Name()),
		attribute.String("trip.city", in.City),
		attribute.String("trip.days", in.Days),
	))
	defer span.End()

	content, err := p.complete(ctx, BuildInputPrompt(in))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upstream")
		if errors.Is(err, ai.ErrMissingKey) {
			return nil, &Error{Kind: KindConfig, Msg: MsgAPIKeyMissing, Err: err}
		}
		return nil, newError(KindUpstream, err)
	}

	plan, err := parseContent(content)
	if err != nil {
		if !p.opts.LenientJSON {
			span.RecordError(err)
			span.SetStatus(codes.Error, "malformed")
			p.log.Warn("model returned invalid JSON", zap.Error(err), zap.Int("content_len", len(content)))
			return nil, newError(KindMalformed, err)
		}
		repaired, rerr := repairContent(content)
		if rerr != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "malformed")
			p.log.Warn("model returned unrepairable JSON", zap.Error(err))
			return nil, newError(KindMalformed, err)
		}
		metrics.PlanRepairs.WithLabelValues("lenient_json").Inc()
		plan = repaired
	}

	if p.opts.Geocoder != nil {
		filled, n, gerr := fillMissingCoords(ctx, plan, in.City, p.opts.Geocoder, p.log)
		if gerr != nil {
			p.log.Warn("skipping coordinate fill", zap.Error(gerr))
		} else if n > 0 {
			metrics.PlanRepairs.WithLabelValues("geocode").Add(float64(n))
			plan = filled
		}
	}

	if p.opts.ValidatePlan {
		if err := ValidatePlan(plan); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "invalid plan")
			return nil, newError(KindMalformed, err)
		}
	}

	return plan, nil
}

func (p *Planner) complete(ctx context.Context, prompt ai.Prompt) (string, error) {
	if p.opts.UpstreamTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.UpstreamTimeout)
		defer cancel()
	}

	start := time.Now()
	content, err := p.provider.Complete(ctx, prompt)
	elapsed := time.Since(start)

	name := p.provider.Name()
	if err != nil {
		metrics.UpstreamDuration.WithLabelValues(name, "error").Observe(elapsed.Seconds())
		p.log.Error("upstream call failed",
			zap.String("provider", name),
			zap.Duration("latency", elapsed),
			zap.Error(err),
		)
		return "", err
	}

	metrics.UpstreamDuration.WithLabelValues(name, "ok").Observe(elapsed.Seconds())
	p.log.Info("upstream call completed",
		zap.String("provider", name),
		zap.Duration("latency", elapsed),
	)
	return content, nil
}
