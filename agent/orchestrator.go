package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"investor_outreach/metrics"
	"investor_outreach/outreach"
)

// Orchestrator turns one request into one runtime call and extracts the email.
// It keeps no state between calls.
type Orchestrator struct {
	runtime Runtime
	tools   *Toolbox
	product outreach.ProductProfile
	timeout time.Duration
	debug   bool
	logger  *zap.Logger
}

// Options tunes an Orchestrator.
type Options struct {
	Product outreach.ProductProfile
	// Timeout bounds a runtime call; zero means no limit.
	Timeout time.Duration
	// Debug attaches a dump of the raw runtime result to each Draft.
	Debug  bool
	Logger *zap.Logger
}

// Draft is the user-facing outcome of DraftEmail.
type Draft struct {
	Text    string          `json:"email"`
	Runtime string          `json:"runtime"`
	Review  outreach.Review `json:"review"`
	Debug   string          `json:"debug,omitempty"`
}

// Issues returns all advisory issues of the final text.
func (d Draft) Issues() []string { return d.Review.All() }

func NewOrchestrator(rt Runtime, opts Options) (*Orchestrator, error) {
	if rt == nil {
		return nil, errors.New("agent runtime is required")
	}
	product := opts.Product
	if product.Name == "" {
		product = outreach.DefaultProduct()
	}
	tools, err := NewToolbox(product)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		runtime: rt,
		tools:   tools,
		product: product,
		timeout: opts.Timeout,
		debug:   opts.Debug,
		logger:  logger.Named("orchestrator"),
	}, nil
}

// Product returns the profile the orchestrator pitches.
func (o *Orchestrator) Product() outreach.ProductProfile { return o.product }

// Tools exposes the toolbox offered to the runtime.
func (o *Orchestrator) Tools() *Toolbox { return o.tools }

// Run submits req as the only turn of a new conversation and returns the raw
// runtime result. Failures come back as *RuntimeError and are not retried.
func (o *Orchestrator) Run(ctx context.Context, req outreach.Request) (Result, error) {
	conv, err := BuildConversation(req, o.product)
	if err != nil {
		return nil, err
	}
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	name := o.runtime.Name()
	start := time.Now()
	c := startCall(ctx, name, func(ctx context.Context) (Result, error) {
		return o.runtime.Run(ctx, conv, o.tools)
	})
	defer c.close()
	res, err := c.wait()

	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordAgentCall(name, "error", elapsed)
		var rerr *RuntimeError
		if !errors.As(err, &rerr) {
			rerr = &RuntimeError{Runtime: name, Err: err, Trace: errorTrace(err)}
		}
		o.logger.Error("runtime call failed",
			zap.String("runtime", name),
			zap.Duration("elapsed", elapsed),
			zap.Error(rerr.Err))
		return nil, rerr
	}
	metrics.RecordAgentCall(name, "ok", elapsed)
	o.logger.Info("runtime call done", zap.String("runtime", name), zap.Duration("elapsed", elapsed))
	return res, nil
}

// DraftEmail validates req, runs it, and extracts the final email text along
// with an advisory review of that text.
func (o *Orchestrator) DraftEmail(ctx context.Context, req outreach.Request) (Draft, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return Draft{}, err
	}
	res, err := o.Run(ctx, req)
	if err != nil {
		return Draft{}, err
	}

	text, strategy := extract(res)
	metrics.IncrementExtractStrategy(strategy)
	o.logger.Debug("extracted email", zap.String("strategy", strategy), zap.Int("chars", len(text)))

	review, err := outreach.RunReview(ctx, outreach.PersonalizationInput{
		EmailText:         text,
		InvestorFirstName: req.InvestorFirstName,
		FirmName:          req.Firm,
		Product:           o.product.Name,
	})
	if err != nil {
		o.logger.Warn("review skipped", zap.Error(err))
	}
	metrics.AddDraftIssues(ToolSoWhatCheck, len(review.Personalization.Issues))
	metrics.AddDraftIssues(ToolSkimCheck, len(review.Scannability.Issues))

	d := Draft{Text: text, Runtime: o.runtime.Name(), Review: review}
	if o.debug {
		d.Debug = dumpResult(res)
	}
	return d, nil
}

// errorTrace lists each layer of a wrapped error chain, outermost first.
func errorTrace(err error) string {
	var b strings.Builder
	for i := 0; err != nil; i++ {
		fmt.Fprintf(&b, "#%d %T: %v\n", i, err, err)
		err = errors.Unwrap(err)
	}
	return b.String()
}

// dumpResult renders a result for the debug panel. Embedded JSON is printed as
// text, not as a byte slice.
func dumpResult(res Result) string {
	switch v := res.(type) {
	case *Object:
		if v == nil {
			return "(*agent.Object)(nil)"
		}
		shallow := *v
		shallow.Dump = nil
		out := fmt.Sprintf("&%#v", shallow)
		if len(v.Dump) > 0 {
			out += "\nDump: " + string(v.Dump)
		}
		return out
	case Document:
		return "agent.Document(" + string(v) + ")"
	case List:
		parts := make([]string, len(v))
		for i, r := range v {
			parts[i] = dumpResult(r)
		}
		return "agent.List{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%#v", res)
	}
}
