// internal/gateway/alerts/engine.go
// Package alerts is the gateway's alert engine (SPEC_FULL.md §4.12):
// periodically samples a handful of gateway health signals (downstream
// invoke failure rate, permission-denial rate, disconnect churn) and fires
// named Rules whose compiled predicate evaluates true, notifying every
// registered Sink. Entirely additive -- gateway correctness never depends
// on it (spec §1 treats logging/observability backends as out of scope;
// this is the same carve-out extended to health alerting).
package alerts

import (
	"context"
	"sync"
	"time"

	"github.com/rdkcentral/appgateway/internal/alertsengine"
	"github.com/rdkcentral/appgateway/internal/logging"
)

// Sink receives a firing notification. internal/gateway/alerts/sinks
// provides log/webhook/slack/jira implementations; all satisfy this
// interface structurally.
type Sink interface {
	Notify(ruleName, message string)
}

// Rule is one named threshold expression, evaluated against the latest
// sample on every tick.
type Rule struct {
	Name    string
	Expr    string // alertsengine syntax, e.g. "downstream_invoke_failures > 50"
	Message string
}

// SampleFunc returns the current value of every named health signal the
// engine's rules may reference. Called once per tick.
type SampleFunc func() map[string]float64

type compiledRule struct {
	name      string
	message   string
	predicate alertsengine.Predicate
}

// Engine evaluates a fixed rule set against a SampleFunc on a timer,
// notifying Sinks when a rule transitions from not-firing to firing (edge
// trigger, not level -- a sustained breach only notifies once until it
// clears).
type Engine struct {
	sample   SampleFunc
	interval time.Duration
	sinks    []Sink

	rules []compiledRule

	mu      sync.Mutex
	firing  map[string]bool
	cancel  context.CancelFunc
	stopped chan struct{}
}

// NewEngine compiles rules and returns an Engine sampling via sample every
// interval, notifying sinks on each rising edge. A rule with an
// uncompilable expression is dropped and logged rather than failing
// construction -- a typo in one rule should not disable gateway alerting
// entirely.
func NewEngine(rules []Rule, sample SampleFunc, interval time.Duration, sinks ...Sink) *Engine {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	e := &Engine{
		sample:   sample,
		interval: interval,
		sinks:    sinks,
		firing:   make(map[string]bool),
	}
	for _, r := range rules {
		pred, err := alertsengine.Compile(r.Expr)
		if err != nil {
			logging.Sugar().Warnw("alerts: dropping uncompilable rule", "rule", r.Name, "expr", r.Expr, "err", err)
			continue
		}
		e.rules = append(e.rules, compiledRule{name: r.Name, message: r.Message, predicate: pred})
	}
	return e
}

// Start begins the sampling loop on a background goroutine; Stop (or
// cancelling ctx) ends it.
func (e *Engine) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.stopped = make(chan struct{})

	go func() {
		defer close(e.stopped)
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				e.tick()
			}
		}
	}()
}

// Stop ends the sampling loop and waits for it to exit.
func (e *Engine) Stop() {
	if e.cancel == nil {
		return
	}
	e.cancel()
	<-e.stopped
}

func (e *Engine) tick() {
	sample := e.sample()
	for _, r := range e.rules {
		fires := r.predicate(sample)

		e.mu.Lock()
		was := e.firing[r.name]
		e.firing[r.name] = fires
		e.mu.Unlock()

		if fires && !was {
			e.notify(r.name, r.message)
		}
	}
}

func (e *Engine) notify(ruleName, message string) {
	for _, s := range e.sinks {
		s.Notify(ruleName, message)
	}
}
