package errors

import "fmt"

// Collector accumulates diagnostics for one compiler phase. Each phase
// constructs its own Collector, reports into it, and the driver checks
// Count() afterward — spec.md §7's "each phase accumulates diagnostics and
// increments a counter; after each sub-phase, if the counter is non-zero,
// abort the pipeline with an aggregate error."
type Collector struct {
	Phase   string
	reports []*Report
}

// NewCollector creates an empty Collector for the given phase name.
func NewCollector(phase string) *Collector {
	return &Collector{Phase: phase}
}

// Add records a diagnostic. Nil reports are ignored so call sites can write
// `c.Add(maybeNil())` without a guard.
func (c *Collector) Add(r *Report) {
	if r == nil {
		return
	}
	c.reports = append(c.reports, r)
}

// Count returns the number of diagnostics recorded so far.
func (c *Collector) Count() int { return len(c.reports) }

// Reports returns the accumulated diagnostics in report order.
func (c *Collector) Reports() []*Report { return c.reports }

// Aggregate raises a single AGG001 Report bundling every diagnostic
// recorded in this phase, or nil if none were recorded.
func (c *Collector) Aggregate() *Report {
	if len(c.reports) == 0 {
		return nil
	}
	data := make(map[string]any, 1)
	data["diagnostics"] = c.reports
	return New(c.Phase, AGG001, nil,
		fmt.Sprintf("%d error(s) in phase %q", len(c.reports), c.Phase), data)
}
