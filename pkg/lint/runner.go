package lint

import (
	"context"
	"log/slog"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/bindery/pkg/core"
)

// Options configures a lint run.
type Options struct {
	// Include limits linting to documents whose ID matches any glob
	// (doublestar syntax, e.g. "bindings/**"). Empty means all.
	Include []string
	// Exclude removes matching documents after Include filtering.
	Exclude []string
	// Disabled lists rule IDs to skip.
	Disabled []string
	// Rules overrides the registry with an explicit rule set (tests).
	Rules []Rule

	Logger *slog.Logger
}

// Runner evaluates rules over a corpus.
type Runner struct {
	opts  Options
	rules []Rule
}

// NewRunner builds a runner from the registry (or Options.Rules) with the
// disabled set removed.
func NewRunner(opts Options) *Runner {
	source := opts.Rules
	if source == nil {
		source = Rules()
	}

	disabled := make(map[string]bool, len(opts.Disabled))
	for _, id := range opts.Disabled {
		disabled[id] = true
	}

	var active []Rule
	for _, r := range source {
		if !disabled[r.ID()] {
			active = append(active, r)
		}
	}

	return &Runner{opts: opts, rules: active}
}

// RuleIDs returns the IDs of the active rules, in order.
func (r *Runner) RuleIDs() []string {
	ids := make([]string, len(r.rules))
	for i, rule := range r.rules {
		ids[i] = rule.ID()
	}
	return ids
}

// Run evaluates every active rule against every selected document.
// The shared context (graph, duplicate index) always covers the FULL corpus
// so reference checks see documents outside the include filter.
func (r *Runner) Run(ctx context.Context, docs []core.Binding) (*Report, error) {
	rctx := NewContext(docs)
	report := &Report{}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !r.selected(doc.ID) {
			continue
		}

		for _, rule := range r.rules {
			findings := rule.Check(rctx, doc)
			if len(findings) > 0 && r.opts.Logger != nil {
				r.opts.Logger.Debug("rule findings", "rule", rule.ID(), "doc", doc.ID, "count", len(findings))
			}
			report.Findings = append(report.Findings, findings...)
		}
	}

	sort.Slice(report.Findings, func(i, j int) bool {
		a, b := report.Findings[i], report.Findings[j]
		if a.DocID != b.DocID {
			return a.DocID < b.DocID
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Rule < b.Rule
	})

	report.Checked = r.countSelected(docs)
	return report, nil
}

func (r *Runner) countSelected(docs []core.Binding) int {
	n := 0
	for _, d := range docs {
		if r.selected(d.ID) {
			n++
		}
	}
	return n
}

func (r *Runner) selected(id string) bool {
	if len(r.opts.Include) > 0 && !matchAny(r.opts.Include, id) {
		return false
	}
	return !matchAny(r.opts.Exclude, id)
}

func matchAny(patterns []string, id string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, id); err == nil && ok {
			return true
		}
	}
	return false
}
