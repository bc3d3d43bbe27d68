package orchestrator

import (
	"fmt"

	"autoinspect/internal/analysis"
)

// State tracks one stage of an orchestrated run.
type State string

const (
	StatePending State = "pending"
	StateRunning State = "running"
	StateDone    State = "done"
	StateFailed  State = "failed"
)

// Stage is the per-kind record of a run. A dependent stage whose
// prerequisite failed still runs, with Degraded set; partial results
// beat total failure because every purchased analysis must render
// something.
type Stage struct {
	Kind     analysis.Kind
	State    State
	Attempts int
	Err      error
	// Degraded means the stage ran without the context a prerequisite
	// would have provided.
	Degraded bool
}

// StageError is the single terminal error surfaced for a failed kind.
// It carries enough for the caller to decide between refund, retry
// later, or a generic failure state.
type StageError struct {
	Kind     analysis.Kind
	Attempts int
	Err      error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("analysis %s failed after %d attempt(s): %v", e.Kind, e.Attempts, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// PrerequisiteFailedError records why a dependent ran degraded. It is
// informational: it never aborts the dependent stage.
type PrerequisiteFailedError struct {
	Kind         analysis.Kind
	Prerequisite analysis.Kind
	Err          error
}

func (e *PrerequisiteFailedError) Error() string {
	return fmt.Sprintf("analysis %s ran without %s context: %v", e.Kind, e.Prerequisite, e.Err)
}

func (e *PrerequisiteFailedError) Unwrap() error { return e.Err }

// prereqs declares the analysis dependency DAG. A requested kind pulls
// its prerequisites into the run; execution order is fixed.
var prereqs = map[analysis.Kind][]analysis.Kind{
	analysis.KindDamage:    {},
	analysis.KindValuation: {analysis.KindDamage},
	analysis.KindReport:    {analysis.KindDamage, analysis.KindValuation},
}

// runOrder is the topological order of the DAG.
var runOrder = []analysis.Kind{analysis.KindDamage, analysis.KindValuation, analysis.KindReport}

// expandKinds returns the requested kinds plus all transitive
// prerequisites, in execution order.
func expandKinds(requested []analysis.Kind) []analysis.Kind {
	want := map[analysis.Kind]bool{}
	var add func(k analysis.Kind)
	add = func(k analysis.Kind) {
		if want[k] {
			return
		}
		want[k] = true
		for _, p := range prereqs[k] {
			add(p)
		}
	}
	for _, k := range requested {
		add(k)
	}
	out := make([]analysis.Kind, 0, len(want))
	for _, k := range runOrder {
		if want[k] {
			out = append(out, k)
		}
	}
	return out
}

// RunResult aggregates the stages of one orchestrated run. Result
// pointers are nil for kinds that did not reach done.
type RunResult struct {
	RunID     string
	ReportID  string
	Stages    map[analysis.Kind]*Stage
	Damage    *analysis.AnalysisResult
	Valuation *analysis.ValuationResult
	Report    *analysis.ReportResult
}

// Failed returns the terminal errors of all failed stages.
func (r *RunResult) Failed() []*StageError {
	var out []*StageError
	for _, k := range runOrder {
		st, ok := r.Stages[k]
		if !ok || st.State != StateFailed {
			continue
		}
		out = append(out, &StageError{Kind: k, Attempts: st.Attempts, Err: st.Err})
	}
	return out
}
