package job

import (
	"hash/fnv"
	"fmt"

	"github.com/tdewolff/svgo/dom"
	"github.com/tdewolff/svgo/visit"
)

// DefaultMultipassBudget is the iteration ceiling §4.5 names: after one
// full pass of all jobs, the driver compares a fingerprint of the
// document before and after; it stops once the fingerprint stabilises
// or this many passes have run.
const DefaultMultipassBudget = 10

// Info is the per-pass observability record handed, before each pass's
// walk, to every job that implements SetInfo (see infoReceiver), mirroring
// the driver state a job may want to branch on (e.g. skip expensive work
// past the first pass).
type Info struct {
	Iteration     int
	ElementCount  int
	OriginPath    string
}

// Result is the outcome of running a resolved job list against a
// document: the mutated document (same value as passed in — documents
// are mutated in place, never copied), any warnings jobs recorded, and
// the number of passes actually run.
type Result struct {
	Document   *dom.Document
	Warnings   []Warning
	Aborted    []*Aborted
	Iterations int
}

// Run drives opts.Jobs() against doc for up to budget passes (0 means
// DefaultMultipassBudget), stopping early once the document stops
// changing. originPath is threaded into each job's Info purely for
// diagnostics; it may be empty.
func Run(doc *dom.Document, opts *Options, budget int, originPath string) (*Result, error) {
	if budget <= 0 {
		budget = DefaultMultipassBudget
	}
	res := &Result{Document: doc}
	jobs := opts.Jobs()

	prevFingerprint := fingerprint(doc)

	for pass := 1; pass <= budget; pass++ {
		info := Info{Iteration: pass, ElementCount: countElements(doc), OriginPath: originPath}
		for _, j := range jobs {
			if err := runJob(doc, j, info, res); err != nil {
				return nil, err
			}
		}
		res.Iterations = pass

		next := fingerprint(doc)
		if next == prevFingerprint {
			break
		}
		prevFingerprint = next
	}
	return res, nil
}

// infoReceiver is the informal interface a job implements to observe
// per-pass driver state (§4.5 "info record") before it runs.
type infoReceiver interface {
	SetInfo(Info)
}

func runJob(doc *dom.Document, j Job, info Info, res *Result) error {
	if ir, ok := j.(infoReceiver); ok {
		ir.SetInfo(info)
	}
	err := visit.Walk(doc, j.Visitor())
	collectWarnings(j, res)
	if err == nil {
		return nil
	}
	if aborted, ok := err.(*Aborted); ok {
		res.Aborted = append(res.Aborted, aborted)
		return nil
	}
	return fmt.Errorf("job %q: %w", j.Name(), err)
}

// warningCollector is the informal interface several jobs implement to
// surface job-local warnings (§7 "job-local warning") without widening
// the Job interface itself.
type warningCollector interface {
	TakeWarnings() []Warning
}

func collectWarnings(j Job, res *Result) {
	if wc, ok := j.(warningCollector); ok {
		res.Warnings = append(res.Warnings, wc.TakeWarnings()...)
	}
}

func countElements(doc *dom.Document) int {
	n := 0
	var walk func(dom.Node)
	walk = func(node dom.Node) {
		if node.Kind() == dom.KindElement {
			n++
		}
		for c := node.FirstChild(); c.Valid(); c = c.NextSibling() {
			walk(c)
		}
	}
	walk(doc.Root())
	return n
}

// fingerprint is the "length plus a hash of the serialised document"
// stability check the multipass loop uses to detect a fixed point.
func fingerprint(doc *dom.Document) uint64 {
	out := dom.Serialize(doc)
	h := fnv.New64a()
	h.Write([]byte(out))
	return uint64(len(out))<<32 ^ h.Sum64()
}
