package job

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdewolff/svgo/dom"
	"github.com/tdewolff/svgo/visit"
)

// countingJob mutates the root element exactly `remaining` more times, one
// mutation per pass, so a pipeline run against it stabilizes in a known,
// deterministic number of passes: remaining+1 (the final pass makes no
// change and trips the fingerprint-stabilization check).
type countingJob struct {
	visit.BaseVisitor
	remaining int
}

func newCountingJob(remaining int) *countingJob {
	return &countingJob{BaseVisitor: visit.BaseVisitor{Ord: visit.PreOnly}, remaining: remaining}
}

func (j *countingJob) Name() string          { return "counting" }
func (j *countingJob) Visitor() visit.Visitor { return j }

func (j *countingJob) StartDocument(doc *dom.Document) error {
	if j.remaining > 0 {
		doc.Root().FirstChild().SetAttr("n", strconv.Itoa(j.remaining))
		j.remaining--
	}
	return nil
}

func optionsOf(jobs ...Job) *Options {
	opts := None()
	for _, j := range jobs {
		opts.jobs = append(opts.jobs, j)
	}
	return opts
}

func TestRunStopsOnFingerprintStabilization(t *testing.T) {
	doc := parseDoc(t, `<svg><g/></svg>`)
	res, err := Run(doc, optionsOf(newCountingJob(3)), DefaultMultipassBudget, "")
	require.NoError(t, err)
	assert.Equal(t, 4, res.Iterations)
	n, ok := doc.Root().FirstChild().Attr("n")
	assert.True(t, ok)
	assert.Equal(t, "1", n)
}

func TestRunStopsAtBudgetWhenNeverStable(t *testing.T) {
	doc := parseDoc(t, `<svg><g/></svg>`)
	res, err := Run(doc, optionsOf(newCountingJob(20)), 5, "")
	require.NoError(t, err)
	assert.Equal(t, 5, res.Iterations)
	n, _ := doc.Root().FirstChild().Attr("n")
	assert.Equal(t, "16", n)
}

func TestRunDefaultsBudgetWhenNonPositive(t *testing.T) {
	doc := parseDoc(t, `<svg><g/></svg>`)
	res, err := Run(doc, optionsOf(newCountingJob(3)), 0, "")
	require.NoError(t, err)
	assert.Equal(t, 4, res.Iterations)
}

// warnJob reports one warning every pass it runs, via the informal
// TakeWarnings interface the pipeline checks for after each job.
type warnJob struct {
	visit.BaseVisitor
	message string
}

func (j *warnJob) Name() string           { return "warn" }
func (j *warnJob) Visitor() visit.Visitor { return j }
func (j *warnJob) TakeWarnings() []Warning {
	return []Warning{{Job: j.Name(), Message: j.message}}
}

func TestRunCollectsWarningsFromEveryPassRun(t *testing.T) {
	doc := parseDoc(t, `<svg><g/></svg>`)
	res, err := Run(doc, optionsOf(&warnJob{BaseVisitor: visit.BaseVisitor{Ord: visit.PreOnly}, message: "heads up"}), DefaultMultipassBudget, "")
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "warn", res.Warnings[0].Job)
	assert.Equal(t, "heads up", res.Warnings[0].Message)
}

// abortJob always aborts instead of erroring the whole run.
type abortJob struct {
	visit.BaseVisitor
}

func (j *abortJob) Name() string           { return "abort" }
func (j *abortJob) Visitor() visit.Visitor { return j }
func (j *abortJob) StartDocument(doc *dom.Document) error {
	return &Aborted{Job: j.Name(), Message: "cannot proceed"}
}

func TestRunRecordsAbortedWithoutFailingTheRun(t *testing.T) {
	doc := parseDoc(t, `<svg><g/></svg>`)
	res, err := Run(doc, optionsOf(&abortJob{BaseVisitor: visit.BaseVisitor{Ord: visit.PreOnly}}), DefaultMultipassBudget, "")
	require.NoError(t, err)
	require.Len(t, res.Aborted, 1)
	assert.Equal(t, "abort", res.Aborted[0].Job)
}

// failingJob returns a plain error, which must fail the whole run.
type failingJob struct {
	visit.BaseVisitor
}

func (j *failingJob) Name() string           { return "failing" }
func (j *failingJob) Visitor() visit.Visitor { return j }
func (j *failingJob) StartDocument(doc *dom.Document) error {
	return assert.AnError
}

func TestRunPropagatesOrdinaryJobErrors(t *testing.T) {
	doc := parseDoc(t, `<svg><g/></svg>`)
	_, err := Run(doc, optionsOf(&failingJob{BaseVisitor: visit.BaseVisitor{Ord: visit.PreOnly}}), DefaultMultipassBudget, "")
	assert.Error(t, err)
}
