// Package job implements the optimisation passes the pipeline driver runs
// over a parsed document. Every job is a visit.Visitor parameterised by its
// own options record; the driver dispatches by walking a fixed, ordered job
// list rather than reflecting on option names at run time.
package job

import (
	"github.com/tdewolff/svgo/dom"
	"github.com/tdewolff/svgo/visit"
)

// Job is one optimisation pass: a name for diagnostics/config lookup and
// the visitor that implements it.
type Job interface {
	Name() string
	Visitor() visit.Visitor
}

// Warning records a job-local problem that left one element untouched
// rather than aborting the whole job (§7, "Job-local warning").
type Warning struct {
	Job     string
	Node    dom.Node
	Message string
}

func (w Warning) String() string {
	return w.Job + ": " + w.Message
}

// Aborted is returned by a job that hit a document-level invariant it
// cannot repair. The pipeline records it and moves on to the next job.
type Aborted struct {
	Job     string
	Message string
}

func (a *Aborted) Error() string { return a.Job + " aborted: " + a.Message }
