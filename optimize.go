// Package svgo optimises SVG/XML documents for size while preserving
// rendered output, competing on parity with SVGO while running
// substantially faster on typical inputs.
package svgo

import (
	"strings"

	"github.com/tdewolff/svgo/dom"
	"github.com/tdewolff/svgo/job"
)

// Options is a resolved, ordered job list produced by Default, None,
// Extend or ConvertSvgoConfig.
type Options = job.Options

// SvgoPlugin is one entry of an SVGO plugins array, for use with
// ConvertSvgoConfig.
type SvgoPlugin = job.SvgoPlugin

// Default returns the canonical job list mirroring SVGO's own default
// preset.
func Default() (*Options, error) { return job.Default() }

// None returns the empty preset.
func None() *Options { return job.None() }

// Extend overlays named job entries onto base: false disables a job,
// true enables it with its own defaults, and an options map enables it
// with those options layered over its defaults.
func Extend(base *Options, overlay map[string]any) (*Options, error) {
	return job.Extend(base, overlay)
}

// ConvertSvgoConfig translates an SVGO plugin list into a job-options
// record. A nil slice returns Default; an empty slice returns None.
func ConvertSvgoConfig(plugins []SvgoPlugin) (*Options, error) {
	return job.ConvertSvgoConfig(plugins)
}

// Result is what Optimise returns: the optimised text plus any
// job-local warnings recorded along the way (§7, "Warnings are
// surfaced as a list alongside the output string").
type Result struct {
	Output   string
	Warnings []job.Warning
	Aborted  []*job.Aborted
}

// Optimise parses source as XML, runs the resolved options (Default
// when opts is nil) against it for up to a multipass budget of 10
// iterations, and serialises the result. It never writes to stdout or
// stderr; callers decide what to do with Result.Warnings.
func Optimise(source string, opts *Options) (Result, error) {
	if opts == nil {
		var err error
		opts, err = Default()
		if err != nil {
			return Result{}, err
		}
	}

	doc, err := dom.Parse(strings.NewReader(source))
	if err != nil {
		return Result{}, &ParseError{Err: err}
	}

	res, err := job.Run(doc, opts, job.DefaultMultipassBudget, "")
	if err != nil {
		return Result{}, err
	}

	return Result{
		Output:   dom.Serialize(doc),
		Warnings: res.Warnings,
		Aborted:  res.Aborted,
	}, nil
}

// OptimiseFile is like Optimise but threads path through as the job
// Info record's OriginPath, purely for diagnostics.
func OptimiseFile(path, source string, opts *Options) (Result, error) {
	if opts == nil {
		var err error
		opts, err = Default()
		if err != nil {
			return Result{}, err
		}
	}

	doc, err := dom.Parse(strings.NewReader(source))
	if err != nil {
		return Result{}, &ParseError{Err: err}
	}

	res, err := job.Run(doc, opts, job.DefaultMultipassBudget, path)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Output:   dom.Serialize(doc),
		Warnings: res.Warnings,
		Aborted:  res.Aborted,
	}, nil
}
