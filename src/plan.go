package src

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// PlanOptions are the optional knobs applied to every plan in a run.
// Position and Duration are nil when the flags were not given; they
// constrain only the reference input window, never the distorted stream.
type PlanOptions struct {
	Position  *float64
	Duration  *float64
	ModelPath string
	Subsample int
	Threads   int
}

// InvocationPlan is one fully assembled ffmpeg invocation for one distorted
// video. Building a plan never writes to the filesystem; the plan is either
// executed once or printed and discarded in dry-run mode.
type InvocationPlan struct {
	Distorted   string
	Reference   string
	FilterGraph string
	OutputCSV   string

	position *float64
	duration *float64
}

// OutputPath derives the per-video CSV path from the distorted file name.
func OutputPath(distorted string) string {
	base := filepath.Base(distorted)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "-quality.csv"
}

// BuildPlans constructs one plan per distorted video, in input order. When
// not in dry-run mode, every target CSV path is checked up front so a
// pre-existing output for video N is caught before videos 1..N-1 are
// processed.
func BuildPlans(videos []VideoDescriptor, ref VideoDescriptor, rect CropRectangle,
	specs []MetricSpec, opts PlanOptions, dryRun bool) ([]InvocationPlan, error) {

	if !dryRun {
		for _, v := range videos {
			out := OutputPath(v.Path)
			if _, err := os.Stat(out); err == nil {
				return nil, fmt.Errorf("%w: %s", ErrOutputExists, out)
			}
		}
	}

	plans := make([]InvocationPlan, 0, len(videos))
	for _, v := range videos {
		out := OutputPath(v.Path)
		plans = append(plans, InvocationPlan{
			Distorted:   v.Path,
			Reference:   ref.Path,
			FilterGraph: buildFilterGraph(rect, specs, opts, out),
			OutputCSV:   out,
			position:    opts.Position,
			duration:    opts.Duration,
		})
	}
	return plans, nil
}

// buildFilterGraph assembles the filter_complex string: timestamp reset on
// the distorted stream, crop plus timestamp reset on the reference stream,
// then the libvmaf stage logging per-frame scores to CSV. Optional libvmaf
// parameters keep a stable order: model, subsample, threads, then one
// fragment per extra metric.
func buildFilterGraph(rect CropRectangle, specs []MetricSpec, opts PlanOptions, outputCSV string) string {
	var filter strings.Builder
	filter.WriteString("[0:v]setpts=PTS-STARTPTS[dist]; ")
	filter.WriteString("[1:v]crop=" + rect.String() + ",setpts=PTS-STARTPTS[ref]; ")
	filter.WriteString("[dist][ref]libvmaf=log_fmt=csv:log_path=" + outputCSV)

	if opts.ModelPath != "" {
		filter.WriteString(":model_path=" + opts.ModelPath)
	}
	if opts.Subsample > 0 {
		fmt.Fprintf(&filter, ":n_subsample=%d", opts.Subsample)
	}
	if opts.Threads > 0 {
		fmt.Fprintf(&filter, ":n_threads=%d", opts.Threads)
	}

	for _, spec := range specs {
		filter.WriteString(spec.Fragment)
	}
	return filter.String()
}

// Args returns the ffmpeg argument list for this plan. The distorted video
// is input 0; the reference, optionally trimmed with -ss/-t, is input 1.
func (p InvocationPlan) Args() []string {
	args := []string{"-hide_banner", "-v", "fatal", "-stats", "-i", p.Distorted}
	if p.position != nil {
		args = append(args, "-ss", formatSeconds(*p.position))
	}
	if p.duration != nil {
		args = append(args, "-t", formatSeconds(*p.duration))
	}
	args = append(args, "-i", p.Reference, "-filter_complex", p.FilterGraph, "-f", "null", "-")
	return args
}

// ShellCommand renders the full command shell-quoted, for dry-run output
// and the pre-execution echo.
func (p InvocationPlan) ShellCommand() string {
	parts := []string{"ffmpeg"}
	for _, a := range p.Args() {
		parts = append(parts, shellQuote(a))
	}
	return strings.Join(parts, " ")
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$&;()<>|*?[]#~%{}`!") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
