package src

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Options are the validated-at-parse-time knobs for one run. Position and
// Duration are nil when the corresponding flags were not given.
type Options struct {
	DryRun     bool
	Position   *float64
	Duration   *float64
	Crop       string
	CropFormat CropFormat
	PSNR       bool
	SSIM       bool
	MSSSIM     bool
	ModelPath  string
	Subsample  int
	Threads    int
}

// Pipeline wires the probing and execution collaborators to the scoring
// flow: probe, validate, plan, execute, aggregate. Tool availability is
// checked by the caller before the pipeline runs.
type Pipeline struct {
	Prober   Prober
	Executor Executor
	Log      zerolog.Logger
	Out      io.Writer
	Opts     Options
}

// Run scores every distorted file against the reference and returns one
// aggregated result per file, in input order. All validation is eager: the
// first failure aborts before any external tool is invoked for scoring.
// In dry-run mode the planned commands are printed and the returned slice
// is nil.
func (p *Pipeline) Run(reference string, files []string) ([]VideoResult, error) {
	p.Log.Info().Msg("Scanning media...")

	if _, err := os.Stat(reference); err != nil {
		return nil, fmt.Errorf("%w: reference video %s", ErrFileNotFound, reference)
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			return nil, fmt.Errorf("%w: distorted video %s", ErrFileNotFound, f)
		}
	}

	ref, err := p.Prober.Describe(reference)
	if err != nil {
		return nil, err
	}
	videos := make([]VideoDescriptor, 0, len(files))
	for _, f := range files {
		v, err := p.Prober.Describe(f)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}

	p.Log.Info().Msg("Verifying arguments...")

	if err := checkWindow(p.Opts.Position, p.Opts.Duration, ref.Duration); err != nil {
		return nil, err
	}

	rect, asMargins, err := ReconcileCrop(p.Opts.Crop, p.Opts.CropFormat, ref.Width, ref.Height)
	if err != nil {
		return nil, err
	}
	if asMargins {
		p.Log.Info().Msg("Interpreting crop geometry as TOP:BOTTOM:LEFT:RIGHT values...")
	}
	if err := CheckCropAgainst(rect, videos); err != nil {
		return nil, err
	}

	if p.Opts.ModelPath != "" {
		if _, err := os.Stat(p.Opts.ModelPath); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, p.Opts.ModelPath)
		}
	}

	specs := BuildMetricSpecs(p.Opts.PSNR, p.Opts.SSIM, p.Opts.MSSSIM)

	plans, err := BuildPlans(videos, ref, rect, specs, PlanOptions{
		Position:  p.Opts.Position,
		Duration:  p.Opts.Duration,
		ModelPath: p.Opts.ModelPath,
		Subsample: p.Opts.Subsample,
		Threads:   p.Opts.Threads,
	}, p.Opts.DryRun)
	if err != nil {
		return nil, err
	}

	if err := RunPlans(p.Out, plans, p.Executor, p.Opts.DryRun, p.Log); err != nil {
		return nil, err
	}
	if p.Opts.DryRun {
		return nil, nil
	}

	results := make([]VideoResult, 0, len(plans))
	for _, plan := range plans {
		metrics, err := Aggregate(plan.OutputCSV, specs, p.Log)
		if err != nil {
			return nil, err
		}
		results = append(results, VideoResult{Label: Label(plan.OutputCSV), Metrics: metrics})
	}
	return results, nil
}

// checkWindow validates the reference trim window. With both position and
// duration set, the whole window must fit inside the reference:
// 0 < position < refDuration - duration.
func checkWindow(position, duration *float64, refDuration float64) error {
	switch {
	case position != nil && duration != nil:
		if !(0 < *position && *position < refDuration-*duration) {
			return fmt.Errorf("%w: position %gs + duration %gs, reference is %gs",
				ErrRange, *position, *duration, refDuration)
		}
	case position != nil:
		if !(0 < *position && *position < refDuration) {
			return fmt.Errorf("%w: position %gs, reference is %gs",
				ErrRange, *position, refDuration)
		}
	case duration != nil:
		if !(0 < *duration && *duration <= refDuration) {
			return fmt.Errorf("%w: duration %gs, reference is %gs",
				ErrRange, *duration, refDuration)
		}
	}
	return nil
}
