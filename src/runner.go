package src

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
)

// Executor runs one plan to completion. The production implementation
// shells out to ffmpeg; tests substitute a fake that writes canned CSVs.
type Executor interface {
	Execute(plan InvocationPlan) error
}

// FFmpegExecutor runs plans with the real ffmpeg binary. Output streams are
// inherited so ffmpeg's -stats progress line stays visible.
type FFmpegExecutor struct{}

func (FFmpegExecutor) Execute(plan InvocationPlan) error {
	cmd := exec.Command("ffmpeg", plan.Args()...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed for %q: %w", plan.Distorted, err)
	}
	return nil
}

// RunPlans echoes and executes the plans one at a time, in input order. In
// dry-run mode every command is printed and nothing runs. The first failure
// aborts the run; CSVs already produced are left in place.
func RunPlans(w io.Writer, plans []InvocationPlan, e Executor, dryRun bool, log zerolog.Logger) error {
	var bar *progressbar.ProgressBar
	if !dryRun {
		bar = progressbar.Default(int64(len(plans)), "scoring")
	}

	for _, plan := range plans {
		fmt.Fprintf(w, "\n%s\n\n", plan.ShellCommand())
		if dryRun {
			continue
		}
		log.Info().Str("distorted", plan.Distorted).Msg("computing quality metrics")
		if err := e.Execute(plan); err != nil {
			return err
		}
		_ = bar.Add(1)
	}
	return nil
}
