package src

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// VerifyTools checks that ffmpeg and ffprobe are on PATH and that ffmpeg
// was built with the libvmaf filter. It runs before any media I/O so a
// missing tool fails the run immediately.
func VerifyTools(log zerolog.Logger) error {
	for _, tool := range []string{"ffmpeg", "ffprobe"} {
		log.Info().Msgf("Verifying %q availability...", tool)
		if _, err := exec.LookPath(tool); err != nil {
			return fmt.Errorf("%w: %s", ErrMissingTool, tool)
		}
	}

	log.Info().Msg("Verifying \"libvmaf\" availability...")
	out, err := exec.Command("ffmpeg", "-hide_banner", "-filters").Output()
	if err != nil {
		return fmt.Errorf("%w: ffmpeg -filters: %v", ErrMissingTool, err)
	}
	if !strings.Contains(string(out), "libvmaf") {
		return fmt.Errorf("%w: ffmpeg built without libvmaf", ErrMissingTool)
	}
	return nil
}
