package src

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// VideoDescriptor holds the probed properties of one media file. Immutable
// once created; one instance per reference and per distorted video.
type VideoDescriptor struct {
	Path     string
	Duration float64
	Width    int
	Height   int
}

// Prober describes a media file. The production implementation shells out
// to ffprobe; tests substitute canned descriptors.
type Prober interface {
	Describe(path string) (VideoDescriptor, error)
}

// FFprobeProber probes with a single ffprobe JSON call per file, instead of
// one call per property.
type FFprobeProber struct{}

func (FFprobeProber) Describe(path string) (VideoDescriptor, error) {
	cmd := exec.Command("ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return VideoDescriptor{}, fmt.Errorf("ffprobe %q: %w", path, err)
	}
	return ParseDescriptor(path, out)
}

// ParseDescriptor converts raw ffprobe JSON output into a VideoDescriptor.
// Exported for testing without a real ffprobe binary.
func ParseDescriptor(path string, data []byte) (VideoDescriptor, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return VideoDescriptor{}, fmt.Errorf("parse ffprobe JSON for %q: %w", path, err)
	}

	desc := VideoDescriptor{
		Path:     path,
		Duration: parseFloat(raw.Format.Duration),
	}
	for _, s := range raw.Streams {
		if s.CodecType != "video" {
			continue
		}
		desc.Width = s.Width
		desc.Height = s.Height
		break
	}

	if desc.Duration <= 0 || desc.Width <= 0 || desc.Height <= 0 {
		return VideoDescriptor{}, fmt.Errorf("no usable video stream in %q (duration %g, %dx%d)",
			path, desc.Duration, desc.Width, desc.Height)
	}
	return desc, nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeStream struct {
	CodecType string `json:"codec_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// ffprobe returns numbers as strings.
func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
