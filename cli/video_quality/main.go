// Command video-quality scores one or more distorted videos against a
// reference video using FFmpeg's libvmaf filter, then prints mean and
// 5th-percentile statistics for each requested quality metric.
package main

import (
	"fmt"
	"os"

	"github.com/GreatValueCreamSoda/video-quality/src"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

var version = "1.0.0-dev"

const helpText = `Calculates frame-by-frame VMAF scores for one or more distorted videos
relative to a reference video and saves results in a CSV file per video.

Usage: video-quality [OPTIONS...] DISTORTED-VIDEO(S)

Input Options:
-r,   --reference PATH      path to reference video file
-n,   --dry-run             print FFmpeg command and exit
      --position SECONDS    the time in the reference video to start from
      --duration SECONDS    duration of clip from reference video
      --crop WIDTH:HEIGHT:X:Y
                            crop value of distorted video relative to reference
                                video. TOP:BOTTOM:LEFT:RIGHT crop format also
                                accepted
      --crop-format FORM    how to read --crop: auto, rect or margin
                                (default: auto)

Additional Quality Metrics:
      --psnr                enables computing PSNR
      --ssim                enables computing SSIM
      --ms-ssim             enables computing MS-SSIM`

const helpFull = `VMAF options:
      --model PATH          path to VMAF model
      --subsample INT       set interval for frame subsampling (default: 1)
      --threads INT         set the number of threads used (default: 1)`

const helpBottom = `Other options:
      --csv-report PATH     write the aggregated summaries to a CSV file
      --config PATH         read option defaults from a YAML file
-h,   --help                print help message and exit
      --full-help           print full help message and exit
      --version             print version information and exit

Requires FFprobe and FFmpeg with VMAF support.`

var (
	reference  string
	dryRun     bool
	position   float64
	duration   float64
	crop       string
	cropFormat string
	psnr       bool
	ssim       bool
	msSSIM     bool
	model      string
	subsample  int
	threads    int
	csvReport  string
	configPath string

	showHelp     bool
	showFullHelp bool
	showVersion  bool
)

func init() {
	pflag.StringVarP(&reference, "reference", "r", "", "path to reference video file")
	pflag.BoolVarP(&dryRun, "dry-run", "n", false, "print FFmpeg command and exit")
	pflag.Float64Var(&position, "position", 0, "the time in the reference video to start from")
	pflag.Float64Var(&duration, "duration", 0, "duration of clip from reference video")
	pflag.StringVar(&crop, "crop", "", "crop value of distorted video relative to reference video")
	pflag.StringVar(&cropFormat, "crop-format", "auto", "how to read --crop: auto, rect or margin")
	pflag.BoolVar(&psnr, "psnr", false, "enables computing PSNR")
	pflag.BoolVar(&ssim, "ssim", false, "enables computing SSIM")
	pflag.BoolVar(&msSSIM, "ms-ssim", false, "enables computing MS-SSIM")
	pflag.StringVar(&model, "model", "", "path to VMAF model")
	pflag.IntVar(&subsample, "subsample", 0, "set interval for frame subsampling")
	pflag.IntVar(&threads, "threads", 0, "set the number of threads used")
	pflag.StringVar(&csvReport, "csv-report", "", "write the aggregated summaries to a CSV file")
	pflag.StringVar(&configPath, "config", "", "read option defaults from a YAML file")
	pflag.BoolVarP(&showHelp, "help", "h", false, "print help message and exit")
	pflag.BoolVar(&showFullHelp, "full-help", false, "print full help message and exit")
	pflag.BoolVar(&showVersion, "version", false, "print version information and exit")
	pflag.CommandLine.SortFlags = false
	pflag.Parse()
}

func main() {
	switch {
	case showVersion:
		fmt.Printf("video-quality %s\n", version)
		return
	case showHelp:
		fmt.Println(helpText)
		fmt.Println()
		fmt.Println(helpBottom)
		return
	case showFullHelp:
		fmt.Println(helpText)
		fmt.Println()
		fmt.Println(helpFull)
		fmt.Println()
		fmt.Println(helpBottom)
		return
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	files := pflag.Args()
	if reference == "" || len(files) == 0 {
		fmt.Println(helpText)
		fmt.Println()
		fmt.Println(helpBottom)
		os.Exit(2)
	}

	format, err := src.ParseCropFormat(cropFormat)
	if err != nil {
		log.Error().Msg(err.Error())
		os.Exit(2)
	}

	if err := applyFileConfig(log); err != nil {
		log.Error().Msg(err.Error())
		os.Exit(1)
	}

	opts := src.Options{
		DryRun:     dryRun,
		Crop:       crop,
		CropFormat: format,
		PSNR:       psnr,
		SSIM:       ssim,
		MSSSIM:     msSSIM,
		ModelPath:  model,
		Subsample:  subsample,
		Threads:    threads,
	}
	if pflag.CommandLine.Changed("position") {
		opts.Position = &position
	}
	if pflag.CommandLine.Changed("duration") {
		opts.Duration = &duration
	}

	if err := src.VerifyTools(log); err != nil {
		log.Error().Msg(err.Error())
		os.Exit(1)
	}

	pipe := src.Pipeline{
		Prober:   src.FFprobeProber{},
		Executor: src.FFmpegExecutor{},
		Log:      log,
		Out:      os.Stdout,
		Opts:     opts,
	}
	results, err := pipe.Run(reference, files)
	if err != nil {
		log.Error().Msg(err.Error())
		os.Exit(1)
	}
	if dryRun {
		return
	}

	fmt.Println()
	src.WriteReport(os.Stdout, results)

	if csvReport != "" {
		if err := writeCSVReport(csvReport, results); err != nil {
			log.Error().Msg(err.Error())
			os.Exit(1)
		}
		log.Info().Str("path", csvReport).Msg("wrote CSV report")
	}
}

// applyFileConfig layers YAML defaults under the flags: file values fill in
// only the options the user did not set on the command line.
func applyFileConfig(log zerolog.Logger) error {
	path := configPath
	if path == "" {
		path = src.FindConfigFile()
	}
	if path == "" {
		return nil
	}

	cfg, err := src.LoadFileConfig(path)
	if err != nil {
		return err
	}
	log.Info().Str("path", path).Msg("loaded defaults from config file")

	if !pflag.CommandLine.Changed("model") && cfg.Model != "" {
		model = cfg.Model
	}
	if !pflag.CommandLine.Changed("subsample") && cfg.Subsample > 0 {
		subsample = cfg.Subsample
	}
	if !pflag.CommandLine.Changed("threads") && cfg.Threads > 0 {
		threads = cfg.Threads
	}
	return nil
}

func writeCSVReport(path string, results []src.VideoResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create CSV report: %w", err)
	}
	defer f.Close()
	return src.WriteCSVReport(f, results)
}
