// Package main provides the CLI entry point for slidextract.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/slidextract/pkg/adapters/ffmpegsource"
	"github.com/user/slidextract/pkg/adapters/filesink"
	"github.com/user/slidextract/pkg/adapters/ggrenderer"
	"github.com/user/slidextract/pkg/adapters/logger"
	"github.com/user/slidextract/pkg/adapters/nullsink"
	"github.com/user/slidextract/pkg/adapters/osfilesystem"
	"github.com/user/slidextract/pkg/adapters/pdfdocument"
	"github.com/user/slidextract/pkg/adapters/smartprobe"
	"github.com/user/slidextract/pkg/adapters/ytdlp"
	"github.com/user/slidextract/pkg/config"
	"github.com/user/slidextract/pkg/orchestrator"
	"github.com/user/slidextract/pkg/ports"
	"github.com/user/slidextract/pkg/stages/detect"
	"github.com/user/slidextract/pkg/stages/document"
	"github.com/user/slidextract/pkg/summarizer"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Extract ExtractCmd `cmd:"" default:"withargs" help:"Extract the slides of a presentation video into a PDF."`
	Probe   ProbeCmd   `cmd:"" help:"Show video stream information."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// ExtractCmd defines the extract subcommand.
type ExtractCmd struct {
	// Required arguments
	Input string `arg:"" optional:"" help:"Video file path or URL."`

	// Config file
	Config string `short:"C" type:"existingfile" help:"YAML configuration file."`

	// Output
	Output *string `short:"o" help:"Output PDF file path (default: presentation_slides.pdf)."`
	Title  *string `help:"Document title."`

	// Speaker region
	SpeakerWidth  *float64 `help:"Speaker region width as a fraction of the frame width (default: 0.15)."`
	SpeakerHeight *float64 `help:"Speaker region height as a fraction of the frame height (default: 0.15)."`
	Position      *string  `help:"Speaker region corner: top-left, top-right, bottom-left or bottom-right (default: top-left)."`

	// Detection
	Threshold   *float64 `short:"t" help:"Minimum change score for a new slide, 0 to 1 (default: 0.25)."`
	MinInterval *float64 `short:"i" help:"Minimum seconds between slides (default: 2.0)."`
	SampleFPS   *float64 `help:"Scan this many frames per second (default: every frame)."`

	// Document
	PageWidth       *int    `help:"Page width in points (default: video width)."`
	PageHeight      *int    `help:"Page height in points (default: video height)."`
	BackgroundColor *string `help:"Letterbox color (hex, e.g., #000000)."`
	NoTimestamps    bool    `help:"Do not print the slide time on each page."`
	JPEGQuality     *int    `short:"q" name:"jpeg-quality" help:"JPEG quality of page images, 1 to 100 (default: 90)."`
	Workers         *int    `short:"w" help:"Number of page composition workers (default: 4)."`

	// External tools
	FFmpegPath  string `help:"Path to ffmpeg executable."`
	FFprobePath string `help:"Path to ffprobe executable."`
	YtDlpPath   string `name:"ytdlp-path" help:"Path to yt-dlp executable."`

	// Temp files and debug
	KeepTemp bool    `help:"Keep downloaded videos and extracted frames."`
	Debug    bool    `short:"d" help:"Enable debug output."`
	DebugDir *string `help:"Directory for debug output (default: ./temp_frames)."`
	Summary  string  `short:"s" help:"Write a run summary to this path (.json for JSON, Markdown otherwise)."`

	// Logging options
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// ProbeCmd defines the probe subcommand.
type ProbeCmd struct {
	Input       string `arg:"" type:"existingfile" help:"Video file path."`
	FFprobePath string `help:"Path to ffprobe executable."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("slidextract"),
		kong.Description(l10n.T("Extract presentation slides from a video into a PDF.")),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Run executes the extract command.
func (cmd *ExtractCmd) Run() error {
	cfg, err := cmd.buildConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Create logger
	var log ports.Logger
	if cmd.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cmd.LogLevel))
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Create adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	prober := smartprobe.New(cfg.FFprobePath)
	opener := ffmpegsource.NewOpener(prober, cfg.FFmpegPath)
	fetcher := ytdlp.New(ytdlp.Options{BinaryPath: cfg.YtDlpPath})
	writer := pdfdocument.New(fs, renderer)

	// Create debug sink
	var sink ports.DebugSink
	if cfg.Debug || cfg.KeepTemp {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	// Create stages
	detectStage := detect.NewStage(sink, log)
	documentStage := document.NewStage(renderer, writer, log, cfg.Workers)

	orch := orchestrator.New(fetcher, opener, detectStage, documentStage, fs, log)

	orchConfig, err := cfg.ToOrchestratorConfig()
	if err != nil {
		return err
	}

	log.Info("Extracting slides from %s...", orchConfig.Input)

	result, err := orch.Run(ctx, orchConfig)
	if err != nil {
		return err
	}

	log.Info("Output saved to %s (%d pages)", result.OutputPath, result.PageCount)

	if cfg.Summary != "" {
		md := summarizer.NewMarkdownFormatter(
			summarizer.WithTranslator(l10n.T),
			summarizer.WithVersion(version),
		)
		sw := summarizer.NewWriter(summarizer.ForPath(cfg.Summary, md), fs)
		if err := sw.Write(cfg.Summary, buildSummary(orchConfig, result)); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		log.Info("Summary saved to %s", cfg.Summary)
	}

	return nil
}

// buildConfig layers the config file, then CLI overrides, over the defaults.
func (cmd *ExtractCmd) buildConfig() (config.Config, error) {
	cfg := config.Defaults()
	if cmd.Config != "" {
		loaded, err := config.LoadFromFile(cmd.Config)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Input != "" {
		cfg.Input = cmd.Input
	}
	if cfg.Input == "" {
		return cfg, fmt.Errorf("%s", l10n.T("no input video given"))
	}

	if cmd.Output != nil {
		cfg.OutputPath = *cmd.Output
	}
	if cmd.Title != nil {
		cfg.Title = *cmd.Title
	}
	if cmd.SpeakerWidth != nil {
		cfg.SpeakerWidth = *cmd.SpeakerWidth
	}
	if cmd.SpeakerHeight != nil {
		cfg.SpeakerHeight = *cmd.SpeakerHeight
	}
	if cmd.Position != nil {
		cfg.Position = *cmd.Position
	}
	if cmd.Threshold != nil {
		cfg.Threshold = *cmd.Threshold
	}
	if cmd.MinInterval != nil {
		cfg.MinInterval = *cmd.MinInterval
	}
	if cmd.SampleFPS != nil {
		cfg.SampleFPS = *cmd.SampleFPS
	}
	if cmd.PageWidth != nil {
		cfg.PageWidth = *cmd.PageWidth
	}
	if cmd.PageHeight != nil {
		cfg.PageHeight = *cmd.PageHeight
	}
	if cmd.BackgroundColor != nil {
		cfg.BackgroundColor = *cmd.BackgroundColor
	}
	if cmd.NoTimestamps {
		cfg.Timestamps = false
	}
	if cmd.JPEGQuality != nil {
		cfg.JPEGQuality = *cmd.JPEGQuality
	}
	if cmd.Workers != nil {
		cfg.Workers = *cmd.Workers
	}
	if cmd.FFmpegPath != "" {
		cfg.FFmpegPath = cmd.FFmpegPath
	}
	if cmd.FFprobePath != "" {
		cfg.FFprobePath = cmd.FFprobePath
	}
	if cmd.YtDlpPath != "" {
		cfg.YtDlpPath = cmd.YtDlpPath
	}
	if cmd.KeepTemp {
		cfg.KeepTemp = true
	}
	if cmd.Debug {
		cfg.Debug = true
	}
	if cmd.DebugDir != nil {
		cfg.DebugDir = *cmd.DebugDir
	}
	if cmd.Summary != "" {
		cfg.Summary = cmd.Summary
	}

	return cfg, nil
}

// buildSummary converts a run result into a summary.
func buildSummary(cfg orchestrator.Config, result orchestrator.RunResult) *summarizer.Summary {
	b := summarizer.NewBuilder().
		WithInput(cfg.Input, result.VideoPath).
		WithVideo(summarizer.VideoInfo{
			Width:         result.Width,
			Height:        result.Height,
			FramesScanned: result.FramesScanned,
			MaskedPixels:  result.MaskedPixels,
		}).
		WithSettings(summarizer.Settings{
			Position:      cfg.Region.Corner.String(),
			SpeakerWidth:  cfg.Region.WidthRatio,
			SpeakerHeight: cfg.Region.HeightRatio,
			Threshold:     cfg.Params.Threshold,
			MinInterval:   cfg.Params.MinInterval,
			SampleFPS:     cfg.SampleFPS,
		}).
		WithDocument(summarizer.DocumentInfo{
			Path:       result.OutputPath,
			PageCount:  result.PageCount,
			PageWidth:  result.PageSize.Width,
			PageHeight: result.PageSize.Height,
		}).
		WithElapsed(result.Elapsed)

	for _, s := range result.Slides {
		b.AddSlide(summarizer.Slide{
			Index:      s.Index,
			FrameIndex: s.FrameIndex,
			Timestamp:  s.Timestamp,
			Score:      s.Score,
		})
	}
	return b.Build()
}

// Run executes the probe command.
func (cmd *ProbeCmd) Run() error {
	prober := smartprobe.New(cmd.FFprobePath)

	info, err := prober.Probe(context.Background(), cmd.Input)
	if err != nil {
		return err
	}

	fmt.Println(l10n.F("Codec: %s", info.Codec))
	fmt.Println(l10n.F("Dimensions: %dx%d", info.Width, info.Height))
	fmt.Println(l10n.F("Frame rate: %.3f fps", info.FrameRate))
	if info.FrameCount > 0 {
		fmt.Println(l10n.F("Frames: %d", info.FrameCount))
	}
	duration := time.Duration(info.DurationMs) * time.Millisecond
	fmt.Println(l10n.F("Duration: %s", duration))
	fmt.Println(l10n.F("Read by: %s", prober.Backend()))
	return nil
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("slidextract version %s", version))
	return nil
}
