// Command asciiart converts images and videos to ASCII art.
//
// Usage:
//
//	asciiart [flags] INPUT...
//
// Images are written as PNG (or the input's format when it can be encoded),
// videos as MP4 with the input's audio track. With several inputs, -o names
// a directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexflint/go-arg"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/asciiart"
	"github.com/gogpu/asciiart/internal/imageio"
	"github.com/gogpu/asciiart/text"
	"github.com/gogpu/asciiart/video"
)

type args struct {
	Inputs []string `arg:"positional,required" help:"image or video files to convert"`
	Output string   `arg:"-o,--output" help:"output file, or directory when converting several inputs"`

	Scale      float64 `arg:"-s,--scale" default:"1.0" help:"downsampling factor; each remaining pixel becomes one glyph"`
	Padding    int     `arg:"-p,--padding" default:"0" help:"blanks appended to the bright end of the glyph ramp"`
	Background string  `arg:"-b,--background" default:"dark" help:"canvas background: dark or light"`
	Mode       string  `arg:"-m,--mode" default:"color" help:"glyph color: color or mono"`
	Font       string  `arg:"--font" default:"regular" help:"built-in font: regular, medium, bold, italic, bold-italic, mono, mono-bold, smallcaps"`
	FontFile   string  `arg:"--font-file" help:"TTF/OTF file to draw glyphs with"`
	FontScale  float64 `arg:"--font-scale" default:"0.4" help:"glyph size multiplier"`
	Thickness  int     `arg:"-t,--thickness" default:"1" help:"stroke thickness in pixels"`
	LineStyle  string  `arg:"--line-style" default:"aliased" help:"aliased or antialiased glyph edges"`
	TextOffset float64 `arg:"--text-offset" default:"1.3" help:"cell size as a multiple of the glyph box (> 1)"`
	Resample   string  `arg:"--resample" default:"bilinear" help:"downsampling filter: bilinear, nearest, catmullrom, lanczos, mitchell"`
	Workers    int     `arg:"-w,--workers" help:"row workers per frame (default GOMAXPROCS)"`

	Jobs     int    `arg:"-j,--jobs" default:"1" help:"inputs converted at the same time"`
	KeepTemp bool   `arg:"--keep-temp" help:"keep the temporary directory of a failed video"`
	FFmpeg   string `arg:"--ffmpeg" default:"ffmpeg" help:"ffmpeg binary"`
	FFprobe  string `arg:"--ffprobe" default:"ffprobe" help:"ffprobe binary"`
	Codec    string `arg:"--codec" default:"libx264" help:"video encoder"`
	Decoder  string `arg:"--decoder" default:"ffmpeg" help:"video frame decoder: ffmpeg, or gst in builds with -tags gst"`
	Verbose  bool   `arg:"-v,--verbose" help:"log every frame"`
}

func (args) Description() string {
	return "Convert images and videos to ASCII art."
}

func main() {
	var a args
	arg.MustParse(&a)

	level := slog.LevelInfo
	if a.Verbose {
		level = slog.LevelDebug
	}
	asciiart.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, a); err != nil {
		fmt.Fprintln(os.Stderr, "asciiart:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, a args) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	// Font problems surface here, before any input is read.
	r, err := asciiart.NewRenderer(cfg)
	if err != nil {
		return err
	}
	r.Close()

	open, err := sourceOpener(a.Decoder)
	if err != nil {
		return err
	}
	outs, err := outputPaths(a.Inputs, a.Output)
	if err != nil {
		return err
	}
	if len(a.Inputs) > 1 && a.Output != "" {
		if err := os.MkdirAll(a.Output, 0o755); err != nil {
			return err
		}
	}

	c := &converter{
		cfg:    cfg,
		ff:     &video.FFmpeg{FFmpegPath: a.FFmpeg, FFprobePath: a.FFprobe, Codec: a.Codec, Runner: video.ExecRunner{}},
		open:   open,
		keep:   a.KeepTemp,
		p:      message.NewPrinter(language.English),
		single: len(a.Inputs) == 1,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(a.Jobs, 1))
	for i, in := range a.Inputs {
		out := outs[i]
		g.Go(func() error {
			if err := c.convert(ctx, in, out); err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (a args) config() (asciiart.Config, error) {
	bg, err := asciiart.ParseBackground(a.Background)
	if err != nil {
		return asciiart.Config{}, err
	}
	mode, err := asciiart.ParseColorMode(a.Mode)
	if err != nil {
		return asciiart.Config{}, err
	}
	line, err := asciiart.ParseLineStyle(a.LineStyle)
	if err != nil {
		return asciiart.Config{}, err
	}
	filter, err := asciiart.ParseResample(a.Resample)
	if err != nil {
		return asciiart.Config{}, err
	}
	family, err := text.ParseFamily(a.Font)
	if err != nil {
		return asciiart.Config{}, &asciiart.ConfigError{Field: "font", Value: a.Font, Reason: "unknown font family", Err: err}
	}
	return asciiart.NewConfig(
		asciiart.WithScale(a.Scale),
		asciiart.WithPadding(a.Padding),
		asciiart.WithBackground(bg),
		asciiart.WithColorMode(mode),
		asciiart.WithFont(family),
		asciiart.WithFontFile(a.FontFile),
		asciiart.WithFontScale(a.FontScale),
		asciiart.WithThickness(a.Thickness),
		asciiart.WithLineStyle(line),
		asciiart.WithTextOffset(a.TextOffset),
		asciiart.WithResample(filter),
		asciiart.WithWorkers(a.Workers),
	)
}

// outputPaths maps every input to its output and rejects inputs that
// would write the same file.
func outputPaths(inputs []string, output string) ([]string, error) {
	outs := make([]string, len(inputs))
	seen := make(map[string]string, len(inputs))
	for i, in := range inputs {
		out := outputPath(in, output, len(inputs) > 1)
		key := filepath.Clean(out)
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("%s and %s would both write %s", prev, in, out)
		}
		seen[key] = in
		outs[i] = out
	}
	return outs, nil
}

// outputPath picks where in is written. Without -o the result goes next to
// the input as <name>_ascii<ext>, or <name>_<srcext>_ascii<ext> when the
// extension changes.
func outputPath(in, output string, many bool) string {
	ext := defaultExt(in)
	if output != "" && !many {
		return output
	}
	srcExt := filepath.Ext(in)
	base := strings.TrimSuffix(filepath.Base(in), srcExt)
	if srcExt != "" && !strings.EqualFold(srcExt, ext) {
		base += "_" + strings.ToLower(srcExt[1:])
	}
	base += "_ascii" + ext
	if output != "" {
		return filepath.Join(output, base)
	}
	return filepath.Join(filepath.Dir(in), base)
}

func defaultExt(in string) string {
	switch imageio.Kind(in) {
	case imageio.KindVideo:
		return ".mp4"
	case imageio.KindImage:
		if _, err := imageio.FormatFromPath(in); err == nil {
			return filepath.Ext(in)
		}
	}
	return ".png"
}

type converter struct {
	cfg    asciiart.Config
	ff     *video.FFmpeg
	open   video.SourceOpener // nil uses ff
	keep   bool
	p      *message.Printer
	single bool
}

func (c *converter) convert(ctx context.Context, in, out string) error {
	start := time.Now()
	var err error
	switch imageio.Kind(in) {
	case imageio.KindImage:
		err = c.image(in, out)
	case imageio.KindVideo:
		err = c.video(ctx, in, out)
	default:
		err = errors.New("unsupported file type")
	}
	if err != nil {
		return err
	}
	c.p.Printf("%s -> %s\nTime Taken: %v\n", in, out, time.Since(start).Round(time.Millisecond))
	return nil
}

func (c *converter) image(in, out string) error {
	r, err := asciiart.NewRenderer(c.cfg)
	if err != nil {
		return err
	}
	defer r.Close()

	img, err := imageio.Load(in)
	if err != nil {
		return err
	}

	canvas, err := r.Render(img)
	if err != nil {
		return err
	}
	return imageio.Save(out, canvas)
}

func (c *converter) video(ctx context.Context, in, out string) error {
	opts := []video.Option{
		video.WithFFmpeg(c.ff),
		video.WithKeepTemp(c.keep),
	}
	if c.open != nil {
		opts = append(opts, video.WithSourceOpener(c.open))
	}
	if c.single {
		opts = append(opts, video.WithProgress(func(p video.Progress) {
			if p.Total > 0 {
				c.p.Fprintf(os.Stderr, "\rframe %d/%d", p.Frame, p.Total)
			} else {
				c.p.Fprintf(os.Stderr, "\rframe %d", p.Frame)
			}
		}))
	}

	res, err := video.NewDriver(c.cfg, opts...).Convert(ctx, in, out)
	if c.single && res.Frames > 0 {
		fmt.Fprintln(os.Stderr)
	}
	return err
}
