package video

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/gogpu/asciiart"
)

// Result summarizes a conversion.
type Result struct {
	RunID    string
	Frames   int
	Size     image.Point
	FPS      float64
	HasAudio bool
	Output   string
	State    State
}

// Progress is reported after every encoded frame.
type Progress struct {
	RunID string
	// Frame is the 1-based number of frames encoded so far.
	Frame int
	// Total is the advisory frame count of the input, 0 if unknown.
	Total int
	State State
}

// Driver converts video files with one asciiart.Config.
// A Driver holds no per-run state and may run several conversions at once.
type Driver struct {
	cfg      asciiart.Config
	open     SourceOpener
	newSink  SinkFactory
	muxer    Muxer
	progress func(Progress)
	keepTemp bool
	tempDir  string
}

// NewDriver returns a Driver that uses ffmpeg unless opts say otherwise.
func NewDriver(cfg asciiart.Config, opts ...Option) *Driver {
	d := &Driver{cfg: cfg}
	WithFFmpeg(NewFFmpeg())(d)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Convert renders every frame of src and writes the result, with the audio
// of src, to dst. The configuration is checked before src is opened. dst is
// only written once the output is complete.
func (d *Driver) Convert(ctx context.Context, src, dst string) (Result, error) {
	r := &run{
		d:     d,
		id:    uuid.NewString(),
		state: StateOpening,
		start: time.Now(),
	}
	r.log = asciiart.Logger().With("run_id", r.id)
	r.res.RunID = r.id

	err := r.convert(ctx, src, dst)
	if err != nil {
		r.move(StateFailed)
		r.log.Error("video: conversion failed", "state", r.failedIn, "frame", r.res.Frames, "err", err)
	} else {
		r.log.Info("video: conversion done",
			"frame", r.res.Frames,
			"audio", r.res.HasAudio,
			"elapsed", time.Since(r.start))
	}
	r.res.State = r.state
	return r.res, err
}

// run is the state of one Convert call.
type run struct {
	d        *Driver
	id       string
	log      *slog.Logger
	state    State
	failedIn State
	start    time.Time
	res      Result
	total    int
	srcSize  image.Point // first decoded frame
	frames   int         // decoded frames
}

func (r *run) move(to State) {
	if !canMove(r.state, to) {
		panic(fmt.Sprintf("video: illegal transition %s -> %s", r.state, to))
	}
	if to == StateFailed {
		r.failedIn = r.state
	}
	r.state = to
}

func (r *run) convert(ctx context.Context, src, dst string) (err error) {
	renderer, err := asciiart.NewRenderer(r.d.cfg)
	if err != nil {
		return err
	}
	defer renderer.Close()

	tmp, err := os.MkdirTemp(r.d.tempDir, "asciiart-"+r.id+"-")
	if err != nil {
		return fmt.Errorf("video: create temp dir: %w", err)
	}
	defer func() {
		if err != nil && r.d.keepTemp {
			r.log.Info("video: kept temp dir", "dir", tmp)
			return
		}
		if rmErr := os.RemoveAll(tmp); rmErr != nil {
			r.log.Warn("video: remove temp dir", "dir", tmp, "err", rmErr)
		}
	}()

	source, err := r.d.open(ctx, src)
	if err != nil {
		return err
	}
	defer source.Close()

	info := source.Info()
	r.total = info.Frames
	r.res.FPS = info.fps()
	r.log.Debug("video: opened",
		"src", src,
		"size", fmt.Sprintf("%dx%d", info.Width, info.Height),
		"fps", r.res.FPS,
		"frames", info.Frames)

	ext := filepath.Ext(dst)
	if ext == "" {
		ext = ".mp4"
	}
	silent := filepath.Join(tmp, "video"+ext)

	var sink Sink
	defer func() {
		if sink != nil {
			if cerr := sink.Close(); err == nil {
				err = cerr
			}
		}
	}()

	for {
		r.move(StateDecoding)
		frame, err := source.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		r.move(StateRendering)
		fsize := frame.Bounds().Size()
		if r.frames == 0 {
			r.srcSize = fsize
		} else if fsize != r.srcSize {
			return &asciiart.RenderError{
				Reason: fmt.Sprintf("frame %d is %dx%d, first frame was %dx%d",
					r.res.Frames+1, fsize.X, fsize.Y, r.srcSize.X, r.srcSize.Y),
			}
		}
		r.frames++
		canvas, err := renderer.Render(frame)
		if err != nil {
			return err
		}

		r.move(StateEncoding)
		size := canvas.Rect.Size()
		if sink == nil {
			sink, err = r.d.newSink(ctx, silent, size, r.res.FPS)
			if err != nil {
				return err
			}
			r.res.Size = size
		} else if size != r.res.Size {
			return &asciiart.RenderError{
				Reason: fmt.Sprintf("frame %d renders to %dx%d, encoder is %dx%d",
					r.res.Frames+1, size.X, size.Y, r.res.Size.X, r.res.Size.Y),
			}
		}
		if err := sink.WriteFrame(canvas); err != nil {
			return err
		}
		r.res.Frames++
		r.report()
	}

	r.move(StateClosing)
	if sink == nil {
		size, err := renderer.CanvasSize(info.Width, info.Height)
		if err != nil {
			return err
		}
		if sink, err = r.d.newSink(ctx, silent, size, r.res.FPS); err != nil {
			return err
		}
		r.res.Size = size
	}
	s := sink
	sink = nil
	if err := s.Close(); err != nil {
		return err
	}

	r.move(StateMuxing)
	if err := r.mux(ctx, src, dst, tmp, silent, ext); err != nil {
		return err
	}
	r.res.Output = dst
	r.move(StateDone)
	return nil
}

// mux puts the audio of src next to the silent video and moves the result
// to dst. Without audio the silent video is moved as is.
func (r *run) mux(ctx context.Context, src, dst, tmp, silent, ext string) error {
	hasAudio, err := r.d.muxer.HasAudio(ctx, src)
	if err != nil {
		return err
	}
	r.res.HasAudio = hasAudio
	if !hasAudio {
		r.log.Debug("video: no audio, moving silent video", "dst", dst)
		return moveFile(silent, dst)
	}

	audio := filepath.Join(tmp, "audio.mp3")
	if err := r.d.muxer.ExtractAudio(ctx, src, audio); err != nil {
		return err
	}
	muxed := filepath.Join(tmp, "muxed"+ext)
	if err := r.d.muxer.Mux(ctx, silent, audio, muxed); err != nil {
		return err
	}
	return moveFile(muxed, dst)
}

func (r *run) report() {
	r.log.Debug("video: frame encoded", "frame", r.res.Frames, "total", r.total)
	if r.d.progress != nil {
		r.d.progress(Progress{
			RunID: r.id,
			Frame: r.res.Frames,
			Total: r.total,
			State: r.state,
		})
	}
}
