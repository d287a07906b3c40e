package video

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"
)

// Default binary and codec names.
const (
	DefaultFFmpeg  = "ffmpeg"
	DefaultFFprobe = "ffprobe"
	DefaultCodec   = "libx264"
)

// FFmpeg decodes, encodes and muxes through the ffmpeg command line tools.
// The zero value uses the binaries on PATH and ExecRunner.
type FFmpeg struct {
	FFmpegPath  string
	FFprobePath string
	// Codec is the video encoder passed to -c:v.
	Codec  string
	Runner Runner
}

// NewFFmpeg returns an FFmpeg using the default binaries and codec.
func NewFFmpeg() *FFmpeg {
	return &FFmpeg{
		FFmpegPath:  DefaultFFmpeg,
		FFprobePath: DefaultFFprobe,
		Codec:       DefaultCodec,
		Runner:      ExecRunner{},
	}
}

func (f *FFmpeg) ffmpeg() string {
	if f.FFmpegPath == "" {
		return DefaultFFmpeg
	}
	return f.FFmpegPath
}

func (f *FFmpeg) ffprobe() string {
	if f.FFprobePath == "" {
		return DefaultFFprobe
	}
	return f.FFprobePath
}

func (f *FFmpeg) codec() string {
	if f.Codec == "" {
		return DefaultCodec
	}
	return f.Codec
}

func (f *FFmpeg) runner() Runner {
	if f.Runner == nil {
		return ExecRunner{}
	}
	return f.Runner
}

// Check reports whether both binaries are installed.
func (f *FFmpeg) Check() error {
	return LookPath(f.ffmpeg(), f.ffprobe())
}

// decodeArgs streams every frame of path as packed rgb24 on stdout.
// Frames keep their stored orientation so they match the size ffprobe
// reports; a rotate tag would otherwise swap width and height.
func decodeArgs(path string) []string {
	return []string{
		"-v", "error",
		"-noautorotate",
		"-i", path,
		"-an", "-sn",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-",
	}
}

// encodeArgs reads packed rgba frames of size from stdin. libx264 with
// yuv420p needs even dimensions, so odd sizes are padded by one pixel.
func encodeArgs(path string, size image.Point, fps float64, codec string) []string {
	return []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", size.X, size.Y),
		"-r", strconv.FormatFloat(fps, 'f', -1, 64),
		"-i", "-",
		"-an",
		"-c:v", codec,
		"-pix_fmt", "yuv420p",
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2",
		path,
	}
}

// OpenSource probes path and starts an ffmpeg decoder for it.
// It has the SourceOpener signature.
func (f *FFmpeg) OpenSource(ctx context.Context, path string) (Source, error) {
	info, err := f.Probe(ctx, path)
	if err != nil {
		return nil, err
	}
	if info.Width < 1 || info.Height < 1 {
		return nil, fmt.Errorf("video: %s: bad frame size %dx%d", path, info.Width, info.Height)
	}

	ctx, cancel := context.WithCancel(ctx)
	pr, pw := io.Pipe()
	s := &ffmpegSource{
		info:   info,
		pipe:   pr,
		cancel: cancel,
		done:   make(chan error, 1),
		buf:    make([]byte, info.Width*info.Height*3),
		img:    image.NewRGBA(image.Rect(0, 0, info.Width, info.Height)),
	}
	go func() {
		err := f.runner().Run(ctx, nil, pw, f.ffmpeg(), decodeArgs(path)...)
		pw.CloseWithError(err)
		s.done <- err
	}()
	return s, nil
}

type ffmpegSource struct {
	info   StreamInfo
	pipe   *io.PipeReader
	cancel context.CancelFunc
	done   chan error
	buf    []byte
	img    *image.RGBA
	closed bool
}

func (s *ffmpegSource) Info() StreamInfo { return s.info }

func (s *ffmpegSource) Next(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, err := io.ReadFull(s.pipe, s.buf)
	switch {
	case err == nil:
	case errors.Is(err, io.ErrUnexpectedEOF):
		return nil, ErrTruncatedFrame
	default:
		return nil, err
	}

	pix := s.img.Pix
	for i, j := 0, 0; i < len(s.buf); i, j = i+3, j+4 {
		pix[j+0] = s.buf[i+0]
		pix[j+1] = s.buf[i+1]
		pix[j+2] = s.buf[i+2]
		pix[j+3] = 0xff
	}
	return s.img, nil
}

// Close stops the decoder and waits for it to exit.
func (s *ffmpegSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.cancel()
	s.pipe.Close()
	<-s.done
	return nil
}

// NewSink starts an ffmpeg encoder writing size-sized frames to path.
// It has the SinkFactory signature.
func (f *FFmpeg) NewSink(ctx context.Context, path string, size image.Point, fps float64) (Sink, error) {
	if size.X < 1 || size.Y < 1 {
		return nil, fmt.Errorf("video: bad encoder size %v", size)
	}
	if fps <= 0 {
		fps = DefaultFPS
	}

	pr, pw := io.Pipe()
	s := &ffmpegSink{
		size: size,
		pipe: pw,
		done: make(chan error, 1),
	}
	go func() {
		err := f.runner().Run(ctx, pr, nil, f.ffmpeg(), encodeArgs(path, size, fps, f.codec())...)
		if err == nil {
			err = io.ErrClosedPipe
		}
		pr.CloseWithError(err)
		s.done <- err
	}()
	return s, nil
}

type ffmpegSink struct {
	size   image.Point
	pipe   *io.PipeWriter
	done   chan error
	closed bool
}

func (s *ffmpegSink) WriteFrame(frame *image.RGBA) error {
	if s.closed {
		return io.ErrClosedPipe
	}
	if got := frame.Rect.Size(); got != s.size {
		return fmt.Errorf("video: frame is %v, encoder expects %v", got, s.size)
	}

	row := 4 * s.size.X
	if frame.Stride == row {
		off := frame.PixOffset(frame.Rect.Min.X, frame.Rect.Min.Y)
		_, err := s.pipe.Write(frame.Pix[off : off+row*s.size.Y])
		return err
	}
	for y := frame.Rect.Min.Y; y < frame.Rect.Max.Y; y++ {
		off := frame.PixOffset(frame.Rect.Min.X, y)
		if _, err := s.pipe.Write(frame.Pix[off : off+row]); err != nil {
			return err
		}
	}
	return nil
}

// Close ends the input stream and waits for ffmpeg to finish the file.
func (s *ffmpegSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.pipe.Close()
	err := <-s.done
	if errors.Is(err, io.ErrClosedPipe) {
		return nil
	}
	return err
}
