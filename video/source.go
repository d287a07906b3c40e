package video

import (
	"context"
	"image"
)

// DefaultFPS is used when the input does not report a frame rate.
const DefaultFPS = 30.0

// StreamInfo describes the video stream of an input.
type StreamInfo struct {
	Width, Height int
	FPS           float64
	// Frames is the container's frame count. It is advisory only and may be
	// 0 or wrong; the driver always reads until the source is exhausted.
	Frames   int
	HasAudio bool
}

// fps returns the frame rate, or DefaultFPS if none is known.
func (i StreamInfo) fps() float64 {
	if i.FPS > 0 {
		return i.FPS
	}
	return DefaultFPS
}

// Source yields decoded frames in presentation order.
type Source interface {
	// Info returns what is known about the stream before decoding.
	Info() StreamInfo
	// Next returns the next frame, or io.EOF after the last one. The image
	// is only valid until the following call.
	Next(ctx context.Context) (image.Image, error)
	Close() error
}

// Sink encodes rendered canvases in the order they are written.
type Sink interface {
	WriteFrame(frame *image.RGBA) error
	// Close finishes the file. A Sink must not be used after Close.
	Close() error
}

// Muxer handles the audio side of a conversion.
type Muxer interface {
	HasAudio(ctx context.Context, path string) (bool, error)
	ExtractAudio(ctx context.Context, src, dst string) error
	Mux(ctx context.Context, video, audio, dst string) error
}

// SourceOpener opens a Source for a path.
type SourceOpener func(ctx context.Context, path string) (Source, error)

// SinkFactory creates a Sink writing size-sized frames at fps to path.
type SinkFactory func(ctx context.Context, path string, size image.Point, fps float64) (Sink, error)
