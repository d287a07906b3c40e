//go:build gst

package video

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/tinyzimmer/go-gst/gst"
	"github.com/tinyzimmer/go-gst/gst/app"
)

// gstPipeline decodes any container GStreamer understands into RGBA samples.
const gstPipeline = "filesrc location=%q ! decodebin ! videoconvert ! " +
	"video/x-raw,format=RGBA ! appsink name=sink sync=false"

// GstSource decodes frames with a GStreamer appsink pipeline.
type GstSource struct {
	pipeline *gst.Pipeline
	sink     *app.Sink
	info     StreamInfo
	img      *image.RGBA
	pending  *gst.Sample
	done     bool
}

// NewGstSource starts a pipeline for path and pulls the first sample to
// learn the frame size. It has the SourceOpener signature.
func NewGstSource(ctx context.Context, path string) (Source, error) {
	gst.Init(nil)

	pipeline, err := gst.NewPipelineFromString(fmt.Sprintf(gstPipeline, path))
	if err != nil {
		return nil, fmt.Errorf("video: gst pipeline: %w", err)
	}
	elem, err := pipeline.GetElementByName("sink")
	if err != nil {
		pipeline.SetState(gst.StateNull)
		return nil, fmt.Errorf("video: gst appsink: %w", err)
	}
	s := &GstSource{
		pipeline: pipeline,
		sink:     app.SinkFromElement(elem),
	}
	if err := pipeline.SetState(gst.StatePlaying); err != nil {
		s.Close()
		return nil, fmt.Errorf("video: gst play: %w", err)
	}

	sample := s.sink.PullSample()
	if sample == nil {
		err := s.busError()
		s.Close()
		if err == nil {
			err = ErrNoVideoStream
		}
		return nil, err
	}
	if err := s.readCaps(sample); err != nil {
		s.Close()
		return nil, err
	}
	s.pending = sample
	s.img = image.NewRGBA(image.Rect(0, 0, s.info.Width, s.info.Height))
	return s, nil
}

func (s *GstSource) readCaps(sample *gst.Sample) error {
	caps := sample.GetCaps()
	if caps == nil || caps.GetSize() == 0 {
		return errors.New("video: gst sample has no caps")
	}
	st := caps.GetStructureAt(0)
	if v, err := st.GetValue("width"); err == nil {
		s.info.Width, _ = v.(int)
	}
	if v, err := st.GetValue("height"); err == nil {
		s.info.Height, _ = v.(int)
	}
	if v, err := st.GetValue("framerate"); err == nil {
		s.info.FPS = parseRate(fmt.Sprintf("%v", v))
	}
	if s.info.Width < 1 || s.info.Height < 1 {
		return fmt.Errorf("video: gst caps report %dx%d", s.info.Width, s.info.Height)
	}
	return nil
}

// Info returns the size and rate from the first sample's caps. GStreamer
// does not report a frame count or audio here.
func (s *GstSource) Info() StreamInfo { return s.info }

// Next returns the next decoded frame, or io.EOF at end of stream.
func (s *GstSource) Next(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.done {
		return nil, io.EOF
	}

	sample := s.pending
	s.pending = nil
	if sample == nil {
		sample = s.sink.PullSample()
	}
	if sample == nil {
		s.done = true
		if err := s.busError(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}

	buffer := sample.GetBuffer()
	if buffer == nil {
		return nil, errors.New("video: gst sample has no buffer")
	}
	data := buffer.Map(gst.MapRead).Bytes()
	defer buffer.Unmap()

	if len(data) < len(s.img.Pix) {
		return nil, ErrTruncatedFrame
	}
	copy(s.img.Pix, data)
	return s.img, nil
}

// busError returns the first error message on the pipeline bus, if any.
func (s *GstSource) busError() error {
	bus := s.pipeline.GetPipelineBus()
	for {
		msg := bus.Pop()
		if msg == nil {
			return nil
		}
		if msg.Type() == gst.MessageError {
			gerr := msg.ParseError()
			return fmt.Errorf("video: gst: %s", gerr.Error())
		}
	}
}

// Close stops the pipeline.
func (s *GstSource) Close() error {
	return s.pipeline.SetState(gst.StateNull)
}
