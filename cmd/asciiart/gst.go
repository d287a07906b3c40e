//go:build gst

package main

import (
	"fmt"

	"github.com/gogpu/asciiart/video"
)

// sourceOpener returns the frame decoder named by --decoder. nil selects
// the ffmpeg decoder.
func sourceOpener(decoder string) (video.SourceOpener, error) {
	switch decoder {
	case "", "ffmpeg":
		return nil, nil
	case "gst", "gstreamer":
		return video.NewGstSource, nil
	}
	return nil, fmt.Errorf("unknown decoder %q (want ffmpeg or gst)", decoder)
}
