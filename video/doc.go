// Package video converts every frame of a video file to ASCII art and
// writes a new video with the input's audio track.
//
// A conversion is driven by Driver.Convert, which walks a fixed state
// machine:
//
//	Opening -> (Decoding -> Rendering -> Encoding)* -> Closing -> Muxing -> Done
//
// Any state may move to Failed. Frames are pulled from a Source, rendered by
// an asciiart.Renderer and pushed to a Sink in arrival order. The encoder is
// created on the first frame so its size matches the rendered canvas. After
// the last frame the driver probes the input for audio; if there is an audio
// track it is extracted and muxed into the output, otherwise the silent
// video is moved into place.
//
// Intermediate files live in a per-run temporary directory, so the
// destination path is only written once the output is complete.
//
// The default Source, Sink and Muxer run the ffmpeg and ffprobe binaries.
// Building with the gst tag adds NewGstSource, a GStreamer appsink decoder.
package video
