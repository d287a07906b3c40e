package video

import (
	"context"
	"errors"
	"io"
	"os"
)

// HasAudio reports whether path has at least one audio stream.
func (f *FFmpeg) HasAudio(ctx context.Context, path string) (bool, error) {
	info, err := f.Probe(ctx, path)
	if err != nil && !errors.Is(err, ErrNoVideoStream) {
		return false, err
	}
	return info.HasAudio, nil
}

// ExtractAudio writes the audio of src to dst, re-encoded at the highest
// VBR quality for dst's container.
func (f *FFmpeg) ExtractAudio(ctx context.Context, src, dst string) error {
	return f.runner().Run(ctx, nil, nil, f.ffmpeg(), extractArgs(src, dst)...)
}

// Mux copies the first video stream of video and the first audio stream of
// audio into dst without re-encoding.
func (f *FFmpeg) Mux(ctx context.Context, video, audio, dst string) error {
	return f.runner().Run(ctx, nil, nil, f.ffmpeg(), muxArgs(video, audio, dst)...)
}

func extractArgs(src, dst string) []string {
	return []string{"-y", "-v", "error", "-i", src, "-vn", "-q:a", "0", "-map", "a", dst}
}

func muxArgs(video, audio, dst string) []string {
	return []string{
		"-y", "-v", "error",
		"-i", video,
		"-i", audio,
		"-c", "copy",
		"-map", "0:v:0",
		"-map", "1:a:0",
		dst,
	}
}

// moveFile renames src to dst, falling back to copy and remove when they
// are on different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}
	return os.Remove(src)
}
