package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// probeOutput is the subset of `ffprobe -print_format json -show_streams`
// the driver needs.
type probeOutput struct {
	Streams []struct {
		CodecType    string `json:"codec_type"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		RFrameRate   string `json:"r_frame_rate"`
		AvgFrameRate string `json:"avg_frame_rate"`
		NbFrames     string `json:"nb_frames"`
	} `json:"streams"`
}

// Probe reads the stream layout of path with ffprobe.
func (f *FFmpeg) Probe(ctx context.Context, path string) (StreamInfo, error) {
	var out bytes.Buffer
	args := []string{"-v", "error", "-print_format", "json", "-show_streams", path}
	if err := f.runner().Run(ctx, nil, &out, f.ffprobe(), args...); err != nil {
		return StreamInfo{}, err
	}
	return parseProbe(out.Bytes())
}

func parseProbe(data []byte) (StreamInfo, error) {
	var p probeOutput
	if err := json.Unmarshal(data, &p); err != nil {
		return StreamInfo{}, fmt.Errorf("video: parse ffprobe output: %w", err)
	}

	var info StreamInfo
	found := false
	for _, s := range p.Streams {
		switch s.CodecType {
		case "video":
			if found {
				continue
			}
			found = true
			info.Width, info.Height = s.Width, s.Height
			info.FPS = parseRate(s.RFrameRate)
			if info.FPS == 0 {
				info.FPS = parseRate(s.AvgFrameRate)
			}
			info.Frames, _ = strconv.Atoi(s.NbFrames)
		case "audio":
			info.HasAudio = true
		}
	}
	if !found {
		return info, ErrNoVideoStream
	}
	return info, nil
}

// parseRate parses an ffprobe rate such as "30000/1001" or "25". Unknown or
// malformed rates ("0/0") return 0.
func parseRate(s string) float64 {
	num, den, ok := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil || n <= 0 {
		return 0
	}
	if !ok {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d <= 0 {
		return 0
	}
	return n / d
}
