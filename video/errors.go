package video

import (
	"errors"
	"strings"
)

var (
	// ErrExternalTool reports a failed ffmpeg or ffprobe invocation.
	ErrExternalTool = errors.New("video: external tool failed")

	// ErrToolNotFound reports a missing ffmpeg or ffprobe binary.
	ErrToolNotFound = errors.New("video: external tool not found")

	// ErrNoVideoStream is returned when the input has no video stream.
	ErrNoVideoStream = errors.New("video: no video stream")

	// ErrTruncatedFrame is returned when the decoder stops mid-frame.
	ErrTruncatedFrame = errors.New("video: truncated frame")
)

// stderrLimit bounds the stderr tail kept in a ToolError.
const stderrLimit = 4 << 10

// ToolError describes a failed external command.
type ToolError struct {
	Tool   string
	Args   []string
	Stderr string
	Err    error
}

func (e *ToolError) Error() string {
	var b strings.Builder
	b.WriteString("video: ")
	b.WriteString(e.Tool)
	b.WriteString(" failed")
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		b.WriteString(": ")
		b.WriteString(s)
	}
	return b.String()
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrExternalTool.
func (e *ToolError) Is(target error) bool {
	return target == ErrExternalTool
}
