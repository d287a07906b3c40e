package video

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

const missingTool = "asciiart-test-no-such-tool"

func TestExecRunnerMissingTool(t *testing.T) {
	err := ExecRunner{}.Run(context.Background(), nil, nil, missingTool, "-v")
	if !errors.Is(err, ErrToolNotFound) {
		t.Errorf("Run() = %v, want ErrToolNotFound", err)
	}
	if !errors.Is(err, ErrExternalTool) {
		t.Errorf("Run() = %v, want ErrExternalTool", err)
	}
	var terr *ToolError
	if !errors.As(err, &terr) || terr.Tool != missingTool {
		t.Errorf("ToolError = %+v", terr)
	}
}

func TestLookPath(t *testing.T) {
	if err := LookPath(missingTool); !errors.Is(err, ErrToolNotFound) {
		t.Errorf("LookPath() = %v, want ErrToolNotFound", err)
	}
	ff := &FFmpeg{FFmpegPath: missingTool}
	if err := ff.Check(); !errors.Is(err, ErrToolNotFound) {
		t.Errorf("Check() = %v, want ErrToolNotFound", err)
	}
}

func TestToolErrorMessage(t *testing.T) {
	err := &ToolError{Tool: "ffmpeg", Stderr: "  Invalid data found\n", Err: errors.New("exit status 1")}
	want := "video: ffmpeg failed: exit status 1: Invalid data found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if (&ToolError{Tool: "ffprobe"}).Error() != "video: ffprobe failed" {
		t.Errorf("bare Error() = %q", (&ToolError{Tool: "ffprobe"}).Error())
	}
}

func TestTailBuffer(t *testing.T) {
	var b tailBuffer
	b.Write(bytes.Repeat([]byte("a"), stderrLimit))
	b.Write([]byte("tail"))
	s := b.String()
	if len(s) != stderrLimit {
		t.Errorf("len = %d, want %d", len(s), stderrLimit)
	}
	if !strings.HasSuffix(s, "tail") {
		t.Errorf("buffer does not end with the last write")
	}
}
