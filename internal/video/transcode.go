package video

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// TranscodeMP4 converts the recorded WebP into an MP4 with yuv420p pixel
// format so the result plays in common video players. Requires ffmpeg on
// PATH; the caller decides whether a failure is fatal.
func TranscodeMP4(ctx context.Context, webpPath, mp4Path string) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("video: ffmpeg not found: %w", err)
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y", "-i", webpPath, "-pix_fmt", "yuv420p", mp4Path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("video: ffmpeg: %w: %s", err, lastLine(out))
	}
	return nil
}

func lastLine(out []byte) string {
	out = bytes.TrimSpace(out)
	if i := bytes.LastIndexByte(out, '\n'); i >= 0 {
		out = out[i+1:]
	}
	return string(out)
}
