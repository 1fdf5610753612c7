package video

import (
	"fmt"
	"image"
	"os"

	"github.com/HugoSmits86/nativewebp"
)

// Recorder assembles an animated WebP from frames appended one per tick.
// The container is written once, on Close; the output file is created
// eagerly so path problems surface before a long render.
type Recorder struct {
	f      *os.File
	path   string
	fps    int
	frames []image.Image
	closed bool
}

// NewRecorder opens the output file. fps sets the per-frame display duration.
func NewRecorder(path string, fps int) (*Recorder, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("video: fps must be positive, got %d", fps)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("video: create %s: %w", path, err)
	}
	return &Recorder{f: f, path: path, fps: fps}, nil
}

// Append adds one frame. Frames must arrive in display order.
func (r *Recorder) Append(img *image.NRGBA) error {
	if r.closed {
		return fmt.Errorf("video: append after close")
	}
	r.frames = append(r.frames, img)
	return nil
}

// FrameCount returns the number of appended frames.
func (r *Recorder) FrameCount() int {
	return len(r.frames)
}

// Path returns the output file path.
func (r *Recorder) Path() string {
	return r.path
}

// Close encodes all frames and closes the file. Safe to call once.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	if len(r.frames) == 0 {
		r.f.Close()
		os.Remove(r.path)
		return fmt.Errorf("video: no frames recorded")
	}

	frameMS := uint(1000 / r.fps)
	durations := make([]uint, len(r.frames))
	disposals := make([]uint, len(r.frames))
	for i := range durations {
		durations[i] = frameMS
	}

	ani := nativewebp.Animation{
		Images:          r.frames,
		Durations:       durations,
		Disposals:       disposals,
		LoopCount:       0, // loop forever
		BackgroundColor: 0xff000000,
	}

	if err := nativewebp.EncodeAll(r.f, &ani, nil); err != nil {
		r.f.Close()
		return fmt.Errorf("video: WebP encode: %w", err)
	}
	if err := r.f.Close(); err != nil {
		return fmt.Errorf("video: close %s: %w", r.path, err)
	}
	return nil
}
