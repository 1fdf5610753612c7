package anim

import (
	"context"
	"fmt"
	"image"

	"chopper-recorder/internal/mathutil"
	"chopper-recorder/internal/raster"
	"chopper-recorder/internal/scene"
)

// FrameSink receives rendered frames in tick order.
type FrameSink interface {
	Add(img *image.NRGBA) error
}

// Driver owns tick sequencing: advance state → update scene → render →
// hand the frame to the sink. Strictly sequential; the sink may process
// frames concurrently but receives them in order.
type Driver struct {
	Scene    *scene.Scene
	Sink     FrameSink
	TrailLen int // marker trail length in ticks; 0 disables the trail

	fb    *raster.FrameBuffer
	state State
	trail []mathutil.Vec3
}

// NewDriver prepares a driver rendering at w×h (already including any
// supersampling factor).
func NewDriver(sc *scene.Scene, sink FrameSink, w, h int) *Driver {
	return &Driver{
		Scene:    sc,
		Sink:     sink,
		TrailLen: 48,
		fb:       raster.NewFrameBuffer(w, h),
		state:    State{Marker: sc.Marker.Start},
	}
}

// State returns the current animation state.
func (d *Driver) State() State {
	return d.state
}

// Step advances one tick, renders the frame, hands it to the sink, and
// returns the rendered frame for preview.
func (d *Driver) Step() (*image.NRGBA, error) {
	if d.TrailLen > 0 {
		d.trail = append(d.trail, d.state.Marker)
		if len(d.trail) > d.TrailLen {
			d.trail = d.trail[1:]
		}
	}

	d.state = Advance(d.state, d.Scene.Frame, d.Scene.Step)
	d.Scene.Render(d.fb, d.state.Marker, d.trail, d.state.Tick)

	img := d.fb.Image()
	if err := d.Sink.Add(img); err != nil {
		return nil, fmt.Errorf("anim: tick %d: %w", d.state.Tick, err)
	}
	return img, nil
}

// RunAuto advances a fixed number of ticks back to back, calling progress
// (if non-nil) after each. Stops early if ctx is cancelled.
func (d *Driver) RunAuto(ctx context.Context, frames int, progress func(State)) error {
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if _, err := d.Step(); err != nil {
			return err
		}
		if progress != nil {
			progress(d.state)
		}
	}
	return nil
}
