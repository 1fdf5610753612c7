package video

import (
	"fmt"
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	"chopper-recorder/internal/postprocess"
	"chopper-recorder/internal/raster"
)

// Pipeline post-processes finished frames (supersample downscale + help
// overlay) on a worker pool and feeds them to the Recorder in tick order on
// Close. The simulation side stays strictly sequential; only pixel work is
// parallel.
type Pipeline struct {
	rec     *Recorder
	targetW int
	targetH int
	overlay string

	jobs chan job
	wg   sync.WaitGroup

	mu     sync.Mutex
	frames []*image.NRGBA

	next      int
	processed atomic.Int64
	done      chan struct{}
	start     time.Time
}

type job struct {
	idx int
	img *image.NRGBA
}

// NewPipeline starts workers post-processing into targetW×targetH frames.
// overlay, when non-empty, is drawn into the top-left corner of each frame.
// verbose enables a periodic progress line.
func NewPipeline(rec *Recorder, targetW, targetH, workers int, overlay string, verbose bool) *Pipeline {
	if workers < 1 {
		workers = 1
	}

	p := &Pipeline{
		rec:     rec,
		targetW: targetW,
		targetH: targetH,
		overlay: overlay,
		jobs:    make(chan job, workers*2),
		done:    make(chan struct{}),
		start:   time.Now(),
	}

	for w := 0; w < workers; w++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				out := p.process(j.img)
				p.mu.Lock()
				p.frames[j.idx] = out
				p.mu.Unlock()
				p.processed.Add(1)
			}
		}()
	}

	// Progress reporter
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-p.done:
				return
			case <-ticker.C:
				n := p.processed.Load()
				if verbose && n > 0 {
					elapsed := time.Since(p.start).Seconds()
					fmt.Printf("  [%d frames] %.1f frames/sec\n", n, float64(n)/elapsed)
				}
			}
		}
	}()

	return p
}

// Add accepts the next frame in tick order.
func (p *Pipeline) Add(img *image.NRGBA) error {
	p.mu.Lock()
	p.frames = append(p.frames, nil)
	p.mu.Unlock()

	p.jobs <- job{idx: p.next, img: img}
	p.next++
	return nil
}

func (p *Pipeline) process(img *image.NRGBA) *image.NRGBA {
	out := postprocess.Downsample(img, p.targetW, p.targetH)
	if p.overlay != "" {
		raster.DrawText(out, 10, 20, color.NRGBA{R: 220, G: 220, B: 220, A: 255}, p.overlay)
	}
	return out
}

// Close drains the workers, appends all frames to the recorder in order, and
// closes the recorder.
func (p *Pipeline) Close() error {
	close(p.jobs)
	p.wg.Wait()
	close(p.done)

	for i, f := range p.frames {
		if f == nil {
			return fmt.Errorf("video: frame %d was never processed", i)
		}
		if err := p.rec.Append(f); err != nil {
			return err
		}
	}
	return p.rec.Close()
}
