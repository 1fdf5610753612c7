package main

import (
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"

	"chopper-recorder/internal/anim"
	"chopper-recorder/internal/config"
	"chopper-recorder/internal/scene"
)

// runInteractive steps the animation from a terminal UI. Enter/Space advance
// one tick, `a` toggles auto-advance at the configured tick period, arrow
// keys orbit the camera, Esc/q/Ctrl-C terminate. Every stepped frame is
// recorded; the preview shows the current frame as colored cells.
func runInteractive(driver *anim.Driver, sc *scene.Scene, cfg config.Config) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen init failed: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("screen start failed: %w", err)
	}
	defer s.Fini()

	type signal int
	const (
		sigStep signal = iota
		sigAuto
		sigQuit
		sigRedraw
	)

	sigs := make(chan signal, 8)
	quit := make(chan struct{})

	// Input handler
	go func() {
		defer close(quit)
		for {
			ev := s.PollEvent()
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch ev.Key() {
				case tcell.KeyEscape, tcell.KeyCtrlC:
					return
				case tcell.KeyEnter:
					sigs <- sigStep
				case tcell.KeyUp:
					sc.Camera.Pitch -= 0.1
					sigs <- sigRedraw
				case tcell.KeyDown:
					sc.Camera.Pitch += 0.1
					sigs <- sigRedraw
				case tcell.KeyLeft:
					sc.Camera.Yaw -= 0.1
					sigs <- sigRedraw
				case tcell.KeyRight:
					sc.Camera.Yaw += 0.1
					sigs <- sigRedraw
				case tcell.KeyRune:
					switch ev.Rune() {
					case ' ':
						sigs <- sigStep
					case 'a', 'A':
						sigs <- sigAuto
					case 'q', 'Q':
						return
					}
				}
			case *tcell.EventResize:
				s.Sync()
				sigs <- sigRedraw
			}
		}
	}()

	auto := false
	ticker := time.NewTicker(time.Duration(cfg.TickMS) * time.Millisecond)
	defer ticker.Stop()

	var frame *image.NRGBA
	drawStatus(s, driver.State(), auto, frame)

	for {
		select {
		case <-quit:
			return nil

		case <-ticker.C:
			if !auto {
				continue
			}
			if frame, err = driver.Step(); err != nil {
				return err
			}
			drawStatus(s, driver.State(), auto, frame)

		case sig := <-sigs:
			switch sig {
			case sigStep:
				if frame, err = driver.Step(); err != nil {
					return err
				}
			case sigAuto:
				auto = !auto
			}
			drawStatus(s, driver.State(), auto, frame)
		}
	}
}

// drawStatus repaints the preview cells and the status/help lines.
func drawStatus(s tcell.Screen, st anim.State, auto bool, frame *image.NRGBA) {
	s.Clear()
	w, h := s.Size()
	if w <= 10 || h <= 4 {
		s.Show()
		return
	}

	if frame != nil {
		drawPreview(s, frame, w, h-2)
	}

	mode := "manual"
	if auto {
		mode = "auto"
	}
	status := fmt.Sprintf("tick %d  marker (%.2f, %.2f, %.2f)  [%s]",
		st.Tick, st.Marker[0], st.Marker[1], st.Marker[2], mode)
	drawText(s, 1, h-2, tcell.StyleDefault.Foreground(tcell.ColorYellow), status)
	drawText(s, 1, h-1, tcell.StyleDefault.Foreground(tcell.ColorDarkGray), helpText)
	s.Show()
}

// drawPreview paints the frame as background-colored cells, sampling one
// pixel per cell. Terminal cells are ~2:1 tall, so the vertical sample step
// is doubled to keep the aspect roughly right.
func drawPreview(s tcell.Screen, frame *image.NRGBA, cols, rows int) {
	b := frame.Bounds()
	fw, fh := b.Dx(), b.Dy()
	if fw == 0 || fh == 0 {
		return
	}

	// Fit the frame into the cell grid, accounting for cell aspect
	scaleX := float64(fw) / float64(cols)
	scaleY := float64(fh) / float64(rows) / 2
	scale := scaleX
	if scaleY > scale {
		scale = scaleY
	}

	for cy := 0; cy < rows; cy++ {
		py := int(float64(cy) * scale * 2)
		if py >= fh {
			break
		}
		for cx := 0; cx < cols; cx++ {
			px := int(float64(cx) * scale)
			if px >= fw {
				break
			}
			i := frame.PixOffset(b.Min.X+px, b.Min.Y+py)
			c := tcell.NewRGBColor(int32(frame.Pix[i]), int32(frame.Pix[i+1]), int32(frame.Pix[i+2]))
			s.SetContent(cx, cy, ' ', nil, tcell.StyleDefault.Background(c))
		}
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for i, r := range str {
		s.SetContent(x+i, y, r, nil, style)
	}
}
