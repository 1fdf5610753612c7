package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"chopper-recorder/internal/anim"
	"chopper-recorder/internal/config"
	"chopper-recorder/internal/scene"
	"chopper-recorder/internal/scenefile"
	"chopper-recorder/internal/texture"
	"chopper-recorder/internal/video"
)

const helpText = "Enter/Space: step   a: auto   arrows: orbit   Esc/q: quit"

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	sceneFile := flag.String("scene", "", "Scene XML file (default: built-in chopper scene)")
	dataDir := flag.String("data", "", "Base directory for mesh files (default: cwd)")
	output := flag.String("o", "", "Output video file (default: animation.webp)")
	frames := flag.Int("frames", 0, "Number of frames to record (default: 144)")
	fps := flag.Int("fps", 0, "Playback frames per second (default: 24)")
	width := flag.Int("width", 0, "Output width (default: 1050)")
	height := flag.Int("height", 0, "Output height (default: 600)")
	supersample := flag.Int("supersample", 0, "Supersampling factor (default: 2)")
	workers := flag.Int("workers", 0, "Frame post-processing workers (default: NumCPU)")
	interactive := flag.Bool("interactive", false, "Step the animation from a terminal UI")
	mp4 := flag.Bool("mp4", false, "Also transcode the result to MP4 via ffmpeg")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		DataDir:     *dataDir,
		SceneXML:    *sceneFile,
		Output:      *output,
		Frames:      *frames,
		FPS:         *fps,
		Width:       *width,
		Height:      *height,
		Supersample: *supersample,
		Workers:     *workers,
	})

	// Scene definition
	var def *scenefile.Def
	if cfg.SceneXML != "" {
		var err error
		def, err = scenefile.Parse(cfg.SceneXML)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
			os.Exit(1)
		}
	} else {
		def = scenefile.Default()
	}

	sc, err := scene.Build(def, cfg.DataDir, texture.NewCache())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building scene: %v\n", err)
		os.Exit(1)
	}

	rec, err := video.NewRecorder(cfg.Output, cfg.FPS)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	pipe := video.NewPipeline(rec, cfg.Width, cfg.Height, cfg.Workers, helpText, !*interactive)
	driver := anim.NewDriver(sc, pipe, cfg.Width*cfg.Supersample, cfg.Height*cfg.Supersample)

	if !*interactive {
		fmt.Printf("Chopper scene recorder → %s\n", cfg.Output)
		fmt.Printf("Meshes: %d, Frames: %d @ %d fps, Size: %dx%d (x%d supersample)\n",
			len(sc.Objects), cfg.Frames, cfg.FPS, cfg.Width, cfg.Height, cfg.Supersample)
		fmt.Println("------------------------------------------------------------")
	}

	start := time.Now()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *interactive {
		err = runInteractive(driver, sc, cfg)
	} else {
		err = driver.RunAuto(ctx, cfg.Frames, nil)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if errors.Is(err, context.Canceled) {
		fmt.Println("Interrupted — flushing recorded frames.")
	}

	// The video is flushed even when the run stopped early
	if err := pipe.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing video: %v\n", err)
		os.Exit(1)
	}

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Recorded %d frames in %.1fs → %s\n", rec.FrameCount(), elapsed.Seconds(), cfg.Output)

	if *mp4 {
		mp4Path := strings.TrimSuffix(cfg.Output, ".webp") + ".mp4"
		fmt.Printf("Transcoding → %s\n", mp4Path)
		if err := video.TranscodeMP4(context.Background(), cfg.Output, mp4Path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}
