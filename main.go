package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/df07/go-pathtracer/web/server"
)

// renderConfig holds everything a render needs once flags are parsed
type renderConfig struct {
	Scene        *scene.Description
	SceneDir     string
	Resolution   image.Point
	Workers      int
	Interval     int
	MaxDepth     int
	Samples      uint64        // Stop once this many samples per pixel are merged (0 = never)
	Output       string        // Export path, .ppm or .png
	Port         int           // Preview server port (0 = disabled)
	PollInterval time.Duration // How often the consumer merges a checkpoint
}

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "cornell", "Scene: built-in name or path to a JSON scene file")
	sceneDir := flag.String("scene-dir", "scenes", "Directory searched for <name>.json scene files")
	list := flag.Bool("list", false, "List available scenes and exit")
	width := flag.Int("width", 800, "Image width in pixels")
	height := flag.Int("height", 600, "Image height in pixels")
	workers := flag.Int("workers", 0, "Number of tracing workers (0 = logical CPU count)")
	samples := flag.Uint64("samples", 0, "Stop after this many samples per pixel (0 = until interrupted)")
	duration := flag.Duration("duration", 0, "Stop after this long (0 = until interrupted)")
	interval := flag.Int("interval", 20, "Passes each worker traces between checkpoints")
	maxDepth := flag.Int("max-depth", 20, "Maximum path length")
	output := flag.String("output", "", "Output file (.ppm or .png, default output/<scene>/render_<timestamp>.png)")
	port := flag.Int("port", 0, "Serve a live preview on this port (0 = disabled)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Progressive Path Tracer")
		fmt.Println("Usage: pathtracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Rendering runs until -samples or -duration is reached, or until interrupted.")
		return
	}

	if *list {
		if err := listScenes(*sceneDir); err != nil {
			fmt.Printf("Error listing scenes: %v\n", err)
			os.Exit(1)
		}
		return
	}

	resolution := image.Pt(*width, *height)
	desc, err := createScene(*sceneType, *sceneDir, resolution)
	if err != nil {
		fmt.Printf("Error loading scene: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	config := renderConfig{
		Scene:        desc,
		SceneDir:     *sceneDir,
		Resolution:   resolution,
		Workers:      *workers,
		Interval:     *interval,
		MaxDepth:     *maxDepth,
		Samples:      *samples,
		Output:       createOutputPath(*sceneType, *output, time.Now()),
		Port:         *port,
		PollInterval: 50 * time.Millisecond,
	}

	var logger core.Logger = renderer.NewDefaultLogger()
	var console *server.Console
	if config.Port > 0 {
		console = server.NewConsole(os.Stdout, 200)
		logger = console
	}

	if err := render(ctx, config, logger, console); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// render traces config.Scene until ctx is done or the sample target is
// reached, then exports the merged image
func render(ctx context.Context, config renderConfig, logger core.Logger, console *server.Console) error {
	poolConfig := renderer.DefaultPoolConfig(config.Resolution)
	poolConfig.Workers = config.Workers
	poolConfig.CheckpointInterval = config.Interval
	poolConfig.Integrator.MaxDepth = config.MaxDepth

	pool, err := renderer.NewWorkerPool(poolConfig, logger)
	if err != nil {
		return err
	}
	defer pool.Shutdown()

	progressive, err := renderer.NewProgressive(pool, config.Resolution, logger)
	if err != nil {
		return err
	}

	logger.Printf("Rendering %q at %dx%d with %d workers on %s\n",
		config.Scene.Name, config.Resolution.X, config.Resolution.Y, pool.Workers(), renderer.CPUModel())

	if err := pool.ExecuteScene(config.Scene, pool.Workers()); err != nil {
		return fmt.Errorf("failed to start render: %w", err)
	}

	if config.Port > 0 {
		web := server.NewServer(config.Port, progressive, console, config.SceneDir)
		go func() {
			if err := web.Start(); err != nil {
				logger.Printf("Web server error: %v\n", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := web.Shutdown(shutdownCtx); err != nil {
				logger.Printf("Web server shutdown error: %v\n", err)
			}
		}()
	}

	startTime := time.Now()
	poll := time.NewTicker(config.PollInterval)
	defer poll.Stop()
	snapshot := time.NewTicker(time.Second)
	defer snapshot.Stop()

loop:
	for {
		select {
		case <-ctx.Done():
			logger.Printf("Stopping render...\n")
			break loop
		case <-poll.C:
			if _, err := progressive.Poll(); err != nil {
				logger.Printf("Poll failed: %v\n", err)
			}
			if config.Samples > 0 && progressive.Samples() >= config.Samples {
				logger.Printf("Reached %d samples per pixel, stopping.\n", progressive.Samples())
				break loop
			}
		case <-snapshot.C:
			if config.Port > 0 {
				if _, err := progressive.Snapshot(); err != nil {
					logger.Printf("Snapshot failed: %v\n", err)
				}
			}
		}
	}

	pool.Shutdown()

	// Merge checkpoints that were delivered before shutdown
	for {
		merged, err := progressive.Poll()
		if err != nil {
			logger.Printf("Poll failed: %v\n", err)
			continue
		}
		if !merged {
			break
		}
	}

	logger.Printf("Render finished in %v with %d samples per pixel\n",
		time.Since(startTime).Round(time.Millisecond), progressive.Samples())

	if dir := filepath.Dir(config.Output); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Printf("Error creating output directory: %v\n", err)
			return nil
		}
	}

	// Export failures are logged by the consumer and do not fail the run
	progressive.Export(config.Output)
	return nil
}

// createScene resolves a built-in name, a JSON file path, or <name>.json in
// sceneDir
func createScene(sceneType, sceneDir string, resolution image.Point) (*scene.Description, error) {
	if sceneType == "" {
		return nil, errors.New("empty scene name")
	}

	if desc, ok := scene.Builtin(sceneType, resolution); ok {
		return desc, nil
	}

	candidates := []string{sceneType}
	if sceneDir != "" && !strings.HasSuffix(sceneType, ".json") {
		candidates = append(candidates, filepath.Join(sceneDir, sceneType+".json"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return scene.LoadFile(path, resolution)
		}
	}

	return nil, fmt.Errorf("unknown scene %q (built-in scenes: %s)", sceneType, strings.Join(scene.BuiltinNames(), ", "))
}

// createOutputPath returns output, or output/<scene>/render_<timestamp>.png
func createOutputPath(sceneType, output string, now time.Time) string {
	if output != "" {
		return output
	}
	base := sceneBaseName(sceneType)
	return filepath.Join("output", base, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

func sceneBaseName(sceneType string) string {
	base := filepath.Base(sceneType)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "scene"
	}
	return base
}

func listScenes(sceneDir string) error {
	scenes, err := scene.ListScenes(sceneDir)
	if err != nil {
		return err
	}

	fmt.Println("Available scenes:")
	for _, s := range scenes {
		if s.Type == "builtin" {
			fmt.Printf("  %-20s %s\n", s.ID, s.DisplayName)
		} else {
			fmt.Printf("  %-20s %s (%s)\n", s.ID, s.DisplayName, s.FilePath)
		}
	}
	return nil
}
