package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/imagewriter"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// gridColor is the overlay color of -grid
var gridColor = core.NewVec3(255, 255, 0)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to a JSON render configuration")
	var flags config.Flags
	flag.StringVar(&flags.Scene, "scene", "", "Scene id (see -help for the list)")
	flag.StringVar(&flags.Output, "output", "", "Output file; the extension selects png, webp or tga")
	flag.IntVar(&flags.Width, "width", 0, "Image width (default: scene preset)")
	flag.IntVar(&flags.Height, "height", 0, "Image height (default: scene preset)")
	flag.IntVar(&flags.SampleGrid, "aa", 0, "Anti-aliasing rays per pixel axis")
	flag.IntVar(&flags.Downsample, "downsample", 0, "Render at N times the size and shrink")
	flag.Float64Var(&flags.Gamma, "gamma", 0, "Output gamma")
	flag.IntVar(&flags.MaxDepth, "max-depth", 0, "Maximum recursion depth")
	flag.BoolVar(&flags.SoftShadows, "soft-shadows", false, "Force soft shadows on")
	flag.BoolVar(&flags.HardShadows, "hard-shadows", false, "Force soft shadows off")
	flag.IntVar(&flags.ShadowGrid, "shadow-grid", 0, "Shadow rays per light disk axis")
	flag.BoolVar(&flags.NoBVH, "no-bvh", false, "Intersect the flat scene without a bounding volume hierarchy")
	threads := flag.Int("threads", -1, "Render goroutines; 0 renders synchronously (default: CPU count)")
	flag.Uint64Var(&flags.Seed, "seed", 0, "Seed for jittered sampling")
	flag.Float64Var(&flags.DebugInterval, "progress", 0, "Seconds between progress lines")
	flag.IntVar(&flags.GridInterval, "grid", 0, "Overlay a debug grid every N pixels")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()
	if *threads >= 0 {
		flags.Threads = threads
	}

	// Show help if requested
	if *help {
		printHelp()
		return
	}

	var cfg config.Config
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	cfg.Resolve(flags)

	logger := renderer.NewDefaultLogger()
	logger.Printf("Starting Whitted Raytracer...\n")

	filename, err := run(cfg, logger, time.Now())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	logger.Printf("Render saved as %s\n", filename)
}

func printHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-20s %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Output defaults to output/<scene>/render_<timestamp>.png")
}

// run renders the configured scene and writes the image, returning its path
func run(cfg config.Config, logger core.Logger, now time.Time) (string, error) {
	preset, err := scene.Load(cfg.Scene)
	if err != nil {
		return "", err
	}
	cfg.ApplyPreset(preset.Width, preset.Height, preset.SoftShadows, preset.ShadowGrid)
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	logger.Printf("Using scene %s (%dx%d)...\n", preset.Scene.Name, cfg.Width, cfg.Height)

	bvh := geometry.DefaultBVHConfig()
	bvh.Enabled = cfg.BVHEnabled()
	prepared := preset.Scene.Preprocess(bvh)
	if bvh.Enabled {
		stats := prepared.Geometries.Stats()
		logger.Printf("Built BVH: %d primitives in %d nodes (depth %d, %d unbounded)\n",
			stats.Primitives, stats.Nodes, stats.MaxDepth, stats.Unbounded)
	}

	tracer := integrator.NewWhittedIntegrator(prepared, integrator.Config{
		MaxDepth:    cfg.MaxDepth,
		SoftShadows: cfg.SoftShadowsEnabled(),
		ShadowGrid:  cfg.ShadowGrid,
	})

	factor := max(cfg.Downsample, 1)
	buffer := renderer.NewImageBuffer(cfg.Width*factor, cfg.Height*factor)

	cameraConfig := preset.Camera
	cameraConfig.Sink = buffer
	cameraConfig.Integrator = tracer
	cameraConfig.Logger = logger
	cameraConfig.Threads = cfg.ThreadCount()
	cameraConfig.SampleGrid = cfg.SampleGrid
	cameraConfig.DebugInterval = cfg.DebugInterval
	cameraConfig.Seed = cfg.Seed

	camera, err := renderer.NewCamera(cameraConfig)
	if err != nil {
		return "", fmt.Errorf("failed to create camera: %w", err)
	}

	stats, err := camera.Render()
	if err != nil {
		return "", err
	}
	logger.Printf("Rays: %d primary, %d shadow, %d reflection, %d refraction (max level %d)\n",
		stats.Rays.PrimaryRays, stats.Rays.ShadowRays, stats.Rays.ReflectionRays,
		stats.Rays.RefractionRays, stats.Rays.MaxLevel)

	if cfg.GridInterval > 0 {
		if err := camera.PrintGrid(cfg.GridInterval*factor, gridColor); err != nil {
			return "", err
		}
	}

	filename := cfg.Output
	if filename == "" {
		filename = defaultOutputPath(cfg.Scene, now)
	}
	img := imagewriter.Downsample(buffer.Image(cfg.Gamma), factor)
	if err := imagewriter.WriteFile(filename, img); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return filename, nil
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.png
func defaultOutputPath(sceneID string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", sceneID, fmt.Sprintf("render_%s.png", timestamp))
}
