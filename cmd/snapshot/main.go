package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"scene-renderer/internal/batch"
	"scene-renderer/internal/config"
	"scene-renderer/internal/postfx"
	"scene-renderer/internal/state"
	"scene-renderer/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.toml file")
	envFile := flag.String("env", ".env", "Path to .env overrides")
	shotFile := flag.String("shots", "", "TOML file with [[shot]] entries (default: built-in shots)")
	resources := flag.String("resources", "", "Path to resources directory (default: auto-detect)")
	outputDir := flag.String("output", "", "Output directory (default: <resources>/snapshots)")
	width := flag.Int("width", 0, "Image width (default: window width)")
	height := flag.Int("height", 0, "Image height (default: window height)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	testN := flag.Int("test", 0, "Render only first N shots for testing")

	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

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
	lookup, err := config.EnvLookup(*envFile)
	if err == nil {
		err = cfg.ApplyEnv(lookup)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading environment: %v\n", err)
		os.Exit(1)
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		ResourceDir: *resources,
		OutputDir:   *outputDir,
		Width:       *width,
		Height:      *height,
		Workers:     *workers,
	})

	if cfg.ResourceDir == "" {
		fmt.Fprintln(os.Stderr, "Error: cannot find resources directory. Use -resources flag or config.toml.")
		os.Exit(1)
	}

	shots := batch.DefaultShots
	if *shotFile != "" {
		if shots, err = batch.LoadShots(*shotFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading shots: %v\n", err)
			os.Exit(1)
		}
	}
	if *testN > 0 && *testN < len(shots) {
		shots = shots[:*testN]
	}
	if len(shots) == 0 {
		fmt.Println("No shots to render.")
		os.Exit(0)
	}

	// The background color follows the viewer's saved state.
	ps := state.New()
	ps.Load(cfg.StateFile)

	textures := texture.NewCache(cfg.ResourceDir, true)
	assets := batch.LoadAssets(cfg.ResourceDir, textures)
	fmt.Printf("Models: %d loaded, Textures: %d cached\n", len(assets.Models), textures.Len())

	fmt.Printf("Scene snapshots → WebP (%dx%d, supersample %d)\n", cfg.Snapshot.Width, cfg.Snapshot.Height, cfg.Snapshot.Supersample)
	fmt.Printf("Shots: %d, Workers: %d\n", len(shots), cfg.Snapshot.Workers)
	fmt.Printf("Output: %s\n", cfg.Snapshot.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	if err := os.MkdirAll(cfg.Snapshot.OutputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Run batch
	results := batch.Run(batch.Config{
		Assets:    assets,
		OutputDir: cfg.Snapshot.OutputDir,
		Workers:   cfg.Snapshot.Workers,
		Options: batch.Options{
			Post: postfx.Settings{
				Bloom:      *cfg.Post.Bloom,
				Exposure:   cfg.Post.Exposure,
				BlurPasses: cfg.Post.BlurPasses,
			},
			Width:       cfg.Snapshot.Width,
			Height:      cfg.Snapshot.Height,
			Supersample: cfg.Snapshot.Supersample,
			ClearColor:  ps.ClearColor,
		},
	}, shots)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	for _, r := range results {
		if r.Success {
			success++
			continue
		}
		failed++
		fmt.Printf("  %s: %s\n", r.Name, r.Error)
	}
	fmt.Printf("Rendered: %d/%d\n", success, len(shots))

	// Write manifest
	manifestPath := filepath.Join(cfg.Snapshot.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, shots, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
