package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"scene-renderer/internal/config"
	"scene-renderer/internal/viewer"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.toml file")
	envFile := flag.String("env", ".env", "Path to .env overrides")
	resources := flag.String("resources", "", "Path to resources directory (default: auto-detect)")
	stateFile := flag.String("state", "", "Program state file (default: <resources>/program_state.txt)")
	shaders := flag.String("shaders", "", "Load shaders from this directory and reload them on change")
	width := flag.Int("width", 0, "Window width (default: 800)")
	height := flag.Int("height", 0, "Window height (default: 600)")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := loadConfig(*configFile, *envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// CLI flags override config file and environment
	cfg.Resolve(config.Flags{
		ResourceDir: *resources,
		StateFile:   *stateFile,
		ShaderDir:   *shaders,
		Width:       *width,
		Height:      *height,
	})

	if cfg.ResourceDir == "" {
		fmt.Fprintln(os.Stderr, "Error: cannot find resources directory. Use -resources flag or config.toml.")
		os.Exit(1)
	}

	fmt.Printf("Resources: %s\n", cfg.ResourceDir)
	fmt.Printf("State: %s\n", cfg.StateFile)

	if err := viewer.Run(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path, envPath string) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	lookup, err := config.EnvLookup(envPath)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.ApplyEnv(lookup)
}
