package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Assets    *Assets
	OutputDir string
	Options   Options
	Workers   int
}

// Result holds the outcome of rendering one shot.
type Result struct {
	Name    string
	Image   string // path relative to the output directory
	Pairs   int    // pairs matched after replaying the picks
	Success bool
	Error   string
}

// Run renders all shots using a worker pool.
func Run(cfg Config, shots []Shot) []Result {
	total := len(shots)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					fmt.Printf("  [%d/%d] %.2f shots/sec\n", p, total, float64(p)/elapsed)
				}
			}
		}
	}()

	workers := max(cfg.Workers, 1)
	shotChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range shotChan {
				results[idx] = processShot(cfg, &shots[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range shots {
		shotChan <- i
	}
	close(shotChan)

	wg.Wait()
	close(done)

	return results
}

func processShot(cfg Config, shot *Shot) Result {
	res := Result{Name: shot.Name, Image: shot.Name + ".webp"}
	if err := checkName(shot.Name); err != nil {
		res.Image = ""
		res.Error = err.Error()
		return res
	}

	img, g := Render(cfg.Assets, shot, cfg.Options)
	res.Pairs = g.Pairs

	outPath := filepath.Join(cfg.OutputDir, res.Image)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	f, err := os.Create(outPath)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		res.Error = fmt.Sprintf("WebP encode: %v", err)
		return res
	}

	res.Success = true
	return res
}
