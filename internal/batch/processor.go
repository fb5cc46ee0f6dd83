package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"ply-reader/internal/colormap"
	"ply-reader/internal/pointcloud"
	"ply-reader/internal/postprocess"
	"ply-reader/internal/raster"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Ramp        colormap.Ramp
	RenderSize  int
	Supersample int
	PointSize   int
	Yaw         float64
	Pitch       float64
	Workers     int
}

// Result holds the outcome of processing one file.
type Result struct {
	Path    string
	Points  int
	Success bool
	Error   string
}

// Scan returns the PLY files under dir (not recursive), including
// lz4-compressed ones, in sorted order.
func Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: scan %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".ply") || strings.HasSuffix(name, ".ply.lz4") {
			files = append(files, filepath.Join(dir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Run renders previews for all files using a worker pool.
func Run(cfg Config, files []string) []Result {
	total := len(files)
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
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f files/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	fileChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range fileChan {
				results[idx] = processFile(cfg, files[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range files {
		fileChan <- i
	}
	close(fileChan)

	wg.Wait()
	close(done)

	return results
}

func processFile(cfg Config, path string) Result {
	cloud, err := pointcloud.Load(path)
	if err != nil {
		return Result{Path: path, Error: err.Error()}
	}

	img := raster.RenderCloud(cloud.Pos, cloud.Colors, raster.Options{
		Size:        cfg.RenderSize,
		Supersample: cfg.Supersample,
		PointSize:   cfg.PointSize,
		Yaw:         cfg.Yaw,
		Pitch:       cfg.Pitch,
		Ramp:        cfg.Ramp,
	})
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.RenderSize)
	}

	outPath := filepath.Join(cfg.OutputDir, OutputName(path))
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return Result{Path: path, Points: cloud.Rows, Error: err.Error()}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return Result{Path: path, Points: cloud.Rows, Error: err.Error()}
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return Result{Path: path, Points: cloud.Rows, Error: fmt.Sprintf("WebP encode: %v", err)}
	}

	return Result{Path: path, Points: cloud.Rows, Success: true}
}

// OutputName maps an input file name to its preview image name.
func OutputName(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, ".lz4")
	name = strings.TrimSuffix(name, ".ply")
	return name + ".webp"
}
