// plyrender renders WebP previews of PLY point clouds. Given a file it
// writes one image; given a directory it renders every .ply/.ply.lz4
// inside using a worker pool and writes a manifest.json.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ply-reader/internal/batch"
	"ply-reader/internal/colormap"
	"ply-reader/internal/config"
	"ply-reader/internal/pointcloud"
	"ply-reader/internal/postprocess"
	"ply-reader/internal/raster"

	"github.com/HugoSmits86/nativewebp"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	input := flag.String("in", "", "PLY file or directory of PLY files")
	output := flag.String("out", "", "Output file (single input) or directory")
	size := flag.Int("size", 0, "Output image edge length (default: 512)")
	pointSize := flag.Int("pointsize", 0, "Point splat diameter in pixels (default: 2)")
	yaw := flag.Float64("yaw", 45, "Turntable yaw in degrees")
	pitch := flag.Float64("pitch", 30, "Camera pitch in degrees")
	ramp := flag.String("colormap", "", "Gradient strip image for height colors (PNG/JPEG/TGA)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	testN := flag.Int("test", 0, "Render only first N files of a directory")

	flag.Parse()

	if *input == "" && flag.NArg() > 0 {
		*input = flag.Arg(0)
	}
	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: no input. Use -in or pass a path.")
		os.Exit(1)
	}

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
		Colormap:  *ramp,
		Size:      *size,
		PointSize: *pointSize,
		Workers:   *workers,
	})

	heightRamp := colormap.Viridis
	if cfg.Colormap != "" {
		var err error
		heightRamp, err = colormap.LoadStrip(cfg.Colormap)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading colormap: %v\n", err)
			os.Exit(1)
		}
	}

	info, err := os.Stat(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if info.IsDir() {
		renderDir(cfg, heightRamp, *input, *output, *yaw, *pitch, *testN)
		return
	}
	renderOne(cfg, heightRamp, *input, *output, *yaw, *pitch)
}

func renderOne(cfg config.Config, ramp colormap.Ramp, input, output string, yaw, pitch float64) {
	cloud, err := pointcloud.Load(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	img := raster.RenderCloud(cloud.Pos, cloud.Colors, raster.Options{
		Size:        cfg.RenderSize,
		Supersample: cfg.Supersample,
		PointSize:   cfg.PointSize,
		Yaw:         yaw,
		Pitch:       pitch,
		Ramp:        ramp,
	})
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.RenderSize)
	}

	if output == "" {
		output = batch.OutputName(input)
	}
	f, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding WebP: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Rendered %d points -> %s\n", cloud.Rows, output)
}

func renderDir(cfg config.Config, ramp colormap.Ramp, input, output string, yaw, pitch float64, testN int) {
	files, err := batch.Scan(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No PLY files in %s\n", input)
		os.Exit(1)
	}
	if testN > 0 && testN < len(files) {
		files = files[:testN]
	}

	outDir := output
	if outDir == "" {
		cfg.InputDir = input
		cfg.Resolve(config.Flags{})
		outDir = cfg.OutputDir
	}

	fmt.Printf("Rendering %d files with %d workers...\n", len(files), cfg.Workers)
	start := time.Now()

	results := batch.Run(batch.Config{
		OutputDir:   outDir,
		Ramp:        ramp,
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		PointSize:   cfg.PointSize,
		Yaw:         yaw,
		Pitch:       pitch,
		Workers:     cfg.Workers,
	}, files)

	ok, failed := 0, 0
	for _, r := range results {
		if r.Success {
			ok++
		} else {
			failed++
			fmt.Fprintf(os.Stderr, "  FAILED %s: %s\n", r.Path, r.Error)
		}
	}

	manifest := filepath.Join(outDir, "manifest.json")
	if err := batch.WriteManifest(manifest, results); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing manifest: %v\n", err)
	}

	fmt.Printf("Done in %s: %d ok, %d failed\n", time.Since(start).Round(time.Millisecond), ok, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
