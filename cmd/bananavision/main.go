// Command bananavision analyzes banana ripeness from photographs.
//
// Usage:
//
//	bananavision [options] path [path ...]
//
// Each path is an image file or a directory of images. Results are printed
// to stdout, one report per image; warnings and per-image errors go to
// stderr and do not stop the batch.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/nathaniel-sheetz/BananaVision/internal/config"
	"github.com/nathaniel-sheetz/BananaVision/internal/debugviz"
	"github.com/nathaniel-sheetz/BananaVision/internal/imaging"
	"github.com/nathaniel-sheetz/BananaVision/internal/report"
	"github.com/nathaniel-sheetz/BananaVision/internal/vision"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// imageExtensions are the file suffixes accepted when expanding paths.
var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".bmp": true, ".tiff": true, ".tif": true,
}

func main() {
	os.Exit(run())
}

func run() int {
	showVersion := flag.Bool("version", false, "print version information and exit")
	mode := flag.String("mode", "", `classification mode: "pixel" (area percentages) or "banana" (per-fruit counts)`)
	debug := flag.Bool("debug", false, "write debug artifacts (masks, overlays) next to each image")
	asJSON := flag.Bool("json", false, "emit one JSON record per image instead of text reports")
	jobs := flag.Int("jobs", runtime.NumCPU(), "number of images analyzed concurrently")

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "bananavision - analyze banana ripeness from photographs")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage: bananavision [options] path [path ...]")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Paths may be image files or directories of images.")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Options:")
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Tunables are read from the environment (and an optional .env file);")
		fmt.Fprintln(os.Stderr, "see the BANANA_* variables in internal/config.")
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("bananavision %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return 0
	}

	// Reports go to stdout; everything else to stderr.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.FromEnv()
	if err != nil {
		log.Printf("configuration error: %v", err)
		return 1
	}
	if *mode != "" {
		cfg.Mode = config.Mode(*mode)
		if err := cfg.Validate(); err != nil {
			log.Printf("configuration error: %v", err)
			return 1
		}
	}

	analyzer, err := vision.New(cfg)
	if err != nil {
		log.Printf("configuration error: %v", err)
		return 1
	}

	files := expandPaths(flag.Args())
	if len(files) == 0 {
		log.Print("error: no image files found")
		return 1
	}

	results := analyzeBatch(analyzer, files, *jobs, *debug)

	failed := 0
	for i, res := range results {
		if res.err != nil {
			log.Printf("error processing %s: %v", files[i], res.err)
			failed++
			continue
		}
		name := filepath.Base(files[i])
		if *asJSON {
			if err := report.WriteJSON(os.Stdout, name, res.summary); err != nil {
				log.Printf("error reporting %s: %v", files[i], err)
			}
		} else {
			fmt.Println(report.Text(name, res.summary))
			fmt.Println()
		}
	}

	if failed == len(results) {
		return 1
	}
	return 0
}

// expandPaths resolves the positional arguments into a sorted list of image
// files. Non-image files and missing paths produce warnings, not failures.
func expandPaths(paths []string) []string {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		switch {
		case err != nil:
			log.Printf("warning: path not found: %s", path)
		case info.IsDir():
			entries, err := os.ReadDir(path)
			if err != nil {
				log.Printf("warning: cannot read directory %s: %v", path, err)
				continue
			}
			for _, e := range entries {
				if !e.IsDir() && imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
					files = append(files, filepath.Join(path, e.Name()))
				}
			}
		case imageExtensions[strings.ToLower(filepath.Ext(path))]:
			files = append(files, path)
		default:
			log.Printf("warning: skipping non-image file: %s", path)
		}
	}

	sort.Strings(files)
	return files
}

type result struct {
	summary vision.Summary
	err     error
}

// analyzeBatch processes independent images concurrently. Each image's
// pipeline owns its own grids, so no state is shared between workers; a
// per-image failure is recorded and the batch continues.
func analyzeBatch(analyzer *vision.Analyzer, files []string, jobs int, debug bool) []result {
	if jobs < 1 {
		jobs = 1
	}

	cache := imaging.NewImageCache()
	results := make([]result, len(files))

	var wg sync.WaitGroup
	sem := make(chan struct{}, jobs)

	for i, path := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = analyzeOne(analyzer, cache, path, debug)
		}(i, path)
	}
	wg.Wait()

	return results
}

func analyzeOne(analyzer *vision.Analyzer, cache *imaging.ImageCache, path string, debug bool) result {
	img, err := cache.Load(path)
	if err != nil {
		return result{err: err}
	}
	defer cache.Evict(path)

	if !debug {
		s, err := analyzer.Analyze(img)
		return result{summary: s, err: err}
	}

	s, artifacts, err := analyzer.AnalyzeDebug(img)
	if err != nil {
		return result{err: err}
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	paths, err := debugviz.SaveAll(filepath.Dir(path), stem, img, artifacts)
	if err != nil {
		log.Printf("warning: %v", err)
	}
	for _, p := range paths {
		log.Printf("debug artifact written: %s", p)
	}

	return result{summary: s}
}
