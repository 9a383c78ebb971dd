package cli

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Fepozopo/pimg/pkg/codec"
	"github.com/Fepozopo/pimg/pkg/montecarlo"
	"github.com/Fepozopo/pimg/pkg/parimg"
)

var debugEnabled bool

func init() {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	d := os.Getenv("PIMG_DEBUG")
	if d == "1" || d == "true" {
		debugEnabled = true
	}
}

func debugf(format string, args ...interface{}) {
	if debugEnabled {
		fmt.Fprintf(os.Stderr, "pimg: "+format+"\n", args...)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: pimg <command> [options]")
	fmt.Fprintln(os.Stderr, "Commands:")
	for _, c := range Commands {
		fmt.Fprintf(os.Stderr, "  %-45s %s\n", c.Usage, c.Description)
	}
	fmt.Fprintln(os.Stderr, "Run \"pimg <command> -h\" for command-specific options.")
}

// Run dispatches a single invocation and returns the process exit code.
func Run(args []string) int {
	if len(args) < 1 {
		usage()
		return 1
	}

	var err error
	switch args[0] {
	case "blur", "kuwahara":
		err = runFilter(args[0], args[1:])
	case "pi":
		err = runPi(args[1:])
	case "update":
		err = CheckForUpdates()
	case "-h", "-help", "--help", "help":
		usage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "pimg: unknown command %q\n\n", args[0])
		usage()
		return 1
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "pimg: %v\n", err)
		return 1
	}
	return 0
}

// defaultWorkers resolves the worker count when -w is not given: PIMG_WORKERS
// if set and positive, otherwise the CPU count. The result is capped at
// maxRows so a default never exceeds what the engine accepts for this input;
// an explicit -w is passed through unchanged and may fail validation.
func defaultWorkers(maxRows int) int {
	workers := runtime.NumCPU()
	if v := os.Getenv("PIMG_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			workers = n
		} else {
			debugf("ignoring invalid PIMG_WORKERS=%q", v)
		}
	}
	if workers > maxRows {
		workers = maxRows
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

func runFilter(name string, args []string) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	defaultRadius := 2
	if name == "kuwahara" {
		defaultRadius = 4
	}
	radius := fs.Int("r", defaultRadius, "filter radius")
	workers := fs.Int("w", 0, "worker count (0 = PIMG_WORKERS or CPU count)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("%s requires <input> and <output> paths", name)
	}
	inputPath := fs.Arg(0)
	outputPath := fs.Arg(1)

	start := time.Now()
	src, format, err := codec.Load(inputPath)
	if err != nil {
		return err
	}
	loadTime := time.Since(start)
	fmt.Printf("Image loaded: %dx%d pixels (%s)\n", src.Width, src.Height, format)
	fmt.Printf("Load time: %dms\n", loadTime.Milliseconds())

	w := *workers
	if w <= 0 {
		// the blur's second pass partitions by width, so the default respects
		// both dimensions
		maxRows := src.Height
		if src.Width < maxRows {
			maxRows = src.Width
		}
		w = defaultWorkers(maxRows)
	}
	debugf("using %d workers, radius %d", w, *radius)

	var dst *parimg.Image
	start = time.Now()
	switch name {
	case "blur":
		fmt.Printf("Applying Gaussian blur with radius %d using %d workers\n", *radius, w)
		dst, err = parimg.GaussianBlur(src, *radius, w)
	case "kuwahara":
		fmt.Printf("Applying Kuwahara filter with radius %d using %d workers\n", *radius, w)
		dst, err = parimg.KuwaharaFilter(src, *radius, w)
	}
	if err != nil {
		return err
	}
	filterTime := time.Since(start)
	fmt.Printf("Filter time: %dms\n", filterTime.Milliseconds())

	start = time.Now()
	if err := codec.Save(outputPath, dst); err != nil {
		return err
	}
	saveTime := time.Since(start)
	fmt.Printf("Save time: %dms\n", saveTime.Milliseconds())
	fmt.Printf("Total time: %dms\n", (loadTime + filterTime + saveTime).Milliseconds())

	if p := os.Getenv("PIMG_PREVIEW"); p == "1" || p == "true" {
		if perr := PreviewImage(dst); perr != nil {
			debugf("preview skipped: %v", perr)
		}
	}
	return nil
}

func runPi(args []string) error {
	fs := flag.NewFlagSet("pi", flag.ContinueOnError)
	samples := fs.Int("n", 10000000, "total sample count")
	workers := fs.Int("w", 0, "worker count (0 = PIMG_WORKERS or CPU count)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	w := *workers
	if w <= 0 {
		w = defaultWorkers(*samples)
	}

	start := time.Now()
	res, err := montecarlo.EstimatePi(*samples, w)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Println("Monte Carlo Pi Estimation")
	fmt.Printf("Total samples: %d\n", res.Samples)
	fmt.Printf("Points inside circle: %d\n", res.Inside)
	fmt.Printf("Pi estimate: %.6f\n", res.Estimate)
	fmt.Printf("Error: %.6f\n", 3.141592653589793-res.Estimate)
	fmt.Printf("Time: %dms\n", elapsed.Milliseconds())
	return nil
}
