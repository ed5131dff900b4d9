package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/blang/semver"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/mdouchement/exif"
	"github.com/pkg/errors"
)

// version is set at build time with -ldflags "-X main.version=x.y.z".
var version = "1.0.0"

func main() {
	// The .env file is optional.
	_ = godotenv.Load()

	os.Exit(run(os.Args[1:], os.LookupEnv, os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit status.
func run(args []string, lookup func(string) (string, bool), stdout, stderr io.Writer) int {
	fail := func(err error) int {
		fmt.Fprintf(stderr, "exifview: %v\n", err)
		return 1
	}

	cfg, err := loadConfig(lookup)
	if err != nil {
		return fail(err)
	}

	fs := flag.NewFlagSet("exifview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: exifview [options] <file>\n\n")
		fmt.Fprintf(stderr, "Print the camera metadata stored in the EXIF block of a JPEG file\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}
	fs.BoolVar(&cfg.ScanAll, "scan-all", cfg.ScanAll, "Keep reading IFD0 after the Exif sub-IFD")
	fs.UintVar(&cfg.MaxPayload, "max-payload", cfg.MaxPayload, "Largest tag payload to read, in bytes (at least 1)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Print skipped tags")
	showVersion := fs.Bool("version", false, "Print the version and exit")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	if *showVersion {
		v, err := semver.ParseTolerant(version)
		if err != nil {
			return fail(errors.Wrapf(err, "invalid version %q", version))
		}
		fmt.Fprintf(stdout, "exifview v%s\n", v)
		return 0
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}
	if cfg.MaxPayload == 0 {
		return fail(errors.New("max-payload must be positive"))
	}
	if cfg.MaxPayload > math.MaxUint32 {
		return fail(errors.Errorf("max-payload %d is too large", cfg.MaxPayload))
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return fail(errors.Wrap(err, "could not open file"))
	}
	defer f.Close()

	m, err := exif.DecodeWithOptions(f, cfg.options())
	if m != nil {
		if _, werr := m.WriteTo(stdout); werr != nil {
			return fail(werr)
		}
		if cfg.Verbose {
			printWarnings(stderr, m.Warnings)
		}
	}
	if err != nil {
		return fail(err)
	}
	return 0
}

func printWarnings(w io.Writer, err error) {
	if err == nil {
		return
	}
	merr, ok := err.(*multierror.Error)
	if !ok {
		fmt.Fprintf(w, "exifview: skipped: %v\n", err)
		return
	}
	for _, e := range merr.Errors {
		fmt.Fprintf(w, "exifview: skipped: %v\n", e)
	}
}
