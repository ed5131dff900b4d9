package main

import (
	"strconv"

	"github.com/mdouchement/exif"
	"github.com/pkg/errors"
)

type config struct {
	ScanAll    bool
	MaxPayload uint
	Verbose    bool
}

// loadConfig reads the configuration from the environment. lookup is
// usually os.LookupEnv, after godotenv has loaded the optional .env file.
func loadConfig(lookup func(string) (string, bool)) (config, error) {
	cfg := config{
		MaxPayload: exif.DefaultMaxPayload,
	}

	var err error
	if v, ok := lookup("EXIFVIEW_SCAN_ALL"); ok && v != "" {
		if cfg.ScanAll, err = strconv.ParseBool(v); err != nil {
			return cfg, errors.Wrap(err, "EXIFVIEW_SCAN_ALL")
		}
	}
	if v, ok := lookup("EXIFVIEW_VERBOSE"); ok && v != "" {
		if cfg.Verbose, err = strconv.ParseBool(v); err != nil {
			return cfg, errors.Wrap(err, "EXIFVIEW_VERBOSE")
		}
	}
	if v, ok := lookup("EXIFVIEW_MAX_PAYLOAD"); ok && v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return cfg, errors.Wrap(err, "EXIFVIEW_MAX_PAYLOAD")
		}
		if n == 0 {
			return cfg, errors.New("EXIFVIEW_MAX_PAYLOAD: must be positive")
		}
		cfg.MaxPayload = uint(n)
	}
	return cfg, nil
}

func (c config) options() exif.Options {
	return exif.Options{
		ScanAll:    c.ScanAll,
		MaxPayload: uint32(c.MaxPayload),
	}
}
