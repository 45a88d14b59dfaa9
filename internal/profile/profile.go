package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the runtime configuration for the review engine.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Data is the data directory
	Data string
	// Driver is the schedule store driver (only "jsonfile" is supported)
	Driver string
	// StorePath points to where recallsense persists the review schedules
	StorePath string
	// Timezone is the IANA timezone used for day-boundary computation
	Timezone string
	// Version is the current version of the engine
	Version string
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// fillFromEnv sets dst from the environment variable only when dst is
// still empty.
func fillFromEnv(dst *string, key string) {
	if *dst == "" {
		*dst = os.Getenv(key)
	}
}

// FromEnv fills unset fields from RECALLSENSE_* environment variables.
// Fields already set on the profile (e.g. by command-line flags) take
// precedence over the environment.
func (p *Profile) FromEnv() {
	fillFromEnv(&p.Mode, "RECALLSENSE_MODE")
	fillFromEnv(&p.Data, "RECALLSENSE_DATA")
	fillFromEnv(&p.Driver, "RECALLSENSE_DRIVER")
	fillFromEnv(&p.StorePath, "RECALLSENSE_STORE_PATH")
	fillFromEnv(&p.Timezone, "RECALLSENSE_TIMEZONE")
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		absDir, err := filepath.Abs(dataDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		if !os.IsNotExist(err) {
			return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
		}
		if err := os.MkdirAll(dataDir, 0o750); err != nil {
			return "", errors.Wrapf(err, "unable to create data folder %s", dataDir)
		}
	}
	return dataDir, nil
}

// Validate normalizes the profile and fills in derived defaults.
func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Data == "" {
		p.Data = "data"
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", p.Data), slog.String("error", err.Error()))
		return err
	}
	p.Data = dataDir

	if p.Driver == "" {
		p.Driver = "jsonfile"
	}

	if p.Driver == "jsonfile" && p.StorePath == "" {
		storeFile := fmt.Sprintf("review_schedule_%s.json", p.Mode)
		p.StorePath = filepath.Join(dataDir, storeFile)
	}

	if p.Timezone == "" {
		p.Timezone = "UTC"
	}

	return nil
}
