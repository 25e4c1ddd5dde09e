package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultInputDir holds one metadata JSON document per token in folder mode
	DefaultInputDir = "json"

	// DefaultOutputDir receives the per-item CSV files in both modes
	DefaultOutputDir = "csv"

	// DefaultAggregateName is written when --metadata is used without --aggregate
	DefaultAggregateName = "metadata.csv"

	// DefaultFilenameTemplate renders the optional filename column
	DefaultFilenameTemplate = "{token_id}.png"

	// DefaultImageExt is used for {image_ext} when the image has no extension
	DefaultImageExt = ".png"

	// CSVExt is appended to per-item output stems
	CSVExt = ".csv"
)

// Environment variables that provide defaults for the CLI flags.
const (
	EnvInputDir         = "NFTCSV_INPUT_DIR"
	EnvOutputDir        = "NFTCSV_OUTPUT_DIR"
	EnvImagePrefix      = "NFTCSV_IMAGE_PREFIX"
	EnvFilenameTemplate = "NFTCSV_FILENAME_TEMPLATE"
	EnvSort             = "NFTCSV_SORT"
)

type Config struct {
	InputDir         string
	OutputDir        string
	ImagePrefix      string
	FilenameTemplate string
	Sort             bool
}

// Load reads an optional .env file and returns env-backed defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		InputDir:         getEnv(EnvInputDir, DefaultInputDir),
		OutputDir:        getEnv(EnvOutputDir, DefaultOutputDir),
		ImagePrefix:      getEnv(EnvImagePrefix, ""),
		FilenameTemplate: getEnv(EnvFilenameTemplate, DefaultFilenameTemplate),
		Sort:             getEnvBool(EnvSort, true),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}
