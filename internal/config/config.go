package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable the combine tool reads. The defaults reproduce
// the published README.md exactly; a YAML file and HYPEDOC_* environment
// variables override them, in that order.
type Config struct {
	// Layout of the documentation repository.
	SourceDir  string `yaml:"source_dir"`
	OutputFile string `yaml:"output_file"`
	ImagesDir  string `yaml:"images_dir"`
	ReportFile string `yaml:"report_file"`

	// Document assembly.
	Title     string            `yaml:"title"`
	Overrides map[string]string `yaml:"overrides"`

	// URL prefixes substituted for relative documents/ and images/ paths.
	// The asset base is also what the cleanup step scans the output for,
	// so the two stay consistent by construction.
	DocumentBaseURL string `yaml:"document_base_url"`
	AssetBaseURL    string `yaml:"asset_base_url"`

	// Preview server.
	ListenAddr string `yaml:"listen_addr"`
}

// DefaultPath is consulted when no config flag is given; it may be absent.
const DefaultPath = "combine.yaml"

// Default returns the configuration the tool ships with.
func Default() Config {
	return Config{
		SourceDir:  "md",
		OutputFile: "README.md",
		ImagesDir:  "images",
		ReportFile: "unused_files.txt",

		Title: "# Tumult Hype Documentation",
		Overrides: map[string]string{
			// The full changelog stays online; the combined document
			// carries a pointer instead.
			"15versionhistory.md": "# Version History\n\nView the full version history [here](https://tumult.com/hype/documentation/#version-history).",
		},

		DocumentBaseURL: "https://tumult.com/hype/documentation/v4/documents/",
		AssetBaseURL:    "https://raw.githubusercontent.com/tumult/hype-documentation/refs/heads/main/images/",

		ListenAddr: ":8090",
	}
}

// Load builds the config from defaults, an optional YAML file, and the
// environment. A file named explicitly must exist; the default path is
// skipped silently when absent.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// Defaults only.
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.SourceDir = envOr("HYPEDOC_SOURCE_DIR", cfg.SourceDir)
	cfg.OutputFile = envOr("HYPEDOC_OUTPUT_FILE", cfg.OutputFile)
	cfg.ImagesDir = envOr("HYPEDOC_IMAGES_DIR", cfg.ImagesDir)
	cfg.ReportFile = envOr("HYPEDOC_REPORT_FILE", cfg.ReportFile)
	cfg.ListenAddr = envOr("HYPEDOC_LISTEN_ADDR", cfg.ListenAddr)

	return cfg, nil
}

func (c Config) Validate() error {
	if c.SourceDir == "" {
		return fmt.Errorf("source_dir is required")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output_file is required")
	}
	if c.ImagesDir == "" {
		return fmt.Errorf("images_dir is required")
	}
	if c.ReportFile == "" {
		return fmt.Errorf("report_file is required")
	}
	if c.Title == "" {
		return fmt.Errorf("title is required")
	}
	if !strings.HasSuffix(c.DocumentBaseURL, "/") {
		return fmt.Errorf("document_base_url must end with a slash")
	}
	if !strings.HasSuffix(c.AssetBaseURL, "/") {
		return fmt.Errorf("asset_base_url must end with a slash")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
