package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "OIREACHTAS_ARCHIVE_CONFIG"
	hubTokenEnv   = "HF_TOKEN"
	hubDatasetEnv = "HF_DATASET"
	outputDirEnv  = "DEBATES_OUT_DIR"
	startDateEnv  = "DEBATES_START_DATE"
	endDateEnv    = "DEBATES_END_DATE"
	uploadDirEnv  = "DEBATES_UPLOAD_DIR"

	dateLayout = "2006-01-02"
)

// Config holds high-level settings required across the commands.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Hub     HubConfig     `yaml:"hub"`
	Index   IndexConfig   `yaml:"index"`
	Upload  UploadConfig  `yaml:"upload"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// FetchConfig describes the upstream debate-record endpoint and the
// local directory the harvester fills.
type FetchConfig struct {
	BaseURL        string `yaml:"baseUrl"`
	OutputDir      string `yaml:"outputDir"`
	StartDate      string `yaml:"startDate"`
	EndDate        string `yaml:"endDate"`
	SleepMillis    int    `yaml:"sleepMillis"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
	UserAgent      string `yaml:"userAgent"`
}

// Throttle is the fixed delay between consecutive day requests.
func (f FetchConfig) Throttle() time.Duration {
	return time.Duration(f.SleepMillis) * time.Millisecond
}

// Timeout bounds a single upstream request.
func (f FetchConfig) Timeout() time.Duration {
	if f.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// DateRange parses the configured span. An empty end date means today.
func (f FetchConfig) DateRange() (start, end time.Time, err error) {
	start, err = time.Parse(dateLayout, f.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid startDate %q: %w", f.StartDate, err)
	}

	if f.EndDate == "" {
		return start, time.Now().UTC(), nil
	}

	end, err = time.Parse(dateLayout, f.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid endDate %q: %w", f.EndDate, err)
	}
	return start, end, nil
}

// HubConfig wires the dataset repository on the hosting platform.
type HubConfig struct {
	Endpoint   string `yaml:"endpoint"`
	Dataset    string `yaml:"dataset"`
	Branch     string `yaml:"branch"`
	Token      string `yaml:"token"`
	NumWorkers int    `yaml:"numWorkers"`
}

// IndexConfig names the availability-index artifact.
type IndexConfig struct {
	Output string `yaml:"output"`
}

// UploadConfig names the local folder pushed to the dataset repository.
type UploadConfig struct {
	SourceDir string `yaml:"sourceDir"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(hubTokenEnv); v != "" {
		c.Hub.Token = v
	}
	if v := os.Getenv(hubDatasetEnv); v != "" {
		c.Hub.Dataset = v
	}
	if v := os.Getenv(outputDirEnv); v != "" {
		c.Fetch.OutputDir = v
	}
	if v := os.Getenv(startDateEnv); v != "" {
		c.Fetch.StartDate = v
	}
	if v := os.Getenv(endDateEnv); v != "" {
		c.Fetch.EndDate = v
	}
	if v := os.Getenv(uploadDirEnv); v != "" {
		c.Upload.SourceDir = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Fetch.BaseURL != "" {
		base.Fetch.BaseURL = override.Fetch.BaseURL
	}
	if override.Fetch.OutputDir != "" {
		base.Fetch.OutputDir = override.Fetch.OutputDir
	}
	if override.Fetch.StartDate != "" {
		base.Fetch.StartDate = override.Fetch.StartDate
	}
	if override.Fetch.EndDate != "" {
		base.Fetch.EndDate = override.Fetch.EndDate
	}
	if override.Fetch.SleepMillis > 0 {
		base.Fetch.SleepMillis = override.Fetch.SleepMillis
	}
	if override.Fetch.TimeoutSeconds > 0 {
		base.Fetch.TimeoutSeconds = override.Fetch.TimeoutSeconds
	}
	if override.Fetch.UserAgent != "" {
		base.Fetch.UserAgent = override.Fetch.UserAgent
	}

	if override.Hub.Endpoint != "" {
		base.Hub.Endpoint = override.Hub.Endpoint
	}
	if override.Hub.Dataset != "" {
		base.Hub.Dataset = override.Hub.Dataset
	}
	if override.Hub.Branch != "" {
		base.Hub.Branch = override.Hub.Branch
	}
	if override.Hub.Token != "" {
		base.Hub.Token = override.Hub.Token
	}
	if override.Hub.NumWorkers > 0 {
		base.Hub.NumWorkers = override.Hub.NumWorkers
	}

	if override.Index.Output != "" {
		base.Index.Output = override.Index.Output
	}

	if override.Upload.SourceDir != "" {
		base.Upload.SourceDir = override.Upload.SourceDir
	}

	return base
}

func defaultConfig() Config {
	outDir := "2026"
	if home, err := os.UserHomeDir(); err == nil {
		outDir = filepath.Join(home, "2026")
	}

	return Config{
		Logging: LoggingConfig{Level: "info"},
		Fetch: FetchConfig{
			BaseURL:        "https://data.oireachtas.ie/akn/ie/debateRecord/dail",
			OutputDir:      outDir,
			StartDate:      "2026-01-01",
			EndDate:        "",
			SleepMillis:    300,
			TimeoutSeconds: 30,
			UserAgent:      "oireachtas-local-poc/1.0",
		},
		Hub: HubConfig{
			Endpoint:   "https://huggingface.co",
			Dataset:    "bubcass/oireachtas-debates",
			Branch:     "main",
			NumWorkers: 3,
		},
		Index:  IndexConfig{Output: filepath.Join("data", "available-dates.json")},
		Upload: UploadConfig{SourceDir: filepath.Join("data", "xml", "dail")},
	}
}
