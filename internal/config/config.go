package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Counties CountiesConfig `yaml:"counties" envconfig:"COUNTIES"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir      string `yaml:"data_dir" envconfig:"DATA_DIR"`
	OutputDir    string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	DatabasePath string `yaml:"database_path" envconfig:"DATABASE_PATH"`
}

// AnalysisConfig contains statistical thresholds used across the analysis layer.
// These were module-level constants in earlier revisions; they are configuration
// now so a run can be reproduced with different cutoffs.
type AnalysisConfig struct {
	SignificanceLevel    float64 `yaml:"significance_level" envconfig:"SIGNIFICANCE_LEVEL"`
	CorrelationThreshold float64 `yaml:"correlation_threshold" envconfig:"CORRELATION_THRESHOLD"`
	ExcellentThreshold   float64 `yaml:"excellent_threshold" envconfig:"EXCELLENT_THRESHOLD"`
	GoodThreshold        float64 `yaml:"good_threshold" envconfig:"GOOD_THRESHOLD"`

	// Census2016TotalMin/Max bound the numeric-range scan that recovers the 2016
	// national population total from the 2011 census response. The range matches
	// the published 2016 figure (4,761,865); replace with an authoritative source
	// if one becomes available.
	Census2016TotalMin float64 `yaml:"census_2016_total_min" envconfig:"CENSUS_2016_TOTAL_MIN"`
	Census2016TotalMax float64 `yaml:"census_2016_total_max" envconfig:"CENSUS_2016_TOTAL_MAX"`
}

// CountiesConfig carries the analysis county set and static county attributes
type CountiesConfig struct {
	// Analysis lists the counties included in the cross-dataset analysis:
	// only those with both bathing-water and census population coverage.
	Analysis []string `yaml:"analysis"`
	// Areas maps county name to area in km².
	Areas map[string]float64 `yaml:"areas"`
	// DefaultArea is used for counties missing from Areas.
	DefaultArea float64 `yaml:"default_area" envconfig:"DEFAULT_AREA"`
}

// DefaultAnalysisCounties is the 17-county analysis set.
var DefaultAnalysisCounties = []string{
	"Clare", "Cork", "Donegal", "Dublin", "Fingal", "Galway", "Kerry",
	"Leitrim", "Louth", "Mayo", "Meath", "Sligo", "Tipperary",
	"Waterford", "Westmeath", "Wexford", "Wicklow",
}

// DefaultCountyAreas holds county areas in km².
var DefaultCountyAreas = map[string]float64{
	"Clare":     3450,
	"Cork":      7500,
	"Donegal":   4861,
	"Dublin":    922,
	"Fingal":    455,
	"Galway":    6149,
	"Kerry":     4807,
	"Leitrim":   1590,
	"Louth":     826,
	"Mayo":      5586,
	"Meath":     2342,
	"Sligo":     1838,
	"Tipperary": 4303,
	"Waterford": 1857,
	"Westmeath": 1840,
	"Wexford":   2365,
	"Wicklow":   2025,
}

// Load loads configuration from environment variables and an optional config file
func Load() (*Config, error) {
	return LoadFromFile(defaultConfigFilePath())
}

// LoadFromFile loads configuration, merging the given YAML file (if it exists)
// under values already set through the environment.
func LoadFromFile(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("EIRSTAT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fileCfg, err := loadFromFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
			cfg = mergeConfigs(*fileCfg, cfg)
		}
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func defaultConfigFilePath() string {
	if p := os.Getenv("EIRSTAT_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(".", "eirstat.yaml")
}

func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileCfg, envCfg Config) Config {
	out := envCfg

	if out.Logging.Level == "" {
		out.Logging.Level = fileCfg.Logging.Level
	}
	if out.Logging.Format == "" {
		out.Logging.Format = fileCfg.Logging.Format
	}
	if out.Logging.Output == "" {
		out.Logging.Output = fileCfg.Logging.Output
	}
	if out.Logging.FilePath == "" {
		out.Logging.FilePath = fileCfg.Logging.FilePath
	}

	if out.Paths.DataDir == "" {
		out.Paths.DataDir = fileCfg.Paths.DataDir
	}
	if out.Paths.OutputDir == "" {
		out.Paths.OutputDir = fileCfg.Paths.OutputDir
	}
	if out.Paths.DatabasePath == "" {
		out.Paths.DatabasePath = fileCfg.Paths.DatabasePath
	}

	if out.Analysis.SignificanceLevel == 0 {
		out.Analysis.SignificanceLevel = fileCfg.Analysis.SignificanceLevel
	}
	if out.Analysis.CorrelationThreshold == 0 {
		out.Analysis.CorrelationThreshold = fileCfg.Analysis.CorrelationThreshold
	}
	if out.Analysis.ExcellentThreshold == 0 {
		out.Analysis.ExcellentThreshold = fileCfg.Analysis.ExcellentThreshold
	}
	if out.Analysis.GoodThreshold == 0 {
		out.Analysis.GoodThreshold = fileCfg.Analysis.GoodThreshold
	}
	if out.Analysis.Census2016TotalMin == 0 {
		out.Analysis.Census2016TotalMin = fileCfg.Analysis.Census2016TotalMin
	}
	if out.Analysis.Census2016TotalMax == 0 {
		out.Analysis.Census2016TotalMax = fileCfg.Analysis.Census2016TotalMax
	}

	if len(out.Counties.Analysis) == 0 {
		out.Counties.Analysis = fileCfg.Counties.Analysis
	}
	if len(out.Counties.Areas) == 0 {
		out.Counties.Areas = fileCfg.Counties.Areas
	}
	if out.Counties.DefaultArea == 0 {
		out.Counties.DefaultArea = fileCfg.Counties.DefaultArea
	}

	return out
}

// applyDefaults fills every field neither the environment nor the file set.
// Defaults live here rather than in envconfig tags: a tag default is
// indistinguishable from an explicit env value, which would shadow the file.
func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "console"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/eirstat.log"
	}

	if c.Paths.DataDir == "" {
		c.Paths.DataDir = "data"
	}
	if c.Paths.OutputDir == "" {
		c.Paths.OutputDir = "output"
	}
	if c.Paths.DatabasePath == "" {
		c.Paths.DatabasePath = "data/eirstat.db"
	}

	if c.Analysis.SignificanceLevel == 0 {
		c.Analysis.SignificanceLevel = 0.05
	}
	if c.Analysis.CorrelationThreshold == 0 {
		c.Analysis.CorrelationThreshold = 0.5
	}
	if c.Analysis.ExcellentThreshold == 0 {
		c.Analysis.ExcellentThreshold = 4
	}
	if c.Analysis.GoodThreshold == 0 {
		c.Analysis.GoodThreshold = 3
	}
	if c.Analysis.Census2016TotalMin == 0 {
		c.Analysis.Census2016TotalMin = 4_700_000
	}
	if c.Analysis.Census2016TotalMax == 0 {
		c.Analysis.Census2016TotalMax = 4_800_000
	}

	if c.Counties.DefaultArea == 0 {
		c.Counties.DefaultArea = 1000
	}
	if len(c.Counties.Analysis) == 0 {
		c.Counties.Analysis = append([]string(nil), DefaultAnalysisCounties...)
	}
	if len(c.Counties.Areas) == 0 {
		c.Counties.Areas = make(map[string]float64, len(DefaultCountyAreas))
		for county, area := range DefaultCountyAreas {
			c.Counties.Areas[county] = area
		}
	}
}

func (c *Config) validate() error {
	if c.Analysis.SignificanceLevel <= 0 || c.Analysis.SignificanceLevel >= 1 {
		return fmt.Errorf("significance_level must be in (0, 1), got %g", c.Analysis.SignificanceLevel)
	}
	if c.Analysis.CorrelationThreshold <= 0 || c.Analysis.CorrelationThreshold > 1 {
		return fmt.Errorf("correlation_threshold must be in (0, 1], got %g", c.Analysis.CorrelationThreshold)
	}
	if c.Analysis.GoodThreshold > c.Analysis.ExcellentThreshold {
		return fmt.Errorf("good_threshold %g exceeds excellent_threshold %g",
			c.Analysis.GoodThreshold, c.Analysis.ExcellentThreshold)
	}
	if c.Analysis.Census2016TotalMin >= c.Analysis.Census2016TotalMax {
		return fmt.Errorf("census_2016_total_min %g must be below census_2016_total_max %g",
			c.Analysis.Census2016TotalMin, c.Analysis.Census2016TotalMax)
	}
	if len(c.Counties.Analysis) == 0 {
		return fmt.Errorf("counties.analysis must not be empty")
	}
	if c.Counties.DefaultArea <= 0 {
		return fmt.Errorf("counties.default_area must be positive, got %g", c.Counties.DefaultArea)
	}
	for county, area := range c.Counties.Areas {
		if area <= 0 {
			return fmt.Errorf("county %q has non-positive area %g", county, area)
		}
	}
	switch c.Logging.Output {
	case "", "console", "file", "both":
	default:
		return fmt.Errorf("logging.output must be console, file or both, got %q", c.Logging.Output)
	}
	return nil
}

// Area returns the area in km² for a county, falling back to DefaultArea
// for counties missing from the table.
func (c CountiesConfig) Area(county string) float64 {
	if area, ok := c.Areas[county]; ok {
		return area
	}
	return c.DefaultArea
}

// InAnalysisSet reports whether a county belongs to the analysis county set.
func (c CountiesConfig) InAnalysisSet(county string) bool {
	for _, name := range c.Analysis {
		if name == county {
			return true
		}
	}
	return false
}
