package common

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// MainConfig is the file named by --config (spec.md §6). Field names follow
// the YAML keys spelled out in the spec exactly.
type MainConfig struct {
	Roots   []string `yaml:"roots"`
	Keyword string   `yaml:"keyword"`
	Trace   string   `yaml:"trace"`

	// Ambient knobs not named by a required spec field, carried through
	// config so operators can tune them without recompiling; all have the
	// spec-recommended defaults (SPEC_FULL.md §4) when left unset.
	CollisionPolicy  CollisionPolicy `yaml:"collisionPolicy"`
	IntegrityPolicy  IntegrityPolicy `yaml:"integrityPolicy"`
	RetryBudget      int             `yaml:"retryBudget"`
	PerFileTimeout   time.Duration   `yaml:"perFileTimeout"`
	TidyDestinations bool            `yaml:"tidyDestinations"`
	FileConcurrency  int             `yaml:"fileConcurrency"`
	JobConcurrency   int             `yaml:"jobConcurrency"`
}

const (
	DefaultRetryBudget     = 5
	DefaultPerFileTimeout  = 300 * time.Second
	DefaultFileConcurrency = 8
	DefaultJobConcurrency  = 4
)

// LoadMainConfig reads and validates the file at path, filling in defaults for
// every optional field (spec.md §6).
func LoadMainConfig(path string) (MainConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MainConfig{}, Stage(PhaseConfiguration, path, err)
	}

	var cfg MainConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return MainConfig{}, Stage(PhaseConfiguration, path, fmt.Errorf("parsing config: %w", err))
	}

	if len(cfg.Roots) == 0 {
		return MainConfig{}, Stage(PhaseConfiguration, path, fmt.Errorf("roots must name at least one directory"))
	}
	if cfg.Keyword == "" {
		cfg.Keyword = DefaultKeyword
	}
	if cfg.RetryBudget <= 0 {
		cfg.RetryBudget = DefaultRetryBudget
	}
	if cfg.PerFileTimeout <= 0 {
		cfg.PerFileTimeout = DefaultPerFileTimeout
	}
	if cfg.FileConcurrency <= 0 {
		cfg.FileConcurrency = DefaultFileConcurrency
	}
	if cfg.JobConcurrency <= 0 {
		cfg.JobConcurrency = DefaultJobConcurrency
	}
	return cfg, nil
}

func (c MainConfig) RootSet() RootSet {
	return RootSet{
		Roots:           c.Roots,
		Keyword:         c.Keyword,
		TracePathFormat: c.Trace,
	}
}

// VolumeMetadataFileName is the optional per-volume override file (spec.md §6).
const VolumeMetadataFileName = ".volume.yml"

type VolumeMetadata struct {
	Name     string `yaml:"name"`
	Disabled bool   `yaml:"disabled"`
}

// LoadVolumeMetadata reads the metadata file at path. A missing file is not an
// error: it signals "use folder basename, not disabled" (spec.md §4.1 step 4).
func LoadVolumeMetadata(path string) (VolumeMetadata, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return VolumeMetadata{}, false, nil
	}
	if err != nil {
		return VolumeMetadata{}, false, err
	}
	var m VolumeMetadata
	if err := yaml.Unmarshal(data, &m); err != nil {
		return VolumeMetadata{}, false, err
	}
	return m, true, nil
}

// SlideMetadataFileName is the optional per-slide route hint file (spec.md §6).
const SlideMetadataFileName = ".slide.yml"

type SlideMetadata struct {
	Route string `yaml:"route"`
}

// LoadSlideMetadata reads the metadata file at path. A missing file means "no
// route" (spec.md §4.2).
func LoadSlideMetadata(path string) (SlideMetadata, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return SlideMetadata{}, false, nil
	}
	if err != nil {
		return SlideMetadata{}, false, err
	}
	var m SlideMetadata
	if err := yaml.Unmarshal(data, &m); err != nil {
		return SlideMetadata{}, false, err
	}
	return m, true, nil
}
