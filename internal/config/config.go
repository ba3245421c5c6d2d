// Package config loads the assessor's run configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Taxonomy  string `yaml:"taxonomy" validate:"required"`
	VendorDir string `yaml:"vendor_dir" validate:"required"`
	OutDir    string `yaml:"out_dir" validate:"required"`

	Formats []string `yaml:"formats" validate:"dive,oneof=json md html csv"`
	Redact  bool     `yaml:"redact"`
	History bool     `yaml:"history"`
	Compare string   `yaml:"compare"`

	// MaxAverageRisk fails the run (exit 2) when the average vendor risk
	// score exceeds it. 100 disables the gate.
	MaxAverageRisk float64 `yaml:"max_average_risk" validate:"gte=0,lte=100"`
	Concurrency    int     `yaml:"concurrency" validate:"min=1,max=64"`

	Log         LogConfig `yaml:"log"`
	MetricsFile string    `yaml:"metrics_file"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn warning error"`
	JSON  bool   `yaml:"json"`
}

var validate = validator.New()

func Default() Config {
	return Config{
		Taxonomy:       "risk_taxonomy.json",
		VendorDir:      "vendors",
		OutDir:         "out",
		Formats:        []string{"json"},
		History:        true,
		MaxAverageRisk: 100,
		Concurrency:    4,
		Log:            LogConfig{Level: "info"},
	}
}

// Load reads the YAML file at path over Default. Unknown keys are an error.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field constraints and reports every violation at once.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: must satisfy %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
