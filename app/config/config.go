package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Thresholds gate how a match confidence is classified. A result at or above
// High is fully trusted; between Accept and High it is usable but flagged;
// below Accept it is rejected.
type Thresholds struct {
	Accept float64 `yaml:"accept" json:"accept"`
	High   float64 `yaml:"high" json:"high"`
}

// Viability holds the success-rate cutoffs for batch validation runs,
// expressed as percentages.
type Viability struct {
	Viable      float64 `yaml:"viable" json:"viable"`
	Conditional float64 `yaml:"conditional" json:"conditional"`
}

type GeocoderCfg struct {
	TimeoutMs int `yaml:"timeout_ms" json:"timeout_ms"`
}

type ValidationCfg struct {
	DelayMs int `yaml:"delay_ms" json:"delay_ms"`
}

type LocatorCfg struct {
	Thresholds Thresholds    `yaml:"thresholds" json:"thresholds"`
	Viability  Viability     `yaml:"viability" json:"viability"`
	Geocoder   GeocoderCfg   `yaml:"geocoder" json:"geocoder"`
	Validation ValidationCfg `yaml:"validation" json:"validation"`
}

var C = Default()

// Default returns the built-in configuration, used when no file is supplied.
func Default() LocatorCfg {
	return LocatorCfg{
		Thresholds: Thresholds{Accept: 50, High: 80},
		Viability:  Viability{Viable: 90, Conditional: 80},
		Geocoder:   GeocoderCfg{TimeoutMs: 10000},
		Validation: ValidationCfg{DelayMs: 200},
	}
}

// Load reads the YAML config at path into C, then applies ENV overrides.
func Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return err
	}
	C = cfg
	applyEnv()
	return nil
}

// applyEnv lets deployments tune thresholds without editing the config file.
func applyEnv() {
	if v := os.Getenv("ACCEPT_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			C.Thresholds.Accept = f
		}
	}
	if v := os.Getenv("HIGH_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			C.Thresholds.High = f
		}
	}
}

func GeocoderTimeout() time.Duration {
	return time.Duration(C.Geocoder.TimeoutMs) * time.Millisecond
}

func ValidationDelay() time.Duration {
	return time.Duration(C.Validation.DelayMs) * time.Millisecond
}
