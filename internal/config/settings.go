// Package config loads the dashboard settings file.
package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/DjordjeVuckovic/raglens/internal/domain"
	"github.com/DjordjeVuckovic/raglens/internal/fingerprint"
	"github.com/DjordjeVuckovic/raglens/internal/view/correlation"
	"github.com/DjordjeVuckovic/raglens/internal/view/distribution"
	"github.com/DjordjeVuckovic/raglens/internal/view/fpview"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSessionTTL    = 30 * time.Minute
	DefaultCacheCapacity = 32
)

// Settings are the initial values of every new dashboard session.
type Settings struct {
	SeverityWeight float64                `yaml:"severity_weight"`
	SortBy         domain.SortKey         `yaml:"sort_by"`
	Mode           domain.InteractionMode `yaml:"mode"`
	PreviewLength  int                    `yaml:"preview_length"`
	SessionTTL     time.Duration          `yaml:"session_ttl"`
	CacheCapacity  int                    `yaml:"cache_capacity"`
	Layout         Layouts                `yaml:"layout"`
}

type Layouts struct {
	Correlation  correlation.Layout  `yaml:"correlation"`
	Distribution distribution.Layout `yaml:"distribution"`
	Fingerprints fpview.Layout       `yaml:"fingerprints"`
}

func Default() *Settings {
	s := &Settings{}
	_ = validate(s)
	return s
}

func LoadFromFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dashboard config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse dashboard config YAML: %w", err)
	}
	if err := validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func validate(s *Settings) error {
	if math.IsNaN(s.SeverityWeight) || math.IsInf(s.SeverityWeight, 0) || s.SeverityWeight < 0 {
		return fmt.Errorf("severity_weight must be a positive number, got %v", s.SeverityWeight)
	}
	if s.SeverityWeight == 0 {
		s.SeverityWeight = fingerprint.DefaultSeverityWeight
	}

	if s.SortBy == "" {
		s.SortBy = domain.SortBySeverity
	}
	if !s.SortBy.Valid() {
		return fmt.Errorf("sort_by %q is not one of %v", s.SortBy, domain.SortKeys)
	}

	if s.Mode == "" {
		s.Mode = domain.ModeHighlight
	}
	if !s.Mode.Valid() {
		return fmt.Errorf("mode %q must be %q or %q", s.Mode, domain.ModeHighlight, domain.ModeFilter)
	}

	if s.PreviewLength <= 0 {
		s.PreviewLength = fpview.DefaultPreviewLength
	}
	if s.SessionTTL <= 0 {
		s.SessionTTL = DefaultSessionTTL
	}
	if s.CacheCapacity <= 0 {
		s.CacheCapacity = DefaultCacheCapacity
	}

	if s.Layout.Correlation.Width <= 0 || s.Layout.Correlation.Height <= 0 {
		s.Layout.Correlation = correlation.DefaultLayout()
	}
	if s.Layout.Distribution.Width <= 0 || s.Layout.Distribution.Height <= 0 {
		s.Layout.Distribution = distribution.DefaultLayout()
	}
	if s.Layout.Fingerprints.Width <= 0 || s.Layout.Fingerprints.RowHeight <= 0 {
		s.Layout.Fingerprints = fpview.DefaultLayout()
	}

	return nil
}
