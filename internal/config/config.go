// Package config handles the optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"geotoggle/internal/asset"
	"geotoggle/internal/click"
	"geotoggle/internal/feature"
	"geotoggle/internal/style"
)

// Config is the root configuration file structure.
type Config struct {
	Asset        string `yaml:"asset"`
	NameProperty string `yaml:"name_property"`
	MatchBy      string `yaml:"match_by"`
	StrictLoad   bool   `yaml:"strict_load"`
	Style        Style  `yaml:"style"`
}

// Style holds the fill and outline colors as hex strings.
type Style struct {
	Selected    string  `yaml:"selected"`
	Unselected  string  `yaml:"unselected"`
	Outline     string  `yaml:"outline"`
	FillOpacity float64 `yaml:"fill_opacity"`
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Asset:        asset.DefaultName,
		NameProperty: feature.DefaultNameProperty,
		MatchBy:      string(click.MatchFeature),
		Style: Style{
			Selected:    "#F38E39",
			Unselected:  "#39F3EA",
			Outline:     "#808080",
			FillOpacity: 0.35,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every field is usable.
func (c *Config) Validate() error {
	var errs []string
	if strings.TrimSpace(c.Asset) == "" {
		errs = append(errs, "asset is required")
	}
	if strings.TrimSpace(c.NameProperty) == "" {
		errs = append(errs, "name_property is required")
	}
	if _, err := click.ParseMatchMode(c.MatchBy); err != nil {
		errs = append(errs, "match_by: "+err.Error())
	}
	for key, v := range map[string]string{
		"style.selected":   c.Style.Selected,
		"style.unselected": c.Style.Unselected,
		"style.outline":    c.Style.Outline,
	} {
		if !hexColor.MatchString(v) {
			errs = append(errs, fmt.Sprintf("%s must be a hex color, got %q", key, v))
		}
	}
	if c.Style.FillOpacity < 0 || c.Style.FillOpacity > 1 {
		errs = append(errs, fmt.Sprintf("style.fill_opacity must be within 0-1, got %g", c.Style.FillOpacity))
	}
	if len(errs) > 0 {
		return errors.New("config validation: " + strings.Join(errs, "; "))
	}
	return nil
}

// Rule converts the style section into the fill/outline rule.
func (s Style) Rule() style.Rule {
	return style.Rule{
		Property:    feature.PropSelected,
		Selected:    lipgloss.Color(s.Selected),
		Unselected:  lipgloss.Color(s.Unselected),
		FillOpacity: s.FillOpacity,
		Outline:     lipgloss.Color(s.Outline),
	}
}
