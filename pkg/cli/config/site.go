package config

import (
	"os"
	"time"

	"github.com/gosimple/slug"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// SiteConfig is the TOML site configuration. It seeds reference data
// that rarely changes between deployments: the site identity and the
// default set of news categories.
type SiteConfig struct {
	Site       Site       `toml:"site"`
	Categories []Category `toml:"category"`
}

// Site holds the public identity of the deployment
type Site struct {
	Name     string `toml:"name"`
	BaseURL  string `toml:"base_url"`
	Timezone string `toml:"timezone"`
}

// Validate checks if the Site section is valid
func (s *Site) Validate() error {
	if s.Name == "" {
		return goerr.Wrap(ErrMissingName, "site name is required")
	}
	if s.Timezone != "" {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			return goerr.Wrap(ErrInvalidTimezone, "unknown timezone", goerr.V("timezone", s.Timezone))
		}
	}
	return nil
}

// Location resolves the configured timezone, defaulting to Europe/Moscow
func (s *Site) Location() (*time.Location, error) {
	name := s.Timezone
	if name == "" {
		name = "Europe/Moscow"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidTimezone, "unknown timezone", goerr.V("timezone", name))
	}
	return loc, nil
}

// Category represents a news category seeded at startup
type Category struct {
	Name string `toml:"name"`
	Slug string `toml:"slug"`
}

// Validate checks if the Category is valid. The slug is optional and
// derived from the name when absent.
func (c *Category) Validate() error {
	if c.Name == "" {
		return goerr.Wrap(ErrMissingName, "category name is required")
	}
	if c.Slug != "" && !slug.IsSlug(c.Slug) {
		return goerr.Wrap(ErrInvalidConfig, "category slug must be URL-safe", goerr.V(CategorySlugKey, c.Slug))
	}
	return nil
}

// EffectiveSlug returns the configured slug, or one derived from the name
func (c *Category) EffectiveSlug() string {
	if c.Slug != "" {
		return c.Slug
	}
	return slug.Make(c.Name)
}

// Validate checks if the SiteConfig is valid
func (c *SiteConfig) Validate() error {
	if err := c.Site.Validate(); err != nil {
		return err
	}

	slugs := make(map[string]bool)
	for i, cat := range c.Categories {
		if err := cat.Validate(); err != nil {
			return goerr.Wrap(err, "invalid category", goerr.V(CategoryIndexKey, i))
		}
		s := cat.EffectiveSlug()
		if slugs[s] {
			return goerr.Wrap(ErrDuplicateSlug, "category slugs must be unique", goerr.V(CategorySlugKey, s))
		}
		slugs[s] = true
	}

	return nil
}

// LoadSiteConfig loads the site configuration from a TOML file
func LoadSiteConfig(path string) (*SiteConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "config file does not exist", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var cfg SiteConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V(ConfigPathKey, path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &cfg, nil
}
