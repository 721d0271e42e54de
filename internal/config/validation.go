package config

import (
	"os"

	derrors "git.home.luguber.info/inful/hakkan/internal/foundation/errors"
)

// Validate checks that every required key is present and every configured
// input directory exists. The output directory is created on demand.
func Validate(cfg *Config) error {
	v := &configurationValidator{config: cfg}
	return v.validate()
}

type configurationValidator struct {
	config *Config
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateRequired(); err != nil {
		return err
	}
	if err := cv.validateTemplates(); err != nil {
		return err
	}
	if err := cv.validateValues(); err != nil {
		return err
	}
	return cv.validatePaths()
}

func (cv *configurationValidator) validateValues() error {
	if cv.config.IndexCount < 0 {
		b := derrors.ValidationError("indexCount must not be negative").
			WithContext("key", "indexCount").
			WithContext("value", cv.config.IndexCount)
		if cv.config.Path != "" {
			b = b.WithContext("file", cv.config.Path)
		}
		return b.Build()
	}
	return nil
}

func (cv *configurationValidator) validateRequired() error {
	required := []struct {
		key   string
		value string
	}{
		{"input_dir", cv.config.ContentDir()},
		{"output_dir", cv.config.OutputDir},
		{"static_dir", cv.config.StaticDir},
		{"template_dir", cv.config.TemplateDir},
		{"baseurl", cv.config.BaseURL},
	}
	for _, r := range required {
		if r.value == "" {
			return missingKey(cv.config, r.key)
		}
	}
	return nil
}

func (cv *configurationValidator) validateTemplates() error {
	t := cv.config.Templates
	for _, r := range []struct {
		key  string
		name string
	}{
		{"templates.index", t.Index},
		{"templates.article", t.Article},
		{"templates.archive", t.Archive},
		{"templates.tags", t.Tags},
	} {
		if r.name == "" {
			return missingKey(cv.config, r.key)
		}
	}
	return nil
}

func (cv *configurationValidator) validatePaths() error {
	for _, p := range []struct {
		key  string
		path string
	}{
		{"input_dir", cv.config.ContentDir()},
		{"static_dir", cv.config.StaticDir},
		{"template_dir", cv.config.TemplateDir},
	} {
		info, err := os.Stat(p.path)
		if err == nil && !info.IsDir() {
			err = os.ErrInvalid
		}
		if err != nil {
			return derrors.ConfigError("configured directory does not exist").
				WithContext("key", p.key).
				WithContext("path", p.path).
				WithCause(err).
				Build()
		}
	}
	return nil
}

func missingKey(cfg *Config, key string) error {
	b := derrors.ConfigError("required configuration key is missing").WithContext("key", key)
	if cfg.Path != "" {
		b = b.WithContext("file", cfg.Path)
	}
	return b.Build()
}
