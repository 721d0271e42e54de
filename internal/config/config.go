package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/hakkan/internal/foundation/errors"
)

// DefaultFilename is the configuration file looked up when none is given.
const DefaultFilename = "hakkan.cfg"

// DefaultIndexCount is the number of posts placed on the front page.
const DefaultIndexCount = 6

// DefaultSearchPaths returns the directories searched for a relative config
// filename: the working directory, the home directory and ~/.hakkan.
func DefaultSearchPaths() []string {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return []string{cwd, "~/", "~/.hakkan/"}
}

// Config represents the site configuration.
type Config struct {
	InputDir    string         `yaml:"input_dir,omitempty" json:"input_dir,omitempty"`
	PostsDir    string         `yaml:"posts_dir,omitempty" json:"posts_dir,omitempty"`
	OutputDir   string         `yaml:"output_dir" json:"output_dir"`
	StaticDir   string         `yaml:"static_dir" json:"static_dir"`
	TemplateDir string         `yaml:"template_dir" json:"template_dir"`
	BaseURL     string         `yaml:"baseurl" json:"baseurl"`
	Title       string         `yaml:"title" json:"title"`
	IndexCount  int            `yaml:"indexCount" json:"indexCount"`
	Templates   Templates      `yaml:"templates" json:"templates"`
	Meta        map[string]any `yaml:"meta,omitempty" json:"meta,omitempty"`
	Build       BuildConfig    `yaml:"build" json:"build"`

	// Path is the absolute location of the file this config was loaded from.
	Path string `yaml:"-" json:"-"`
}

// Templates maps the four page kinds to template file names inside TemplateDir.
type Templates struct {
	Index   string `yaml:"index" json:"index"`
	Article string `yaml:"article" json:"article"`
	Archive string `yaml:"archive" json:"archive"`
	Tags    string `yaml:"tags" json:"tags"`
}

// BuildConfig tunes the generator.
type BuildConfig struct {
	Workers int `yaml:"workers,omitempty" json:"workers,omitempty"`
}

// ContentDir returns the posts directory. posts_dir wins over input_dir.
func (c *Config) ContentDir() string {
	if c.PostsDir != "" {
		return c.PostsDir
	}
	return c.InputDir
}

// Load locates, reads and validates a configuration file. Relative paths
// inside the file are resolved against the directory holding it.
func Load(configPath string) (*Config, error) {
	// Absent .env files are normal.
	_ = loadEnvFile()

	resolved := Locate(configPath, DefaultSearchPaths())
	if _, err := os.Stat(resolved); os.IsNotExist(err) {
		return nil, derrors.ConfigError("configuration file not found").
			WithContext("file", configPath).
			Build()
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to read config file").
			WithContext("file", resolved).
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to decode config file").
			Fatal().
			WithContext("file", resolved).
			Build()
	}
	cfg.Path = resolved
	cfg.resolvePaths(filepath.Dir(resolved))

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes configuration bytes. A document starting with '{' is decoded
// as JSON, anything else as YAML. ${VAR} references are expanded in the
// directory keys and baseurl only; title and meta reach templates verbatim.
// Defaults are applied; validation is left to the caller.
func Parse(data []byte) (*Config, error) {
	// Keys absent from the document keep these values.
	cfg := Config{IndexCount: DefaultIndexCount}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("json: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}

	cfg.expandEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) expandEnv() {
	for _, p := range []*string{&c.InputDir, &c.PostsDir, &c.OutputDir, &c.StaticDir, &c.TemplateDir, &c.BaseURL} {
		*p = os.ExpandEnv(*p)
	}
}

func (c *Config) applyDefaults() {
	if c.Build.Workers <= 0 {
		c.Build.Workers = runtime.NumCPU()
	}
	if c.Meta == nil {
		c.Meta = map[string]any{}
	}
}

func (c *Config) resolvePaths(base string) {
	for _, p := range []*string{&c.InputDir, &c.PostsDir, &c.OutputDir, &c.StaticDir, &c.TemplateDir} {
		if *p == "" {
			continue
		}
		expanded := expandHome(*p)
		if !filepath.IsAbs(expanded) {
			expanded = filepath.Join(base, expanded)
		}
		*p = filepath.Clean(expanded)
	}
}
