package config

import (
	"os"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/hakkan/internal/foundation/errors"
)

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return derrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("file", configPath).
			Build()
	}

	example := Config{
		PostsDir:    "posts",
		OutputDir:   "site",
		StaticDir:   "static",
		TemplateDir: "templates",
		BaseURL:     "https://example.com/",
		Title:       "My Weblog",
		IndexCount:  DefaultIndexCount,
		Templates: Templates{
			Index:   "index.html",
			Article: "article.html",
			Archive: "archive.html",
			Tags:    "tags.html",
		},
		Meta: map[string]any{
			"author":      "bear",
			"description": "Notes and mutterings",
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryInternal, "failed to marshal config").Build()
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write config file").
			WithContext("file", configPath).
			Build()
	}
	return nil
}
