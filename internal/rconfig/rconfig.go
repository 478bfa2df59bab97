// Package rconfig loads project-level rst2x configuration from a
// .rst2x.yaml file, the way a project-root config file is resolved and
// decoded elsewhere in the stack (gopkg.in/yaml.v3 for decoding,
// github.com/mitchellh/go-homedir for path expansion).
package rconfig

import (
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/GriffinCanCode/rst2x/pkg/rst"
)

// Config is the on-disk shape of .rst2x.yaml.
type Config struct {
	Options      OptionsConfig `yaml:"options"`
	IncludePaths []string      `yaml:"include_paths"`
	CacheDB      string        `yaml:"cache_db"`
	OutputDir    string        `yaml:"output_dir"`
}

// OptionsConfig mirrors rst.ParseOptions in YAML-friendly field names.
type OptionsConfig struct {
	SkipPounds          bool `yaml:"skip_pounds"`
	SupportSmileys      bool `yaml:"support_smileys"`
	SupportRawDirective bool `yaml:"support_raw_directive"`
	SupportMarkdown     bool `yaml:"support_markdown"`
}

// Default returns the configuration used when no .rst2x.yaml is found.
func Default() Config {
	return Config{
		Options: OptionsConfig{
			SupportSmileys:      true,
			SupportRawDirective: false,
			SupportMarkdown:     true,
		},
	}
}

// Load reads and decodes path. A missing file is not an error — it
// returns Default().
func Load(path string) (Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		expanded = path
	}
	data, err := os.ReadFile(expanded)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseOptions converts the decoded config into rst.ParseOptions.
func (c Config) ParseOptions() rst.ParseOptions {
	return rst.ParseOptions{
		SkipPounds:          c.Options.SkipPounds,
		SupportSmileys:      c.Options.SupportSmileys,
		SupportRawDirective: c.Options.SupportRawDirective,
		SupportMarkdown:     c.Options.SupportMarkdown,
	}
}
