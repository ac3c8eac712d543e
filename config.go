package nextver

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCommitTemplate   = "{{message_type}}{{#if scope}}({{ scope }}){{/if}}: {{short_description}}\n\n{{description}}\n\n{{foot}}"
	DefaultTagRegex         = `\d+\.\d+\.\d+`
	DefaultMajorRegex       = "BREAKING CHANGE:"
	DefaultMinorRegex       = "^feat"
	DefaultPatchRegex       = "^fix"
	DefaultPrereleasePrefix = "alpha"
)

// ProjectConfig holds the patterns and labels used to resolve a version.
// It is a plain value: copies may be shared freely between resolutions.
type ProjectConfig struct {
	// CommitTemplate describes the expected commit message layout. It is
	// carried for commit tooling and not used when resolving versions.
	CommitTemplate string `yaml:"commit_template,omitempty" json:"commit_template,omitempty"`

	// PrereleasePrefix labels non-release versions, e.g. "alpha" in 1.3.0-alpha.2
	PrereleasePrefix string `yaml:"prerelease_prefix,omitempty" json:"prerelease_prefix,omitempty"`

	// TagRegex extracts the version from the last tag
	TagRegex string `yaml:"tag_regex,omitempty" json:"tag_regex,omitempty"`

	// MajorRegex, MinorRegex and PatchRegex classify commit messages
	MajorRegex string `yaml:"major_regex,omitempty" json:"major_regex,omitempty"`
	MinorRegex string `yaml:"minor_regex,omitempty" json:"minor_regex,omitempty"`
	PatchRegex string `yaml:"patch_regex,omitempty" json:"patch_regex,omitempty"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		CommitTemplate:   DefaultCommitTemplate,
		PrereleasePrefix: DefaultPrereleasePrefix,
		TagRegex:         DefaultTagRegex,
		MajorRegex:       DefaultMajorRegex,
		MinorRegex:       DefaultMinorRegex,
		PatchRegex:       DefaultPatchRegex,
	}
}

// Merge returns a copy of c where every non-empty field of overrides wins
func (c ProjectConfig) Merge(overrides ProjectConfig) (ProjectConfig, error) {
	merged := c
	if err := mergo.Merge(&merged, overrides, mergo.WithOverride); err != nil {
		return ProjectConfig{}, fmt.Errorf("merging config: %w", err)
	}
	return merged, nil
}

// LoadConfig reads a YAML config file and layers it over DefaultConfig.
// A missing file is not an error and yields the defaults.
func LoadConfig(path string) (ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return ProjectConfig{}, fmt.Errorf("reading config %q: %w", path, err)
	}

	var file ProjectConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return ProjectConfig{}, fmt.Errorf("parsing config %q: %w", path, err)
	}

	return DefaultConfig().Merge(file)
}
