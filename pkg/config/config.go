package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/octohelm/buildergen/pkg/builder"
	"github.com/octohelm/buildergen/pkg/gomodel"
)

// Config of builder generation, loaded from yaml like
//
//	suffixes: [Builder]
//	style: trailing
//	methodCase: upper-camel
//	defaults:
//	  - type: github.com/google/uuid.UUID
//	    value: uuid.New()
//	    imports:
//	      - path: github.com/google/uuid
type Config struct {
	Suffixes    []string       `yaml:"suffixes,omitempty"`
	BuildMethod string         `yaml:"buildMethod,omitempty"`
	IndentUnit  *string        `yaml:"indentUnit,omitempty"`
	Style       string         `yaml:"style,omitempty"`
	MethodCase  string         `yaml:"methodCase,omitempty"`
	NoDefaults  bool           `yaml:"noDefaults,omitempty"`
	Defaults    []DefaultEntry `yaml:"defaults,omitempty"`
}

type DefaultEntry struct {
	Type    string   `yaml:"type"`
	Value   string   `yaml:"value"`
	Imports []Import `yaml:"imports,omitempty"`
}

type Import struct {
	Path string `yaml:"path"`
	Name string `yaml:"name,omitempty"`
}

func Default() *Config {
	indentUnit := builder.DefaultIndentUnit

	return &Config{
		Suffixes:    []string{gomodel.DefaultSuffix},
		BuildMethod: builder.DefaultBuildMethod,
		IndentUnit:  &indentUnit,
		Style:       builder.LeadingDot.String(),
		MethodCase:  string(builder.MethodCaseRaw),
	}
}

// Load reads config file at path over Default.
// Empty path returns Default.
func Load(path string) (*Config, error) {
	c := Default()

	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}

	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}

	return c, nil
}

func (c *Config) Validate() error {
	if _, err := builder.ParseChainStyle(c.Style); err != nil {
		return err
	}

	if _, err := builder.ParseMethodCase(c.MethodCase); err != nil {
		return err
	}

	for i, d := range c.Defaults {
		if d.Type == "" || d.Value == "" {
			return errors.Errorf("defaults[%d]: type and value are required", i)
		}
		for j, imp := range d.Imports {
			if imp.Path == "" {
				return errors.Errorf("defaults[%d].imports[%d]: path is required", i, j)
			}
		}
	}

	return nil
}

// Options converts to builder.Options.
func (c *Config) Options() (builder.Options, error) {
	opts := builder.DefaultOptions()

	style, err := builder.ParseChainStyle(c.Style)
	if err != nil {
		return opts, err
	}
	opts.Style = style

	methodCase, err := builder.ParseMethodCase(c.MethodCase)
	if err != nil {
		return opts, err
	}
	opts.MethodCase = methodCase

	if c.BuildMethod != "" {
		opts.BuildMethod = c.BuildMethod
	}

	if c.IndentUnit != nil {
		opts.IndentUnit = *c.IndentUnit
	}

	opts.DefaultsEnabled = !c.NoDefaults

	if len(c.Defaults) > 0 {
		opts.Defaults = map[string]builder.DefaultEntry{}

		for _, d := range c.Defaults {
			entry := builder.DefaultEntry{Value: d.Value}
			for _, imp := range d.Imports {
				entry.Imports = append(entry.Imports, builder.Import{Path: imp.Path, Name: imp.Name})
			}
			opts.Defaults[d.Type] = entry
		}
	}

	return opts, nil
}

// ModelOptions options for gomodel.Load.
func (c *Config) ModelOptions() []gomodel.Option {
	opts := make([]gomodel.Option, 0, 2)
	if c.BuildMethod != "" {
		opts = append(opts, gomodel.WithBuildMethod(c.BuildMethod))
	}
	if len(c.Suffixes) > 0 {
		opts = append(opts, gomodel.WithSuffixes(c.Suffixes...))
	}
	return opts
}
