// Package config reads the YAML configuration of the gqlpaginate command.
package config

import (
	"fmt"
	"os"

	connection "github.com/Yunoo/graphql-pagination-transform/internal/connection"
	"gopkg.in/yaml.v3"
)

// Config mirrors the command line flags of the transform and watch commands.
//
//	schema:
//	  - schema/
//	out: schema.generated.graphql
//	directive: connection
//	cacheControl:
//	  enabled: true
//	  inheritMaxAge: false
type Config struct {
	// Schema lists schema files or directories.
	Schema StringList `yaml:"schema,omitempty"`
	// Out is the output file; empty means stdout.
	Out string `yaml:"out,omitempty"`
	// Directive overrides the marker directive name.
	Directive string `yaml:"directive,omitempty"`
	// CacheControl configures cache hint propagation.
	CacheControl CacheControlConfig `yaml:"cacheControl,omitempty"`
}

type CacheControlConfig struct {
	// Enabled defaults to true when omitted.
	Enabled       *bool `yaml:"enabled,omitempty"`
	InheritMaxAge bool  `yaml:"inheritMaxAge,omitempty"`
}

// StringList is a YAML value that can be either a string or a list of strings.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler for StringList.
func (s *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = []string{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*s = list
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", node.Line)
	}
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// CachePolicy converts the cacheControl section into the engine's policy.
func (c *Config) CachePolicy() connection.CacheControl {
	cc := connection.DefaultCacheControl()
	if c.CacheControl.Enabled != nil {
		cc.Enabled = *c.CacheControl.Enabled
	}
	cc.InheritMaxAge = c.CacheControl.InheritMaxAge
	return cc
}
