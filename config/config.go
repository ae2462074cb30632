package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/soapywu/pushkit/plugin"
	"gopkg.in/yaml.v3"
)

// PluginName is the name the plugin is registered under in an Expo plugins
// list.
const PluginName = "@iterable/expo-plugin"

// FileNames are tried in order by Find.
var FileNames = []string{"pushkit.yaml", "app.yaml", "app.json"}

var ErrNotFound = errors.New("no app config found")

type Config struct {
	Name    string       `yaml:"name"`
	IOS     IOS          `yaml:"ios"`
	Android Android      `yaml:"android"`
	Plugin  plugin.Props `yaml:"plugin"`
	// Plugins is the Expo plugins list. An entry
	// ["@iterable/expo-plugin", {...}] is read when Plugin is not set.
	Plugins []yaml.Node `yaml:"plugins"`
}

type IOS struct {
	BundleIdentifier string `yaml:"bundleIdentifier"`
}

type Android struct {
	Package            string `yaml:"package"`
	GoogleServicesFile string `yaml:"googleServicesFile"`
}

// Find returns the first config file of FileNames present in root.
func Find(root string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w in %s", ErrNotFound, root)
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse reads a YAML or JSON app config, unwrapping a top-level expo key.
func Parse(data []byte) (*Config, error) {
	var wrapped struct {
		Expo *Config `yaml:"expo"`
	}
	if err := yaml.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := wrapped.Expo
	if cfg == nil {
		cfg = &Config{}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if cfg.Plugin == (plugin.Props{}) {
		props, found, err := pluginEntry(cfg.Plugins)
		if err != nil {
			return nil, err
		}
		if found {
			cfg.Plugin = props
		}
	}

	if err := cfg.Plugin.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// pluginEntry finds PluginName in an Expo plugins list. Entries are either
// a bare name or a [name, options] pair.
func pluginEntry(plugins []yaml.Node) (plugin.Props, bool, error) {
	var props plugin.Props
	for _, node := range plugins {
		switch node.Kind {
		case yaml.ScalarNode:
			if node.Value == PluginName {
				return props, true, nil
			}
		case yaml.SequenceNode:
			if len(node.Content) == 0 || node.Content[0].Value != PluginName {
				continue
			}
			if len(node.Content) > 1 {
				if err := node.Content[1].Decode(&props); err != nil {
					return props, false, fmt.Errorf("failed to parse %s options: %w", PluginName, err)
				}
			}
			return props, true, nil
		}
	}
	return props, false, nil
}
