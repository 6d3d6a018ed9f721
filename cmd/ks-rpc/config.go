package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
)

// knownTools are the methods the server can expose.
var knownTools = []string{
	"list_components",
	"get_component",
	"update_component",
	"update_schematic_info",
	"rename_net",
	"list_net_classes",
	"update_net_class",
}

type config struct {
	Tools map[string]bool `yaml:"tools"`
}

// loadConfig returns the tool enable map. All tools default to enabled;
// a config.yaml `tools:` section can switch individual tools off. An
// empty path falls back to config.yaml in the working directory when
// that file exists.
func loadConfig(path string) (map[string]bool, error) {
	enabled := map[string]bool{}
	for _, name := range knownTools {
		enabled[name] = true
	}

	if path == "" {
		if _, err := os.Stat("config.yaml"); err != nil {
			return enabled, nil
		}
		path = "config.yaml"
	}

	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	var cfg config
	if err := yaml.Unmarshal(d, &cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config %s: %w", path, err)
	}
	for name, on := range cfg.Tools {
		if _, ok := enabled[name]; !ok {
			fmt.Fprintf(os.Stderr, "ks-rpc: WARNING unknown tool in config: '%s'\n", name)
			continue
		}
		enabled[name] = on
	}
	return enabled, nil
}

func logEnabled(w io.Writer, enabled map[string]bool) {
	var on, off []string
	for _, name := range knownTools {
		if enabled[name] {
			on = append(on, name)
		} else {
			off = append(off, name)
		}
	}
	sort.Strings(on)
	sort.Strings(off)
	fmt.Fprintf(w, "ks-rpc: %d/%d tools enabled\n", len(on), len(knownTools))
	if len(on) > 0 {
		fmt.Fprintf(w, "ks-rpc: enabled: %s\n", strings.Join(on, ", "))
	}
	if len(off) > 0 {
		fmt.Fprintf(w, "ks-rpc: disabled: %s\n", strings.Join(off, ", "))
	}
}
