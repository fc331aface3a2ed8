package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"
)

// section replaces one top-level block of a Config from its YAML node.
// Each decode starts from a zero value so the overlay replaces the block
// instead of merging into it.
type section func(c *Config, node *yaml.Node) error

// sections maps the top-level YAML keys an overlay may replace. Other keys
// are ignored.
//
//nolint:gochecknoglobals // Read-only lookup table.
var sections = map[string]section{
	"output": func(c *Config, node *yaml.Node) error {
		var v OutputConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		c.Output = v
		return nil
	},
	"logging": func(c *Config, node *yaml.Node) error {
		var v LoggingConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		c.Logging = v
		return nil
	},
	"theme": func(c *Config, node *yaml.Node) error {
		var v ThemeConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		c.Theme = v
		return nil
	},
}

// Overlay records a file merged on top of the base config.
type Overlay struct {
	Path     string
	Sections []string
}

// OverlayError records an overlay file that could not be merged.
type OverlayError struct {
	Path string
	Err  error
}

// ShallowMergeYAML loads a YAML file and merges its top-level sections onto
// target. A section present in the file replaces the whole section in target;
// absent sections are left unchanged. Fields the overlay leaves empty are
// then restored to defaults. On error target is not modified.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var doc yaml.Node
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	// Empty or comment-only file.
	if len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("parsing overlay YAML from %s: top level must be a mapping", overlayPath)
	}

	next := *target
	next.overlays = slices.Clone(target.overlays)

	var merged []string
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i].Value, root.Content[i+1]
		apply, ok := sections[key]
		if !ok {
			continue
		}
		if err = apply(&next, value); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
		merged = append(merged, key)
	}

	next.fillDefaults()
	if len(merged) > 0 {
		sort.Strings(merged)
		next.overlays = append(next.overlays, Overlay{Path: overlayPath, Sections: merged})
	}
	*target = next
	return nil
}

// Overlays lists the files merged into c, in merge order.
func (c *Config) Overlays() []Overlay {
	return c.overlays
}

// SkippedOverlays lists overlay files that failed to merge and were ignored.
func (c *Config) SkippedOverlays() []OverlayError {
	return c.skipped
}
