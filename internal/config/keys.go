package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownKey is returned by Get and Set for keys outside the schema.
var ErrUnknownKey = errors.New("unknown config key")

// configKey binds a dotted key to accessors on Config.
type configKey struct {
	get func(*Config) string
	set func(*Config, string) error
}

// keyTable maps every dotted key to its accessors.
//
//nolint:gochecknoglobals // Read-only lookup table.
var keyTable = map[string]configKey{
	"output.default_format": {
		get: func(c *Config) string { return c.Output.DefaultFormat },
		set: func(c *Config, v string) error { c.Output.DefaultFormat = v; return nil },
	},
	"output.page_size": {
		get: func(c *Config) string { return strconv.Itoa(c.Output.PageSize) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %q", ErrInvalidPageSize, v)
			}
			c.Output.PageSize = n
			return nil
		},
	},
	"output.page_size_options": {
		get: func(c *Config) string { return joinInts(c.Output.PageSizeOptions) },
		set: func(c *Config, v string) error {
			opts, err := splitInts(v)
			if err != nil {
				return err
			}
			c.Output.PageSizeOptions = opts
			return nil
		},
	},
	"output.filter_placeholder": {
		get: func(c *Config) string { return c.Output.FilterPlaceholder },
		set: func(c *Config, v string) error { c.Output.FilterPlaceholder = v; return nil },
	},
	"logging.level": {
		get: func(c *Config) string { return c.Logging.Level },
		set: func(c *Config, v string) error { c.Logging.Level = v; return nil },
	},
	"logging.format": {
		get: func(c *Config) string { return c.Logging.Format },
		set: func(c *Config, v string) error { c.Logging.Format = v; return nil },
	},
	"logging.file": {
		get: func(c *Config) string { return c.Logging.File },
		set: func(c *Config, v string) error { c.Logging.File = v; return nil },
	},
	"theme.mode": {
		get: func(c *Config) string { return c.Theme.Mode },
		set: func(c *Config, v string) error { c.Theme.Mode = strings.ToLower(v); return nil },
	},
}

// Keys returns every settable key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(keyTable))
	for k := range keyTable {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the string form of a dotted key such as "output.page_size".
func (c *Config) Get(key string) (string, error) {
	k, ok := keyTable[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return k.get(c), nil
}

// Set assigns a dotted key and validates the result. On validation failure the
// previous value is restored.
func (c *Config) Set(key, value string) error {
	k, ok := keyTable[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	snapshot := *c
	snapshot.Output.PageSizeOptions = append([]int(nil), c.Output.PageSizeOptions...)
	if err := k.set(c, value); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		*c = snapshot
		return err
	}
	return nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func splitInts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPageSize, part)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no page sizes in %q", ErrInvalidPageSize, s)
	}
	return out, nil
}
