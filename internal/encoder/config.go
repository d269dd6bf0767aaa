package encoder

import (
	"fmt"
	"sort"

	"github.com/harrison/jvmtune/internal/encerr"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Keys recognised in an encoder configuration section.
const (
	KeyName          = "name"
	KeySettings      = "settings"
	KeyBefore        = "before"
	KeyAfter         = "after"
	KeySettingPrefix = "setting_prefix"
)

// Family is the only encoder family this package implements.
const Family = "jvm"

// Config is one encoder section: which settings to handle, in which order,
// and the literal tokens surrounding them.
type Config struct {
	Settings      []SettingConfig // Emitted in this order
	Before        []string        // Literal tokens emitted before the settings
	After         []string        // Literal tokens emitted after the settings
	SettingPrefix string          // Prepended to public setting names only
}

// SettingConfig names a registered setting and carries its raw options:
// nil, a map[string]any, an ordered map or a setting.Bounds.
type SettingConfig struct {
	Name    string
	Options any
}

// ParseConfig turns loosely typed configuration data into a Config.
//
// raw may be nil (empty configuration), a Config, a *Config, a map[string]any
// or an *orderedmap.OrderedMap[string, any]. Settings given as a plain Go map
// have no order of their own and are sorted by name; ordered maps keep their
// order.
func ParseConfig(raw any) (Config, error) {
	switch v := raw.(type) {
	case nil:
		return Config{}, nil
	case Config:
		return v, nil
	case *Config:
		if v == nil {
			return Config{}, nil
		}
		return *v, nil
	case map[string]any:
		return parseSection(v)
	case *orderedmap.OrderedMap[string, any]:
		if v == nil {
			return Config{}, nil
		}
		section := make(map[string]any, v.Len())
		for pair := v.Oldest(); pair != nil; pair = pair.Next() {
			section[pair.Key] = pair.Value
		}
		return parseSection(section)
	default:
		return Config{}, encerr.Configf(encerr.EncoderConfig, "",
			"configuration object for the jvm encoder is expected to be a mapping, found %T", raw)
	}
}

func parseSection(section map[string]any) (Config, error) {
	var cfg Config

	for key, value := range section {
		switch key {
		case KeyName:
			if value != nil && value != Family {
				return Config{}, encerr.Configf(encerr.EncoderConfig, "",
					"unsupported encoder %q, only %q is available", fmt.Sprint(value), Family)
			}
		case KeySettings:
			settings, err := parseSettings(value)
			if err != nil {
				return Config{}, err
			}
			cfg.Settings = settings
		case KeyBefore, KeyAfter:
			tokens, err := parseTokens(key, value)
			if err != nil {
				return Config{}, err
			}
			if key == KeyBefore {
				cfg.Before = tokens
			} else {
				cfg.After = tokens
			}
		case KeySettingPrefix:
			if value == nil {
				continue
			}
			prefix, ok := value.(string)
			if !ok {
				return Config{}, encerr.Configf(encerr.EncoderConfig, "",
					"%s must be a string, found %T", KeySettingPrefix, value)
			}
			cfg.SettingPrefix = prefix
		default:
			return Config{}, encerr.Configf(encerr.EncoderConfig, "", "unknown configuration key %q", key)
		}
	}

	return cfg, nil
}

func parseSettings(value any) ([]SettingConfig, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		names := make([]string, 0, len(v))
		for name := range v {
			names = append(names, name)
		}
		sort.Strings(names)
		settings := make([]SettingConfig, 0, len(names))
		for _, name := range names {
			settings = append(settings, SettingConfig{Name: name, Options: v[name]})
		}
		return settings, nil
	case *orderedmap.OrderedMap[string, any]:
		if v == nil {
			return nil, nil
		}
		settings := make([]SettingConfig, 0, v.Len())
		for pair := v.Oldest(); pair != nil; pair = pair.Next() {
			settings = append(settings, SettingConfig{Name: pair.Key, Options: pair.Value})
		}
		return settings, nil
	default:
		return nil, encerr.Configf(encerr.EncoderConfig, "",
			"%s must be a mapping of setting names, found %T", KeySettings, value)
	}
}

func parseTokens(key string, value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		tokens := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, encerr.Configf(encerr.EncoderConfig, "",
					"%s[%d] must be a string, found %T", key, i, item)
			}
			tokens = append(tokens, s)
		}
		return tokens, nil
	default:
		return nil, encerr.Configf(encerr.EncoderConfig, "", "%s must be a list of strings, found %T", key, value)
	}
}
