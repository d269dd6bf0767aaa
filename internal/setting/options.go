package setting

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"dario.cat/mergo"
	"github.com/harrison/jvmtune/internal/encerr"
	"github.com/spf13/cast"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Option keys accepted in a setting's configuration mapping.
const (
	OptionMin     = "min"
	OptionMax     = "max"
	OptionStep    = "step"
	OptionDefault = "default"
)

var optionOrder = []string{OptionMin, OptionMax, OptionStep, OptionDefault}

// requiredOptions maps options that may not be set to null onto the error
// reported when they are.
var requiredOptions = map[string]encerr.Kind{
	OptionMin:  encerr.NoLowerBound,
	OptionMax:  encerr.NoUpperBound,
	OptionStep: encerr.NoStep,
}

// Bounds holds range values. A nil field means "not set".
type Bounds struct {
	Min     *float64
	Max     *float64
	Step    *float64
	Default *float64
}

// Layers pairs the bounds hard-coded for a setting with the caller's overrides.
type Layers struct {
	BuiltinDefaults Bounds
	UserOverrides   Bounds
}

// Resolve overlays UserOverrides on BuiltinDefaults field by field. Only nil
// fields fall through, so an explicit zero override is kept.
func (l Layers) Resolve() (Bounds, error) {
	resolved := l.UserOverrides
	if err := mergo.Merge(&resolved, l.BuiltinDefaults, mergo.WithoutDereference); err != nil {
		return Bounds{}, fmt.Errorf("failed to merge built-in bounds: %w", err)
	}
	return resolved, nil
}

// ParseOptions converts a caller-supplied per-setting configuration into Bounds.
// raw may be nil (built-in defaults only), a Bounds, a map[string]any or an
// ordered map. Anything else, an unknown key, or a non-numeric value is a
// configuration error. An explicit null bound is reported as missing rather
// than falling back to the built-in value; a null default means no default.
func ParseOptions(setting string, raw any) (Bounds, error) {
	var entries map[string]any

	switch v := raw.(type) {
	case nil:
		return Bounds{}, nil
	case Bounds:
		return v, nil
	case map[string]any:
		entries = v
	case *orderedmap.OrderedMap[string, any]:
		if v == nil {
			return Bounds{}, nil
		}
		entries = make(map[string]any, v.Len())
		for pair := v.Oldest(); pair != nil; pair = pair.Next() {
			entries[pair.Key] = pair.Value
		}
	default:
		return Bounds{}, encerr.Configf(encerr.InvalidSettingConfig, setting,
			"options must be a mapping, found %T", raw)
	}

	var unknown []string
	for key := range entries {
		switch key {
		case OptionMin, OptionMax, OptionStep, OptionDefault:
		default:
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Bounds{}, encerr.Configf(encerr.UnsupportedOption, setting,
			"unknown options %s", strings.Join(unknown, ", "))
	}

	parsed := make(map[string]*float64, len(optionOrder))
	for _, key := range optionOrder {
		raw, ok := entries[key]
		if !ok {
			continue
		}
		if raw == nil {
			if kind, required := requiredOptions[key]; required {
				return Bounds{}, encerr.Configf(kind, setting, "%s value is explicitly empty", key)
			}
			continue
		}
		f, ok := toNumber(raw)
		if !ok {
			err := encerr.Configf(encerr.InvalidType, setting, "%s value must be a number, found %q", key, fmt.Sprint(raw))
			err.Value = raw
			return Bounds{}, err
		}
		parsed[key] = &f
	}

	return Bounds{
		Min:     parsed[OptionMin],
		Max:     parsed[OptionMax],
		Step:    parsed[OptionStep],
		Default: parsed[OptionDefault],
	}, nil
}

// toNumber reports v as a float64 if it holds a Go numeric type. Strings and
// booleans are rejected even though cast could coerce them.
func toNumber(v any) (float64, bool) {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
	default:
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func ptr(v float64) *float64 {
	return &v
}
