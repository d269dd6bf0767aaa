package setting

import (
	"sort"

	"github.com/harrison/jvmtune/internal/encerr"
	"github.com/harrison/jvmtune/internal/transcoder"
)

// Kind tags a setting variant.
type Kind string

// KindRange is a bounded numeric setting.
const KindRange Kind = "range"

// Definition is the static, built-in declaration of a supported setting.
type Definition struct {
	Name       string                // JVM argument name and registry key
	Kind       Kind                  // Setting variant
	Unit       string                // Display unit
	Transcoder transcoder.Transcoder // Value text conversion
	Builtin    Bounds                // Built-in default bounds
	CanRelax   bool                  // Whether configuration may widen Builtin
}

// New builds a configured setting from this definition, exposed under publicName.
func (d *Definition) New(publicName string, overrides Bounds) (Setting, error) {
	switch d.Kind {
	case KindRange:
		return newRange(publicName, d, overrides)
	default:
		return nil, encerr.Definitionf(encerr.UnsupportedSetting, publicName, "unknown setting kind %q", d.Kind)
	}
}

var registry = map[string]*Definition{
	"MaxHeapSize": {
		Name:       "MaxHeapSize",
		Kind:       KindRange,
		Unit:       "GiB",
		Transcoder: transcoder.GigabytesToMegabytes,
		Builtin:    Bounds{Min: ptr(0.5), Step: ptr(0.125)},
		CanRelax:   true,
	},
	"GCTimeRatio": {
		Name:       "GCTimeRatio",
		Kind:       KindRange,
		Transcoder: transcoder.Integer{},
		Builtin:    Bounds{Min: ptr(9), Max: ptr(99), Step: ptr(1)},
		CanRelax:   false,
	},
}

// Lookup returns the built-in definition registered under name.
func Lookup(name string) (*Definition, error) {
	def, ok := registry[name]
	if !ok {
		return nil, encerr.Configf(encerr.UnsupportedSetting, name, "setting is not supported by the jvm encoder")
	}
	return def, nil
}

// Definitions returns every registered definition sorted by name.
func Definitions() []*Definition {
	defs := make([]*Definition, 0, len(registry))
	for _, def := range registry {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// New looks up name, parses its raw options and builds the setting. The public
// name is prefix+name; the argument name stays name.
func New(name, prefix string, rawOptions any) (Setting, error) {
	publicName := prefix + name
	def, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	overrides, err := ParseOptions(publicName, rawOptions)
	if err != nil {
		return nil, err
	}
	return def.New(publicName, overrides)
}
