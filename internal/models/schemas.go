package models

import (
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SettingOptions is the documented shape of one setting's options in a
// configuration file. Omitted fields fall back to the built-in bounds.
type SettingOptions struct {
	Min     *float64 `json:"min,omitempty" jsonschema_description:"Lower bound in the setting unit"`
	Max     *float64 `json:"max,omitempty" jsonschema_description:"Upper bound in the setting unit"`
	Step    *float64 `json:"step,omitempty" jsonschema:"minimum=0" jsonschema_description:"Grid spacing from min; may be 0 only when min equals max"`
	Default *float64 `json:"default,omitempty" jsonschema_description:"Value reported by describe when the argument is absent"`
}

// EncoderSection is the documented shape of one encoder configuration section.
type EncoderSection struct {
	Name          string                     `json:"name,omitempty" jsonschema:"enum=jvm" jsonschema_description:"Encoder family"`
	Settings      map[string]*SettingOptions `json:"settings,omitempty" jsonschema_description:"Settings to handle in emission order"`
	Before        []string                   `json:"before,omitempty" jsonschema_description:"Literal tokens emitted before the settings"`
	After         []string                   `json:"after,omitempty" jsonschema_description:"Literal tokens emitted after the settings"`
	SettingPrefix string                     `json:"setting_prefix,omitempty" jsonschema_description:"Prepended to public setting names"`
}

// EncoderSectionSchema returns the JSON Schema of one encoder section. The
// settings object only admits the given setting names.
func EncoderSectionSchema(settingNames []string) *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	s := r.Reflect(new(EncoderSection))
	s.Title = "jvmtune encoder section"

	options := r.Reflect(new(SettingOptions))
	options.Version = ""
	options.ID = ""

	settings := &jsonschema.Schema{
		Type:                 "object",
		Description:          "Settings to handle in emission order",
		Properties:           orderedmap.New[string, *jsonschema.Schema](),
		AdditionalProperties: jsonschema.FalseSchema,
	}
	for _, name := range settingNames {
		settings.Properties.Set(name, &jsonschema.Schema{
			AnyOf: []*jsonschema.Schema{options, {Type: "null"}},
		})
	}
	s.Properties.Set("settings", settings)

	return s
}

// ConfigFileSchema returns the JSON Schema of a whole configuration file:
// either a single encoder section or named sections under "encoders".
func ConfigFileSchema(settingNames []string) *jsonschema.Schema {
	section := EncoderSectionSchema(settingNames)
	version := section.Version

	nested := *section
	nested.Version = ""
	nested.ID = ""

	encoders := &jsonschema.Schema{
		Type:                 "object",
		Description:          "Named encoder sections",
		AdditionalProperties: &nested,
	}
	multi := &jsonschema.Schema{
		Type:                 "object",
		Properties:           orderedmap.New[string, *jsonschema.Schema](),
		Required:             []string{"encoders"},
		AdditionalProperties: jsonschema.FalseSchema,
	}
	multi.Properties.Set("encoders", encoders)

	return &jsonschema.Schema{
		Version: version,
		Title:   "jvmtune configuration file",
		OneOf:   []*jsonschema.Schema{&nested, multi},
	}
}
