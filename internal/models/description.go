package models

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SettingTypeRange is the type tag reported for bounded numeric settings.
const SettingTypeRange = "range"

// SettingDescription is the static shape of one configured setting, plus its
// current value once decoded
type SettingDescription struct {
	Type    string   `json:"type" yaml:"type"`                           // Setting kind, e.g. "range"
	Min     float64  `json:"min" yaml:"min"`                             // Effective lower bound
	Max     float64  `json:"max" yaml:"max"`                             // Effective upper bound
	Step    float64  `json:"step" yaml:"step"`                           // Effective step
	Unit    string   `json:"unit" yaml:"unit"`                           // Display unit, may be empty
	Default *float64 `json:"default,omitempty" yaml:"default,omitempty"` // Configured default, if any
	Value   *float64 `json:"value,omitempty" yaml:"value,omitempty"`     // Current value (describe only)
}

// Description maps public setting names to their descriptions in configured order.
type Description = orderedmap.OrderedMap[string, SettingDescription]

// NewDescription returns an empty Description.
func NewDescription() *Description {
	return orderedmap.New[string, SettingDescription]()
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}
