// Package setting defines the tunable JVM settings the encoder understands.
//
// Each setting owns a validated bound/step contract (its schema), a transcoder
// for the value text, and the JVM argument name it is bound to. Settings are
// immutable once constructed; construction is where configuration errors are
// reported, while Validate, EncodeOption and DecodeOption report runtime errors.
package setting

import (
	"github.com/harrison/jvmtune/internal/models"
)

// ArgMarker precedes the argument name in every wire token, as in -XX:MaxHeapSize=2048m.
const ArgMarker = "-XX:"

// Setting is the capability set shared by every setting kind.
type Setting interface {
	// Name returns the public setting name (prefix included).
	Name() string

	// Describe returns the public name and the static shape of the setting.
	Describe() (string, models.SettingDescription)

	// Validate checks value against the schema and returns it unchanged.
	Validate(value any) (float64, error)

	// EncodeOption validates and encodes value into zero or more wire tokens.
	EncodeOption(value any) ([]string, error)

	// DecodeOption recovers the setting's current value from a token list.
	DecodeOption(tokens []string) (float64, error)
}
