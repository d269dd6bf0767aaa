// Package encerr defines the closed set of failures the setting encoder can
// report.
//
// Every failure is an *Error carrying a Kind (what went wrong) and a Phase
// (who is at fault): a mis-declared built-in setting, a caller configuration
// mistake, or an invalid runtime value or token. errors.Is matches an *Error
// against a bare Kind, so callers can write errors.Is(err, encerr.MultipleSettings).
package encerr

import (
	"errors"
	"fmt"
	"strings"
)

// Phase identifies when an error was detected and therefore whose mistake it is.
type Phase int

const (
	// PhaseDefinition marks a built-in setting that is declared inconsistently.
	PhaseDefinition Phase = iota
	// PhaseConfig marks a caller configuration mistake caught while building settings.
	PhaseConfig
	// PhaseRuntime marks an invalid value or token caught while encoding or decoding.
	PhaseRuntime
)

// String returns the string representation of Phase.
func (p Phase) String() string {
	switch p {
	case PhaseDefinition:
		return "definition"
	case PhaseConfig:
		return "configuration"
	case PhaseRuntime:
		return "runtime"
	default:
		return "unknown"
	}
}

// Kind enumerates every failure category. The set is closed.
type Kind int

const (
	EncoderConfig Kind = iota + 1
	UnsupportedSetting
	UnsupportedValues
	InvalidSettingConfig
	UnsupportedOption
	NoLowerBound
	NoUpperBound
	NoStep
	NoDefaultLowerBound
	NoDefaultUpperBound
	InvalidType
	BoundariesCollision
	InvalidStepValue
	NoLowerBoundRelaxationAllowed
	NoUpperBoundRelaxationAllowed
	NoValueToEncode
	NoValueToDecode
	InvalidValue
	LowerBoundViolation
	UpperBoundViolation
	ValueStepRemainder
	MultipleSettings
)

var kindNames = map[Kind]string{
	EncoderConfig:                 "invalid encoder configuration",
	UnsupportedSetting:            "unsupported setting",
	UnsupportedValues:             "unsupported values",
	InvalidSettingConfig:          "invalid setting configuration",
	UnsupportedOption:             "unsupported option",
	NoLowerBound:                  "no lower bound",
	NoUpperBound:                  "no upper bound",
	NoStep:                        "no step",
	NoDefaultLowerBound:           "no built-in lower bound",
	NoDefaultUpperBound:           "no built-in upper bound",
	InvalidType:                   "invalid type",
	BoundariesCollision:           "boundaries collision",
	InvalidStepValue:              "invalid step value",
	NoLowerBoundRelaxationAllowed: "lower bound relaxation not allowed",
	NoUpperBoundRelaxationAllowed: "upper bound relaxation not allowed",
	NoValueToEncode:               "no value to encode",
	NoValueToDecode:               "no value to decode",
	InvalidValue:                  "invalid value",
	LowerBoundViolation:           "lower bound violation",
	UpperBoundViolation:           "upper bound violation",
	ValueStepRemainder:            "value step remainder",
	MultipleSettings:              "multiple settings",
}

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error lets a Kind act as an errors.Is target.
func (k Kind) Error() string {
	return k.String()
}

// Error is the single concrete error type produced by the encoder packages.
type Error struct {
	Kind    Kind   // Failure category
	Phase   Phase  // When the failure was detected
	Setting string // Public setting name, empty for encoder-level failures
	Message string // Human-readable detail
	Value   any    // Offending value (optional)
	Bound   any    // Bound or step the value was checked against (optional)
	Token   string // Offending wire token (optional)
	Err     error  // Underlying error (optional)
}

// Error implements the error interface for Error.
func (e *Error) Error() string {
	var sb strings.Builder
	if e.Setting != "" {
		sb.WriteString(fmt.Sprintf("setting %q: ", e.Setting))
	}
	sb.WriteString(e.Kind.String())
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Token != "" {
		sb.WriteString(fmt.Sprintf(" (arg %q)", e.Token))
	}
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return sb.String()
}

// Unwrap returns the underlying error for error wrapping support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the Kind of this error.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// Definitionf creates an error for a mis-declared built-in setting.
func Definitionf(kind Kind, setting, format string, args ...any) *Error {
	return &Error{Kind: kind, Phase: PhaseDefinition, Setting: setting, Message: fmt.Sprintf(format, args...)}
}

// Configf creates a configuration-phase error.
func Configf(kind Kind, setting, format string, args ...any) *Error {
	return &Error{Kind: kind, Phase: PhaseConfig, Setting: setting, Message: fmt.Sprintf(format, args...)}
}

// Runtimef creates a runtime-phase error.
func Runtimef(kind Kind, setting, format string, args ...any) *Error {
	return &Error{Kind: kind, Phase: PhaseRuntime, Setting: setting, Message: fmt.Sprintf(format, args...)}
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	if e, ok := As(err); ok {
		return e.Kind, true
	}
	return 0, false
}

// IsConfig reports whether err was caused by configuration, including
// mis-declared built-in settings.
func IsConfig(err error) bool {
	e, ok := As(err)
	return ok && (e.Phase == PhaseConfig || e.Phase == PhaseDefinition)
}

// IsRuntime reports whether err was caused by an invalid value or token.
func IsRuntime(err error) bool {
	e, ok := As(err)
	return ok && e.Phase == PhaseRuntime
}
