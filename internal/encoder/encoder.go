// Package encoder assembles JVM argument vectors from configured settings and
// recovers setting values from existing argument vectors.
//
// An Encoder is built from a Config for a single call and discarded afterwards.
// Both directions are all-or-nothing: the first failing setting aborts the call
// and no partial result is returned.
package encoder

import (
	"fmt"
	"sort"
	"strings"

	"github.com/harrison/jvmtune/internal/encerr"
	"github.com/harrison/jvmtune/internal/logger"
	"github.com/harrison/jvmtune/internal/models"
	"github.com/harrison/jvmtune/internal/setting"
)

// Logger receives diagnostic output while settings are resolved and applied.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithLogger routes diagnostic output to l.
func WithLogger(l Logger) Option {
	return func(e *Encoder) {
		if l != nil {
			e.logger = l
		}
	}
}

// Encoder holds the resolved settings of one configuration section.
type Encoder struct {
	config   Config
	settings []setting.Setting
	logger   Logger
}

// New resolves every configured setting through the registry. Any unsupported
// name or invalid bound aborts construction.
func New(cfg Config, opts ...Option) (*Encoder, error) {
	e := &Encoder{
		config: cfg,
		logger: logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}

	seen := make(map[string]bool, len(cfg.Settings))
	for _, sc := range cfg.Settings {
		s, err := setting.New(sc.Name, cfg.SettingPrefix, sc.Options)
		if err != nil {
			return nil, err
		}
		if seen[s.Name()] {
			return nil, encerr.Configf(encerr.EncoderConfig, s.Name(), "setting is configured more than once")
		}
		seen[s.Name()] = true

		_, d := s.Describe()
		e.logger.LogDebug(fmt.Sprintf("Resolved setting %s: %v..%v step %v", s.Name(), d.Min, d.Max, d.Step))
		e.settings = append(e.settings, s)
	}

	return e, nil
}

// Settings returns the resolved settings in configured order.
func (e *Encoder) Settings() []setting.Setting {
	return append([]setting.Setting(nil), e.settings...)
}

// Schema returns the static description of every setting, without values.
func (e *Encoder) Schema() *models.Description {
	descr := models.NewDescription()
	for _, s := range e.settings {
		name, d := s.Describe()
		descr.Set(name, d)
	}
	return descr
}

// EncodeMulti returns Before, then each setting's tokens in configured order,
// then After. values is keyed by public setting name; a missing value is an
// error, and so is any value left over after every setting has taken its own.
func (e *Encoder) EncodeMulti(values map[string]any) ([]string, error) {
	remaining := make(map[string]any, len(values))
	for k, v := range values {
		remaining[k] = v
	}

	tokens := make([]string, 0, len(e.config.Before)+len(e.settings)+len(e.config.After))
	tokens = append(tokens, e.config.Before...)

	for _, s := range e.settings {
		value := remaining[s.Name()]
		delete(remaining, s.Name())

		encoded, err := s.EncodeOption(value)
		if err != nil {
			return nil, err
		}
		e.logger.LogTrace(fmt.Sprintf("Encoded %s=%v as %s", s.Name(), value, strings.Join(encoded, " ")))
		tokens = append(tokens, encoded...)
	}

	tokens = append(tokens, e.config.After...)

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		err := encerr.Runtimef(encerr.UnsupportedValues, "",
			"received values for settings the encoder is not configured for: %s", strings.Join(names, ", "))
		err.Value = names
		return nil, err
	}

	return tokens, nil
}

// DescribeTokens returns the static description of every setting merged with
// the value decoded from tokens.
func (e *Encoder) DescribeTokens(tokens []string) (*models.Description, error) {
	descr := models.NewDescription()
	for _, s := range e.settings {
		name, d := s.Describe()
		value, err := s.DecodeOption(tokens)
		if err != nil {
			return nil, err
		}
		d.Value = models.Float(value)
		e.logger.LogTrace(fmt.Sprintf("Decoded %s=%v", name, value))
		descr.Set(name, d)
	}
	return descr, nil
}

// Encode builds an encoder for cfg and encodes values with it.
func Encode(cfg Config, values map[string]any, opts ...Option) ([]string, error) {
	e, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return e.EncodeMulti(values)
}

// Describe builds an encoder for cfg and describes the settings found in tokens.
func Describe(cfg Config, tokens []string, opts ...Option) (*models.Description, error) {
	e, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return e.DescribeTokens(tokens)
}

// EncodeRaw is Encode for loosely typed configuration data.
func EncodeRaw(raw any, values map[string]any, opts ...Option) ([]string, error) {
	cfg, err := ParseConfig(raw)
	if err != nil {
		return nil, err
	}
	return Encode(cfg, values, opts...)
}

// DescribeRaw is Describe for loosely typed configuration data.
func DescribeRaw(raw any, tokens []string, opts ...Option) (*models.Description, error) {
	cfg, err := ParseConfig(raw)
	if err != nil {
		return nil, err
	}
	return Describe(cfg, tokens, opts...)
}
