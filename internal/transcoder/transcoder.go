// Package transcoder converts a single semantic value to the text a JVM flag
// carries after its '=' sign, and back.
package transcoder

import (
	"math"
	"strconv"
	"strings"

	"github.com/harrison/jvmtune/internal/encerr"
)

// Transcoder is a pure value/token pair. Decode(Encode(v)) == v for every value
// on the owning setting's step grid.
type Transcoder interface {
	Encode(value float64) (string, error)
	Decode(text string) (float64, error)
}

// Quantized is implemented by transcoders that only carry whole multiples of
// Quantum. Values between multiples cannot survive a round trip.
type Quantized interface {
	Quantum() float64
}

// int64Limit is 2^63, the first float64 outside the int64 range.
const int64Limit = 1 << 63

// Integer passes numbers through as base-10 integers.
type Integer struct{}

// Encode renders value as a base-10 integer. Fractional values are rejected.
func (Integer) Encode(value float64) (string, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "", invalid("cannot encode non-finite value %v", value)
	}
	if value != math.Trunc(value) {
		return "", invalid("%v is not an integer", value)
	}
	if value >= int64Limit || value < -int64Limit {
		return "", invalid("%v is out of the integer range", value)
	}
	return strconv.FormatInt(int64(value), 10), nil
}

// Quantum is 1.
func (Integer) Quantum() float64 {
	return 1
}

// Decode parses text as a base-10 integer.
func (Integer) Decode(text string) (float64, error) {
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		e := invalid("%q is not an integer", text)
		e.Err = err
		return 0, e
	}
	return float64(n), nil
}

// Scaled multiplies a value by Factor and appends a unit suffix, e.g. gigabytes
// to "<n>m" megabytes with Factor 1024 and Suffix "m".
type Scaled struct {
	Factor float64
	Suffix string
}

// GigabytesToMegabytes is the scaling used by heap-size flags.
var GigabytesToMegabytes = Scaled{Factor: 1024, Suffix: "m"}

// Encode rounds value*Factor to the nearest integer and appends Suffix.
func (s Scaled) Encode(value float64) (string, error) {
	scaled := math.Round(value * s.Factor)
	if math.IsNaN(scaled) || math.IsInf(scaled, 0) {
		return "", invalid("cannot encode non-finite value %v", value)
	}
	if scaled >= int64Limit || scaled < -int64Limit {
		return "", invalid("%v scaled by %v is out of the integer range", value, s.Factor)
	}
	return strconv.FormatInt(int64(scaled), 10) + s.Suffix, nil
}

// Quantum is the value one encoded unit stands for, 1/Factor.
func (s Scaled) Quantum() float64 {
	return 1 / s.Factor
}

// Decode strips Suffix (case-insensitive) and divides the integer part by Factor.
func (s Scaled) Decode(text string) (float64, error) {
	lower := strings.ToLower(text)
	suffix := strings.ToLower(s.Suffix)
	if !strings.HasSuffix(lower, suffix) || len(lower) == len(suffix) {
		return 0, invalid("%q does not end with unit suffix %q", text, s.Suffix)
	}
	n, err := strconv.ParseInt(lower[:len(lower)-len(suffix)], 10, 64)
	if err != nil {
		e := invalid("%q has a non-integer amount", text)
		e.Err = err
		return 0, e
	}
	return float64(n) / s.Factor, nil
}

func invalid(format string, args ...any) *encerr.Error {
	return encerr.Runtimef(encerr.InvalidValue, "", format, args...)
}
