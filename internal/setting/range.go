package setting

import (
	"fmt"
	"math"
	"strings"

	"github.com/harrison/jvmtune/internal/encerr"
	"github.com/harrison/jvmtune/internal/models"
	"github.com/harrison/jvmtune/internal/transcoder"
)

// stepTolerance absorbs binary floating point error when checking that a value
// sits on the step grid, e.g. 0.1 steps.
const stepTolerance = 1e-9

// ulpSlack is four float64 machine epsilons.
const ulpSlack = 4 * 0x1p-52

// Range is a bounded numeric setting bound to one -XX argument.
type Range struct {
	name       string
	argName    string
	unit       string
	min        float64
	max        float64
	step       float64
	def        *float64
	transcoder transcoder.Transcoder
}

// newRange resolves the two bound layers and validates the result.
func newRange(name string, def *Definition, overrides Bounds) (*Range, error) {
	layers := Layers{BuiltinDefaults: def.Builtin, UserOverrides: overrides}
	resolved, err := layers.Resolve()
	if err != nil {
		return nil, encerr.Configf(encerr.InvalidSettingConfig, name, "%v", err)
	}

	if resolved.Min == nil {
		return nil, encerr.Configf(encerr.NoLowerBound, name, "no min value configured")
	}
	if resolved.Max == nil {
		return nil, encerr.Configf(encerr.NoUpperBound, name, "no max value configured")
	}
	if resolved.Step == nil {
		return nil, encerr.Configf(encerr.NoStep, name, "no step value configured")
	}

	minv, maxv, step := *resolved.Min, *resolved.Max, *resolved.Step

	if minv > maxv {
		err := encerr.Configf(encerr.BoundariesCollision, name, "lower bound %v is higher than upper bound %v", minv, maxv)
		err.Value, err.Bound = minv, maxv
		return nil, err
	}

	if !def.CanRelax {
		if err := checkRelaxation(name, def.Builtin, minv, maxv); err != nil {
			return nil, err
		}
	}

	if minv != maxv {
		if step < 0 {
			err := encerr.Configf(encerr.InvalidStepValue, name, "step must be a positive number, found %v", step)
			err.Value = step
			return nil, err
		}
		if step == 0 {
			return nil, encerr.Configf(encerr.InvalidStepValue, name, "step cannot be zero when min != max")
		}
		if !OnStep(maxv, minv, step) {
			err := encerr.Configf(encerr.ValueStepRemainder, name,
				"range %v..%v is not a multiple of step %v", minv, maxv, step)
			err.Value, err.Bound = maxv, step
			return nil, err
		}
	}

	if err := checkQuantum(name, def, minv, maxv, step); err != nil {
		return nil, err
	}

	r := &Range{
		name:       name,
		argName:    def.Name,
		unit:       def.Unit,
		min:        minv,
		max:        maxv,
		step:       step,
		transcoder: def.Transcoder,
	}

	if resolved.Default != nil {
		if _, err := r.Validate(*resolved.Default); err != nil {
			e, _ := encerr.As(err)
			return nil, &encerr.Error{
				Kind:    e.Kind,
				Phase:   encerr.PhaseConfig,
				Setting: name,
				Message: "default " + e.Message,
				Value:   e.Value,
				Bound:   e.Bound,
			}
		}
		r.def = ptr(*resolved.Default)
	}

	return r, nil
}

// checkRelaxation rejects bounds wider than the built-in ones. A missing
// built-in bound means the setting itself is declared wrong.
func checkRelaxation(name string, builtin Bounds, minv, maxv float64) error {
	if builtin.Min == nil {
		return encerr.Definitionf(encerr.NoDefaultLowerBound, name,
			"built-in min value must be declared to disallow its relaxation")
	}
	if minv < *builtin.Min {
		err := encerr.Configf(encerr.NoLowerBoundRelaxationAllowed, name,
			"min value cannot be lower than %v, it is %v", *builtin.Min, minv)
		err.Value, err.Bound = minv, *builtin.Min
		return err
	}
	if builtin.Max == nil {
		return encerr.Definitionf(encerr.NoDefaultUpperBound, name,
			"built-in max value must be declared to disallow its relaxation")
	}
	if maxv > *builtin.Max {
		err := encerr.Configf(encerr.NoUpperBoundRelaxationAllowed, name,
			"max value cannot be higher than %v, it is %v", *builtin.Max, maxv)
		err.Value, err.Bound = maxv, *builtin.Max
		return err
	}
	return nil
}

// checkQuantum rejects bounds and steps the argument's transcoder cannot carry,
// e.g. a half step on an integer flag.
func checkQuantum(name string, def *Definition, minv, maxv, step float64) error {
	q, ok := def.Transcoder.(transcoder.Quantized)
	if !ok {
		return nil
	}
	quantum := q.Quantum()
	values := []struct {
		label string
		value float64
	}{{"min", minv}, {"max", maxv}, {"step", step}}
	for _, v := range values {
		if v.label == "step" && minv == maxv {
			continue
		}
		if !OnStep(v.value, 0, quantum) {
			err := encerr.Configf(encerr.ValueStepRemainder, name,
				"%s %v is not a multiple of %v, the smallest amount -XX:%s can carry", v.label, v.value, quantum, def.Name)
			err.Value, err.Bound = v.value, quantum
			return err
		}
	}
	return nil
}

// OnStep reports whether value lies on the grid min + k*step. The nearest grid
// point is rebuilt and compared to value, allowing a fraction of the step plus
// a few ulps of the operands for floating point error.
func OnStep(value, min, step float64) bool {
	k := math.Round((value - min) / step)
	diff := math.Abs(min + k*step - value)
	return diff <= stepTolerance*math.Abs(step)+ulpSlack*math.Max(math.Abs(value), math.Abs(min))
}

// Name returns the public setting name.
func (r *Range) Name() string {
	return r.name
}

// ArgName returns the JVM argument name matched on the wire.
func (r *Range) ArgName() string {
	return r.argName
}

// Describe returns the resolved schema.
func (r *Range) Describe() (string, models.SettingDescription) {
	d := models.SettingDescription{
		Type: models.SettingTypeRange,
		Min:  r.min,
		Max:  r.max,
		Step: r.step,
		Unit: r.unit,
	}
	if r.def != nil {
		d.Default = ptr(*r.def)
	}
	return r.name, d
}

// Validate checks that value is a number inside [min, max] on the step grid.
func (r *Range) Validate(value any) (float64, error) {
	if value == nil {
		return 0, encerr.Runtimef(encerr.NoValueToEncode, r.name, "no value provided")
	}
	v, ok := toNumber(value)
	if !ok {
		err := encerr.Runtimef(encerr.InvalidType, r.name,
			"value must be either integer or float, found %T %q", value, fmt.Sprint(value))
		err.Value = value
		return 0, err
	}
	if v < r.min {
		err := encerr.Runtimef(encerr.LowerBoundViolation, r.name, "value %v is below %v", v, r.min)
		err.Value, err.Bound = v, r.min
		return 0, err
	}
	if v > r.max {
		err := encerr.Runtimef(encerr.UpperBoundViolation, r.name, "value %v is above %v", v, r.max)
		err.Value, err.Bound = v, r.max
		return 0, err
	}
	if r.min < r.max && r.step > 0 && !OnStep(v, r.min, r.step) {
		err := encerr.Runtimef(encerr.ValueStepRemainder, r.name,
			"value %v is not on the grid of step %v from %v", v, r.step, r.min)
		err.Value, err.Bound = v, r.step
		return 0, err
	}
	return v, nil
}

// EncodeOption returns the single token -XX:<arg>=<encoded>.
func (r *Range) EncodeOption(value any) ([]string, error) {
	v, err := r.Validate(value)
	if err != nil {
		return nil, err
	}
	text, err := r.transcoder.Encode(v)
	if err != nil {
		return nil, &encerr.Error{
			Kind:    encerr.InvalidValue,
			Phase:   encerr.PhaseRuntime,
			Setting: r.name,
			Message: "cannot encode value",
			Value:   v,
			Err:     err,
		}
	}
	return []string{r.prefix() + "=" + text}, nil
}

// DecodeOption finds the one token starting with -XX:<arg> and decodes it,
// falling back to the configured default when none is present.
func (r *Range) DecodeOption(tokens []string) (float64, error) {
	prefix := r.prefix()
	var found []string
	for _, token := range tokens {
		if strings.HasPrefix(token, prefix) {
			found = append(found, token)
		}
	}

	if len(found) > 1 {
		err := encerr.Runtimef(encerr.MultipleSettings, r.name,
			"found %d arguments, only one value is allowed on decode", len(found))
		err.Value = found
		return 0, err
	}
	if len(found) == 0 {
		if r.def == nil {
			return 0, encerr.Runtimef(encerr.NoValueToDecode, r.name,
				"no value found to decode and no default value was configured")
		}
		return *r.def, nil
	}

	token := found[0]
	_, text, ok := strings.Cut(token, "=")
	if !ok {
		err := encerr.Runtimef(encerr.InvalidValue, r.name, "argument has no value")
		err.Token = token
		return 0, err
	}
	v, err := r.transcoder.Decode(text)
	if err != nil {
		return 0, &encerr.Error{
			Kind:    encerr.InvalidValue,
			Phase:   encerr.PhaseRuntime,
			Setting: r.name,
			Message: "cannot decode current value",
			Token:   token,
			Err:     err,
		}
	}
	return v, nil
}

func (r *Range) prefix() string {
	return ArgMarker + r.argName
}
