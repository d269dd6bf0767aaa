package setting

import (
	"errors"
	"testing"

	"github.com/harrison/jvmtune/internal/encerr"
	"github.com/harrison/jvmtune/internal/models"
	"github.com/harrison/jvmtune/internal/transcoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNew(t *testing.T, name string, raw any) Setting {
	t.Helper()
	s, err := New(name, "", raw)
	require.NoError(t, err)
	return s
}

func TestNewRangeConfigErrors(t *testing.T) {
	tests := []struct {
		name      string
		setting   string
		raw       map[string]any
		wantKind  encerr.Kind
		wantPhase encerr.Phase
	}{
		{"missing max without built-in", "MaxHeapSize", map[string]any{"min": 1, "step": 1}, encerr.NoUpperBound, encerr.PhaseConfig},
		{"zero step", "MaxHeapSize", map[string]any{"min": 1, "max": 6, "step": 0}, encerr.InvalidStepValue, encerr.PhaseConfig},
		{"negative step", "MaxHeapSize", map[string]any{"min": 1, "max": 6, "step": -1}, encerr.InvalidStepValue, encerr.PhaseConfig},
		{"inverted bounds", "MaxHeapSize", map[string]any{"min": 6, "max": 1, "step": 1}, encerr.BoundariesCollision, encerr.PhaseConfig},
		{"range off step grid", "GCTimeRatio", map[string]any{"min": 10, "max": 90, "step": 9}, encerr.ValueStepRemainder, encerr.PhaseConfig},
		{"built-in min off grid", "MaxHeapSize", map[string]any{"max": 6, "step": 1}, encerr.ValueStepRemainder, encerr.PhaseConfig},
		{"relaxed min", "GCTimeRatio", map[string]any{"min": 1}, encerr.NoLowerBoundRelaxationAllowed, encerr.PhaseConfig},
		{"relaxed max", "GCTimeRatio", map[string]any{"max": 100, "min": 10}, encerr.NoUpperBoundRelaxationAllowed, encerr.PhaseConfig},
		{"relaxed min off step grid", "GCTimeRatio", map[string]any{"min": 1, "step": 10}, encerr.NoLowerBoundRelaxationAllowed, encerr.PhaseConfig},
		{"fractional step on integer flag", "GCTimeRatio", map[string]any{"min": 9, "max": 99, "step": 0.5}, encerr.ValueStepRemainder, encerr.PhaseConfig},
		{"fractional bounds on integer flag", "GCTimeRatio", map[string]any{"min": 9.5, "max": 98.5, "step": 1}, encerr.ValueStepRemainder, encerr.PhaseConfig},
		{"fractional degenerate integer flag", "GCTimeRatio", map[string]any{"min": 9.5, "max": 9.5, "step": 0}, encerr.ValueStepRemainder, encerr.PhaseConfig},
		{"step finer than a megabyte", "MaxHeapSize", map[string]any{"min": 1, "max": 2, "step": 0.0001}, encerr.ValueStepRemainder, encerr.PhaseConfig},
		{"default below min", "GCTimeRatio", map[string]any{"default": 5}, encerr.LowerBoundViolation, encerr.PhaseConfig},
		{"default off grid", "GCTimeRatio", map[string]any{"min": 9, "max": 99, "step": 10, "default": 15}, encerr.ValueStepRemainder, encerr.PhaseConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.setting, "", tt.raw)
			require.Error(t, err)
			e, ok := encerr.As(err)
			require.True(t, ok, "expected *encerr.Error, got %T", err)
			assert.Equal(t, tt.wantKind, e.Kind, "error: %v", err)
			assert.Equal(t, tt.wantPhase, e.Phase)
			assert.Equal(t, tt.setting, e.Setting)
		})
	}
}

func TestNewRangeRelaxationLock(t *testing.T) {
	s, err := New("GCTimeRatio", "", map[string]any{"min": 20})
	require.NoError(t, err)
	_, d := s.Describe()
	assert.Equal(t, 20.0, d.Min)
	assert.Equal(t, 99.0, d.Max)

	_, err = New("GCTimeRatio", "", map[string]any{"min": 1})
	assert.True(t, errors.Is(err, encerr.NoLowerBoundRelaxationAllowed))
}

func TestNewRangeMissingBuiltinIsDefinitionError(t *testing.T) {
	tests := []struct {
		name     string
		builtin  Bounds
		wantKind encerr.Kind
	}{
		{"no built-in min", Bounds{Max: ptr(10), Step: ptr(1)}, encerr.NoDefaultLowerBound},
		{"no built-in max", Bounds{Min: ptr(0), Step: ptr(1)}, encerr.NoDefaultUpperBound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := &Definition{
				Name:       "Locked",
				Kind:       KindRange,
				Transcoder: transcoder.Integer{},
				Builtin:    tt.builtin,
				CanRelax:   false,
			}
			_, err := def.New("Locked", Bounds{Min: ptr(0), Max: ptr(10)})
			require.Error(t, err)
			e, _ := encerr.As(err)
			assert.Equal(t, tt.wantKind, e.Kind)
			assert.Equal(t, encerr.PhaseDefinition, e.Phase)
		})
	}
}

func TestNewRangeQuantumMessage(t *testing.T) {
	_, err := New("GCTimeRatio", "", map[string]any{"min": 9, "max": 99, "step": 0.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 0.5 is not a multiple of 1")

	// a megabyte grid is the finest MaxHeapSize accepts
	s := mustNew(t, "MaxHeapSize", map[string]any{"min": 1, "max": 2, "step": 1.0 / 1024})
	tokens, err := s.EncodeOption(1 + 3.0/1024)
	require.NoError(t, err)
	assert.Equal(t, []string{"-XX:MaxHeapSize=1027m"}, tokens)
}

func TestRangeEncodeOptionOverflow(t *testing.T) {
	s := mustNew(t, "MaxHeapSize", map[string]any{"min": 1, "max": 1e20, "step": 1})

	tokens, err := s.EncodeOption(1e20)
	require.Error(t, err)
	assert.Nil(t, tokens)
	assert.True(t, errors.Is(err, encerr.InvalidValue), "got %v", err)
	assert.True(t, encerr.IsRuntime(err))

	tokens, err = s.EncodeOption(4)
	require.NoError(t, err)
	assert.Equal(t, []string{"-XX:MaxHeapSize=4096m"}, tokens)
}

func TestOnStep(t *testing.T) {
	tests := []struct {
		name             string
		value, min, step float64
		want             bool
	}{
		{"on grid", 1.625, 1, 0.125, true},
		{"off grid", 1.7, 1, 0.125, false},
		{"tenths", 0.3, 0, 0.1, true},
		{"far from min", 1e6 + 0.5, 0, 0.5, true},
		{"tenths far from min", 1e9 + 0.7, 0, 0.1, true},
		{"thousandths far from min", 1e6 + 0.001, 0, 0.001, true},
		{"half step off far from min", 1e6 + 0.0005, 0, 0.001, false},
		{"tenth of a step off far from min", 1e6 + 1e-4, 0, 1e-3, false},
		{"large magnitude", 1e20, 1, 1, true},
		{"negative min", -2.5, -4, 0.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OnStep(tt.value, tt.min, tt.step))
		})
	}
}

func TestDegenerateRangeAllowsAnyStep(t *testing.T) {
	s := mustNew(t, "MaxHeapSize", map[string]any{"min": 2, "max": 2, "step": 0})
	tokens, err := s.EncodeOption(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"-XX:MaxHeapSize=2048m"}, tokens)

	_, err = s.EncodeOption(2.125)
	assert.True(t, errors.Is(err, encerr.UpperBoundViolation))
}

func TestRangeValidate(t *testing.T) {
	s := mustNew(t, "MaxHeapSize", map[string]any{"min": 1, "max": 6, "step": 1})

	tests := []struct {
		name     string
		value    any
		wantKind encerr.Kind
	}{
		{"absent", nil, encerr.NoValueToEncode},
		{"string", "1", encerr.InvalidType},
		{"bool", true, encerr.InvalidType},
		{"below", 0, encerr.LowerBoundViolation},
		{"above", 7, encerr.UpperBoundViolation},
		{"off step", 2.5, encerr.ValueStepRemainder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Validate(tt.value)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantKind), "got %v", err)
			assert.True(t, encerr.IsRuntime(err))
		})
	}

	for _, v := range []any{1, 6, int64(3), float32(4)} {
		got, err := s.Validate(v)
		require.NoError(t, err)
		n, _ := toNumber(v)
		assert.Equal(t, n, got, "validate must return its input")
	}
}

func TestRangeStepEnforcement(t *testing.T) {
	s := mustNew(t, "MaxHeapSize", map[string]any{"min": 1, "max": 6, "step": 0.125})

	tokens, err := s.EncodeOption(1.625)
	require.NoError(t, err)
	assert.Equal(t, []string{"-XX:MaxHeapSize=1664m"}, tokens)

	_, err = s.EncodeOption(1.7)
	assert.True(t, errors.Is(err, encerr.ValueStepRemainder))
}

// TestRangeBoundEnforcement checks min and max encode while one step beyond does not.
func TestRangeBoundEnforcement(t *testing.T) {
	configs := []struct {
		setting string
		raw     map[string]any
	}{
		{"MaxHeapSize", map[string]any{"min": 1, "max": 6, "step": 1}},
		{"MaxHeapSize", map[string]any{"min": 0.5, "max": 4, "step": 0.125}},
		{"GCTimeRatio", map[string]any{"min": 9, "max": 99, "step": 10}},
	}

	for _, c := range configs {
		s := mustNew(t, c.setting, c.raw)
		_, d := s.Describe()

		_, err := s.EncodeOption(d.Min)
		assert.NoError(t, err)
		_, err = s.EncodeOption(d.Max)
		assert.NoError(t, err)

		_, err = s.EncodeOption(d.Min - d.Step)
		assert.True(t, errors.Is(err, encerr.LowerBoundViolation))
		_, err = s.EncodeOption(d.Max + d.Step)
		assert.True(t, errors.Is(err, encerr.UpperBoundViolation))
	}
}

// TestRangeRoundTrip decodes every encodable grid value back to itself.
func TestRangeRoundTrip(t *testing.T) {
	configs := []struct {
		setting string
		raw     map[string]any
	}{
		{"MaxHeapSize", map[string]any{"min": 0.5, "max": 16, "step": 0.125}},
		{"GCTimeRatio", map[string]any{"min": 9, "max": 99, "step": 1}},
	}

	for _, c := range configs {
		s := mustNew(t, c.setting, c.raw)
		_, d := s.Describe()
		for v := d.Min; v <= d.Max; v += d.Step {
			tokens, err := s.EncodeOption(v)
			require.NoError(t, err)
			got, err := s.DecodeOption(tokens)
			require.NoError(t, err)
			assert.Equal(t, v, got, "%s round trip via %v", c.setting, tokens)
		}
	}
}

func TestRangeDecodeOption(t *testing.T) {
	heap := mustNew(t, "MaxHeapSize", map[string]any{"min": 1, "max": 6, "step": 1})
	heapWithDefault := mustNew(t, "MaxHeapSize", map[string]any{"min": 1, "max": 6, "step": 1, "default": 3})
	ratio := mustNew(t, "GCTimeRatio", map[string]any{"min": 9, "max": 99, "step": 1})

	t.Run("picks its own token among others", func(t *testing.T) {
		got, err := heap.DecodeOption([]string{"java", "-server", "-XX:GCTimeRatio=50", "-XX:MaxHeapSize=5120m", "-jar", "/app.jar"})
		require.NoError(t, err)
		assert.Equal(t, 5.0, got)
	})

	t.Run("default when absent", func(t *testing.T) {
		got, err := heapWithDefault.DecodeOption(nil)
		require.NoError(t, err)
		assert.Equal(t, 3.0, got)
	})

	t.Run("token wins over default", func(t *testing.T) {
		got, err := heapWithDefault.DecodeOption([]string{"-XX:MaxHeapSize=1024m"})
		require.NoError(t, err)
		assert.Equal(t, 1.0, got)
	})

	t.Run("absent without default", func(t *testing.T) {
		_, err := ratio.DecodeOption([]string{"-XX:MaxHeapSize=1024m"})
		assert.True(t, errors.Is(err, encerr.NoValueToDecode))
	})

	t.Run("duplicates even when equal", func(t *testing.T) {
		_, err := ratio.DecodeOption([]string{"-XX:GCTimeRatio=50", "-XX:GCTimeRatio=50"})
		assert.True(t, errors.Is(err, encerr.MultipleSettings))
	})

	tests := []struct {
		setting Setting
		token   string
	}{
		{heap, "-XX:MaxHeapSize=5.2g"},
		{ratio, "-XX:GCTimeRatio=None"},
		{ratio, "-XX:GCTimeRatio"},
	}
	for _, tt := range tests {
		t.Run("invalid "+tt.token, func(t *testing.T) {
			_, err := tt.setting.DecodeOption([]string{tt.token})
			require.Error(t, err)
			e, ok := encerr.As(err)
			require.True(t, ok)
			assert.Equal(t, encerr.InvalidValue, e.Kind)
			assert.Equal(t, tt.token, e.Token)
			assert.True(t, encerr.IsRuntime(err))
		})
	}
}

func TestRangeDescribe(t *testing.T) {
	name, d := mustNew(t, "MaxHeapSize", map[string]any{"min": 1, "max": 6, "step": 1}).Describe()
	assert.Equal(t, "MaxHeapSize", name)
	assert.Equal(t, models.SettingDescription{Type: "range", Min: 1, Max: 6, Step: 1, Unit: "GiB"}, d)

	name, d = mustNew(t, "GCTimeRatio", map[string]any{"default": 15}).Describe()
	assert.Equal(t, "GCTimeRatio", name)
	require.NotNil(t, d.Default)
	assert.Equal(t, 15.0, *d.Default)
	assert.Equal(t, "", d.Unit)
	assert.Nil(t, d.Value)
}

func TestSettingPrefix(t *testing.T) {
	s, err := New("GCTimeRatio", "cmd-", map[string]any{"min": 9, "max": 99, "step": 10})
	require.NoError(t, err)
	assert.Equal(t, "cmd-GCTimeRatio", s.Name())

	tokens, err := s.EncodeOption(69)
	require.NoError(t, err)
	assert.Equal(t, []string{"-XX:GCTimeRatio=69"}, tokens)

	_, err = s.EncodeOption(70)
	e, _ := encerr.As(err)
	require.NotNil(t, e)
	assert.Equal(t, "cmd-GCTimeRatio", e.Setting)
}

func TestLookup(t *testing.T) {
	_, err := Lookup("MortgageAPR")
	assert.True(t, errors.Is(err, encerr.UnsupportedSetting))
	assert.True(t, encerr.IsConfig(err))

	def, err := Lookup("GCTimeRatio")
	require.NoError(t, err)
	assert.False(t, def.CanRelax)

	var names []string
	for _, d := range Definitions() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"GCTimeRatio", "MaxHeapSize"}, names)
}
