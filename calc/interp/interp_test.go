package interp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/numbridge/core"
	"github.com/hupe1980/numbridge/markup"
)

func newPreludeContext(t *testing.T) *Context {
	t.Helper()
	c := NewContext(BuiltinImporter())
	_, _, err := c.InterpretWithSettings(nil, "use prelude", core.SourceInternal)
	require.NoError(t, err)
	return c
}

// result interprets src and returns the plain text of the result document.
func result(t *testing.T, c *Context, src string) string {
	t.Helper()
	reg := c.DimensionRegistry()
	stmts, v, err := c.InterpretWithSettings(&core.InterpreterSettings{}, src, core.SourceText)
	require.NoError(t, err)
	require.NotEmpty(t, stmts)
	return v.ToMarkup(stmts[len(stmts)-1], reg, true, true).String()
}

func TestInterpret_Results(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1+1", "    = 2\n"},
		{"3 km + 500 m", "    = 3.5 km    [Length]\n"},
		{"10 km / 2 h", "    = 5 km/h    [Velocity]\n"},
		{"1 km -> m", "    = 1000 m    [Length]\n"},
		{"1 h to min", "    = 60 min    [Time]\n"},
		{"2 m * 3 m", "    = 6 m²    [Area]\n"},
		{"1 km / 1 m", "    = 1000\n"},
		{"sqrt(16 m^2)", "    = 4 m    [Length]\n"},
		{"3 meters", "    = 3 m    [Length]\n"},
		{"2 m > 150 cm", "    = true    [Bool]\n"},
		{`"hello"`, "    = \"hello\"    [String]\n"},
		{"1 / 3", "    = 0.333333\n"},
		{"-2^2", "    = -4\n"},
		{"round(2.6 kg)", "    = 3 kg    [Mass]\n"},
		{"2 s^2", "    = 2 s²    [Time²]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c := newPreludeContext(t)
			assert.Equal(t, tt.want, result(t, c, tt.input))
		})
	}
}

func TestInterpret_StateCarriesAcrossCalls(t *testing.T) {
	c := newPreludeContext(t)
	assert.Equal(t, "", result(t, c, "let x = 5"))
	assert.Equal(t, "    = 6\n", result(t, c, "x + 1"))

	v, ok := c.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, Scalar(5), v)
}

func TestInterpret_DefinitionsProduceNoResult(t *testing.T) {
	c := newPreludeContext(t)
	for _, src := range []string{
		"dimension Money",
		"unit EUR: Money",
		"@aliases(cents) unit ct: Money = 0.01 EUR",
		"use units",
		"let price: Money = 5 EUR",
	} {
		assert.Equal(t, "", result(t, c, src), src)
	}
	assert.Equal(t, "    = 500 ct    [Money]\n", result(t, c, "price -> cents"))
}

func TestInterpret_PrintGoesToCallback(t *testing.T) {
	c := newPreludeContext(t)
	var printed []string
	settings := &core.InterpreterSettings{Print: func(m markup.Markup) {
		printed = append(printed, m.String())
	}}

	stmts, v, err := c.InterpretWithSettings(settings, `print("hi"); print(2 m)`, core.SourceText)
	require.NoError(t, err)
	assert.Len(t, stmts, 2)
	assert.Equal(t, []string{"hi", "2 m"}, printed)
	assert.True(t, v.ToMarkup(stmts[1], nil, true, true).IsEmpty())
}

func TestInterpret_NilPrintDiscards(t *testing.T) {
	c := newPreludeContext(t)
	_, _, err := c.InterpretWithSettings(nil, `print("ignored")`, core.SourceText)
	assert.NoError(t, err)
}

func TestInterpret_Errors(t *testing.T) {
	tests := []struct {
		input string
		kind  ErrorKind
		msg   string
	}{
		{"1 m + 1 s", KindDimension, "incompatible dimensions for +: Length and Time"},
		{"y", KindName, "unknown identifier 'y'"},
		{"1 +", KindParse, "parse error at"},
		{"1_ + 2", KindParse, "misplaced digit separator in 1_"},
		{"1 / 0", KindRuntime, "division by zero"},
		{"assert_eq(1 m, 2 m)", KindAssertion, "assertion failed: 1 m != 2 m"},
		{"let d: Length = 5 s", KindDimension, "expected Length, found Time"},
		{"use nope", KindImport, "module 'nope' not found"},
		{"sin(1 m)", KindDimension, "sin expects a Scalar, found Length"},
		{"sqrt", KindType, "function 'sqrt' must be called"},
		{"foo(1)", KindName, "unknown function 'foo'"},
		{"let m = 1", KindName, "already defined as a unit"},
		{"(1 m)^1.5", KindDimension, "integer power"},
		{"2 m ^ 1e20", KindDimension, "out of range"},
		{"(2 m)^-3e9", KindDimension, "out of range"},
		{"1 m -> s", KindDimension, "cannot convert Length to Time"},
		{`-"x"`, KindType, "cannot negate"},
		{"let v = print(1)", KindType, "does not produce a value"},
		{"abs(1, 2)", KindType, "abs expects 1 argument, got 2"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c := newPreludeContext(t)
			stmts, v, err := c.InterpretWithSettings(nil, tt.input, core.SourceText)
			require.Error(t, err)
			assert.Nil(t, stmts)
			assert.Nil(t, v)
			assert.True(t, IsKind(err, tt.kind), "kind of %v", err)
			assert.Contains(t, err.Error(), tt.msg)

			var ierr *Error
			require.ErrorAs(t, err, &ierr)
			assert.Equal(t, core.SourceText, ierr.Source)
		})
	}
}

func TestInterpret_RuntimeErrorKeepsEarlierEffects(t *testing.T) {
	c := newPreludeContext(t)
	_, _, err := c.InterpretWithSettings(nil, "let a = 1; a + b; let z = 3", core.SourceText)
	require.Error(t, err)

	_, ok := c.Lookup("a")
	assert.True(t, ok, "statement before the failure must persist")
	_, ok = c.Lookup("z")
	assert.False(t, ok, "statement after the failure must not run")
}

func TestInterpret_ParseErrorRunsNothing(t *testing.T) {
	c := newPreludeContext(t)
	_, _, err := c.InterpretWithSettings(nil, "let p = 1; 1 +", core.SourceText)
	require.Error(t, err)
	_, ok := c.Lookup("p")
	assert.False(t, ok)
}

func TestInterpret_AssertEq(t *testing.T) {
	c := newPreludeContext(t)
	_, _, err := c.InterpretWithSettings(nil, "assert_eq(1 km, 1000 m)", core.SourceText)
	assert.NoError(t, err)
	_, _, err = c.InterpretWithSettings(nil, "assert_eq(1 m, 1.05 m, 10 cm)", core.SourceText)
	assert.NoError(t, err)
	_, _, err = c.InterpretWithSettings(nil, `assert_eq("a", "a")`, core.SourceText)
	assert.NoError(t, err)
}

func TestStatement_PrettyPrintStylesUnits(t *testing.T) {
	c := newPreludeContext(t)
	stmts, _, err := c.InterpretWithSettings(nil, "let x = 5 m", core.SourceText)
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	doc := stmts[0].PrettyPrint()
	assert.Equal(t, "let x = 5 m\n", doc.String())

	var kinds []markup.FormatType
	for _, s := range doc.Spans() {
		if strings.TrimSpace(s.Text) != "" {
			kinds = append(kinds, s.Type)
		}
	}
	assert.Equal(t, []markup.FormatType{
		markup.FormatKeyword, markup.FormatIdentifier, markup.FormatOperator,
		markup.FormatValue, markup.FormatUnit,
	}, kinds)
}

func TestDimensionRegistry_IsSnapshot(t *testing.T) {
	c := newPreludeContext(t)
	reg := c.DimensionRegistry()
	_, _, err := c.InterpretWithSettings(nil, "dimension Luminosity", core.SourceText)
	require.NoError(t, err)

	_, ok := reg.DimensionName(map[string]int{"Luminosity": 1})
	assert.False(t, ok)
	name, ok := c.DimensionRegistry().DimensionName(map[string]int{"Luminosity": 1})
	assert.True(t, ok)
	assert.Equal(t, "Luminosity", name)
}

func TestImporters(t *testing.T) {
	imp := ChainImporter{MapImporter{"extra": "let answer = 42"}, BuiltinImporter()}
	c := NewContext(imp)
	_, _, err := c.InterpretWithSettings(nil, "use extra\nuse prelude", core.SourceInternal)
	require.NoError(t, err)
	assert.Equal(t, "    = 42\n", result(t, c, "answer"))

	_, err = imp.Import("missing")
	assert.ErrorIs(t, err, ErrModuleNotFound)
}

func TestInterpret_ModulesLoadOnce(t *testing.T) {
	c := NewContext(MapImporter{"counter": "dimension Once"})
	_, _, err := c.InterpretWithSettings(nil, "use counter\nuse counter", core.SourceInternal)
	assert.NoError(t, err)
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		2:         "2",
		-7:        "-7",
		1.5:       "1.5",
		1e20:      "1e+20",
		0.1 + 0.2: "0.3",
		123456789: "123456789",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatNumber(in))
	}
}

func TestBuiltins(t *testing.T) {
	names := Builtins()
	for _, want := range []string{"print", "assert_eq", "sqrt", "abs", "round", "floor", "ceil", "sin", "cos", "tan", "ln", "exp"} {
		assert.Contains(t, names, want)
	}
}
